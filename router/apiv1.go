package router

import (
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"omnily-go-admin/api"
	"omnily-go-admin/controllers/admin"
	"omnily-go-admin/controllers/health"
	"omnily-go-admin/controllers/public"
	"omnily-go-admin/middleware"
	"omnily-go-admin/pkg/cache"
	"omnily-go-admin/pkg/monitoring"
	"omnily-go-admin/pkg/response"
	"omnily-go-admin/pkg/session"
	"omnily-go-admin/services/analytics_service"
	"omnily-go-admin/services/crm_service"
	"omnily-go-admin/services/public_service"
	"omnily-go-admin/utils"
)

// Deps carries the wired services the routes dispatch to.
type Deps struct {
	DB            *gorm.DB
	Analytics     *analytics_service.AnalyticsService
	CRM           *crm_service.CRMService
	ReportStorage *utils.ReportStorage
	Cache         *cache.CacheManager
}

// Init registers every route group on the engine.
func Init(r *gin.Engine, deps Deps) {
	middleware.RegisterValidators()

	// session store backs the captcha flow
	session.Init(r, os.Getenv("REDIS_ADDR"), os.Getenv("REDIS_PASSWORD"))
	r.Use(middleware.Cors())

	auth := api.NewAuth(deps.DB)
	analyticsCtl := admin.NewAnalytics(deps.Analytics, deps.ReportStorage)
	crmCtl := admin.NewCRM(deps.CRM)
	campaignCtl := admin.NewCampaign(deps.CRM)
	healthCtl := health.NewHealthController(deps.DB)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	healthGroup := r.Group("/health")
	{
		healthGroup.GET("", healthCtl.CheckHealth)
		healthGroup.GET("/live", healthCtl.CheckLiveness)
		healthGroup.GET("/ready", healthCtl.CheckReadiness)
		healthGroup.GET("/info", healthCtl.GetSystemInfo)
	}

	r.GET("/ws/dashboard", public.HandleDashboardStream)

	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/auth/login", auth.Login)
		apiGroup.GET("/auth/captcha", session.CaptchaOptions(), auth.Captcha)

		apiGroup.Use(middleware.Jwt())
		apiGroup.GET("/auth/me", auth.Me)
		apiGroup.POST("/auth/logout", auth.Logout)
		apiGroup.POST("/auth/password", auth.ChangePassword)

		analyticsGroup := apiGroup.Group("/analytics")
		{
			analyticsGroup.GET("/reports", analyticsCtl.ListReports)
			analyticsGroup.DELETE("/reports/:name", analyticsCtl.DeleteReport)
			analyticsGroup.GET("/dashboard", analyticsCtl.GetDashboard)
			analyticsGroup.GET("/kpis", analyticsCtl.GetKPIs)
			analyticsGroup.GET("/top-products", analyticsCtl.GetTopProducts)
			analyticsGroup.GET("/segments", analyticsCtl.GetSegmentation)
			analyticsGroup.GET("/revenue-chart", analyticsCtl.GetRevenueChart)
			analyticsGroup.GET("/campaigns", analyticsCtl.GetCampaignPerformance)
			analyticsGroup.GET("/insights", analyticsCtl.GetInsights)
			analyticsGroup.GET("/export", analyticsCtl.ExportDashboard)
		}

		crmGroup := apiGroup.Group("/crm")
		{
			crmGroup.GET("/customers", crmCtl.ListCustomers)
			crmGroup.GET("/customers/search", crmCtl.SearchCustomers)
			crmGroup.POST("/customers", crmCtl.CreateCustomer)
			crmGroup.GET("/customers/:id", crmCtl.GetCustomer)
			crmGroup.PATCH("/customers/:id", crmCtl.UpdateCustomer)
			crmGroup.DELETE("/customers/:id", crmCtl.DeleteCustomer)
			crmGroup.GET("/customers/:id/activities", crmCtl.ListActivities)
			crmGroup.POST("/customers/:id/activities", crmCtl.AddActivity)
			crmGroup.GET("/stats", crmCtl.GetStats)
			crmGroup.POST("/tiers/recompute", crmCtl.RecomputeTiers)

			crmGroup.GET("/campaigns", campaignCtl.ListCampaigns)
			crmGroup.POST("/campaigns", campaignCtl.CreateCampaign)
		}

		monitorGroup := apiGroup.Group("/monitor")
		{
			monitorGroup.GET("/stats", func(c *gin.Context) {
				timeRange := c.DefaultQuery("range", "1h")
				stats, err := monitoring.GetMonitoringStats(timeRange)
				if err != nil {
					response.Error(c, response.ERROR, err.Error())
					return
				}
				response.Success(c, stats)
			})

			monitorGroup.GET("/requests", func(c *gin.Context) {
				limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "100"), 10, 64)
				requests, err := monitoring.GetRecentHTTPRequests(limit)
				if err != nil {
					response.Error(c, response.ERROR, err.Error())
					return
				}
				response.Success(c, requests)
			})

			monitorGroup.GET("/websocket", func(c *gin.Context) {
				response.Success(c, public_service.GetWebSocketService().GetMetrics())
			})

			monitorGroup.GET("/cache", func(c *gin.Context) {
				response.Success(c, deps.Cache.GetStats())
			})

			monitorGroup.DELETE("/cache", func(c *gin.Context) {
				if err := deps.Cache.Clear(c.Request.Context()); err != nil {
					response.Error(c, response.ERROR, err.Error())
					return
				}
				response.Success(c, true)
			})

			monitorGroup.POST("/cache/toggle", func(c *gin.Context) {
				enabled, err := strconv.ParseBool(c.DefaultQuery("enabled", "true"))
				if err != nil {
					response.Error(c, response.INVALID_PARAMS, "enabled must be a boolean")
					return
				}
				if enabled {
					deps.Cache.Enable()
				} else {
					deps.Cache.Disable()
				}
				response.Success(c, gin.H{"enabled": enabled})
			})
		}
	}
}
