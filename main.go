package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"omnily-go-admin/config"
	"omnily-go-admin/db"
	"omnily-go-admin/inout"
	"omnily-go-admin/middleware"
	"omnily-go-admin/model"
	"omnily-go-admin/mongodb"
	"omnily-go-admin/pkg/cache"
	pkgconfig "omnily-go-admin/pkg/config"
	"omnily-go-admin/pkg/monitoring"
	"omnily-go-admin/redis"
	"omnily-go-admin/router"
	"omnily-go-admin/services"
	"omnily-go-admin/services/analytics_service"
	"omnily-go-admin/services/crm_service"
	"omnily-go-admin/services/public_service"
	"omnily-go-admin/utils"
)

// Build-time variables.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "-version", "--version", "-v":
			fmt.Printf("Omnily Go Admin\n")
			fmt.Printf("Version: %s\n", Version)
			fmt.Printf("Build Time: %s\n", BuildTime)
			fmt.Printf("Git Commit: %s\n", GitCommit)
			return
		case "-help", "--help", "-h":
			fmt.Printf("Omnily Go Admin - loyalty analytics back office\n\n")
			fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
			fmt.Printf("Options:\n")
			fmt.Printf("  -version, -v     print version information\n")
			fmt.Printf("  -help, -h        print this help\n\n")
			fmt.Printf("Environment Variables:\n")
			fmt.Printf("  PORT             listen port (default from config)\n")
			fmt.Printf("  MYSQL_DSN        MySQL connection string\n")
			fmt.Printf("  REDIS_ADDR       Redis address\n")
			fmt.Printf("  AMQP_URL         notification queue URL (optional)\n")
			fmt.Printf("  TOS_BUCKET       report archive bucket (optional)\n")
			return
		}
	}

	if err := pkgconfig.InitConfig(); err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	cfg := pkgconfig.GetConfig()

	if err := redis.InitRedis(config.LoadConfig()); err != nil {
		log.Fatalf("redis init failed: %v", err)
	}
	defer redis.CloseRedis()

	gormDB, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("database open failed: %v", err)
	}

	mongodb.InitMongoDB()

	cacheManager := cache.NewCacheManager(redis.GetClient())

	analyticsService := analytics_service.NewAnalyticsService(gormDB, cacheManager, analyticsConfig(cfg))

	var notifier crm_service.CampaignNotifier
	var notificationService *services.NotificationService
	if cfg.AMQP.URL != "" {
		ns, err := services.NewNotificationService(cfg.AMQP.URL)
		if err != nil {
			log.Printf("notification queue unavailable, continuing without it: %v", err)
		} else {
			notificationService = ns
			notifier = ns
			defer ns.Close()
		}
	}

	crmService := crm_service.NewCRMService(gormDB, analyticsService, notifier)

	var reportStorage *utils.ReportStorage
	if cfg.Storage.Bucket != "" {
		rs, err := utils.NewReportStorage(utils.ReportStorageConfig{
			Endpoint:        cfg.Storage.Endpoint,
			Region:          cfg.Storage.Region,
			BucketName:      cfg.Storage.Bucket,
			AccessKeyID:     cfg.Storage.AccessKey,
			AccessKeySecret: cfg.Storage.SecretKey,
		})
		if err != nil {
			log.Printf("report storage unavailable, exports stream only: %v", err)
		} else {
			reportStorage = rs
			defer rs.Close()
		}
	}

	wsService := public_service.GetWebSocketService()
	wsService.InitHub()

	// Queued events reach dashboards on every instance, not just the one
	// that published them.
	if notificationService != nil {
		notificationService.ConsumeNotifications(func(n model.Notification) {
			wsService.PushNotification(n.OrganizationId, n)
		})
	}

	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go runRealtimeSupervisor(rootCtx, analyticsService, wsService, notificationService, cfg.Analytics.RefreshInterval)

	switch {
	case pkgconfig.IsProduction():
		gin.SetMode(gin.ReleaseMode)
	case pkgconfig.IsDevelopment():
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(cfg.Server.Mode)
	}
	app := gin.New()

	app.Use(middleware.Recovery())
	app.Use(middleware.ErrorHandler())
	app.Use(middleware.RequestLogger("ginlog"))
	app.Use(middleware.Performance())
	app.Use(middleware.RequestID())
	app.Use(middleware.SecureHeaders())
	app.Use(middleware.RateLimit(cfg.Security.RateLimit))
	app.Use(monitoring.PrometheusMiddleware())

	router.Init(app, router.Deps{
		DB:            gormDB,
		Analytics:     analyticsService,
		CRM:           crmService,
		ReportStorage: reportStorage,
		Cache:         cacheManager,
	})

	port := getEnv("PORT", cfg.Server.Port)
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      app,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("listening on :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	wsService.BroadcastNotice("server is shutting down, please reconnect shortly")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
	log.Println("server stopped")
}

// analyticsConfig maps the application thresholds onto the derivation config.
func analyticsConfig(cfg *pkgconfig.Config) analytics_service.Config {
	a := cfg.Analytics
	return analytics_service.Config{
		VIPPosition:          a.VIPPosition,
		RegularPosition:      a.RegularPosition,
		OccasionalPosition:   a.OccasionalPosition,
		RetentionCritical:    a.RetentionCritical,
		RetentionWarning:     a.RetentionWarning,
		RevenueDropCritical:  a.RevenueDropCritical,
		RedemptionRateFloor:  a.RedemptionRateFloor,
		RedemptionMinPoints:  a.RedemptionMinPoints,
		CustomersDropWarning: a.CustomersDropWarning,
		GrowthInfoThreshold:  a.GrowthInfoThreshold,
		AverageTicketTarget:  a.AverageTicketTarget,
		AtRiskShareLimit:     a.AtRiskShareLimit,
		VIPShareFloor:        a.VIPShareFloor,
		RedemptionRemindRate: a.RedemptionRemindRate,
	}
}

// runRealtimeSupervisor keeps one dashboard refresher running per watched
// organization. Refreshers start when the first client subscribes and stop
// once the last one disconnects.
func runRealtimeSupervisor(ctx context.Context, svc *analytics_service.AnalyticsService, ws *public_service.WebSocketService, notifications *services.NotificationService, interval time.Duration) {
	const refreshDays = 30

	var mu sync.Mutex
	running := make(map[string]context.CancelFunc)

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			mu.Lock()
			for _, stop := range running {
				stop()
			}
			mu.Unlock()
			return
		case <-ticker.C:
			watched := make(map[string]bool)
			for _, orgID := range ws.WatchedOrganizations() {
				watched[orgID] = true
			}

			mu.Lock()
			for orgID, stop := range running {
				if !watched[orgID] {
					stop()
					delete(running, orgID)
				}
			}
			for orgID := range watched {
				if _, ok := running[orgID]; ok {
					continue
				}
				orgCtx, stop := context.WithCancel(ctx)
				running[orgID] = stop

				refresher := analytics_service.NewRefresher(svc, interval)
				org := orgID
				go refresher.Run(orgCtx, org, refreshDays, func(dashboard *inout.AnalyticsDashboard) {
					ws.PushDashboard(org, dashboard)
					publishAnomalies(svc, ws, notifications, org, dashboard)
				})
			}
			mu.Unlock()
		}
	}
}

// publishAnomalies fans detected anomalies out to the dashboard stream and,
// when configured, the notification queue.
func publishAnomalies(svc *analytics_service.AnalyticsService, ws *public_service.WebSocketService, notifications *services.NotificationService, organizationID string, dashboard *inout.AnalyticsDashboard) {
	anomalies := svc.DetectAnomalies(dashboard.Kpi)
	if len(anomalies) == 0 {
		return
	}

	ws.PushAnomalies(organizationID, anomalies)

	if notifications == nil {
		return
	}
	for _, anomaly := range anomalies {
		if anomaly.Type != "critical" {
			continue
		}
		if err := notifications.PublishAnomalyAlert(organizationID, anomaly); err != nil {
			log.Printf("anomaly alert publish failed for org %s: %v", organizationID, err)
		}
	}
}
