package admin

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"omnily-go-admin/inout"
	"omnily-go-admin/pkg/monitoring"
	"omnily-go-admin/services/analytics_service"
	"omnily-go-admin/utils"
)

// Analytics exposes the derived dashboard over HTTP. Every handler is
// scoped to the caller's organization from the JWT claims.
type Analytics struct {
	svc     *analytics_service.AnalyticsService
	storage *utils.ReportStorage
}

// NewAnalytics wires the analytics endpoints. storage may be nil when no
// object store is configured; exports then only stream to the caller.
func NewAnalytics(svc *analytics_service.AnalyticsService, storage *utils.ReportStorage) *Analytics {
	return &Analytics{svc: svc, storage: storage}
}

// GetDashboard returns the full composed dashboard for the requested window.
func (a *Analytics) GetDashboard(c *gin.Context) {
	orgID, err := utils.GetOrgID(c)
	if err != nil {
		Resp.Err(c, 20003, err.Error())
		return
	}

	var params inout.GetDashboardReq
	if err := c.ShouldBind(&params); err != nil {
		Resp.Err(c, 20001, err.Error())
		return
	}

	dashboard, err := a.svc.GetDashboard(c.Request.Context(), orgID, params.Days)
	if err != nil {
		Resp.Err(c, 20002, err.Error())
		return
	}
	Resp.Succ(c, dashboard)
}

// GetKPIs returns the KPI block only, for lightweight polling.
func (a *Analytics) GetKPIs(c *gin.Context) {
	orgID, err := utils.GetOrgID(c)
	if err != nil {
		Resp.Err(c, 20003, err.Error())
		return
	}

	var params inout.GetDashboardReq
	if err := c.ShouldBind(&params); err != nil {
		Resp.Err(c, 20001, err.Error())
		return
	}

	kpi, err := a.svc.GetKPIs(c.Request.Context(), orgID, params.Days)
	if err != nil {
		Resp.Err(c, 20002, err.Error())
		return
	}
	Resp.Succ(c, kpi)
}

// GetTopProducts returns the reward redemption leaderboard.
func (a *Analytics) GetTopProducts(c *gin.Context) {
	orgID, err := utils.GetOrgID(c)
	if err != nil {
		Resp.Err(c, 20003, err.Error())
		return
	}

	var params inout.GetTopProductsReq
	if err := c.ShouldBind(&params); err != nil {
		Resp.Err(c, 20001, err.Error())
		return
	}

	products, err := a.svc.GetTopProducts(c.Request.Context(), orgID, params.Limit)
	if err != nil {
		Resp.Err(c, 20002, err.Error())
		return
	}
	Resp.Succ(c, products)
}

// GetSegmentation returns the customer segment distribution.
func (a *Analytics) GetSegmentation(c *gin.Context) {
	orgID, err := utils.GetOrgID(c)
	if err != nil {
		Resp.Err(c, 20003, err.Error())
		return
	}

	segments, err := a.svc.GetCustomerSegmentation(c.Request.Context(), orgID)
	if err != nil {
		Resp.Err(c, 20002, err.Error())
		return
	}
	Resp.Succ(c, segments)
}

// GetRevenueChart returns the daily revenue series.
func (a *Analytics) GetRevenueChart(c *gin.Context) {
	orgID, err := utils.GetOrgID(c)
	if err != nil {
		Resp.Err(c, 20003, err.Error())
		return
	}

	var params inout.GetDashboardReq
	if err := c.ShouldBind(&params); err != nil {
		Resp.Err(c, 20001, err.Error())
		return
	}

	chart, err := a.svc.GetRevenueChart(c.Request.Context(), orgID, params.Days)
	if err != nil {
		Resp.Err(c, 20002, err.Error())
		return
	}
	Resp.Succ(c, chart)
}

// GetCampaignPerformance returns per-campaign ROI rows.
func (a *Analytics) GetCampaignPerformance(c *gin.Context) {
	orgID, err := utils.GetOrgID(c)
	if err != nil {
		Resp.Err(c, 20003, err.Error())
		return
	}

	rows, err := a.svc.GetCampaignPerformance(c.Request.Context(), orgID)
	if err != nil {
		Resp.Err(c, 20002, err.Error())
		return
	}
	Resp.Succ(c, rows)
}

// GetInsights returns trend projections and recommendations.
func (a *Analytics) GetInsights(c *gin.Context) {
	orgID, err := utils.GetOrgID(c)
	if err != nil {
		Resp.Err(c, 20003, err.Error())
		return
	}

	var params inout.GetDashboardReq
	if err := c.ShouldBind(&params); err != nil {
		Resp.Err(c, 20001, err.Error())
		return
	}

	insights, err := a.svc.GetAIInsights(c.Request.Context(), orgID, params.Days)
	if err != nil {
		Resp.Err(c, 20002, err.Error())
		return
	}
	Resp.Succ(c, insights)
}

// ExportDashboard streams the dashboard as a CSV attachment. When an
// object store is configured the report is also archived there.
func (a *Analytics) ExportDashboard(c *gin.Context) {
	orgID, err := utils.GetOrgID(c)
	if err != nil {
		Resp.Err(c, 20003, err.Error())
		return
	}

	var params inout.GetDashboardReq
	if err := c.ShouldBind(&params); err != nil {
		Resp.Err(c, 20001, err.Error())
		return
	}

	filename, data, err := a.svc.ExportDashboardCSV(c.Request.Context(), orgID, params.Days)
	if err != nil {
		Resp.Err(c, 20002, err.Error())
		return
	}

	if a.storage != nil {
		if url, err := a.storage.UploadReport(filename, bytes.NewReader(data)); err == nil {
			c.Header("X-Report-URL", url)
		}
	}

	uid := strconv.Itoa(c.GetInt("uid"))
	monitoring.SaveAuditEvent("dashboard_export", orgID, filename, uid)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(200, "text/csv", data)
}

// ListReports lists the archived dashboard exports.
func (a *Analytics) ListReports(c *gin.Context) {
	if a.storage == nil {
		Resp.Err(c, 20002, "report archive is not configured")
		return
	}

	reports, err := a.storage.ListReports()
	if err != nil {
		Resp.Err(c, 20002, err.Error())
		return
	}
	Resp.Succ(c, reports)
}

// DeleteReport removes an archived export.
func (a *Analytics) DeleteReport(c *gin.Context) {
	if a.storage == nil {
		Resp.Err(c, 20002, "report archive is not configured")
		return
	}

	name := c.Param("name")
	if name == "" {
		Resp.Err(c, 20001, "report name is required")
		return
	}

	if err := a.storage.DeleteReport(name); err != nil {
		Resp.Err(c, 20002, err.Error())
		return
	}

	uid := strconv.Itoa(c.GetInt("uid"))
	orgID, _ := utils.GetOrgID(c)
	monitoring.SaveAuditEvent("report_delete", orgID, name, uid)

	Resp.Succ(c, true)
}
