package admin

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"omnily-go-admin/inout"
	"omnily-go-admin/pkg/monitoring"
	"omnily-go-admin/services/crm_service"
	"omnily-go-admin/utils"
)

// CRM exposes customer management endpoints, organization-scoped.
type CRM struct {
	svc *crm_service.CRMService
}

func NewCRM(svc *crm_service.CRMService) *CRM {
	return &CRM{svc: svc}
}

// ListCustomers returns a filtered, paginated customer page.
func (h *CRM) ListCustomers(c *gin.Context) {
	orgID, err := utils.GetOrgID(c)
	if err != nil {
		Resp.Err(c, 20003, err.Error())
		return
	}

	var params inout.ListCustomersReq
	if err := c.ShouldBind(&params); err != nil {
		Resp.Err(c, 20001, err.Error())
		return
	}

	page, err := h.svc.ListCustomers(c.Request.Context(), orgID, params)
	if err != nil {
		Resp.Err(c, 20002, err.Error())
		return
	}
	Resp.Succ(c, page)
}

// SearchCustomers does a quick lookup for autocomplete widgets.
func (h *CRM) SearchCustomers(c *gin.Context) {
	orgID, err := utils.GetOrgID(c)
	if err != nil {
		Resp.Err(c, 20003, err.Error())
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	customers, err := h.svc.SearchCustomers(c.Request.Context(), orgID, c.Query("q"), limit)
	if err != nil {
		Resp.Err(c, 20002, err.Error())
		return
	}
	Resp.Succ(c, customers)
}

// GetCustomer returns one customer by id.
func (h *CRM) GetCustomer(c *gin.Context) {
	orgID, err := utils.GetOrgID(c)
	if err != nil {
		Resp.Err(c, 20003, err.Error())
		return
	}

	customer, err := h.svc.GetCustomer(c.Request.Context(), c.Param("id"), orgID)
	if err != nil {
		Resp.Err(c, 20002, err.Error())
		return
	}
	Resp.Succ(c, customer)
}

// CreateCustomer registers a new customer in the caller's organization.
func (h *CRM) CreateCustomer(c *gin.Context) {
	orgID, err := utils.GetOrgID(c)
	if err != nil {
		Resp.Err(c, 20003, err.Error())
		return
	}

	var params inout.CreateCustomerReq
	if err := c.ShouldBindJSON(&params); err != nil {
		Resp.Err(c, 20001, err.Error())
		return
	}

	customer, err := h.svc.CreateCustomer(c.Request.Context(), orgID, params)
	if err != nil {
		Resp.Err(c, 20002, err.Error())
		return
	}

	uid := strconv.Itoa(c.GetInt("uid"))
	monitoring.SaveAuditEvent("customer_create", orgID, customer.Id, uid)

	Resp.Succ(c, customer)
}

// UpdateCustomer applies a partial update.
func (h *CRM) UpdateCustomer(c *gin.Context) {
	orgID, err := utils.GetOrgID(c)
	if err != nil {
		Resp.Err(c, 20003, err.Error())
		return
	}

	var params inout.UpdateCustomerReq
	if err := c.ShouldBindJSON(&params); err != nil {
		Resp.Err(c, 20001, err.Error())
		return
	}

	customer, err := h.svc.UpdateCustomer(c.Request.Context(), c.Param("id"), orgID, params)
	if err != nil {
		Resp.Err(c, 20002, err.Error())
		return
	}

	uid := strconv.Itoa(c.GetInt("uid"))
	monitoring.SaveAuditEvent("customer_update", orgID, customer.Id, uid)

	Resp.Succ(c, customer)
}

// DeleteCustomer removes a customer and its activity history.
func (h *CRM) DeleteCustomer(c *gin.Context) {
	orgID, err := utils.GetOrgID(c)
	if err != nil {
		Resp.Err(c, 20003, err.Error())
		return
	}

	customerID := c.Param("id")
	if err := h.svc.DeleteCustomer(c.Request.Context(), customerID, orgID); err != nil {
		Resp.Err(c, 20002, err.Error())
		return
	}

	uid := strconv.Itoa(c.GetInt("uid"))
	monitoring.SaveAuditEvent("customer_delete", orgID, customerID, uid)

	Resp.Succ(c, gin.H{"deleted": customerID})
}

// ListActivities returns a customer's recent activity timeline.
func (h *CRM) ListActivities(c *gin.Context) {
	orgID, err := utils.GetOrgID(c)
	if err != nil {
		Resp.Err(c, 20003, err.Error())
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	activities, err := h.svc.ListActivities(c.Request.Context(), c.Param("id"), orgID, limit)
	if err != nil {
		Resp.Err(c, 20002, err.Error())
		return
	}
	Resp.Succ(c, activities)
}

// AddActivity records an interaction and refreshes the customer's
// derived stats and scores.
func (h *CRM) AddActivity(c *gin.Context) {
	orgID, err := utils.GetOrgID(c)
	if err != nil {
		Resp.Err(c, 20003, err.Error())
		return
	}

	var params inout.AddActivityReq
	if err := c.ShouldBindJSON(&params); err != nil {
		Resp.Err(c, 20001, err.Error())
		return
	}

	activity, err := h.svc.AddActivity(c.Request.Context(), c.Param("id"), orgID, params)
	if err != nil {
		Resp.Err(c, 20002, err.Error())
		return
	}
	Resp.Succ(c, activity)
}

// GetStats returns the organization-level CRM summary.
func (h *CRM) GetStats(c *gin.Context) {
	orgID, err := utils.GetOrgID(c)
	if err != nil {
		Resp.Err(c, 20003, err.Error())
		return
	}

	stats, err := h.svc.GetCRMStats(c.Request.Context(), orgID)
	if err != nil {
		Resp.Err(c, 20002, err.Error())
		return
	}
	Resp.Succ(c, stats)
}

// RecomputeTiers re-runs tier classification for the whole organization.
// With ?async=true the work is queued on the shared pool instead.
func (h *CRM) RecomputeTiers(c *gin.Context) {
	orgID, err := utils.GetOrgID(c)
	if err != nil {
		Resp.Err(c, 20003, err.Error())
		return
	}

	if c.Query("async") == "true" {
		if err := h.svc.RecomputeTiersAsync(orgID); err != nil {
			Resp.Err(c, 20002, err.Error())
			return
		}
		Resp.Succ(c, gin.H{"queued": true})
		return
	}

	updated, err := h.svc.RecomputeTiers(c.Request.Context(), orgID)
	if err != nil {
		Resp.Err(c, 20002, err.Error())
		return
	}

	uid := strconv.Itoa(c.GetInt("uid"))
	monitoring.SaveAuditEvent("tier_recompute", orgID, strconv.Itoa(updated), uid)

	Resp.Succ(c, gin.H{"updated": updated})
}
