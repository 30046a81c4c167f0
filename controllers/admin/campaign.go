package admin

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"omnily-go-admin/inout"
	"omnily-go-admin/pkg/monitoring"
	"omnily-go-admin/services/crm_service"
	"omnily-go-admin/utils"
)

// Campaign exposes marketing campaign management.
type Campaign struct {
	svc *crm_service.CRMService
}

func NewCampaign(svc *crm_service.CRMService) *Campaign {
	return &Campaign{svc: svc}
}

// ListCampaigns returns the organization's campaigns, newest first.
func (h *Campaign) ListCampaigns(c *gin.Context) {
	orgID, err := utils.GetOrgID(c)
	if err != nil {
		Resp.Err(c, 20003, err.Error())
		return
	}

	campaigns, err := h.svc.ListCampaigns(c.Request.Context(), orgID)
	if err != nil {
		Resp.Err(c, 20002, err.Error())
		return
	}
	Resp.Succ(c, campaigns)
}

// CreateCampaign creates a draft or scheduled campaign and queues its
// delivery notification.
func (h *Campaign) CreateCampaign(c *gin.Context) {
	orgID, err := utils.GetOrgID(c)
	if err != nil {
		Resp.Err(c, 20003, err.Error())
		return
	}

	var params inout.CreateCampaignReq
	if err := c.ShouldBindJSON(&params); err != nil {
		Resp.Err(c, 20001, err.Error())
		return
	}

	uid := strconv.Itoa(c.GetInt("uid"))
	campaign, err := h.svc.CreateCampaign(c.Request.Context(), orgID, uid, params)
	if err != nil {
		Resp.Err(c, 20002, err.Error())
		return
	}

	monitoring.SaveAuditEvent("campaign_create", orgID, campaign.Id, uid)

	Resp.Succ(c, campaign)
}
