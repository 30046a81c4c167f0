package crm_service

import (
	"context"

	"gorm.io/gorm"
)

// DashboardInvalidator drops cached analytics compositions after a write so
// dashboard reads always reflect the latest customer data.
type DashboardInvalidator interface {
	InvalidateDashboards(ctx context.Context, organizationId string)
}

// CampaignNotifier publishes campaign lifecycle events to the message queue.
type CampaignNotifier interface {
	PublishCampaignEvent(organizationId, campaignId, event string) error
}

// CRMService owns the customer, activity and campaign data access for the
// back office. The database handle is injected rather than read from ambient
// state.
type CRMService struct {
	db          *gorm.DB
	invalidator DashboardInvalidator
	notifier    CampaignNotifier
}

func NewCRMService(db *gorm.DB, invalidator DashboardInvalidator, notifier CampaignNotifier) *CRMService {
	return &CRMService{db: db, invalidator: invalidator, notifier: notifier}
}

func (s *CRMService) invalidateDashboards(ctx context.Context, organizationId string) {
	if s.invalidator != nil {
		s.invalidator.InvalidateDashboards(ctx, organizationId)
	}
}

// applyOrganization scopes a query to one tenant.
func applyOrganization(organizationId string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("organization_id = ?", organizationId)
	}
}
