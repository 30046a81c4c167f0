package crm_service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"omnily-go-admin/inout"
	"omnily-go-admin/model/crm_model"
)

// ListCampaigns returns the organization's campaigns, newest first.
func (s *CRMService) ListCampaigns(ctx context.Context, organizationId string) ([]crm_model.MarketingCampaign, error) {
	var campaigns []crm_model.MarketingCampaign
	err := s.db.WithContext(ctx).Model(&crm_model.MarketingCampaign{}).
		Scopes(applyOrganization(organizationId)).
		Order("created_at DESC").
		Find(&campaigns).Error
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	return campaigns, nil
}

// CreateCampaign registers a draft campaign and publishes the creation event.
func (s *CRMService) CreateCampaign(ctx context.Context, organizationId, createdBy string, params inout.CreateCampaignReq) (*crm_model.MarketingCampaign, error) {
	campaign := crm_model.MarketingCampaign{
		Id:             uuid.NewString(),
		OrganizationId: organizationId,
		Name:           params.Name,
		Type:           params.Type,
		Status:         crm_model.CampaignStatusDraft,
		Subject:        params.Subject,
		Content:        params.Content,
		TargetSegments: params.TargetSegments,
		Budget:         params.Budget,
		CreatedBy:      createdBy,
		CreatedAt:      time.Now(),
	}
	if params.ScheduledAt != "" {
		scheduledAt, err := time.Parse(time.RFC3339, params.ScheduledAt)
		if err != nil {
			return nil, fmt.Errorf("invalid scheduled_at: %w", err)
		}
		campaign.ScheduledAt = &scheduledAt
		campaign.Status = crm_model.CampaignStatusScheduled
	}

	if err := s.db.WithContext(ctx).Create(&campaign).Error; err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.PublishCampaignEvent(organizationId, campaign.Id, "created"); err != nil {
			log.Printf("publish campaign event failed: %v", err)
		}
	}
	return &campaign, nil
}
