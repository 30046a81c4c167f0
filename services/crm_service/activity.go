package crm_service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"omnily-go-admin/inout"
	"omnily-go-admin/model/crm_model"
)

// ListActivities returns a customer's latest activities, newest first.
func (s *CRMService) ListActivities(ctx context.Context, customerId, organizationId string, limit int) ([]crm_model.CustomerActivity, error) {
	if limit <= 0 {
		limit = 50
	}
	var activities []crm_model.CustomerActivity
	err := s.db.WithContext(ctx).Model(&crm_model.CustomerActivity{}).
		Scopes(applyOrganization(organizationId)).
		Where("customer_id = ?", customerId).
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}

// AddActivity records one activity row and refreshes the customer's derived
// stats. A purchase with spent points also records the matching redemption
// usage. The dashboard cache for the organization is invalidated afterwards.
func (s *CRMService) AddActivity(ctx context.Context, customerId, organizationId string, params inout.AddActivityReq) (*crm_model.CustomerActivity, error) {
	if _, err := s.GetCustomer(ctx, customerId, organizationId); err != nil {
		return nil, err
	}

	activity := crm_model.CustomerActivity{
		Id:                  uuid.NewString(),
		CustomerId:          customerId,
		OrganizationId:      organizationId,
		ActivityType:        params.ActivityType,
		ActivityTitle:       params.Title,
		ActivityDescription: params.Description,
		MonetaryValue:       params.MonetaryValue,
		PointsEarned:        params.PointsEarned,
		PointsSpent:         params.PointsSpent,
		CreatedAt:           time.Now(),
	}

	if err := s.db.WithContext(ctx).Create(&activity).Error; err != nil {
		return nil, fmt.Errorf("record activity: %w", err)
	}

	// Apply the point movement and visit count for this activity before the
	// derived stats refresh.
	increments := map[string]interface{}{
		"visits": gorm.Expr("visits + 1"),
	}
	if delta := params.PointsEarned - params.PointsSpent; delta != 0 {
		increments["points"] = gorm.Expr("points + ?", delta)
	}
	err := s.db.WithContext(ctx).Model(&crm_model.Customer{}).
		Scopes(applyOrganization(organizationId)).
		Where("id = ?", customerId).
		Updates(increments).Error
	if err != nil {
		return nil, fmt.Errorf("apply activity counters: %w", err)
	}

	if err := s.refreshCustomerStats(ctx, customerId, organizationId); err != nil {
		// The activity row is already durable; a failed stats refresh is
		// recoverable on the next write, so it does not fail the request.
		log.Printf("refresh customer stats for %s failed: %v", customerId, err)
	}

	s.invalidateDashboards(ctx, organizationId)
	return &activity, nil
}

// refreshCustomerStats recomputes the derived customer columns from the
// purchase history: totals, average order value, lifetime value estimate,
// engagement score and churn risk.
func (s *CRMService) refreshCustomerStats(ctx context.Context, customerId, organizationId string) error {
	var purchases []crm_model.CustomerActivity
	err := s.db.WithContext(ctx).Model(&crm_model.CustomerActivity{}).
		Select("monetary_value").
		Where("customer_id = ? AND activity_type = ?", customerId, crm_model.ActivityPurchase).
		Find(&purchases).Error
	if err != nil {
		return fmt.Errorf("load purchase history: %w", err)
	}

	totalSpent := decimal.Zero
	for _, p := range purchases {
		totalSpent = totalSpent.Add(decimal.NewFromFloat(p.MonetaryValue))
	}
	totalOrders := len(purchases)

	spent, _ := totalSpent.Round(2).Float64()
	avgOrderValue := 0.0
	if totalOrders > 0 {
		avg, _ := totalSpent.DivRound(decimal.NewFromInt(int64(totalOrders)), 2).Float64()
		avgOrderValue = avg
	}

	now := time.Now()
	updates := map[string]interface{}{
		"total_spent":          spent,
		"total_orders":         totalOrders,
		"avg_order_value":      avgOrderValue,
		"lifetime_value":       spent * 1.2,
		"engagement_score":     engagementScore(&now, totalOrders, spent, now),
		"predicted_churn_risk": churnRisk(&now, totalOrders, now),
		"last_activity":        now,
		"last_visit":           now,
		"updated_at":           now,
	}

	return s.db.WithContext(ctx).Model(&crm_model.Customer{}).
		Scopes(applyOrganization(organizationId)).
		Where("id = ?", customerId).
		Updates(updates).Error
}
