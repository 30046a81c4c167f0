package crm_service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"omnily-go-admin/inout"
	"omnily-go-admin/model/crm_model"
)

var ErrCustomerNotFound = errors.New("customer not found")

// ListCustomers returns a filtered, paginated customer page for one
// organization, most recently seen first.
func (s *CRMService) ListCustomers(ctx context.Context, organizationId string, params inout.ListCustomersReq) (*inout.ListCustomersResp, error) {
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.PageSize <= 0 {
		params.PageSize = 50
	}
	offset := (params.Page - 1) * params.PageSize

	query := s.db.WithContext(ctx).Model(&crm_model.Customer{}).
		Scopes(applyOrganization(organizationId), applyStatusFilter(params.Status), applySearchFilter(params.Search))
	if params.Tier != "" {
		query = query.Where("tier = ?", params.Tier)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}

	var customers []crm_model.Customer
	err := query.Order("last_visit DESC").Order("created_at DESC").
		Offset(offset).Limit(params.PageSize).
		Find(&customers).Error
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	return &inout.ListCustomersResp{
		Total:    total,
		Items:    customers,
		Page:     params.Page,
		PageSize: params.PageSize,
	}, nil
}

// GetCustomer loads one customer, scoped to the organization.
func (s *CRMService) GetCustomer(ctx context.Context, customerId, organizationId string) (*crm_model.Customer, error) {
	var customer crm_model.Customer
	err := s.db.WithContext(ctx).
		Scopes(applyOrganization(organizationId)).
		Where("id = ?", customerId).
		First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load customer: %w", err)
	}
	return &customer, nil
}

// CreateCustomer registers a new customer for the organization.
func (s *CRMService) CreateCustomer(ctx context.Context, organizationId string, params inout.CreateCustomerReq) (*crm_model.Customer, error) {
	address := ""
	if params.City != "" && params.Country != "" {
		address = params.City + ", " + params.Country
	}

	now := time.Now()
	customer := crm_model.Customer{
		Id:               uuid.NewString(),
		OrganizationId:   organizationId,
		Name:             params.CompanyName,
		FirstName:        params.FirstName,
		LastName:         params.LastName,
		Email:            params.Email,
		Phone:            params.Phone,
		Address:          address,
		Tier:             TierBronze,
		Status:           StatusInactive,
		IsActive:         true,
		MarketingConsent: params.MarketingConsent,
		PrivacyConsent:   true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return &customer, nil
}

// UpdateCustomer applies a partial update, scoped to the organization.
func (s *CRMService) UpdateCustomer(ctx context.Context, customerId, organizationId string, params inout.UpdateCustomerReq) (*crm_model.Customer, error) {
	updates := map[string]interface{}{"updated_at": time.Now()}
	if params.CompanyName != "" {
		updates["name"] = params.CompanyName
	}
	if params.FirstName != "" {
		updates["first_name"] = params.FirstName
	}
	if params.LastName != "" {
		updates["last_name"] = params.LastName
	}
	if params.Email != "" {
		updates["email"] = params.Email
	}
	if params.Phone != "" {
		updates["phone"] = params.Phone
	}
	if params.Address != "" {
		updates["address"] = params.Address
	}

	result := s.db.WithContext(ctx).Model(&crm_model.Customer{}).
		Scopes(applyOrganization(organizationId)).
		Where("id = ?", customerId).
		Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("update customer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrCustomerNotFound
	}
	return s.GetCustomer(ctx, customerId, organizationId)
}

// DeleteCustomer removes a customer, scoped to the organization.
func (s *CRMService) DeleteCustomer(ctx context.Context, customerId, organizationId string) error {
	result := s.db.WithContext(ctx).
		Scopes(applyOrganization(organizationId)).
		Where("id = ?", customerId).
		Delete(&crm_model.Customer{})
	if result.Error != nil {
		return fmt.Errorf("delete customer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCustomerNotFound
	}
	s.invalidateDashboards(ctx, organizationId)
	return nil
}

// SearchCustomers matches name, email or phone.
func (s *CRMService) SearchCustomers(ctx context.Context, organizationId, search string, limit int) ([]crm_model.Customer, error) {
	if limit <= 0 {
		limit = 20
	}
	var customers []crm_model.Customer
	err := s.db.WithContext(ctx).Model(&crm_model.Customer{}).
		Scopes(applyOrganization(organizationId)).
		Where("name LIKE ? OR email LIKE ? OR phone LIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%").
		Order("last_visit DESC").
		Limit(limit).
		Find(&customers).Error
	if err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	return customers, nil
}

// applyStatusFilter maps the status filter onto the backing columns.
func applyStatusFilter(status string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch status {
		case "active":
			return db.Where("is_active = ?", true)
		case "inactive":
			return db.Where("is_active = ?", false)
		case "vip":
			return db.Where("tier = ? AND is_active = ?", TierPlatinum, true)
		default:
			return db
		}
	}
}

func applySearchFilter(search string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if search == "" {
			return db
		}
		return db.Where("name LIKE ? OR email LIKE ?", "%"+search+"%", "%"+search+"%")
	}
}
