package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"khata/internal/domain"
	"khata/internal/gst"
	"khata/internal/port"
)

const defaultItemUnit = "nos"

var defaultItemGSTRate = decimal.NewFromInt(18)

// CreateItemInput is the DTO for adding a catalog item. A nil GSTRate means 18%.
type CreateItemInput struct {
	Name        string           `json:"name" binding:"required" validate:"required,max=200"`
	Description string           `json:"description" validate:"max=1000"`
	HSNSAC      string           `json:"hsn_sac" validate:"omitempty,numeric,min=4,max=8"`
	Type        domain.ItemType  `json:"type" validate:"omitempty,oneof=goods service"`
	Unit        string           `json:"unit" validate:"max=20"`
	DefaultRate decimal.Decimal  `json:"default_rate" swaggertype:"number"`
	GSTRate     *decimal.Decimal `json:"gst_rate" swaggertype:"number"`
}

// UpdateItemInput is the DTO for editing a catalog item. Nil fields are left as they are.
type UpdateItemInput struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description" validate:"omitempty,max=1000"`
	HSNSAC      *string          `json:"hsn_sac" validate:"omitempty,numeric,min=4,max=8"`
	Type        *domain.ItemType `json:"type" validate:"omitempty,oneof=goods service"`
	Unit        *string          `json:"unit" validate:"omitempty,min=1,max=20"`
	DefaultRate *decimal.Decimal `json:"default_rate" swaggertype:"number"`
	GSTRate     *decimal.Decimal `json:"gst_rate" swaggertype:"number"`
	IsActive    *bool            `json:"is_active"`
}

// ItemService manages the catalog of goods and services a tenant bills for.
type ItemService interface {
	Create(ctx context.Context, tenantID, userID uuid.UUID, input CreateItemInput) (*domain.Item, error)
	GetByID(ctx context.Context, tenantID, itemID uuid.UUID) (*domain.Item, error)
	List(ctx context.Context, tenantID uuid.UUID, filter port.ItemFilter) ([]domain.Item, int, error)
	Update(ctx context.Context, tenantID, itemID uuid.UUID, input UpdateItemInput) (*domain.Item, error)
	Delete(ctx context.Context, tenantID, itemID uuid.UUID) error
}

type itemService struct {
	repo port.ItemRepository
}

// NewItemService creates a new ItemService implementation.
func NewItemService(repo port.ItemRepository) ItemService {
	return &itemService{repo: repo}
}

func checkItemRates(defaultRate, gstRate decimal.Decimal) error {
	if defaultRate.IsNegative() {
		return domain.Validationf("default_rate must not be negative")
	}
	if !gst.IsValidRate(gstRate) {
		return domain.Validationf("gst_rate %s is not a GST slab", gstRate.String())
	}
	return nil
}

func (s *itemService) Create(ctx context.Context, tenantID, userID uuid.UUID, input CreateItemInput) (*domain.Item, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.HSNSAC = strings.TrimSpace(input.HSNSAC)
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	item := &domain.Item{
		TenantID:    tenantID,
		Name:        input.Name,
		Description: strings.TrimSpace(input.Description),
		HSNSAC:      input.HSNSAC,
		Type:        input.Type,
		Unit:        strings.TrimSpace(input.Unit),
		DefaultRate: gst.Round2(input.DefaultRate),
		GSTRate:     defaultItemGSTRate,
		IsActive:    true,
		CreatedBy:   userID,
	}
	if input.GSTRate != nil {
		item.GSTRate = *input.GSTRate
	}
	if item.Type == "" {
		item.Type = domain.ItemService
	}
	if item.Unit == "" {
		item.Unit = defaultItemUnit
	}
	if err := checkItemRates(item.DefaultRate, item.GSTRate); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) GetByID(ctx context.Context, tenantID, itemID uuid.UUID) (*domain.Item, error) {
	return s.repo.GetByID(ctx, tenantID, itemID)
}

func (s *itemService) List(ctx context.Context, tenantID uuid.UUID, filter port.ItemFilter) ([]domain.Item, int, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return s.repo.List(ctx, tenantID, filter)
}

func (s *itemService) Update(ctx context.Context, tenantID, itemID uuid.UUID, input UpdateItemInput) (*domain.Item, error) {
	if input.HSNSAC != nil {
		trimmed := strings.TrimSpace(*input.HSNSAC)
		input.HSNSAC = &trimmed
	}
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	item, err := s.repo.GetByID(ctx, tenantID, itemID)
	if err != nil {
		return nil, err
	}

	setString(&item.Name, input.Name)
	if item.Name == "" {
		return nil, domain.Validationf("name must not be blank")
	}
	setString(&item.Description, input.Description)
	setString(&item.HSNSAC, input.HSNSAC)
	setString(&item.Unit, input.Unit)
	if input.Type != nil {
		item.Type = *input.Type
	}
	if input.DefaultRate != nil {
		item.DefaultRate = gst.Round2(*input.DefaultRate)
	}
	if input.GSTRate != nil {
		item.GSTRate = *input.GSTRate
	}
	setBool(&item.IsActive, input.IsActive)
	if err := checkItemRates(item.DefaultRate, item.GSTRate); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) Delete(ctx context.Context, tenantID, itemID uuid.UUID) error {
	return s.repo.SoftDelete(ctx, tenantID, itemID)
}
