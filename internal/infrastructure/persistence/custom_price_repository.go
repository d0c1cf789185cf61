package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/pricing"
	"github.com/retailcore/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCustomerCustomPriceRepository implements CustomerCustomPriceRepository using GORM
type GormCustomerCustomPriceRepository struct {
	db *gorm.DB
}

// NewGormCustomerCustomPriceRepository creates a new GormCustomerCustomPriceRepository
func NewGormCustomerCustomPriceRepository(db *gorm.DB) *GormCustomerCustomPriceRepository {
	return &GormCustomerCustomPriceRepository{db: db}
}

// FindByID finds a custom price row by ID
func (r *GormCustomerCustomPriceRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.CustomerCustomPrice, error) {
	var price pricing.CustomerCustomPrice
	if err := r.db.WithContext(ctx).First(&price, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &price, nil
}

// FindByCustomer finds all rows for a customer
func (r *GormCustomerCustomPriceRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*pricing.CustomerCustomPrice, error) {
	var prices []*pricing.CustomerCustomPrice
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&prices).Error; err != nil {
		return nil, err
	}
	return prices, nil
}

// FindByCustomerAndProduct finds rows for a (customer, product) pair
func (r *GormCustomerCustomPriceRepository) FindByCustomerAndProduct(ctx context.Context, customerID, productID uuid.UUID) ([]*pricing.CustomerCustomPrice, error) {
	var prices []*pricing.CustomerCustomPrice
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		Order("min_quantity ASC").
		Find(&prices).Error; err != nil {
		return nil, err
	}
	return prices, nil
}

// FindActiveByCustomerAndProduct finds rows active at the given instant
func (r *GormCustomerCustomPriceRepository) FindActiveByCustomerAndProduct(ctx context.Context, customerID, productID uuid.UUID, at time.Time) ([]*pricing.CustomerCustomPrice, error) {
	var prices []*pricing.CustomerCustomPrice
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND product_id = ? AND is_active = ?", customerID, productID, true).
		Where("effective_from <= ?", at).
		Where("effective_to IS NULL OR effective_to > ?", at).
		Order("min_quantity ASC").
		Find(&prices).Error; err != nil {
		return nil, err
	}
	return prices, nil
}

// Save creates or updates a custom price row
func (r *GormCustomerCustomPriceRepository) Save(ctx context.Context, price *pricing.CustomerCustomPrice) error {
	return r.db.WithContext(ctx).Save(price).Error
}

// SaveAll persists a batch of rows
func (r *GormCustomerCustomPriceRepository) SaveAll(ctx context.Context, prices []*pricing.CustomerCustomPrice) error {
	if len(prices) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Save(prices).Error
}

// Delete soft-deletes a row
func (r *GormCustomerCustomPriceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&pricing.CustomerCustomPrice{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ pricing.CustomerCustomPriceRepository = (*GormCustomerCustomPriceRepository)(nil)
