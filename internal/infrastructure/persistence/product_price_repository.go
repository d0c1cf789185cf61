package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/pricing"
	"github.com/retailcore/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductPriceRepository implements ProductPriceRepository using GORM
type GormProductPriceRepository struct {
	db *gorm.DB
}

// NewGormProductPriceRepository creates a new GormProductPriceRepository
func NewGormProductPriceRepository(db *gorm.DB) *GormProductPriceRepository {
	return &GormProductPriceRepository{db: db}
}

// FindByID finds a flat price row by ID
func (r *GormProductPriceRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.ProductPrice, error) {
	var price pricing.ProductPrice
	if err := r.db.WithContext(ctx).First(&price, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &price, nil
}

// FindByProduct finds all rows for a product, newest first
func (r *GormProductPriceRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*pricing.ProductPrice, error) {
	var prices []*pricing.ProductPrice
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("effective_from DESC").
		Find(&prices).Error; err != nil {
		return nil, err
	}
	return prices, nil
}

// FindActiveByProduct finds the product's active rows
func (r *GormProductPriceRepository) FindActiveByProduct(ctx context.Context, productID uuid.UUID) ([]*pricing.ProductPrice, error) {
	var prices []*pricing.ProductPrice
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND is_active = ?", productID, true).
		Order("effective_from DESC").
		Find(&prices).Error; err != nil {
		return nil, err
	}
	return prices, nil
}

// FindActiveByProductForUpdate locks the product's active rows for the
// duration of the surrounding transaction
func (r *GormProductPriceRepository) FindActiveByProductForUpdate(ctx context.Context, productID uuid.UUID) ([]*pricing.ProductPrice, error) {
	var prices []*pricing.ProductPrice
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ? AND is_active = ?", productID, true).
		Order("effective_from DESC").
		Find(&prices).Error; err != nil {
		return nil, err
	}
	return prices, nil
}

// Save creates or updates a flat price row
func (r *GormProductPriceRepository) Save(ctx context.Context, price *pricing.ProductPrice) error {
	return r.db.WithContext(ctx).Save(price).Error
}

// Delete soft-deletes a row
func (r *GormProductPriceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&pricing.ProductPrice{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ pricing.ProductPriceRepository = (*GormProductPriceRepository)(nil)
