package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormSaleReturnRepository implements SaleReturnRepository using GORM
type GormSaleReturnRepository struct {
	db *gorm.DB
}

// NewGormSaleReturnRepository creates a new GormSaleReturnRepository
func NewGormSaleReturnRepository(db *gorm.DB) *GormSaleReturnRepository {
	return &GormSaleReturnRepository{db: db}
}

// FindByID finds a sale return with its items by ID
func (r *GormSaleReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SaleReturn, error) {
	var ret trade.SaleReturn
	if err := r.db.WithContext(ctx).
		Preload("Items", orderItemsByCreation).
		First(&ret, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ret, nil
}

// FindBySale finds all returns written against a sale
func (r *GormSaleReturnRepository) FindBySale(ctx context.Context, saleID uuid.UUID) ([]*trade.SaleReturn, error) {
	var returns []*trade.SaleReturn
	if err := r.db.WithContext(ctx).
		Preload("Items", orderItemsByCreation).
		Where("sale_id = ?", saleID).
		Order("created_at ASC").
		Find(&returns).Error; err != nil {
		return nil, err
	}
	return returns, nil
}

// Save creates or updates a sale return and its items
func (r *GormSaleReturnRepository) Save(ctx context.Context, ret *trade.SaleReturn) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(ret).Error
}

var _ trade.SaleReturnRepository = (*GormSaleReturnRepository)(nil)
