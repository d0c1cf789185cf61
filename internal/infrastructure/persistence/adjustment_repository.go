package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/inventory"
	"github.com/retailcore/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormAdjustmentRepository implements AdjustmentRepository using GORM
type GormAdjustmentRepository struct {
	db *gorm.DB
}

// NewGormAdjustmentRepository creates a new GormAdjustmentRepository
func NewGormAdjustmentRepository(db *gorm.DB) *GormAdjustmentRepository {
	return &GormAdjustmentRepository{db: db}
}

// FindByID finds an adjustment by ID
func (r *GormAdjustmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryAdjustment, error) {
	var adjustment inventory.InventoryAdjustment
	if err := r.db.WithContext(ctx).First(&adjustment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &adjustment, nil
}

// FindByProduct finds all adjustments for a product, newest first
func (r *GormAdjustmentRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*inventory.InventoryAdjustment, error) {
	var adjustments []*inventory.InventoryAdjustment
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&adjustments).Error; err != nil {
		return nil, err
	}
	return adjustments, nil
}

// FindAll lists adjustments with filtering and pagination
func (r *GormAdjustmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*inventory.InventoryAdjustment, int64, error) {
	query := r.db.WithContext(ctx).Model(&inventory.InventoryAdjustment{})
	if warehouseID, ok := filter.Filters["warehouse_id"]; ok {
		query = query.Where("warehouse_id = ?", warehouseID)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var adjustments []*inventory.InventoryAdjustment
	query = applyOrdering(query, filter, AdjustmentSortFields)
	query = applyPagination(query, filter)
	if err := query.Find(&adjustments).Error; err != nil {
		return nil, 0, err
	}
	return adjustments, total, nil
}

// Save creates or updates an adjustment
func (r *GormAdjustmentRepository) Save(ctx context.Context, adjustment *inventory.InventoryAdjustment) error {
	return r.db.WithContext(ctx).Save(adjustment).Error
}

var _ inventory.AdjustmentRepository = (*GormAdjustmentRepository)(nil)
