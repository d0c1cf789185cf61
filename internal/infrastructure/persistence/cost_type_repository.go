package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormAdditionalCostTypeRepository implements AdditionalCostTypeRepository using GORM
type GormAdditionalCostTypeRepository struct {
	db *gorm.DB
}

// NewGormAdditionalCostTypeRepository creates a new GormAdditionalCostTypeRepository
func NewGormAdditionalCostTypeRepository(db *gorm.DB) *GormAdditionalCostTypeRepository {
	return &GormAdditionalCostTypeRepository{db: db}
}

// FindByID finds a cost type by ID
func (r *GormAdditionalCostTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.AdditionalCostType, error) {
	var costType trade.AdditionalCostType
	if err := r.db.WithContext(ctx).First(&costType, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &costType, nil
}

// FindAll lists all cost types by name
func (r *GormAdditionalCostTypeRepository) FindAll(ctx context.Context) ([]*trade.AdditionalCostType, error) {
	var costTypes []*trade.AdditionalCostType
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&costTypes).Error; err != nil {
		return nil, err
	}
	return costTypes, nil
}

// CountUsages reports how many additional cost rows reference the type
func (r *GormAdditionalCostTypeRepository) CountUsages(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&trade.AdditionalCost{}).
		Where("cost_type_id = ?", id).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a cost type
func (r *GormAdditionalCostTypeRepository) Save(ctx context.Context, costType *trade.AdditionalCostType) error {
	return r.db.WithContext(ctx).Save(costType).Error
}

// Delete soft-deletes a cost type
func (r *GormAdditionalCostTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&trade.AdditionalCostType{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ trade.AdditionalCostTypeRepository = (*GormAdditionalCostTypeRepository)(nil)
