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

// GormPriceBracketRepository implements PriceBracketRepository using GORM
type GormPriceBracketRepository struct {
	db *gorm.DB
}

// NewGormPriceBracketRepository creates a new GormPriceBracketRepository
func NewGormPriceBracketRepository(db *gorm.DB) *GormPriceBracketRepository {
	return &GormPriceBracketRepository{db: db}
}

// FindByID finds a bracket with its items by ID
func (r *GormPriceBracketRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.PriceBracket, error) {
	var bracket pricing.PriceBracket
	if err := r.db.WithContext(ctx).
		Preload("Items", itemsByMinQuantity).
		First(&bracket, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &bracket, nil
}

// FindByProduct finds all brackets for a product, newest first
func (r *GormPriceBracketRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*pricing.PriceBracket, error) {
	var brackets []*pricing.PriceBracket
	if err := r.db.WithContext(ctx).
		Preload("Items", itemsByMinQuantity).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&brackets).Error; err != nil {
		return nil, err
	}
	return brackets, nil
}

// FindSelectedByProduct finds the product's selected bracket
func (r *GormPriceBracketRepository) FindSelectedByProduct(ctx context.Context, productID uuid.UUID) (*pricing.PriceBracket, error) {
	var bracket pricing.PriceBracket
	if err := r.db.WithContext(ctx).
		Preload("Items", itemsByMinQuantity).
		Where("product_id = ? AND is_selected = ?", productID, true).
		First(&bracket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &bracket, nil
}

// FindSelectedByProductForUpdate locks the product's selected bracket row for
// the duration of the surrounding transaction
func (r *GormPriceBracketRepository) FindSelectedByProductForUpdate(ctx context.Context, productID uuid.UUID) (*pricing.PriceBracket, error) {
	var bracket pricing.PriceBracket
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Items", itemsByMinQuantity).
		Where("product_id = ? AND is_selected = ?", productID, true).
		First(&bracket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &bracket, nil
}

// FindAll lists brackets with filtering and pagination
func (r *GormPriceBracketRepository) FindAll(ctx context.Context, filter shared.Filter) ([]pricing.PriceBracket, error) {
	query := r.db.WithContext(ctx).Model(&pricing.PriceBracket{})
	if productID, ok := filter.Filters["product_id"]; ok {
		query = query.Where("product_id = ?", productID)
	}
	if selected, ok := filter.Filters["is_selected"]; ok {
		query = query.Where("is_selected = ?", selected)
	}

	var brackets []pricing.PriceBracket
	query = applyOrdering(query, filter, BracketSortFields)
	query = applyPagination(query, filter)
	if err := query.Preload("Items", itemsByMinQuantity).Find(&brackets).Error; err != nil {
		return nil, err
	}
	return brackets, nil
}

// Save creates or updates a bracket and its items
func (r *GormPriceBracketRepository) Save(ctx context.Context, bracket *pricing.PriceBracket) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(bracket).Error
}

// SaveWithLock saves the bracket header with an optimistic version check.
// The domain increments the version before save, so the guard matches the
// version the row had when it was loaded.
func (r *GormPriceBracketRepository) SaveWithLock(ctx context.Context, bracket *pricing.PriceBracket) error {
	expected := bracket.GetVersion() - 1
	result := r.db.WithContext(ctx).Model(&pricing.PriceBracket{}).
		Where("id = ? AND version = ?", bracket.ID, expected).
		Select("name", "is_selected", "effective_from", "effective_to", "version", "updated_at").
		Updates(bracket)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewConflictError("VERSION_CONFLICT", "Bracket was modified by another transaction")
	}
	return nil
}

// ReplaceItems persists the reconciled item set: matched rows are updated,
// new rows inserted, and rows absent from the aggregate deleted
func (r *GormPriceBracketRepository) ReplaceItems(ctx context.Context, bracket *pricing.PriceBracket) error {
	keep := make([]uuid.UUID, 0, len(bracket.Items))
	for _, item := range bracket.Items {
		keep = append(keep, item.ID)
	}

	stale := r.db.WithContext(ctx).Where("bracket_id = ?", bracket.ID)
	if len(keep) > 0 {
		stale = stale.Where("id NOT IN ?", keep)
	}
	if err := stale.Delete(&pricing.BracketItem{}).Error; err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(bracket).Error
}

// Delete soft-deletes a bracket
func (r *GormPriceBracketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&pricing.PriceBracket{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// itemsByMinQuantity orders preloaded bracket items so quantity tiers come
// back in range order
func itemsByMinQuantity(db *gorm.DB) *gorm.DB {
	return db.Order("min_quantity ASC")
}

var _ pricing.PriceBracketRepository = (*GormPriceBracketRepository)(nil)
