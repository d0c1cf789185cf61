package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/inventory"
	"github.com/retailcore/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormTransferRepository implements TransferRepository using GORM
type GormTransferRepository struct {
	db *gorm.DB
}

// NewGormTransferRepository creates a new GormTransferRepository
func NewGormTransferRepository(db *gorm.DB) *GormTransferRepository {
	return &GormTransferRepository{db: db}
}

// FindByID finds a transfer with its items by ID
func (r *GormTransferRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Transfer, error) {
	var transfer inventory.Transfer
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&transfer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &transfer, nil
}

// FindByNumber finds a transfer by its transfer number
func (r *GormTransferRepository) FindByNumber(ctx context.Context, transferNumber string) (*inventory.Transfer, error) {
	var transfer inventory.Transfer
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("transfer_number = ?", transferNumber).
		First(&transfer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &transfer, nil
}

// FindAll lists transfers with filtering and pagination
func (r *GormTransferRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*inventory.Transfer, int64, error) {
	query := r.db.WithContext(ctx).Model(&inventory.Transfer{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if sourceID, ok := filter.Filters["source_id"]; ok {
		query = query.Where("source_id = ?", sourceID)
	}
	if destinationID, ok := filter.Filters["destination_id"]; ok {
		query = query.Where("destination_id = ?", destinationID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var transfers []*inventory.Transfer
	query = applyOrdering(query, filter, TransferSortFields)
	query = applyPagination(query, filter)
	if err := query.Preload("Items").Find(&transfers).Error; err != nil {
		return nil, 0, err
	}
	return transfers, total, nil
}

// Save creates or updates a transfer and its items
func (r *GormTransferRepository) Save(ctx context.Context, transfer *inventory.Transfer) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(transfer).Error
}

var _ inventory.TransferRepository = (*GormTransferRepository)(nil)
