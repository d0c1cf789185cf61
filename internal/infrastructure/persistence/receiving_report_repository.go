package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormReceivingReportRepository implements ReceivingReportRepository using GORM
type GormReceivingReportRepository struct {
	db *gorm.DB
}

// NewGormReceivingReportRepository creates a new GormReceivingReportRepository
func NewGormReceivingReportRepository(db *gorm.DB) *GormReceivingReportRepository {
	return &GormReceivingReportRepository{db: db}
}

// FindByID finds a receiving report with its items and costs by ID
func (r *GormReceivingReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.ReceivingReport, error) {
	var report trade.ReceivingReport
	if err := r.db.WithContext(ctx).
		Preload("Items", orderItemsByCreation).
		Preload("AdditionalCosts", orderItemsByCreation).
		First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

// FindByOrder finds all receiving reports written against a purchase order
func (r *GormReceivingReportRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]*trade.ReceivingReport, error) {
	var reports []*trade.ReceivingReport
	if err := r.db.WithContext(ctx).
		Preload("Items", orderItemsByCreation).
		Preload("AdditionalCosts", orderItemsByCreation).
		Where("order_id = ?", orderID).
		Order("received_at ASC").
		Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// FindAll lists receiving reports with filtering and pagination
func (r *GormReceivingReportRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*trade.ReceivingReport, int64, error) {
	query := r.db.WithContext(ctx).Model(&trade.ReceivingReport{})
	if filter.Search != "" {
		query = query.Where("report_number LIKE ?", "%"+filter.Search+"%")
	}
	if supplierID, ok := filter.Filters["supplier_id"]; ok {
		query = query.Where("supplier_id = ?", supplierID)
	}
	if warehouseID, ok := filter.Filters["warehouse_id"]; ok {
		query = query.Where("warehouse_id = ?", warehouseID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []*trade.ReceivingReport
	query = applyOrdering(query, filter, ReceivingReportSortFields)
	query = applyPagination(query, filter)
	if err := query.
		Preload("Items", orderItemsByCreation).
		Preload("AdditionalCosts", orderItemsByCreation).
		Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

// Save creates or updates a report and its children
func (r *GormReceivingReportRepository) Save(ctx context.Context, report *trade.ReceivingReport) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(report).Error
}

// ReplaceChildren persists the reconciled item and cost sets, deleting rows
// that are no longer present on the aggregate
func (r *GormReceivingReportRepository) ReplaceChildren(ctx context.Context, report *trade.ReceivingReport) error {
	keepItems := make([]uuid.UUID, 0, len(report.Items))
	for _, item := range report.Items {
		keepItems = append(keepItems, item.ID)
	}
	staleItems := r.db.WithContext(ctx).Where("report_id = ?", report.ID)
	if len(keepItems) > 0 {
		staleItems = staleItems.Where("id NOT IN ?", keepItems)
	}
	if err := staleItems.Delete(&trade.ReceivedItem{}).Error; err != nil {
		return err
	}

	keepCosts := make([]uuid.UUID, 0, len(report.AdditionalCosts))
	for _, cost := range report.AdditionalCosts {
		keepCosts = append(keepCosts, cost.ID)
	}
	staleCosts := r.db.WithContext(ctx).Where("report_id = ?", report.ID)
	if len(keepCosts) > 0 {
		staleCosts = staleCosts.Where("id NOT IN ?", keepCosts)
	}
	if err := staleCosts.Delete(&trade.AdditionalCost{}).Error; err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(report).Error
}

// Delete soft-deletes a receiving report
func (r *GormReceivingReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&trade.ReceivingReport{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ trade.ReceivingReportRepository = (*GormReceivingReportRepository)(nil)
