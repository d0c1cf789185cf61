package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/report"
	"github.com/retailcore/backend/internal/domain/shared"
)

// ReportService serves derived read-only rollups over sales and the stock
// ledger. The read models carry their own JSON tags, so they go out as-is.
type ReportService struct {
	salesRepo     report.SalesReportRepository
	inventoryRepo report.InventoryReportRepository
}

// NewReportService creates a new ReportService
func NewReportService(salesRepo report.SalesReportRepository, inventoryRepo report.InventoryReportRepository) *ReportService {
	return &ReportService{
		salesRepo:     salesRepo,
		inventoryRepo: inventoryRepo,
	}
}

const defaultRankingLimit = 10

// normalizePeriod applies the default reporting window: the 30 days up to
// now when the caller leaves the bounds open.
func normalizePeriod(from, to time.Time) (time.Time, time.Time, error) {
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	if !from.Before(to) {
		return time.Time{}, time.Time{}, shared.NewValidationError("INVALID_PERIOD", "Period start must precede period end")
	}
	return from, to, nil
}

// GetSalesSummary returns aggregate sales figures for a period
func (s *ReportService) GetSalesSummary(ctx context.Context, from, to time.Time) (*report.SalesSummary, error) {
	from, to, err := normalizePeriod(from, to)
	if err != nil {
		return nil, err
	}
	return s.salesRepo.Summary(ctx, from, to)
}

// GetSalesTotals returns per-bucket sales rollups for a period
func (s *ReportService) GetSalesTotals(ctx context.Context, from, to time.Time, grouping report.SalesGrouping) ([]report.PeriodSalesTotal, error) {
	if grouping == "" {
		grouping = report.SalesGroupingDaily
	}
	if !grouping.IsValid() {
		return nil, shared.NewValidationError("INVALID_GROUPING", "Grouping must be DAILY, MONTHLY or YEARLY")
	}
	from, to, err := normalizePeriod(from, to)
	if err != nil {
		return nil, err
	}
	return s.salesRepo.PeriodTotals(ctx, from, to, grouping)
}

// GetTopProducts returns the best-selling products for a period
func (s *ReportService) GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]report.ProductSalesRanking, error) {
	if limit < 1 {
		limit = defaultRankingLimit
	}
	from, to, err := normalizePeriod(from, to)
	if err != nil {
		return nil, err
	}
	return s.salesRepo.TopProducts(ctx, from, to, limit)
}

// GetTopCustomers returns the highest-spending customers for a period
func (s *ReportService) GetTopCustomers(ctx context.Context, from, to time.Time, limit int) ([]report.CustomerSalesRanking, error) {
	if limit < 1 {
		limit = defaultRankingLimit
	}
	from, to, err := normalizePeriod(from, to)
	if err != nil {
		return nil, err
	}
	return s.salesRepo.TopCustomers(ctx, from, to, limit)
}

// GetStockMovementSummary returns per-product directional stock totals for
// a period, optionally scoped to one warehouse
func (s *ReportService) GetStockMovementSummary(ctx context.Context, from, to time.Time, warehouseID *uuid.UUID) ([]report.StockMovementSummary, error) {
	from, to, err := normalizePeriod(from, to)
	if err != nil {
		return nil, err
	}
	return s.inventoryRepo.MovementSummary(ctx, from, to, warehouseID)
}

// GetStockValuation returns current on-hand value per product
func (s *ReportService) GetStockValuation(ctx context.Context, warehouseID *uuid.UUID) ([]report.StockValuation, error) {
	return s.inventoryRepo.Valuation(ctx, warehouseID)
}

// GetReorderAlerts returns active products at or below their reorder level
func (s *ReportService) GetReorderAlerts(ctx context.Context) ([]report.ReorderAlert, error) {
	return s.inventoryRepo.BelowReorder(ctx)
}
