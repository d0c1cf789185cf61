package persistence

import (
	"context"
	"time"

	"github.com/retailcore/backend/internal/domain/report"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormSalesReportRepository implements SalesReportRepository with SQL
// aggregation over confirmed sales. Read-only: it never writes.
type GormSalesReportRepository struct {
	db *gorm.DB
}

// NewGormSalesReportRepository creates a new GormSalesReportRepository
func NewGormSalesReportRepository(db *gorm.DB) *GormSalesReportRepository {
	return &GormSalesReportRepository{db: db}
}

// confirmedSales scopes a query to confirmed sales within the period
func (r *GormSalesReportRepository) confirmedSales(ctx context.Context, from, to time.Time) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&trade.Sale{}).
		Where("sales.status = ?", trade.SaleStatusConfirmed).
		Where("sales.confirmed_at >= ? AND sales.confirmed_at < ?", from, to)
}

// confirmedItems scopes a query to sale items of confirmed sales within the period
func (r *GormSalesReportRepository) confirmedItems(ctx context.Context, from, to time.Time) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&trade.SaleItem{}).
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where("sales.status = ?", trade.SaleStatusConfirmed).
		Where("sales.confirmed_at >= ? AND sales.confirmed_at < ?", from, to)
}

// Summary aggregates confirmed sales of a period into one view
func (r *GormSalesReportRepository) Summary(ctx context.Context, from, to time.Time) (*report.SalesSummary, error) {
	summary := report.SalesSummary{
		PeriodStart:    from,
		PeriodEnd:      to,
		TotalQuantity:  decimal.Zero,
		GrossAmount:    decimal.Zero,
		DiscountAmount: decimal.Zero,
		NetAmount:      decimal.Zero,
		ReturnedAmount: decimal.Zero,
	}

	var header struct {
		SaleCount      int64
		GrossAmount    decimal.Decimal
		DiscountAmount decimal.Decimal
		NetAmount      decimal.Decimal
	}
	if err := r.confirmedSales(ctx, from, to).
		Select(`COUNT(sales.id) AS sale_count,
			COALESCE(SUM(sales.total_amount), 0) AS gross_amount,
			COALESCE(SUM(sales.discount_amount), 0) AS discount_amount,
			COALESCE(SUM(sales.net_amount), 0) AS net_amount`).
		Scan(&header).Error; err != nil {
		return nil, err
	}
	summary.SaleCount = header.SaleCount
	summary.GrossAmount = header.GrossAmount
	summary.DiscountAmount = header.DiscountAmount
	summary.NetAmount = header.NetAmount

	var quantity decimal.Decimal
	if err := r.confirmedItems(ctx, from, to).
		Select("COALESCE(SUM(sale_items.quantity), 0)").
		Scan(&quantity).Error; err != nil {
		return nil, err
	}
	summary.TotalQuantity = quantity

	var returned decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&trade.SaleReturn{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&returned).Error; err != nil {
		return nil, err
	}
	summary.ReturnedAmount = returned

	return &summary, nil
}

// periodExpr returns the SQL expression that formats confirmed_at into the
// grouping's bucket label. Postgres to_char; the report queries are not
// portable to other engines.
func periodExpr(grouping report.SalesGrouping) string {
	switch grouping {
	case report.SalesGroupingMonthly:
		return "to_char(sales.confirmed_at, 'YYYY-MM')"
	case report.SalesGroupingYearly:
		return "to_char(sales.confirmed_at, 'YYYY')"
	default:
		return "to_char(sales.confirmed_at, 'YYYY-MM-DD')"
	}
}

// PeriodTotals rolls confirmed sales up into daily, monthly or yearly buckets.
// Header amounts and item quantities aggregate separately so the item join
// cannot inflate the per-sale sums.
func (r *GormSalesReportRepository) PeriodTotals(ctx context.Context, from, to time.Time, grouping report.SalesGrouping) ([]report.PeriodSalesTotal, error) {
	if !grouping.IsValid() {
		return nil, shared.NewValidationError("INVALID_GROUPING", "Unknown sales grouping")
	}
	expr := periodExpr(grouping)

	var headers []struct {
		Period         string
		SaleCount      int64
		NetAmount      decimal.Decimal
		DiscountAmount decimal.Decimal
	}
	if err := r.confirmedSales(ctx, from, to).
		Select(expr + ` AS period,
			COUNT(sales.id) AS sale_count,
			COALESCE(SUM(sales.net_amount), 0) AS net_amount,
			COALESCE(SUM(sales.discount_amount), 0) AS discount_amount`).
		Group(expr).
		Order("period ASC").
		Scan(&headers).Error; err != nil {
		return nil, err
	}

	var quantities []struct {
		Period        string
		TotalQuantity decimal.Decimal
	}
	if err := r.confirmedItems(ctx, from, to).
		Select(expr + " AS period, COALESCE(SUM(sale_items.quantity), 0) AS total_quantity").
		Group(expr).
		Scan(&quantities).Error; err != nil {
		return nil, err
	}
	quantityByPeriod := make(map[string]decimal.Decimal, len(quantities))
	for _, row := range quantities {
		quantityByPeriod[row.Period] = row.TotalQuantity
	}

	totals := make([]report.PeriodSalesTotal, 0, len(headers))
	for _, row := range headers {
		totals = append(totals, report.PeriodSalesTotal{
			Period:         row.Period,
			SaleCount:      row.SaleCount,
			TotalQuantity:  quantityByPeriod[row.Period],
			NetAmount:      row.NetAmount,
			DiscountAmount: row.DiscountAmount,
		})
	}
	return totals, nil
}

// TopProducts ranks products by sold amount within a period
func (r *GormSalesReportRepository) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]report.ProductSalesRanking, error) {
	if limit < 1 {
		limit = 10
	}
	var rankings []report.ProductSalesRanking
	if err := r.confirmedItems(ctx, from, to).
		Select(`sale_items.product_id,
			sale_items.product_name,
			COALESCE(SUM(sale_items.quantity), 0) AS total_quantity,
			COALESCE(SUM(sale_items.amount), 0) AS total_amount,
			COUNT(DISTINCT sale_items.sale_id) AS sale_count`).
		Group("sale_items.product_id, sale_items.product_name").
		Order("total_amount DESC").
		Limit(limit).
		Scan(&rankings).Error; err != nil {
		return nil, err
	}
	return rankings, nil
}

// TopCustomers ranks customers by purchase amount within a period. Walk-in
// sales carry no customer and are excluded.
func (r *GormSalesReportRepository) TopCustomers(ctx context.Context, from, to time.Time, limit int) ([]report.CustomerSalesRanking, error) {
	if limit < 1 {
		limit = 10
	}
	var rankings []report.CustomerSalesRanking
	if err := r.confirmedSales(ctx, from, to).
		Where("sales.customer_id IS NOT NULL").
		Select(`sales.customer_id,
			sales.customer_name,
			COUNT(sales.id) AS sale_count,
			COALESCE(SUM(sales.net_amount), 0) AS total_amount`).
		Group("sales.customer_id, sales.customer_name").
		Order("total_amount DESC").
		Limit(limit).
		Scan(&rankings).Error; err != nil {
		return nil, err
	}
	return rankings, nil
}

var _ report.SalesReportRepository = (*GormSalesReportRepository)(nil)
