package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesSummary is an aggregate view over confirmed sales in a period
type SalesSummary struct {
	PeriodStart    time.Time       `json:"period_start"`
	PeriodEnd      time.Time       `json:"period_end"`
	SaleCount      int64           `json:"sale_count"`
	TotalQuantity  decimal.Decimal `json:"total_quantity"`
	GrossAmount    decimal.Decimal `json:"gross_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	NetAmount      decimal.Decimal `json:"net_amount"`
	ReturnedAmount decimal.Decimal `json:"returned_amount"`
}

// PeriodSalesTotal is one bucket of a daily, monthly or yearly rollup.
// Period is the bucket label in the grouping's native format: 2006-01-02
// for days, 2006-01 for months, 2006 for years.
type PeriodSalesTotal struct {
	Period         string          `json:"period"`
	SaleCount      int64           `json:"sale_count"`
	TotalQuantity  decimal.Decimal `json:"total_quantity"`
	NetAmount      decimal.Decimal `json:"net_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
}

// ProductSalesRanking ranks products by sold amount within a period
type ProductSalesRanking struct {
	ProductID     uuid.UUID       `json:"product_id"`
	ProductName   string          `json:"product_name"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	SaleCount     int64           `json:"sale_count"`
}

// CustomerSalesRanking ranks customers by purchase amount within a period.
// Walk-in sales are excluded.
type CustomerSalesRanking struct {
	CustomerID   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	SaleCount    int64           `json:"sale_count"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// SalesGrouping selects the bucket size for period rollups
type SalesGrouping string

const (
	SalesGroupingDaily   SalesGrouping = "DAILY"
	SalesGroupingMonthly SalesGrouping = "MONTHLY"
	SalesGroupingYearly  SalesGrouping = "YEARLY"
)

// IsValid checks if the grouping is a known bucket size
func (g SalesGrouping) IsValid() bool {
	switch g {
	case SalesGroupingDaily, SalesGroupingMonthly, SalesGroupingYearly:
		return true
	}
	return false
}

// SalesReportRepository aggregates confirmed sales with SQL. Read-only:
// implementations never write.
type SalesReportRepository interface {
	Summary(ctx context.Context, from, to time.Time) (*SalesSummary, error)
	PeriodTotals(ctx context.Context, from, to time.Time, grouping SalesGrouping) ([]PeriodSalesTotal, error)
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]ProductSalesRanking, error)
	TopCustomers(ctx context.Context, from, to time.Time, limit int) ([]CustomerSalesRanking, error)
}
