package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"sku":           true,
	"name":          true,
	"barcode":       true,
	"category_id":   true,
	"status":        true,
	"cost_price":    true,
	"regular_price": true,
	"reorder_level": true,
}

// CustomerSortFields contains allowed sort fields for customers
var CustomerSortFields = map[string]bool{
	"id":                 true,
	"created_at":         true,
	"updated_at":         true,
	"code":               true,
	"name":               true,
	"is_valued_customer": true,
	"is_active":          true,
}

// SupplierSortFields contains allowed sort fields for suppliers
var SupplierSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"is_active":  true,
}

// BracketSortFields contains allowed sort fields for price brackets
var BracketSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"product_id":     true,
	"name":           true,
	"is_selected":    true,
	"effective_from": true,
}

// PurchaseOrderSortFields contains allowed sort fields for purchase orders
var PurchaseOrderSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"order_number":  true,
	"supplier_id":   true,
	"supplier_name": true,
	"status":        true,
	"total_amount":  true,
	"confirmed_at":  true,
	"completed_at":  true,
}

// ReceivingReportSortFields contains allowed sort fields for receiving reports
var ReceivingReportSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"report_number": true,
	"order_id":      true,
	"supplier_id":   true,
	"warehouse_id":  true,
	"received_at":   true,
}

// SaleSortFields contains allowed sort fields for sales
var SaleSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"sale_number":     true,
	"customer_id":     true,
	"customer_name":   true,
	"warehouse_id":    true,
	"status":          true,
	"payment_status":  true,
	"delivery_status": true,
	"total_amount":    true,
	"net_amount":      true,
	"confirmed_at":    true,
}

// AdjustmentSortFields contains allowed sort fields for inventory adjustments
var AdjustmentSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"product_id":   true,
	"warehouse_id": true,
	"type":         true,
	"status":       true,
	"quantity":     true,
}

// TransferSortFields contains allowed sort fields for warehouse transfers
var TransferSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"transfer_number": true,
	"source_id":       true,
	"destination_id":  true,
	"status":          true,
}

// LedgerSortFields contains allowed sort fields for ledger entries
var LedgerSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"entry_type":   true,
	"product_id":   true,
	"warehouse_id": true,
	"source_type":  true,
}
