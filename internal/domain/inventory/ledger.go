package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EntryType represents the type of ledger entry. The direction of the stock
// movement is encoded by the type; the stored quantity is always a positive
// magnitude.
type EntryType string

const (
	// EntryTypeReceiving is stock received against a purchase order
	EntryTypeReceiving EntryType = "RECEIVING"
	// EntryTypeReceivingReversal offsets a prior receiving entry when a
	// receiving report shrinks or is deleted
	EntryTypeReceivingReversal EntryType = "RECEIVING_REVERSAL"
	// EntryTypeSale is stock shipped for a sale
	EntryTypeSale EntryType = "SALE"
	// EntryTypeSalesReturn restores stock returned by a customer
	EntryTypeSalesReturn EntryType = "SALES_RETURN"
	// EntryTypeAdjustmentIncrease is a manual positive adjustment
	EntryTypeAdjustmentIncrease EntryType = "ADJUSTMENT_INCREASE"
	// EntryTypeAdjustmentDecrease is a manual negative adjustment
	EntryTypeAdjustmentDecrease EntryType = "ADJUSTMENT_DECREASE"
	// EntryTypeTransferOut is stock leaving the source warehouse of a transfer
	EntryTypeTransferOut EntryType = "TRANSFER_OUT"
	// EntryTypeTransferIn is stock arriving at the destination warehouse
	EntryTypeTransferIn EntryType = "TRANSFER_IN"
	// EntryTypeTransferReversal restores source stock for a cancelled transfer
	EntryTypeTransferReversal EntryType = "TRANSFER_REVERSAL"
)

// String returns the string representation of EntryType
func (t EntryType) String() string {
	return string(t)
}

// IsValid returns true if the entry type is valid
func (t EntryType) IsValid() bool {
	switch t {
	case EntryTypeReceiving,
		EntryTypeReceivingReversal,
		EntryTypeSale,
		EntryTypeSalesReturn,
		EntryTypeAdjustmentIncrease,
		EntryTypeAdjustmentDecrease,
		EntryTypeTransferOut,
		EntryTypeTransferIn,
		EntryTypeTransferReversal:
		return true
	}
	return false
}

// IsIncrease returns true if this entry type increases on-hand quantity
func (t EntryType) IsIncrease() bool {
	switch t {
	case EntryTypeReceiving,
		EntryTypeSalesReturn,
		EntryTypeAdjustmentIncrease,
		EntryTypeTransferIn,
		EntryTypeTransferReversal:
		return true
	}
	return false
}

// SourceType represents the document type that triggered a ledger entry
type SourceType string

const (
	SourceTypeReceivingReport SourceType = "RECEIVING_REPORT"
	SourceTypeSale            SourceType = "SALE"
	SourceTypeSalesReturn     SourceType = "SALES_RETURN"
	SourceTypeAdjustment      SourceType = "ADJUSTMENT"
	SourceTypeTransfer        SourceType = "TRANSFER"
)

// String returns the string representation of SourceType
func (s SourceType) String() string {
	return string(s)
}

// IsValid returns true if the source type is valid
func (s SourceType) IsValid() bool {
	switch s {
	case SourceTypeReceivingReport, SourceTypeSale, SourceTypeSalesReturn,
		SourceTypeAdjustment, SourceTypeTransfer:
		return true
	}
	return false
}

// LedgerEntry is one append-only record of a stock quantity change. Entries
// are never mutated after creation; corrections append offsetting entries.
// The on-hand quantity of a product is the running sum of its deltas.
type LedgerEntry struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_ledger_product_warehouse"`
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null;index:idx_ledger_product_warehouse"`
	EntryType   EntryType       `gorm:"type:varchar(30);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"` // positive magnitude
	Delta       decimal.Decimal `gorm:"type:decimal(18,4);not null"` // signed, derived from EntryType
	UnitCost    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SourceType  SourceType      `gorm:"type:varchar(30);not null;index:idx_ledger_source"`
	SourceID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_ledger_source"`
	Reason      string          `gorm:"type:varchar(500)"`
	CreatedBy   *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt   time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (LedgerEntry) TableName() string {
	return "inventory_ledger_entries"
}

// NewLedgerEntry creates a new ledger entry. Quantity must be a positive
// magnitude; the signed delta is derived from the entry type.
func NewLedgerEntry(productID, warehouseID uuid.UUID, entryType EntryType, quantity decimal.Decimal, sourceType SourceType, sourceID uuid.UUID, reason string) (*LedgerEntry, error) {
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if !entryType.IsValid() {
		return nil, shared.NewValidationError("INVALID_ENTRY_TYPE", "Unknown ledger entry type")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("INVALID_QUANTITY", "Ledger quantity must be a positive magnitude")
	}
	if !sourceType.IsValid() {
		return nil, shared.NewValidationError("INVALID_SOURCE_TYPE", "Unknown ledger source type")
	}
	if sourceID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_SOURCE", "Source ID cannot be empty")
	}

	delta := quantity
	if !entryType.IsIncrease() {
		delta = quantity.Neg()
	}

	return &LedgerEntry{
		ID:          uuid.New(),
		ProductID:   productID,
		WarehouseID: warehouseID,
		EntryType:   entryType,
		Quantity:    quantity,
		Delta:       delta,
		SourceType:  sourceType,
		SourceID:    sourceID,
		Reason:      reason,
		CreatedAt:   time.Now(),
	}, nil
}

// WithUnitCost attaches the unit cost carried by the movement
func (e *LedgerEntry) WithUnitCost(cost decimal.Decimal) *LedgerEntry {
	e.UnitCost = cost
	return e
}

// WithActor records the acting user
func (e *LedgerEntry) WithActor(userID uuid.UUID) *LedgerEntry {
	e.CreatedBy = &userID
	return e
}

// Offset builds the entry that exactly reverses this one, preserving the
// magnitude and source reference
func (e *LedgerEntry) Offset(entryType EntryType, reason string) (*LedgerEntry, error) {
	if entryType.IsIncrease() == e.EntryType.IsIncrease() {
		return nil, shared.NewValidationError("INVALID_OFFSET", "Offset entry must reverse the original direction")
	}
	offset, err := NewLedgerEntry(e.ProductID, e.WarehouseID, entryType, e.Quantity, e.SourceType, e.SourceID, reason)
	if err != nil {
		return nil, err
	}
	offset.UnitCost = e.UnitCost
	return offset, nil
}

// OnHand folds a product's entries into its current on-hand quantity
func OnHand(entries []LedgerEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Delta)
	}
	return total
}
