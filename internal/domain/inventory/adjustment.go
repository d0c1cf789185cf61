package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AdjustmentType encodes the direction of a manual stock adjustment
type AdjustmentType string

const (
	AdjustmentTypeIncrease AdjustmentType = "INCREASE"
	AdjustmentTypeDecrease AdjustmentType = "DECREASE"
)

// IsValid checks if the type is a valid AdjustmentType
func (t AdjustmentType) IsValid() bool {
	return t == AdjustmentTypeIncrease || t == AdjustmentTypeDecrease
}

// String returns the string representation of AdjustmentType
func (t AdjustmentType) String() string {
	return string(t)
}

// EntryType maps the adjustment direction to the matching ledger entry type
func (t AdjustmentType) EntryType() EntryType {
	if t == AdjustmentTypeIncrease {
		return EntryTypeAdjustmentIncrease
	}
	return EntryTypeAdjustmentDecrease
}

// AdjustmentStatus represents the lifecycle of an adjustment
type AdjustmentStatus string

const (
	AdjustmentStatusActive AdjustmentStatus = "ACTIVE"
	AdjustmentStatusVoided AdjustmentStatus = "VOIDED"
)

// InventoryAdjustment is the header record of one manual stock correction.
// Its quantity effect lives in the ledger; the header itself is only ever
// soft-voided, never deleted, so the audit trail stays intact.
type InventoryAdjustment struct {
	shared.AuditedAggregateRoot
	ProductID   uuid.UUID        `gorm:"type:uuid;not null;index"`
	WarehouseID uuid.UUID        `gorm:"type:uuid;not null;index"`
	Type        AdjustmentType   `gorm:"type:varchar(10);not null"`
	Quantity    decimal.Decimal  `gorm:"type:decimal(18,4);not null"` // positive magnitude
	Reason      string           `gorm:"type:varchar(500);not null"`
	Status      AdjustmentStatus `gorm:"type:varchar(10);not null;default:'ACTIVE'"`
	VoidedAt    *time.Time
	VoidedBy    *uuid.UUID     `gorm:"type:uuid"`
	VoidReason  string         `gorm:"type:varchar(500)"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (InventoryAdjustment) TableName() string {
	return "inventory_adjustments"
}

// NewInventoryAdjustment creates a new active adjustment
func NewInventoryAdjustment(productID, warehouseID uuid.UUID, adjType AdjustmentType, quantity decimal.Decimal, reason string) (*InventoryAdjustment, error) {
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if !adjType.IsValid() {
		return nil, shared.NewValidationError("INVALID_ADJUSTMENT_TYPE", "Adjustment type must be INCREASE or DECREASE")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("INVALID_QUANTITY", "Adjustment quantity must be a positive magnitude")
	}
	if reason == "" {
		return nil, shared.NewValidationError("INVALID_REASON", "Adjustment reason is required")
	}

	adjustment := &InventoryAdjustment{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		ProductID:            productID,
		WarehouseID:          warehouseID,
		Type:                 adjType,
		Quantity:             quantity,
		Reason:               reason,
		Status:               AdjustmentStatusActive,
	}

	adjustment.AddDomainEvent(NewAdjustmentCreatedEvent(adjustment))

	return adjustment, nil
}

// IsVoided returns true when the adjustment has been voided
func (a *InventoryAdjustment) IsVoided() bool {
	return a.Status == AdjustmentStatusVoided
}

// LedgerEntry builds the ledger entry that applies this adjustment
func (a *InventoryAdjustment) LedgerEntry() (*LedgerEntry, error) {
	entry, err := NewLedgerEntry(a.ProductID, a.WarehouseID, a.Type.EntryType(), a.Quantity, SourceTypeAdjustment, a.ID, a.Reason)
	if err != nil {
		return nil, err
	}
	if a.CreatedBy != nil {
		entry.CreatedBy = a.CreatedBy
	}
	return entry, nil
}

// Void marks the adjustment voided and returns the offsetting ledger entry
// that undoes its quantity effect. Voiding twice conflicts.
func (a *InventoryAdjustment) Void(voidedBy uuid.UUID, reason string) (*LedgerEntry, error) {
	if a.IsVoided() {
		return nil, shared.NewConflictError("ALREADY_VOIDED", "Adjustment is already voided")
	}
	if reason == "" {
		return nil, shared.NewValidationError("INVALID_REASON", "Void reason is required")
	}

	// The offset runs in the opposite direction of the original.
	offsetType := EntryTypeAdjustmentDecrease
	if a.Type == AdjustmentTypeDecrease {
		offsetType = EntryTypeAdjustmentIncrease
	}
	entry, err := NewLedgerEntry(a.ProductID, a.WarehouseID, offsetType, a.Quantity, SourceTypeAdjustment, a.ID, "void: "+reason)
	if err != nil {
		return nil, err
	}
	entry.CreatedBy = &voidedBy

	now := time.Now()
	a.Status = AdjustmentStatusVoided
	a.VoidedAt = &now
	a.VoidedBy = &voidedBy
	a.VoidReason = reason
	a.UpdatedAt = now
	a.IncrementVersion()

	a.AddDomainEvent(NewAdjustmentVoidedEvent(a))

	return entry, nil
}
