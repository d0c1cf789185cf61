package inventory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransferStatus represents the status of a warehouse transfer
type TransferStatus string

const (
	TransferStatusInTransit TransferStatus = "IN_TRANSIT"
	TransferStatusCompleted TransferStatus = "COMPLETED"
	TransferStatusCancelled TransferStatus = "CANCELLED"
)

// IsValid checks if the status is a valid TransferStatus
func (s TransferStatus) IsValid() bool {
	switch s {
	case TransferStatusInTransit, TransferStatusCompleted, TransferStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of TransferStatus
func (s TransferStatus) String() string {
	return string(s)
}

// TransferItem is one product line in a transfer. OutboundEntryID records
// the exact ledger entry written when the transfer decremented source stock,
// so cancellation can reverse precisely what was applied rather than
// recomputing from scratch.
type TransferItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	TransferID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	OutboundEntryID *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TransferItem) TableName() string {
	return "transfer_items"
}

// Transfer moves stock between two warehouses. Source stock is decremented
// when the transfer is created; completion increments the destination, and
// cancellation restores the source by exactly the deltas applied at creation.
type Transfer struct {
	shared.AuditedAggregateRoot
	TransferNumber string         `gorm:"type:varchar(50);not null;uniqueIndex"`
	SourceID       uuid.UUID      `gorm:"type:uuid;not null;index"`
	DestinationID  uuid.UUID      `gorm:"type:uuid;not null;index"`
	Status         TransferStatus `gorm:"type:varchar(20);not null;default:'IN_TRANSIT'"`
	Remark         string         `gorm:"type:varchar(500)"`
	Items          []TransferItem `gorm:"foreignKey:TransferID;references:ID"`
	CompletedAt    *time.Time
	CancelledAt    *time.Time
	CancelReason   string         `gorm:"type:varchar(500)"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (Transfer) TableName() string {
	return "transfers"
}

// TransferLine is the input for one product line when creating a transfer
type TransferLine struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
}

// NewTransfer creates a transfer in IN_TRANSIT state
func NewTransfer(transferNumber string, sourceID, destinationID uuid.UUID, lines []TransferLine) (*Transfer, error) {
	if transferNumber == "" {
		return nil, shared.NewValidationError("INVALID_TRANSFER_NUMBER", "Transfer number cannot be empty")
	}
	if sourceID == uuid.Nil || destinationID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_WAREHOUSE", "Source and destination warehouses are required")
	}
	if sourceID == destinationID {
		return nil, shared.NewValidationError("SAME_WAREHOUSE", "Source and destination warehouses must differ")
	}
	if len(lines) == 0 {
		return nil, shared.NewValidationError("NO_ITEMS", "Transfer requires at least one item")
	}

	transfer := &Transfer{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		TransferNumber:       transferNumber,
		SourceID:             sourceID,
		DestinationID:        destinationID,
		Status:               TransferStatusInTransit,
		Items:                make([]TransferItem, 0, len(lines)),
	}

	now := time.Now()
	seen := make(map[uuid.UUID]bool, len(lines))
	for _, line := range lines {
		if line.ProductID == uuid.Nil {
			return nil, shared.NewValidationError("INVALID_PRODUCT", "Product ID cannot be empty")
		}
		if line.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, shared.NewValidationError("INVALID_QUANTITY", fmt.Sprintf("Transfer quantity for product %s must be positive", line.ProductID))
		}
		if seen[line.ProductID] {
			return nil, shared.NewValidationError("DUPLICATE_PRODUCT", "Product appears more than once in transfer")
		}
		seen[line.ProductID] = true

		transfer.Items = append(transfer.Items, TransferItem{
			ID:         uuid.New(),
			TransferID: transfer.ID,
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	transfer.AddDomainEvent(NewTransferCreatedEvent(transfer))

	return transfer, nil
}

// OutboundEntries builds the ledger entries that decrement source stock at
// creation time, one per item, and records each entry id on its item.
func (t *Transfer) OutboundEntries() ([]*LedgerEntry, error) {
	entries := make([]*LedgerEntry, 0, len(t.Items))
	for idx := range t.Items {
		entry, err := NewLedgerEntry(t.Items[idx].ProductID, t.SourceID, EntryTypeTransferOut, t.Items[idx].Quantity, SourceTypeTransfer, t.ID, "transfer "+t.TransferNumber)
		if err != nil {
			return nil, err
		}
		if t.CreatedBy != nil {
			entry.CreatedBy = t.CreatedBy
		}
		t.Items[idx].OutboundEntryID = &entry.ID
		entries = append(entries, entry)
	}
	return entries, nil
}

// Complete marks the transfer completed and builds the inbound ledger
// entries for the destination warehouse. Source stock was already
// decremented at creation, so only the status and the inbound side change.
func (t *Transfer) Complete() ([]*LedgerEntry, error) {
	if t.Status != TransferStatusInTransit {
		return nil, shared.NewConflictError("INVALID_STATE", fmt.Sprintf("Cannot complete transfer in %s status", t.Status))
	}

	entries := make([]*LedgerEntry, 0, len(t.Items))
	for _, item := range t.Items {
		entry, err := NewLedgerEntry(item.ProductID, t.DestinationID, EntryTypeTransferIn, item.Quantity, SourceTypeTransfer, t.ID, "transfer "+t.TransferNumber)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	now := time.Now()
	t.Status = TransferStatusCompleted
	t.CompletedAt = &now
	t.UpdatedAt = now
	t.IncrementVersion()

	t.AddDomainEvent(NewTransferCompletedEvent(t))

	return entries, nil
}

// Cancel marks the transfer cancelled and builds the reversal entries that
// re-increment the source warehouse by exactly the quantities removed at
// creation. Items that never produced an outbound entry are skipped.
func (t *Transfer) Cancel(reason string) ([]*LedgerEntry, error) {
	if t.Status != TransferStatusInTransit {
		return nil, shared.NewConflictError("INVALID_STATE", fmt.Sprintf("Cannot cancel transfer in %s status", t.Status))
	}
	if reason == "" {
		return nil, shared.NewValidationError("INVALID_REASON", "Cancel reason is required")
	}

	entries := make([]*LedgerEntry, 0, len(t.Items))
	for _, item := range t.Items {
		if item.OutboundEntryID == nil {
			continue
		}
		entry, err := NewLedgerEntry(item.ProductID, t.SourceID, EntryTypeTransferReversal, item.Quantity, SourceTypeTransfer, t.ID, "cancel: "+reason)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	now := time.Now()
	t.Status = TransferStatusCancelled
	t.CancelledAt = &now
	t.CancelReason = reason
	t.UpdatedAt = now
	t.IncrementVersion()

	t.AddDomainEvent(NewTransferCancelledEvent(t))

	return entries, nil
}

// IsTerminal returns true when the transfer is completed or cancelled
func (t *Transfer) IsTerminal() bool {
	return t.Status == TransferStatusCompleted || t.Status == TransferStatusCancelled
}

// TotalQuantity returns the summed quantity across items
func (t *Transfer) TotalQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, item := range t.Items {
		total = total.Add(item.Quantity)
	}
	return total
}
