package partner

import (
	"time"

	"github.com/retailcore/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// Warehouse is a physical stock location
type Warehouse struct {
	shared.AuditedAggregateRoot
	Code      string         `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name      string         `gorm:"type:varchar(200);not null"`
	Address   string         `gorm:"type:varchar(500)"`
	IsDefault bool           `gorm:"not null;default:false"`
	IsActive  bool           `gorm:"not null;default:true"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}

// NewWarehouse creates a new active warehouse
func NewWarehouse(code, name string) (*Warehouse, error) {
	if code == "" {
		return nil, shared.NewValidationError("INVALID_CODE", "Warehouse code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewValidationError("INVALID_NAME", "Warehouse name cannot be empty")
	}

	return &Warehouse{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Code:                 code,
		Name:                 name,
		IsActive:             true,
	}, nil
}

// Update updates the warehouse details
func (w *Warehouse) Update(name, address string) error {
	if name == "" {
		return shared.NewValidationError("INVALID_NAME", "Warehouse name cannot be empty")
	}

	w.Name = name
	w.Address = address
	w.UpdatedAt = time.Now()
	w.IncrementVersion()

	return nil
}

// MarkAsDefault makes this the warehouse used when none is specified.
// The caller clears the flag on the previous default in the same transaction.
func (w *Warehouse) MarkAsDefault() {
	w.IsDefault = true
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
}

// ClearDefault removes the default flag
func (w *Warehouse) ClearDefault() {
	w.IsDefault = false
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
}

// Deactivate disables the warehouse for new movements
func (w *Warehouse) Deactivate() {
	w.IsActive = false
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
}
