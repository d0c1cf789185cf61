package partner

import (
	"time"

	"github.com/retailcore/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// Supplier is a vendor that purchase orders are placed against
type Supplier struct {
	shared.AuditedAggregateRoot
	Code          string         `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name          string         `gorm:"type:varchar(200);not null"`
	ContactPerson string         `gorm:"type:varchar(100)"`
	Phone         string         `gorm:"type:varchar(50)"`
	Email         string         `gorm:"type:varchar(100)"`
	Address       string         `gorm:"type:varchar(500)"`
	PaymentTerms  string         `gorm:"type:varchar(100)"`
	IsActive      bool           `gorm:"not null;default:true"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new active supplier
func NewSupplier(code, name string) (*Supplier, error) {
	if code == "" {
		return nil, shared.NewValidationError("INVALID_CODE", "Supplier code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewValidationError("INVALID_NAME", "Supplier name cannot be empty")
	}

	return &Supplier{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Code:                 code,
		Name:                 name,
		IsActive:             true,
	}, nil
}

// Update updates the supplier's contact information
func (s *Supplier) Update(name, contactPerson, phone, email, address, paymentTerms string) error {
	if name == "" {
		return shared.NewValidationError("INVALID_NAME", "Supplier name cannot be empty")
	}

	s.Name = name
	s.ContactPerson = contactPerson
	s.Phone = phone
	s.Email = email
	s.Address = address
	s.PaymentTerms = paymentTerms
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Deactivate disables the supplier for new purchase orders
func (s *Supplier) Deactivate() {
	s.IsActive = false
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Activate re-enables the supplier
func (s *Supplier) Activate() {
	s.IsActive = true
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}
