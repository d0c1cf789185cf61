package partner

import (
	"time"

	"github.com/retailcore/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// Customer is a buying party. Valued customers are the only ones eligible
// for customer-specific price overrides.
type Customer struct {
	shared.AuditedAggregateRoot
	Code             string         `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name             string         `gorm:"type:varchar(200);not null"`
	ContactPerson    string         `gorm:"type:varchar(100)"`
	Phone            string         `gorm:"type:varchar(50)"`
	Email            string         `gorm:"type:varchar(100)"`
	Address          string         `gorm:"type:varchar(500)"`
	IsValuedCustomer bool           `gorm:"not null;default:false"`
	ValuedSince      *time.Time
	IsActive         bool           `gorm:"not null;default:true"`
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new active customer
func NewCustomer(code, name string) (*Customer, error) {
	if code == "" {
		return nil, shared.NewValidationError("INVALID_CODE", "Customer code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewValidationError("INVALID_NAME", "Customer name cannot be empty")
	}

	customer := &Customer{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Code:                 code,
		Name:                 name,
		IsActive:             true,
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer, nil
}

// Update updates the customer's contact information
func (c *Customer) Update(name, contactPerson, phone, email, address string) error {
	if name == "" {
		return shared.NewValidationError("INVALID_NAME", "Customer name cannot be empty")
	}

	c.Name = name
	c.ContactPerson = contactPerson
	c.Phone = phone
	c.Email = email
	c.Address = address
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// MarkAsValued grants the customer eligibility for custom pricing
func (c *Customer) MarkAsValued() error {
	if c.IsValuedCustomer {
		return shared.NewConflictError("ALREADY_VALUED", "Customer is already marked as valued")
	}
	if !c.IsActive {
		return shared.NewConflictError("INACTIVE_CUSTOMER", "Cannot mark an inactive customer as valued")
	}

	now := time.Now()
	c.IsValuedCustomer = true
	c.ValuedSince = &now
	c.UpdatedAt = now
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerValuedChangedEvent(c))

	return nil
}

// UnmarkValued revokes valued status. Existing custom prices for the
// customer are deactivated by the caller in the same transaction.
func (c *Customer) UnmarkValued() error {
	if !c.IsValuedCustomer {
		return shared.NewConflictError("NOT_VALUED", "Customer is not marked as valued")
	}

	c.IsValuedCustomer = false
	c.ValuedSince = nil
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerValuedChangedEvent(c))

	return nil
}

// Deactivate disables the customer for new transactions
func (c *Customer) Deactivate() {
	c.IsActive = false
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Activate re-enables the customer
func (c *Customer) Activate() {
	c.IsActive = true
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}
