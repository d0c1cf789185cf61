package partner

import (
	"github.com/retailcore/backend/internal/domain/shared"
)

const (
	CustomerAggregateType = "Customer"

	CustomerCreatedEventType       = "partner.customer.created"
	CustomerValuedChangedEventType = "partner.customer.valued_changed"
)

// CustomerCreatedEvent is raised when a customer is registered
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
	Name string `json:"name"`
}

// NewCustomerCreatedEvent creates a new CustomerCreatedEvent
func NewCustomerCreatedEvent(c *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(CustomerCreatedEventType, CustomerAggregateType, c.ID),
		Code:            c.Code,
		Name:            c.Name,
	}
}

// CustomerValuedChangedEvent is raised when valued status is granted or revoked
type CustomerValuedChangedEvent struct {
	shared.BaseDomainEvent
	Code     string `json:"code"`
	IsValued bool   `json:"is_valued"`
}

// NewCustomerValuedChangedEvent creates a new CustomerValuedChangedEvent
func NewCustomerValuedChangedEvent(c *Customer) *CustomerValuedChangedEvent {
	return &CustomerValuedChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(CustomerValuedChangedEventType, CustomerAggregateType, c.ID),
		Code:            c.Code,
		IsValued:        c.IsValuedCustomer,
	}
}
