package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/partner"
)

// CreateCustomerRequest registers a new customer
type CreateCustomerRequest struct {
	Code          string     `json:"code" binding:"required,min=1,max=50"`
	Name          string     `json:"name" binding:"required,min=1,max=200"`
	ContactPerson string     `json:"contact_person" binding:"max=100"`
	Phone         string     `json:"phone" binding:"max=50"`
	Email         string     `json:"email" binding:"omitempty,email,max=100"`
	Address       string     `json:"address" binding:"max=500"`
	CreatedBy     *uuid.UUID `json:"-"`
}

// UpdateCustomerRequest updates customer contact details
type UpdateCustomerRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=1,max=200"`
	ContactPerson *string `json:"contact_person" binding:"omitempty,max=100"`
	Phone         *string `json:"phone" binding:"omitempty,max=50"`
	Email         *string `json:"email" binding:"omitempty,email,max=100"`
	Address       *string `json:"address" binding:"omitempty,max=500"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID               uuid.UUID  `json:"id"`
	Code             string     `json:"code"`
	Name             string     `json:"name"`
	ContactPerson    string     `json:"contact_person,omitempty"`
	Phone            string     `json:"phone,omitempty"`
	Email            string     `json:"email,omitempty"`
	Address          string     `json:"address,omitempty"`
	IsValuedCustomer bool       `json:"is_valued_customer"`
	ValuedSince      *time.Time `json:"valued_since,omitempty"`
	IsActive         bool       `json:"is_active"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// ToCustomerResponse converts a customer aggregate to a response DTO
func ToCustomerResponse(c *partner.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:               c.ID,
		Code:             c.Code,
		Name:             c.Name,
		ContactPerson:    c.ContactPerson,
		Phone:            c.Phone,
		Email:            c.Email,
		Address:          c.Address,
		IsValuedCustomer: c.IsValuedCustomer,
		ValuedSince:      c.ValuedSince,
		IsActive:         c.IsActive,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

// CreateSupplierRequest registers a new supplier
type CreateSupplierRequest struct {
	Code          string     `json:"code" binding:"required,min=1,max=50"`
	Name          string     `json:"name" binding:"required,min=1,max=200"`
	ContactPerson string     `json:"contact_person" binding:"max=100"`
	Phone         string     `json:"phone" binding:"max=50"`
	Email         string     `json:"email" binding:"omitempty,email,max=100"`
	Address       string     `json:"address" binding:"max=500"`
	PaymentTerms  string     `json:"payment_terms" binding:"max=100"`
	CreatedBy     *uuid.UUID `json:"-"`
}

// UpdateSupplierRequest updates supplier contact details
type UpdateSupplierRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=1,max=200"`
	ContactPerson *string `json:"contact_person" binding:"omitempty,max=100"`
	Phone         *string `json:"phone" binding:"omitempty,max=50"`
	Email         *string `json:"email" binding:"omitempty,email,max=100"`
	Address       *string `json:"address" binding:"omitempty,max=500"`
	PaymentTerms  *string `json:"payment_terms" binding:"omitempty,max=100"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID            uuid.UUID `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	Address       string    `json:"address,omitempty"`
	PaymentTerms  string    `json:"payment_terms,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToSupplierResponse converts a supplier aggregate to a response DTO
func ToSupplierResponse(s *partner.Supplier) *SupplierResponse {
	return &SupplierResponse{
		ID:            s.ID,
		Code:          s.Code,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Phone:         s.Phone,
		Email:         s.Email,
		Address:       s.Address,
		PaymentTerms:  s.PaymentTerms,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// CreateWarehouseRequest registers a new warehouse
type CreateWarehouseRequest struct {
	Code      string     `json:"code" binding:"required,min=1,max=50"`
	Name      string     `json:"name" binding:"required,min=1,max=200"`
	Address   string     `json:"address" binding:"max=500"`
	IsDefault bool       `json:"is_default"`
	CreatedBy *uuid.UUID `json:"-"`
}

// UpdateWarehouseRequest updates warehouse details
type UpdateWarehouseRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=200"`
	Address *string `json:"address" binding:"omitempty,max=500"`
}

// WarehouseResponse represents a warehouse in API responses
type WarehouseResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	IsDefault bool      `json:"is_default"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToWarehouseResponse converts a warehouse aggregate to a response DTO
func ToWarehouseResponse(w *partner.Warehouse) *WarehouseResponse {
	return &WarehouseResponse{
		ID:        w.ID,
		Code:      w.Code,
		Name:      w.Name,
		Address:   w.Address,
		IsDefault: w.IsDefault,
		IsActive:  w.IsActive,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
