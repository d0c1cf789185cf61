package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	partnerapp "github.com/retailcore/backend/internal/application/partner"
)

// CustomerHandler handles customer-related API endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *partnerapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *partnerapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// Create registers a new customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req partnerapp.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.CreatedBy = actorID(c)

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, customer)
}

// Update changes a customer's contact details
func (h *CustomerHandler) Update(c *gin.Context) {
	customerID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	var req partnerapp.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, customer)
}

// MarkValued grants the customer access to custom prices
func (h *CustomerHandler) MarkValued(c *gin.Context) {
	h.transition(c, h.customerService.MarkAsValued)
}

// UnmarkValued revokes valued status; the customer's custom prices are
// deactivated in the same transaction
func (h *CustomerHandler) UnmarkValued(c *gin.Context) {
	h.transition(c, h.customerService.UnmarkValued)
}

// Activate re-enables a deactivated customer
func (h *CustomerHandler) Activate(c *gin.Context) {
	h.transition(c, h.customerService.ActivateCustomer)
}

// Deactivate disables a customer
func (h *CustomerHandler) Deactivate(c *gin.Context) {
	h.transition(c, h.customerService.DeactivateCustomer)
}

func (h *CustomerHandler) transition(c *gin.Context, apply func(context.Context, uuid.UUID) (*partnerapp.CustomerResponse, error)) {
	customerID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	customer, err := apply(c.Request.Context(), customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, customer)
}

// GetByID retrieves a customer by ID
func (h *CustomerHandler) GetByID(c *gin.Context) {
	customerID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, customer)
}

// GetByCode retrieves a customer by its code
func (h *CustomerHandler) GetByCode(c *gin.Context) {
	customer, err := h.customerService.GetCustomerByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, customer)
}

// List returns customers with pagination and optional filters
func (h *CustomerHandler) List(c *gin.Context) {
	filter, err := parseFilter(c, "is_valued_customer", "is_active")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customers, total, err := h.customerService.ListCustomers(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, customers, total, filter.Page, filter.PageSize)
}

// ListValued returns all valued customers
func (h *CustomerHandler) ListValued(c *gin.Context) {
	customers, err := h.customerService.ListValuedCustomers(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, customers)
}
