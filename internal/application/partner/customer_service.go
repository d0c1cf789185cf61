package partner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/partner"
	"github.com/retailcore/backend/internal/domain/pricing"
	"github.com/retailcore/backend/internal/domain/shared"
)

// CustomerService handles customer registration and valued-status management
type CustomerService struct {
	customerRepo    partner.CustomerRepository
	customPriceRepo pricing.CustomerCustomPriceRepository
	publisher       shared.EventPublisher
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(
	customerRepo partner.CustomerRepository,
	customPriceRepo pricing.CustomerCustomPriceRepository,
) *CustomerService {
	return &CustomerService{
		customerRepo:    customerRepo,
		customPriceRepo: customPriceRepo,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *CustomerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// CreateCustomer registers a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	existing, err := s.customerRepo.FindByCode(ctx, req.Code)
	if err != nil && !shared.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewConflictError("CODE_TAKEN", "A customer with this code already exists")
	}

	customer, err := partner.NewCustomer(req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	if req.ContactPerson != "" || req.Phone != "" || req.Email != "" || req.Address != "" {
		if err := customer.Update(req.Name, req.ContactPerson, req.Phone, req.Email, req.Address); err != nil {
			return nil, err
		}
	}
	if req.CreatedBy != nil {
		customer.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, customer)

	return ToCustomerResponse(customer), nil
}

// UpdateCustomer updates customer contact details. Nil fields keep their
// current value.
func (s *CustomerService) UpdateCustomer(ctx context.Context, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	name := customer.Name
	if req.Name != nil {
		name = *req.Name
	}
	contactPerson := customer.ContactPerson
	if req.ContactPerson != nil {
		contactPerson = *req.ContactPerson
	}
	phone := customer.Phone
	if req.Phone != nil {
		phone = *req.Phone
	}
	email := customer.Email
	if req.Email != nil {
		email = *req.Email
	}
	address := customer.Address
	if req.Address != nil {
		address = *req.Address
	}

	if err := customer.Update(name, contactPerson, phone, email, address); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	return ToCustomerResponse(customer), nil
}

// MarkAsValued grants the customer eligibility for customer-specific prices
func (s *CustomerService) MarkAsValued(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := customer.MarkAsValued(); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, customer)

	return ToCustomerResponse(customer), nil
}

// UnmarkValued revokes valued status and deactivates any custom price rows
// the customer still owns, so the resolver falls back to bracket and flat
// pricing immediately.
func (s *CustomerService) UnmarkValued(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := customer.UnmarkValued(); err != nil {
		return nil, err
	}

	prices, err := s.customPriceRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	var closed []*pricing.CustomerCustomPrice
	for _, price := range prices {
		if !price.IsActive {
			continue
		}
		price.Deactivate(now)
		closed = append(closed, price)
	}
	if len(closed) > 0 {
		if err := s.customPriceRepo.SaveAll(ctx, closed); err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, customer)

	return ToCustomerResponse(customer), nil
}

// ActivateCustomer re-enables the customer
func (s *CustomerService) ActivateCustomer(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	customer.Activate()
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	return ToCustomerResponse(customer), nil
}

// DeactivateCustomer disables the customer for new sales
func (s *CustomerService) DeactivateCustomer(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	customer.Deactivate()
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	return ToCustomerResponse(customer), nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return ToCustomerResponse(customer), nil
}

// GetCustomerByCode retrieves a customer by its unique code
func (s *CustomerService) GetCustomerByCode(ctx context.Context, code string) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return ToCustomerResponse(customer), nil
}

// ListCustomers lists customers with pagination
func (s *CustomerService) ListCustomers(ctx context.Context, filter shared.Filter) ([]CustomerResponse, int64, error) {
	applyFilterDefaults(&filter)
	customers, total, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		responses[i] = *ToCustomerResponse(c)
	}
	return responses, total, nil
}

// ListValuedCustomers lists all customers currently holding valued status
func (s *CustomerService) ListValuedCustomers(ctx context.Context) ([]CustomerResponse, error) {
	customers, err := s.customerRepo.FindValued(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		responses[i] = *ToCustomerResponse(c)
	}
	return responses, nil
}

func (s *CustomerService) publishEvents(ctx context.Context, customer *partner.Customer) {
	if s.publisher == nil {
		return
	}
	for _, event := range customer.GetDomainEvents() {
		_ = s.publisher.Publish(ctx, event)
	}
	customer.ClearDomainEvents()
}

func applyFilterDefaults(filter *shared.Filter) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
		filter.OrderDir = "desc"
	}
}
