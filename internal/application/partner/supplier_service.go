package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/partner"
	"github.com/retailcore/backend/internal/domain/shared"
)

// SupplierService handles supplier registration and maintenance
type SupplierService struct {
	supplierRepo partner.SupplierRepository
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo}
}

// CreateSupplier registers a new supplier
func (s *SupplierService) CreateSupplier(ctx context.Context, req CreateSupplierRequest) (*SupplierResponse, error) {
	existing, err := s.supplierRepo.FindByCode(ctx, req.Code)
	if err != nil && !shared.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewConflictError("CODE_TAKEN", "A supplier with this code already exists")
	}

	supplier, err := partner.NewSupplier(req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	if req.ContactPerson != "" || req.Phone != "" || req.Email != "" || req.Address != "" || req.PaymentTerms != "" {
		if err := supplier.Update(req.Name, req.ContactPerson, req.Phone, req.Email, req.Address, req.PaymentTerms); err != nil {
			return nil, err
		}
	}
	if req.CreatedBy != nil {
		supplier.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	return ToSupplierResponse(supplier), nil
}

// UpdateSupplier updates supplier contact details. Nil fields keep their
// current value.
func (s *SupplierService) UpdateSupplier(ctx context.Context, supplierID uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	name := supplier.Name
	if req.Name != nil {
		name = *req.Name
	}
	contactPerson := supplier.ContactPerson
	if req.ContactPerson != nil {
		contactPerson = *req.ContactPerson
	}
	phone := supplier.Phone
	if req.Phone != nil {
		phone = *req.Phone
	}
	email := supplier.Email
	if req.Email != nil {
		email = *req.Email
	}
	address := supplier.Address
	if req.Address != nil {
		address = *req.Address
	}
	paymentTerms := supplier.PaymentTerms
	if req.PaymentTerms != nil {
		paymentTerms = *req.PaymentTerms
	}

	if err := supplier.Update(name, contactPerson, phone, email, address, paymentTerms); err != nil {
		return nil, err
	}
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	return ToSupplierResponse(supplier), nil
}

// ActivateSupplier re-enables the supplier
func (s *SupplierService) ActivateSupplier(ctx context.Context, supplierID uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	supplier.Activate()
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	return ToSupplierResponse(supplier), nil
}

// DeactivateSupplier disables the supplier for new purchase orders
func (s *SupplierService) DeactivateSupplier(ctx context.Context, supplierID uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	supplier.Deactivate()
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	return ToSupplierResponse(supplier), nil
}

// GetSupplier retrieves a supplier by ID
func (s *SupplierService) GetSupplier(ctx context.Context, supplierID uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	return ToSupplierResponse(supplier), nil
}

// GetSupplierByCode retrieves a supplier by its unique code
func (s *SupplierService) GetSupplierByCode(ctx context.Context, code string) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return ToSupplierResponse(supplier), nil
}

// ListSuppliers lists suppliers with pagination
func (s *SupplierService) ListSuppliers(ctx context.Context, filter shared.Filter) ([]SupplierResponse, int64, error) {
	applyFilterDefaults(&filter)
	suppliers, total, err := s.supplierRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]SupplierResponse, len(suppliers))
	for i, sup := range suppliers {
		responses[i] = *ToSupplierResponse(sup)
	}
	return responses, total, nil
}
