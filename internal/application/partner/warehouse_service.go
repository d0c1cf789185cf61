package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/partner"
	"github.com/retailcore/backend/internal/domain/shared"
)

// WarehouseService handles warehouse registration and default selection
type WarehouseService struct {
	warehouseRepo partner.WarehouseRepository
}

// NewWarehouseService creates a new WarehouseService
func NewWarehouseService(warehouseRepo partner.WarehouseRepository) *WarehouseService {
	return &WarehouseService{warehouseRepo: warehouseRepo}
}

// CreateWarehouse registers a new warehouse. The first warehouse created
// becomes the default automatically.
func (s *WarehouseService) CreateWarehouse(ctx context.Context, req CreateWarehouseRequest) (*WarehouseResponse, error) {
	warehouse, err := partner.NewWarehouse(req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	if req.Address != "" {
		if err := warehouse.Update(req.Name, req.Address); err != nil {
			return nil, err
		}
	}
	if req.CreatedBy != nil {
		warehouse.SetCreatedBy(*req.CreatedBy)
	}

	current, err := s.warehouseRepo.FindDefault(ctx)
	if err != nil && !shared.IsNotFound(err) {
		return nil, err
	}
	if current == nil {
		warehouse.MarkAsDefault()
	} else if req.IsDefault {
		current.ClearDefault()
		if err := s.warehouseRepo.Save(ctx, current); err != nil {
			return nil, err
		}
		warehouse.MarkAsDefault()
	}

	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}

	return ToWarehouseResponse(warehouse), nil
}

// UpdateWarehouse updates warehouse details. Nil fields keep their current
// value.
func (s *WarehouseService) UpdateWarehouse(ctx context.Context, warehouseID uuid.UUID, req UpdateWarehouseRequest) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	name := warehouse.Name
	if req.Name != nil {
		name = *req.Name
	}
	address := warehouse.Address
	if req.Address != nil {
		address = *req.Address
	}

	if err := warehouse.Update(name, address); err != nil {
		return nil, err
	}
	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}

	return ToWarehouseResponse(warehouse), nil
}

// SetDefaultWarehouse moves the default flag to the given warehouse
func (s *WarehouseService) SetDefaultWarehouse(ctx context.Context, warehouseID uuid.UUID) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if !warehouse.IsActive {
		return nil, shared.NewConflictError("INACTIVE_WAREHOUSE", "Cannot make an inactive warehouse the default")
	}
	if warehouse.IsDefault {
		return ToWarehouseResponse(warehouse), nil
	}

	current, err := s.warehouseRepo.FindDefault(ctx)
	if err != nil && !shared.IsNotFound(err) {
		return nil, err
	}
	if current != nil {
		current.ClearDefault()
		if err := s.warehouseRepo.Save(ctx, current); err != nil {
			return nil, err
		}
	}

	warehouse.MarkAsDefault()
	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}

	return ToWarehouseResponse(warehouse), nil
}

// DeactivateWarehouse disables the warehouse for new movements. The default
// warehouse cannot be deactivated until another one takes the flag.
func (s *WarehouseService) DeactivateWarehouse(ctx context.Context, warehouseID uuid.UUID) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse.IsDefault {
		return nil, shared.NewConflictError("DEFAULT_WAREHOUSE", "Cannot deactivate the default warehouse")
	}
	warehouse.Deactivate()
	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}
	return ToWarehouseResponse(warehouse), nil
}

// GetWarehouse retrieves a warehouse by ID
func (s *WarehouseService) GetWarehouse(ctx context.Context, warehouseID uuid.UUID) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	return ToWarehouseResponse(warehouse), nil
}

// ListWarehouses lists all warehouses
func (s *WarehouseService) ListWarehouses(ctx context.Context) ([]WarehouseResponse, error) {
	warehouses, err := s.warehouseRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]WarehouseResponse, len(warehouses))
	for i, w := range warehouses {
		responses[i] = *ToWarehouseResponse(w)
	}
	return responses, nil
}
