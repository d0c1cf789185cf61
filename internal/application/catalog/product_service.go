package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/catalog"
	"github.com/retailcore/backend/internal/domain/inventory"
	"github.com/retailcore/backend/internal/domain/shared"
)

// ProductService manages the product catalog. Selling prices are not set
// here; they flow in from receiving and the pricing module.
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	ledgerRepo   inventory.LedgerRepository
	publisher    shared.EventPublisher
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	ledgerRepo inventory.LedgerRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		ledgerRepo:   ledgerRepo,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// CreateProduct registers a new SKU
func (s *ProductService) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if existing, err := s.productRepo.FindBySKU(ctx, req.SKU); err == nil && existing != nil {
		return nil, shared.NewConflictError("SKU_TAKEN",
			fmt.Sprintf("SKU %s is already registered", existing.SKU))
	} else if err != nil && !shared.IsNotFound(err) {
		return nil, err
	}

	product, err := catalog.NewProduct(req.SKU, req.Name, req.Unit)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		if err := product.Update(product.Name, req.Description); err != nil {
			return nil, err
		}
	}
	if req.Barcode != "" {
		if err := product.SetBarcode(req.Barcode); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		product.SetCategory(req.CategoryID)
	}
	if req.ReorderLevel.IsPositive() {
		if err := product.SetReorderLevel(req.ReorderLevel); err != nil {
			return nil, err
		}
	}
	if req.CreatedBy != nil {
		product.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)

	resp := ToProductResponse(product)
	return &resp, nil
}

// UpdateProduct updates a product's descriptive fields
func (s *ProductService) UpdateProduct(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	name := product.Name
	description := product.Description
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	if err := product.Update(name, description); err != nil {
		return nil, err
	}
	if req.Barcode != nil {
		if err := product.SetBarcode(*req.Barcode); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		product.SetCategory(req.CategoryID)
	}
	if req.ReorderLevel != nil {
		if err := product.SetReorderLevel(*req.ReorderLevel); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// ActivateProduct puts a product back on sale
func (s *ProductService) ActivateProduct(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	return s.transition(ctx, productID, func(p *catalog.Product) { p.Activate() })
}

// DeactivateProduct takes a product off sale without discarding it
func (s *ProductService) DeactivateProduct(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	return s.transition(ctx, productID, func(p *catalog.Product) { p.Deactivate() })
}

// DiscontinueProduct permanently retires a product
func (s *ProductService) DiscontinueProduct(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	return s.transition(ctx, productID, func(p *catalog.Product) { p.Discontinue() })
}

func (s *ProductService) transition(ctx context.Context, productID uuid.UUID, apply func(*catalog.Product)) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	apply(product)
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)
	resp := ToProductResponse(product)
	return &resp, nil
}

// DeleteProduct removes a product that holds no stock. Products with stock
// on hand must be deactivated instead.
func (s *ProductService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	onHand, err := s.ledgerRepo.OnHand(ctx, product.ID)
	if err != nil {
		return err
	}
	if !onHand.IsZero() {
		return shared.NewConflictError("HAS_STOCK",
			fmt.Sprintf("Product %s has %s on hand; deactivate it instead", product.SKU, onHand))
	}
	return s.productRepo.Delete(ctx, product.ID)
}

// GetProduct returns one product by id
func (s *ProductService) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// GetProductBySKU returns one product by SKU
func (s *ProductService) GetProductBySKU(ctx context.Context, sku string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// ListProducts returns a page of products
func (s *ProductService) ListProducts(ctx context.Context, filter shared.Filter) ([]ProductResponse, int64, error) {
	applyFilterDefaults(&filter)
	products, total, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		responses = append(responses, ToProductResponse(product))
	}
	return responses, total, nil
}

// ListProductsByCategory returns a page of one category's products
func (s *ProductService) ListProductsByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]ProductResponse, int64, error) {
	applyFilterDefaults(&filter)
	products, total, err := s.productRepo.FindByCategory(ctx, categoryID, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		responses = append(responses, ToProductResponse(product))
	}
	return responses, total, nil
}

func (s *ProductService) publishEvents(ctx context.Context, product *catalog.Product) {
	if s.publisher == nil {
		return
	}
	events := product.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.publisher.Publish(ctx, events...)
	product.ClearDomainEvents()
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
