package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest registers a new SKU
type CreateProductRequest struct {
	SKU          string          `json:"sku" binding:"required"`
	Name         string          `json:"name" binding:"required"`
	Description  string          `json:"description"`
	Barcode      string          `json:"barcode"`
	Unit         string          `json:"unit" binding:"required"`
	CategoryID   *uuid.UUID      `json:"category_id,omitempty"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
	CreatedBy    *uuid.UUID      `json:"-"`
}

// UpdateProductRequest updates a product's descriptive fields. Nil fields
// are left untouched.
type UpdateProductRequest struct {
	Name         *string          `json:"name,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Barcode      *string          `json:"barcode,omitempty"`
	CategoryID   *uuid.UUID       `json:"category_id,omitempty"`
	ReorderLevel *decimal.Decimal `json:"reorder_level,omitempty"`
}

// ProductResponse is a product in a response
type ProductResponse struct {
	ID             uuid.UUID             `json:"id"`
	SKU            string                `json:"sku"`
	Name           string                `json:"name"`
	Description    string                `json:"description,omitempty"`
	Barcode        string                `json:"barcode,omitempty"`
	CategoryID     *uuid.UUID            `json:"category_id,omitempty"`
	Unit           string                `json:"unit"`
	CostPrice      decimal.Decimal       `json:"cost_price"`
	RegularPrice   decimal.Decimal       `json:"regular_price"`
	WholesalePrice decimal.Decimal       `json:"wholesale_price"`
	WalkInPrice    decimal.Decimal       `json:"walk_in_price"`
	ReorderLevel   decimal.Decimal       `json:"reorder_level"`
	Status         catalog.ProductStatus `json:"status"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// ToProductResponse converts a product to its response form
func ToProductResponse(product *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:             product.ID,
		SKU:            product.SKU,
		Name:           product.Name,
		Description:    product.Description,
		Barcode:        product.Barcode,
		CategoryID:     product.CategoryID,
		Unit:           product.Unit,
		CostPrice:      product.CostPrice,
		RegularPrice:   product.RegularPrice,
		WholesalePrice: product.WholesalePrice,
		WalkInPrice:    product.WalkInPrice,
		ReorderLevel:   product.ReorderLevel,
		Status:         product.Status,
		CreatedAt:      product.CreatedAt,
		UpdatedAt:      product.UpdatedAt,
	}
}

// CategoryRequest creates or renames a category
type CategoryRequest struct {
	Name     string     `json:"name" binding:"required"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
}

// CategoryResponse is a category in a response
type CategoryResponse struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
}

// ToCategoryResponse converts a category to its response form
func ToCategoryResponse(category *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:       category.ID,
		Name:     category.Name,
		ParentID: category.ParentID,
	}
}
