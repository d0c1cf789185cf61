package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/pricing"
	"github.com/shopspring/decimal"
)

// BracketItemInput is one tier row when creating or updating a bracket.
// A nil ID inserts a new row; a set ID updates the matching existing row.
type BracketItemInput struct {
	ID          *uuid.UUID        `json:"id,omitempty"`
	PriceType   pricing.PriceType `json:"price_type" binding:"required"`
	MinQuantity decimal.Decimal   `json:"min_quantity" binding:"required"`
	MaxQuantity *decimal.Decimal  `json:"max_quantity,omitempty"`
	Price       decimal.Decimal   `json:"price" binding:"required"`
}

// CreateBracketRequest creates a bracket, optionally selecting it immediately
type CreateBracketRequest struct {
	ProductID     uuid.UUID          `json:"product_id" binding:"required"`
	Name          string             `json:"name"`
	EffectiveFrom time.Time          `json:"effective_from" binding:"required"`
	Select        bool               `json:"select"`
	Items         []BracketItemInput `json:"items" binding:"required,min=1"`
	CreatedBy     *uuid.UUID         `json:"-"`
}

// UpdateBracketRequest replaces a bracket's item set
type UpdateBracketRequest struct {
	Name  *string            `json:"name,omitempty"`
	Items []BracketItemInput `json:"items" binding:"required,min=1"`
}

// CloneBracketRequest duplicates a bracket with a new window
type CloneBracketRequest struct {
	Name          string     `json:"name"`
	EffectiveFrom time.Time  `json:"effective_from" binding:"required"`
	EffectiveTo   *time.Time `json:"effective_to,omitempty"`
}

// BracketItemResponse is one tier row in a response
type BracketItemResponse struct {
	ID          uuid.UUID         `json:"id"`
	PriceType   pricing.PriceType `json:"price_type"`
	MinQuantity decimal.Decimal   `json:"min_quantity"`
	MaxQuantity *decimal.Decimal  `json:"max_quantity,omitempty"`
	Price       decimal.Decimal   `json:"price"`
	IsActive    bool              `json:"is_active"`
}

// BracketResponse is a full bracket in a response
type BracketResponse struct {
	ID            uuid.UUID             `json:"id"`
	ProductID     uuid.UUID             `json:"product_id"`
	Name          string                `json:"name"`
	IsSelected    bool                  `json:"is_selected"`
	EffectiveFrom time.Time             `json:"effective_from"`
	EffectiveTo   *time.Time            `json:"effective_to,omitempty"`
	Items         []BracketItemResponse `json:"items"`
	Version       int                   `json:"version"`
}

// ToBracketResponse maps a bracket aggregate to its response shape
func ToBracketResponse(b *pricing.PriceBracket) BracketResponse {
	items := make([]BracketItemResponse, 0, len(b.Items))
	for _, item := range b.Items {
		items = append(items, BracketItemResponse{
			ID:          item.ID,
			PriceType:   item.PriceType,
			MinQuantity: item.MinQuantity,
			MaxQuantity: item.MaxQuantity,
			Price:       item.Price,
			IsActive:    item.IsActive,
		})
	}
	return BracketResponse{
		ID:            b.ID,
		ProductID:     b.ProductID,
		Name:          b.Name,
		IsSelected:    b.IsSelected,
		EffectiveFrom: b.EffectiveFrom,
		EffectiveTo:   b.EffectiveTo,
		Items:         items,
		Version:       b.Version,
	}
}

// PriceQuoteResponse is the outcome of resolving one price
type PriceQuoteResponse struct {
	ProductID uuid.UUID                `json:"product_id"`
	Quantity  decimal.Decimal          `json:"quantity"`
	PriceType pricing.PriceType        `json:"price_type"`
	UnitPrice decimal.Decimal          `json:"unit_price"`
	Total     decimal.Decimal          `json:"total"`
	Source    pricing.ResolutionSource `json:"source"`
}

// PricingBreakdownRow is one layer of the chain in a breakdown response
type PricingBreakdownRow struct {
	Source    pricing.ResolutionSource `json:"source"`
	Available bool                     `json:"available"`
	UnitPrice *decimal.Decimal         `json:"unit_price,omitempty"`
	Applied   bool                     `json:"applied"`
}

// PricingBreakdownResponse explains which chain layer won and why
type PricingBreakdownResponse struct {
	ProductID uuid.UUID             `json:"product_id"`
	Quantity  decimal.Decimal       `json:"quantity"`
	PriceType pricing.PriceType     `json:"price_type"`
	Rows      []PricingBreakdownRow `json:"rows"`
}

// PricingSuggestion is one margin-derived price proposal
type PricingSuggestion struct {
	Quantity       decimal.Decimal `json:"quantity"`
	SuggestedPrice decimal.Decimal `json:"suggested_price"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	Margin         decimal.Decimal `json:"margin"`
}

// CustomPriceInput is one custom price row for a valued customer
type CustomPriceInput struct {
	ID            *uuid.UUID       `json:"id,omitempty"`
	ProductID     uuid.UUID        `json:"product_id" binding:"required"`
	MinQuantity   decimal.Decimal  `json:"min_quantity" binding:"required"`
	MaxQuantity   *decimal.Decimal `json:"max_quantity,omitempty"`
	Price         decimal.Decimal  `json:"price" binding:"required"`
	Label         string           `json:"label"`
	Notes         string           `json:"notes"`
	EffectiveFrom time.Time        `json:"effective_from" binding:"required"`
	EffectiveTo   *time.Time       `json:"effective_to,omitempty"`
}

// CustomPriceResponse is one custom price row in a response
type CustomPriceResponse struct {
	ID            uuid.UUID        `json:"id"`
	CustomerID    uuid.UUID        `json:"customer_id"`
	ProductID     uuid.UUID        `json:"product_id"`
	MinQuantity   decimal.Decimal  `json:"min_quantity"`
	MaxQuantity   *decimal.Decimal `json:"max_quantity,omitempty"`
	Price         decimal.Decimal  `json:"price"`
	Label         string           `json:"label"`
	Notes         string           `json:"notes"`
	IsActive      bool             `json:"is_active"`
	EffectiveFrom time.Time        `json:"effective_from"`
	EffectiveTo   *time.Time       `json:"effective_to,omitempty"`
}

// ToCustomPriceResponse maps a custom price row to its response shape
func ToCustomPriceResponse(p *pricing.CustomerCustomPrice) CustomPriceResponse {
	return CustomPriceResponse{
		ID:            p.ID,
		CustomerID:    p.CustomerID,
		ProductID:     p.ProductID,
		MinQuantity:   p.MinQuantity,
		MaxQuantity:   p.MaxQuantity,
		Price:         p.Price,
		Label:         p.Label,
		Notes:         p.Notes,
		IsActive:      p.IsActive,
		EffectiveFrom: p.EffectiveFrom,
		EffectiveTo:   p.EffectiveTo,
	}
}

// SetFlatPriceRequest activates a flat price for a product
type SetFlatPriceRequest struct {
	ProductID      uuid.UUID       `json:"product_id" binding:"required"`
	RegularPrice   decimal.Decimal `json:"regular_price" binding:"required"`
	WholesalePrice decimal.Decimal `json:"wholesale_price" binding:"required"`
	WalkInPrice    decimal.Decimal `json:"walk_in_price" binding:"required"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	EffectiveFrom  time.Time       `json:"effective_from" binding:"required"`
	CreatedBy      *uuid.UUID      `json:"-"`
}

// CSVImportRowResult is the outcome of importing one CSV row
type CSVImportRowResult struct {
	Line   int        `json:"line"`
	OK     bool       `json:"ok"`
	Error  string     `json:"error,omitempty"`
	ItemID *uuid.UUID `json:"item_id,omitempty"`
}

// CSVImportResult summarizes a partial-success CSV import
type CSVImportResult struct {
	TotalRows    int                  `json:"total_rows"`
	ImportedRows int                  `json:"imported_rows"`
	ErrorRows    int                  `json:"error_rows"`
	Rows         []CSVImportRowResult `json:"rows"`
}
