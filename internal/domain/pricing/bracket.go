package pricing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PriceType identifies which selling price a bracket item or flat price carries
type PriceType string

const (
	PriceTypeRegular   PriceType = "REGULAR"
	PriceTypeWholesale PriceType = "WHOLESALE"
	PriceTypeWalkIn    PriceType = "WALK_IN"
)

// IsValid checks if the price type is a valid PriceType
func (p PriceType) IsValid() bool {
	switch p {
	case PriceTypeRegular, PriceTypeWholesale, PriceTypeWalkIn:
		return true
	}
	return false
}

// String returns the string representation of PriceType
func (p PriceType) String() string {
	return string(p)
}

// BracketItem is one quantity-range/price/price-type row within a bracket
type BracketItem struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key"`
	BracketID   uuid.UUID        `gorm:"type:uuid;not null;index"`
	MinQuantity decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	MaxQuantity *decimal.Decimal `gorm:"type:decimal(18,4)"` // nil = unbounded
	Price       decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	PriceType   PriceType        `gorm:"type:varchar(20);not null"`
	IsActive    bool             `gorm:"not null;default:true"`
	CreatedAt   time.Time        `gorm:"not null"`
	UpdatedAt   time.Time        `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BracketItem) TableName() string {
	return "bracket_items"
}

// NewBracketItem creates a new bracket item
func NewBracketItem(bracketID uuid.UUID, priceType PriceType, minQty decimal.Decimal, maxQty *decimal.Decimal, price decimal.Decimal) (*BracketItem, error) {
	if !priceType.IsValid() {
		return nil, shared.NewValidationError("INVALID_PRICE_TYPE", fmt.Sprintf("Unknown price type %q", priceType))
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("INVALID_PRICE", "Price must be positive")
	}
	r := QuantityRange{Min: minQty, Max: maxQty}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	return &BracketItem{
		ID:          uuid.New(),
		BracketID:   bracketID,
		MinQuantity: minQty,
		MaxQuantity: maxQty,
		Price:       price,
		PriceType:   priceType,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Range returns the item's quantity range
func (i *BracketItem) Range() QuantityRange {
	return QuantityRange{Min: i.MinQuantity, Max: i.MaxQuantity}
}

// OverlapKey groups items for overlap checking: ranges only collide within
// the same price type
func (i *BracketItem) OverlapKey() string {
	return i.PriceType.String()
}

// Matches reports whether this item applies to the given quantity and price type
func (i *BracketItem) Matches(quantity decimal.Decimal, priceType PriceType) bool {
	return i.IsActive && i.PriceType == priceType && i.Range().Contains(quantity)
}

// Deactivate marks the item inactive
func (i *BracketItem) Deactivate() {
	i.IsActive = false
	i.UpdatedAt = time.Now()
}

// PriceBracket is a versioned, time-bounded set of quantity-tiered prices for
// one product. At most one bracket per product is selected at any instant.
type PriceBracket struct {
	shared.AuditedAggregateRoot
	ProductID     uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name          string         `gorm:"type:varchar(200)"`
	IsSelected    bool           `gorm:"not null;default:false;index"`
	EffectiveFrom time.Time      `gorm:"not null"`
	EffectiveTo   *time.Time     // nil = open-ended
	Items         []BracketItem  `gorm:"foreignKey:BracketID;references:ID"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (PriceBracket) TableName() string {
	return "price_brackets"
}

// NewPriceBracket creates a new bracket in draft state (not selected)
func NewPriceBracket(productID uuid.UUID, name string, effectiveFrom time.Time) (*PriceBracket, error) {
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if effectiveFrom.IsZero() {
		return nil, shared.NewValidationError("INVALID_EFFECTIVE_FROM", "Effective-from date is required")
	}

	bracket := &PriceBracket{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		ProductID:            productID,
		Name:                 name,
		IsSelected:           false,
		EffectiveFrom:        effectiveFrom,
		Items:                make([]BracketItem, 0),
	}

	bracket.AddDomainEvent(NewBracketCreatedEvent(bracket))

	return bracket, nil
}

// EffectiveRange returns the bracket's [from, to) window
func (b *PriceBracket) EffectiveRange() DateRange {
	return DateRange{From: b.EffectiveFrom, To: b.EffectiveTo}
}

// IsEffectiveAt reports whether the bracket's window contains the instant
func (b *PriceBracket) IsEffectiveAt(at time.Time) bool {
	return b.EffectiveRange().Contains(at)
}

// AddItem validates and appends a new item, enforcing the no-overlap invariant
// against the bracket's existing items
func (b *PriceBracket) AddItem(priceType PriceType, minQty decimal.Decimal, maxQty *decimal.Decimal, price decimal.Decimal) (*BracketItem, error) {
	item, err := NewBracketItem(b.ID, priceType, minQty, maxQty, price)
	if err != nil {
		return nil, err
	}

	candidate := append(b.activeItemPointers(), item)
	if err := CheckNoOverlap(candidate); err != nil {
		return nil, err
	}

	b.Items = append(b.Items, *item)
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return item, nil
}

// ReplaceItems swaps the full item set. The overlap invariant is re-validated
// across the final set, not just the delta.
func (b *PriceBracket) ReplaceItems(items []BracketItem) error {
	pointers := make([]*BracketItem, 0, len(items))
	for idx := range items {
		if !items[idx].PriceType.IsValid() {
			return shared.NewValidationError("INVALID_PRICE_TYPE", fmt.Sprintf("Unknown price type %q", items[idx].PriceType))
		}
		if items[idx].Price.LessThanOrEqual(decimal.Zero) {
			return shared.NewValidationError("INVALID_PRICE", "Price must be positive")
		}
		if items[idx].IsActive {
			pointers = append(pointers, &items[idx])
		}
	}
	if err := CheckNoOverlap(pointers); err != nil {
		return err
	}

	now := time.Now()
	for idx := range items {
		if items[idx].ID == uuid.Nil {
			items[idx].ID = uuid.New()
			items[idx].CreatedAt = now
		}
		items[idx].BracketID = b.ID
		items[idx].UpdatedAt = now
	}

	b.Items = items
	b.UpdatedAt = now
	b.IncrementVersion()

	return nil
}

// ValidateItems re-checks the no-overlap invariant over the current active
// item set
func (b *PriceBracket) ValidateItems() error {
	return CheckNoOverlap(b.activeItemPointers())
}

// Select marks this bracket as the product's selected bracket starting at
// the given instant. Deactivating the previously selected sibling is the
// service's responsibility (within the same transaction).
func (b *PriceBracket) Select(from time.Time) error {
	if b.IsSelected {
		return shared.NewConflictError("ALREADY_SELECTED", "Bracket is already selected")
	}
	if len(b.Items) == 0 {
		return shared.NewValidationError("NO_ITEMS", "Cannot select a bracket without items")
	}

	b.IsSelected = true
	b.EffectiveFrom = from
	b.EffectiveTo = nil
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	b.AddDomainEvent(NewBracketSelectedEvent(b))

	return nil
}

// Supersede closes this bracket's effective window at the given instant and
// clears the selected flag. Called on the previously selected bracket when a
// sibling takes over.
func (b *PriceBracket) Supersede(at time.Time) error {
	if !b.IsSelected {
		return shared.NewConflictError("NOT_SELECTED", "Only the selected bracket can be superseded")
	}

	b.IsSelected = false
	b.EffectiveTo = &at
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	b.AddDomainEvent(NewBracketSupersededEvent(b))

	return nil
}

// FindItem returns the single active item matching the quantity and price
// type at the given instant. When the no-overlap invariant has been violated
// in stored data, it returns ErrOverlappingBracketItems rather than silently
// picking one.
func (b *PriceBracket) FindItem(quantity decimal.Decimal, priceType PriceType) (*BracketItem, error) {
	var match *BracketItem
	for idx := range b.Items {
		if !b.Items[idx].Matches(quantity, priceType) {
			continue
		}
		if match != nil {
			return nil, NewOverlappingBracketItemsError(b.ID, match.ID, b.Items[idx].ID)
		}
		match = &b.Items[idx]
	}
	return match, nil
}

// Clone duplicates the bracket and its items with fresh identities. The clone
// starts unselected with the given effective window; the source is untouched.
func (b *PriceBracket) Clone(name string, effectiveFrom time.Time, effectiveTo *time.Time) *PriceBracket {
	clone := &PriceBracket{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		ProductID:            b.ProductID,
		Name:                 name,
		IsSelected:           false,
		EffectiveFrom:        effectiveFrom,
		EffectiveTo:          effectiveTo,
		Items:                make([]BracketItem, 0, len(b.Items)),
	}

	now := time.Now()
	for _, item := range b.Items {
		clone.Items = append(clone.Items, BracketItem{
			ID:          uuid.New(),
			BracketID:   clone.ID,
			MinQuantity: item.MinQuantity,
			MaxQuantity: item.MaxQuantity,
			Price:       item.Price,
			PriceType:   item.PriceType,
			IsActive:    item.IsActive,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	clone.AddDomainEvent(NewBracketCreatedEvent(clone))

	return clone
}

// ItemCount returns the number of items in the bracket
func (b *PriceBracket) ItemCount() int {
	return len(b.Items)
}

// ActiveItems returns pointers to the bracket's active items
func (b *PriceBracket) ActiveItems() []*BracketItem {
	return b.activeItemPointers()
}

func (b *PriceBracket) activeItemPointers() []*BracketItem {
	pointers := make([]*BracketItem, 0, len(b.Items))
	for idx := range b.Items {
		if b.Items[idx].IsActive {
			pointers = append(pointers, &b.Items[idx])
		}
	}
	return pointers
}

// NewOverlappingBracketItemsError reports two stored items matching the same
// quantity, which the invariants should have prevented
func NewOverlappingBracketItemsError(bracketID, firstItemID, secondItemID uuid.UUID) *shared.DomainError {
	return shared.NewDataIntegrityError("OVERLAPPING_BRACKET_ITEMS",
		fmt.Sprintf("Bracket %s has overlapping items %s and %s", bracketID, firstItemID, secondItemID))
}
