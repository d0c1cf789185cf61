package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AdditionalCostType is a catalog entry for the kinds of extra charges a
// receiving report can carry (freight, handling, supplier rebates).
// Deduction types subtract from landed cost instead of adding to it.
type AdditionalCostType struct {
	shared.AuditedAggregateRoot
	Name        string         `gorm:"type:varchar(100);not null;uniqueIndex"`
	IsDeduction bool           `gorm:"not null;default:false"`
	IsActive    bool           `gorm:"not null;default:true"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (AdditionalCostType) TableName() string {
	return "additional_cost_types"
}

// NewAdditionalCostType creates a new cost type
func NewAdditionalCostType(name string, isDeduction bool) (*AdditionalCostType, error) {
	if name == "" {
		return nil, shared.NewValidationError("INVALID_NAME", "Cost type name cannot be empty")
	}

	return &AdditionalCostType{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Name:                 name,
		IsDeduction:          isDeduction,
		IsActive:             true,
	}, nil
}

// Rename changes the cost type name
func (t *AdditionalCostType) Rename(name string) error {
	if name == "" {
		return shared.NewValidationError("INVALID_NAME", "Cost type name cannot be empty")
	}

	t.Name = name
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// Deactivate hides the cost type from new reports
func (t *AdditionalCostType) Deactivate() {
	t.IsActive = false
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// ReceivedItem is one product line on a receiving report. The three selling
// prices entered at receiving time propagate to the product snapshot and the
// pricing module.
type ReceivedItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key"`
	ReportID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderItemID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName    string          `gorm:"type:varchar(200);not null"`
	Quantity       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AllocatedCost  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // share of additional costs
	RegularPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	WholesalePrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	WalkInPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LedgerEntryID  *uuid.UUID      `gorm:"type:uuid"` // inbound ledger entry written for this line
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReceivedItem) TableName() string {
	return "received_items"
}

// LandedUnitCost returns the unit cost including this line's share of
// additional costs
func (i *ReceivedItem) LandedUnitCost() decimal.Decimal {
	if i.Quantity.IsZero() {
		return i.UnitCost
	}
	return i.UnitCost.Add(i.AllocatedCost.Div(i.Quantity)).Round(4)
}

// AdditionalCost is one extra charge or deduction on a receiving report
type AdditionalCost struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	ReportID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	CostTypeID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(200)"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	IsDeduction bool            `gorm:"not null;default:false"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AdditionalCost) TableName() string {
	return "additional_costs"
}

// SignedAmount returns the amount with deductions negated
func (c *AdditionalCost) SignedAmount() decimal.Decimal {
	if c.IsDeduction {
		return c.Amount.Neg()
	}
	return c.Amount
}

// ReceivedItemInput describes one line when creating or updating a report.
// A nil ID means insert; a set ID means update the existing line.
type ReceivedItemInput struct {
	ID             *uuid.UUID
	OrderItemID    uuid.UUID
	Quantity       decimal.Decimal
	UnitCost       decimal.Decimal
	RegularPrice   decimal.Decimal
	WholesalePrice decimal.Decimal
	WalkInPrice    decimal.Decimal
}

// AdditionalCostInput describes one cost line when creating or updating
type AdditionalCostInput struct {
	ID          *uuid.UUID
	CostTypeID  uuid.UUID
	Description string
	Amount      decimal.Decimal
	IsDeduction bool
}

// ReceivingReport records one receiving event against a purchase order. It
// owns its item and cost children; revisions reconcile children by id.
type ReceivingReport struct {
	shared.AuditedAggregateRoot
	ReportNumber    string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	OrderID         uuid.UUID        `gorm:"type:uuid;not null;index"`
	WarehouseID     uuid.UUID        `gorm:"type:uuid;not null;index"`
	SupplierID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	ReceivedAt      time.Time        `gorm:"not null;index"`
	Items           []ReceivedItem   `gorm:"foreignKey:ReportID;references:ID"`
	AdditionalCosts []AdditionalCost `gorm:"foreignKey:ReportID;references:ID"`
	Remark          string           `gorm:"type:varchar(500)"`
	DeletedAt       gorm.DeletedAt   `gorm:"index"`
}

// TableName returns the table name for GORM
func (ReceivingReport) TableName() string {
	return "receiving_reports"
}

// NewReceivingReport creates an empty report against an order. Lines are
// added through ApplyItems so creation and revision share one path.
func NewReceivingReport(reportNumber string, orderID, warehouseID, supplierID uuid.UUID, receivedAt time.Time) (*ReceivingReport, error) {
	if reportNumber == "" {
		return nil, shared.NewValidationError("INVALID_REPORT_NUMBER", "Report number cannot be empty")
	}
	if orderID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}

	report := &ReceivingReport{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		ReportNumber:         reportNumber,
		OrderID:              orderID,
		WarehouseID:          warehouseID,
		SupplierID:           supplierID,
		ReceivedAt:           receivedAt,
		Items:                make([]ReceivedItem, 0),
		AdditionalCosts:      make([]AdditionalCost, 0),
	}

	report.AddDomainEvent(NewReceivingReportCreatedEvent(report))

	return report, nil
}

// ItemReconciliation describes how a revision changed the item set, so the
// caller can translate the change into ledger entries and order updates.
type ItemReconciliation struct {
	Inserted []ReceivedItem
	Updated  []ItemQuantityChange
	Removed  []ReceivedItem
}

// ItemQuantityChange is one surviving line whose quantity moved
type ItemQuantityChange struct {
	Item        ReceivedItem
	OldQuantity decimal.Decimal
}

// ApplyItems reconciles the report's item list against the given inputs:
// inputs with a matching id update that line, inputs without an id insert a
// new line, and existing lines absent from the inputs are removed. Product
// identity on a line never changes; it comes from the order item.
func (r *ReceivingReport) ApplyItems(order *PurchaseOrder, inputs []ReceivedItemInput) (*ItemReconciliation, error) {
	if len(inputs) == 0 {
		return nil, shared.NewValidationError("NO_ITEMS", "A receiving report requires at least one item")
	}

	recon := &ItemReconciliation{}
	now := time.Now()
	next := make([]ReceivedItem, 0, len(inputs))
	seen := make(map[uuid.UUID]bool, len(inputs))

	for _, input := range inputs {
		if input.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, shared.NewValidationError("INVALID_QUANTITY", "Received quantity must be positive")
		}
		if input.UnitCost.IsNegative() {
			return nil, shared.NewValidationError("INVALID_COST", "Unit cost cannot be negative")
		}
		for _, price := range []decimal.Decimal{input.RegularPrice, input.WholesalePrice, input.WalkInPrice} {
			if price.IsNegative() {
				return nil, shared.NewValidationError("INVALID_PRICE", "Selling prices cannot be negative")
			}
		}

		orderItem := order.GetItem(input.OrderItemID)
		if orderItem == nil {
			return nil, shared.NewNotFoundError("ORDER_ITEM_NOT_FOUND", "Order item not found on the parent order")
		}

		if input.ID != nil {
			existing := r.findItem(*input.ID)
			if existing == nil {
				return nil, shared.NewNotFoundError("ITEM_NOT_FOUND", "Received item not found on report")
			}
			if seen[existing.ID] {
				return nil, shared.NewValidationError("DUPLICATE_ITEM", "Received item listed twice")
			}
			seen[existing.ID] = true

			updated := *existing
			oldQuantity := updated.Quantity
			updated.OrderItemID = input.OrderItemID
			updated.Quantity = input.Quantity
			updated.UnitCost = input.UnitCost
			updated.RegularPrice = input.RegularPrice
			updated.WholesalePrice = input.WholesalePrice
			updated.WalkInPrice = input.WalkInPrice
			updated.UpdatedAt = now
			next = append(next, updated)
			recon.Updated = append(recon.Updated, ItemQuantityChange{Item: updated, OldQuantity: oldQuantity})
			continue
		}

		inserted := ReceivedItem{
			ID:             uuid.New(),
			ReportID:       r.ID,
			OrderItemID:    input.OrderItemID,
			ProductID:      orderItem.ProductID,
			ProductName:    orderItem.ProductName,
			Quantity:       input.Quantity,
			UnitCost:       input.UnitCost,
			AllocatedCost:  decimal.Zero,
			RegularPrice:   input.RegularPrice,
			WholesalePrice: input.WholesalePrice,
			WalkInPrice:    input.WalkInPrice,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		next = append(next, inserted)
		recon.Inserted = append(recon.Inserted, inserted)
	}

	for _, existing := range r.Items {
		if !seen[existing.ID] {
			recon.Removed = append(recon.Removed, existing)
		}
	}

	r.Items = next
	r.allocateAdditionalCosts()
	r.UpdatedAt = now
	r.IncrementVersion()

	return recon, nil
}

// ApplyAdditionalCosts reconciles the cost list by id the same way
// ApplyItems reconciles items, then reallocates cost shares across lines
func (r *ReceivingReport) ApplyAdditionalCosts(inputs []AdditionalCostInput) error {
	now := time.Now()
	next := make([]AdditionalCost, 0, len(inputs))
	seen := make(map[uuid.UUID]bool, len(inputs))

	for _, input := range inputs {
		if input.CostTypeID == uuid.Nil {
			return shared.NewValidationError("INVALID_COST_TYPE", "Cost type is required")
		}
		if input.Amount.LessThanOrEqual(decimal.Zero) {
			return shared.NewValidationError("INVALID_AMOUNT", "Cost amount must be positive")
		}

		if input.ID != nil {
			existing := r.findCost(*input.ID)
			if existing == nil {
				return shared.NewNotFoundError("COST_NOT_FOUND", "Additional cost not found on report")
			}
			seen[existing.ID] = true

			updated := *existing
			updated.CostTypeID = input.CostTypeID
			updated.Description = input.Description
			updated.Amount = input.Amount
			updated.IsDeduction = input.IsDeduction
			updated.UpdatedAt = now
			next = append(next, updated)
			continue
		}

		next = append(next, AdditionalCost{
			ID:          uuid.New(),
			ReportID:    r.ID,
			CostTypeID:  input.CostTypeID,
			Description: input.Description,
			Amount:      input.Amount,
			IsDeduction: input.IsDeduction,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	r.AdditionalCosts = next
	r.allocateAdditionalCosts()
	r.UpdatedAt = now
	r.IncrementVersion()

	return nil
}

// allocateAdditionalCosts distributes the signed cost total across items by
// quantity share. Rounding remainder lands on the largest line.
func (r *ReceivingReport) allocateAdditionalCosts() {
	if len(r.Items) == 0 {
		return
	}

	total := r.TotalAdditionalCost()
	if total.IsZero() {
		for idx := range r.Items {
			r.Items[idx].AllocatedCost = decimal.Zero
		}
		return
	}

	totalQty := decimal.Zero
	for _, item := range r.Items {
		totalQty = totalQty.Add(item.Quantity)
	}
	if totalQty.IsZero() {
		return
	}

	allocated := decimal.Zero
	largest := 0
	for idx := range r.Items {
		share := total.Mul(r.Items[idx].Quantity).Div(totalQty).Round(4)
		r.Items[idx].AllocatedCost = share
		allocated = allocated.Add(share)
		if r.Items[idx].Quantity.GreaterThan(r.Items[largest].Quantity) {
			largest = idx
		}
	}

	remainder := total.Sub(allocated)
	if !remainder.IsZero() {
		r.Items[largest].AllocatedCost = r.Items[largest].AllocatedCost.Add(remainder)
	}
}

// TotalAdditionalCost returns the signed sum of all cost lines
func (r *ReceivingReport) TotalAdditionalCost() decimal.Decimal {
	total := decimal.Zero
	for _, cost := range r.AdditionalCosts {
		total = total.Add(cost.SignedAmount())
	}
	return total
}

// TotalItemCost returns the sum of quantity * unit cost across items
func (r *ReceivingReport) TotalItemCost() decimal.Decimal {
	total := decimal.Zero
	for _, item := range r.Items {
		total = total.Add(item.Quantity.Mul(item.UnitCost))
	}
	return total
}

// TotalLandedCost returns item cost plus signed additional costs
func (r *ReceivingReport) TotalLandedCost() decimal.Decimal {
	return r.TotalItemCost().Add(r.TotalAdditionalCost())
}

func (r *ReceivingReport) findItem(id uuid.UUID) *ReceivedItem {
	for idx := range r.Items {
		if r.Items[idx].ID == id {
			return &r.Items[idx]
		}
	}
	return nil
}

func (r *ReceivingReport) findCost(id uuid.UUID) *AdditionalCost {
	for idx := range r.AdditionalCosts {
		if r.AdditionalCosts[idx].ID == id {
			return &r.AdditionalCosts[idx]
		}
	}
	return nil
}
