package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleReturnItem is one returned line, priced at the original sale price
type SaleReturnItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key"`
	ReturnID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	SaleItemID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null"` // snapshot from the sale line
	Amount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt  time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SaleReturnItem) TableName() string {
	return "sale_return_items"
}

// SaleReturn restores stock and reverses amounts for part of a confirmed
// sale. Refund amounts always come from the sale's price snapshot, never
// from current pricing.
type SaleReturn struct {
	shared.AuditedAggregateRoot
	ReturnNumber string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	SaleID       uuid.UUID        `gorm:"type:uuid;not null;index"`
	WarehouseID  uuid.UUID        `gorm:"type:uuid;not null"`
	Items        []SaleReturnItem `gorm:"foreignKey:ReturnID;references:ID"`
	TotalAmount  decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Reason       string           `gorm:"type:varchar(500);not null"`
	DeletedAt    gorm.DeletedAt   `gorm:"index"`
}

// TableName returns the table name for GORM
func (SaleReturn) TableName() string {
	return "sale_returns"
}

// ReturnLine is the input for one returned sale item
type ReturnLine struct {
	SaleItemID uuid.UUID
	Quantity   decimal.Decimal
}

// NewSaleReturn builds a return against a confirmed sale. Each line is
// validated against the sale item's returnable quantity, and the sale's
// returned counters are advanced as part of the same construction.
func NewSaleReturn(returnNumber string, sale *Sale, lines []ReturnLine, reason string) (*SaleReturn, error) {
	if returnNumber == "" {
		return nil, shared.NewValidationError("INVALID_RETURN_NUMBER", "Return number cannot be empty")
	}
	if reason == "" {
		return nil, shared.NewValidationError("INVALID_REASON", "Return reason is required")
	}
	if len(lines) == 0 {
		return nil, shared.NewValidationError("NO_ITEMS", "Return requires at least one item")
	}

	ret := &SaleReturn{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		ReturnNumber:         returnNumber,
		SaleID:               sale.ID,
		WarehouseID:          sale.WarehouseID,
		Items:                make([]SaleReturnItem, 0, len(lines)),
		TotalAmount:          decimal.Zero,
		Reason:               reason,
	}

	now := time.Now()
	for _, line := range lines {
		saleItem := sale.GetItem(line.SaleItemID)
		if saleItem == nil {
			return nil, shared.NewNotFoundError("ITEM_NOT_FOUND", "Sale item not found")
		}

		if err := sale.RecordReturn(line.SaleItemID, line.Quantity); err != nil {
			return nil, err
		}

		amount := line.Quantity.Mul(saleItem.UnitPrice)
		ret.Items = append(ret.Items, SaleReturnItem{
			ID:         uuid.New(),
			ReturnID:   ret.ID,
			SaleItemID: line.SaleItemID,
			ProductID:  saleItem.ProductID,
			Quantity:   line.Quantity,
			UnitPrice:  saleItem.UnitPrice,
			Amount:     amount,
			CreatedAt:  now,
		})
		ret.TotalAmount = ret.TotalAmount.Add(amount)
	}

	ret.AddDomainEvent(NewSaleReturnCreatedEvent(ret))

	return ret, nil
}
