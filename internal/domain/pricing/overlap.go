package pricing

import (
	"fmt"
	"time"

	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// QuantityRange is a closed-below, optionally-unbounded-above quantity range.
// A nil Max means the range extends to infinity.
type QuantityRange struct {
	Min decimal.Decimal
	Max *decimal.Decimal
}

// Contains reports whether the quantity falls inside the range
func (r QuantityRange) Contains(quantity decimal.Decimal) bool {
	if quantity.LessThan(r.Min) {
		return false
	}
	if r.Max != nil && quantity.GreaterThan(*r.Max) {
		return false
	}
	return true
}

// Overlaps reports whether two quantity ranges intersect
func (r QuantityRange) Overlaps(other QuantityRange) bool {
	// r starts after other ends
	if other.Max != nil && r.Min.GreaterThan(*other.Max) {
		return false
	}
	// other starts after r ends
	if r.Max != nil && other.Min.GreaterThan(*r.Max) {
		return false
	}
	return true
}

// Validate checks the internal consistency of the range
func (r QuantityRange) Validate() error {
	if r.Min.LessThan(decimal.NewFromInt(1)) {
		return shared.NewValidationError("INVALID_MIN_QUANTITY", "Minimum quantity must be at least 1")
	}
	if r.Max != nil && r.Max.LessThanOrEqual(r.Min) {
		return shared.NewValidationError("INVALID_MAX_QUANTITY", "Maximum quantity must exceed minimum quantity")
	}
	return nil
}

// String renders the range for error messages
func (r QuantityRange) String() string {
	if r.Max == nil {
		return fmt.Sprintf("[%s, ∞)", r.Min.String())
	}
	return fmt.Sprintf("[%s, %s]", r.Min.String(), r.Max.String())
}

// rangeCarrier is anything that exposes a quantity range and a grouping key.
// Items only collide when they share the same key (price type for bracket
// items, product for customer prices).
type rangeCarrier interface {
	Range() QuantityRange
	OverlapKey() string
}

// CheckNoOverlap validates every carrier's range and rejects any pair of
// carriers with the same key whose ranges intersect. It is the single
// overlap check shared by the create, update and import paths.
func CheckNoOverlap[T rangeCarrier](carriers []T) error {
	fields := shared.FieldErrors{}
	for i, c := range carriers {
		if err := c.Range().Validate(); err != nil {
			fields.Add(fmt.Sprintf("items[%d]", i), err.Error())
		}
	}
	if fields.HasErrors() {
		return shared.NewFieldValidationError("quantity range validation failed", fields)
	}

	for i := 0; i < len(carriers); i++ {
		for j := i + 1; j < len(carriers); j++ {
			if carriers[i].OverlapKey() != carriers[j].OverlapKey() {
				continue
			}
			ri, rj := carriers[i].Range(), carriers[j].Range()
			if ri.Overlaps(rj) {
				return shared.NewConflictError("OVERLAPPING_RANGES",
					fmt.Sprintf("Quantity range %s overlaps %s for %s", ri, rj, carriers[i].OverlapKey()))
			}
		}
	}
	return nil
}

// DateRange is a [from, to) effective window. A nil To means open-ended.
type DateRange struct {
	From time.Time
	To   *time.Time
}

// Contains reports whether the instant falls inside the window
func (d DateRange) Contains(at time.Time) bool {
	if at.Before(d.From) {
		return false
	}
	if d.To != nil && !at.Before(*d.To) {
		return false
	}
	return true
}

// Overlaps reports whether two effective windows intersect
func (d DateRange) Overlaps(other DateRange) bool {
	if other.To != nil && !d.From.Before(*other.To) {
		return false
	}
	if d.To != nil && !other.From.Before(*d.To) {
		return false
	}
	return true
}
