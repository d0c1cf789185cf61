package inventory

import (
	"context"
	"fmt"

	"github.com/retailcore/backend/internal/domain/inventory"
	"github.com/retailcore/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LowStockHandler reacts to below-reorder events, logging the shortfall and
// forwarding it to an optional notifier
type LowStockHandler struct {
	logger   *zap.Logger
	notifier LowStockNotifier
}

// LowStockNotifier delivers a low stock alert. Implementations may fan out
// to whatever channel operations uses.
type LowStockNotifier interface {
	NotifyLowStock(ctx context.Context, event *inventory.StockBelowReorderEvent) error
}

// NewLowStockHandler creates a new LowStockHandler
func NewLowStockHandler(logger *zap.Logger) *LowStockHandler {
	return &LowStockHandler{logger: logger}
}

// WithNotifier sets the notifier
func (h *LowStockHandler) WithNotifier(notifier LowStockNotifier) *LowStockHandler {
	h.notifier = notifier
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *LowStockHandler) EventTypes() []string {
	return []string{inventory.StockBelowReorderEventType}
}

// Handle processes a StockBelowReorderEvent
func (h *LowStockHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	reorderEvent, ok := event.(*inventory.StockBelowReorderEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			inventory.StockBelowReorderEventType, event.EventType())
	}

	h.logger.Warn("stock at or below reorder level",
		zap.String("product_id", reorderEvent.ProductID.String()),
		zap.String("warehouse_id", reorderEvent.WarehouseID.String()),
		zap.String("on_hand", reorderEvent.OnHand.String()),
		zap.String("reorder_level", reorderEvent.ReorderLevel.String()),
	)

	if h.notifier != nil {
		if err := h.notifier.NotifyLowStock(ctx, reorderEvent); err != nil {
			// notification failure must not fail the triggering write
			h.logger.Error("low stock notification failed",
				zap.String("product_id", reorderEvent.ProductID.String()),
				zap.Error(err),
			)
		}
	}
	return nil
}

var _ shared.EventHandler = (*LowStockHandler)(nil)
