package checkout

import (
	"context"
	"log/slog"

	"github.com/nilecart/storefront-backend/internal/infrastructure/storage"
)

// Notifier is told about submitted orders. Implementations send the order
// confirmation email or push to whatever channel the shop uses; failures
// are logged by the caller and never fail the checkout.
type Notifier interface {
	OrderSubmitted(ctx context.Context, order *storage.Order) error
}

// LogNotifier is the default Notifier: it just logs the order. Useful in
// development and as a stand-in until a mail provider is wired up.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n *LogNotifier) OrderSubmitted(_ context.Context, order *storage.Order) error {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("order confirmation",
		"order_id", order.ID,
		"customer", order.CustomerName,
		"email", order.CustomerEmail,
		"total", order.Total.StringFixed(2),
		"currency", order.Currency,
	)
	return nil
}
