package notify

import (
	"context"
	"log"

	"github.com/RG-basket/rgbasket-sub001/models"
)

// Notifier dispatches order events to the external messaging collaborator.
// Checkout treats every method as best-effort: failures are logged by the
// caller, never surfaced to the customer.
type Notifier interface {
	OrderCreated(ctx context.Context, order *models.Order) error
	OrderCancelled(ctx context.Context, order *models.Order) error
	Close() error
}

// LogNotifier is the fallback when no broker is configured.
type LogNotifier struct{}

func (LogNotifier) OrderCreated(_ context.Context, o *models.Order) error {
	log.Printf("order %s created (user=%s total=%.2f slot=%s)", o.Ref, o.UserID, o.TotalAmount, o.TimeSlot)
	return nil
}

func (LogNotifier) OrderCancelled(_ context.Context, o *models.Order) error {
	log.Printf("order %s cancelled (user=%s)", o.Ref, o.UserID)
	return nil
}

func (LogNotifier) Close() error { return nil }
