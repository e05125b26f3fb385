package orderControllers

import (
	"errors"
	"strings"

	"github.com/RG-basket/rgbasket-sub001/models"
)

// The order lifecycle: pending -> confirmed -> processing -> shipped ->
// delivered, with cancellation allowed only before processing starts.
var transitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:    {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed:  {models.OrderStatusProcessing, models.OrderStatusCancelled},
	models.OrderStatusProcessing: {models.OrderStatusShipped},
	models.OrderStatusShipped:    {models.OrderStatusDelivered},
}

func MapOrderStatus(s string) (models.OrderStatus, error) {
	switch models.OrderStatus(strings.ToLower(s)) {
	case models.OrderStatusPending:
		return models.OrderStatusPending, nil
	case models.OrderStatusConfirmed:
		return models.OrderStatusConfirmed, nil
	case models.OrderStatusProcessing:
		return models.OrderStatusProcessing, nil
	case models.OrderStatusShipped:
		return models.OrderStatusShipped, nil
	case models.OrderStatusDelivered:
		return models.OrderStatusDelivered, nil
	case models.OrderStatusCancelled:
		return models.OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

func CanTransition(from, to models.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsCancellable: only pending and confirmed orders can be cancelled.
func IsCancellable(s models.OrderStatus) bool {
	return s == models.OrderStatusPending || s == models.OrderStatusConfirmed
}
