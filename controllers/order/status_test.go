package orderControllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RG-basket/rgbasket-sub001/models"
)

func TestHappyPathTransitions(t *testing.T) {
	path := []models.OrderStatus{
		models.OrderStatusPending,
		models.OrderStatusConfirmed,
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
	}
	for i := 0; i < len(path)-1; i++ {
		assert.True(t, CanTransition(path[i], path[i+1]), "%s -> %s", path[i], path[i+1])
	}
}

func TestCancellationOnlyBeforeProcessing(t *testing.T) {
	assert.True(t, IsCancellable(models.OrderStatusPending))
	assert.True(t, IsCancellable(models.OrderStatusConfirmed))

	// A shipped order cannot be cancelled.
	for _, s := range []models.OrderStatus{
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
		models.OrderStatusCancelled,
	} {
		assert.False(t, IsCancellable(s), string(s))
		assert.False(t, CanTransition(s, models.OrderStatusCancelled), string(s))
	}
}

func TestDeliveredOnlyFromShipped(t *testing.T) {
	assert.True(t, CanTransition(models.OrderStatusShipped, models.OrderStatusDelivered))
	for _, s := range []models.OrderStatus{
		models.OrderStatusPending,
		models.OrderStatusConfirmed,
		models.OrderStatusProcessing,
		models.OrderStatusCancelled,
	} {
		assert.False(t, CanTransition(s, models.OrderStatusDelivered), string(s))
	}
}

func TestNoTransitionOutOfTerminalStates(t *testing.T) {
	for _, terminal := range []models.OrderStatus{models.OrderStatusDelivered, models.OrderStatusCancelled} {
		for _, to := range []models.OrderStatus{
			models.OrderStatusPending,
			models.OrderStatusConfirmed,
			models.OrderStatusProcessing,
			models.OrderStatusShipped,
		} {
			assert.False(t, CanTransition(terminal, to), "%s -> %s", terminal, to)
		}
	}
}

func TestMapOrderStatus(t *testing.T) {
	got, err := MapOrderStatus("Shipped")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, got)

	_, err = MapOrderStatus("ready_to_ship")
	assert.Error(t, err)
}
