package orderControllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RG-basket/rgbasket-sub001/models"
)

func TestSlotNameFromLabel(t *testing.T) {
	assert.Equal(t, "Morning", slotNameFromLabel("Morning (07:00 - 10:00)"))
	assert.Equal(t, "Morning", slotNameFromLabel("Morning"))
	assert.Equal(t, "Morning", slotNameFromLabel("  Morning  "))
	assert.Equal(t, "Early Bird", slotNameFromLabel("Early Bird (05:00 - 07:00)"))
}

func TestResolveWeightStrictMatch(t *testing.T) {
	product := &models.Product{
		Name: "MILK",
		Weights: []models.ProductWeight{
			{Label: "500ml", Unit: "ml", Price: 30, OfferPrice: 28},
			{Label: "1l", Unit: "l", Price: 55, OfferPrice: 52},
		},
	}

	w, err := resolveWeight(product, "1l")
	require.NoError(t, err)
	assert.Equal(t, 52.0, w.OfferPrice)

	// No silent fallback to the first variant on a typo.
	_, err = resolveWeight(product, "1L")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownWeight)
}
