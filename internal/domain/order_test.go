package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"localmart/internal/domain"
)

func TestValidOrderTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{domain.OrderPending, domain.OrderConfirmed, true},
		{domain.OrderPending, domain.OrderCancelled, true},
		{domain.OrderPending, domain.OrderCompleted, false},
		{domain.OrderConfirmed, domain.OrderCompleted, true},
		{domain.OrderConfirmed, domain.OrderCancelled, true},
		{domain.OrderConfirmed, domain.OrderPending, false},
		{domain.OrderCompleted, domain.OrderCancelled, false},
		{domain.OrderCompleted, domain.OrderPending, false},
		{domain.OrderCancelled, domain.OrderConfirmed, false},
		{domain.OrderPending, domain.OrderPending, false},
		{domain.OrderPending, "shipped", false},
		{"", domain.OrderConfirmed, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, domain.ValidOrderTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestOrderItemsColumnRoundTrip(t *testing.T) {
	items := domain.OrderItems{
		{ProductID: "p1", Name: "Rice 5kg", Price: 320, Quantity: 2},
		{ProductID: "p2", Name: "Dal 1kg", Price: 110, Quantity: 1},
	}
	value, err := items.Value()
	assert.NoError(t, err)

	var scanned domain.OrderItems
	assert.NoError(t, scanned.Scan(value))
	assert.Equal(t, items, scanned)
}

func TestStringListColumnRoundTrip(t *testing.T) {
	offers := domain.StringList{"10% off", "free delivery"}
	value, err := offers.Value()
	assert.NoError(t, err)

	var scanned domain.StringList
	assert.NoError(t, scanned.Scan(value))
	assert.Equal(t, offers, scanned)

	// Nil lists store as empty arrays, and null columns scan to empty lists
	value, err = domain.StringList(nil).Value()
	assert.NoError(t, err)
	assert.Equal(t, []byte("[]"), value)
	assert.NoError(t, scanned.Scan(nil))
	assert.Empty(t, scanned)
}
