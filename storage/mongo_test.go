package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/Govind-619/storefront/cart"
	"github.com/stretchr/testify/assert"
)

func TestAuditFromReceipt(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	entry := AuditFromReceipt(cart.Receipt{
		OrderNumber:  "WEB-1",
		SessionID:    "s1",
		Items:        cart.Cart{{ProductID: 1, Quantity: 2, UnitPrice: 100}},
		Totals:       cart.Totals{RawSubtotal: 200, Shipping: 50, Total: 250},
		CouponCode:   "SAVE10",
		PersistError: errors.New("db down"),
		ClearError:   errors.New("redis down"),
		States:       []cart.State{cart.StateIdle, cart.StateSubmitting, cart.StatePersistFailed},
		CreatedAt:    at,
	})

	assert.Equal(t, "checkout", entry.Action)
	assert.Equal(t, "WEB-1", entry.OrderNumber)
	assert.False(t, entry.Persisted)
	assert.Equal(t, "db down", entry.PersistError)
	assert.Empty(t, entry.DispatchError)
	assert.Equal(t, "redis down", entry.ClearError)
	assert.Equal(t, []string{"idle", "submitting", "persist_failed"}, entry.States)
	assert.Equal(t, 1, entry.Data["items"])
	assert.Equal(t, int64(250), entry.Total)
	assert.Equal(t, at, entry.CreatedAt)
}
