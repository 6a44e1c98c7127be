package bridge

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inventoryEnabled(cfg *Config) { cfg.EnableInventory = true }

func TestInventoryService_Check(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/inventory/check", r.URL.Path)

		var body map[string][]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"SKU-1", "SKU-2"}, body["skus"])

		writeData(t, w, []rawInventoryLevel{
			{SKU: "SKU-1", Available: 12, Reserved: 3},
		}, nil)
	}), inventoryEnabled)

	inv, ok := client.Inventory()
	require.True(t, ok)

	levels, err := inv.Check(context.Background(), []string{"SKU-1", "SKU-2"})
	require.NoError(t, err)
	require.Len(t, levels, 1) // unknown SKU silently absent
	assert.Equal(t, 12, levels[0].Available)
	assert.Equal(t, 3, levels[0].Reserved)
}

func TestInventoryService_Check_Empty(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("empty check must not reach the network")
	}), inventoryEnabled)

	inv, _ := client.Inventory()
	levels, err := inv.Check(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, levels)
}

func TestInventoryService_UpdateStock_PartialFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/inventory/stock", r.URL.Path)
		writeData(t, w, []rawStockUpdateResult{
			{SKU: "SKU-1", Updated: true},
			{SKU: "SKU-BAD", Updated: false, Error: "unknown sku"},
			{SKU: "SKU-3", Updated: true},
		}, nil)
	}), inventoryEnabled)

	inv, _ := client.Inventory()
	result, err := inv.UpdateStock(context.Background(), []StockUpdate{
		{SKU: "SKU-1", Quantity: 10},
		{SKU: "SKU-BAD", Quantity: 5},
		{SKU: "SKU-3", Quantity: 0},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalCount)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 1, result.FailedCount)
	assert.False(t, result.AllSucceeded())
	assert.Equal(t, []string{"SKU-1", "SKU-3"}, result.Succeeded)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "SKU-BAD", result.Failed[0].Input)
	assert.Equal(t, "unknown sku", result.Failed[0].Reason)
	assert.Equal(t, 1, result.Failed[0].Index)
}

func TestInventoryService_ReserveLifecycle(t *testing.T) {
	expires := time.Now().Add(15 * time.Minute).UTC().Truncate(time.Second)
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/inventory/reservations":
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "order-77", body["order_ref"])
			assert.EqualValues(t, 900, body["ttl_seconds"])
			writeData(t, w, rawReservation{
				ID:        "res-1",
				OrderRef:  "order-77",
				Status:    "held",
				Items:     []rawReservationItem{{SKU: "SKU-1", Quantity: 2}},
				ExpiresAt: &expires,
			}, nil)
		case r.Method == http.MethodPost && r.URL.Path == "/inventory/reservations/res-1/confirm":
			writeData(t, w, rawReservation{ID: "res-1", OrderRef: "order-77", Status: "confirmed"}, nil)
		case r.Method == http.MethodDelete && r.URL.Path == "/inventory/reservations/res-1":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}), inventoryEnabled)

	inv, _ := client.Inventory()
	ctx := context.Background()

	reservation, err := inv.Reserve(ctx, "order-77", []ReservationItem{{SKU: "SKU-1", Quantity: 2}}, 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "res-1", reservation.ID)
	require.NotNil(t, reservation.ExpiresAt)

	confirmed, err := inv.Confirm(ctx, "res-1")
	require.NoError(t, err)
	assert.Equal(t, "confirmed", confirmed.Status)

	require.NoError(t, inv.Release(ctx, "res-1"))
}
