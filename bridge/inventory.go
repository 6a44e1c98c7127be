package bridge

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/MarketingDevWebexpR/b2b-template-sub010/commerce"
)

// InventoryLevel is the warehouse stock position of one SKU.
type InventoryLevel struct {
	SKU       string    `json:"sku"`
	Available int       `json:"available"`
	Reserved  int       `json:"reserved"`
	Incoming  int       `json:"incoming"`
	Warehouse string    `json:"warehouse,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationItem is one SKU/quantity pair of a stock reservation.
type ReservationItem struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// Reservation is a short-lived stock hold placed during checkout. It is
// released explicitly, confirmed into an order, or expires server-side at
// ExpiresAt.
type Reservation struct {
	ID        string            `json:"id"`
	OrderRef  string            `json:"orderRef"`
	Status    string            `json:"status"`
	Items     []ReservationItem `json:"items"`
	ExpiresAt *time.Time        `json:"expiresAt,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

// StockUpdate sets the absolute stock level of one SKU.
type StockUpdate struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// InventoryService talks to the Bridge warehouse endpoints. It sits
// outside the common client contract: only Bridge deployments expose it.
type InventoryService struct {
	c *Client
}

// Check returns the stock position of the given SKUs. Unknown SKUs are
// absent from the result, not errors.
func (s *InventoryService) Check(ctx context.Context, skus []string) ([]InventoryLevel, error) {
	if len(skus) == 0 {
		return nil, nil
	}

	var out envelope[[]rawInventoryLevel]
	body := map[string][]string{"skus": skus}
	if err := s.c.http.Post(ctx, "/inventory/check", body, &out); err != nil {
		return nil, apiError("inventory.check", err)
	}

	levels := make([]InventoryLevel, 0, len(out.Data))
	for _, raw := range out.Data {
		levels = append(levels, mapInventoryLevel(raw))
	}
	return levels, nil
}

// Reserve places a stock hold for orderRef. A zero ttl leaves the expiry
// to the backend default.
func (s *InventoryService) Reserve(ctx context.Context, orderRef string, items []ReservationItem, ttl time.Duration) (*Reservation, error) {
	body := map[string]any{
		"order_ref": orderRef,
		"items":     items,
	}
	if ttl > 0 {
		body["ttl_seconds"] = int(ttl.Seconds())
	}

	var out envelope[rawReservation]
	if err := s.c.http.Post(ctx, "/inventory/reservations", body, &out); err != nil {
		return nil, apiError("inventory.reserve", err)
	}
	reservation := mapReservation(out.Data)
	return &reservation, nil
}

// Release drops a reservation and returns its stock to the pool.
func (s *InventoryService) Release(ctx context.Context, reservationID string) error {
	if err := s.c.http.Delete(ctx, "/inventory/reservations/"+url.PathEscape(reservationID), nil); err != nil {
		return apiError(fmt.Sprintf("inventory.release %q", reservationID), err)
	}
	return nil
}

// Confirm converts a reservation into a firm allocation.
func (s *InventoryService) Confirm(ctx context.Context, reservationID string) (*Reservation, error) {
	var out envelope[rawReservation]
	if err := s.c.http.Post(ctx, "/inventory/reservations/"+url.PathEscape(reservationID)+"/confirm", nil, &out); err != nil {
		return nil, apiError(fmt.Sprintf("inventory.confirm %q", reservationID), err)
	}
	reservation := mapReservation(out.Data)
	return &reservation, nil
}

// UpdateStock pushes absolute stock levels in one bulk request. Rejected
// SKUs are reported per item; the batch itself still succeeds.
func (s *InventoryService) UpdateStock(ctx context.Context, updates []StockUpdate) (*commerce.BulkResult[string], error) {
	result := &commerce.BulkResult[string]{TotalCount: len(updates)}
	if len(updates) == 0 {
		return result, nil
	}

	var out envelope[[]rawStockUpdateResult]
	body := map[string]any{"items": updates}
	if err := s.c.http.Put(ctx, "/inventory/stock", body, &out); err != nil {
		return nil, apiError("inventory.update_stock", err)
	}

	for i, item := range out.Data {
		if item.Updated {
			result.Succeeded = append(result.Succeeded, item.SKU)
			result.SuccessCount++
			continue
		}
		reason := item.Error
		if reason == "" {
			reason = "update rejected"
		}
		result.Failed = append(result.Failed, commerce.BulkFailure{
			Index:  i,
			Input:  item.SKU,
			Reason: reason,
		})
		result.FailedCount++
	}
	return result, nil
}

// LowStock pages through SKUs whose available quantity is at or below
// threshold.
func (s *InventoryService) LowStock(ctx context.Context, threshold int, opts commerce.ListOptions) (*commerce.Page[InventoryLevel], error) {
	opts = opts.Normalize()

	q := url.Values{}
	q.Set("threshold", strconv.Itoa(threshold))
	q.Set("page", strconv.Itoa(opts.Page))
	q.Set("per_page", strconv.Itoa(opts.PageSize))

	var out envelope[[]rawInventoryLevel]
	if err := s.c.http.Get(ctx, "/inventory/low-stock", q, &out); err != nil {
		return nil, apiError("inventory.low_stock", err)
	}

	levels := make([]InventoryLevel, 0, len(out.Data))
	for _, raw := range out.Data {
		levels = append(levels, mapInventoryLevel(raw))
	}

	total := int64(len(levels))
	if out.Meta != nil {
		total = out.Meta.Total
	}
	return commerce.NewPage(levels, total, opts.Page, opts.PageSize), nil
}

func mapInventoryLevel(raw rawInventoryLevel) InventoryLevel {
	return InventoryLevel{
		SKU:       raw.SKU,
		Available: int(raw.Available),
		Reserved:  int(raw.Reserved),
		Incoming:  int(raw.Incoming),
		Warehouse: raw.Warehouse,
		UpdatedAt: raw.UpdatedAt,
	}
}

func mapReservation(raw rawReservation) Reservation {
	r := Reservation{
		ID:        raw.ID,
		OrderRef:  raw.OrderRef,
		Status:    raw.Status,
		ExpiresAt: raw.ExpiresAt,
		CreatedAt: raw.CreatedAt,
	}
	r.Items = make([]ReservationItem, 0, len(raw.Items))
	for _, item := range raw.Items {
		r.Items = append(r.Items, ReservationItem{SKU: item.SKU, Quantity: int(item.Quantity)})
	}
	return r
}
