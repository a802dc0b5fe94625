package model

import "time"

// Checkout carries the purchase attached to an attributed event. Amounts are
// stored in minor currency units (cents); conversion to major units happens
// once, at presentation time.
type Checkout struct {
	OrderID              string `json:"orderId"`
	TotalAmountMinorUnits int64 `json:"totalAmount"`
	Currency             string `json:"currency"`
	ItemCount            int    `json:"itemCount"`
}

// AmountMajorUnits converts the checkout total to major units.
func (c *Checkout) AmountMajorUnits() float64 {
	return float64(c.TotalAmountMinorUnits) / 100
}

// OrderEvent is one affiliate-attributed transaction reported by the pixel.
// Events without a checkout (page views, abandoned sessions) are kept in the
// snapshot but never counted as orders.
type OrderEvent struct {
	EventID    string    `json:"event_id"`
	Timestamp  time.Time `json:"timestamp"`
	ShopDomain string    `json:"shopDomain"`
	Checkout   *Checkout `json:"checkout,omitempty"`
}

// StatsSnapshot is a complete, point-in-time view of affiliate stats for one
// shop. Each fetch replaces the previous snapshot wholesale; there is no
// incremental merge.
type StatsSnapshot struct {
	ShopName  string       `json:"shop_name"`
	FetchedAt time.Time    `json:"fetched_at"`
	Events    []OrderEvent `json:"events"`
}

// CheckoutEvents returns the events that count as orders, preserving order.
func (s *StatsSnapshot) CheckoutEvents() []OrderEvent {
	if s == nil {
		return nil
	}
	orders := make([]OrderEvent, 0, len(s.Events))
	for _, e := range s.Events {
		if e.Checkout != nil {
			orders = append(orders, e)
		}
	}
	return orders
}
