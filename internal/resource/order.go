package resource

import (
	"context"
	"time"

	"github.com/mesh-intelligence/backoffice/pkg/types"
)

var orderItemsJoin = types.Join{
	Collection: types.CollectionOrderItems,
	ForeignKey: "order_id",
	As:         "items",
}

// Orders manages customer orders and their fulfilment workflow.
type Orders struct{ env *env }

func mapOrderItem(r types.Record) types.OrderItem {
	return types.OrderItem{
		ID:           str(r, "id"),
		ProductID:    str(r, "product_id"),
		ProductName:  str(r, "product_name"),
		ProductImage: str(r, "product_image"),
		Quantity:     integer(r, "quantity"),
		UnitPrice:    number(r, "unit_price"),
		TotalPrice:   number(r, "total_price"),
		Variant:      str(r, "variant"),
	}
}

func mapOrder(r types.Record) types.Order {
	o := types.Order{
		ID:              str(r, "id"),
		OrderNumber:     str(r, "order_number"),
		CustomerID:      str(r, "customer_id"),
		CustomerName:    str(r, "customer_name"),
		CustomerEmail:   str(r, "customer_email"),
		CustomerPhone:   str(r, "customer_phone"),
		Items:           []types.OrderItem{},
		Subtotal:        number(r, "subtotal"),
		VATAmount:       number(r, "vat_amount"),
		ShippingCost:    number(r, "shipping_cost"),
		Total:           number(r, "total_amount"),
		Status:          types.OrderStatus(str(r, "status")),
		PaymentStatus:   types.PaymentStatus(str(r, "payment_status")),
		PaymentMethod:   str(r, "payment_method"),
		PaymentDate:     timestampPtr(r, "payment_date"),
		OrderDate:       timestamp(r, "order_date"),
		ShippingCompany: str(r, "shipping_company"),
		TrackingNumber:  str(r, "tracking_number"),
		TrackingURL:     str(r, "tracking_url"),
		Notes:           str(r, "notes"),
		History:         []types.OrderHistory{},
	}
	if !o.Status.Valid() {
		o.Status = types.OrderPending
	}
	if !o.PaymentStatus.Valid() {
		o.PaymentStatus = types.PaymentPending
	}
	decodeJSON(r, "shipping_address", &o.ShippingAddress)
	decodeJSON(r, "billing_address", &o.BillingAddress)
	decodeJSON(r, "history", &o.History)
	if o.History == nil {
		o.History = []types.OrderHistory{}
	}
	for _, item := range children(r, "items") {
		o.Items = append(o.Items, mapOrderItem(item))
	}
	return o
}

// GetAll returns every order, newest first. Items are not loaded.
func (s *Orders) GetAll(ctx context.Context) ([]types.Order, error) {
	return list(ctx, s.env, types.CollectionOrders, types.Query{
		Order: []types.OrderBy{{Field: "order_date", Desc: true}},
	}, mapOrder)
}

// GetByID returns the order with its items.
func (s *Orders) GetByID(ctx context.Context, id string) (types.Order, bool, error) {
	return find(ctx, s.env, types.CollectionOrders, id, mapOrder, orderItemsJoin)
}

func (s *Orders) current(ctx context.Context, id string) (types.Order, error) {
	o, ok, err := s.GetByID(ctx, id)
	if err != nil {
		return types.Order{}, writeError(types.CollectionOrders, types.OpUpdate, id, err)
	}
	if !ok {
		return types.Order{}, writeError(types.CollectionOrders, types.OpUpdate, id, types.ErrNotFound)
	}
	return o, nil
}

func (s *Orders) historyEntry(action string, status types.OrderStatus, note, actor string) types.OrderHistory {
	return types.OrderHistory{
		ID:        newID(),
		Action:    action,
		Status:    status,
		Note:      note,
		CreatedBy: actor,
		CreatedAt: s.env.now().UTC(),
	}
}

// UpdateStatus moves the order to status and appends a history entry
// attributed to actor. Moving to shipped requires a tracking number to be
// on file; use UpdateShipping to supply one.
func (s *Orders) UpdateStatus(ctx context.Context, id string, status types.OrderStatus, actor string) (types.Order, error) {
	if !status.Valid() {
		return types.Order{}, writeError(types.CollectionOrders, types.OpUpdate, id, types.ErrInvalidStatus)
	}
	o, err := s.current(ctx, id)
	if err != nil {
		return types.Order{}, err
	}
	if status == types.OrderShipped && o.TrackingNumber == "" {
		return types.Order{}, writeError(types.CollectionOrders, types.OpUpdate, id, types.ErrTrackingRequired)
	}
	history := append(o.History, s.historyEntry("status_changed", status, status.Label(), actor))
	rec := types.Record{"status": string(status), "history": history}
	if _, err := update(ctx, s.env, types.CollectionOrders, id, rec); err != nil {
		return types.Order{}, err
	}
	return s.current(ctx, id)
}

// UpdateShipping records the carrier and tracking number and marks the
// order shipped.
func (s *Orders) UpdateShipping(ctx context.Context, id string, info types.ShippingInfo, actor string) (types.Order, error) {
	if err := info.Validate(); err != nil {
		return types.Order{}, writeError(types.CollectionOrders, types.OpUpdate, id, err)
	}
	o, err := s.current(ctx, id)
	if err != nil {
		return types.Order{}, err
	}
	note := info.Company + " " + info.TrackingNumber
	history := append(o.History, s.historyEntry("shipped", types.OrderShipped, note, actor))
	if _, err := update(ctx, s.env, types.CollectionOrders, id, types.Record{
		"shipping_company": info.Company,
		"tracking_number":  info.TrackingNumber,
		"tracking_url":     info.TrackingURL,
		"status":           string(types.OrderShipped),
		"history":          history,
	}); err != nil {
		return types.Order{}, err
	}
	return s.current(ctx, id)
}

// OrderFilter narrows an order list by status and order date. Zero fields
// do not filter. To is inclusive through the end of its day.
type OrderFilter struct {
	Status types.OrderStatus
	From   time.Time
	To     time.Time
}

// Match reports whether o passes the filter.
func (f OrderFilter) Match(o types.Order) bool {
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	if !f.From.IsZero() && o.OrderDate.Before(f.From) {
		return false
	}
	if !f.To.IsZero() {
		end := time.Date(f.To.Year(), f.To.Month(), f.To.Day(), 23, 59, 59, 999999999, f.To.Location())
		if o.OrderDate.After(end) {
			return false
		}
	}
	return true
}
