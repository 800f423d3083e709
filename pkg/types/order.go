package types

import "time"

// OrderStatus is the fulfilment workflow state of an order.
type OrderStatus string

// Order statuses.
const (
	OrderPending          OrderStatus = "pending"
	OrderPaymentConfirmed OrderStatus = "payment_confirmed"
	OrderPreparing        OrderStatus = "preparing"
	OrderShipped          OrderStatus = "shipped"
	OrderDelivered        OrderStatus = "delivered"
	OrderCancelled        OrderStatus = "cancelled"
	OrderRefunded         OrderStatus = "refunded"
)

// OrderStatuses lists every order status in workflow order.
var OrderStatuses = []OrderStatus{
	OrderPending,
	OrderPaymentConfirmed,
	OrderPreparing,
	OrderShipped,
	OrderDelivered,
	OrderCancelled,
	OrderRefunded,
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Label returns the Turkish display label of the status.
func (s OrderStatus) Label() string {
	switch s {
	case OrderPending:
		return "Beklemede"
	case OrderPaymentConfirmed:
		return "Ödeme Onaylandı"
	case OrderPreparing:
		return "Hazırlanıyor"
	case OrderShipped:
		return "Kargoda"
	case OrderDelivered:
		return "Teslim Edildi"
	case OrderCancelled:
		return "İptal Edildi"
	case OrderRefunded:
		return "İade Edildi"
	default:
		return string(s)
	}
}

// PaymentStatus is the payment state of an order.
type PaymentStatus string

// Payment statuses.
const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// Address is a postal address stored as JSON on orders and customers.
type Address struct {
	FullName   string `json:"fullName"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	District   string `json:"district"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	ID           string  `json:"id"`
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	ProductImage string  `json:"productImage"`
	Quantity     int64   `json:"quantity"`
	UnitPrice    float64 `json:"unitPrice"`
	TotalPrice   float64 `json:"totalPrice"`
	Variant      string  `json:"variant,omitempty"`
}

// OrderHistory records one workflow action taken on an order.
type OrderHistory struct {
	ID        string      `json:"id"`
	Action    string      `json:"action"`
	Status    OrderStatus `json:"status"`
	Note      string      `json:"note,omitempty"`
	CreatedBy string      `json:"createdBy"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Order is a customer purchase.
type Order struct {
	ID              string         `json:"id"`
	OrderNumber     string         `json:"orderNumber"`
	CustomerID      string         `json:"customerId"`
	CustomerName    string         `json:"customerName"`
	CustomerEmail   string         `json:"customerEmail"`
	CustomerPhone   string         `json:"customerPhone"`
	ShippingAddress Address        `json:"shippingAddress"`
	BillingAddress  Address        `json:"billingAddress"`
	Items           []OrderItem    `json:"items"`
	Subtotal        float64        `json:"subtotal"`
	VATAmount       float64        `json:"vatAmount"`
	ShippingCost    float64        `json:"shippingCost"`
	Total           float64        `json:"total"`
	Status          OrderStatus    `json:"status"`
	PaymentStatus   PaymentStatus  `json:"paymentStatus"`
	PaymentMethod   string         `json:"paymentMethod"`
	PaymentDate     *time.Time     `json:"paymentDate,omitempty"`
	OrderDate       time.Time      `json:"orderDate"`
	ShippingCompany string         `json:"shippingCompany,omitempty"`
	TrackingNumber  string         `json:"trackingNumber,omitempty"`
	TrackingURL     string         `json:"trackingUrl,omitempty"`
	Notes           string         `json:"notes,omitempty"`
	History         []OrderHistory `json:"history"`
}

// ShippingInfo is the shipping metadata written by UpdateShipping.
type ShippingInfo struct {
	Company        string `json:"company"`
	TrackingNumber string `json:"trackingNumber"`
	TrackingURL    string `json:"trackingUrl,omitempty"`
}

// Validate checks that the carrier and tracking number are present.
func (s ShippingInfo) Validate() error {
	if s.Company == "" || s.TrackingNumber == "" {
		return ErrInvalidData
	}
	return nil
}
