package domain

import "time"

type OrderIdentifier string

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderItem is a single line of a placed order, priced at order time.
type OrderItem struct {
	ItemId   ItemIdentifier `json:"itemId"`
	Name     string         `json:"name"`
	Price    Money          `json:"price"`
	Quantity int            `json:"quantity"`
}

// Order is a read-through copy of a backend order record.
type Order struct {
	Id        OrderIdentifier `json:"id"`
	UserId    UserIdentifier  `json:"userId"`
	Items     []OrderItem     `json:"items"`
	Total     Money           `json:"total"`
	Status    OrderStatus     `json:"status"`
	Address   ShippingAddress `json:"address"`
	PlacedAt  time.Time       `json:"placedAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ShippingAddress is the delivery address captured during checkout.
type ShippingAddress struct {
	Name    string `json:"name"`
	Street  string `json:"street"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
	Phone   string `json:"phone"`
}

// CheckoutRequest is the payload forwarded to the backend when an order is placed.
// Payment orchestration happens backend-side, the portal only relays the
// payment reference it received from the payment widget.
type CheckoutRequest struct {
	Address    ShippingAddress `json:"address"`
	PaymentRef string          `json:"paymentRef"`
}
