package model

import (
	"time"

	"github.com/baglio/shop-portal/internal/domain"
)

// OrderItem is a single order line.
type OrderItem struct {
	ItemId   string `json:"ItemId"`
	Name     string `json:"Name"`
	Price    int64  `json:"Price"`
	Quantity int    `json:"Quantity"`
}

// Order is a placed order.
type Order struct {
	Id       string          `json:"Id"`
	UserId   string          `json:"UserId"`
	Items    []OrderItem     `json:"Items"`
	Total    int64           `json:"Total"`
	Status   string          `json:"Status"`
	Address  ShippingAddress `json:"Address"`
	PlacedAt string          `json:"PlacedAt"`
}

// ShippingAddress is the delivery address of an order.
type ShippingAddress struct {
	Name    string `json:"Name" validate:"required"`
	Street  string `json:"Street" validate:"required"`
	City    string `json:"City" validate:"required"`
	Zip     string `json:"Zip" validate:"required"`
	Country string `json:"Country" validate:"required,iso3166_1_alpha2"`
	Phone   string `json:"Phone" validate:"omitempty,e164"`
}

// CheckoutRequest places an order from the current cart.
type CheckoutRequest struct {
	Address ShippingAddress `json:"Address" validate:"required"`
	// PaymentRef is the reference returned by the payment widget; the
	// backend settles the payment with it.
	PaymentRef string `json:"PaymentRef" validate:"required"`
}

// UpdateOrderStatusRequest moves an order through the fulfilment pipeline.
type UpdateOrderStatusRequest struct {
	Status string `json:"Status" validate:"required,oneof=pending paid shipped delivered cancelled"`
}

func NewOrder(src domain.Order) Order {
	items := make([]OrderItem, len(src.Items))
	for i, item := range src.Items {
		items[i] = OrderItem{
			ItemId:   string(item.ItemId),
			Name:     item.Name,
			Price:    int64(item.Price),
			Quantity: item.Quantity,
		}
	}

	return Order{
		Id:     string(src.Id),
		UserId: string(src.UserId),
		Items:  items,
		Total:  int64(src.Total),
		Status: string(src.Status),
		Address: ShippingAddress{
			Name:    src.Address.Name,
			Street:  src.Address.Street,
			City:    src.Address.City,
			Zip:     src.Address.Zip,
			Country: src.Address.Country,
			Phone:   src.Address.Phone,
		},
		PlacedAt: src.PlacedAt.Format(time.RFC3339),
	}
}

func NewOrders(src []domain.Order) []Order {
	orders := make([]Order, len(src))
	for i := range src {
		orders[i] = NewOrder(src[i])
	}
	return orders
}

// NewDomainCheckout converts a checkout request to the domain model.
func NewDomainCheckout(req CheckoutRequest) domain.CheckoutRequest {
	return domain.CheckoutRequest{
		Address: domain.ShippingAddress{
			Name:    req.Address.Name,
			Street:  req.Address.Street,
			City:    req.Address.City,
			Zip:     req.Address.Zip,
			Country: req.Address.Country,
			Phone:   req.Address.Phone,
		},
		PaymentRef: req.PaymentRef,
	}
}
