package backend

import (
	"context"
	"net/url"
	"strconv"

	"github.com/baglio/shop-portal/internal/domain"
)

// PlaceOrder converts the current cart into an order. Payment orchestration
// is backend-side, the portal only forwards the payment reference.
func (c *Client) PlaceOrder(ctx context.Context, checkout domain.CheckoutRequest) (*domain.Order, error) {
	var order domain.Order
	if err := c.Post(ctx, "/api/orders", checkout, &order); err != nil {
		return nil, err
	}

	return &order, nil
}

// ListOrders returns the order history of the current session's user.
func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.Get(ctx, "/api/orders", &orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// GetOrder returns a single order.
func (c *Client) GetOrder(ctx context.Context, id domain.OrderIdentifier) (*domain.Order, error) {
	var order domain.Order
	if err := c.Get(ctx, "/api/orders/"+url.PathEscape(string(id)), &order); err != nil {
		return nil, err
	}

	return &order, nil
}

// CancelOrder cancels a pending order.
func (c *Client) CancelOrder(ctx context.Context, id domain.OrderIdentifier) error {
	return c.Post(ctx, "/api/orders/"+url.PathEscape(string(id))+"/cancel", nil, nil)
}

// ListAllOrders returns every order, admin only.
func (c *Client) ListAllOrders(ctx context.Context, page, pageSize int) ([]domain.Order, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		query.Set("pageSize", strconv.Itoa(pageSize))
	}

	var orders []domain.Order
	if err := c.Get(ctx, joinQuery("/api/admin/orders", query), &orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// UpdateOrderStatus moves an order through the fulfilment pipeline, admin only.
func (c *Client) UpdateOrderStatus(ctx context.Context, id domain.OrderIdentifier, status domain.OrderStatus) (*domain.Order, error) {
	payload := struct {
		Status domain.OrderStatus `json:"status"`
	}{status}

	var order domain.Order
	if err := c.Put(ctx, "/api/admin/orders/"+url.PathEscape(string(id))+"/status", payload, &order); err != nil {
		return nil, err
	}

	return &order, nil
}
