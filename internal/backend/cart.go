package backend

import (
	"context"
	"net/url"

	"github.com/baglio/shop-portal/internal/domain"
)

// GetCart returns the cart of the current backend session.
func (c *Client) GetCart(ctx context.Context) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.Get(ctx, "/api/cart", &cart); err != nil {
		return nil, err
	}

	return &cart, nil
}

// AddToCart puts the given quantity of an item into the cart.
func (c *Client) AddToCart(ctx context.Context, id domain.ItemIdentifier, quantity int) (*domain.Cart, error) {
	payload := struct {
		ItemId   domain.ItemIdentifier `json:"itemId"`
		Quantity int                   `json:"quantity"`
	}{id, quantity}

	var cart domain.Cart
	if err := c.Post(ctx, "/api/cart", payload, &cart); err != nil {
		return nil, err
	}

	return &cart, nil
}

// UpdateCartItem sets the quantity of a cart line. Quantity 0 removes the line.
func (c *Client) UpdateCartItem(ctx context.Context, id domain.ItemIdentifier, quantity int) (*domain.Cart, error) {
	payload := struct {
		Quantity int `json:"quantity"`
	}{quantity}

	var cart domain.Cart
	if err := c.Put(ctx, "/api/cart/"+url.PathEscape(string(id)), payload, &cart); err != nil {
		return nil, err
	}

	return &cart, nil
}

// RemoveFromCart deletes a cart line.
func (c *Client) RemoveFromCart(ctx context.Context, id domain.ItemIdentifier) error {
	return c.Delete(ctx, "/api/cart/"+url.PathEscape(string(id)))
}

// ClearCart empties the cart.
func (c *Client) ClearCart(ctx context.Context) error {
	return c.Delete(ctx, "/api/cart")
}

// GetWishlist returns the wishlist of the current backend session.
func (c *Client) GetWishlist(ctx context.Context) (*domain.Wishlist, error) {
	var wishlist domain.Wishlist
	if err := c.Get(ctx, "/api/wishlist", &wishlist); err != nil {
		return nil, err
	}

	return &wishlist, nil
}

// AddToWishlist saves an item for later.
func (c *Client) AddToWishlist(ctx context.Context, id domain.ItemIdentifier) (*domain.Wishlist, error) {
	payload := struct {
		ItemId domain.ItemIdentifier `json:"itemId"`
	}{id}

	var wishlist domain.Wishlist
	if err := c.Post(ctx, "/api/wishlist", payload, &wishlist); err != nil {
		return nil, err
	}

	return &wishlist, nil
}

// RemoveFromWishlist drops an item from the wishlist.
func (c *Client) RemoveFromWishlist(ctx context.Context, id domain.ItemIdentifier) error {
	return c.Delete(ctx, "/api/wishlist/"+url.PathEscape(string(id)))
}
