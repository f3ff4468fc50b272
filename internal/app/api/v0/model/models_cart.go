package model

import "github.com/baglio/shop-portal/internal/domain"

// CartItem is a single cart line.
type CartItem struct {
	ItemId   string `json:"ItemId"`
	Name     string `json:"Name"`
	Price    int64  `json:"Price"`
	Quantity int    `json:"Quantity"`
	ImageUrl string `json:"ImageUrl"`
}

// Cart is the shopper's cart.
type Cart struct {
	Items []CartItem `json:"Items"`
	Total int64      `json:"Total"`
	Count int        `json:"Count"`
}

// AddToCartRequest puts an item into the cart.
type AddToCartRequest struct {
	ItemId   string `json:"ItemId" validate:"required"`
	Quantity int    `json:"Quantity" validate:"required,gt=0"`
}

// UpdateCartRequest changes the quantity of a cart line.
type UpdateCartRequest struct {
	Quantity int `json:"Quantity" validate:"gte=0"`
}

// CountResponse carries a badge counter (cart units, wishlist entries).
type CountResponse struct {
	Count int `json:"Count"`
}

// Wishlist holds the saved items of a shopper.
type Wishlist struct {
	Items []Item `json:"Items"`
	Count int    `json:"Count"`
}

// AddToWishlistRequest saves an item for later.
type AddToWishlistRequest struct {
	ItemId string `json:"ItemId" validate:"required"`
}

func NewCart(src domain.Cart) Cart {
	items := make([]CartItem, len(src.Items))
	for i, item := range src.Items {
		items[i] = CartItem{
			ItemId:   string(item.ItemId),
			Name:     item.Name,
			Price:    int64(item.Price),
			Quantity: item.Quantity,
			ImageUrl: item.ImageUrl,
		}
	}

	return Cart{
		Items: items,
		Total: int64(src.Total),
		Count: src.Count(),
	}
}

func NewWishlist(src domain.Wishlist) Wishlist {
	return Wishlist{
		Items: NewItems(src.Items),
		Count: len(src.Items),
	}
}
