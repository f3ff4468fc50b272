package domain

// CartItem is a single line of the shopping cart.
type CartItem struct {
	ItemId   ItemIdentifier `json:"itemId"`
	Name     string         `json:"name"`
	Price    Money          `json:"price"`
	Quantity int            `json:"quantity"`
	ImageUrl string         `json:"imageUrl"`
}

// Cart is the session cart as reported by the backend.
type Cart struct {
	Items []CartItem `json:"items"`
	Total Money      `json:"total"`
}

// Count returns the number of units across all cart lines.
func (c *Cart) Count() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Wishlist holds the items a shopper saved for later.
type Wishlist struct {
	Items []Item `json:"items"`
}
