package domain

import "time"

type ItemIdentifier string

// Item is a catalog entry of the bag store. Inventory and pricing are owned
// by the backend, the portal treats both as display values.
type Item struct {
	Id          ItemIdentifier `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Brand       string         `json:"brand"`
	Price       Money          `json:"price"`
	Stock       int            `json:"stock"`
	ImageUrl    string         `json:"imageUrl"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// InStock returns true if at least one unit is available.
func (i *Item) InStock() bool {
	return i.Stock > 0
}

// Money is an amount in the smallest currency unit (cents).
type Money int64

// ItemFilter narrows down catalog listings. Zero values are ignored.
type ItemFilter struct {
	Search   string
	Category string
	Page     int
	PageSize int
}
