package model

import (
	"time"

	"github.com/baglio/shop-portal/internal/domain"
)

// Item is the catalog entry model.
type Item struct {
	Id          string `json:"Id"`
	Name        string `json:"Name"`
	Description string `json:"Description"`
	Category    string `json:"Category"`
	Brand       string `json:"Brand"`
	// Price is given in cents.
	Price     int64  `json:"Price"`
	Stock     int    `json:"Stock"`
	InStock   bool   `json:"InStock"`
	ImageUrl  string `json:"ImageUrl"`
	CreatedAt string `json:"CreatedAt"`
}

// ItemRequest is the admin payload for creating or updating a catalog entry.
type ItemRequest struct {
	Name        string `json:"Name" validate:"required"`
	Description string `json:"Description"`
	Category    string `json:"Category" validate:"required"`
	Brand       string `json:"Brand"`
	Price       int64  `json:"Price" validate:"required,gt=0"`
	Stock       int    `json:"Stock" validate:"gte=0"`
	ImageUrl    string `json:"ImageUrl" validate:"omitempty,url"`
}

// ItemPage is one page of catalog results.
type ItemPage struct {
	Items      []Item `json:"Items"`
	Total      int    `json:"Total"`
	Page       int    `json:"Page"`
	TotalPages int    `json:"TotalPages"`
}

func NewItem(src domain.Item) Item {
	return Item{
		Id:          string(src.Id),
		Name:        src.Name,
		Description: src.Description,
		Category:    src.Category,
		Brand:       src.Brand,
		Price:       int64(src.Price),
		Stock:       src.Stock,
		InStock:     src.InStock(),
		ImageUrl:    src.ImageUrl,
		CreatedAt:   src.CreatedAt.Format(time.RFC3339),
	}
}

func NewItems(src []domain.Item) []Item {
	items := make([]Item, len(src))
	for i := range src {
		items[i] = NewItem(src[i])
	}
	return items
}

// NewDomainItem converts an admin request back to the domain model.
func NewDomainItem(id domain.ItemIdentifier, req ItemRequest) domain.Item {
	return domain.Item{
		Id:          id,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Brand:       req.Brand,
		Price:       domain.Money(req.Price),
		Stock:       req.Stock,
		ImageUrl:    req.ImageUrl,
	}
}
