package backend

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/baglio/shop-portal/internal/domain"
)

// ItemPage is one page of catalog results.
type ItemPage struct {
	Items      []domain.Item `json:"items"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
}

// ListItems returns a filtered catalog page.
func (c *Client) ListItems(ctx context.Context, filter domain.ItemFilter) (*ItemPage, error) {
	query := url.Values{}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.PageSize > 0 {
		query.Set("pageSize", strconv.Itoa(filter.PageSize))
	}

	var page ItemPage
	if err := c.Get(ctx, joinQuery("/api/items", query), &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// GetItem returns a single catalog entry.
func (c *Client) GetItem(ctx context.Context, id domain.ItemIdentifier) (*domain.Item, error) {
	var item domain.Item
	if err := c.Get(ctx, "/api/items/"+url.PathEscape(string(id)), &item); err != nil {
		return nil, err
	}

	return &item, nil
}

// CreateItem adds a new catalog entry. Admin only, enforced backend-side.
func (c *Client) CreateItem(ctx context.Context, item domain.Item) (*domain.Item, error) {
	var created domain.Item
	if err := c.Post(ctx, "/api/items", item, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

// UpdateItem replaces an existing catalog entry.
func (c *Client) UpdateItem(ctx context.Context, item domain.Item) (*domain.Item, error) {
	var updated domain.Item
	if err := c.Put(ctx, "/api/items/"+url.PathEscape(string(item.Id)), item, &updated); err != nil {
		return nil, err
	}

	return &updated, nil
}

// DeleteItem removes a catalog entry.
func (c *Client) DeleteItem(ctx context.Context, id domain.ItemIdentifier) error {
	return c.Delete(ctx, "/api/items/"+url.PathEscape(string(id)))
}

// UploadItemImage replaces the product image of a catalog entry. The image
// goes out as a multipart form, the token protocol applies like for any
// other mutating request.
func (c *Client) UploadItemImage(
	ctx context.Context,
	id domain.ItemIdentifier,
	filename string,
	data []byte,
) (*domain.Item, error) {
	buf := bytes.NewBuffer(nil)
	form := multipart.NewWriter(buf)

	part, err := form.CreateFormFile("image", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}

	var updated domain.Item
	path := "/api/items/" + url.PathEscape(string(id)) + "/image"
	if err := c.doRaw(ctx, http.MethodPost, path, form.FormDataContentType(), buf.Bytes(), &updated); err != nil {
		return nil, err
	}

	return &updated, nil
}
