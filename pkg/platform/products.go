package platform

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// SearchProducts runs a free-text product search.  A zero limit lets the
// platform apply its default page size.
func (c *Client) SearchProducts(ctx context.Context, query string, limit int) ([]Product, error) {
	q := limitQuery(limit)
	q.Set("query", query)

	var env struct {
		Products []wireProduct `json:"products"`
	}
	if err := c.get(ctx, "/stores/v1/products/search", q, &env); err != nil {
		return nil, fmt.Errorf("product search failed: %w", err)
	}
	return flattenProducts(env.Products), nil
}

// GetProduct fetches a single product by its catalog id.  A 404 surfaces as
// an *APIError; callers that want not-found-as-error keep it as is.
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	var env struct {
		Product wireProduct `json:"product"`
	}
	if err := c.get(ctx, "/stores/v1/products/"+url.PathEscape(id), nil, &env); err != nil {
		return nil, err
	}
	p := env.Product.flatten()
	return &p, nil
}

// ListProducts pages through the catalog.
func (c *Client) ListProducts(ctx context.Context, limit, offset int) ([]Product, error) {
	q := limitQuery(limit)
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}

	var env struct {
		Products []wireProduct `json:"products"`
	}
	if err := c.get(ctx, "/stores/v1/products", q, &env); err != nil {
		return nil, fmt.Errorf("product list failed: %w", err)
	}
	return flattenProducts(env.Products), nil
}

func flattenProducts(in []wireProduct) []Product {
	out := make([]Product, 0, len(in))
	for _, p := range in {
		out = append(out, p.flatten())
	}
	return out
}
