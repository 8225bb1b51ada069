package platform

import (
	"context"
)

// CurrentCart fetches the visitor's active cart.  A 404 is returned verbatim
// so callers can translate "no cart yet" into a successful empty result.
func (c *Client) CurrentCart(ctx context.Context) (*Cart, error) {
	var env struct {
		Cart wireCart `json:"cart"`
	}
	if err := c.get(ctx, "/ecom/v1/carts/current", nil, &env); err != nil {
		return nil, err
	}
	cart := env.Cart.flatten()
	return &cart, nil
}

// AddToCart adds a product (with optional variant options) to the current
// cart and returns the updated cart.
func (c *Client) AddToCart(ctx context.Context, productID string, quantity int, options map[string]any) (*Cart, error) {
	body := map[string]any{
		"lineItems": []map[string]any{{
			"catalogItemId": productID,
			"quantity":      quantity,
			"options":       options,
		}},
	}

	var env struct {
		Cart wireCart `json:"cart"`
	}
	if err := c.post(ctx, "/ecom/v1/carts/current/add-to-cart", body, &env); err != nil {
		return nil, err
	}
	cart := env.Cart.flatten()
	return &cart, nil
}

// EstimateCartTotals asks the platform to price the current cart.  As with
// CurrentCart, a 404 means there is no cart yet.
func (c *Client) EstimateCartTotals(ctx context.Context) (*CartTotals, error) {
	var env struct {
		PriceSummary struct {
			Subtotal wireMoney `json:"subtotal"`
			Shipping wireMoney `json:"shipping"`
			Tax      wireMoney `json:"tax"`
			Total    wireMoney `json:"total"`
		} `json:"priceSummary"`
		Currency string `json:"currency"`
	}
	if err := c.post(ctx, "/ecom/v1/carts/current/estimate-totals", map[string]any{}, &env); err != nil {
		return nil, err
	}
	return &CartTotals{
		Subtotal: env.PriceSummary.Subtotal.display(),
		Shipping: env.PriceSummary.Shipping.display(),
		Tax:      env.PriceSummary.Tax.display(),
		Total:    env.PriceSummary.Total.display(),
		Currency: env.Currency,
	}, nil
}
