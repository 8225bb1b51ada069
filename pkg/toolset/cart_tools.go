package toolset

import (
	"context"
	"encoding/json"

	"github.com/cohesivestack/valgo"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/webfront-labs/storegate/pkg/platform"
)

func cartEntries(deps *Deps) []Entry {
	return []Entry{
		{
			Tool: mcp.NewTool(
				"get_current_cart",
				mcp.WithDescription("Returns the visitor's current cart. An empty cart is a normal result, not an error."),
			),
			Handler:  handleCurrentCart(deps),
			Requires: Stores,
		},
		{
			Tool: mcp.NewTool(
				"add_to_cart",
				mcp.WithDescription("Adds a product to the current cart and returns the updated cart."),
				mcp.WithString("productId",
					mcp.Description("Catalog id of the product to add"),
					mcp.Required(),
				),
				mcp.WithNumber("quantity",
					mcp.Description("How many to add (default 1)"),
				),
				mcp.WithString("options",
					mcp.Description("Variant options as a JSON object, e.g. {\"Size\":\"M\"}"),
				),
			),
			Handler:  handleAddToCart(deps),
			Requires: Stores,
		},
		{
			Tool: mcp.NewTool(
				"estimate_cart_totals",
				mcp.WithDescription("Estimates subtotal, shipping, tax and total for the current cart."),
			),
			Handler:  handleEstimateTotals(deps),
			Requires: Stores,
		},
	}
}

// emptyCart is what a "no cart yet" 404 flattens to.
func emptyCart() *platform.Cart {
	return &platform.Cart{Items: []platform.CartItem{}}
}

func handleCurrentCart(deps *Deps) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := deps.Gate.AwaitReady(ctx); err != nil {
			return failErr(err), nil
		}
		cart, err := deps.Client().CurrentCart(ctx)
		if err != nil {
			// A visitor who never added anything has no cart at all; that is
			// a successful empty result, not a failure.
			if platform.IsNotFound(err) {
				return success(map[string]any{"cart": emptyCart()}), nil
			}
			return failErr(err), nil
		}
		return success(map[string]any{"cart": cart}), nil
	}
}

func handleAddToCart(deps *Deps) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()
		id := stringArg(args, "productId")
		quantity, err := intArg(args, "quantity", 1)
		if err != nil {
			return failErr(err), nil
		}

		v := valgo.Is(
			valgo.String(id, "productId").Not().Blank(),
			valgo.Number(quantity, "quantity").GreaterThan(0),
		)
		if !v.Valid() {
			return failErr(v.Error()), nil
		}

		var options map[string]any
		if raw := stringArg(args, "options"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &options); err != nil {
				return failure("options must be a JSON object: " + err.Error()), nil
			}
		}

		if err := deps.Gate.AwaitReady(ctx); err != nil {
			return failErr(err), nil
		}
		cart, err := deps.Client().AddToCart(ctx, id, quantity, options)
		if err != nil {
			return failErr(err), nil
		}
		return success(map[string]any{"cart": cart}), nil
	}
}

func handleEstimateTotals(deps *Deps) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := deps.Gate.AwaitReady(ctx); err != nil {
			return failErr(err), nil
		}
		totals, err := deps.Client().EstimateCartTotals(ctx)
		if err != nil {
			if platform.IsNotFound(err) {
				return success(map[string]any{"totals": platform.CartTotals{}}), nil
			}
			return failErr(err), nil
		}
		return success(map[string]any{"totals": totals}), nil
	}
}
