package toolset

import (
	"context"

	"github.com/cohesivestack/valgo"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/webfront-labs/storegate/pkg/platform"
)

func productEntries(deps *Deps) []Entry {
	return []Entry{
		{
			Tool: mcp.NewTool(
				"search_products",
				mcp.WithDescription("Searches the store catalog by free text and returns matching products with price and stock status."),
				mcp.WithString("query",
					mcp.Description("Free-text search query"),
					mcp.Required(),
				),
				mcp.WithNumber("limit",
					mcp.Description("Maximum number of results (default 10)"),
				),
			),
			Handler:  handleSearchProducts(deps),
			Requires: Stores,
		},
		{
			Tool: mcp.NewTool(
				"get_product",
				mcp.WithDescription("Fetches one product by its catalog id."),
				mcp.WithString("productId",
					mcp.Description("Catalog id of the product"),
					mcp.Required(),
				),
			),
			Handler:  handleGetProduct(deps),
			Requires: Stores,
		},
		{
			Tool: mcp.NewTool(
				"list_products",
				mcp.WithDescription("Lists catalog products with paging."),
				mcp.WithNumber("limit",
					mcp.Description("Maximum number of results (default 10)"),
				),
				mcp.WithNumber("offset",
					mcp.Description("Number of products to skip"),
				),
			),
			Handler:  handleListProducts(deps),
			Requires: Stores,
		},
	}
}

func handleSearchProducts(deps *Deps) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()
		query := stringArg(args, "query")
		if v := valgo.Is(valgo.String(query, "query").Not().Blank()); !v.Valid() {
			return failErr(v.Error()), nil
		}

		limit, err := intArg(args, "limit", 10)
		if err != nil {
			return failErr(err), nil
		}
		if err := deps.Gate.AwaitReady(ctx); err != nil {
			return failErr(err), nil
		}
		products, err := deps.Client().SearchProducts(ctx, query, limit)
		if err != nil {
			return failErr(err), nil
		}
		return success(map[string]any{"products": products, "count": len(products)}), nil
	}
}

func handleGetProduct(deps *Deps) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := stringArg(req.GetArguments(), "productId")
		if v := valgo.Is(valgo.String(id, "productId").Not().Blank()); !v.Valid() {
			return failErr(v.Error()), nil
		}

		if err := deps.Gate.AwaitReady(ctx); err != nil {
			return failErr(err), nil
		}
		// Unlike the cart, a product looked up by id is expected to exist, so
		// a 404 stays an error result.
		product, err := deps.Client().GetProduct(ctx, id)
		if err != nil {
			if platform.IsNotFound(err) {
				return failure("product not found: " + id), nil
			}
			return failErr(err), nil
		}
		return success(map[string]any{"product": product}), nil
	}
}

func handleListProducts(deps *Deps) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()

		limit, err := intArg(args, "limit", 10)
		if err != nil {
			return failErr(err), nil
		}
		offset, err := intArg(args, "offset", 0)
		if err != nil {
			return failErr(err), nil
		}
		if err := deps.Gate.AwaitReady(ctx); err != nil {
			return failErr(err), nil
		}
		products, err := deps.Client().ListProducts(ctx, limit, offset)
		if err != nil {
			return failErr(err), nil
		}
		return success(map[string]any{"products": products, "count": len(products)}), nil
	}
}
