package toolset

// Baseline tools, registered regardless of which apps are installed.  The
// page inspector is pure (snapshot only, no gate); the structure query is
// remote and therefore still waits on the credential gate.

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

func siteEntries(deps *Deps) []Entry {
	return []Entry{
		{
			Tool: mcp.NewTool(
				"get_site_structure",
				mcp.WithDescription("Returns the site's pages and URL prefixes, including which platform app owns each page."),
			),
			Handler:  handleSiteStructure(deps),
			Requires: None,
		},
		{
			Tool: mcp.NewTool(
				"inspect_current_page",
				mcp.WithDescription("Returns the current page's URL, title, meta description, headings, visible text and its detected page type. Works without authentication."),
			),
			Handler:  handleInspectPage(deps),
			Requires: None,
		},
	}
}

func handleSiteStructure(deps *Deps) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := deps.Gate.AwaitReady(ctx); err != nil {
			return failErr(err), nil
		}
		structure, err := deps.Client().SiteStructure(ctx)
		if err != nil {
			return failErr(err), nil
		}
		return success(map[string]any{"site": structure}), nil
	}
}

func handleInspectPage(deps *Deps) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		payload := map[string]any{"context": deps.Page}
		if deps.Snap != nil {
			payload["page"] = deps.Snap
		}
		return success(payload), nil
	}
}
