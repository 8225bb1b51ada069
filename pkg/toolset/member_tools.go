package toolset

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/webfront-labs/storegate/pkg/platform"
)

func memberEntries(deps *Deps) []Entry {
	return []Entry{
		{
			Tool: mcp.NewTool(
				"get_member_info",
				mcp.WithDescription("Returns the logged-in member's profile, or an error when nobody is logged in."),
			),
			Handler:  handleMemberInfo(deps),
			Requires: Members,
		},
	}
}

func handleMemberInfo(deps *Deps) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := deps.Gate.AwaitReady(ctx); err != nil {
			return failErr(err), nil
		}
		member, err := deps.Client().MemberInfo(ctx)
		if err != nil {
			if platform.IsAuthError(err) {
				return failure("no member is logged in"), nil
			}
			return failErr(err), nil
		}
		return success(map[string]any{"member": member}), nil
	}
}
