package toolset

import (
	"context"

	"github.com/cohesivestack/valgo"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/webfront-labs/storegate/pkg/platform"
)

func blogEntries(deps *Deps) []Entry {
	return []Entry{
		{
			Tool: mcp.NewTool(
				"list_blog_posts",
				mcp.WithDescription("Lists the site's most recent blog posts."),
				mcp.WithNumber("limit",
					mcp.Description("Maximum number of posts (default 10)"),
				),
			),
			Handler:  handleListPosts(deps),
			Requires: Blog,
		},
		{
			Tool: mcp.NewTool(
				"get_blog_post",
				mcp.WithDescription("Fetches one blog post by id, including its content."),
				mcp.WithString("postId",
					mcp.Description("Id of the post"),
					mcp.Required(),
				),
			),
			Handler:  handleGetPost(deps),
			Requires: Blog,
		},
	}
}

func handleListPosts(deps *Deps) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit, err := intArg(req.GetArguments(), "limit", 10)
		if err != nil {
			return failErr(err), nil
		}
		if err := deps.Gate.AwaitReady(ctx); err != nil {
			return failErr(err), nil
		}
		posts, err := deps.Client().ListPosts(ctx, limit)
		if err != nil {
			return failErr(err), nil
		}
		return success(map[string]any{"posts": posts, "count": len(posts)}), nil
	}
}

func handleGetPost(deps *Deps) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := stringArg(req.GetArguments(), "postId")
		if v := valgo.Is(valgo.String(id, "postId").Not().Blank()); !v.Valid() {
			return failErr(v.Error()), nil
		}

		if err := deps.Gate.AwaitReady(ctx); err != nil {
			return failErr(err), nil
		}
		post, err := deps.Client().GetPost(ctx, id)
		if err != nil {
			if platform.IsNotFound(err) {
				return failure("post not found: " + id), nil
			}
			return failErr(err), nil
		}
		return success(map[string]any{"post": post}), nil
	}
}
