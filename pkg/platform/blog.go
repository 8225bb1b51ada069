package platform

import (
	"context"
	"fmt"
	"net/url"
)

// ListPosts returns the most recent blog posts.
func (c *Client) ListPosts(ctx context.Context, limit int) ([]Post, error) {
	var env struct {
		Posts []wirePost `json:"posts"`
	}
	if err := c.get(ctx, "/blog/v3/posts", limitQuery(limit), &env); err != nil {
		return nil, fmt.Errorf("post list failed: %w", err)
	}

	out := make([]Post, 0, len(env.Posts))
	for _, p := range env.Posts {
		out = append(out, p.flatten())
	}
	return out, nil
}

// GetPost fetches a single post by id.  Not-found stays an error here; blog
// posts, unlike carts, are expected to exist when asked for by id.
func (c *Client) GetPost(ctx context.Context, id string) (*Post, error) {
	var env struct {
		Post wirePost `json:"post"`
	}
	if err := c.get(ctx, "/blog/v3/posts/"+url.PathEscape(id), nil, &env); err != nil {
		return nil, err
	}
	p := env.Post.flatten()
	return &p, nil
}
