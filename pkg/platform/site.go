package platform

import (
	"context"
	"fmt"
)

// SiteStructure fetches the site's navigational structure: its pages, each
// optionally tagged with the id of the sub-application that owns it, plus the
// set of routable URL prefixes.  Capability detection is derived entirely
// from this one call.
func (c *Client) SiteStructure(ctx context.Context) (*SiteStructure, error) {
	var env struct {
		Site struct {
			Pages []struct {
				ID            string `json:"id"`
				Title         string `json:"title"`
				URL           string `json:"url"`
				ApplicationID string `json:"applicationId"`
			} `json:"pages"`
			URLPrefixes []string `json:"urlPrefixes"`
		} `json:"site"`
	}
	if err := c.get(ctx, "/site/v1/structure", nil, &env); err != nil {
		return nil, fmt.Errorf("site structure fetch failed: %w", err)
	}

	out := &SiteStructure{
		Pages:    make([]SitePage, 0, len(env.Site.Pages)),
		Prefixes: env.Site.URLPrefixes,
	}
	for _, p := range env.Site.Pages {
		out.Pages = append(out.Pages, SitePage{
			ID:    p.ID,
			Title: p.Title,
			URL:   p.URL,
			AppID: p.ApplicationID,
		})
	}
	return out, nil
}
