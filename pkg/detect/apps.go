package detect

// Installed-app detection.  The platform does not expose a direct "which
// apps are installed" endpoint to visitors, so we infer it from the site's
// navigational structure: pages tagged with an owning application id, plus
// the routable URL prefixes.

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/webfront-labs/storegate/pkg/gate"
	"github.com/webfront-labs/storegate/pkg/platform"
)

// Apps describes which platform sub-applications are installed on the site.
// Computed once per bootstrap; read-only afterwards.
type Apps struct {
	HasStores  bool
	HasBlog    bool
	HasMembers bool
}

// Application ids the platform assigns to its first-party apps.
var (
	storesAppIDs  = []string{"stores-app", "ecom-platform", "online-store"}
	blogAppIDs    = []string{"blog-app", "site-blog"}
	membersAppIDs = []string{"members-app", "members-area"}
)

// Domain keywords matched case-insensitively against URL prefixes, for sites
// that renamed their pages but kept recognizable routes.
var (
	storesKeywords  = []string{"product", "shop", "store", "cart"}
	blogKeywords    = []string{"blog", "post"}
	membersKeywords = []string{"account", "member", "profile"}
)

// Detector resolves installed apps for a site.  It needs the credential gate
// because the structure query is an authenticated remote call.
type Detector struct {
	Gate   *gate.Gate
	Client *platform.Client
}

// DetectApps awaits the credential gate, fetches the site structure and
// derives the capability flags.  Every failure degrades gracefully: the zero
// Apps value is returned and only ungated tools end up registered.
func (d *Detector) DetectApps(ctx context.Context) Apps {
	if err := d.Gate.AwaitReady(ctx); err != nil {
		log.Warn("app detection skipped, credential gate not ready", "err", err)
		return Apps{}
	}

	structure, err := d.Client.SiteStructure(ctx)
	if err != nil {
		log.Warn("app detection degraded, structure query failed", "err", err)
		return Apps{}
	}

	apps := ClassifyStructure(structure)
	log.Info("installed apps detected",
		"stores", apps.HasStores, "blog", apps.HasBlog, "members", apps.HasMembers)
	return apps
}

// ClassifyStructure derives the Apps flags from a structure response.  Pure;
// split out from DetectApps so the matching rules are testable without a
// gate or a client.
func ClassifyStructure(structure *platform.SiteStructure) Apps {
	ids := make(map[string]bool, len(structure.Pages))
	for _, p := range structure.Pages {
		if p.AppID != "" {
			ids[p.AppID] = true
		}
	}

	return Apps{
		HasStores:  matchAny(ids, storesAppIDs) || prefixMatch(structure.Prefixes, storesKeywords),
		HasBlog:    matchAny(ids, blogAppIDs) || prefixMatch(structure.Prefixes, blogKeywords),
		HasMembers: matchAny(ids, membersAppIDs) || prefixMatch(structure.Prefixes, membersKeywords),
	}
}

func matchAny(ids map[string]bool, known []string) bool {
	for _, id := range known {
		if ids[id] {
			return true
		}
	}
	return false
}

func prefixMatch(prefixes, keywords []string) bool {
	for _, prefix := range prefixes {
		lower := strings.ToLower(prefix)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}
