package detect

import (
	"net/url"
	"strings"

	"github.com/webfront-labs/storegate/pkg/snapshot"
)

// PageContext is the best-effort classification of the page the visitor is
// on.  Computed once per bootstrap from the snapshot; deliberately not
// refreshed on client-side navigation.
type PageContext struct {
	IsProductPage bool `json:"isProductPage"`
	IsCartPage    bool `json:"isCartPage"`
	IsBlogPage    bool `json:"isBlogPage"`
	IsMemberArea  bool `json:"isMemberArea"`
}

var (
	productPathMarkers = []string{"/product/", "/product-page/", "/products/"}
	cartPathMarkers    = []string{"/cart", "/checkout"}
	blogPathMarkers    = []string{"/blog", "/post/", "/posts/"}
	memberPathMarkers  = []string{"/account", "/members", "/profile"}
)

// ClassifyPage derives the context flags from URL path and title signals.
// Pure and synchronous: no network, no waiting, and absence of any signal
// simply leaves every flag false.
func ClassifyPage(snap *snapshot.PageSnapshot) PageContext {
	if snap == nil {
		return PageContext{}
	}

	path := ""
	if u, err := url.Parse(snap.URL); err == nil {
		path = strings.ToLower(u.Path)
	}
	title := strings.ToLower(snap.Title)

	return PageContext{
		IsProductPage: hasMarker(path, productPathMarkers),
		IsCartPage:    hasMarker(path, cartPathMarkers) || strings.Contains(title, "cart"),
		IsBlogPage:    hasMarker(path, blogPathMarkers),
		IsMemberArea:  hasMarker(path, memberPathMarkers),
	}
}

func hasMarker(path string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(path, m) {
			return true
		}
	}
	return false
}
