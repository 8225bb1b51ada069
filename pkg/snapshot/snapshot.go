package snapshot

// A PageSnapshot is the bounded, read-only view of the page the visitor is
// currently on.  The host posts raw HTML to the bridge (or lets us capture it
// headlessly) and we extract just enough signal for classification and the
// page inspector tool.

import (
	"strings"

	"golang.org/x/net/html"
)

const (
	maxTextLen     = 4 * 1024
	maxHeadings    = 10
	maxDescription = 300
)

type PageSnapshot struct {
	URL             string   `json:"url"`
	Title           string   `json:"title"`
	MetaDescription string   `json:"metaDescription,omitempty"`
	Headings        []string `json:"headings,omitempty"`
	Text            string   `json:"text,omitempty"`
}

// Parse extracts title, meta description, headings and visible text from raw
// HTML.  Best effort: malformed markup yields whatever the tolerant parser
// recovers, never an error for partial documents.
func Parse(pageURL, rawHTML string) (*PageSnapshot, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, err
	}

	snap := &PageSnapshot{URL: pageURL}
	var textParts []string
	var walk func(n *html.Node, skip bool)
	walk = func(n *html.Node, skip bool) {
		switch n.Type {
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "noscript", "template":
				skip = true
			case "title":
				if snap.Title == "" {
					snap.Title = strings.TrimSpace(textContent(n))
				}
				skip = true
			case "meta":
				if attr(n, "name") == "description" && snap.MetaDescription == "" {
					snap.MetaDescription = truncate(attr(n, "content"), maxDescription)
				}
			case "h1", "h2", "h3":
				if len(snap.Headings) < maxHeadings {
					if h := strings.TrimSpace(textContent(n)); h != "" {
						snap.Headings = append(snap.Headings, h)
					}
				}
			}
		case html.TextNode:
			if !skip {
				if s := strings.TrimSpace(n.Data); s != "" {
					textParts = append(textParts, s)
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child, skip)
		}
	}
	walk(doc, false)

	snap.Text = truncate(strings.Join(textParts, " "), maxTextLen)
	return snap, nil
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max]
}
