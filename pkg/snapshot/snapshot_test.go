package snapshot

import (
	"strings"
	"testing"
)

const samplePage = `<html>
<head>
  <title>Widget Shop</title>
  <meta name="description" content="The best widgets in town">
</head>
<body>
  <script>var tracked = true;</script>
  <h1>Featured Widgets</h1>
  <h2>On Sale</h2>
  <p>Hand crafted widgets shipped worldwide.</p>
</body>
</html>`

func TestParseExtractsSignals(t *testing.T) {
	snap, err := Parse("https://example.com/shop", samplePage)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if snap.Title != "Widget Shop" {
		t.Fatalf("title = %q", snap.Title)
	}
	if snap.MetaDescription != "The best widgets in town" {
		t.Fatalf("meta = %q", snap.MetaDescription)
	}
	if len(snap.Headings) != 2 || snap.Headings[0] != "Featured Widgets" {
		t.Fatalf("headings = %v", snap.Headings)
	}
	if !strings.Contains(snap.Text, "Hand crafted widgets") {
		t.Fatalf("text missing body copy: %q", snap.Text)
	}
	if strings.Contains(snap.Text, "tracked") {
		t.Fatalf("script content leaked into text: %q", snap.Text)
	}
	if strings.Contains(snap.Text, "Widget Shop") {
		t.Fatalf("title leaked into body text: %q", snap.Text)
	}
}

func TestParseBoundsOutput(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 20; i++ {
		b.WriteString("<h2>Heading</h2>")
	}
	b.WriteString("<p>")
	b.WriteString(strings.Repeat("x", 10*1024))
	b.WriteString("</p></body></html>")

	snap, err := Parse("https://example.com", b.String())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(snap.Headings) != maxHeadings {
		t.Fatalf("headings not bounded: %d", len(snap.Headings))
	}
	if len(snap.Text) > maxTextLen {
		t.Fatalf("text not bounded: %d", len(snap.Text))
	}
}

func TestParseToleratesBrokenMarkup(t *testing.T) {
	snap, err := Parse("https://example.com", "<h1>Unclosed heading<p>and text")
	if err != nil {
		t.Fatalf("tolerant parser should not fail: %v", err)
	}
	if len(snap.Headings) == 0 {
		t.Fatalf("expected heading from broken markup")
	}
}
