package detect

import (
	"testing"

	"github.com/webfront-labs/storegate/pkg/snapshot"
)

func TestClassifyPage(t *testing.T) {
	cases := []struct {
		name  string
		url   string
		title string
		want  PageContext
	}{
		{
			name: "product page by path",
			url:  "https://example.com/product/widget-123",
			want: PageContext{IsProductPage: true},
		},
		{
			name: "cart page by path",
			url:  "https://example.com/cart",
			want: PageContext{IsCartPage: true},
		},
		{
			name:  "cart page by title",
			url:   "https://example.com/basket",
			title: "Your Shopping Cart",
			want:  PageContext{IsCartPage: true},
		},
		{
			name: "blog post",
			url:  "https://example.com/blog/why-widgets",
			want: PageContext{IsBlogPage: true},
		},
		{
			name: "member area",
			url:  "https://example.com/account/settings",
			want: PageContext{IsMemberArea: true},
		},
		{
			name: "no signal yields all false",
			url:  "https://example.com/about-us",
			want: PageContext{},
		},
		{
			name: "unparsable url yields all false",
			url:  "://not-a-url",
			want: PageContext{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyPage(&snapshot.PageSnapshot{URL: tc.url, Title: tc.title})
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestClassifyPageNilSnapshot(t *testing.T) {
	if got := ClassifyPage(nil); got != (PageContext{}) {
		t.Fatalf("nil snapshot must classify as nothing, got %+v", got)
	}
}
