package toolset

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webfront-labs/storegate/pkg/detect"
	"github.com/webfront-labs/storegate/pkg/gate"
	"github.com/webfront-labs/storegate/pkg/platform"
	"github.com/webfront-labs/storegate/pkg/snapshot"
)

func testDeps(t *testing.T, handler http.Handler, timeout time.Duration) *Deps {
	t.Helper()

	g := gate.New(timeout)
	baseURL := "http://127.0.0.1:0"
	if handler != nil {
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)
		baseURL = srv.URL
	}
	client := platform.NewClient(baseURL, "site-1")
	g.BindSink(client.SetToken)

	return &Deps{
		Gate:   g,
		Client: func() *platform.Client { return client },
		Snap:   &snapshot.PageSnapshot{URL: "https://example.com/product/widget-123", Title: "Widget"},
		Page:   detect.PageContext{IsProductPage: true},
	}
}

func callTool(t *testing.T, h server.ToolHandlerFunc, args map[string]any) map[string]any {
	t.Helper()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = args

	res, err := h(context.Background(), req)
	require.NoError(t, err, "handlers must never surface a Go error to the host")
	require.NotNil(t, res)

	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "result payload must be text")

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &body))
	return body
}

func entryByName(t *testing.T, entries []Entry, name string) Entry {
	t.Helper()
	for _, e := range entries {
		if e.Tool.Name == name {
			return e
		}
	}
	t.Fatalf("tool %s not in catalog", name)
	return Entry{}
}

func TestRegisterFiltersByCapability(t *testing.T) {
	deps := testDeps(t, nil, time.Second)
	entries := Catalog(deps)

	srv := server.NewMCPServer("test", "0.0.0")
	assert.Equal(t, 2, Register(srv, detect.Apps{}, entries),
		"only the baseline tools without any detected app")

	srv = server.NewMCPServer("test", "0.0.0")
	assert.Equal(t, len(entries), Register(srv, detect.Apps{HasStores: true, HasBlog: true, HasMembers: true}, entries))

	srv = server.NewMCPServer("test", "0.0.0")
	assert.Equal(t, 4, Register(srv, detect.Apps{HasBlog: true}, entries),
		"baseline plus the two blog tools")
}

func TestInspectCurrentPageIsPure(t *testing.T) {
	// No mock server and no token: the inspector must answer anyway.
	deps := testDeps(t, nil, 10*time.Millisecond)
	entry := entryByName(t, Catalog(deps), "inspect_current_page")

	body := callTool(t, entry.Handler, nil)
	assert.Equal(t, true, body["success"])

	pageCtx := body["context"].(map[string]any)
	assert.Equal(t, true, pageCtx["isProductPage"])
	assert.Equal(t, false, pageCtx["isCartPage"])
}

func TestCartFetchTreats404AsEmpty(t *testing.T) {
	deps := testDeps(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"cart not found"}`, http.StatusNotFound)
	}), time.Second)
	deps.Gate.Inject("tok")

	entry := entryByName(t, Catalog(deps), "get_current_cart")
	body := callTool(t, entry.Handler, nil)

	assert.Equal(t, true, body["success"])
	cart := body["cart"].(map[string]any)
	assert.Empty(t, cart["items"])
	assert.Equal(t, float64(0), cart["totalQuantity"])
}

func TestCartFetchKeepsOtherFailuresAsErrors(t *testing.T) {
	deps := testDeps(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}), time.Second)
	deps.Gate.Inject("tok")

	entry := entryByName(t, Catalog(deps), "get_current_cart")
	body := callTool(t, entry.Handler, nil)

	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "500")
}

func TestGatedToolFailsAfterAuthTimeout(t *testing.T) {
	deps := testDeps(t, nil, 20*time.Millisecond)

	entry := entryByName(t, Catalog(deps), "search_products")
	body := callTool(t, entry.Handler, map[string]any{"query": "widget"})

	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "auth token not injected within timeout")
}

func TestSearchProductsRejectsBlankQuery(t *testing.T) {
	// Gate never becomes ready: validation must reject before waiting, so
	// the failure message talks about the input, not about auth.
	deps := testDeps(t, nil, 500*time.Millisecond)

	entry := entryByName(t, Catalog(deps), "search_products")
	start := time.Now()
	body := callTool(t, entry.Handler, map[string]any{"query": "  "})

	assert.Equal(t, false, body["success"])
	assert.NotContains(t, body["error"], "auth token")
	assert.Less(t, time.Since(start), 400*time.Millisecond,
		"validation must not block on the credential gate")
}

func TestAddToCartRejectsMalformedOptions(t *testing.T) {
	deps := testDeps(t, nil, 5*time.Second)
	deps.Gate.Inject("tok")

	entry := entryByName(t, Catalog(deps), "add_to_cart")
	body := callTool(t, entry.Handler, map[string]any{
		"productId": "p1",
		"quantity":  float64(1),
		"options":   "{not json",
	})

	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "JSON object")
}

func TestAddToCartRejectsNonPositiveQuantity(t *testing.T) {
	deps := testDeps(t, nil, 5*time.Second)

	entry := entryByName(t, Catalog(deps), "add_to_cart")
	body := callTool(t, entry.Handler, map[string]any{
		"productId": "p1",
		"quantity":  float64(0),
	})
	assert.Equal(t, false, body["success"])
}

func TestAddToCartRejectsFractionalQuantity(t *testing.T) {
	deps := testDeps(t, nil, 5*time.Second)

	entry := entryByName(t, Catalog(deps), "add_to_cart")
	body := callTool(t, entry.Handler, map[string]any{
		"productId": "p1",
		"quantity":  float64(1.5),
	})
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "whole number")
}

func TestGetProductNotFoundStaysAnError(t *testing.T) {
	deps := testDeps(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"nope"}`, http.StatusNotFound)
	}), time.Second)
	deps.Gate.Inject("tok")

	entry := entryByName(t, Catalog(deps), "get_product")
	body := callTool(t, entry.Handler, map[string]any{"productId": "ghost"})

	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "product not found")
}

func TestMemberInfoTranslatesAuthErrors(t *testing.T) {
	deps := testDeps(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"forbidden"}`, http.StatusForbidden)
	}), time.Second)
	deps.Gate.Inject("tok")

	entry := entryByName(t, Catalog(deps), "get_member_info")
	body := callTool(t, entry.Handler, nil)

	assert.Equal(t, false, body["success"])
	assert.Equal(t, "no member is logged in", body["error"])
}
