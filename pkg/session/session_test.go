package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"

	"github.com/webfront-labs/storegate/pkg/snapshot"
)

func testSession(t *testing.T, handler http.Handler, timeout time.Duration) *Session {
	t.Helper()
	baseURL := "http://127.0.0.1:0"
	if handler != nil {
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)
		baseURL = srv.URL
	}
	return New(Config{PlatformBaseURL: baseURL, SiteID: "site-1", GateTimeout: timeout})
}

func structureHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	})
}

func TestClientIsSingleton(t *testing.T) {
	s := testSession(t, nil, time.Second)

	var wg sync.WaitGroup
	clients := make([]any, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			clients[i] = s.Client()
		}(i)
	}
	wg.Wait()

	for _, c := range clients {
		assert.Same(t, clients[0], c)
	}
}

func TestEarlyTokenReachesLazyClient(t *testing.T) {
	s := testSession(t, nil, time.Second)

	// Token arrives before any client exists.
	s.InjectToken("early")
	assert.False(t, s.Gate().Ready(), "no sink yet, gate must not be ready")

	s.Client()
	assert.True(t, s.Gate().Ready(), "constructing the client must flush the buffered token")
}

func TestBootstrapRunsAtMostOnce(t *testing.T) {
	s := testSession(t, structureHandler(
		`{"site":{"pages":[],"urlPrefixes":["/shop-now"]}}`), time.Second)
	s.InjectToken("tok")

	srv := server.NewMCPServer("test", "0.0.0")
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Bootstrap(ctx, srv)
		}()
	}
	wg.Wait()

	assert.True(t, s.Bootstrapped())
	assert.True(t, s.Apps().HasStores)
}

func TestBootstrapDegradesWithoutToken(t *testing.T) {
	s := testSession(t, nil, 20*time.Millisecond)

	srv := server.NewMCPServer("test", "0.0.0")
	s.Bootstrap(context.Background(), srv)

	assert.True(t, s.Bootstrapped())
	assert.Equal(t, false, s.Apps().HasStores)
	assert.Equal(t, false, s.Apps().HasBlog)
	assert.Equal(t, false, s.Apps().HasMembers)
}

func TestSnapshotRejectedOnceBootstrapReadsIt(t *testing.T) {
	// No token is ever injected, so Bootstrap consumes the snapshot and
	// then blocks on the gate for the full timeout before finishing.
	s := testSession(t, nil, 300*time.Millisecond)

	assert.NoError(t, s.SetSnapshot(&snapshot.PageSnapshot{URL: "https://example.com/cart"}))

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Bootstrap(context.Background(), server.NewMCPServer("test", "0.0.0"))
	}()

	deadline := time.After(2 * time.Second)
	for {
		err := s.SetSnapshot(&snapshot.PageSnapshot{URL: "https://example.com/other"})
		if err != nil {
			assert.ErrorIs(t, err, ErrAlreadyBootstrapped)
			assert.False(t, s.Bootstrapped(),
				"a snapshot posted after the read must be rejected even while bootstrap is still running")
			break
		}
		select {
		case <-deadline:
			t.Fatal("snapshot was never consumed by bootstrap")
		case <-time.After(2 * time.Millisecond):
		}
	}
	<-done
}

func TestSnapshotRejectedAfterBootstrap(t *testing.T) {
	s := testSession(t, nil, 10*time.Millisecond)

	snap := &snapshot.PageSnapshot{URL: "https://example.com/cart"}
	assert.NoError(t, s.SetSnapshot(snap))

	s.Bootstrap(context.Background(), server.NewMCPServer("test", "0.0.0"))

	err := s.SetSnapshot(&snapshot.PageSnapshot{URL: "https://example.com/other"})
	assert.ErrorIs(t, err, ErrAlreadyBootstrapped)
}
