package session

// A Session owns all previously-ambient state for one site visit: the
// credential gate, the lazily constructed platform client, the page snapshot
// and the detected capabilities.  Tool handlers receive it by reference
// through toolset.Deps instead of closing over globals.

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"

	"github.com/webfront-labs/storegate/pkg/detect"
	"github.com/webfront-labs/storegate/pkg/gate"
	"github.com/webfront-labs/storegate/pkg/platform"
	"github.com/webfront-labs/storegate/pkg/snapshot"
	"github.com/webfront-labs/storegate/pkg/toolset"
)

// ErrAlreadyBootstrapped is returned when a snapshot arrives after bootstrap
// already consumed one.  Page context is computed once per session.
var ErrAlreadyBootstrapped = errors.New("session already bootstrapped, page context is fixed")

type Config struct {
	PlatformBaseURL string
	SiteID          string
	GateTimeout     time.Duration
}

type Session struct {
	cfg  Config
	gate *gate.Gate

	clientOnce sync.Once
	client     *platform.Client

	bootOnce sync.Once
	booted   atomic.Bool

	mu           sync.Mutex
	snap         *snapshot.PageSnapshot
	snapConsumed bool
	page         detect.PageContext
	apps         detect.Apps
}

func New(cfg Config) *Session {
	return &Session{
		cfg:  cfg,
		gate: gate.New(cfg.GateTimeout),
	}
}

// Gate exposes the credential gate, mainly for tests.
func (s *Session) Gate() *gate.Gate {
	return s.gate
}

// InjectToken is the entry point the host runtime calls, directly or through
// the bridge, whenever it has a token for us.  Callable any time.
func (s *Session) InjectToken(token string) {
	s.gate.Inject(token)
}

// Client returns the shared platform client, constructing it on first use.
// Construction does no I/O; binding the gate sink here is what forwards a
// token that arrived before the client existed.
func (s *Session) Client() *platform.Client {
	s.clientOnce.Do(func() {
		s.client = platform.NewClient(s.cfg.PlatformBaseURL, s.cfg.SiteID)
		s.gate.BindSink(s.client.SetToken)
		log.Debug("platform client constructed", "baseURL", s.cfg.PlatformBaseURL)
	})
	return s.client
}

// SetSnapshot records the page the visitor is on.  Rejected the moment
// bootstrap has read a snapshot, not merely once bootstrap completes: the
// compute-once contract is deliberate, and detection can keep bootstrap busy
// for the whole gate timeout.
func (s *Session) SetSnapshot(snap *snapshot.PageSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapConsumed {
		return ErrAlreadyBootstrapped
	}
	s.snap = snap
	return nil
}

// Bootstrapped reports whether Bootstrap has already run.
func (s *Session) Bootstrapped() bool {
	return s.booted.Load()
}

// Apps returns the capabilities detected during bootstrap.
func (s *Session) Apps() detect.Apps {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apps
}

// Bootstrap classifies the page, detects installed apps and registers the
// filtered tool catalog on srv.  Runs at most once per session; later calls
// are no-ops.  Detection failures degrade to the baseline tools only.
func (s *Session) Bootstrap(ctx context.Context, srv *server.MCPServer) {
	s.bootOnce.Do(func() {
		s.mu.Lock()
		snap := s.snap
		s.snapConsumed = true
		s.mu.Unlock()

		page := detect.ClassifyPage(snap)

		detector := &detect.Detector{Gate: s.gate, Client: s.Client()}
		apps := detector.DetectApps(ctx)

		s.mu.Lock()
		s.page = page
		s.apps = apps
		s.mu.Unlock()

		deps := &toolset.Deps{
			Gate:   s.gate,
			Client: s.Client,
			Page:   page,
			Snap:   snap,
		}
		toolset.Register(srv, apps, toolset.Catalog(deps))

		s.booted.Store(true)
		log.Info("session bootstrapped",
			"stores", apps.HasStores, "blog", apps.HasBlog, "members", apps.HasMembers)
	})
}
