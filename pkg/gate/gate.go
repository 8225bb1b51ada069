package gate

// The credential gate mediates between the host runtime, which hands over the
// platform access token at an unpredictable point in the page lifecycle, and
// the tool handlers that cannot issue remote calls without it.  Handlers park
// on AwaitReady; the first successful injection releases all of them at once.

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTimeout bounds how long a caller will wait for the host to deliver
// a token before giving up.
const DefaultTimeout = 15 * time.Second

// ErrAuthTimeout is returned by AwaitReady when no token arrives in time.
// The message names the usual cause so operators do not have to guess.
var ErrAuthTimeout = errors.New(
	"auth token not injected within timeout; ensure the host runtime posts the access token to the bridge token endpoint",
)

// Sink receives the token once a consumer (the platform client) exists.
type Sink func(token string)

// Gate holds at most one access token and an ordered list of waiters blocked
// until it has been delivered to the sink.  Once ready it never reverts.
type Gate struct {
	mu      sync.Mutex
	token   string
	ready   bool
	sink    Sink
	waiters []chan struct{}
	timeout time.Duration
}

// New returns a gate with the given wait timeout. A non-positive timeout
// falls back to DefaultTimeout.
func New(timeout time.Duration) *Gate {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Gate{timeout: timeout}
}

// Inject stores the token and, if a sink is attached, forwards it and
// releases every currently parked waiter.  Callable any number of times; a
// later call overwrites the stored token.  Before a sink exists the token is
// only buffered, which is what resolves the construction/injection race: the
// sink picks the buffered token up the moment it attaches.
//
// The sink runs while the gate's lock is held: ready must not be observable
// until the token has actually been delivered, or a fast-path AwaitReady
// caller could fire a request without credentials.  Sinks therefore must not
// call back into the gate.
func (g *Gate) Inject(token string) {
	g.mu.Lock()
	g.token = token
	if g.sink == nil {
		g.mu.Unlock()
		log.Debug("token buffered, client not constructed yet")
		return
	}
	g.sink(token)
	g.ready = true
	waiters := g.waiters
	g.waiters = nil
	g.mu.Unlock()

	for _, w := range waiters {
		close(w)
	}
	logTokenClaims(token)
	log.Info("credential gate ready", "released", len(waiters))
}

// BindSink attaches the token consumer.  If a token arrived before the
// consumer existed, it is forwarded immediately and queued waiters are
// released.  As with Inject, the sink runs under the lock so readiness is
// never visible before the token landed.
func (g *Gate) BindSink(sink Sink) {
	g.mu.Lock()
	g.sink = sink
	if g.token == "" {
		g.mu.Unlock()
		return
	}
	token := g.token
	sink(token)
	g.ready = true
	waiters := g.waiters
	g.waiters = nil
	g.mu.Unlock()

	for _, w := range waiters {
		close(w)
	}
	logTokenClaims(token)
	log.Info("credential gate ready", "released", len(waiters), "buffered", true)
}

// Ready reports whether a token has been delivered to the sink.
func (g *Gate) Ready() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ready
}

// AwaitReady blocks until the gate is ready, the configured timeout elapses,
// or ctx is cancelled.  A timed-out waiter unregisters itself; concurrent
// waiters are unaffected and a single injection releases all of them.
func (g *Gate) AwaitReady(ctx context.Context) error {
	g.mu.Lock()
	if g.ready {
		g.mu.Unlock()
		return nil
	}
	w := make(chan struct{})
	g.waiters = append(g.waiters, w)
	g.mu.Unlock()

	timer := time.NewTimer(g.timeout)
	defer timer.Stop()

	select {
	case <-w:
		return nil
	case <-timer.C:
		g.drop(w)
		return ErrAuthTimeout
	case <-ctx.Done():
		g.drop(w)
		return ctx.Err()
	}
}

// drop removes a waiter so a later injection does not touch a channel whose
// caller already gave up.
func (g *Gate) drop(w chan struct{}) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, cand := range g.waiters {
		if cand == w {
			g.waiters = append(g.waiters[:i], g.waiters[i+1:]...)
			return
		}
	}
}

// logTokenClaims peeks at the token as an unverified JWT purely for
// diagnostics.  Opaque tokens are fine; we just skip the log line.
func logTokenClaims(token string) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return
	}
	sub, _ := parsed.Claims.GetSubject()
	exp, _ := parsed.Claims.GetExpirationTime()
	if exp != nil {
		log.Debug("token claims", "sub", sub, "exp", exp.Time)
	} else {
		log.Debug("token claims", "sub", sub)
	}
}
