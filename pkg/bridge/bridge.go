package bridge

// The bridge is the host-facing HTTP surface: the host runtime posts the
// access token and the current page here.  It is intentionally tiny; every
// bit of logic lives in the session.

import (
	"encoding/json"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/webfront-labs/storegate/pkg/session"
	"github.com/webfront-labs/storegate/pkg/snapshot"
)

type Bridge struct {
	app    *fiber.App
	sess   *session.Session
	addr   string
	apiKey string
}

// New wires the bridge routes onto a fresh fiber app.  apiKey is optional;
// when set, every request must carry it in X-API-Key.
func New(sess *session.Session, addr, apiKey string) *Bridge {
	b := &Bridge{
		app: fiber.New(fiber.Config{
			AppName:      "storegate-bridge",
			ServerHeader: "storegate",
		}),
		sess:   sess,
		addr:   addr,
		apiKey: apiKey,
	}

	b.app.Use(logger.New(), healthcheck.New())
	if apiKey != "" {
		b.app.Use(b.requireAPIKey)
	}

	b.app.Get("/", b.handleRoot)
	b.app.Post("/v1/token", b.handleToken)
	b.app.Post("/v1/page", b.handlePage)

	return b
}

// Start blocks serving the bridge until Shutdown.
func (b *Bridge) Start() error {
	log.Info("bridge listening", "addr", b.addr)
	return b.app.Listen(b.addr, fiber.ListenConfig{DisableStartupMessage: true})
}

func (b *Bridge) Shutdown() error {
	return b.app.Shutdown()
}

// App exposes the fiber app for in-process tests.
func (b *Bridge) App() *fiber.App {
	return b.app
}

func (b *Bridge) requireAPIKey(c fiber.Ctx) error {
	if c.Get("X-API-Key") != b.apiKey {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	return c.Next()
}

func (b *Bridge) handleRoot(c fiber.Ctx) error {
	return c.SendString("OK")
}

func (b *Bridge) handleToken(c fiber.Ctx) error {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(c.Body(), &req); err != nil || req.Token == "" {
		return c.Status(fiber.StatusBadRequest).SendString("expected {\"token\":\"...\"}")
	}

	b.sess.InjectToken(req.Token)
	return c.SendStatus(fiber.StatusNoContent)
}

func (b *Bridge) handlePage(c fiber.Ctx) error {
	var req struct {
		URL  string `json:"url"`
		HTML string `json:"html"`
	}
	if err := json.Unmarshal(c.Body(), &req); err != nil || req.URL == "" {
		return c.Status(fiber.StatusBadRequest).SendString("expected {\"url\":\"...\",\"html\":\"...\"}")
	}

	snap, err := snapshot.Parse(req.URL, req.HTML)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	if err := b.sess.SetSnapshot(snap); err != nil {
		// Bootstrap already consumed a snapshot; page context is fixed for
		// the rest of the session.
		return c.Status(fiber.StatusConflict).SendString(err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}
