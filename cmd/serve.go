package cmd

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/webfront-labs/storegate/pkg/bridge"
	"github.com/webfront-labs/storegate/pkg/session"
	"github.com/webfront-labs/storegate/pkg/snapshot"
)

var (
	pageURLFlag string
	captureFlag bool

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the storegate MCP tools over stdio",
		Long:  longServe,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := viper.GetViper()

			baseURL := v.GetString("platform.base_url")
			if baseURL == "" {
				return errors.New("platform.base_url must be configured")
			}

			sess := session.New(session.Config{
				PlatformBaseURL: baseURL,
				SiteID:          v.GetString("platform.site_id"),
				GateTimeout:     v.GetDuration("gate.timeout"),
			})

			if pageURLFlag != "" && (captureFlag || v.GetBool("snapshot.capture")) {
				snap, err := snapshot.Capture(cmd.Context(), pageURLFlag)
				if err != nil {
					log.Warn("page capture failed, continuing without snapshot", "err", err)
				} else if err := sess.SetSnapshot(snap); err != nil {
					return err
				}
			} else if pageURLFlag != "" {
				// URL-only context still lets the classifier work.
				if err := sess.SetSnapshot(&snapshot.PageSnapshot{URL: pageURLFlag}); err != nil {
					return err
				}
			}

			hostBridge := bridge.New(sess,
				v.GetString("bridge.addr"),
				v.GetString("bridge.api_key"),
			)
			go func() {
				if err := hostBridge.Start(); err != nil {
					log.Error("bridge stopped", "err", err)
				}
			}()

			srv := server.NewMCPServer(
				"storegate",
				version,
				server.WithLogging(),
			)

			// Bootstrap waits on the credential gate, so it runs alongside
			// the stdio server rather than delaying it.
			go sess.Bootstrap(context.Background(), srv)

			defer hostBridge.Shutdown()
			return server.ServeStdio(srv)
		},
	}
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&pageURLFlag, "page-url", "", "URL of the page the visitor is on")
	serveCmd.Flags().BoolVar(&captureFlag, "capture", false, "Capture the page with a headless browser")
}

const version = "0.1.0"

var longServe = `
Serve the storegate tools to an MCP host over stdio.

The host (or the site runtime embedding it) is expected to POST the platform
access token to the bridge once it has one:

  curl -X POST localhost:3210/v1/token -d '{"token":"..."}'

Until that happens, tools that need the platform wait; after the configured
gate timeout they answer with a failed result instead of blocking forever.

Examples:
  # Serve with the visitor's page supplied by the host later
  storegate serve

  # Classify the current page from its URL only
  storegate serve --page-url https://example.com/product/widget-123

  # Render the page headlessly for full page-context signals
  storegate serve --page-url https://example.com/shop --capture
`
