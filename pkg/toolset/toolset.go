package toolset

// The tool catalog is declarative: every tool is an Entry pairing its MCP
// schema and handler with the capability it requires.  Registration is a
// filter over the table, which keeps the gating logic testable independent of
// how capabilities were detected.

import (
	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/webfront-labs/storegate/pkg/detect"
	"github.com/webfront-labs/storegate/pkg/gate"
	"github.com/webfront-labs/storegate/pkg/platform"
	"github.com/webfront-labs/storegate/pkg/snapshot"
)

// Capability names the installed app a tool group depends on.
type Capability int

const (
	None Capability = iota
	Stores
	Blog
	Members
)

func (c Capability) String() string {
	switch c {
	case Stores:
		return "stores"
	case Blog:
		return "blog"
	case Members:
		return "members"
	default:
		return "none"
	}
}

// Enabled reports whether the detected apps satisfy the capability.
func (c Capability) Enabled(apps detect.Apps) bool {
	switch c {
	case Stores:
		return apps.HasStores
	case Blog:
		return apps.HasBlog
	case Members:
		return apps.HasMembers
	default:
		return true
	}
}

// Deps is everything a handler closure may touch.  Client is a factory so
// the shared platform client stays lazily constructed until the first tool
// that actually needs it runs.
type Deps struct {
	Gate   *gate.Gate
	Client func() *platform.Client
	Page   detect.PageContext
	Snap   *snapshot.PageSnapshot
}

// Entry is one row of the tool catalog.
type Entry struct {
	Tool     mcp.Tool
	Handler  server.ToolHandlerFunc
	Requires Capability
}

// Catalog builds the full tool table.  Nothing is registered here; the
// caller filters by detected capabilities via Register.
func Catalog(deps *Deps) []Entry {
	var entries []Entry
	entries = append(entries, siteEntries(deps)...)
	entries = append(entries, productEntries(deps)...)
	entries = append(entries, cartEntries(deps)...)
	entries = append(entries, blogEntries(deps)...)
	entries = append(entries, memberEntries(deps)...)
	return entries
}

// Register appends every entry whose capability is enabled to the host
// server and returns how many tools were installed.
func Register(srv *server.MCPServer, apps detect.Apps, entries []Entry) int {
	registered := 0
	for _, e := range entries {
		if !e.Requires.Enabled(apps) {
			log.Debug("tool skipped, capability not detected",
				"tool", e.Tool.Name, "requires", e.Requires)
			continue
		}
		srv.AddTool(e.Tool, e.Handler)
		registered++
	}
	log.Info("tools registered", "count", registered, "total", len(entries))
	return registered
}
