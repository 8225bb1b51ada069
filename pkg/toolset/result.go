package toolset

// Uniform result contract: every handler returns an MCP text result whose
// payload is {"success":true,...} or {"success":false,"error":...}.  No Go
// error ever escapes to the host registry.

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"
)

func success(payload map[string]any) *mcp.CallToolResult {
	body := map[string]any{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	b, _ := json.Marshal(body)
	return mcp.NewToolResultText(string(b))
}

func failure(msg string) *mcp.CallToolResult {
	b, _ := json.Marshal(map[string]any{"success": false, "error": msg})
	return mcp.NewToolResultText(string(b))
}

func failErr(err error) *mcp.CallToolResult {
	return failure(err.Error())
}

// Argument helpers.  MCP arguments arrive as decoded JSON, so numbers are
// float64 regardless of what the schema declared.

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func intArg(args map[string]any, key string, fallback int) (int, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return fallback, nil
	}
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%s must be a whole number", key)
		}
		return int(v), nil
	case int:
		return v, nil
	default:
		return 0, fmt.Errorf("%s must be a number", key)
	}
}
