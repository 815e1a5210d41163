package mcpserver

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/abhisek/dugout/internal/llm"
)

func toolError(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError("Failed to marshal result: %v", err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}

// failure turns a service error into a tool error, naming the external
// collaborator when one failed.
func failure(action string, err error) *mcp.CallToolResult {
	var ext *llm.ExternalServiceError
	if errors.As(err, &ext) {
		return toolError("Failed to %s: external service %s unavailable: %v", action, ext.Service, ext.Err)
	}
	return toolError("Failed to %s: %v", action, err)
}
