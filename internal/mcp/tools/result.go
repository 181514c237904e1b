package tools

import (
	"errors"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/careerhub/internal/domain"
)

// textResult returns a text-only ToolResult
func textResult(msg string) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: msg},
		},
	}
}

// toolError reports err to the caller as a tool error. Validation and
// not-found errors keep their message; anything else is wrapped with tool.
func toolError(tool string, err error) (*sdkmcp.CallToolResult, any, error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		return nil, nil, fmt.Errorf("invalid input: %s", vErr.Msg)
	case errors.Is(err, domain.ErrNotFound):
		return nil, nil, err
	}
	return nil, nil, fmt.Errorf("%s: %w", tool, err)
}
