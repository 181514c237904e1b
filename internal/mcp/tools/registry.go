package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/careerhub/pkg/logging"
)

// Option configures which tools are registered
type Option func(*registry)

type registry struct {
	server *sdkmcp.Server
	logger *logging.Logger
	names  []string
}

// Register applies the provided tool options and returns the names of the
// tools that ended up on server, in registration order
func Register(server *sdkmcp.Server, logger *logging.Logger, opts ...Option) []string {
	if logger == nil {
		logger = logging.NewNop()
	}
	reg := &registry{server: server, logger: logger.Named("tools")}
	for _, opt := range opts {
		if opt != nil {
			opt(reg)
		}
	}
	return reg.names
}

func addTool[In any](reg *registry, tool *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, any]) {
	sdkmcp.AddTool(reg.server, tool, h)
	reg.names = append(reg.names, tool.Name)
	reg.logger.Debug("tool registered", "tool", tool.Name)
}
