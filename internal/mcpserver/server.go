package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer creates a configured MCP server with all CalmMind tools registered.
func NewMCPServer(cfg Config) *server.MCPServer {
	s := server.NewMCPServer("calmmind", "1.0.0")
	client := NewAPIClient(cfg)
	h := NewHandlers(client)

	s.AddTool(ToolListRiskEvents, h.HandleListRiskEvents)
	s.AddTool(ToolHighRiskAlerts, h.HandleHighRiskAlerts)
	s.AddTool(ToolRecommendResources, h.HandleRecommendResources)
	s.AddTool(ToolLogMood, h.HandleLogMood)
	s.AddTool(ToolMoodHistory, h.HandleMoodHistory)

	return s
}
