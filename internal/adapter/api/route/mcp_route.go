package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/emceep/pkg/mcp"
)

// ConfigureMCPRoutes expõe o servidor MCP em JSON-RPC sobre HTTP
func ConfigureMCPRoutes(router gin.IRouter, server *mcp.Server) {
	router.POST("/mcp", server.HTTPHandler())
}
