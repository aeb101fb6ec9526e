package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/emceep/internal/adapter/api/dto"
	"github.com/hugohenrick/emceep/pkg/logger"
	"github.com/hugohenrick/emceep/pkg/mcp"
)

// CommandController expõe o processamento de comandos de voz e as
// ferramentas MCP via REST
type CommandController struct {
	commands   mcp.CommandProcessor
	dispatcher *mcp.Dispatcher
	logger     logger.Logger
}

// NewCommandController cria uma nova instância de CommandController
func NewCommandController(commands mcp.CommandProcessor, dispatcher *mcp.Dispatcher, log logger.Logger) *CommandController {
	return &CommandController{commands: commands, dispatcher: dispatcher, logger: logger.OrNop(log)}
}

// Process classifica e, se pedido, executa um comando de voz
// @Summary Processa um comando de voz
// @Tags commands
// @Accept json
// @Produce json
// @Param command body dto.CommandRequest true "Comando"
// @Success 200 {object} dto.DataResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/commands [post]
func (c *CommandController) Process(ctx *gin.Context) {
	var request dto.CommandRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	result := c.commands.Process(ctx, request.Command, request.ShouldExecute())
	ctx.JSON(http.StatusOK, dto.NewDataResponse(result))
}

// Classify apenas classifica o texto
// @Summary Classifica um comando de voz
// @Tags commands
// @Accept json
// @Produce json
// @Param text body dto.ClassifyRequest true "Texto"
// @Success 200 {object} dto.DataResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/commands/classify [post]
func (c *CommandController) Classify(ctx *gin.Context) {
	var request dto.ClassifyRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(c.commands.Classify(request.Text)))
}

// ListTools lista as ferramentas disponíveis
// @Summary Lista as ferramentas MCP
// @Tags tools
// @Produce json
// @Success 200 {object} dto.DataResponse
// @Router /api/tools [get]
func (c *CommandController) ListTools(ctx *gin.Context) {
	tools := c.dispatcher.Tools()
	ctx.JSON(http.StatusOK, dto.NewListResponse(tools, len(tools)))
}

// CallTool chama uma ferramenta MCP pelo nome
// @Summary Chama uma ferramenta MCP
// @Tags tools
// @Accept json
// @Produce json
// @Param name path string true "Nome da ferramenta"
// @Param arguments body dto.ToolCallRequest false "Argumentos"
// @Success 200 {object} dto.DataResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/tools/{name} [post]
func (c *CommandController) CallTool(ctx *gin.Context) {
	name := ctx.Param("name")
	if !c.dispatcher.HasTool(name) {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Unknown tool: "+name, ""))
		return
	}

	args := dto.ToolCallRequest{}
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&args); err != nil {
			badRequest(ctx, err)
			return
		}
	}

	result, err := c.dispatcher.Call(ctx, name, args)
	switch {
	case err == nil:
		ctx.JSON(http.StatusOK, dto.NewDataResponse(result))
	case errors.Is(err, mcp.ErrInvalidArguments):
		badRequest(ctx, err)
	default:
		respondError(ctx, c.logger, err, "")
	}
}
