package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/emceep/internal/adapter/api/dto"
	"github.com/hugohenrick/emceep/internal/domain/event"
	"github.com/hugohenrick/emceep/pkg/logger"
)

// ServiceName identifica o serviço nas respostas de saúde e documentação
const ServiceName = "emceep-event-manager"

// EventController gerencia as requisições sobre os dados gerais do evento
type EventController struct {
	store    event.Repository
	dataPath string
	logger   logger.Logger
}

// NewEventController cria uma nova instância de EventController
func NewEventController(store event.Repository, dataPath string, log logger.Logger) *EventController {
	return &EventController{store: store, dataPath: dataPath, logger: logger.OrNop(log)}
}

// Index lista os endpoints disponíveis
// @Summary Índice da API
// @Tags event
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (c *EventController) Index(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"service": "Event Data Web Server",
		"version": "1.0.0",
		"endpoints": gin.H{
			"health":        "/health - Health check",
			"event_data":    "/api/event - Complete event data",
			"event_info":    "/api/event/info - Basic event information",
			"schedule":      "/api/schedule - Event schedule",
			"attendees":     "/api/attendees - Attendee list",
			"organizers":    "/api/organizers - Organizer list",
			"faq":           "/api/faq - FAQ data",
			"changelog":     "/api/changelog?limit=N - Changelog (optional limit)",
			"archive":       "/api/changelog/archive?type=T&limit=N - Archived changelog",
			"stream":        "/api/changelog/stream - Live changelog over websocket",
			"dietary":       "/api/dietary - Dietary requirements summary",
			"schedule_item": "/api/schedule/<item_id> - Specific schedule item",
			"attendee":      "/api/attendees/<attendee_id> - Specific attendee",
			"commands":      "/api/commands - Process a voice command",
			"tools":         "/api/tools/<name> - Call an MCP tool",
			"mcp":           "/mcp - MCP JSON-RPC endpoint",
		},
		"data_source": c.dataPath,
	})
}

// Health verifica se o serviço está no ar
// @Summary Health check
// @Tags event
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (c *EventController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   ServiceName,
		"data_file": c.dataPath,
	})
}

// GetEvent retorna o documento completo
// @Summary Dados completos do evento
// @Tags event
// @Produce json
// @Success 200 {object} dto.DataResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/event [get]
func (c *EventController) GetEvent(ctx *gin.Context) {
	doc, err := c.store.Snapshot(ctx)
	if err != nil {
		respondError(ctx, c.logger, err, "")
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(doc))
}

// GetEventInfo retorna id, nome, data e local do evento
// @Summary Informações básicas do evento
// @Tags event
// @Produce json
// @Success 200 {object} dto.DataResponse
// @Router /api/event/info [get]
func (c *EventController) GetEventInfo(ctx *gin.Context) {
	doc, err := c.store.Snapshot(ctx)
	if err != nil {
		respondError(ctx, c.logger, err, "")
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.ToEventInfoResponse(doc)))
}

// GetOrganizers lista os organizadores
// @Summary Lista os organizadores
// @Tags event
// @Produce json
// @Success 200 {object} dto.DataResponse
// @Router /api/organizers [get]
func (c *EventController) GetOrganizers(ctx *gin.Context) {
	doc, err := c.store.Snapshot(ctx)
	if err != nil {
		respondError(ctx, c.logger, err, "")
		return
	}
	organizers := doc.AllOrganizers()
	ctx.JSON(http.StatusOK, dto.NewListResponse(organizers, len(organizers)))
}

// GetFAQ retorna o FAQ
// @Summary FAQ do evento
// @Tags faq
// @Produce json
// @Success 200 {object} dto.DataResponse
// @Router /api/faq [get]
func (c *EventController) GetFAQ(ctx *gin.Context) {
	doc, err := c.store.Snapshot(ctx)
	if err != nil {
		respondError(ctx, c.logger, err, "")
		return
	}
	faq := doc.FAQ
	if faq == nil {
		faq = map[string]string{}
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(faq, len(faq)))
}

// UpdateFAQ cria ou altera uma entrada do FAQ
// @Summary Cria ou altera uma entrada do FAQ
// @Tags faq
// @Accept json
// @Produce json
// @Param key path string true "Chave do FAQ"
// @Param faq body dto.FAQRequest true "Resposta"
// @Success 200 {object} dto.DataResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/faq/{key} [put]
func (c *EventController) UpdateFAQ(ctx *gin.Context) {
	var request dto.FAQRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	key := ctx.Param("key")
	if err := c.store.UpdateFAQ(ctx, key, request.Value); err != nil {
		respondError(ctx, c.logger, err, "")
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(gin.H{"key": key, "value": request.Value}))
}

// GetDietary resume as restrições alimentares dos participantes
// @Summary Resumo de restrições alimentares
// @Tags attendees
// @Produce json
// @Success 200 {object} dto.DataResponse
// @Router /api/dietary [get]
func (c *EventController) GetDietary(ctx *gin.Context) {
	doc, err := c.store.Snapshot(ctx)
	if err != nil {
		respondError(ctx, c.logger, err, "")
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(event.SummarizeDietary(doc.Attendees)))
}
