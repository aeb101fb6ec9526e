package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/emceep/internal/adapter/api/dto"
	"github.com/hugohenrick/emceep/internal/domain/event"
	"github.com/hugohenrick/emceep/pkg/logger"
)

// AttendeeController gerencia as requisições sobre os participantes
type AttendeeController struct {
	store  event.Repository
	logger logger.Logger
}

// NewAttendeeController cria uma nova instância de AttendeeController
func NewAttendeeController(store event.Repository, log logger.Logger) *AttendeeController {
	return &AttendeeController{store: store, logger: logger.OrNop(log)}
}

// List retorna todos os participantes
// @Summary Lista os participantes
// @Tags attendees
// @Produce json
// @Success 200 {object} dto.DataResponse
// @Router /api/attendees [get]
func (c *AttendeeController) List(ctx *gin.Context) {
	doc, err := c.store.Snapshot(ctx)
	if err != nil {
		respondError(ctx, c.logger, err, "")
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(doc.Attendees, len(doc.Attendees)))
}

// GetByID busca um participante pelo id exato
// @Summary Busca um participante
// @Tags attendees
// @Produce json
// @Param id path string true "ID do participante"
// @Success 200 {object} dto.DataResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/attendees/{id} [get]
func (c *AttendeeController) GetByID(ctx *gin.Context) {
	id := ctx.Param("id")
	doc, err := c.store.Snapshot(ctx)
	if err != nil {
		respondError(ctx, c.logger, err, "")
		return
	}

	for _, attendee := range doc.Attendees {
		if attendee.ID == id {
			ctx.JSON(http.StatusOK, dto.NewDataResponse(attendee))
			return
		}
	}
	ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Attendee not found: "+id, ""))
}

// Create registra um participante
// @Summary Registra um participante
// @Tags attendees
// @Accept json
// @Produce json
// @Param attendee body dto.AttendeeRequest true "Dados do participante"
// @Success 201 {object} dto.DataResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/attendees [post]
func (c *AttendeeController) Create(ctx *gin.Context) {
	var request dto.AttendeeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	attendee, err := c.store.AddAttendee(ctx, request.ToAttendee())
	if err != nil {
		respondError(ctx, c.logger, err, "")
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewDataResponse(attendee))
}

// Update altera um campo de um participante
// @Summary Altera um participante
// @Tags attendees
// @Accept json
// @Produce json
// @Param id path string true "ID, nome, email ou telefone"
// @Param change body dto.AttendeeUpdateRequest true "Campo e valor"
// @Success 200 {object} dto.DataResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/attendees/{id} [patch]
func (c *AttendeeController) Update(ctx *gin.Context) {
	var request dto.AttendeeUpdateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	id := ctx.Param("id")
	attendee, err := c.store.UpdateAttendee(ctx, id, request.Field, request.Value)
	if err != nil {
		respondError(ctx, c.logger, err, "Attendee not found: "+id)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(attendee))
}

// Delete remove um participante
// @Summary Remove um participante
// @Tags attendees
// @Produce json
// @Param id path string true "ID, nome, email ou telefone"
// @Success 200 {object} dto.DataResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/attendees/{id} [delete]
func (c *AttendeeController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	attendee, err := c.store.RemoveAttendee(ctx, id)
	if err != nil {
		respondError(ctx, c.logger, err, "Attendee not found: "+id)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(attendee))
}
