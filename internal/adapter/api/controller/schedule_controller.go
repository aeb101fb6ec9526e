package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/emceep/internal/adapter/api/dto"
	"github.com/hugohenrick/emceep/internal/domain/event"
	"github.com/hugohenrick/emceep/pkg/logger"
)

// ScheduleController gerencia as requisições sobre a agenda do evento
type ScheduleController struct {
	store  event.Repository
	logger logger.Logger
}

// NewScheduleController cria uma nova instância de ScheduleController
func NewScheduleController(store event.Repository, log logger.Logger) *ScheduleController {
	return &ScheduleController{store: store, logger: logger.OrNop(log)}
}

// List retorna a agenda completa
// @Summary Lista a agenda
// @Tags schedule
// @Produce json
// @Success 200 {object} dto.DataResponse
// @Router /api/schedule [get]
func (c *ScheduleController) List(ctx *gin.Context) {
	doc, err := c.store.Snapshot(ctx)
	if err != nil {
		respondError(ctx, c.logger, err, "")
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(doc.Schedule, len(doc.Schedule)))
}

// GetByID busca um item da agenda pelo id exato
// @Summary Busca um item da agenda
// @Tags schedule
// @Produce json
// @Param id path string true "ID do item"
// @Success 200 {object} dto.DataResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/schedule/{id} [get]
func (c *ScheduleController) GetByID(ctx *gin.Context) {
	id := ctx.Param("id")
	doc, err := c.store.Snapshot(ctx)
	if err != nil {
		respondError(ctx, c.logger, err, "")
		return
	}

	for _, item := range doc.Schedule {
		if item.ID == id {
			ctx.JSON(http.StatusOK, dto.NewDataResponse(item))
			return
		}
	}
	ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Schedule item not found: "+id, ""))
}

// Create adiciona um item à agenda
// @Summary Adiciona um item à agenda
// @Tags schedule
// @Accept json
// @Produce json
// @Param item body dto.ScheduleItemRequest true "Dados do item"
// @Success 201 {object} dto.DataResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/schedule [post]
func (c *ScheduleController) Create(ctx *gin.Context) {
	var request dto.ScheduleItemRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	item, err := c.store.AddScheduleItem(ctx, request.ToScheduleItem())
	if err != nil {
		respondError(ctx, c.logger, err, "")
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewDataResponse(item))
}

// UpdateTime altera o horário de um item
// @Summary Altera o horário de um item da agenda
// @Tags schedule
// @Accept json
// @Produce json
// @Param id path string true "ID ou título do item"
// @Param time body dto.ScheduleTimeRequest true "Novo horário"
// @Success 200 {object} dto.DataResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/schedule/{id}/time [put]
func (c *ScheduleController) UpdateTime(ctx *gin.Context) {
	var request dto.ScheduleTimeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	id := ctx.Param("id")
	item, err := c.store.UpdateScheduleTime(ctx, id, request.Time, request.EndTime)
	if err != nil {
		respondError(ctx, c.logger, err, "Schedule item not found: "+id)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(item))
}

// UpdateLocation altera o local de um item
// @Summary Altera o local de um item da agenda
// @Tags schedule
// @Accept json
// @Produce json
// @Param id path string true "ID ou título do item"
// @Param location body dto.ScheduleLocationRequest true "Novo local"
// @Success 200 {object} dto.DataResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/schedule/{id}/location [put]
func (c *ScheduleController) UpdateLocation(ctx *gin.Context) {
	var request dto.ScheduleLocationRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	id := ctx.Param("id")
	item, err := c.store.UpdateScheduleLocation(ctx, id, request.Location)
	if err != nil {
		respondError(ctx, c.logger, err, "Schedule item not found: "+id)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(item))
}

// Delete remove um item da agenda
// @Summary Remove um item da agenda
// @Tags schedule
// @Produce json
// @Param id path string true "ID ou título do item"
// @Success 200 {object} dto.DataResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/schedule/{id} [delete]
func (c *ScheduleController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	item, err := c.store.RemoveScheduleItem(ctx, id)
	if err != nil {
		respondError(ctx, c.logger, err, "Schedule item not found: "+id)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(item))
}
