package controller

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/emceep/internal/adapter/api/dto"
	"github.com/hugohenrick/emceep/internal/adapter/repository"
	"github.com/hugohenrick/emceep/internal/domain/event"
	"github.com/hugohenrick/emceep/pkg/logger"
)

// ArchiveReader consulta o arquivo SQLite do changelog
type ArchiveReader interface {
	List(ctx context.Context, filter repository.ArchiveFilter) ([]event.ChangelogEntry, error)
	Count(ctx context.Context) (map[event.ChangeType]int, error)
}

// ChangelogController gerencia as consultas ao changelog
type ChangelogController struct {
	store   event.Repository
	archive ArchiveReader
	logger  logger.Logger
}

// NewChangelogController cria uma nova instância de ChangelogController.
// Com archive nil as rotas do arquivo respondem 503.
func NewChangelogController(store event.Repository, archive ArchiveReader, log logger.Logger) *ChangelogController {
	return &ChangelogController{store: store, archive: archive, logger: logger.OrNop(log)}
}

// List retorna as últimas entradas do changelog
// @Summary Lista o changelog
// @Tags changelog
// @Produce json
// @Param limit query int false "Quantidade de entradas mais recentes"
// @Success 200 {object} dto.ChangelogResponse
// @Router /api/changelog [get]
func (c *ChangelogController) List(ctx *gin.Context) {
	limit := queryLimit(ctx)

	n := 0
	if limit != nil {
		n = *limit
	}
	entries, total, err := c.store.Changelog(ctx, n)
	if err != nil {
		respondError(ctx, c.logger, err, "")
		return
	}

	ctx.JSON(http.StatusOK, dto.ChangelogResponse{
		Success: true,
		Data:    entries,
		Count:   len(entries),
		Total:   total,
		Limit:   limit,
	})
}

// Archive consulta o changelog arquivado
// @Summary Consulta o changelog arquivado
// @Tags changelog
// @Produce json
// @Param type query string false "Tipo da alteração"
// @Param item_id query string false "ID do item alterado"
// @Param limit query int false "Quantidade máxima"
// @Success 200 {object} dto.DataResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/changelog/archive [get]
func (c *ChangelogController) Archive(ctx *gin.Context) {
	if c.archive == nil {
		archiveDisabled(ctx)
		return
	}

	filter := repository.ArchiveFilter{
		Type:   event.ChangeType(ctx.Query("type")),
		ItemID: ctx.Query("item_id"),
	}
	if limit := queryLimit(ctx); limit != nil {
		filter.Limit = *limit
	}

	entries, err := c.archive.List(ctx, filter)
	if err != nil {
		respondError(ctx, c.logger, err, "")
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(entries, len(entries)))
}

// Stats conta as entradas arquivadas por tipo
// @Summary Totais do changelog arquivado por tipo
// @Tags changelog
// @Produce json
// @Success 200 {object} dto.DataResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/changelog/stats [get]
func (c *ChangelogController) Stats(ctx *gin.Context) {
	if c.archive == nil {
		archiveDisabled(ctx)
		return
	}

	counts, err := c.archive.Count(ctx)
	if err != nil {
		respondError(ctx, c.logger, err, "")
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(counts, len(counts)))
}

func archiveDisabled(ctx *gin.Context) {
	ctx.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(http.StatusServiceUnavailable,
		"Changelog archive is disabled", "Enable archive.enabled to query archived entries"))
}

// queryLimit lê ?limit; valores ausentes ou inválidos contam como sem limite
func queryLimit(ctx *gin.Context) *int {
	raw, ok := ctx.GetQuery("limit")
	if !ok {
		return nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &limit
}
