package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/emceep/internal/adapter/api/dto"
	"github.com/hugohenrick/emceep/internal/domain/event"
	"github.com/hugohenrick/emceep/pkg/logger"
)

// respondError traduz erros do domínio para o status HTTP correspondente
func respondError(ctx *gin.Context, log logger.Logger, err error, notFound string) {
	switch {
	case errors.Is(err, event.ErrNotFound):
		if notFound == "" {
			notFound = err.Error()
		}
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, notFound, ""))
	case errors.Is(err, event.ErrInvalidField), errors.Is(err, event.ErrEmptyValue):
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid request", err.Error()))
	default:
		log.Error("request failed", "path", ctx.FullPath(), "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Internal server error", err.Error()))
	}
}

func badRequest(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid request", err.Error()))
}

// NotFound responde rotas inexistentes
func NotFound(ctx *gin.Context) {
	ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound,
		"Endpoint not found", "Please check the API documentation at /"))
}
