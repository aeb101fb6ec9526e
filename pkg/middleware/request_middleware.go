package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hugohenrick/emceep/pkg/logger"
)

// RequestIDHeader é o cabeçalho usado para propagar o id da requisição
const RequestIDHeader = "X-Request-ID"

type contextKey string

const requestIDKey contextKey = "request_id"

// WithRequestID define o id da requisição no contexto
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext obtém o id da requisição do contexto
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// RequestID reaproveita o X-Request-ID recebido ou gera um novo, e o devolve
// na resposta.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		c.Set(string(requestIDKey), id)
		c.Request = c.Request.WithContext(WithRequestID(c.Request.Context(), id))
		c.Header(RequestIDHeader, id)

		c.Next()
	}
}

// AccessLog registra cada requisição depois que ela termina
func AccessLog(log logger.Logger) gin.HandlerFunc {
	log = logger.OrNop(log)
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		keysAndValues := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"request_id", c.GetString(string(requestIDKey)),
		}
		if len(c.Errors) > 0 {
			keysAndValues = append(keysAndValues, "errors", c.Errors.String())
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Error("request completed", keysAndValues...)
		case status >= 400:
			log.Warn("request completed", keysAndValues...)
		default:
			log.Debug("request completed", keysAndValues...)
		}
	}
}
