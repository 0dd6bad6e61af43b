package middleware

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"retail-analytics/internal/apperror"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

func renderError(c *gin.Context, kind apperror.Kind, message string) {
	status := kind.HTTPStatus()
	c.JSON(status, errorBody{
		Error:      kind.Name(),
		Message:    message,
		StatusCode: status,
	})
}

// ErrorHandler renders errors pushed onto the context by handlers and
// middleware. Unclassified errors become 500s; their message is only exposed
// when debug is set.
func ErrorHandler(logger *zap.Logger, debug bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		kind, classified := apperror.KindOf(err)
		message := apperror.MessageOf(err)
		if !classified && debug {
			message = err.Error()
		}

		fields := []zap.Field{
			zap.String("kind", kind.Name()),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		}
		if kind.HTTPStatus() >= http.StatusInternalServerError {
			logger.Error("request failed", fields...)
		} else {
			logger.Warn("request rejected", fields...)
		}

		renderError(c, kind, message)
	}
}

// Recovery converts panics into the standard JSON error response.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		renderError(c, apperror.KindInternal, "internal server error")
		c.Abort()
	})
}

// NotFoundHandler is the JSON 404 for unmatched routes.
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorBody{
			Error:      apperror.KindNotFound.Name(),
			Message:    "route not found",
			StatusCode: http.StatusNotFound,
		})
	}
}

// MethodNotAllowedHandler is the JSON 405 for known routes with the wrong verb.
func MethodNotAllowedHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, errorBody{
			Error:      "MethodNotAllowedError",
			Message:    "method not allowed",
			StatusCode: http.StatusMethodNotAllowed,
		})
	}
}
