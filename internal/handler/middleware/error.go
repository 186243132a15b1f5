package middleware

import (
	"log/slog"
	"net/http"

	"restaurant-booking/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last public error when a handler recorded one
// without writing a body. Private errors never reach the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}
		// Search backward through the error stack
		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]
			if !err.IsType(gin.ErrorTypePublic) {
				continue
			}
			if resp, ok := err.Meta.(httperr.Response); ok {
				c.JSON(resp.Status, resp)
				return
			}
		}

		slog.ErrorContext(c.Request.Context(), "unhandled request error", "errors", c.Errors.String())
		c.JSON(http.StatusInternalServerError, internalServerError(c))
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.ErrorContext(c.Request.Context(), "recovered from panic", "error", err, "path", c.Request.URL.Path)
				c.AbortWithStatusJSON(http.StatusInternalServerError, internalServerError(c))
			}
		}()
		c.Next()
	}
}

func internalServerError(c *gin.Context) httperr.Response {
	return httperr.New(c, http.StatusInternalServerError, "Internal server error", nil)
}
