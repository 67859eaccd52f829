package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/itemwatch/itemwatch/internal/domain/dto"
	"github.com/itemwatch/itemwatch/internal/logger"
)

// ErrorHandler is a Gin middleware that converts errors attached to the
// context during request handling into a standardized JSON error response.
//
// Behavior:
//   - Lets the request proceed first.
//   - If any handler recorded errors via c.Error(...) and no response was
//     written yet, responds with 500 and the last error's message.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.ErrorHandler)
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	logger.L().Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled request error")
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", err))
}

// AbortWithError writes a standardized JSON error response with the given
// status and stops the handler chain.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
