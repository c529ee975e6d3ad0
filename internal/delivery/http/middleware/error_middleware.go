package middleware

import (
	"errors"
	"net/http"

	"go-dogwalking-backend/internal/delivery/http/response"
	"go-dogwalking-backend/pkg/apperror"
	"go-dogwalking-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			response.Error(c, appErr.Code, appErr.Message, nil)
			return
		}

		// Never expose internal error details to clients. Log server-side,
		// send a generic message.
		logger.Log.Error("Unhandled request error", "error", err, "path", c.FullPath())
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
