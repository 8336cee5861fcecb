package middleware

import (
	"errors"
	"net/http"

	"go-benefit-recommender/internal/delivery/http/response"
	"go-benefit-recommender/pkg/apperror"
	"go-benefit-recommender/pkg/logger"
	"go-benefit-recommender/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		var validationErrs validator.ValidationErrors
		switch {
		case errors.As(err, &validationErrs):
			response.Error(c, http.StatusBadRequest, "Validation failed", validation.FormatValidationErrors(validationErrs))
		case errors.As(err, &appErr):
			if appErr.Code >= http.StatusInternalServerError && appErr.Err != nil {
				logger.Log.Error("Request failed", "request_id", c.GetString(RequestIDKey), "path", c.FullPath(), "error", appErr.Err)
			}
			response.Error(c, appErr.Code, appErr.Message, nil)
		default:
			// Never expose internal error details to clients
			logger.Log.Error("Internal Server Error", "request_id", c.GetString(RequestIDKey), "path", c.FullPath(), "error", err)
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
		}
	}
}
