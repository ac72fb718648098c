package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/validation"
)

type MessageResponse struct {
	Message string `json:"message" example:"Author has been successfully deleted"`
}

func writeError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, validation.ErrorResponse{
		Code:    code,
		Message: message,
		Errors:  nil,
	})
}

func writeFieldError(c *gin.Context, status int, code, message string, fe validation.FieldError) {
	c.AbortWithStatusJSON(status, validation.ErrorResponse{
		Code:    code,
		Message: message,
		Errors:  []validation.FieldError{fe},
	})
}

// writeStoreError logs err with the request scoped logger and answers with a
// generic message; store details never reach the client.
func writeStoreError(c *gin.Context, err error, status int, code, message string) {
	zerolog.Ctx(c.Request.Context()).Error().
		Err(err).
		Str("code", code).
		Msg(message)

	writeError(c, status, code, message)
}
