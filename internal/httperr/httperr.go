package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func StatusFor(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict, KindAlreadyInactive:
		return http.StatusConflict
	case KindValidation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Respond renders a core error. Storage failures are logged with their
// cause and rendered opaquely.
func Respond(c *gin.Context, log *zap.Logger, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		be = BusinessError{Kind: KindStorage, Code: "storage_failure", Err: err}
	}

	status := StatusFor(be.Kind)
	if status == http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("code", be.Code),
			zap.Error(be.Err),
		)
		Internal(c, be.Code, "internal error")
		return
	}

	Write(c, status, be.Code, string(be.Kind))
}
