package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ByLCY/sigstudio/internal/editor"
	"github.com/ByLCY/sigstudio/internal/logo"
)

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

func (s *Server) respondError(c *gin.Context, status int, code, message string) {
	s.log.Warn("http.error",
		"status", status,
		"code", code,
		"message", message,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"request_id", c.GetString(requestIDKey),
	)
	c.AbortWithStatusJSON(status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

// respondErr 把领域错误映射为 HTTP 状态码与错误码。
func (s *Server) respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, editor.ErrProfileNotFound):
		s.respondError(c, http.StatusNotFound, "profile_not_found", err.Error())
	case errors.Is(err, editor.ErrLayoutNotFound):
		s.respondError(c, http.StatusNotFound, "layout_not_found", err.Error())
	case errors.Is(err, editor.ErrLastProfile):
		s.respondError(c, http.StatusConflict, "last_profile", err.Error())
	case errors.Is(err, editor.ErrNothingToCopy):
		s.respondError(c, http.StatusUnprocessableEntity, "nothing_to_copy", err.Error())
	case errors.Is(err, editor.ErrEmptyName):
		s.respondError(c, http.StatusBadRequest, "invalid_name", err.Error())
	case errors.Is(err, logo.ErrNotImage), errors.Is(err, logo.ErrEmpty):
		s.respondError(c, http.StatusUnsupportedMediaType, "invalid_logo", err.Error())
	case errors.Is(err, logo.ErrTooLarge):
		s.respondError(c, http.StatusRequestEntityTooLarge, "logo_too_large", err.Error())
	default:
		s.log.Error("request failed", slog.String("path", c.Request.URL.Path), slog.Any("error", err))
		s.respondError(c, http.StatusInternalServerError, "internal", "Unexpected server error")
	}
}
