package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dealerhub/social-publisher/pkg/apperrors"
)

// renderError maps the error taxonomy onto HTTP status codes. Unknown
// errors become a 500 with a generic message so internals never leak.
func (s *Server) renderError(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)

	status := http.StatusInternalServerError
	switch kind {
	case apperrors.KindValidation:
		status = http.StatusBadRequest
	case apperrors.KindNotFound:
		status = http.StatusNotFound
	case apperrors.KindConflict:
		status = http.StatusConflict
	case apperrors.KindGeneration, apperrors.KindPublish, apperrors.KindCollection:
		status = http.StatusBadGateway
	case apperrors.KindUnavailable:
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		s.Logger.Error("Unclassified error in handler", "path", c.FullPath(), "error", err)
		c.JSON(status, gin.H{"kind": "internal", "message": "internal server error"})
		return
	}

	c.JSON(status, gin.H{"kind": kind, "message": apperrors.Message(err)})
}
