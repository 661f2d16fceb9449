package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/magala-news-api/internal/apperror"
	"github.com/rs/zerolog"
)

// respondError writes the wire error shape for an application error.
// Unclassified errors are logged and masked as 500s.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		if appErr.Kind == apperror.KindInternal || appErr.Kind == apperror.KindDatabase {
			log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		}

		body := gin.H{"message": appErr.Message}
		if appErr.Code != "" {
			body["code"] = appErr.Code
		}
		if len(appErr.Fields) > 0 {
			body["errors"] = appErr.Fields
		}
		c.JSON(appErr.StatusCode(), body)
		return
	}

	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unclassified error")
	c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
}

// idParam parses the :id path parameter. Writes a 400 and returns false on
// garbage input.
func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return 0, false
	}
	return id, true
}

// intQuery parses an optional integer query parameter, falling back to the
// given default on absence or garbage
func intQuery(c *gin.Context, name string, fallback int) int {
	if raw := c.Query(name); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}
