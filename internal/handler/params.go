package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stemsi/lessonlab-backend/internal/response"
)

// userID extracts and validates the :user_id path parameter. On failure it
// writes the error response and returns ok=false.
func userID(c *gin.Context) (string, bool) {
	id := c.Param("user_id")
	if id == "" || len(id) > 128 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return "", false
	}
	return id, true
}

// atOrNow reads the optional ?at=RFC3339 query parameter, defaulting to the
// current time. An unparseable value yields ok=false with the error already
// written.
func atOrNow(c *gin.Context) (time.Time, bool) {
	raw := c.Query("at")
	if raw == "" {
		return time.Now(), true
	}
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{
			"at": "must be an RFC3339 timestamp",
		})
		return time.Time{}, false
	}
	return at, true
}
