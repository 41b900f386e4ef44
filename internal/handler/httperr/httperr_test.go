//go:build unit

package httperr

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbortWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(RequestIDKey, "req-1")

	AbortWithError(c, http.StatusConflict, errors.New("slot taken"), "Booking conflict", map[string]int{"count": 1})

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusConflict, w.Code)
	require.Len(t, c.Errors, 1)
	assert.True(t, c.Errors[0].IsType(gin.ErrorTypePublic))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Booking conflict", body["error"].(map[string]any)["message"])
	assert.Equal(t, "req-1", body["request_id"])
	assert.EqualValues(t, 1, body["detail"].(map[string]any)["count"])
}

func TestAbortWithError_NilPanics(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Panics(t, func() {
		AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
	})
}
