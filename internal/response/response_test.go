package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peershare/service-rental/internal/domain"
)

func run(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/bookings", nil)
	Error(c, err)
	return w
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"rent time", domain.NewRentTimeError("bad period"), http.StatusBadRequest},
		{"item unavailable", domain.NewItemUnavailableError("i-1"), http.StatusBadRequest},
		{"own item", domain.NewOwnItemError(), http.StatusBadRequest},
		{"already decided", domain.NewAlreadyDecidedError("b-1"), http.StatusBadRequest},
		{"validation", domain.NewValidationError("bad input"), http.StatusBadRequest},
		{"not found", domain.NewNotFoundError("item", "i-1"), http.StatusNotFound},
		{"ownership hides as not found", domain.NewOwnershipError("not yours"), http.StatusNotFound},
		{"conflict", domain.NewConflictError("duplicate email"), http.StatusConflict},
		{"unknown state", domain.NewUnknownStateError("PENDING"), http.StatusInternalServerError},
		{"non-domain error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := run(t, tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestErrorEnvelopeBody(t *testing.T) {
	w := run(t, domain.NewNotFoundError("item", "i-1"))

	var body ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusNotFound, body.Status)
	assert.Equal(t, "Not Found", body.Error)
	assert.Equal(t, "item i-1 not found", body.Message)
	assert.Equal(t, "/bookings", body.Path)
	assert.False(t, body.Timestamp.IsZero())
}

func TestUnknownStateKeepsMinimalBody(t *testing.T) {
	w := run(t, domain.NewUnknownStateError("PENDING"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"error": "Unknown state: PENDING"}, body)
}
