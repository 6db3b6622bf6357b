package response

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/peershare/service-rental/internal/domain"
)

// ErrorEnvelope is the JSON error body returned for business failures.
type ErrorEnvelope struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

// Success writes a 200 response with the given payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent writes a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes a 400 error envelope with the given message.
func BadRequest(c *gin.Context, message string) {
	writeEnvelope(c, http.StatusBadRequest, message)
}

// Error converts a domain error into its HTTP representation. The unknown
// state error keeps its dedicated minimal body so resolver configuration
// gaps stay distinguishable from client errors.
func Error(c *gin.Context, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		writeEnvelope(c, http.StatusInternalServerError, "internal server error")
		return
	}

	switch de.Code {
	case domain.CodeUnknownState:
		c.JSON(http.StatusInternalServerError, gin.H{"error": de.Message})
	case domain.CodeNotFound, domain.CodeOwnership:
		writeEnvelope(c, http.StatusNotFound, de.Message)
	case domain.CodeConflict:
		writeEnvelope(c, http.StatusConflict, de.Message)
	case domain.CodeRentTime, domain.CodeItemUnavailable, domain.CodeOwnItem,
		domain.CodeAlreadyDecided, domain.CodeValidation:
		writeEnvelope(c, http.StatusBadRequest, de.Message)
	default:
		writeEnvelope(c, http.StatusInternalServerError, de.Message)
	}
}

func writeEnvelope(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorEnvelope{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Path:      c.Request.URL.Path,
	})
}
