package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wordbook/wordbook/internal/word"
	"github.com/wordbook/wordbook/internal/word/service"
	"github.com/wordbook/wordbook/pkg/logger"
)

// SuccessMessage is returned in the envelope when a word was stored.
const SuccessMessage = "Word added successfully"

// Envelope is the uniform response of the word API. Callers must check Success;
// Word is only set on success and carries the stored record.
type Envelope struct {
	Message string     `json:"message"`
	Success bool       `json:"success"`
	Word    *word.Word `json:"word,omitempty"`
}

// RegisterWordRoutes mounts POST /api/word. Any other method on an /api path
// is answered with 405 and a failure envelope; page paths get a plain 405.
func RegisterWordRoutes(r *gin.Engine, svc service.Service, mw ...gin.HandlerFunc) {
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusMethodNotAllowed, Envelope{Message: "method not allowed", Success: false})
			return
		}
		c.String(http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	})

	api := r.Group("/api", mw...)
	api.POST("/word", createWord(svc))
}

func createWord(svc service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in word.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			err = fmt.Errorf("%w: %v", word.ErrMalformedRequest, err)
			logger.WithError(err).Warn("rejecting word submission")
			c.JSON(http.StatusBadRequest, Envelope{Message: err.Error(), Success: false})
			return
		}

		w, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			// store failures are reported in the envelope only
			status := http.StatusOK
			if errors.Is(err, word.ErrInvalidInput) {
				status = http.StatusBadRequest
			} else {
				logger.WithError(err).WithField("origin", in.Origin).Error("failed to add word")
			}
			c.JSON(status, Envelope{Message: err.Error(), Success: false})
			return
		}
		c.JSON(http.StatusOK, Envelope{Message: SuccessMessage, Success: true, Word: w})
	}
}
