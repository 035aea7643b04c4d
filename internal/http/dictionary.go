package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/vokabel/internal/dictionary"
)

type DictionaryController struct {
	client dictionary.Client
}

func NewDictionaryController(client dictionary.Client) *DictionaryController {
	return &DictionaryController{client: client}
}

type LookupResponse struct {
	*dictionary.LookupResult
	Suggestions []string `json:"suggestions"`
}

// Lookup handles GET /api/dictionary/:term
func (dc *DictionaryController) Lookup(c *gin.Context) {
	if dc.client == nil {
		respondError(c, http.StatusServiceUnavailable, "dictionary lookup is disabled")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	result, err := dc.client.Lookup(ctx, c.Param("term"))
	if errors.Is(err, dictionary.ErrNotFound) {
		respondNotFound(c, "term")
		return
	}
	if err != nil {
		requestLogger(c).Warn("Dictionary lookup failed", "source", dc.client.Name(), "error", err)
		respondError(c, http.StatusBadGateway, "dictionary lookup failed")
		return
	}

	c.JSON(http.StatusOK, LookupResponse{LookupResult: result, Suggestions: result.Suggestions()})
}
