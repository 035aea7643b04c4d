package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/vokabel/internal/annotation"
)

// AnnotateController exposes the text routines without touching storage.
type AnnotateController struct{}

func NewAnnotateController() *AnnotateController {
	return &AnnotateController{}
}

type AnnotateRequest struct {
	Content string            `json:"content"`
	Dict    map[string]string `json:"dict"`
	Format  string            `json:"format,omitempty"` // "html" or empty
}

type AnnotateResponse struct {
	Paragraphs []annotation.Paragraph `json:"paragraphs"`
	HTML       string                 `json:"html,omitempty"`
}

type ContextRequest struct {
	Text string `json:"text"`
	Term string `json:"term"`
}

// ContextResponse carries a null context when the term does not occur.
type ContextResponse struct {
	Context *annotation.Context `json:"context"`
}

// Annotate handles POST /api/annotate
func (ac *AnnotateController) Annotate(c *gin.Context) {
	var req AnnotateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	paragraphs := annotation.Annotate(req.Content, annotation.FromMap(req.Dict))
	resp := AnnotateResponse{Paragraphs: paragraphs}
	if req.Format == "html" {
		resp.HTML = annotation.RenderHTML(paragraphs)
	}
	c.JSON(http.StatusOK, resp)
}

// Context handles POST /api/context
func (ac *AnnotateController) Context(c *gin.Context) {
	var req ContextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	var resp ContextResponse
	if ctx, ok := annotation.ExtractContext(req.Text, req.Term); ok {
		resp.Context = &ctx
	}
	c.JSON(http.StatusOK, resp)
}
