package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/vokabel/internal/annotation"
	"github.com/mrlokans/vokabel/internal/importers"
	"github.com/mrlokans/vokabel/internal/services"
)

// URLFetcher turns a web page into a lesson draft.
type URLFetcher interface {
	Fetch(ctx context.Context, rawURL string) (importers.Draft, error)
}

type LessonsController struct {
	study   *services.StudyService
	fetcher URLFetcher
}

func NewLessonsController(study *services.StudyService, fetcher URLFetcher) *LessonsController {
	return &LessonsController{study: study, fetcher: fetcher}
}

// SaveLessonRequest is the request body for creating or updating a lesson.
type SaveLessonRequest struct {
	ID        *uint             `json:"id,omitempty"`
	Title     string            `json:"title"`
	Content   string            `json:"content"`
	Dict      map[string]string `json:"dict"`
	SourceURL string            `json:"source_url,omitempty"`
}

// DeleteRequest selects a record to delete when the id is sent in the body.
type DeleteRequest struct {
	ID *uint `json:"id"`
}

// ImportLessonRequest is the request body for importing a lesson from a URL.
type ImportLessonRequest struct {
	URL string `json:"url" binding:"required"`
}

// AnnotatedLessonResponse is a lesson text split into highlighted runs.
type AnnotatedLessonResponse struct {
	LessonID   uint                   `json:"lesson_id"`
	Title      string                 `json:"title"`
	Paragraphs []annotation.Paragraph `json:"paragraphs"`
}

// List handles GET /api/lessons
func (lc *LessonsController) List(c *gin.Context) {
	lessons, err := lc.study.ListLessons(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list lessons")
		return
	}
	c.JSON(http.StatusOK, lessons)
}

// Get handles GET /api/lessons/:id
func (lc *LessonsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	lesson, err := lc.study.GetLesson(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "get lesson")
		return
	}
	c.JSON(http.StatusOK, lesson)
}

// Save handles POST /api/lessons
func (lc *LessonsController) Save(c *gin.Context) {
	var req SaveLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	lesson, err := lc.study.SaveLesson(c.Request.Context(), services.LessonInput{
		ID:        req.ID,
		Title:     req.Title,
		Content:   req.Content,
		Dict:      req.Dict,
		SourceURL: req.SourceURL,
	})
	if err != nil {
		respondServiceError(c, err, "save lesson")
		return
	}
	respondCreated(c, lesson)
}

// Delete handles DELETE /api/lessons/:id and DELETE /api/lessons with an
// {"id"} body.
func (lc *LessonsController) Delete(c *gin.Context) {
	var id uint
	if c.Param("id") != "" {
		var ok bool
		if id, ok = parseIDParam(c, "id"); !ok {
			return
		}
	} else {
		var req DeleteRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.ID == nil {
			respondBadRequest(c, "id required")
			return
		}
		id = *req.ID
	}

	if err := lc.study.DeleteLesson(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "delete lesson")
		return
	}
	c.Status(http.StatusNoContent)
}

// Annotated handles GET /api/lessons/:id/annotated. With ?format=html the
// lesson is returned as an HTML fragment.
func (lc *LessonsController) Annotated(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	lesson, paragraphs, err := lc.study.AnnotateLesson(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "annotate lesson")
		return
	}

	if c.Query("format") == "html" {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(annotation.RenderHTML(paragraphs)))
		return
	}
	c.JSON(http.StatusOK, AnnotatedLessonResponse{
		LessonID:   lesson.ID,
		Title:      lesson.Title,
		Paragraphs: paragraphs,
	})
}

// Import handles POST /api/lessons/import
// Fetches the page, extracts its readable text and stores it as a lesson.
func (lc *LessonsController) Import(c *gin.Context) {
	if lc.fetcher == nil {
		respondError(c, http.StatusServiceUnavailable, "lesson import is not configured")
		return
	}

	var req ImportLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "url required")
		return
	}

	draft, err := lc.fetcher.Fetch(c.Request.Context(), req.URL)
	switch {
	case errors.Is(err, importers.ErrUnsupportedURL):
		respondBadRequest(c, err.Error())
		return
	case errors.Is(err, importers.ErrTooLarge):
		respondError(c, http.StatusRequestEntityTooLarge, err.Error())
		return
	case errors.Is(err, importers.ErrNoContent):
		respondError(c, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		requestLogger(c).Warn("Lesson import fetch failed", "url", req.URL, "error", err)
		respondError(c, http.StatusBadGateway, "failed to fetch page")
		return
	}

	lesson, err := lc.study.ImportLesson(c.Request.Context(), draft)
	if err != nil {
		respondServiceError(c, err, "import lesson")
		return
	}
	respondCreated(c, lesson)
}
