package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/vokabel/internal/annotation"
	"github.com/mrlokans/vokabel/internal/services"
)

// BackfillEnqueuer queues a context backfill for the task workers.
type BackfillEnqueuer interface {
	EnqueueBackfill(lessonID *uint) (string, error)
}

type FlashcardsController struct {
	study    *services.StudyService
	enqueuer BackfillEnqueuer // nil runs backfills inline
}

func NewFlashcardsController(study *services.StudyService, enqueuer BackfillEnqueuer) *FlashcardsController {
	return &FlashcardsController{study: study, enqueuer: enqueuer}
}

// UpsertFlashcardRequest is the request body for creating or updating a
// flashcard.
type UpsertFlashcardRequest struct {
	Term     string              `json:"term"`
	Meaning  string              `json:"meaning"`
	LessonID *uint               `json:"lesson_id,omitempty"`
	Context  *annotation.Context `json:"context,omitempty"`
}

// DeleteFlashcardRequest selects cards by id, or by term. LessonID is kept
// raw so that an absent lesson_id (any lesson) differs from null (cards
// without a lesson).
type DeleteFlashcardRequest struct {
	ID       *uint           `json:"id"`
	Term     string          `json:"term"`
	LessonID json.RawMessage `json:"lesson_id"`
}

type BackfillRequest struct {
	LessonID *uint `json:"lesson_id,omitempty"`
}

// selector converts the request into a service selector.
func (r DeleteFlashcardRequest) selector() (services.FlashcardSelector, error) {
	sel := services.FlashcardSelector{ID: r.ID, Term: r.Term}
	raw := strings.TrimSpace(string(r.LessonID))
	switch raw {
	case "":
		sel.AnyLesson = true
	case "null", "0", `""`:
	default:
		var id uint
		if err := json.Unmarshal(r.LessonID, &id); err != nil {
			return sel, errors.New("invalid lesson_id")
		}
		sel.LessonID = &id
	}
	return sel, nil
}

// List handles GET /api/flashcards
func (fc *FlashcardsController) List(c *gin.Context) {
	lessonID, ok := parseOptionalQueryID(c, "lesson_id")
	if !ok {
		return
	}
	cards, err := fc.study.ListFlashcards(c.Request.Context(), lessonID)
	if err != nil {
		respondInternalError(c, err, "list flashcards")
		return
	}
	c.JSON(http.StatusOK, cards)
}

// Get handles GET /api/flashcards/:id
func (fc *FlashcardsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	card, err := fc.study.GetFlashcard(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "get flashcard")
		return
	}
	c.JSON(http.StatusOK, card)
}

// Review handles GET /api/flashcards/:id/review
func (fc *FlashcardsController) Review(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	review, err := fc.study.ReviewCard(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "review flashcard")
		return
	}
	c.JSON(http.StatusOK, review)
}

// Upsert handles POST /api/flashcards
func (fc *FlashcardsController) Upsert(c *gin.Context) {
	var req UpsertFlashcardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.LessonID != nil && *req.LessonID == 0 {
		req.LessonID = nil
	}

	card, created, err := fc.study.UpsertFlashcard(c.Request.Context(), services.FlashcardInput{
		Term:     req.Term,
		Meaning:  req.Meaning,
		LessonID: req.LessonID,
		Context:  req.Context,
	})
	if err != nil {
		respondServiceError(c, err, "upsert flashcard")
		return
	}
	requestLogger(c).Debug("Flashcard saved", "flashcard_id", card.ID, "created", created)
	respondCreated(c, card)
}

// Delete handles DELETE /api/flashcards/:id and DELETE /api/flashcards with
// an {"id"} or {"term", "lesson_id"} body.
func (fc *FlashcardsController) Delete(c *gin.Context) {
	var sel services.FlashcardSelector
	if c.Param("id") != "" {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		sel.ID = &id
	} else {
		var req DeleteFlashcardRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "id or term required")
			return
		}
		var err error
		if sel, err = req.selector(); err != nil {
			respondBadRequest(c, err.Error())
			return
		}
	}

	if _, err := fc.study.DeleteFlashcard(c.Request.Context(), sel); err != nil {
		respondServiceError(c, err, "delete flashcard")
		return
	}
	c.Status(http.StatusNoContent)
}

// Backfill handles POST /api/flashcards/backfill
// Queues the backfill when a task queue is available and runs it inline
// otherwise.
func (fc *FlashcardsController) Backfill(c *gin.Context) {
	var req BackfillRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "invalid request body")
			return
		}
	}

	if fc.enqueuer != nil {
		taskID, err := fc.enqueuer.EnqueueBackfill(req.LessonID)
		if err != nil {
			respondInternalError(c, err, "enqueue backfill")
			return
		}
		respondAccepted(c, "backfill enqueued", gin.H{"task_id": taskID})
		return
	}

	result, err := fc.study.BackfillContexts(c.Request.Context(), req.LessonID)
	if err != nil {
		respondInternalError(c, err, "backfill contexts")
		return
	}
	c.JSON(http.StatusOK, result)
}
