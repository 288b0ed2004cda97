package api

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/nevo-app/nevo-api/internal/api/shared"
	"github.com/nevo-app/nevo-api/internal/domain"
)

// LessonService defines the lesson operations the lesson handler needs.
type LessonService interface {
	CreateLesson(ctx context.Context, teacherID uuid.UUID, title, subject, content string) (*domain.Lesson, error)
	GetLessonDetail(ctx context.Context, lessonID uuid.UUID, profile domain.LearningProfileCode) (*domain.Lesson, []domain.Slide, error)
	ListReadyLessons(ctx context.Context) ([]*domain.Lesson, error)
}

// LessonHandler handles lesson-related API requests.
type LessonHandler struct {
	lessonService LessonService
	validator     *validator.Validate
}

// NewLessonHandler creates a new LessonHandler with the given dependencies.
func NewLessonHandler(lessonService LessonService) *LessonHandler {
	return &LessonHandler{
		lessonService: lessonService,
		validator:     validator.New(),
	}
}

// CreateLesson handles POST /api/teachers/{teacherID}/lessons. Variant
// generation runs inline, so the response reports the personalization job
// as already done.
func (h *LessonHandler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	teacherID, err := getPathUUID(r, "teacherID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req CreateLessonRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	lesson, err := h.lessonService.CreateLesson(r.Context(),
		teacherID, req.Title, req.Subject, req.Content)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, CreateLessonResponse{
		LessonID:             lesson.ID.String(),
		PersonalizationJobID: "done",
		Status:               string(lesson.Status),
	})
}

// GetLesson handles GET /api/lessons/{lessonID}?profile=Visual. The
// profile query parameter defaults to Visual; unrecognized codes are
// rejected before any lookup.
func (h *LessonHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	lessonID, err := getPathUUID(r, "lessonID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	profileParam := r.URL.Query().Get("profile")
	if profileParam == "" {
		profileParam = string(domain.ProfileVisual)
	}

	profile, err := domain.ParseProfileCode(profileParam)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	lesson, slides, err := h.lessonService.GetLessonDetail(r.Context(), lessonID, profile)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LessonDetailResponse{
		ID:       lesson.ID.String(),
		Title:    lesson.Title,
		Subject:  lesson.Subject,
		XPReward: lesson.XPReward,
		Profile:  string(profile),
		Slides:   slides,
	})
}

// ListStudentLessons handles GET /api/students/{studentID}/lessons. Every
// ready lesson is presented as a fresh card; per-student progress is not
// tracked yet.
func (h *LessonHandler) ListStudentLessons(w http.ResponseWriter, r *http.Request) {
	if _, err := getPathUUID(r, "studentID"); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	lessons, err := h.lessonService.ListReadyLessons(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	cards := make([]LessonCardResponse, 0, len(lessons))
	for _, lesson := range lessons {
		cards = append(cards, LessonCardResponse{
			ID:              lesson.ID.String(),
			Title:           lesson.Title,
			Subject:         lesson.Subject,
			Status:          "new",
			ProgressPercent: 0,
			XPReward:        lesson.XPReward,
			DurationMinutes: lesson.DurationMinutes,
		})
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cards)
}
