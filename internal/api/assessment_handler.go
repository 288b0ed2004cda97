package api

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/nevo-app/nevo-api/internal/api/shared"
	"github.com/nevo-app/nevo-api/internal/domain"
)

// AssessmentService defines the assessment operations the handler needs.
type AssessmentService interface {
	SubmitAssessment(ctx context.Context, studentID uuid.UUID, answers map[string]string, computedProfile string) (*domain.Assessment, error)
	GetLatestAssessment(ctx context.Context, studentID uuid.UUID) (*domain.Assessment, error)
}

// AssessmentHandler handles assessment-related API requests.
type AssessmentHandler struct {
	assessmentService AssessmentService
	validator         *validator.Validate
}

// NewAssessmentHandler creates a new AssessmentHandler with the given dependencies.
func NewAssessmentHandler(assessmentService AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{
		assessmentService: assessmentService,
		validator:         validator.New(),
	}
}

// Submit handles POST /api/assessments.
func (h *AssessmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req AssessmentSubmission

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		HandleAPIError(w, r,
			domain.NewValidationError("studentId", "has invalid format", domain.ErrInvalidID), "")
		return
	}

	assessment, err := h.assessmentService.SubmitAssessment(r.Context(),
		studentID, req.Answers, req.ComputedProfile)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, AssessmentResponse{
		AssessmentID:    assessment.ID.String(),
		Profile:         string(assessment.ComputedProfile),
		Personalization: assessment.Personalization,
		CompletedAt:     assessment.CompletedAt,
	})
}

// GetLatest handles GET /api/students/{studentID}/assessment.
func (h *AssessmentHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	studentID, err := getPathUUID(r, "studentID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	assessment, err := h.assessmentService.GetLatestAssessment(r.Context(), studentID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AssessmentDetailResponse{
		ID:              assessment.ID.String(),
		StudentID:       assessment.StudentID.String(),
		Answers:         assessment.Answers,
		ComputedProfile: string(assessment.ComputedProfile),
		Personalization: assessment.Personalization,
		CompletedAt:     assessment.CompletedAt,
	})
}
