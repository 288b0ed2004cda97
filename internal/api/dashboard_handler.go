package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/nevo-app/nevo-api/internal/api/shared"
	"github.com/nevo-app/nevo-api/internal/service"
)

// DashboardService defines the read-model operations the dashboard
// handler needs.
type DashboardService interface {
	StudentSummary(ctx context.Context, studentID uuid.UUID) (*service.StudentSummary, error)
	ClassOverview(ctx context.Context, teacherID uuid.UUID) (*service.ClassOverview, error)
	ParentGuidance(ctx context.Context, childID uuid.UUID) (*service.ParentGuidance, error)
}

// DashboardHandler handles the student, teacher, and parent dashboard
// API requests.
type DashboardHandler struct {
	dashboardService DashboardService
}

// NewDashboardHandler creates a new DashboardHandler with the given dependencies.
func NewDashboardHandler(dashboardService DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// StudentSummary handles GET /api/students/{studentID}/summary.
func (h *DashboardHandler) StudentSummary(w http.ResponseWriter, r *http.Request) {
	studentID, err := getPathUUID(r, "studentID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	summary, err := h.dashboardService.StudentSummary(r.Context(), studentID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, StudentSummaryResponse{
		FullName:   summary.FullName,
		XP:         summary.XP,
		StreakDays: summary.StreakDays,
		LearningProfile: LearningProfileResponse{
			Code:        summary.ProfileCode,
			Title:       summary.ProfileTitle,
			Description: summary.ProfileDesc,
		},
		FeaturedLessonID: summary.FeaturedLessonID,
	})
}

// ClassOverview handles GET /api/teachers/{teacherID}/class.
func (h *DashboardHandler) ClassOverview(w http.ResponseWriter, r *http.Request) {
	teacherID, err := getPathUUID(r, "teacherID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	overview, err := h.dashboardService.ClassOverview(r.Context(), teacherID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ClassOverviewResponse{
		Summary: ClassSummaryResponse{
			TotalStudents:         overview.TotalStudents,
			AvgProgressPercent:    overview.AvgProgressPercent,
			ActiveLessons:         overview.ActiveLessons,
			CompletionRatePercent: overview.CompletionRatePercent,
		},
		Students: []UserResponse{},
	})
}

// ParentGuidance handles GET /api/parents/{parentID}/children/{childID}/guidance.
func (h *DashboardHandler) ParentGuidance(w http.ResponseWriter, r *http.Request) {
	if _, err := getPathUUID(r, "parentID"); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	childID, err := getPathUUID(r, "childID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	guidance, err := h.dashboardService.ParentGuidance(r.Context(), childID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newGuidanceResponse(guidance))
}
