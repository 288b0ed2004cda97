package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nevo-app/nevo-api/internal/domain"
	"github.com/nevo-app/nevo-api/internal/generation"
	"github.com/nevo-app/nevo-api/internal/platform/logger"
	"github.com/nevo-app/nevo-api/internal/store"
)

// Progress tracking is not implemented yet, so the class overview carries
// the same placeholder aggregates the dashboard has always shown.
const (
	placeholderAvgProgressPercent    = 45
	placeholderCompletionRatePercent = 60
)

// StudentSummary is the student dashboard read model.
type StudentSummary struct {
	FullName         string
	XP               int
	StreakDays       int
	ProfileCode      string
	ProfileTitle     string
	ProfileDesc      string
	FeaturedLessonID string
}

// ClassOverview is the teacher dashboard read model.
type ClassOverview struct {
	TotalStudents         int
	ActiveLessons         int
	AvgProgressPercent    int
	CompletionRatePercent int
}

// ParentGuidance is the parent dashboard read model. OptimalWindows holds
// "start"/"end" pairs in HH:MM.
type ParentGuidance struct {
	ProfileTitle      string
	Recommendations   []string
	OptimalWindows    []LearningWindow
	EncouragementTips []string
}

// LearningWindow is one recommended study time range.
type LearningWindow struct {
	Start string
	End   string
}

// DashboardService assembles the read models behind the student, teacher,
// and parent dashboards.
type DashboardService struct {
	userStore   store.UserStore
	lessonStore store.LessonStore
	guidanceGen generation.GuidanceGenerator
	logger      *slog.Logger
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(
	userStore store.UserStore,
	lessonStore store.LessonStore,
	guidanceGen generation.GuidanceGenerator,
	logger *slog.Logger,
) *DashboardService {
	if userStore == nil {
		panic("userStore cannot be nil")
	}
	if lessonStore == nil {
		panic("lessonStore cannot be nil")
	}
	if guidanceGen == nil {
		panic("guidanceGen cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &DashboardService{
		userStore:   userStore,
		lessonStore: lessonStore,
		guidanceGen: guidanceGen,
		logger:      logger.With(slog.String("component", "dashboard_service")),
	}
}

// StudentSummary builds the student dashboard summary. A student who has
// not completed the assessment yet gets the "Unknown" profile placeholder.
func (s *DashboardService) StudentSummary(
	ctx context.Context,
	studentID uuid.UUID,
) (*StudentSummary, error) {
	user, err := s.userStore.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	code := "Unknown"
	if user.LearningProfileCode != "" {
		code = string(user.LearningProfileCode)
	}

	return &StudentSummary{
		FullName:         user.FullName,
		XP:               user.XP,
		StreakDays:       user.Streak,
		ProfileCode:      code,
		ProfileTitle:     code + " Learner",
		ProfileDesc:      "Your AI adapted profile",
		FeaturedLessonID: "none",
	}, nil
}

// ClassOverview builds the teacher dashboard aggregates.
func (s *DashboardService) ClassOverview(
	ctx context.Context,
	teacherID uuid.UUID,
) (*ClassOverview, error) {
	totalStudents, err := s.userStore.CountByRole(ctx, domain.RoleStudent)
	if err != nil {
		return nil, err
	}

	activeLessons, err := s.lessonStore.CountByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	return &ClassOverview{
		TotalStudents:         totalStudents,
		ActiveLessons:         activeLessons,
		AvgProgressPercent:    placeholderAvgProgressPercent,
		CompletionRatePercent: placeholderCompletionRatePercent,
	}, nil
}

// ParentGuidance loads the child and asks the completion service for
// support advice keyed to the child's profile. Children without an
// assessed profile are treated as Visual learners.
func (s *DashboardService) ParentGuidance(
	ctx context.Context,
	childID uuid.UUID,
) (*ParentGuidance, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	child, err := s.userStore.GetByID(ctx, childID)
	if err != nil {
		return nil, err
	}

	profile := child.LearningProfileCode
	if profile == "" {
		profile = domain.ProfileVisual
	}

	guidance := s.guidanceGen.GenerateGuidance(ctx, generation.GuidanceRequest{
		ChildName:      child.FullName,
		Profile:        profile,
		RecentActivity: "High engagement",
	})

	log.Debug("parent guidance generated",
		slog.String("child_id", childID.String()),
		slog.String("profile", string(profile)))

	return &ParentGuidance{
		ProfileTitle:      profile.Title(),
		Recommendations:   guidance.Recommendations,
		OptimalWindows:    []LearningWindow{{Start: "16:00", End: "18:00"}},
		EncouragementTips: guidance.EncouragementTips,
	}, nil
}
