package api

import (
	"time"

	"github.com/nevo-app/nevo-api/internal/domain"
	"github.com/nevo-app/nevo-api/internal/service"
)

// Common request/response structures

// SignupRequest defines the payload for the account registration endpoint.
type SignupRequest struct {
	Role     string `json:"role"     validate:"required,oneof=student teacher parent"`
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// UserResponse is the client-facing view of a user account.
type UserResponse struct {
	ID                  string `json:"id"`
	Role                string `json:"role"`
	FullName            string `json:"fullName"`
	Email               string `json:"email"`
	AssessmentCompleted bool   `json:"assessmentCompleted"`
	XP                  int    `json:"xp"`
	Streak              int    `json:"streak"`
	LearningProfileCode string `json:"learningProfileCode,omitempty"`
	DefaultRoute        string `json:"defaultRoute"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// newUserResponse maps a domain user to its client-facing view.
func newUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:                  user.ID.String(),
		Role:                string(user.Role),
		FullName:            user.FullName,
		Email:               user.Email,
		AssessmentCompleted: user.AssessmentCompleted,
		XP:                  user.XP,
		Streak:              user.Streak,
		LearningProfileCode: string(user.LearningProfileCode),
		DefaultRoute:        user.DefaultRoute(),
	}
}

// AssessmentSubmission defines the payload for the assessment submit endpoint.
type AssessmentSubmission struct {
	StudentID       string            `json:"studentId"       validate:"required,uuid"`
	Answers         map[string]string `json:"answers"         validate:"required,min=1"`
	ComputedProfile string            `json:"computedProfile" validate:"required"`
}

// AssessmentResponse defines the response for the assessment submit endpoint.
type AssessmentResponse struct {
	AssessmentID    string                 `json:"assessmentId"`
	Profile         string                 `json:"profile"`
	Personalization domain.Personalization `json:"personalization"`
	CompletedAt     time.Time              `json:"completedAt"`
}

// AssessmentDetailResponse is the stored assessment record view.
type AssessmentDetailResponse struct {
	ID              string                 `json:"id"`
	StudentID       string                 `json:"studentId"`
	Answers         map[string]string      `json:"answers"`
	ComputedProfile string                 `json:"computedProfile"`
	Personalization domain.Personalization `json:"personalization"`
	CompletedAt     time.Time              `json:"completedAt"`
}

// CreateLessonRequest defines the payload for the lesson upload endpoint.
type CreateLessonRequest struct {
	Title   string `json:"title"   validate:"required"`
	Subject string `json:"subject" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// CreateLessonResponse defines the response for the lesson upload endpoint.
// PersonalizationJobID is always "done": variants are generated inline
// before the lesson record is written.
type CreateLessonResponse struct {
	LessonID             string `json:"lessonId"`
	PersonalizationJobID string `json:"personalizationJobId"`
	Status               string `json:"status"`
}

// LessonDetailResponse is one lesson resolved to the slide deck for the
// requesting student's profile.
type LessonDetailResponse struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Subject  string         `json:"subject"`
	XPReward int            `json:"xpReward"`
	Profile  string         `json:"profile"`
	Slides   []domain.Slide `json:"slides"`
}

// LessonCardResponse is the list-view card for a lesson.
type LessonCardResponse struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Subject         string `json:"subject"`
	Status          string `json:"status"`
	ProgressPercent int    `json:"progressPercent"`
	XPReward        int    `json:"xpReward"`
	DurationMinutes int    `json:"durationMinutes"`
}

// StudentSummaryResponse is the student dashboard payload.
type StudentSummaryResponse struct {
	FullName         string                  `json:"fullName"`
	XP               int                     `json:"xp"`
	StreakDays       int                     `json:"streakDays"`
	LearningProfile  LearningProfileResponse `json:"learningProfile"`
	FeaturedLessonID string                  `json:"featuredLessonId"`
}

// LearningProfileResponse describes the student's assessed profile.
type LearningProfileResponse struct {
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ClassOverviewResponse is the teacher dashboard payload.
type ClassOverviewResponse struct {
	Summary  ClassSummaryResponse `json:"summary"`
	Students []UserResponse       `json:"students"`
}

// ClassSummaryResponse holds the teacher dashboard aggregates.
type ClassSummaryResponse struct {
	TotalStudents         int `json:"totalStudents"`
	AvgProgressPercent    int `json:"avgProgressPercent"`
	ActiveLessons         int `json:"activeLessons"`
	CompletionRatePercent int `json:"completionRatePercent"`
}

// GuidanceResponse is the parent dashboard payload.
type GuidanceResponse struct {
	Profile                string                   `json:"profile"`
	Recommendations        []string                 `json:"recommendations"`
	OptimalLearningWindows []LearningWindowResponse `json:"optimalLearningWindows"`
	EncouragementTips      []string                 `json:"encouragementTips"`
}

// LearningWindowResponse is one recommended study time range.
type LearningWindowResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// newGuidanceResponse maps the service read model to the response payload.
func newGuidanceResponse(guidance *service.ParentGuidance) GuidanceResponse {
	windows := make([]LearningWindowResponse, 0, len(guidance.OptimalWindows))
	for _, w := range guidance.OptimalWindows {
		windows = append(windows, LearningWindowResponse{Start: w.Start, End: w.End})
	}
	return GuidanceResponse{
		Profile:                guidance.ProfileTitle,
		Recommendations:        guidance.Recommendations,
		OptimalLearningWindows: windows,
		EncouragementTips:      guidance.EncouragementTips,
	}
}
