package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// RecommendedBreakIntervalMinutes is the break interval suggested in the
// personalization metadata attached to every assessment.
const RecommendedBreakIntervalMinutes = 15

// Assessment-specific validation errors.
var (
	ErrAssessmentIDEmpty        = errors.New("assessment ID cannot be empty")
	ErrAssessmentStudentIDEmpty = errors.New("assessment student ID cannot be empty")
	ErrAssessmentNoAnswers      = errors.New("assessment must have at least one answer")
	ErrAssessmentProfileInvalid = errors.New("assessment computed profile is not recognized")
)

// Personalization is the display metadata derived from a computed profile.
type Personalization struct {
	Title                           string `json:"title"`
	Description                     string `json:"description"`
	RecommendedBreakIntervalMinutes int    `json:"recommendedBreakIntervalMinutes"`
}

// Assessment is one completed learning-style assessment for a student.
// Records are append-only; the latest by CompletedAt is the authoritative
// current profile for the student.
type Assessment struct {
	ID              uuid.UUID           `json:"id"`
	StudentID       uuid.UUID           `json:"student_id"`
	Answers         map[string]string   `json:"answers"`
	ComputedProfile LearningProfileCode `json:"computed_profile"`
	Personalization Personalization     `json:"personalization"`
	CompletedAt     time.Time           `json:"completed_at"`
}

// NewAssessment creates a new Assessment for the given student, answers,
// and computed profile, stamping CompletedAt with the current time.
// Returns an error if validation fails.
func NewAssessment(
	studentID uuid.UUID,
	answers map[string]string,
	computedProfile LearningProfileCode,
) (*Assessment, error) {
	assessment := &Assessment{
		ID:              uuid.New(),
		StudentID:       studentID,
		Answers:         answers,
		ComputedProfile: computedProfile,
		Personalization: PersonalizationFor(computedProfile),
		CompletedAt:     time.Now().UTC(),
	}

	if err := assessment.Validate(); err != nil {
		return nil, err
	}

	return assessment, nil
}

// PersonalizationFor builds the display metadata for a profile code.
func PersonalizationFor(code LearningProfileCode) Personalization {
	return Personalization{
		Title:                           code.Title(),
		Description:                     "Customized by AI for your style.",
		RecommendedBreakIntervalMinutes: RecommendedBreakIntervalMinutes,
	}
}

// Validate checks if the Assessment has valid data.
// Returns an error if any field fails validation.
func (a *Assessment) Validate() error {
	if a.ID == uuid.Nil {
		return ErrAssessmentIDEmpty
	}

	if a.StudentID == uuid.Nil {
		return ErrAssessmentStudentIDEmpty
	}

	if len(a.Answers) == 0 {
		return ErrAssessmentNoAnswers
	}

	if !a.ComputedProfile.Valid() {
		return ErrAssessmentProfileInvalid
	}

	return nil
}
