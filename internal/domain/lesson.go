package domain

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
)

// SlideType identifies the kind of content a slide carries.
type SlideType string

// The closed set of slide types the completion service may produce.
const (
	SlideTypeIntro       SlideType = "intro"
	SlideTypeContent     SlideType = "content"
	SlideTypeVisual      SlideType = "visual"
	SlideTypeInteractive SlideType = "interactive"
	SlideTypeQuiz        SlideType = "quiz"
	SlideTypeSummary     SlideType = "summary"
)

// LessonStatus represents the lifecycle state of a lesson.
type LessonStatus string

// Possible lesson status values.
const (
	LessonStatusDraft LessonStatus = "draft"
	LessonStatusReady LessonStatus = "ready"
)

// Defaults applied when a lesson is created from teacher content.
const (
	DefaultLessonXPReward        = 50
	DefaultLessonDurationMinutes = 15
)

// Lesson-specific validation errors.
var (
	ErrLessonIDEmpty        = errors.New("lesson ID cannot be empty")
	ErrLessonTeacherIDEmpty = errors.New("lesson teacher ID cannot be empty")
	ErrLessonTitleEmpty     = errors.New("lesson title cannot be empty")
	ErrLessonSubjectEmpty   = errors.New("lesson subject cannot be empty")
	ErrLessonContentEmpty   = errors.New("lesson content cannot be empty")
	ErrLessonStatusInvalid  = errors.New("invalid lesson status")
	ErrLessonNoVariants     = errors.New("ready lesson must have at least one non-empty variant")
	ErrLessonXPNegative     = errors.New("lesson xp reward cannot be negative")
	ErrLessonDurationNeg    = errors.New("lesson duration cannot be negative")

	ErrSlideTypeInvalid    = errors.New("invalid slide type")
	ErrSlideTitleEmpty     = errors.New("slide title cannot be empty")
	ErrSlideQuestionPlaced = errors.New("question is only allowed on interactive or quiz slides")
	ErrSlideAnswerIndex    = errors.New("question correct index is out of range")
)

// Question is the structured prompt attached to interactive and quiz slides.
// Correct is a 0-based index into Options.
type Question struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Correct int      `json:"correct"`
}

// Slide is one unit of lesson content. Content and Visual are optional;
// Question is present only on interactive and quiz slides.
type Slide struct {
	Type     SlideType `json:"type"`
	Title    string    `json:"title"`
	Content  string    `json:"content,omitempty"`
	Visual   string    `json:"visual,omitempty"`
	Question *Question `json:"question,omitempty"`
}

// Validate checks the slide invariants: a known type, a title, and a
// question only where the type allows one with a correct index that
// resolves inside the options list.
func (s *Slide) Validate() error {
	if !isValidSlideType(s.Type) {
		return ErrSlideTypeInvalid
	}

	if s.Title == "" {
		return ErrSlideTitleEmpty
	}

	if s.Question != nil {
		if s.Type != SlideTypeInteractive && s.Type != SlideTypeQuiz {
			return ErrSlideQuestionPlaced
		}
		if s.Question.Correct < 0 || s.Question.Correct >= len(s.Question.Options) {
			return ErrSlideAnswerIndex
		}
	}

	return nil
}

func isValidSlideType(t SlideType) bool {
	switch t {
	case SlideTypeIntro, SlideTypeContent, SlideTypeVisual,
		SlideTypeInteractive, SlideTypeQuiz, SlideTypeSummary:
		return true
	default:
		return false
	}
}

// Lesson represents teacher-submitted material together with the
// per-profile slide decks generated from it. Once status is ready the
// record is immutable except by whole-record regeneration.
type Lesson struct {
	ID              uuid.UUID                       `json:"id"`
	TeacherID       uuid.UUID                       `json:"teacher_id"`
	Title           string                          `json:"title"`
	Subject         string                          `json:"subject"`
	Content         string                          `json:"content"`
	Status          LessonStatus                    `json:"status"`
	XPReward        int                             `json:"xp_reward"`
	DurationMinutes int                             `json:"duration_minutes"`
	Variants        map[LearningProfileCode][]Slide `json:"variants"`
	CreatedAt       time.Time                       `json:"created_at"`
}

// NewLesson creates a ready lesson from teacher content and the generated
// variants mapping, applying the default XP reward and duration.
// Returns an error if validation fails.
func NewLesson(
	teacherID uuid.UUID,
	title, subject, content string,
	variants map[LearningProfileCode][]Slide,
) (*Lesson, error) {
	lesson := &Lesson{
		ID:              uuid.New(),
		TeacherID:       teacherID,
		Title:           title,
		Subject:         subject,
		Content:         content,
		Status:          LessonStatusReady,
		XPReward:        DefaultLessonXPReward,
		DurationMinutes: DefaultLessonDurationMinutes,
		Variants:        variants,
		CreatedAt:       time.Now().UTC(),
	}

	if err := lesson.Validate(); err != nil {
		return nil, err
	}

	return lesson, nil
}

// Validate checks if the Lesson has valid data.
// Returns an error if any field fails validation.
func (l *Lesson) Validate() error {
	if l.ID == uuid.Nil {
		return ErrLessonIDEmpty
	}

	if l.TeacherID == uuid.Nil {
		return ErrLessonTeacherIDEmpty
	}

	if l.Title == "" {
		return ErrLessonTitleEmpty
	}

	if l.Subject == "" {
		return ErrLessonSubjectEmpty
	}

	if l.Content == "" {
		return ErrLessonContentEmpty
	}

	if l.Status != LessonStatusDraft && l.Status != LessonStatusReady {
		return ErrLessonStatusInvalid
	}

	if l.XPReward < 0 {
		return ErrLessonXPNegative
	}

	if l.DurationMinutes < 0 {
		return ErrLessonDurationNeg
	}

	if l.Status == LessonStatusReady && !l.hasNonEmptyVariant() {
		return ErrLessonNoVariants
	}

	return nil
}

func (l *Lesson) hasNonEmptyVariant() bool {
	for _, slides := range l.Variants {
		if len(slides) > 0 {
			return true
		}
	}
	return false
}

// SlidesFor resolves which stored variant to serve for the requested
// profile. Resolution order:
//
//  1. The requested profile's deck, if the key exists (even when empty).
//  2. The Visual deck, if present.
//  3. The deck of the lexicographically smallest variant key, so repeated
//     calls on the same record always pick the same entry; an empty slice
//     when the mapping is empty.
func (l *Lesson) SlidesFor(profile LearningProfileCode) []Slide {
	if slides, ok := l.Variants[profile]; ok {
		return slides
	}

	if slides, ok := l.Variants[ProfileVisual]; ok {
		return slides
	}

	if len(l.Variants) == 0 {
		return []Slide{}
	}

	keys := make([]string, 0, len(l.Variants))
	for code := range l.Variants {
		keys = append(keys, string(code))
	}
	sort.Strings(keys)

	return l.Variants[LearningProfileCode(keys[0])]
}
