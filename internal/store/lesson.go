package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/nevo-app/nevo-api/internal/domain"
)

// LessonStore defines the interface for lesson data persistence. Lessons
// are written once, after variant generation completes; readers never see
// a partially generated record.
type LessonStore interface {
	// Create saves a new lesson, including its full variants mapping.
	// Returns validation errors from the domain Lesson if data is invalid.
	Create(ctx context.Context, lesson *domain.Lesson) error

	// GetByID retrieves a lesson by its unique ID.
	// Returns ErrLessonNotFound if the lesson does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error)

	// FindByStatus retrieves all lessons with the given status, newest first.
	// Returns an empty slice if none match.
	FindByStatus(ctx context.Context, status domain.LessonStatus) ([]*domain.Lesson, error)

	// CountByTeacher returns the number of lessons owned by the teacher.
	CountByTeacher(ctx context.Context, teacherID uuid.UUID) (int, error)

	// WithTx returns a new LessonStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) LessonStore
}
