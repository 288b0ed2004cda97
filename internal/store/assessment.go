package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/nevo-app/nevo-api/internal/domain"
)

// AssessmentStore defines the interface for assessment data persistence.
// The assessment log is append-only; the latest record by CompletedAt is
// the authoritative profile for a student.
type AssessmentStore interface {
	// Create appends a new assessment record.
	// Returns validation errors from the domain Assessment if data is invalid.
	Create(ctx context.Context, assessment *domain.Assessment) error

	// GetLatestByStudent retrieves the assessment with the maximum
	// CompletedAt for the student.
	// Returns ErrAssessmentNotFound if the student has none.
	GetLatestByStudent(ctx context.Context, studentID uuid.UUID) (*domain.Assessment, error)

	// WithTx returns a new AssessmentStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) AssessmentStore
}
