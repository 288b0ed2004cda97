package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nevo-app/nevo-api/internal/domain"
	"github.com/nevo-app/nevo-api/internal/platform/logger"
	"github.com/nevo-app/nevo-api/internal/store"
)

// PostgresAssessmentStore implements the store.AssessmentStore interface
// using a PostgreSQL database as the storage backend. Raw answers and the
// personalization summary are stored as JSONB columns.
type PostgresAssessmentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAssessmentStore creates a new PostgreSQL implementation of
// the AssessmentStore interface. It accepts a database connection or
// transaction that should be initialized and managed by the caller.
func NewPostgresAssessmentStore(db store.DBTX, logger *slog.Logger) *PostgresAssessmentStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAssessmentStore{
		db:     db,
		logger: logger.With(slog.String("component", "assessment_store")),
	}
}

// Ensure PostgresAssessmentStore implements store.AssessmentStore interface
var _ store.AssessmentStore = (*PostgresAssessmentStore)(nil)

// WithTx implements store.AssessmentStore.WithTx
func (s *PostgresAssessmentStore) WithTx(tx *sql.Tx) store.AssessmentStore {
	return &PostgresAssessmentStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.AssessmentStore.Create
// Returns store.ErrInvalidEntity if the student ID doesn't exist.
func (s *PostgresAssessmentStore) Create(ctx context.Context, assessment *domain.Assessment) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := assessment.Validate(); err != nil {
		log.Warn("assessment validation failed during create",
			slog.String("error", err.Error()),
			slog.String("assessment_id", assessment.ID.String()))
		return err
	}

	answersJSON, err := json.Marshal(assessment.Answers)
	if err != nil {
		return fmt.Errorf("failed to marshal assessment answers: %w", err)
	}

	personalizationJSON, err := json.Marshal(assessment.Personalization)
	if err != nil {
		return fmt.Errorf("failed to marshal personalization: %w", err)
	}

	query := `
		INSERT INTO assessments (id, student_id, answers, computed_profile,
			personalization, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		assessment.ID,
		assessment.StudentID,
		answersJSON,
		string(assessment.ComputedProfile),
		personalizationJSON,
		assessment.CompletedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during assessment creation",
				slog.String("assessment_id", assessment.ID.String()),
				slog.String("student_id", assessment.StudentID.String()))
			return fmt.Errorf("%w: student with ID %s not found",
				store.ErrInvalidEntity, assessment.StudentID)
		}

		log.Error("failed to create assessment",
			slog.String("error", err.Error()),
			slog.String("assessment_id", assessment.ID.String()))
		return err
	}

	log.Info("assessment created successfully",
		slog.String("assessment_id", assessment.ID.String()),
		slog.String("student_id", assessment.StudentID.String()),
		slog.String("profile", string(assessment.ComputedProfile)))
	return nil
}

// GetLatestByStudent implements store.AssessmentStore.GetLatestByStudent
// Returns store.ErrAssessmentNotFound if the student has never completed one.
func (s *PostgresAssessmentStore) GetLatestByStudent(
	ctx context.Context,
	studentID uuid.UUID,
) (*domain.Assessment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, student_id, answers, computed_profile, personalization, completed_at
		FROM assessments
		WHERE student_id = $1
		ORDER BY completed_at DESC
		LIMIT 1
	`

	var assessment domain.Assessment
	var profile string
	var answersJSON, personalizationJSON []byte

	err := s.db.QueryRowContext(ctx, query, studentID).Scan(
		&assessment.ID,
		&assessment.StudentID,
		&answersJSON,
		&profile,
		&personalizationJSON,
		&assessment.CompletedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("no assessment found for student",
				slog.String("student_id", studentID.String()))
			return nil, store.ErrAssessmentNotFound
		}
		log.Error("failed to get latest assessment",
			slog.String("error", err.Error()),
			slog.String("student_id", studentID.String()))
		return nil, err
	}

	assessment.ComputedProfile = domain.LearningProfileCode(profile)
	if err := json.Unmarshal(answersJSON, &assessment.Answers); err != nil {
		log.Error("failed to unmarshal assessment answers",
			slog.String("error", err.Error()),
			slog.String("assessment_id", assessment.ID.String()))
		return nil, fmt.Errorf("failed to unmarshal assessment answers: %w", err)
	}
	if err := json.Unmarshal(personalizationJSON, &assessment.Personalization); err != nil {
		log.Error("failed to unmarshal personalization",
			slog.String("error", err.Error()),
			slog.String("assessment_id", assessment.ID.String()))
		return nil, fmt.Errorf("failed to unmarshal personalization: %w", err)
	}

	return &assessment, nil
}
