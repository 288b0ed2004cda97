package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nevo-app/nevo-api/internal/domain"
	"github.com/nevo-app/nevo-api/internal/platform/logger"
	"github.com/nevo-app/nevo-api/internal/store"
)

// AssessmentService records completed learning-style assessments and keeps
// the user's denormalized profile copy in step with the assessment log.
type AssessmentService struct {
	db              *sql.DB
	assessmentStore store.AssessmentStore
	userStore       store.UserStore
	logger          *slog.Logger

	// runTx is store.RunInTransaction in production; tests substitute a
	// runner that invokes the function directly.
	runTx func(ctx context.Context, db *sql.DB, fn store.TxFn) error
}

// NewAssessmentService creates a new AssessmentService. The *sql.DB is
// needed so SubmitAssessment can open its own transaction.
func NewAssessmentService(
	db *sql.DB,
	assessmentStore store.AssessmentStore,
	userStore store.UserStore,
	logger *slog.Logger,
) *AssessmentService {
	if db == nil {
		panic("db cannot be nil")
	}
	if assessmentStore == nil {
		panic("assessmentStore cannot be nil")
	}
	if userStore == nil {
		panic("userStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AssessmentService{
		db:              db,
		assessmentStore: assessmentStore,
		userStore:       userStore,
		logger:          logger.With(slog.String("component", "assessment_service")),
		runTx:           store.RunInTransaction,
	}
}

// SubmitAssessment validates the computed profile, appends the assessment
// record, and updates the student's denormalized profile fields. Both
// writes run in one transaction so the log and the copy cannot diverge.
func (s *AssessmentService) SubmitAssessment(
	ctx context.Context,
	studentID uuid.UUID,
	answers map[string]string,
	computedProfile string,
) (*domain.Assessment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	code, err := domain.ParseProfileCode(computedProfile)
	if err != nil {
		log.Warn("assessment submitted with unrecognized profile",
			slog.String("profile", computedProfile),
			slog.String("student_id", studentID.String()))
		return nil, err
	}

	assessment, err := domain.NewAssessment(studentID, answers, code)
	if err != nil {
		return nil, err
	}

	err = s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.assessmentStore.WithTx(tx).Create(ctx, assessment); err != nil {
			return err
		}
		return s.userStore.WithTx(tx).UpdateLearningProfile(ctx, studentID, code)
	})
	if err != nil {
		return nil, err
	}

	log.Info("assessment recorded",
		slog.String("assessment_id", assessment.ID.String()),
		slog.String("student_id", studentID.String()),
		slog.String("profile", string(code)))
	return assessment, nil
}

// GetLatestAssessment returns the student's most recent assessment.
// Returns store.ErrAssessmentNotFound if the student has never taken one.
func (s *AssessmentService) GetLatestAssessment(
	ctx context.Context,
	studentID uuid.UUID,
) (*domain.Assessment, error) {
	return s.assessmentStore.GetLatestByStudent(ctx, studentID)
}
