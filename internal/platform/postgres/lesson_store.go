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

// PostgresLessonStore implements the store.LessonStore interface
// using a PostgreSQL database as the storage backend. The per-profile
// variants mapping is stored as a single JSONB column so the whole record
// is written atomically.
type PostgresLessonStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresLessonStore creates a new PostgreSQL implementation of the
// LessonStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
func NewPostgresLessonStore(db store.DBTX, logger *slog.Logger) *PostgresLessonStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresLessonStore{
		db:     db,
		logger: logger.With(slog.String("component", "lesson_store")),
	}
}

// Ensure PostgresLessonStore implements store.LessonStore interface
var _ store.LessonStore = (*PostgresLessonStore)(nil)

// WithTx implements store.LessonStore.WithTx
func (s *PostgresLessonStore) WithTx(tx *sql.Tx) store.LessonStore {
	return &PostgresLessonStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.LessonStore.Create
// Returns store.ErrInvalidEntity if the teacher ID doesn't exist.
func (s *PostgresLessonStore) Create(ctx context.Context, lesson *domain.Lesson) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := lesson.Validate(); err != nil {
		log.Warn("lesson validation failed during create",
			slog.String("error", err.Error()),
			slog.String("lesson_id", lesson.ID.String()))
		return err
	}

	variantsJSON, err := json.Marshal(lesson.Variants)
	if err != nil {
		return fmt.Errorf("failed to marshal lesson variants: %w", err)
	}

	query := `
		INSERT INTO lessons (id, teacher_id, title, subject, content, status,
			xp_reward, duration_minutes, variants, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		lesson.ID,
		lesson.TeacherID,
		lesson.Title,
		lesson.Subject,
		lesson.Content,
		lesson.Status,
		lesson.XPReward,
		lesson.DurationMinutes,
		variantsJSON,
		lesson.CreatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during lesson creation",
				slog.String("lesson_id", lesson.ID.String()),
				slog.String("teacher_id", lesson.TeacherID.String()))
			return fmt.Errorf("%w: teacher with ID %s not found",
				store.ErrInvalidEntity, lesson.TeacherID)
		}

		log.Error("failed to create lesson",
			slog.String("error", err.Error()),
			slog.String("lesson_id", lesson.ID.String()))
		return err
	}

	log.Info("lesson created successfully",
		slog.String("lesson_id", lesson.ID.String()),
		slog.String("teacher_id", lesson.TeacherID.String()),
		slog.Int("variant_count", len(lesson.Variants)))
	return nil
}

// GetByID implements store.LessonStore.GetByID
// Returns store.ErrLessonNotFound if the lesson does not exist.
func (s *PostgresLessonStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, teacher_id, title, subject, content, status,
			xp_reward, duration_minutes, variants, created_at
		FROM lessons
		WHERE id = $1
	`

	var lesson domain.Lesson
	var status string
	var variantsJSON []byte

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&lesson.ID,
		&lesson.TeacherID,
		&lesson.Title,
		&lesson.Subject,
		&lesson.Content,
		&status,
		&lesson.XPReward,
		&lesson.DurationMinutes,
		&variantsJSON,
		&lesson.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("lesson not found", slog.String("lesson_id", id.String()))
			return nil, store.ErrLessonNotFound
		}
		log.Error("failed to get lesson by ID",
			slog.String("error", err.Error()),
			slog.String("lesson_id", id.String()))
		return nil, err
	}

	lesson.Status = domain.LessonStatus(status)
	if err := json.Unmarshal(variantsJSON, &lesson.Variants); err != nil {
		log.Error("failed to unmarshal lesson variants",
			slog.String("error", err.Error()),
			slog.String("lesson_id", id.String()))
		return nil, fmt.Errorf("failed to unmarshal lesson variants: %w", err)
	}

	return &lesson, nil
}

// FindByStatus implements store.LessonStore.FindByStatus
// Returns an empty slice if no lessons match.
func (s *PostgresLessonStore) FindByStatus(
	ctx context.Context,
	status domain.LessonStatus,
) ([]*domain.Lesson, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, teacher_id, title, subject, content, status,
			xp_reward, duration_minutes, variants, created_at
		FROM lessons
		WHERE status = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, status)
	if err != nil {
		log.Error("failed to query lessons by status",
			slog.String("error", err.Error()),
			slog.String("status", string(status)))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var lessons []*domain.Lesson
	for rows.Next() {
		var lesson domain.Lesson
		var statusStr string
		var variantsJSON []byte

		err := rows.Scan(
			&lesson.ID,
			&lesson.TeacherID,
			&lesson.Title,
			&lesson.Subject,
			&lesson.Content,
			&statusStr,
			&lesson.XPReward,
			&lesson.DurationMinutes,
			&variantsJSON,
			&lesson.CreatedAt,
		)
		if err != nil {
			log.Error("failed to scan lesson row",
				slog.String("error", err.Error()))
			return nil, err
		}

		lesson.Status = domain.LessonStatus(statusStr)
		if err := json.Unmarshal(variantsJSON, &lesson.Variants); err != nil {
			log.Error("failed to unmarshal lesson variants",
				slog.String("error", err.Error()),
				slog.String("lesson_id", lesson.ID.String()))
			return nil, fmt.Errorf("failed to unmarshal lesson variants: %w", err)
		}

		lessons = append(lessons, &lesson)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	if lessons == nil {
		lessons = []*domain.Lesson{}
	}

	log.Debug("found lessons by status",
		slog.String("status", string(status)),
		slog.Int("count", len(lessons)))
	return lessons, nil
}

// CountByTeacher implements store.LessonStore.CountByTeacher
func (s *PostgresLessonStore) CountByTeacher(ctx context.Context, teacherID uuid.UUID) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM lessons WHERE teacher_id = $1`, teacherID).Scan(&count)
	if err != nil {
		log.Error("failed to count lessons by teacher",
			slog.String("error", err.Error()),
			slog.String("teacher_id", teacherID.String()))
		return 0, err
	}

	return count, nil
}
