package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nevo-app/nevo-api/internal/domain"
	"github.com/nevo-app/nevo-api/internal/platform/logger"
	"github.com/nevo-app/nevo-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db         store.DBTX
	logger     *slog.Logger
	bcryptCost int
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the
// UserStore interface. It accepts a database connection or transaction
// managed by the caller, and the bcrypt cost used to hash passwords.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger, bcryptCost int) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}

	return &PostgresUserStore{
		db:         db,
		logger:     logger.With(slog.String("component", "user_store")),
		bcryptCost: bcryptCost,
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:         tx,
		logger:     s.logger,
		bcryptCost: s.bcryptCost,
	}
}

// Create implements store.UserStore.Create
// It hashes the plaintext password and saves the user to the database.
// Returns store.ErrEmailExists if the email is already taken.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	if user.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), s.bcryptCost)
		if err != nil {
			log.Error("failed to hash password",
				slog.String("error", err.Error()),
				slog.String("user_id", user.ID.String()))
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = string(hashed)
		user.Password = ""
	}

	query := `
		INSERT INTO users (id, role, full_name, email, hashed_password,
			assessment_completed, xp, streak, learning_profile_code,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Role,
		user.FullName,
		user.Email,
		user.HashedPassword,
		user.AssessmentCompleted,
		user.XP,
		user.Streak,
		nullableProfile(user.LearningProfileCode),
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			log.Warn("duplicate email during user creation",
				slog.String("user_id", user.ID.String()))
			return store.ErrEmailExists
		}

		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	log.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("role", string(user.Role)))
	return nil
}

// GetByID implements store.UserStore.GetByID
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, role, full_name, email, hashed_password,
			assessment_completed, xp, streak, learning_profile_code,
			created_at, updated_at
		FROM users
		WHERE id = $1
	`

	user, err := s.scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("user_id", id.String()))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by ID",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, err
	}

	return user, nil
}

// GetByEmail implements store.UserStore.GetByEmail
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, role, full_name, email, hashed_password,
			assessment_completed, xp, streak, learning_profile_code,
			created_at, updated_at
		FROM users
		WHERE email = $1
	`

	user, err := s.scanUser(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found by email")
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by email",
			slog.String("error", err.Error()))
		return nil, err
	}

	return user, nil
}

// UpdateLearningProfile implements store.UserStore.UpdateLearningProfile
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) UpdateLearningProfile(
	ctx context.Context,
	id uuid.UUID,
	code domain.LearningProfileCode,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !code.Valid() {
		return domain.ErrInvalidProfileCode
	}

	query := `
		UPDATE users
		SET learning_profile_code = $1, assessment_completed = TRUE, updated_at = $2
		WHERE id = $3
	`

	result, err := s.db.ExecContext(ctx, query, string(code), time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to update learning profile",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()),
			slog.String("profile", string(code)))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("user not found for profile update",
			slog.String("user_id", id.String()))
		return store.ErrUserNotFound
	}

	log.Info("learning profile updated",
		slog.String("user_id", id.String()),
		slog.String("profile", string(code)))
	return nil
}

// CountByRole implements store.UserStore.CountByRole
func (s *PostgresUserStore) CountByRole(ctx context.Context, role domain.UserRole) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&count)
	if err != nil {
		log.Error("failed to count users by role",
			slog.String("error", err.Error()),
			slog.String("role", string(role)))
		return 0, err
	}

	return count, nil
}

// rowScanner abstracts *sql.Row for scanUser.
type rowScanner interface {
	Scan(dest ...any) error
}

func (s *PostgresUserStore) scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	var role string
	var profile sql.NullString

	err := row.Scan(
		&user.ID,
		&role,
		&user.FullName,
		&user.Email,
		&user.HashedPassword,
		&user.AssessmentCompleted,
		&user.XP,
		&user.Streak,
		&profile,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Role = domain.UserRole(role)
	if profile.Valid {
		user.LearningProfileCode = domain.LearningProfileCode(profile.String)
	}

	return &user, nil
}

// nullableProfile maps an unset profile code to SQL NULL.
func nullableProfile(code domain.LearningProfileCode) sql.NullString {
	if code == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: string(code), Valid: true}
}
