package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nevo-app/nevo-api/internal/domain"
	"github.com/nevo-app/nevo-api/internal/platform/logger"
	"github.com/nevo-app/nevo-api/internal/service/auth"
	"github.com/nevo-app/nevo-api/internal/store"
)

// UserService handles account registration and login.
type UserService struct {
	userStore        store.UserStore
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	logger           *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordVerifier auth.PasswordVerifier,
	logger *slog.Logger,
) *UserService {
	if userStore == nil {
		panic("userStore cannot be nil")
	}
	if jwtService == nil {
		panic("jwtService cannot be nil")
	}
	if passwordVerifier == nil {
		panic("passwordVerifier cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserService{
		userStore:        userStore,
		jwtService:       jwtService,
		passwordVerifier: passwordVerifier,
		logger:           logger.With(slog.String("component", "user_service")),
	}
}

// Signup registers a new account and returns the created user with a
// signed access token. Returns store.ErrEmailExists for duplicate emails
// and domain validation errors for bad input.
func (s *UserService) Signup(
	ctx context.Context,
	role domain.UserRole,
	fullName, email, password string,
) (*domain.User, string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(role, fullName, email, password)
	if err != nil {
		log.Warn("signup rejected by domain validation",
			slog.String("error", err.Error()))
		return nil, "", err
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.jwtService.GenerateToken(ctx, user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}

	log.Info("user signed up",
		slog.String("user_id", user.ID.String()),
		slog.String("role", string(user.Role)))
	return user, token, nil
}

// Login authenticates an email/password pair and returns the user with a
// signed access token. Returns auth.ErrInvalidCredentials for unknown
// emails and password mismatches alike, so callers cannot probe which
// emails are registered.
func (s *UserService) Login(
	ctx context.Context,
	email, password string,
) (*domain.User, string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login attempt for unknown email")
			return nil, "", auth.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := s.passwordVerifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login attempt with wrong password",
			slog.String("user_id", user.ID.String()))
		return nil, "", auth.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(ctx, user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}

	log.Info("user logged in",
		slog.String("user_id", user.ID.String()),
		slog.String("role", string(user.Role)))
	return user, token, nil
}
