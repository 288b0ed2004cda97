package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/nevo-app/nevo-api/internal/domain"
	"github.com/nevo-app/nevo-api/internal/service/auth"
	"github.com/nevo-app/nevo-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService(users *fakeUserStore) *UserService {
	return NewUserService(users, &fakeJWTService{token: "signed-token"},
		fakePasswordVerifier{}, slog.Default())
}

func TestSignup_CreatesUserAndIssuesToken(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	svc := newTestUserService(users)

	user, token, err := svc.Signup(context.Background(), domain.RoleTeacher,
		"Tess Teacher", "tess@example.com", "a-long-enough-password")
	require.NoError(t, err)

	assert.Equal(t, "signed-token", token)
	assert.Equal(t, domain.RoleTeacher, user.Role)
	assert.Equal(t, "/teacher/dashboard", user.DefaultRoute())

	stored, err := users.GetByEmail(context.Background(), "tess@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	svc := newTestUserService(users)

	_, _, err := svc.Signup(context.Background(), domain.RoleStudent,
		"First", "dup@example.com", "a-long-enough-password")
	require.NoError(t, err)

	_, _, err = svc.Signup(context.Background(), domain.RoleStudent,
		"Second", "dup@example.com", "a-long-enough-password")
	assert.ErrorIs(t, err, store.ErrEmailExists)
}

func TestSignup_InvalidInput(t *testing.T) {
	t.Parallel()

	svc := newTestUserService(newFakeUserStore())

	tests := []struct {
		name     string
		role     domain.UserRole
		fullName string
		email    string
		password string
		wantErr  error
	}{
		{"bad role", "admin", "Name", "a@b.com", "a-long-enough-password", domain.ErrInvalidRole},
		{"empty name", domain.RoleStudent, "", "a@b.com", "a-long-enough-password", domain.ErrEmptyFullName},
		{"bad email", domain.RoleStudent, "Name", "not-an-email", "a-long-enough-password", domain.ErrInvalidEmail},
		{"short password", domain.RoleStudent, "Name", "a@b.com", "short", domain.ErrPasswordTooShort},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := svc.Signup(context.Background(), tc.role, tc.fullName, tc.email, tc.password)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	svc := newTestUserService(users)

	seeded, err := domain.NewUser(domain.RoleStudent, "Maya", "maya@example.com",
		"a-long-enough-password")
	require.NoError(t, err)
	// The fake verifier matches "hashed:<plaintext>".
	seeded.HashedPassword = "hashed:a-long-enough-password"
	seeded.Password = ""
	require.NoError(t, users.Create(context.Background(), seeded))

	user, token, err := svc.Login(context.Background(), "maya@example.com", "a-long-enough-password")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, user.ID)
	assert.Equal(t, "signed-token", token)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	svc := newTestUserService(users)

	seeded, err := domain.NewUser(domain.RoleStudent, "Maya", "maya@example.com",
		"a-long-enough-password")
	require.NoError(t, err)
	seeded.HashedPassword = "hashed:a-long-enough-password"
	seeded.Password = ""
	require.NoError(t, users.Create(context.Background(), seeded))

	_, _, err = svc.Login(context.Background(), "maya@example.com", "wrong-password")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	t.Parallel()

	svc := newTestUserService(newFakeUserStore())

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}
