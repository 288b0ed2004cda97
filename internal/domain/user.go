package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserRole distinguishes the three account types of the application.
type UserRole string

// Possible user roles.
const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
	RoleParent  UserRole = "parent"
)

// Common validation errors.
var (
	ErrEmptyUserID      = errors.New("user ID cannot be empty")
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrEmptyFullName    = errors.New("full name cannot be empty")
	ErrInvalidRole      = errors.New("invalid user role")
	ErrPasswordTooShort = errors.New("password must be at least 12 characters long")
	ErrPasswordTooLong  = errors.New("password must be at most 72 characters long")
	ErrEmptyPassword    = errors.New("password cannot be empty")
)

// User represents a registered user of the Nevo application. A student's
// LearningProfileCode is a denormalized copy of the latest assessment's
// computed profile, kept for fast dashboard lookups; the assessment log
// remains the source of truth.
type User struct {
	ID                  uuid.UUID           `json:"id"`
	Role                UserRole            `json:"role"`
	FullName            string              `json:"fullName"`
	Email               string              `json:"email"`
	Password            string              `json:"-"` // Plaintext, used only during registration
	HashedPassword      string              `json:"-"` // Never exposed in JSON
	AssessmentCompleted bool                `json:"assessmentCompleted"`
	XP                  int                 `json:"xp"`
	Streak              int                 `json:"streak"`
	LearningProfileCode LearningProfileCode `json:"learningProfileCode,omitempty"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

// NewUser creates a new User with the given role, name, email and password.
// It generates a new UUID for the user ID and sets the creation/update
// timestamps. Returns an error if validation fails.
//
// NOTE: This function only sets up the user structure with the plaintext
// password. The store is responsible for hashing it before persistence.
func NewUser(role UserRole, fullName, email, password string) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Role:      role,
		FullName:  fullName,
		Email:     email,
		Password:  password,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if !isValidRole(u.Role) {
		return ErrInvalidRole
	}

	if u.FullName == "" {
		return ErrEmptyFullName
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validateEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if u.LearningProfileCode != "" && !u.LearningProfileCode.Valid() {
		return ErrInvalidProfileCode
	}

	if u.Password != "" {
		if len(u.Password) < 12 {
			return ErrPasswordTooShort
		}
		if len(u.Password) > 72 { // bcrypt's practical limit
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}

// DefaultRoute returns the dashboard route a freshly authenticated user of
// this role should land on.
func (u *User) DefaultRoute() string {
	if u.Role == RoleTeacher {
		return "/teacher/dashboard"
	}
	return "/student/dashboard"
}

func isValidRole(role UserRole) bool {
	switch role {
	case RoleStudent, RoleTeacher, RoleParent:
		return true
	default:
		return false
	}
}

// validateEmailFormat performs basic validation of email format: an @ with
// a dotted domain after it. Deliberately simple; the API layer also runs
// the validator library's email check.
func validateEmailFormat(email string) bool {
	atIndex := strings.Index(email, "@")
	if atIndex <= 0 || atIndex == len(email)-1 {
		return false
	}

	domainPart := email[atIndex+1:]
	dotIndex := strings.Index(domainPart, ".")
	if dotIndex <= 0 || dotIndex == len(domainPart)-1 {
		return false
	}

	return true
}
