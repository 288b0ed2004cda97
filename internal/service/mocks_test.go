package service

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/nevo-app/nevo-api/internal/domain"
	"github.com/nevo-app/nevo-api/internal/generation"
	"github.com/nevo-app/nevo-api/internal/service/auth"
	"github.com/nevo-app/nevo-api/internal/store"
)

// fakeUserStore is an in-memory store.UserStore for service tests.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User

	createErr        error
	updateProfileErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*domain.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeUserStore) UpdateLearningProfile(
	_ context.Context,
	id uuid.UUID,
	code domain.LearningProfileCode,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updateProfileErr != nil {
		return f.updateProfileErr
	}
	user, ok := f.users[id]
	if !ok {
		return store.ErrUserNotFound
	}
	user.LearningProfileCode = code
	user.AssessmentCompleted = true
	return nil
}

func (f *fakeUserStore) CountByRole(_ context.Context, role domain.UserRole) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, user := range f.users {
		if user.Role == role {
			count++
		}
	}
	return count, nil
}

func (f *fakeUserStore) WithTx(_ *sql.Tx) store.UserStore { return f }

// fakeLessonStore is an in-memory store.LessonStore for service tests.
type fakeLessonStore struct {
	mu      sync.Mutex
	lessons map[uuid.UUID]*domain.Lesson

	createErr error
}

func newFakeLessonStore() *fakeLessonStore {
	return &fakeLessonStore{lessons: make(map[uuid.UUID]*domain.Lesson)}
}

func (f *fakeLessonStore) Create(_ context.Context, lesson *domain.Lesson) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}
	copied := *lesson
	f.lessons[lesson.ID] = &copied
	return nil
}

func (f *fakeLessonStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Lesson, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	lesson, ok := f.lessons[id]
	if !ok {
		return nil, store.ErrLessonNotFound
	}
	copied := *lesson
	return &copied, nil
}

func (f *fakeLessonStore) FindByStatus(
	_ context.Context,
	status domain.LessonStatus,
) ([]*domain.Lesson, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matched := []*domain.Lesson{}
	for _, lesson := range f.lessons {
		if lesson.Status == status {
			copied := *lesson
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

func (f *fakeLessonStore) CountByTeacher(_ context.Context, teacherID uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, lesson := range f.lessons {
		if lesson.TeacherID == teacherID {
			count++
		}
	}
	return count, nil
}

func (f *fakeLessonStore) WithTx(_ *sql.Tx) store.LessonStore { return f }

// fakeAssessmentStore is an in-memory store.AssessmentStore for service tests.
type fakeAssessmentStore struct {
	mu          sync.Mutex
	assessments []*domain.Assessment

	createErr error
}

func newFakeAssessmentStore() *fakeAssessmentStore {
	return &fakeAssessmentStore{}
}

func (f *fakeAssessmentStore) Create(_ context.Context, assessment *domain.Assessment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}
	copied := *assessment
	f.assessments = append(f.assessments, &copied)
	return nil
}

func (f *fakeAssessmentStore) GetLatestByStudent(
	_ context.Context,
	studentID uuid.UUID,
) (*domain.Assessment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var latest *domain.Assessment
	for _, a := range f.assessments {
		if a.StudentID != studentID {
			continue
		}
		if latest == nil || !a.CompletedAt.Before(latest.CompletedAt) {
			latest = a
		}
	}
	if latest == nil {
		return nil, store.ErrAssessmentNotFound
	}
	copied := *latest
	return &copied, nil
}

func (f *fakeAssessmentStore) WithTx(_ *sql.Tx) store.AssessmentStore { return f }

// fakeSlideGenerator returns a canned deck per profile and records the
// requests it received.
type fakeSlideGenerator struct {
	mu       sync.Mutex
	decks    map[domain.LearningProfileCode][]domain.Slide
	requests []generation.SlideRequest
}

func (f *fakeSlideGenerator) GenerateSlides(
	_ context.Context,
	req generation.SlideRequest,
) []domain.Slide {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, req)
	if deck, ok := f.decks[req.Profile]; ok {
		return deck
	}
	return []domain.Slide{{Type: domain.SlideTypeIntro, Title: "Deck for " + string(req.Profile)}}
}

// fakeGuidanceGenerator returns canned guidance.
type fakeGuidanceGenerator struct {
	guidance domain.Guidance
	lastReq  generation.GuidanceRequest
}

func (f *fakeGuidanceGenerator) GenerateGuidance(
	_ context.Context,
	req generation.GuidanceRequest,
) domain.Guidance {
	f.lastReq = req
	return f.guidance
}

// fakeJWTService issues a predictable token.
type fakeJWTService struct {
	token       string
	generateErr error
}

func (f *fakeJWTService) GenerateToken(
	_ context.Context,
	_ uuid.UUID,
	_ domain.UserRole,
) (string, error) {
	if f.generateErr != nil {
		return "", f.generateErr
	}
	return f.token, nil
}

func (f *fakeJWTService) ValidateToken(_ context.Context, _ string) (*auth.Claims, error) {
	return nil, auth.ErrInvalidToken
}

// fakePasswordVerifier compares plaintext directly.
type fakePasswordVerifier struct{}

func (fakePasswordVerifier) Compare(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return auth.ErrInvalidCredentials
	}
	return nil
}

// directTxRunner invokes the transactional function without a database.
func directTxRunner(ctx context.Context, _ *sql.DB, fn store.TxFn) error {
	return fn(ctx, nil)
}
