package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nevo-app/nevo-api/internal/domain"
	"github.com/nevo-app/nevo-api/internal/service"
)

// Function-field mocks for the handler-facing service interfaces.

type mockUserService struct {
	signupFn func(ctx context.Context, role domain.UserRole, fullName, email, password string) (*domain.User, string, error)
	loginFn  func(ctx context.Context, email, password string) (*domain.User, string, error)
}

func (m *mockUserService) Signup(
	ctx context.Context,
	role domain.UserRole,
	fullName, email, password string,
) (*domain.User, string, error) {
	return m.signupFn(ctx, role, fullName, email, password)
}

func (m *mockUserService) Login(
	ctx context.Context,
	email, password string,
) (*domain.User, string, error) {
	return m.loginFn(ctx, email, password)
}

type mockLessonService struct {
	createFn func(ctx context.Context, teacherID uuid.UUID, title, subject, content string) (*domain.Lesson, error)
	detailFn func(ctx context.Context, lessonID uuid.UUID, profile domain.LearningProfileCode) (*domain.Lesson, []domain.Slide, error)
	listFn   func(ctx context.Context) ([]*domain.Lesson, error)
}

func (m *mockLessonService) CreateLesson(
	ctx context.Context,
	teacherID uuid.UUID,
	title, subject, content string,
) (*domain.Lesson, error) {
	return m.createFn(ctx, teacherID, title, subject, content)
}

func (m *mockLessonService) GetLessonDetail(
	ctx context.Context,
	lessonID uuid.UUID,
	profile domain.LearningProfileCode,
) (*domain.Lesson, []domain.Slide, error) {
	return m.detailFn(ctx, lessonID, profile)
}

func (m *mockLessonService) ListReadyLessons(ctx context.Context) ([]*domain.Lesson, error) {
	return m.listFn(ctx)
}

type mockAssessmentService struct {
	submitFn func(ctx context.Context, studentID uuid.UUID, answers map[string]string, computedProfile string) (*domain.Assessment, error)
	latestFn func(ctx context.Context, studentID uuid.UUID) (*domain.Assessment, error)
}

func (m *mockAssessmentService) SubmitAssessment(
	ctx context.Context,
	studentID uuid.UUID,
	answers map[string]string,
	computedProfile string,
) (*domain.Assessment, error) {
	return m.submitFn(ctx, studentID, answers, computedProfile)
}

func (m *mockAssessmentService) GetLatestAssessment(
	ctx context.Context,
	studentID uuid.UUID,
) (*domain.Assessment, error) {
	return m.latestFn(ctx, studentID)
}

type mockDashboardService struct {
	summaryFn  func(ctx context.Context, studentID uuid.UUID) (*service.StudentSummary, error)
	overviewFn func(ctx context.Context, teacherID uuid.UUID) (*service.ClassOverview, error)
	guidanceFn func(ctx context.Context, childID uuid.UUID) (*service.ParentGuidance, error)
}

func (m *mockDashboardService) StudentSummary(
	ctx context.Context,
	studentID uuid.UUID,
) (*service.StudentSummary, error) {
	return m.summaryFn(ctx, studentID)
}

func (m *mockDashboardService) ClassOverview(
	ctx context.Context,
	teacherID uuid.UUID,
) (*service.ClassOverview, error) {
	return m.overviewFn(ctx, teacherID)
}

func (m *mockDashboardService) ParentGuidance(
	ctx context.Context,
	childID uuid.UUID,
) (*service.ParentGuidance, error) {
	return m.guidanceFn(ctx, childID)
}

// serveRequest routes the request through a chi router so URL parameters
// resolve the same way they do in production.
func serveRequest(
	method, pattern, target string,
	body string,
	handler http.HandlerFunc,
) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.MethodFunc(method, pattern, handler)

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}
