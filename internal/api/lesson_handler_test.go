package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/nevo-app/nevo-api/internal/domain"
	"github.com/nevo-app/nevo-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLesson(t *testing.T, teacherID uuid.UUID) *domain.Lesson {
	t.Helper()

	lesson, err := domain.NewLesson(teacherID, "Fractions", "Math", "Halves and quarters.",
		map[domain.LearningProfileCode][]domain.Slide{
			domain.ProfileVisual: {{Type: domain.SlideTypeIntro, Title: "Intro"}},
		})
	require.NoError(t, err)
	return lesson
}

func TestCreateLessonHandler_Success(t *testing.T) {
	t.Parallel()

	teacherID := uuid.New()
	lesson := testLesson(t, teacherID)
	handler := NewLessonHandler(&mockLessonService{
		createFn: func(_ context.Context, gotTeacherID uuid.UUID, title, subject, content string) (*domain.Lesson, error) {
			assert.Equal(t, teacherID, gotTeacherID)
			assert.Equal(t, "Fractions", title)
			return lesson, nil
		},
	})

	body := `{"title":"Fractions","subject":"Math","content":"Halves and quarters."}`
	rec := serveRequest(http.MethodPost, "/api/teachers/{teacherID}/lessons",
		"/api/teachers/"+teacherID.String()+"/lessons", body, handler.CreateLesson)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp CreateLessonResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, lesson.ID.String(), resp.LessonID)
	assert.Equal(t, "done", resp.PersonalizationJobID)
	assert.Equal(t, "ready", resp.Status)
}

func TestCreateLessonHandler_MalformedTeacherID(t *testing.T) {
	t.Parallel()

	handler := NewLessonHandler(&mockLessonService{})

	body := `{"title":"T","subject":"S","content":"C"}`
	rec := serveRequest(http.MethodPost, "/api/teachers/{teacherID}/lessons",
		"/api/teachers/not-a-uuid/lessons", body, handler.CreateLesson)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateLessonHandler_MissingFields(t *testing.T) {
	t.Parallel()

	handler := NewLessonHandler(&mockLessonService{})

	body := `{"title":"T","subject":"S"}`
	rec := serveRequest(http.MethodPost, "/api/teachers/{teacherID}/lessons",
		"/api/teachers/"+uuid.NewString()+"/lessons", body, handler.CreateLesson)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetLessonHandler_Success(t *testing.T) {
	t.Parallel()

	lesson := testLesson(t, uuid.New())
	handler := NewLessonHandler(&mockLessonService{
		detailFn: func(_ context.Context, lessonID uuid.UUID, profile domain.LearningProfileCode) (*domain.Lesson, []domain.Slide, error) {
			assert.Equal(t, lesson.ID, lessonID)
			assert.Equal(t, domain.ProfileReadWrite, profile)
			return lesson, lesson.Variants[domain.ProfileVisual], nil
		},
	})

	rec := serveRequest(http.MethodGet, "/api/lessons/{lessonID}",
		"/api/lessons/"+lesson.ID.String()+"?profile=Read%2FWrite", "", handler.GetLesson)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp LessonDetailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Read/Write", resp.Profile)
	assert.Equal(t, lesson.XPReward, resp.XPReward)
	require.Len(t, resp.Slides, 1)
}

func TestGetLessonHandler_DefaultsToVisual(t *testing.T) {
	t.Parallel()

	lesson := testLesson(t, uuid.New())
	handler := NewLessonHandler(&mockLessonService{
		detailFn: func(_ context.Context, _ uuid.UUID, profile domain.LearningProfileCode) (*domain.Lesson, []domain.Slide, error) {
			assert.Equal(t, domain.ProfileVisual, profile)
			return lesson, lesson.Variants[domain.ProfileVisual], nil
		},
	})

	rec := serveRequest(http.MethodGet, "/api/lessons/{lessonID}",
		"/api/lessons/"+lesson.ID.String(), "", handler.GetLesson)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetLessonHandler_UnrecognizedProfile(t *testing.T) {
	t.Parallel()

	handler := NewLessonHandler(&mockLessonService{
		detailFn: func(_ context.Context, _ uuid.UUID, _ domain.LearningProfileCode) (*domain.Lesson, []domain.Slide, error) {
			t.Fatal("lookup should not run for unrecognized profiles")
			return nil, nil, nil
		},
	})

	rec := serveRequest(http.MethodGet, "/api/lessons/{lessonID}",
		"/api/lessons/"+uuid.NewString()+"?profile=Telepathic", "", handler.GetLesson)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "recognized learning profile")
}

func TestGetLessonHandler_MalformedID(t *testing.T) {
	t.Parallel()

	handler := NewLessonHandler(&mockLessonService{})

	rec := serveRequest(http.MethodGet, "/api/lessons/{lessonID}",
		"/api/lessons/12345", "", handler.GetLesson)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid ID format")
}

func TestGetLessonHandler_NotFound(t *testing.T) {
	t.Parallel()

	handler := NewLessonHandler(&mockLessonService{
		detailFn: func(_ context.Context, _ uuid.UUID, _ domain.LearningProfileCode) (*domain.Lesson, []domain.Slide, error) {
			return nil, nil, store.ErrLessonNotFound
		},
	})

	rec := serveRequest(http.MethodGet, "/api/lessons/{lessonID}",
		"/api/lessons/"+uuid.NewString(), "", handler.GetLesson)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Lesson not found")
}

func TestListStudentLessonsHandler(t *testing.T) {
	t.Parallel()

	lesson := testLesson(t, uuid.New())
	handler := NewLessonHandler(&mockLessonService{
		listFn: func(_ context.Context) ([]*domain.Lesson, error) {
			return []*domain.Lesson{lesson}, nil
		},
	})

	rec := serveRequest(http.MethodGet, "/api/students/{studentID}/lessons",
		"/api/students/"+uuid.NewString()+"/lessons", "", handler.ListStudentLessons)

	require.Equal(t, http.StatusOK, rec.Code)

	var cards []LessonCardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cards))
	require.Len(t, cards, 1)
	assert.Equal(t, "new", cards[0].Status)
	assert.Equal(t, 0, cards[0].ProgressPercent)
	assert.Equal(t, domain.DefaultLessonXPReward, cards[0].XPReward)
	assert.Equal(t, domain.DefaultLessonDurationMinutes, cards[0].DurationMinutes)
}

func TestListStudentLessonsHandler_EmptyListIsJSONArray(t *testing.T) {
	t.Parallel()

	handler := NewLessonHandler(&mockLessonService{
		listFn: func(_ context.Context) ([]*domain.Lesson, error) {
			return []*domain.Lesson{}, nil
		},
	})

	rec := serveRequest(http.MethodGet, "/api/students/{studentID}/lessons",
		"/api/students/"+uuid.NewString()+"/lessons", "", handler.ListStudentLessons)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}
