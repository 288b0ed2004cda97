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

func testAssessment(t *testing.T, studentID uuid.UUID) *domain.Assessment {
	t.Helper()

	assessment, err := domain.NewAssessment(studentID,
		map[string]string{"q1": "a"}, domain.ProfileVisual)
	require.NoError(t, err)
	return assessment
}

func TestSubmitAssessmentHandler_Success(t *testing.T) {
	t.Parallel()

	studentID := uuid.New()
	assessment := testAssessment(t, studentID)
	handler := NewAssessmentHandler(&mockAssessmentService{
		submitFn: func(_ context.Context, gotStudentID uuid.UUID, answers map[string]string, profile string) (*domain.Assessment, error) {
			assert.Equal(t, studentID, gotStudentID)
			assert.Equal(t, map[string]string{"q1": "a"}, answers)
			assert.Equal(t, "Visual", profile)
			return assessment, nil
		},
	})

	body := `{"studentId":"` + studentID.String() + `","answers":{"q1":"a"},"computedProfile":"Visual"}`
	rec := serveRequest(http.MethodPost, "/api/assessments", "/api/assessments", body, handler.Submit)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp AssessmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, assessment.ID.String(), resp.AssessmentID)
	assert.Equal(t, "Visual", resp.Profile)
	assert.Equal(t, "Visual Learner", resp.Personalization.Title)
	assert.Equal(t, 15, resp.Personalization.RecommendedBreakIntervalMinutes)
}

func TestSubmitAssessmentHandler_UnrecognizedProfile(t *testing.T) {
	t.Parallel()

	handler := NewAssessmentHandler(&mockAssessmentService{
		submitFn: func(_ context.Context, _ uuid.UUID, _ map[string]string, profile string) (*domain.Assessment, error) {
			_, err := domain.ParseProfileCode(profile)
			return nil, err
		},
	})

	body := `{"studentId":"` + uuid.NewString() + `","answers":{"q1":"a"},"computedProfile":"Telepathic"}`
	rec := serveRequest(http.MethodPost, "/api/assessments", "/api/assessments", body, handler.Submit)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "recognized learning profile")
}

func TestSubmitAssessmentHandler_MalformedStudentID(t *testing.T) {
	t.Parallel()

	handler := NewAssessmentHandler(&mockAssessmentService{})

	body := `{"studentId":"not-a-uuid","answers":{"q1":"a"},"computedProfile":"Visual"}`
	rec := serveRequest(http.MethodPost, "/api/assessments", "/api/assessments", body, handler.Submit)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitAssessmentHandler_EmptyAnswers(t *testing.T) {
	t.Parallel()

	handler := NewAssessmentHandler(&mockAssessmentService{})

	body := `{"studentId":"` + uuid.NewString() + `","answers":{},"computedProfile":"Visual"}`
	rec := serveRequest(http.MethodPost, "/api/assessments", "/api/assessments", body, handler.Submit)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetLatestAssessmentHandler_Success(t *testing.T) {
	t.Parallel()

	studentID := uuid.New()
	assessment := testAssessment(t, studentID)
	handler := NewAssessmentHandler(&mockAssessmentService{
		latestFn: func(_ context.Context, gotStudentID uuid.UUID) (*domain.Assessment, error) {
			assert.Equal(t, studentID, gotStudentID)
			return assessment, nil
		},
	})

	rec := serveRequest(http.MethodGet, "/api/students/{studentID}/assessment",
		"/api/students/"+studentID.String()+"/assessment", "", handler.GetLatest)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AssessmentDetailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, studentID.String(), resp.StudentID)
	assert.Equal(t, "Visual", resp.ComputedProfile)
}

func TestGetLatestAssessmentHandler_NoneFound(t *testing.T) {
	t.Parallel()

	handler := NewAssessmentHandler(&mockAssessmentService{
		latestFn: func(_ context.Context, _ uuid.UUID) (*domain.Assessment, error) {
			return nil, store.ErrAssessmentNotFound
		},
	})

	rec := serveRequest(http.MethodGet, "/api/students/{studentID}/assessment",
		"/api/students/"+uuid.NewString()+"/assessment", "", handler.GetLatest)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Assessment not found")
}
