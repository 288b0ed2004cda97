package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/nevo-app/nevo-api/internal/domain"
	"github.com/nevo-app/nevo-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDashboardService(
	users *fakeUserStore,
	lessons *fakeLessonStore,
	gen *fakeGuidanceGenerator,
) *DashboardService {
	return NewDashboardService(users, lessons, gen, slog.Default())
}

func TestStudentSummary_WithProfile(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	student := seedStudent(t, users)
	require.NoError(t, users.UpdateLearningProfile(context.Background(),
		student.ID, domain.ProfileReadWrite))

	svc := newTestDashboardService(users, newFakeLessonStore(), &fakeGuidanceGenerator{})

	summary, err := svc.StudentSummary(context.Background(), student.ID)
	require.NoError(t, err)

	assert.Equal(t, "Maya Student", summary.FullName)
	assert.Equal(t, "Read/Write", summary.ProfileCode)
	assert.Equal(t, "Read/Write Learner", summary.ProfileTitle)
	assert.Equal(t, "Your AI adapted profile", summary.ProfileDesc)
	assert.Equal(t, "none", summary.FeaturedLessonID)
}

func TestStudentSummary_UnassessedStudent(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	student := seedStudent(t, users)
	svc := newTestDashboardService(users, newFakeLessonStore(), &fakeGuidanceGenerator{})

	summary, err := svc.StudentSummary(context.Background(), student.ID)
	require.NoError(t, err)

	assert.Equal(t, "Unknown", summary.ProfileCode)
	assert.Equal(t, "Unknown Learner", summary.ProfileTitle)
}

func TestStudentSummary_UserNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestDashboardService(newFakeUserStore(), newFakeLessonStore(), &fakeGuidanceGenerator{})

	_, err := svc.StudentSummary(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestClassOverview_Counts(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	lessons := newFakeLessonStore()
	teacherID := uuid.New()

	seedStudent(t, users)
	other, err := domain.NewUser(domain.RoleStudent, "Sam Student", "sam@example.com",
		"a-long-enough-password")
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), other))

	for _, title := range []string{"Fractions", "Decimals"} {
		lesson, err := domain.NewLesson(teacherID, title, "Math", "content",
			map[domain.LearningProfileCode][]domain.Slide{
				domain.ProfileVisual: {{Type: domain.SlideTypeIntro, Title: "Intro"}},
			})
		require.NoError(t, err)
		require.NoError(t, lessons.Create(context.Background(), lesson))
	}

	svc := newTestDashboardService(users, lessons, &fakeGuidanceGenerator{})

	overview, err := svc.ClassOverview(context.Background(), teacherID)
	require.NoError(t, err)

	assert.Equal(t, 2, overview.TotalStudents)
	assert.Equal(t, 2, overview.ActiveLessons)
	assert.Equal(t, 45, overview.AvgProgressPercent)
	assert.Equal(t, 60, overview.CompletionRatePercent)
}

func TestParentGuidance_UsesChildProfile(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	child := seedStudent(t, users)
	require.NoError(t, users.UpdateLearningProfile(context.Background(),
		child.ID, domain.ProfileKinesthetic))

	gen := &fakeGuidanceGenerator{guidance: domain.Guidance{
		Recommendations:   []string{"Use hands-on experiments"},
		EncouragementTips: []string{"Celebrate effort"},
	}}
	svc := newTestDashboardService(users, newFakeLessonStore(), gen)

	guidance, err := svc.ParentGuidance(context.Background(), child.ID)
	require.NoError(t, err)

	assert.Equal(t, "Kinesthetic Learner", guidance.ProfileTitle)
	assert.Equal(t, []string{"Use hands-on experiments"}, guidance.Recommendations)
	assert.Equal(t, []string{"Celebrate effort"}, guidance.EncouragementTips)
	require.Len(t, guidance.OptimalWindows, 1)
	assert.Equal(t, "16:00", guidance.OptimalWindows[0].Start)
	assert.Equal(t, "18:00", guidance.OptimalWindows[0].End)

	assert.Equal(t, "Maya Student", gen.lastReq.ChildName)
	assert.Equal(t, domain.ProfileKinesthetic, gen.lastReq.Profile)
}

func TestParentGuidance_DefaultsToVisual(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	child := seedStudent(t, users)

	gen := &fakeGuidanceGenerator{}
	svc := newTestDashboardService(users, newFakeLessonStore(), gen)

	guidance, err := svc.ParentGuidance(context.Background(), child.ID)
	require.NoError(t, err)

	assert.Equal(t, "Visual Learner", guidance.ProfileTitle)
	assert.Equal(t, domain.ProfileVisual, gen.lastReq.Profile)
}

func TestParentGuidance_ChildNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestDashboardService(newFakeUserStore(), newFakeLessonStore(), &fakeGuidanceGenerator{})

	_, err := svc.ParentGuidance(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
