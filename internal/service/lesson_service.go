package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/nevo-app/nevo-api/internal/domain"
	"github.com/nevo-app/nevo-api/internal/generation"
	"github.com/nevo-app/nevo-api/internal/platform/logger"
	"github.com/nevo-app/nevo-api/internal/store"
)

// LessonService creates lessons from teacher material and serves them to
// students with the variant matching their learning profile.
type LessonService struct {
	lessonStore store.LessonStore
	slideGen    generation.SlideGenerator
	logger      *slog.Logger
}

// NewLessonService creates a new LessonService.
func NewLessonService(
	lessonStore store.LessonStore,
	slideGen generation.SlideGenerator,
	logger *slog.Logger,
) *LessonService {
	if lessonStore == nil {
		panic("lessonStore cannot be nil")
	}
	if slideGen == nil {
		panic("slideGen cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &LessonService{
		lessonStore: lessonStore,
		slideGen:    slideGen,
		logger:      logger.With(slog.String("component", "lesson_service")),
	}
}

// CreateLesson generates one slide deck per profile in
// domain.GeneratedProfiles from the submitted material and persists the
// finished lesson as a single record. Generation failures degrade to
// fallback decks inside the generator, so the lesson is always created
// in the ready state.
func (s *LessonService) CreateLesson(
	ctx context.Context,
	teacherID uuid.UUID,
	title, subject, content string,
) (*domain.Lesson, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	variants := s.generateVariants(ctx, title, subject, content)

	lesson, err := domain.NewLesson(teacherID, title, subject, content, variants)
	if err != nil {
		log.Warn("lesson rejected by domain validation",
			slog.String("error", err.Error()),
			slog.String("teacher_id", teacherID.String()))
		return nil, err
	}

	if err := s.lessonStore.Create(ctx, lesson); err != nil {
		return nil, err
	}

	log.Info("lesson created",
		slog.String("lesson_id", lesson.ID.String()),
		slog.String("teacher_id", teacherID.String()))
	return lesson, nil
}

// generateVariants runs one generation call per profile concurrently.
// Each goroutine writes to its own slot, so no locking is needed; the
// result always has exactly the generated-profile keys.
func (s *LessonService) generateVariants(
	ctx context.Context,
	title, subject, content string,
) map[domain.LearningProfileCode][]domain.Slide {
	decks := make([][]domain.Slide, len(domain.GeneratedProfiles))

	var wg sync.WaitGroup
	for i, profile := range domain.GeneratedProfiles {
		wg.Add(1)
		go func(i int, profile domain.LearningProfileCode) {
			defer wg.Done()
			decks[i] = s.slideGen.GenerateSlides(ctx, generation.SlideRequest{
				Title:   title,
				Subject: subject,
				Content: content,
				Profile: profile,
			})
		}(i, profile)
	}
	wg.Wait()

	variants := make(map[domain.LearningProfileCode][]domain.Slide, len(domain.GeneratedProfiles))
	for i, profile := range domain.GeneratedProfiles {
		variants[profile] = decks[i]
	}
	return variants
}

// GetLessonDetail loads a lesson and resolves the slide deck to serve for
// the requested profile.
func (s *LessonService) GetLessonDetail(
	ctx context.Context,
	lessonID uuid.UUID,
	profile domain.LearningProfileCode,
) (*domain.Lesson, []domain.Slide, error) {
	lesson, err := s.lessonStore.GetByID(ctx, lessonID)
	if err != nil {
		return nil, nil, err
	}

	return lesson, lesson.SlidesFor(profile), nil
}

// ListReadyLessons returns all lessons available to students, newest first.
func (s *LessonService) ListReadyLessons(ctx context.Context) ([]*domain.Lesson, error) {
	return s.lessonStore.FindByStatus(ctx, domain.LessonStatusReady)
}
