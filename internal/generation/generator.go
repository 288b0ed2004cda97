package generation

import (
	"context"

	"github.com/nevo-app/nevo-api/internal/domain"
)

// SlideRequest carries everything the completion service needs to render
// one lesson variant for a single learning profile.
type SlideRequest struct {
	Title   string
	Subject string
	Content string
	Profile domain.LearningProfileCode
}

// GuidanceRequest carries the inputs for a parent guidance generation.
// RecentActivity is a short free-text summary of the child's latest work.
type GuidanceRequest struct {
	ChildName      string
	Profile        domain.LearningProfileCode
	RecentActivity string
}

// SlideGenerator produces a slide deck tailored to a learning profile.
// Implementations degrade gracefully: on any upstream or parse failure
// they return a usable placeholder deck rather than an error, so callers
// never have to branch on generation failure.
type SlideGenerator interface {
	// GenerateSlides creates a micro-lesson deck from the raw lesson
	// material. The returned slice is always non-empty.
	GenerateSlides(ctx context.Context, req SlideRequest) []domain.Slide
}

// GuidanceGenerator produces support guidance for a parent based on
// their child's learning profile and recent activity. Like SlideGenerator,
// implementations absorb upstream failures and return fallback guidance
// instead of an error.
type GuidanceGenerator interface {
	GenerateGuidance(ctx context.Context, req GuidanceRequest) domain.Guidance
}
