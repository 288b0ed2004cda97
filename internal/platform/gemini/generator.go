package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"github.com/nevo-app/nevo-api/internal/config"
	"github.com/nevo-app/nevo-api/internal/domain"
	"github.com/nevo-app/nevo-api/internal/generation"
	"github.com/nevo-app/nevo-api/internal/platform/logger"
)

// Generator implements generation.SlideGenerator and
// generation.GuidanceGenerator using the Gemini completion service.
//
// Failures never surface to callers: transport errors, unparseable
// responses, and decks with no valid slide all collapse to a call-site
// specific fallback value, logged for operators. Lesson creation and
// parent guidance therefore always succeed from the caller's view.
type Generator struct {
	model   completionModel
	timeout time.Duration
	logger  *slog.Logger
}

// Ensure Generator satisfies both generation interfaces.
var (
	_ generation.SlideGenerator    = (*Generator)(nil)
	_ generation.GuidanceGenerator = (*Generator)(nil)
)

// NewGenerator creates a Generator backed by the Gemini API using the
// supplied LLM configuration.
func NewGenerator(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (*Generator, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key is required", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name is required", generation.ErrInvalidConfig)
	}
	if cfg.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("%w: timeout must be positive", generation.ErrInvalidConfig)
	}

	model, err := newGenaiModel(ctx, cfg.GeminiAPIKey, cfg.ModelName)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Generator{
		model:   model,
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		logger:  logger.With(slog.String("component", "gemini_generator")),
	}, nil
}

// fallbackSlides is the deck served when slide generation fails.
func fallbackSlides() []domain.Slide {
	return []domain.Slide{
		{
			Type:    domain.SlideTypeIntro,
			Title:   "Error Generating Content",
			Content: "Please try again later.",
		},
	}
}

// fallbackGuidance is the guidance served when generation fails.
func fallbackGuidance() domain.Guidance {
	return domain.Guidance{
		Recommendations:   []string{"Check back later"},
		EncouragementTips: []string{"Keep supporting them!"},
	}
}

// GenerateSlides implements generation.SlideGenerator. It renders the
// slide prompt for the requested profile, calls the completion service,
// and parses the response into a slide deck. Invalid slides are repaired
// or dropped; if nothing usable remains the fallback deck is returned.
func (g *Generator) GenerateSlides(ctx context.Context, req generation.SlideRequest) []domain.Slide {
	log := logger.FromContextOrDefault(ctx, g.logger)

	prompt, err := renderPrompt(slidePrompt, req)
	if err != nil {
		log.Error("failed to render slide prompt",
			slog.String("error", err.Error()),
			slog.String("profile", string(req.Profile)))
		return fallbackSlides()
	}

	raw, err := g.complete(ctx, prompt)
	if err != nil {
		log.Warn("slide generation call failed, serving fallback deck",
			slog.String("error", err.Error()),
			slog.String("profile", string(req.Profile)))
		return fallbackSlides()
	}

	var slides []domain.Slide
	if err := json.Unmarshal([]byte(cleanResponse(raw)), &slides); err != nil {
		log.Warn("slide response is not valid JSON, serving fallback deck",
			slog.String("error", err.Error()),
			slog.String("profile", string(req.Profile)))
		return fallbackSlides()
	}

	slides = repairSlides(slides, log)
	if len(slides) == 0 {
		log.Warn("no valid slides in model response, serving fallback deck",
			slog.String("profile", string(req.Profile)))
		return fallbackSlides()
	}

	log.Debug("slides generated",
		slog.String("profile", string(req.Profile)),
		slog.Int("slide_count", len(slides)))
	return slides
}

// GenerateGuidance implements generation.GuidanceGenerator.
func (g *Generator) GenerateGuidance(ctx context.Context, req generation.GuidanceRequest) domain.Guidance {
	log := logger.FromContextOrDefault(ctx, g.logger)

	prompt, err := renderPrompt(guidancePrompt, req)
	if err != nil {
		log.Error("failed to render guidance prompt",
			slog.String("error", err.Error()))
		return fallbackGuidance()
	}

	raw, err := g.complete(ctx, prompt)
	if err != nil {
		log.Warn("guidance generation call failed, serving fallback",
			slog.String("error", err.Error()))
		return fallbackGuidance()
	}

	var guidance domain.Guidance
	if err := json.Unmarshal([]byte(cleanResponse(raw)), &guidance); err != nil {
		log.Warn("guidance response is not valid JSON, serving fallback",
			slog.String("error", err.Error()))
		return fallbackGuidance()
	}

	return guidance
}

// complete issues one bounded completion call.
func (g *Generator) complete(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := g.model.GenerateText(callCtx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	return text, nil
}

func renderPrompt(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// cleanResponse strips markdown code fences the model sometimes adds
// despite the prompt, then trims surrounding whitespace.
func cleanResponse(raw string) string {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

// repairSlides drops slides that break the deck invariants and strips
// questions from slide types that cannot carry one. The model mostly
// complies with the prompt, but a single bad slide must not take the
// whole lesson down.
func repairSlides(slides []domain.Slide, log *slog.Logger) []domain.Slide {
	valid := make([]domain.Slide, 0, len(slides))
	for i := range slides {
		slide := slides[i]

		if slide.Question != nil &&
			slide.Type != domain.SlideTypeInteractive && slide.Type != domain.SlideTypeQuiz {
			log.Debug("stripping misplaced question from slide",
				slog.String("slide_type", string(slide.Type)),
				slog.Int("index", i))
			slide.Question = nil
		}

		if err := slide.Validate(); err != nil {
			log.Debug("dropping invalid slide",
				slog.String("error", err.Error()),
				slog.Int("index", i))
			continue
		}

		valid = append(valid, slide)
	}
	return valid
}
