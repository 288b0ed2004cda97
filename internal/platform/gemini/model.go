package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// completionModel is the seam between the generator and the Gemini SDK.
// Tests substitute a fake; production uses genaiModel.
type completionModel interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// genaiModel adapts a genai client to the completionModel interface.
type genaiModel struct {
	client *genai.Client
	model  string
}

func newGenaiModel(ctx context.Context, apiKey, model string) (*genaiModel, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &genaiModel{
		client: client,
		model:  model,
	}, nil
}

func (m *genaiModel) GenerateText(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	result, err := m.client.Models.GenerateContent(ctx, m.model, contents, nil)
	if err != nil {
		return "", err
	}

	return result.Text(), nil
}
