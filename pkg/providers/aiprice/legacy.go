package aiprice

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"vehicle_valuation/pkg/models"
)

// LegacySource is the same lookup on the older generative-ai-go SDK. Kept as
// a separately registrable source so deployments still pinned to that SDK can
// contribute quotes alongside GeminiSource.
type LegacySource struct {
	modelName string
	client    *genai.Client
}

func NewLegacySource(ctx context.Context, modelName string) (*LegacySource, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	return &LegacySource{modelName: modelName, client: client}, nil
}

func (s *LegacySource) Name() string            { return "gemini-legacy" }
func (s *LegacySource) Tier() models.SourceTier { return models.TierSecondaryAggregator }

func (s *LegacySource) Close() error {
	return s.client.Close()
}

func (s *LegacySource) Fetch(ctx context.Context, identity models.VehicleIdentity) ([]models.PriceQuote, error) {
	model := s.client.GenerativeModel(s.modelName)
	model.SetTemperature(0.1)

	prompt := fmt.Sprintf("%s\n\nTask: current ex-showroom price for %s (%s)",
		priceSystemPrompt, identity, identity.FuelType)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini price lookup failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, nil
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return parsePriceResponse(s.Name(), s.Tier(), sb.String())
}
