// Package aiprice fetches price quotes by asking a search-grounded model to
// read the aggregator listings for a vehicle identity. Two adapters exist:
// GeminiSource on the current google.golang.org/genai SDK, and LegacySource
// on github.com/google/generative-ai-go for deployments pinned to it.
package aiprice

import (
	"context"
	"fmt"
	"os"
	"time"

	"google.golang.org/genai"

	"vehicle_valuation/pkg/core/utils"
	"vehicle_valuation/pkg/models"
)

// pricePayload is the response schema the prompt asks for.
type pricePayload struct {
	Quotes []struct {
		Source string  `json:"source"`
		Price  float64 `json:"price"`
		URL    string  `json:"url"`
	} `json:"quotes"`
}

const priceSystemPrompt = `You are a vehicle pricing researcher for the Indian market.
Given a vehicle identity, find its current ex-showroom price on listing sites
(CarDekho, CarWale, ZigWheels) and the manufacturer site. Respond ONLY with JSON:
{"quotes": [{"source": "...", "price": <rupees as number>, "url": "..."}]}
Return an empty quotes array if the vehicle is not listed anywhere.`

// GeminiSource queries Gemini with Google Search grounding enabled.
type GeminiSource struct {
	Model string // defaults to gemini-2.0-flash-exp
}

func NewGeminiSource(model string) *GeminiSource {
	return &GeminiSource{Model: model}
}

func (s *GeminiSource) Name() string            { return "gemini-search" }
func (s *GeminiSource) Tier() models.SourceTier { return models.TierPrimaryAggregator }

func (s *GeminiSource) Fetch(ctx context.Context, identity models.VehicleIdentity) ([]models.PriceQuote, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	model := s.Model
	if model == "" {
		model = "gemini-2.0-flash-exp"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.1)),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: priceSystemPrompt}},
		},
		Tools: []*genai.Tool{
			{GoogleSearchRetrieval: &genai.GoogleSearchRetrieval{}},
		},
	}

	prompt := fmt.Sprintf("Current ex-showroom price for: %s (%s)", identity, identity.FuelType)
	result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("gemini price lookup failed: %w", err)
	}

	return parsePriceResponse(s.Name(), s.Tier(), result.Text())
}

// parsePriceResponse turns a model answer into quotes, tolerating the usual
// JSON imperfections. Quotes with non-positive prices are dropped.
func parsePriceResponse(sourceName string, tier models.SourceTier, text string) ([]models.PriceQuote, error) {
	var payload pricePayload
	if err := utils.ParsePayload(text, &payload); err != nil {
		return nil, fmt.Errorf("unparseable price response: %w", err)
	}

	now := time.Now()
	var quotes []models.PriceQuote
	for _, q := range payload.Quotes {
		if q.Price <= 0 {
			continue
		}
		quotes = append(quotes, models.PriceQuote{
			Source:    fmt.Sprintf("%s:%s", sourceName, q.Source),
			Price:     q.Price,
			Tier:      tier,
			URL:       q.URL,
			FetchedAt: now,
		})
	}
	return quotes, nil
}
