package aiprice

import (
	"testing"

	"vehicle_valuation/pkg/models"
)

func TestParsePriceResponseCleanJSON(t *testing.T) {
	text := `{"quotes": [
		{"source": "cardekho", "price": 659000, "url": "https://example.com/a"},
		{"source": "carwale", "price": 660000, "url": "https://example.com/b"}
	]}`
	quotes, err := parsePriceResponse("gemini-search", models.TierPrimaryAggregator, text)
	if err != nil {
		t.Fatal(err)
	}
	if len(quotes) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(quotes))
	}
	if quotes[0].Source != "gemini-search:cardekho" {
		t.Errorf("source = %q", quotes[0].Source)
	}
	if quotes[1].Price != 660000 {
		t.Errorf("price = %.0f", quotes[1].Price)
	}
}

func TestParsePriceResponseFencedAndSloppy(t *testing.T) {
	text := "```json\n{'quotes': [{'source': 'zigwheels', 'price': 655000, 'url': ''},]}\n```"
	quotes, err := parsePriceResponse("gemini-legacy", models.TierSecondaryAggregator, text)
	if err != nil {
		t.Fatal(err)
	}
	if len(quotes) != 1 || quotes[0].Price != 655000 {
		t.Fatalf("got %v", quotes)
	}
	if quotes[0].Tier != models.TierSecondaryAggregator {
		t.Errorf("tier = %s", quotes[0].Tier)
	}
}

func TestParsePriceResponseDropsNonPositive(t *testing.T) {
	text := `{"quotes": [{"source": "cardekho", "price": 0}, {"source": "carwale", "price": -1}]}`
	quotes, err := parsePriceResponse("gemini-search", models.TierPrimaryAggregator, text)
	if err != nil {
		t.Fatal(err)
	}
	if len(quotes) != 0 {
		t.Errorf("expected no quotes, got %v", quotes)
	}
}

func TestParsePriceResponseProseFails(t *testing.T) {
	if _, err := parsePriceResponse("gemini-search", models.TierPrimaryAggregator, "the price is about six lakh"); err == nil {
		t.Fatal("expected parse failure for prose")
	}
}
