// Package scraper extracts price quotes from aggregator listing pages. It is
// the non-AI counterpart of pkg/providers/aiprice: a plain HTTP fetch plus
// CSS-selector extraction, for sources that publish stable listing markup.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"vehicle_valuation/pkg/models"
)

// SiteConfig describes one aggregator site's listing layout.
type SiteConfig struct {
	Name          string
	Tier          models.SourceTier
	BaseURL       string // e.g. "https://www.cardekho.com"
	PathTemplate  string // e.g. "/carmodels/%s/%s" filled with make, model slugs
	PriceSelector string // CSS selector whose text contains the price
}

// AggregatorSource scrapes one configured site.
type AggregatorSource struct {
	site   SiteConfig
	client *http.Client
}

func NewAggregatorSource(site SiteConfig, client *http.Client) *AggregatorSource {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &AggregatorSource{site: site, client: client}
}

func (s *AggregatorSource) Name() string            { return s.site.Name }
func (s *AggregatorSource) Tier() models.SourceTier { return s.site.Tier }

func (s *AggregatorSource) Fetch(ctx context.Context, identity models.VehicleIdentity) ([]models.PriceQuote, error) {
	pageURL := s.site.BaseURL + fmt.Sprintf(s.site.PathTemplate, slug(identity.Make), slug(identity.Model))
	if _, err := url.Parse(pageURL); err != nil {
		return nil, fmt.Errorf("bad listing URL %s: %w", pageURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; valuation-engine/1.0)")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageURL, err)
	}
	return s.extract(doc, pageURL)
}

// extract pulls every matching price element. Listing pages usually show one
// price per variant; all parseable ones are returned and consensus handles
// the rest.
func (s *AggregatorSource) extract(doc *goquery.Document, pageURL string) ([]models.PriceQuote, error) {
	now := time.Now()
	var quotes []models.PriceQuote
	doc.Find(s.site.PriceSelector).Each(func(i int, sel *goquery.Selection) {
		price, ok := ParseRupees(sel.Text())
		if !ok {
			return
		}
		quotes = append(quotes, models.PriceQuote{
			Source:    s.site.Name,
			Price:     price,
			Tier:      s.site.Tier,
			URL:       pageURL,
			FetchedAt: now,
		})
	})
	if len(quotes) == 0 {
		return nil, fmt.Errorf("no price found at %s (selector %q)", pageURL, s.site.PriceSelector)
	}
	return quotes, nil
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}
