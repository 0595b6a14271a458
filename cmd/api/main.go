package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	apiconfig "vehicle_valuation/pkg/api/config"
	"vehicle_valuation/pkg/api/valuation"
	"vehicle_valuation/pkg/core/baseline"
	"vehicle_valuation/pkg/core/config"
	"vehicle_valuation/pkg/core/consensus"
	"vehicle_valuation/pkg/core/pipeline"
	"vehicle_valuation/pkg/core/pricing"
	"vehicle_valuation/pkg/core/store"
	"vehicle_valuation/pkg/models"
	"vehicle_valuation/pkg/providers/aiprice"
	"vehicle_valuation/pkg/providers/scraper"
	"vehicle_valuation/pkg/providers/segment"
)

func main() {
	godotenv.Load()

	cfg := loadConfig()
	ctx := context.Background()

	// Database is optional: without it, valuations run but nothing is
	// archived and discontinued models rely on the deflation fallback.
	var valuationRepo *store.ValuationRepo
	var quotesRepo *store.QuotesRepo
	var historical baseline.HistoricalSource
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(ctx); err != nil {
			fmt.Printf("[FATAL] database init failed: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		valuationRepo = store.NewValuationRepo()
		quotesRepo = store.NewQuotesRepo()
		historical = quotesRepo
		fmt.Println("[API] valuation archive and historical quotes enabled")
	} else {
		fmt.Println("[WARNING] DATABASE_URL not set, running without persistence")
	}

	var fetcher baseline.QuoteFetcher = consensus.NewFetcher(buildSources(ctx), 15*time.Second)
	if quotesRepo != nil {
		// Every live fetch round feeds the historical archive that prices
		// discontinued models later.
		fetcher = store.NewArchivingFetcher(fetcher, quotesRepo)
	}
	selector := baseline.NewSelector(cfg, fetcher, historical, segment.NewEstimator(cfg.Registry))
	pipe := pipeline.New(cfg, selector)

	valuationHandler := valuation.NewHandler(pipe, valuationRepo)
	http.HandleFunc("/api/valuate", valuationHandler.HandleValuate)
	http.HandleFunc("/api/valuations", valuationHandler.HandleGetValuation)

	configHandler := apiconfig.NewHandler(cfg)
	http.HandleFunc("/api/config", configHandler.HandleConfig)

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	fmt.Printf("API server starting on %s...\n", addr)
	fmt.Println("  - POST /api/valuate        (?report=1 for markdown)")
	fmt.Println("  - GET  /api/valuations?id=<request_id>")
	fmt.Println("  - GET  /api/config")

	if err := http.ListenAndServe(addr, nil); err != nil {
		fmt.Printf("[FATAL] server failed to start: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() *config.Config {
	path := os.Getenv("VALUATION_CONFIG")
	if path == "" {
		path = "config/valuation.yaml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Printf("[WARNING] %v, using built-in defaults\n", err)
		cfg = config.Default()
	}

	if registryPath := os.Getenv("REGISTRY_FILE"); registryPath != "" {
		if err := cfg.LoadRegistryHJSON(registryPath); err != nil {
			fmt.Printf("[WARNING] registry overlay failed: %v\n", err)
		} else {
			fmt.Printf("[CONFIG] registry overlaid from %s\n", registryPath)
		}
	}
	return cfg
}

// buildSources assembles the price source chain from the environment. The
// scraped aggregators always register; the AI sources only when a key is set.
func buildSources(ctx context.Context) []pricing.PriceSource {
	var sources []pricing.PriceSource

	sources = append(sources,
		scraper.NewAggregatorSource(scraper.SiteConfig{
			Name:          "cardekho",
			Tier:          models.TierPrimaryAggregator,
			BaseURL:       "https://www.cardekho.com",
			PathTemplate:  "/carmodels/%s/%s",
			PriceSelector: "div.price span.amount",
		}, nil),
		scraper.NewAggregatorSource(scraper.SiteConfig{
			Name:          "zigwheels",
			Tier:          models.TierSecondaryAggregator,
			BaseURL:       "https://www.zigwheels.com",
			PathTemplate:  "/newcars/%s/%s",
			PriceSelector: "span.zw-price",
		}, nil),
	)

	if os.Getenv("GEMINI_API_KEY") != "" {
		sources = append(sources, aiprice.NewGeminiSource(os.Getenv("GEMINI_MODEL")))
		if os.Getenv("GEMINI_LEGACY_SDK") == "1" {
			legacy, err := aiprice.NewLegacySource(ctx, "")
			if err != nil {
				fmt.Printf("[WARNING] legacy Gemini source unavailable: %v\n", err)
			} else {
				sources = append(sources, legacy)
			}
		}
	} else {
		fmt.Println("[WARNING] GEMINI_API_KEY not set, AI price sources disabled")
	}

	fmt.Printf("[API] %d price source(s) registered\n", len(sources))
	return sources
}
