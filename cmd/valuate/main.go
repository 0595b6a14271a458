// Command valuate runs one valuation from the command line: vehicle JSON in,
// Markdown report (or raw result JSON) out. Meant for procurement spot checks
// and for exercising the pipeline without the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"vehicle_valuation/pkg/core/baseline"
	"vehicle_valuation/pkg/core/config"
	"vehicle_valuation/pkg/core/consensus"
	"vehicle_valuation/pkg/core/pipeline"
	"vehicle_valuation/pkg/core/pricing"
	"vehicle_valuation/pkg/core/report"
	"vehicle_valuation/pkg/core/store"
	"vehicle_valuation/pkg/models"
	"vehicle_valuation/pkg/providers/aiprice"
	"vehicle_valuation/pkg/providers/segment"
)

func main() {
	vehicleFile := flag.String("vehicle", "", "path to the vehicle record JSON (required)")
	configFile := flag.String("config", "config/valuation.yaml", "path to the calibration YAML")
	registryFile := flag.String("registry", "", "optional Hjson registry overlay")
	asJSON := flag.Bool("json", false, "print the raw result JSON instead of the report")
	flag.Parse()

	if *vehicleFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err == nil {
		fmt.Println("[CLI] loaded .env")
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Printf("[WARNING] %v, using built-in defaults\n", err)
		cfg = config.Default()
	}
	if *registryFile != "" {
		if err := cfg.LoadRegistryHJSON(*registryFile); err != nil {
			log.Fatalf("registry overlay failed: %v", err)
		}
	}

	data, err := os.ReadFile(*vehicleFile)
	if err != nil {
		log.Fatalf("cannot read vehicle file: %v", err)
	}
	var vehicle models.VehicleRecord
	if err := json.Unmarshal(data, &vehicle); err != nil {
		log.Fatalf("cannot parse vehicle file: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	var quotesRepo *store.QuotesRepo
	var historical baseline.HistoricalSource
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(ctx); err != nil {
			log.Fatalf("database init failed: %v", err)
		}
		defer store.Close()
		quotesRepo = store.NewQuotesRepo()
		historical = quotesRepo
	}

	var sources []pricing.PriceSource
	if os.Getenv("GEMINI_API_KEY") != "" {
		sources = append(sources, aiprice.NewGeminiSource(os.Getenv("GEMINI_MODEL")))
	} else {
		fmt.Println("[WARNING] GEMINI_API_KEY not set, relying on archive and segment estimates")
	}

	var fetcher baseline.QuoteFetcher = consensus.NewFetcher(sources, 15*time.Second)
	if quotesRepo != nil {
		fetcher = store.NewArchivingFetcher(fetcher, quotesRepo)
	}
	selector := baseline.NewSelector(cfg, fetcher, historical, segment.NewEstimator(cfg.Registry))
	pipe := pipeline.New(cfg, selector)

	result, err := pipe.Valuate(ctx, &vehicle)
	if err != nil {
		log.Fatalf("valuation failed: %v", err)
	}

	if *asJSON {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Fatalf("marshal result: %v", err)
		}
		fmt.Println(string(out))
		return
	}

	doc, err := report.NewGenerator().Render(&vehicle, result, time.Now())
	if err != nil {
		log.Fatalf("report rendering failed: %v", err)
	}
	fmt.Println(doc)
}
