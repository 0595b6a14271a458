// Package report renders a completed valuation as a Markdown document for
// procurement teams and customer-facing summaries.
package report

import (
	"fmt"
	"strings"
	"time"

	"vehicle_valuation/pkg/core/utils"
	"vehicle_valuation/pkg/models"
)

// Generator renders ValuationResults to Markdown.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Render produces the full report. The output is validated through the
// markdown parser before being returned; a validation failure is a bug in
// this package, surfaced as an error rather than shipped downstream.
func (g *Generator) Render(vehicle *models.VehicleRecord, result *models.ValuationResult, generatedAt time.Time) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# Vehicle Valuation Report\n\n")
	fmt.Fprintf(&b, "**Request:** `%s`  \n", result.RequestID)
	fmt.Fprintf(&b, "**Generated:** %s\n\n", generatedAt.Format("2006-01-02 15:04 MST"))

	fmt.Fprintf(&b, "## Vehicle\n\n")
	fmt.Fprintf(&b, "| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Vehicle | %s |\n", vehicle.Identity())
	fmt.Fprintf(&b, "| Fuel | %s |\n", vehicle.FuelType)
	fmt.Fprintf(&b, "| Registered | %s |\n", vehicle.RegistrationDate.Format("2006-01-02"))
	fmt.Fprintf(&b, "| Odometer | %d km (expected %d km) |\n", vehicle.OdometerKM, result.ExpectedOdometer)
	fmt.Fprintf(&b, "| Owners | %d |\n\n", vehicle.Owners)

	fmt.Fprintf(&b, "## Prices\n\n")
	fmt.Fprintf(&b, "**Fair market value: %s**\n\n", rupees(result.FairMarketValue))
	fmt.Fprintf(&b, "| Context | Price |\n|---|---|\n")
	fmt.Fprintf(&b, "| Private sale (C2C) | %s |\n", rupees(result.Prices.C2C))
	fmt.Fprintf(&b, "| Dealer buys (C2B) | %s |\n", rupees(result.Prices.C2B))
	fmt.Fprintf(&b, "| Dealer sells (B2C) | %s |\n", rupees(result.Prices.B2C))
	fmt.Fprintf(&b, "| Wholesale (B2B) | %s |\n\n", rupees(result.Prices.B2B))
	fmt.Fprintf(&b, "Trade-in negotiation band: %s – %s\n\n", rupees(result.TradeInMin), rupees(result.TradeInMax))

	fmt.Fprintf(&b, "## How the value was computed\n\n")
	fmt.Fprintf(&b, "Baseline **%s** (%s, %d, confidence %s, %d source(s))\n\n",
		rupees(result.Baseline), baselineLabel(result.BaselineKind), result.ReferenceYear,
		result.Consensus.Confidence, result.Consensus.SourceCount)

	if len(result.DepreciationSteps) > 0 {
		fmt.Fprintf(&b, "| Age bracket | Years | Rate | Depreciated | Remaining |\n|---|---|---|---|---|\n")
		for _, step := range result.DepreciationSteps {
			fmt.Fprintf(&b, "| %s | %.1f | %.0f%% | %s | %s |\n",
				step.Bracket, step.Years, step.Rate*100, rupees(step.Amount), rupees(step.Residual))
		}
		fmt.Fprintf(&b, "\nResidual after age: **%.1f%%** (%s)\n\n", result.ResidualPct, rupees(result.DepreciatedValue))
	}

	fmt.Fprintf(&b, "| Adjustment | Multiplier |\n|---|---|\n")
	fmt.Fprintf(&b, "| Usage | %.3f |\n", result.UsageMultiplier)
	fmt.Fprintf(&b, "| Condition (%s, %.0f/100) | %.2f |\n", result.ConditionGrade, result.ConditionScore, result.ConditionMultiplier)
	fmt.Fprintf(&b, "| Ownership | %.2f |\n", result.OwnershipMultiplier)
	fmt.Fprintf(&b, "| Market sentiment | %.3f |\n\n", result.SentimentMultiplier)

	if len(result.SentimentFactors) > 0 {
		fmt.Fprintf(&b, "Sentiment detail:\n\n")
		for _, f := range result.SentimentFactors {
			fmt.Fprintf(&b, "- %s: %.3f (%s)\n", f.Name, f.Multiplier, f.Reason)
		}
		fmt.Fprintf(&b, "\n")
	}

	if result.ManualVerificationRequired {
		fmt.Fprintf(&b, "## ⚠ Manual verification required\n\n")
	}
	if len(result.Warnings) > 0 {
		fmt.Fprintf(&b, "## Warnings\n\n")
		for _, w := range result.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
		fmt.Fprintf(&b, "\n")
	}
	if len(result.Notes) > 0 {
		fmt.Fprintf(&b, "## Notes\n\n")
		for _, n := range result.Notes {
			fmt.Fprintf(&b, "- %s\n", n)
		}
		fmt.Fprintf(&b, "\n")
	}

	doc := utils.CleanMarkdown(b.String())
	if !utils.ValidateMarkdown(doc) {
		return "", fmt.Errorf("generated report failed markdown validation")
	}
	return doc, nil
}

func baselineLabel(kind models.BaselineKind) string {
	switch kind {
	case models.BaselineCurrentNew:
		return "current new-vehicle price"
	case models.BaselineOriginalPurchase:
		return "original purchase price"
	default:
		return string(kind)
	}
}

// rupees formats an amount in the Indian grouping style: ₹6,59,500.
func rupees(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	whole := fmt.Sprintf("%.0f", amount)

	// Last three digits, then groups of two.
	var groups []string
	if len(whole) > 3 {
		head := whole[:len(whole)-3]
		groups = append(groups, whole[len(whole)-3:])
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
	} else {
		groups = []string{whole}
	}

	out := "₹" + strings.Join(groups, ",")
	if neg {
		out = "-" + out
	}
	return out
}
