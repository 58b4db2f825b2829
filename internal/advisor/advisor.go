// Package advisor renders portfolio analytics into a prompt and asks a
// Gemini model for commentary. It is a thin presentation layer; nothing in
// the engine or services depends on it.
package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"google.golang.org/genai"

	"github.com/wealthos/wealth-os-backend/internal/apperrors"
	"github.com/wealthos/wealth-os-backend/internal/service"
)

const systemInstruction = `You are a conservative wealth management analyst.
Given a portfolio summary and risk report, comment on diversification,
concentration and liquidity risks, and currency exposure. Be specific and
reference the numbers provided. Do not recommend individual securities.`

// Advisor generates AI commentary on portfolio state.
type Advisor struct {
	apiKey string
	model  string
}

// New creates an Advisor. An empty API key leaves it disabled; Analyze
// then returns apperrors.ErrAdvisorUnavailable.
func New(apiKey, model string) *Advisor {
	return &Advisor{apiKey: apiKey, model: model}
}

// Enabled reports whether an API key is configured.
func (a *Advisor) Enabled() bool {
	return a.apiKey != ""
}

// Analyze renders the overview and risk report into a prompt and returns
// the model's commentary.
func (a *Advisor) Analyze(ctx context.Context, overview service.PortfolioOverview, risk service.RiskReport) (string, error) {
	if !a.Enabled() {
		return "", apperrors.ErrAdvisorUnavailable
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: a.apiKey})
	if err != nil {
		return "", fmt.Errorf("failed to create genai client: %w", err)
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, a.model, genai.Text(buildPrompt(overview, risk)), config)
	if err != nil {
		return "", fmt.Errorf("advisor generation failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty model response", apperrors.ErrAdvisorUnavailable)
	}
	return text, nil
}

// buildPrompt flattens the reports into readable lines with properly
// formatted currency amounts.
func buildPrompt(overview service.PortfolioOverview, risk service.RiskReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Portfolio as of %s, base currency %s.\n",
		overview.AsOf.Format("2006-01-02"), overview.BaseCurrency)
	fmt.Fprintf(&b, "Total value: %s, total cost: %s, unrealized gain: %s (%.1f%%).\n\n",
		formatAmount(overview.TotalValue, overview.BaseCurrency),
		formatAmount(overview.TotalCost, overview.BaseCurrency),
		formatAmount(overview.UnrealizedGain, overview.BaseCurrency),
		overview.UnrealizedGainPct*100)

	b.WriteString("Allocation by asset class:\n")
	for _, group := range overview.ByAssetClass {
		fmt.Fprintf(&b, "- %s: %s (%.1f%% of portfolio, gain %.1f%%)\n",
			group.Key, formatAmount(group.Value, overview.BaseCurrency),
			group.Weight*100, group.GainPct*100)
	}

	b.WriteString("\nAllocation by entity:\n")
	for _, group := range overview.ByEntity {
		fmt.Fprintf(&b, "- %s: %s (%.1f%%)\n",
			group.Key, formatAmount(group.Value, overview.BaseCurrency), group.Weight*100)
	}

	fmt.Fprintf(&b, "\nConcentration (threshold %.0f%%):\n", risk.Concentration.Threshold*100)
	if len(risk.Concentration.Flags) == 0 {
		b.WriteString("- no positions above threshold\n")
	}
	for _, flag := range risk.Concentration.Flags {
		fmt.Fprintf(&b, "- %s %q at %.1f%% of portfolio\n", flag.Kind, flag.Name, flag.Share*100)
	}

	fmt.Fprintf(&b, "\nLiquidity: %.1f%% liquid, %.1f%% illiquid (ceiling %.0f%%",
		risk.Liquidity.LiquidShare*100, risk.Liquidity.IlliquidShare*100, risk.Liquidity.Ceiling*100)
	if risk.Liquidity.CeilingBreached {
		b.WriteString(", BREACHED)\n")
	} else {
		b.WriteString(")\n")
	}

	b.WriteString("\nCurrency exposure:\n")
	for _, bucket := range risk.Concentration.ByCurrency {
		fmt.Fprintf(&b, "- %s: %.1f%%\n", bucket.Key, bucket.Share*100)
	}

	return b.String()
}

func formatAmount(value float64, currency string) string {
	return money.NewFromFloat(value, currency).Display()
}
