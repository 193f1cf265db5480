package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog"

	"github.com/aristath/spyglass/internal/modules/economics"
	"github.com/aristath/spyglass/internal/modules/fundamentals"
	"github.com/aristath/spyglass/internal/modules/scoring"
)

// Narrator turns scored results into plain-English interpretations via the
// Anthropic API. Short per-symbol narratives use a small fast model; the
// daily briefing uses a larger one.
type Narrator struct {
	client         anthropic.Client
	narrativeModel string
	briefingModel  string
	log            zerolog.Logger
}

// NewNarrator creates a narrator. Returns nil when no API key is set;
// callers treat a nil narrator as "narration disabled".
func NewNarrator(apiKey, narrativeModel, briefingModel string, log zerolog.Logger) *Narrator {
	if apiKey == "" {
		return nil
	}
	return &Narrator{
		client:         anthropic.NewClient(option.WithAPIKey(apiKey)),
		narrativeModel: narrativeModel,
		briefingModel:  briefingModel,
		log:            log.With().Str("component", "narrator").Logger(),
	}
}

func (n *Narrator) complete(ctx context.Context, model string, maxTokens int64, prompt string) (string, error) {
	resp, err := n.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic call failed: %w", err)
	}

	text := textContent(resp.Content)
	if text == "" {
		return "", fmt.Errorf("empty response from model %s", model)
	}
	return text, nil
}

// textContent joins the text blocks of a response, skipping any other
// block kind (tool use, thinking).
func textContent(blocks []anthropic.ContentBlockUnion) string {
	var sb strings.Builder
	for _, block := range blocks {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}

// TechnicalNarrative explains a technical result in 2-3 beginner-friendly
// sentences.
func (n *Narrator) TechnicalNarrative(ctx context.Context, r scoring.TechnicalResult) (string, error) {
	kv := r.KeyValues
	prompt := fmt.Sprintf(`You are a concise investment analyst assistant helping a beginner investor understand technical signals.

Symbol: %s
Date: %s
Price: $%.2f
Overall Signal: %s (score %+d/10)

Indicator scores:
- Moving Averages: %+d/2 (SMA50=%s, SMA200=%s)
- MACD: %+d/2 (line=%s)
- RSI: %+d/2 (RSI=%s)
- Bollinger Bands: %+d/2 (%%B=%s, width=%s%%)
- Volume: %+d/2 (ratio=%sx)

Reasoning: %s

Write 2-3 sentences in plain English for a beginner. Explain what these signals mean RIGHT NOW for this ETF and what to watch for next. Be specific about the numbers. Do not use jargon without explaining it.`,
		r.Symbol, r.Date, r.Close, r.Signal, r.Score,
		r.ComponentScores["moving_averages"], fmtPtr(kv.SMA50, "%.2f"), fmtPtr(kv.SMA200, "%.2f"),
		r.ComponentScores["macd"], fmtPtr(kv.MACDLine, "%.3f"),
		r.ComponentScores["rsi"], fmtPtr(kv.RSI, "%.1f"),
		r.ComponentScores["bollinger"], fmtPtr(kv.BBPct, "%.2f"), fmtPtr(kv.BBWidth, "%.2f"),
		r.ComponentScores["volume"], fmtPtr(kv.VolRatio, "%.2f"),
		strings.Join(r.Reasons, "; "))

	return n.complete(ctx, n.narrativeModel, 200, prompt)
}

// FundamentalNarrative explains a fundamental result in 2-3 sentences.
func (n *Narrator) FundamentalNarrative(ctx context.Context, r scoring.FundamentalResult) (string, error) {
	m := r.Metrics
	if m == nil {
		m = &fundamentals.Metrics{}
	}
	prompt := fmt.Sprintf(`You are a concise investment analyst helping a beginner investor understand fundamental signals for an ETF.

Symbol: %s (%s ETF)
Overall Fundamental Signal: %s (score %+d/5)

Metrics:
- P/E Ratio: %s
- Dividend Yield: %s%%
- Expense Ratio: %s%%
- 52-Week Return: %s%%
- Current Risk-Free Rate (10Y Treasury): %.2f%%

Scoring reasons: %s

Write 2-3 sentences in plain English for a beginner. Focus on what the fundamentals mean RIGHT NOW — is this ETF priced attractively? What's the income situation? Keep it specific to these numbers. No jargon without explanation.`,
		r.Symbol, r.ETFType, r.Signal, r.Score,
		fmtPtr(m.PERatio, "%.1f"), fmtPtr(m.DividendYield, "%.2f"),
		fmtPtr(m.ExpenseRatio, "%.4f"), fmtPtr(m.Week52Return, "%.1f"),
		r.RiskFreeRatePct,
		strings.Join(r.Reasons, "; "))

	return n.complete(ctx, n.narrativeModel, 200, prompt)
}

// DailyBriefing produces the structured four-section portfolio briefing
// from the combined results and the latest macro readings.
func (n *Narrator) DailyBriefing(ctx context.Context, today string, results []CombinedResult, econ map[string]economics.Observation) (string, error) {
	var signalRows []string
	for _, r := range results {
		m := r.Risk.Metrics
		vol, beta := "n/a", "n/a"
		if m != nil && m.Volatility != nil {
			vol = fmt.Sprintf("%.0f%%", *m.Volatility*100)
		}
		if m != nil && m.Beta != nil {
			beta = fmt.Sprintf("%.2f", *m.Beta)
		}
		signalRows = append(signalRows, fmt.Sprintf(
			"  %-5s combined=%+.2f (%-11s) | tech=%+d(%s) fund=%+d(%s) risk=%+d(%s) | vol=%s beta=%s",
			r.Symbol, r.CombinedScore, r.CombinedSignal,
			r.Technical.Score, r.Technical.Signal,
			r.Fundamental.Score, r.Fundamental.Signal,
			r.Risk.Score, r.Risk.Level,
			vol, beta))
	}

	var econLines []string
	for _, ind := range economics.TrackedIndicators {
		if obs, ok := econ[ind.Code]; ok {
			econLines = append(econLines, fmt.Sprintf("  %s: %.2f%s (as of %s)", ind.Name, obs.Value, ind.Unit, obs.Date))
		}
	}
	econStr := "  (no economic data)"
	if len(econLines) > 0 {
		econStr = strings.Join(econLines, "\n")
	}

	top3 := symbolsOf(results, 3, false)
	bot3 := symbolsOf(results, 3, true)

	prompt := fmt.Sprintf(`You are a thoughtful investment advisor producing a daily portfolio briefing for a beginner long-term investor. Today is %s.

INVESTOR PROFILE:
- Building an emergency fund ($5,000/month → $30,000 target, 6-month timeline)
- Will start investing $850/month once emergency fund is complete (~Month 7)
- Planned allocation: 100%% index ETFs (VTI 50%%, VXUS 30%%, BND 20%%)
- Risk tolerance: moderate-conservative, long-term (10+ years)
- Currently paper-trading to learn — not yet investing real money

COMBINED SIGNAL SCORES (technical 40%% + fundamental 30%% + risk 30%%):
%s

Top signals: %s
Weak signals: %s

ECONOMIC INDICATORS (latest available):
%s

Write a structured daily briefing with these 4 sections:

**1. Market Overview (2-3 sentences)**
Summarise the overall market environment using the economic indicators and technical signals. Is the market broadly bullish, bearish, or mixed? What's the macro backdrop? Mention VIX and interest rates specifically.

**2. Top Opportunities (3-4 bullet points)**
Highlight the best-positioned ETFs from the combined scores. For each, explain WHY it looks attractive — what combination of technical momentum, valuation, and risk profile makes it stand out. Be specific with numbers.

**3. Key Risks to Watch (3-4 bullet points)**
Identify the main concerns from the data — overvalued sectors, elevated volatility, economic warning signs. Be concrete about what numbers concern you and why.

**4. Guidance for Your Situation (2-3 sentences)**
Given that the investor is still in the emergency fund phase (not yet investing real money), what's the practical takeaway? What should they be observing or learning from today's data? When they do start investing VTI/VXUS/BND in ~6 months, does today's data change any of their thinking?

Keep it educational but concrete. Use actual numbers from the data. Avoid jargon without explanation. Maximum 400 words.`,
		today, strings.Join(signalRows, "\n"),
		strings.Join(top3, ", "), strings.Join(bot3, ", "), econStr)

	return n.complete(ctx, n.briefingModel, 600, prompt)
}

func symbolsOf(results []CombinedResult, limit int, fromEnd bool) []string {
	n := len(results)
	if limit > n {
		limit = n
	}
	out := make([]string, 0, limit)
	if fromEnd {
		for _, r := range results[n-limit:] {
			out = append(out, r.Symbol)
		}
		return out
	}
	for _, r := range results[:limit] {
		out = append(out, r.Symbol)
	}
	return out
}

func fmtPtr(v *float64, format string) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf(format, *v)
}
