// internal/advisor/advisor.go
// Package advisor asks an LLM for a read on fired catalog signals. The
// answer is advisory only and never feeds back into validation.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/newthinker/prospect/internal/catalog"
	"github.com/newthinker/prospect/internal/core"
	"github.com/newthinker/prospect/internal/llm"
	"github.com/newthinker/prospect/internal/rules"
)

// Advice actions.
const (
	ActionAct  = "act"
	ActionWait = "wait"
)

// Advice contains the LLM's read on the fired signals.
type Advice struct {
	Action     string   `json:"action"`
	Confidence float64  `json:"confidence"`
	Reasoning  string   `json:"reasoning"`
	Patterns   []string `json:"patterns,omitempty"`
}

// Config holds advisor tuning knobs.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// Advisor reviews catalog signals through an LLM provider.
type Advisor struct {
	llm    llm.Provider
	logger *zap.Logger
	cfg    Config
}

// New creates a new advisor. A nil logger disables logging.
func New(provider llm.Provider, logger *zap.Logger, cfg Config) *Advisor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1024
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.3
	}
	return &Advisor{llm: provider, logger: logger, cfg: cfg}
}

// Review asks the provider whether the fired signals warrant acting now.
// Setups are optional context and may be nil.
func (a *Advisor) Review(ctx context.Context, symbol string, price float64, signals []catalog.Signal, setups []rules.Match) (*Advice, error) {
	if len(signals) == 0 {
		return nil, core.Wrapf(core.ErrNoSignals, "nothing fired for %s", symbol)
	}

	prompt := buildPrompt(symbol, price, signals, setups)
	a.logger.Debug("asking advisor",
		zap.String("symbol", symbol),
		zap.Int("signals", len(signals)),
		zap.String("provider", a.llm.Name()))

	resp, err := a.llm.Complete(ctx, llm.Request{
		System:      advisorSystemPrompt,
		Prompt:      prompt,
		MaxTokens:   a.cfg.MaxTokens,
		Temperature: a.cfg.Temperature,
		JSONMode:    true,
	})
	if err != nil {
		return nil, err
	}

	var advice Advice
	if err := json.Unmarshal([]byte(resp.Content), &advice); err != nil {
		a.logger.Debug("advisor reply was not JSON, falling back to text scan")
		return fromText(resp.Content, signals), nil
	}

	advice.Action = strings.ToLower(strings.TrimSpace(advice.Action))
	if advice.Action != ActionAct && advice.Action != ActionWait {
		return fromText(resp.Content, signals), nil
	}
	if advice.Confidence < 0 {
		advice.Confidence = 0
	}
	if advice.Confidence > 1 {
		advice.Confidence = 1
	}
	return &advice, nil
}

func buildPrompt(symbol string, price float64, signals []catalog.Signal, setups []rules.Match) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("## Symbol: %s at %.2f\n\n", symbol, price))

	sb.WriteString("## Fired signals (validated patterns):\n")
	for _, sig := range signals {
		sb.WriteString(fmt.Sprintf("- **%s**: %d days ago, test win rate %.1f%%, lift %.2f, avg return %.1f%%\n",
			sig.Pattern, sig.DaysAgo, sig.TestWinRate*100, sig.Lift, sig.TestAvgReturn))
		if sig.Description != "" {
			sb.WriteString(fmt.Sprintf("  Setup: %s\n", sig.Description))
		}
	}
	sb.WriteString("\n")

	if len(setups) > 0 {
		sb.WriteString("## Chart setups (contextual, unvalidated):\n")
		for _, m := range setups {
			sb.WriteString(fmt.Sprintf("- %s: %d days ago (confidence %.2f)\n",
				m.Rule, m.DaysAgo, m.Confidence))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Task:\n")
	sb.WriteString("Decide whether these signals warrant acting now or waiting.\n")
	sb.WriteString("Respond with JSON containing: action (\"act\" or \"wait\"), confidence (0-1), reasoning, patterns (the names you weighed most).\n")

	return sb.String()
}

// fromText digests a free-form reply when the provider ignored JSON mode.
func fromText(text string, signals []catalog.Signal) *Advice {
	advice := &Advice{
		Action:     ActionWait,
		Confidence: 0.5,
		Reasoning:  text,
		Patterns:   signalNames(signals),
	}

	upper := strings.ToUpper(text)
	if strings.Contains(upper, "ACT") && !strings.Contains(upper, "WAIT") {
		advice.Action = ActionAct
	}
	return advice
}

func signalNames(signals []catalog.Signal) []string {
	names := make([]string, len(signals))
	for i, s := range signals {
		names[i] = s.Pattern
	}
	return names
}

const advisorSystemPrompt = `You are a cautious swing-trade reviewer. The patterns in front of you passed a two-stage statistical validation on historical data; your role is to sanity-check whether acting on today's occurrence is reasonable.

Consider:
1. Test-segment win rates and lifts - favor patterns that held up out of sample
2. How many patterns fired together - overlapping dip patterns usually share one cause
3. Recency - a signal from several days ago has already moved

Always respond with valid JSON in this format:
{
  "action": "act" | "wait",
  "confidence": 0.0-1.0,
  "reasoning": "explanation of your read",
  "patterns": ["pattern names you weighed most"]
}

Be conservative when uncertain. "wait" is appropriate when the picture is mixed.`
