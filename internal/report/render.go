// internal/report/render.go
package report

import (
	"fmt"
	"strings"

	"github.com/newthinker/prospect/internal/catalog"
	"github.com/newthinker/prospect/internal/indicator"
)

var divider = strings.Repeat("=", 70)

// Render formats the report for the terminal, freshest signals first.
func Render(r *Report) string {
	var sb strings.Builder

	sb.WriteString(divider + "\n")
	sb.WriteString(fmt.Sprintf("📊 %s signal report - %s\n", r.Symbol, r.AsOf.Format("2006-01-02")))
	sb.WriteString(divider + "\n")
	sb.WriteString(fmt.Sprintf("Price: $%.2f (%+.2f%%)\n", r.Price, r.ChangePct))
	if line := indicatorLine(r.Indicators); line != "" {
		sb.WriteString(line + "\n")
	}

	today, recent := splitByAge(r.Signals)
	if len(r.Signals) == 0 {
		sb.WriteString(fmt.Sprintf("\n📭 No signals in the last %d days\n", r.LookbackDays))
	}
	if len(today) > 0 {
		sb.WriteString(fmt.Sprintf("\n🟢 Today (%d):\n", len(today)))
		for _, s := range today {
			sb.WriteString(fmt.Sprintf("  - %s: win rate %.0f%%, avg %+.1f%%, lift %.1fx\n",
				s.Pattern, s.TestWinRate*100, s.TestAvgReturn, s.Lift))
		}
	}
	if len(recent) > 0 {
		sb.WriteString("\n📌 Recent:\n")
		for _, s := range recent {
			sb.WriteString(fmt.Sprintf("  - D-%d (%s): %s (win rate %.0f%%)\n",
				s.DaysAgo, s.Date.Format("01/02"), s.Pattern, s.TestWinRate*100))
		}
	}

	if len(r.Setups) > 0 {
		sb.WriteString("\n🧭 Setups:\n")
		for _, m := range r.Setups {
			sb.WriteString(fmt.Sprintf("  - D-%d: %s (confidence %.2f)\n", m.DaysAgo, m.Rule, m.Confidence))
		}
	}

	if r.Advice != nil {
		sb.WriteString(fmt.Sprintf("\n🤖 Advisor: %s (confidence %.0f%%)\n",
			strings.ToUpper(r.Advice.Action), r.Advice.Confidence*100))
		if r.Advice.Reasoning != "" {
			sb.WriteString("   " + r.Advice.Reasoning + "\n")
		}
	}

	sb.WriteString(divider + "\n")
	return sb.String()
}

func splitByAge(signals []catalog.Signal) (today, recent []catalog.Signal) {
	for _, s := range signals {
		if s.DaysAgo == 0 {
			today = append(today, s)
		} else {
			recent = append(recent, s)
		}
	}
	return today, recent
}

func indicatorLine(snap map[string]float64) string {
	var parts []string
	if v, ok := snap[indicator.ColRSI]; ok {
		parts = append(parts, fmt.Sprintf("RSI %.1f", v))
	}
	if v, ok := snap[indicator.ColMomentum10]; ok {
		parts = append(parts, fmt.Sprintf("momentum(10d) %+.1f%%", v))
	}
	if v, ok := snap[indicator.ColVolumeRatio]; ok {
		parts = append(parts, fmt.Sprintf("volume %.1fx avg", v))
	}
	return strings.Join(parts, ", ")
}
