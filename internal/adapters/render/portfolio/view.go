package portfolio

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/dumdum-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Now    time.Time
	Tokens domain.TokenRegistry
}

func renderView(summary domain.PortfolioSummary, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Portfolio"),
		s.header.Render("wallet: " + summary.Address),
		s.header.Render("process: " + processLabel(summary.ProcessID)),
		s.section.Render(renderStats(summary, opts, s)),
	}

	if len(summary.Plans) == 0 {
		lines = append(lines, s.section.Render(s.empty.Render("No investment plans yet.")))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	planLines := make([]string, 0, len(summary.Plans)+1)
	planLines = append(planLines, s.title.Render(fmt.Sprintf("plans: %d", len(summary.Plans))))
	for _, plan := range summary.Plans {
		planLines = append(planLines, planLine(plan, summary.TotalInvested, opts, s))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, planLines...)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderStats(summary domain.PortfolioSummary, opts RenderOptions, s styles) string {
	stat := func(label string, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, s.stat.Render(label+": "), s.statValue.Render(value))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		stat("total invested", formatAmount(summary.TotalInvested)),
		stat("total returns", formatAmount(summary.TotalReturns)),
		stat("active investments", strconv.Itoa(summary.ActiveInvestments)),
		stat("next investment", formatNext(summary.NextInvestment, opts.Now)),
	)
}

func planLine(plan domain.InvestmentPlan, total float64, opts RenderOptions, s styles) string {
	pair := fmt.Sprintf("%s -> %s", opts.Tokens.SymbolFor(plan.InputToken), opts.Tokens.SymbolFor(plan.OutputToken))

	share := 0.0
	if total > 0 {
		share = plan.NumberOfTokens / total * 100
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.plan.Render(fmt.Sprintf("%-16s %10s", pair, formatAmount(plan.NumberOfTokens))),
		" ",
		renderShareBar(share, 20, s),
		" ",
		s.planMeta.Render(fmt.Sprintf("day %d of each month", plan.RecurringDay)),
	)
}

func renderShareBar(percent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(percent) / 100))
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}

	return value
}

func processLabel(processID string) string {
	if processID == "" {
		return "not onboarded"
	}

	return processID
}

func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func formatNext(next time.Time, now time.Time) string {
	if next.IsZero() {
		return "n/a"
	}

	date := next.Format("02 Jan 2006")
	if now.IsZero() || next.Before(now) {
		return date
	}

	days := int(math.Ceil(next.Sub(now).Hours() / 24))
	switch days {
	case 0:
		return date + " (today)"
	case 1:
		return date + " (in 1 day)"
	default:
		return fmt.Sprintf("%s (in %d days)", date, days)
	}
}
