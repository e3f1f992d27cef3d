package portfolio

import (
	"testing"
	"time"

	"github.com/bnema/dumdum-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokens() domain.TokenRegistry {
	return domain.NewTokenRegistry(
		domain.Token{Name: "Star One", Symbol: "STAR1", Address: "t1"},
		domain.Token{Name: "Star Two", Symbol: "STAR2", Address: "t2"},
	)
}

func TestRenderPortfolioWithPlans(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	plans := []domain.InvestmentPlan{
		{InputToken: "t1", OutputToken: "t2", NumberOfTokens: 10, RecurringDay: 20},
		{InputToken: "t2", OutputToken: "gone", NumberOfTokens: 30, RecurringDay: 5},
	}
	summary := domain.SummarizePortfolio(plans, now)
	summary.Address = "abc"
	summary.ProcessID = "p1"

	output, err := Render(summary, RenderOptions{Now: now, Tokens: testTokens()})
	require.NoError(t, err)

	assert.Contains(t, output, "wallet: abc")
	assert.Contains(t, output, "process: p1")
	assert.Contains(t, output, "total invested: 40")
	assert.Contains(t, output, "total returns: 4")
	assert.Contains(t, output, "active investments: 2")
	assert.Contains(t, output, "next investment: 20 Mar 2026 (in 5 days)")
	assert.Contains(t, output, "plans: 2")
	assert.Contains(t, output, "STAR1 -> STAR2")
	assert.Contains(t, output, "STAR2 -> Unknown")
	assert.Contains(t, output, "day 5 of each month")
}

func TestRenderEmptyPortfolio(t *testing.T) {
	output, err := Render(domain.PortfolioSummary{Address: "abc"}, RenderOptions{})
	require.NoError(t, err)

	assert.Contains(t, output, "process: not onboarded")
	assert.Contains(t, output, "next investment: n/a")
	assert.Contains(t, output, "No investment plans yet.")
}

func TestRenderShareBar(t *testing.T) {
	s := newStyles()

	assert.Contains(t, renderShareBar(50, 10, s), "=====")
	assert.NotContains(t, renderShareBar(0, 10, s), "=")
	assert.Empty(t, renderShareBar(50, 0, s))
}

func TestFormatNext(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "16 Mar 2026 (in 1 day)", formatNext(time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, "05 Apr 2026 (in 21 days)", formatNext(time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, "01 Mar 2026", formatNext(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), now))
}
