package domain

import (
	"fmt"
	"time"
)

const (
	MinRecurringDay = 1
	MaxRecurringDay = 30

	// returnsFactor mirrors the placeholder yield the dashboard shows until
	// the main process reports real returns.
	returnsFactor = 0.10
)

type UserRecord struct {
	WalletAddress string `json:"Wallet_Address" yaml:"wallet_address"`
	ProcessID     string `json:"Process_ID" yaml:"process_id"`
}

type InvestmentPlan struct {
	WalletAddress  string  `json:"Wallet_Address" yaml:"wallet_address"`
	InputToken     string  `json:"iToken_Address" yaml:"input_token"`
	OutputToken    string  `json:"oToken_Address" yaml:"output_token"`
	NumberOfTokens float64 `json:"numberOfTokens" yaml:"number_of_tokens"`
	Date           string  `json:"Date,omitempty" yaml:"date,omitempty"`
	RecurringDay   int     `json:"RecurringDay" yaml:"recurring_day"`
}

// NextRun returns the next time the plan fires after now: this month's
// recurring day if it is still ahead, otherwise next month's.
func (p InvestmentPlan) NextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), p.RecurringDay, 0, 0, 0, 0, now.Location())
	if next.Before(now) {
		next = next.AddDate(0, 1, 0)
	}

	return next
}

func ValidateRecurringDay(day int) error {
	if day < MinRecurringDay || day > MaxRecurringDay {
		return fmt.Errorf("%w: recurring day must be between %d and %d", ErrInvalidRequest, MinRecurringDay, MaxRecurringDay)
	}

	return nil
}

type PortfolioSummary struct {
	Address           string
	ProcessID         string
	TotalInvested     float64
	TotalReturns      float64
	ActiveInvestments int
	NextInvestment    time.Time
	Plans             []InvestmentPlan
}

func SummarizePortfolio(plans []InvestmentPlan, now time.Time) PortfolioSummary {
	summary := PortfolioSummary{
		ActiveInvestments: len(plans),
		Plans:             plans,
	}

	for _, plan := range plans {
		summary.TotalInvested += plan.NumberOfTokens
		summary.TotalReturns += plan.NumberOfTokens * returnsFactor

		next := plan.NextRun(now)
		if summary.NextInvestment.IsZero() || next.Before(summary.NextInvestment) {
			summary.NextInvestment = next
		}
	}

	return summary
}
