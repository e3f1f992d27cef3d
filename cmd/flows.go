package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bnema/dumdum-cli/internal/adapters/render/portfolio"
	"github.com/bnema/dumdum-cli/internal/application"
	"github.com/spf13/cobra"
)

type onboardView struct {
	Status    string `json:"status" yaml:"status"`
	Address   string `json:"address" yaml:"address"`
	ProcessID string `json:"process_id,omitempty" yaml:"process_id,omitempty"`
	Existing  bool   `json:"existing" yaml:"existing"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
}

func newOnboardCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "onboard",
		Short: "Register the connected wallet and provision its process",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var result application.OnboardingResult
			err := app.settle(cmd.Context(), cmd.ErrOrStderr(), "Onboarding...", func(ctx context.Context) error {
				var err error
				result, err = app.onboarding.Onboard(ctx)
				return err
			})
			if err != nil && result.Status != application.OnboardingFailed {
				return fmt.Errorf("onboard: %w", err)
			}

			view := onboardView{
				Status:    string(result.Status),
				Address:   result.Address,
				ProcessID: result.ProcessID,
				Existing:  result.Existing,
				Error:     result.Error,
			}
			if renderErr := app.render(cmd, view, func(w io.Writer) error {
				switch {
				case result.Status == application.OnboardingFailed:
					_, err := fmt.Fprintf(w, "onboarding failed: %s\n", result.Error)
					return err
				case result.Existing:
					_, err := fmt.Fprintf(w, "already onboarded: process %s\n", result.ProcessID)
					return err
				default:
					_, err := fmt.Fprintf(w, "onboarded: process %s\n", result.ProcessID)
					return err
				}
			}); renderErr != nil {
				return errors.Join(err, renderErr)
			}

			return err
		},
	}
}

type portfolioPlanView struct {
	From         string  `json:"from" yaml:"from"`
	To           string  `json:"to" yaml:"to"`
	Amount       float64 `json:"amount" yaml:"amount"`
	RecurringDay int     `json:"recurring_day" yaml:"recurring_day"`
	NextRun      string  `json:"next_run" yaml:"next_run"`
}

type portfolioView struct {
	Address           string              `json:"address" yaml:"address"`
	ProcessID         string              `json:"process_id,omitempty" yaml:"process_id,omitempty"`
	TotalInvested     float64             `json:"total_invested" yaml:"total_invested"`
	TotalReturns      float64             `json:"total_returns" yaml:"total_returns"`
	ActiveInvestments int                 `json:"active_investments" yaml:"active_investments"`
	NextInvestment    string              `json:"next_investment,omitempty" yaml:"next_investment,omitempty"`
	Plans             []portfolioPlanView `json:"plans" yaml:"plans"`
}

func newPortfolioCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "portfolio",
		Short: "Show investment plans and totals for the connected wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			summary, err := app.portfolio.Summary(cmd.Context())
			if err != nil {
				return fmt.Errorf("load portfolio: %w", err)
			}

			now := app.now()
			view := portfolioView{
				Address:           summary.Address,
				ProcessID:         summary.ProcessID,
				TotalInvested:     summary.TotalInvested,
				TotalReturns:      summary.TotalReturns,
				ActiveInvestments: summary.ActiveInvestments,
				Plans:             make([]portfolioPlanView, 0, len(summary.Plans)),
			}
			if !summary.NextInvestment.IsZero() {
				view.NextInvestment = summary.NextInvestment.Format("2006-01-02")
			}
			for _, plan := range summary.Plans {
				view.Plans = append(view.Plans, portfolioPlanView{
					From:         app.tokens.SymbolFor(plan.InputToken),
					To:           app.tokens.SymbolFor(plan.OutputToken),
					Amount:       plan.NumberOfTokens,
					RecurringDay: plan.RecurringDay,
					NextRun:      plan.NextRun(now).Format("2006-01-02"),
				})
			}

			return app.render(cmd, view, func(w io.Writer) error {
				output, err := portfolio.Render(summary, portfolio.RenderOptions{Now: now, Tokens: app.tokens})
				if err != nil {
					return fmt.Errorf("render portfolio: %w", err)
				}
				_, err = fmt.Fprintln(w, output)
				return err
			})
		},
	}
}

type investView struct {
	PlanID       string  `json:"plan_id" yaml:"plan_id"`
	From         string  `json:"from" yaml:"from"`
	To           string  `json:"to" yaml:"to"`
	Amount       float64 `json:"amount" yaml:"amount"`
	RecurringDay int     `json:"recurring_day" yaml:"recurring_day"`
	MessageID    string  `json:"message_id" yaml:"message_id"`
}

func newInvestCmd(app *app) *cobra.Command {
	var req application.InvestRequest

	cmd := &cobra.Command{
		Use:   "invest",
		Short: "Schedule a recurring investment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var result application.InvestResult
			err := app.settle(cmd.Context(), cmd.ErrOrStderr(), "Adding investment plan...", func(ctx context.Context) error {
				var err error
				result, err = app.invest.Invest(ctx, req)
				return err
			})
			if err != nil {
				return fmt.Errorf("invest: %w", err)
			}

			view := investView{
				PlanID:       result.PlanID,
				From:         app.tokens.SymbolFor(result.Plan.InputToken),
				To:           app.tokens.SymbolFor(result.Plan.OutputToken),
				Amount:       result.Plan.NumberOfTokens,
				RecurringDay: result.Plan.RecurringDay,
				MessageID:    result.Outcome.MessageID,
			}
			return app.render(cmd, view, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "plan %s: %g %s -> %s on day %d of each month\n", view.PlanID, view.Amount, view.From, view.To, view.RecurringDay)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&req.From, "from", "", "Token to spend (symbol or process id)")
	cmd.Flags().StringVar(&req.To, "to", "", "Token to buy (symbol or process id)")
	cmd.Flags().Float64Var(&req.Amount, "amount", 0, "Amount of the input token per run")
	cmd.Flags().IntVar(&req.RecurringDay, "day", 1, "Day of the month the plan runs (1-30)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

type mintView struct {
	Recipient string  `json:"recipient" yaml:"recipient"`
	Amount    float64 `json:"amount" yaml:"amount"`
	Message   string  `json:"message" yaml:"message"`
	MessageID string  `json:"message_id" yaml:"message_id"`
}

func newMintCmd(app *app) *cobra.Command {
	var amount float64

	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Mint test tokens into your process",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var result application.MintResult
			err := app.settle(cmd.Context(), cmd.ErrOrStderr(), "Minting tokens...", func(ctx context.Context) error {
				var err error
				result, err = app.mint.Mint(ctx, amount)
				return err
			})
			if err != nil {
				return fmt.Errorf("mint: %w", err)
			}

			view := mintView{
				Recipient: result.Recipient,
				Amount:    result.Amount,
				Message:   result.Message,
				MessageID: result.Outcome.MessageID,
			}
			return app.render(cmd, view, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, result.Message)
				return err
			})
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, fmt.Sprintf("Amount to mint, at most %d", application.MaxMintAmount))
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
