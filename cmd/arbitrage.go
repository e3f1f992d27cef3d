package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/bnema/dumdum-cli/internal/domain"
	"github.com/spf13/cobra"
)

const defaultSlippage = "0.3"

type botView struct {
	State   string `json:"state" yaml:"state"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

func newArbitrageCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "arbitrage",
		Short: "Configure, start and stop the arbitrage agent",
	}

	cmd.AddCommand(
		newArbitrageStartCmd(app),
		newArbitrageStopCmd(app),
		newArbitrageStatusCmd(app),
	)

	return cmd
}

func newArbitrageStartCmd(app *app) *cobra.Command {
	var input, target string
	var cfg domain.BotConfig

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Send Setup and, once it settles cleanly, Start",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			inputToken, err := app.tokens.Resolve(input)
			if err != nil {
				return err
			}
			targetToken, err := app.tokens.Resolve(target)
			if err != nil {
				return err
			}
			cfg.InputToken = inputToken.Address
			cfg.TargetToken = targetToken.Address

			err = app.settle(cmd.Context(), cmd.ErrOrStderr(), "Starting arbitrage agent...", func(ctx context.Context) error {
				return app.bot.Start(ctx, cfg)
			})
			if err != nil {
				return fmt.Errorf("start arbitrage agent: %w", err)
			}

			view := botView{State: string(app.bot.State()), Enabled: true}
			return app.render(cmd, view, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "arbitrage agent running: %s -> %s, allowance %g, slippage %s%%\n", inputToken.Symbol, targetToken.Symbol, cfg.Allowance, cfg.Slippage)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Input token (symbol or process id)")
	cmd.Flags().StringVar(&target, "target", "", "Target token (symbol or process id)")
	cmd.Flags().Float64Var(&cfg.Allowance, "allowance", 0, "Amount of the input token the agent may spend")
	cmd.Flags().StringVar(&cfg.Slippage, "slippage", defaultSlippage, "Slippage tolerance in percent")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("allowance")

	return cmd
}

func newArbitrageStopCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the arbitrage agent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := app.settle(cmd.Context(), cmd.ErrOrStderr(), "Stopping arbitrage agent...", app.bot.Stop)
			if err != nil {
				return fmt.Errorf("stop arbitrage agent: %w", err)
			}

			return app.render(cmd, botView{State: string(app.bot.State())}, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, "arbitrage agent stopped")
				return err
			})
		},
	}
}

func newArbitrageStatusCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the arbitrage agent is running",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := app.bot.Sync(cmd.Context())
			if err != nil {
				return fmt.Errorf("arbitrage status: %w", err)
			}

			view := botView{State: string(app.bot.State()), Enabled: status.Enabled}
			return app.render(cmd, view, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "arbitrage agent: %s\n", view.State)
				return err
			})
		},
	}
}
