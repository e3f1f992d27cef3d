package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

const annotationOffline = "offline"

type rootOptions struct {
	verbose     bool
	yes         bool
	json        bool
	output      string
	metricsFile string
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "dumdum",
		Short:         "dumdum: terminal client for the dum dum investment agent",
		Long:          "dumdum connects a local wallet to the dum dum processes on ao: onboard, schedule recurring investments, mint test tokens and drive the arbitrage agent from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")
	flags.BoolVarP(&opts.yes, "yes", "y", false, "Approve connection and signing requests without prompting")
	flags.BoolVar(&opts.json, "json", false, "Shorthand for --output json")
	flags.StringVarP(&opts.output, "output", "o", formatText, "Output format: text, json or yaml")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "Write client metrics in Prometheus text format to this file on exit")

	app, err := wireApp(opts)
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return app.start(cmd)
	}
	rootCmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		return app.finish()
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newAboutCmd(app),
		newWalletCmd(app),
		newOnboardCmd(app),
		newPortfolioCmd(app),
		newInvestCmd(app),
		newMintCmd(app),
		newArbitrageCmd(app),
		newProcessCmd(app),
	)

	return rootCmd
}

func offline(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[annotationOffline] = "true"
	return cmd
}
