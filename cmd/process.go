package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/bnema/dumdum-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newProcessCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Talk to any ao process directly",
	}

	cmd.AddCommand(
		newProcessReadCmd(app),
		newProcessWriteCmd(app),
		newProcessSpawnCmd(app),
	)

	return cmd
}

func parseTags(raw []string) (domain.Tags, error) {
	tags := make(domain.Tags, 0, len(raw))
	for _, entry := range raw {
		tag, err := domain.ParseTag(entry)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}

	return tags, nil
}

func newProcessReadCmd(app *app) *cobra.Command {
	var processID string
	var rawTags []string

	cmd := &cobra.Command{
		Use:   "read",
		Short: "Dry-run a message and print the first reply's data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tags, err := parseTags(rawTags)
			if err != nil {
				return err
			}

			value, err := app.client.Read(cmd.Context(), processID, tags)
			if err != nil {
				return fmt.Errorf("read %s: %w", processID, err)
			}

			data, err := plain(value)
			if err != nil {
				return err
			}

			return app.render(cmd, data, func(w io.Writer) error {
				if data == nil {
					_, err := fmt.Fprintln(w, "no result")
					return err
				}
				return writeFormatted(w, formatJSON, data, nil)
			})
		},
	}

	cmd.Flags().StringVar(&processID, "process", "", "Process id")
	cmd.Flags().StringArrayVar(&rawTags, "tag", nil, "Tag as Name=Value; repeatable, order is kept")
	_ = cmd.MarkFlagRequired("process")

	return cmd
}

func newProcessWriteCmd(app *app) *cobra.Command {
	var processID string
	var rawTags []string
	var data string

	cmd := &cobra.Command{
		Use:   "write",
		Short: "Sign and send a message, then wait for its result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tags, err := parseTags(rawTags)
			if err != nil {
				return err
			}

			var outcome domain.WriteOutcome
			err = app.settle(cmd.Context(), cmd.ErrOrStderr(), "Waiting for result...", func(ctx context.Context) error {
				var err error
				outcome, err = app.client.Write(ctx, processID, tags, []byte(data))
				return err
			})
			if err != nil {
				return fmt.Errorf("write %s: %w", processID, err)
			}

			if renderErr := app.render(cmd, newOutcomeView(outcome), func(w io.Writer) error {
				if _, err := fmt.Fprintf(w, "message %s\n", outcome.MessageID); err != nil {
					return err
				}
				for i, message := range outcome.Messages {
					if _, err := fmt.Fprintf(w, "  [%d] %s\n", i, message.Data); err != nil {
						return err
					}
				}
				if outcome.Output != "" {
					_, err := fmt.Fprintf(w, "output: %s\n", outcome.Output)
					return err
				}
				return nil
			}); renderErr != nil {
				return renderErr
			}

			return outcome.Err(processID, tags.Action())
		},
	}

	cmd.Flags().StringVar(&processID, "process", "", "Process id")
	cmd.Flags().StringArrayVar(&rawTags, "tag", nil, "Tag as Name=Value; repeatable, order is kept")
	cmd.Flags().StringVar(&data, "data", "", "Message data")
	_ = cmd.MarkFlagRequired("process")

	return cmd
}

func newProcessSpawnCmd(app *app) *cobra.Command {
	var name string
	var rawTags []string

	cmd := &cobra.Command{
		Use:   "spawn",
		Short: "Provision a new process owned by the connected wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tags, err := parseTags(rawTags)
			if err != nil {
				return err
			}

			processID, err := app.client.Spawn(cmd.Context(), name, tags)
			if err != nil {
				return fmt.Errorf("spawn process: %w", err)
			}

			view := struct {
				ProcessID string `json:"process_id" yaml:"process_id"`
			}{ProcessID: processID}
			return app.render(cmd, view, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, processID)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Process name")
	cmd.Flags().StringArrayVar(&rawTags, "tag", nil, "Extra spawn tag as Name=Value; repeatable")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
