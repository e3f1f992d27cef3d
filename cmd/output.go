package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/dumdum-cli/internal/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func (o *rootOptions) format() (string, error) {
	if o.json {
		return formatJSON, nil
	}

	switch format := strings.ToLower(strings.TrimSpace(o.output)); format {
	case "", formatText:
		return formatText, nil
	case formatJSON, formatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("%w: unsupported output format %q", domain.ErrInvalidRequest, o.output)
	}
}

// render writes value as JSON or YAML, or calls text for the default format.
func (a *app) render(cmd *cobra.Command, value any, text func(w io.Writer) error) error {
	format, err := a.opts.format()
	if err != nil {
		return err
	}

	return writeFormatted(cmd.OutOrStdout(), format, value, text)
}

func writeFormatted(w io.Writer, format string, value any, text func(w io.Writer) error) error {
	switch format {
	case formatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(value); err != nil {
			return fmt.Errorf("encode json output: %w", err)
		}
		return nil
	case formatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(value); err != nil {
			return fmt.Errorf("encode yaml output: %w", err)
		}
		return encoder.Close()
	default:
		return text(w)
	}
}

// plain decodes a read value into generic data so YAML sees maps and
// slices instead of raw bytes.
func plain(value domain.Value) (any, error) {
	var out any
	if err := value.Decode(&out); err != nil {
		return nil, err
	}

	return out, nil
}

type accountView struct {
	Address     string   `json:"address" yaml:"address"`
	Connected   bool     `json:"connected" yaml:"connected"`
	Permissions []string `json:"permissions,omitempty" yaml:"permissions,omitempty"`
	ConnectedAt string   `json:"connected_at,omitempty" yaml:"connected_at,omitempty"`
}

func newAccountView(account domain.Account) accountView {
	view := accountView{Address: account.Address, Connected: account.Connected}
	for _, permission := range account.Permissions {
		view.Permissions = append(view.Permissions, string(permission))
	}
	if !account.ConnectedAt.IsZero() {
		view.ConnectedAt = account.ConnectedAt.UTC().Format("2006-01-02T15:04:05Z")
	}

	return view
}

type walletView struct {
	Address   string `json:"address" yaml:"address"`
	Label     string `json:"label,omitempty" yaml:"label,omitempty"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
	Connected bool   `json:"connected" yaml:"connected"`
	Mnemonic  string `json:"mnemonic,omitempty" yaml:"mnemonic,omitempty"`
}

func newWalletView(record domain.WalletRecord, connected bool) walletView {
	return walletView{
		Address:   record.Address,
		Label:     record.Label,
		CreatedAt: record.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		Connected: connected,
	}
}

type outcomeView struct {
	MessageID string   `json:"message_id" yaml:"message_id"`
	Messages  []string `json:"messages,omitempty" yaml:"messages,omitempty"`
	Spawns    []string `json:"spawns,omitempty" yaml:"spawns,omitempty"`
	Output    string   `json:"output,omitempty" yaml:"output,omitempty"`
	Error     string   `json:"error,omitempty" yaml:"error,omitempty"`
}

func newOutcomeView(outcome domain.WriteOutcome) outcomeView {
	view := outcomeView{
		MessageID: outcome.MessageID,
		Spawns:    outcome.Spawns,
		Output:    outcome.Output,
		Error:     outcome.Error,
	}
	for _, message := range outcome.Messages {
		view.Messages = append(view.Messages, message.Data)
	}

	return view
}
