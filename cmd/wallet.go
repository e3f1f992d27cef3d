package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	tomlrepo "github.com/bnema/dumdum-cli/internal/adapters/repo/toml"
	"github.com/bnema/dumdum-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newWalletCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Create, import and connect wallets",
	}

	cmd.AddCommand(
		newWalletNewCmd(app),
		newWalletImportCmd(app),
		newWalletListCmd(app),
		newWalletRemoveCmd(app),
		newWalletConnectCmd(app),
		newWalletDisconnectCmd(app),
		newWalletStatusCmd(app),
		newWalletWatchCmd(app),
	)

	return cmd
}

func newWalletNewCmd(app *app) *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a wallet and print its recovery phrase once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			record, mnemonic, err := app.manager.Create(cmd.Context(), label)
			if err != nil {
				return fmt.Errorf("create wallet: %w", err)
			}

			view := newWalletView(record, false)
			view.Mnemonic = mnemonic
			return app.render(cmd, view, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "address: %s\nmnemonic: %s\n\nWrite the mnemonic down. It is not shown again.\n", record.Address, mnemonic)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "Human readable wallet label")

	return cmd
}

func newWalletImportCmd(app *app) *cobra.Command {
	var mnemonic string
	var label string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a wallet from its recovery phrase",
		Long:  "Import a wallet from its BIP-39 recovery phrase. Without --mnemonic the phrase is read from stdin.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			phrase := mnemonic
			if strings.TrimSpace(phrase) == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && err != io.EOF {
					return fmt.Errorf("read mnemonic: %w", err)
				}
				phrase = line
			}

			record, err := app.manager.Import(cmd.Context(), phrase, label)
			if err != nil {
				return fmt.Errorf("import wallet: %w", err)
			}

			return app.render(cmd, newWalletView(record, false), func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "imported %s\n", record.Address)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&mnemonic, "mnemonic", "", "BIP-39 recovery phrase")
	cmd.Flags().StringVar(&label, "label", "", "Human readable wallet label")

	return cmd
}

func newWalletListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List known wallets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := app.manager.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list wallets: %w", err)
			}

			current, _ := app.session.CurrentAccount()
			views := make([]walletView, 0, len(records))
			for _, record := range records {
				views = append(views, newWalletView(record, current.Connected && current.Address == record.Address))
			}

			return app.render(cmd, views, func(w io.Writer) error {
				if len(views) == 0 {
					_, err := fmt.Fprintln(w, "No wallets. Create one with `dumdum wallet new`.")
					return err
				}
				for _, view := range views {
					marker := " "
					if view.Connected {
						marker = "*"
					}
					if _, err := fmt.Fprintf(w, "%s %s  %-12s %s\n", marker, view.Address, view.Label, view.CreatedAt); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newWalletConnectCmd(app *app) *cobra.Command {
	var permissions []string

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Connect a wallet for this and later invocations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			requested := make([]domain.PermissionKind, 0, len(permissions))
			for _, raw := range permissions {
				permission, err := domain.ParsePermission(strings.ToUpper(strings.TrimSpace(raw)))
				if err != nil {
					return fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
				}
				requested = append(requested, permission)
			}

			account, err := app.session.Connect(cmd.Context(), requested)
			if err != nil {
				return fmt.Errorf("connect wallet: %w", err)
			}

			return app.render(cmd, newAccountView(account), func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "connected %s\n", account.Address)
				return err
			})
		},
	}

	cmd.Flags().String("address", "", "Wallet address to connect (default: configured or oldest wallet)")
	cmd.Flags().StringSliceVar(&permissions, "permission", nil, "Permission to request; repeatable (default: all)")
	_ = app.cfg.BindPFlag(tomlrepo.KeyWallet, cmd.Flags().Lookup("address"))

	return cmd
}

func newWalletRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <address>",
		Short: "Forget a wallet and delete its recovery phrase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			address := strings.TrimSpace(args[0])
			if account, ok := app.session.CurrentAccount(); ok && account.Address == address {
				if err := app.session.Disconnect(cmd.Context()); err != nil {
					return fmt.Errorf("disconnect wallet: %w", err)
				}
			}

			if err := app.manager.Remove(cmd.Context(), address); err != nil {
				return fmt.Errorf("remove wallet: %w", err)
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", address)
			return err
		},
	}
}

func newWalletDisconnectCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect",
		Short: "Disconnect the current wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.session.Disconnect(cmd.Context()); err != nil {
				return fmt.Errorf("disconnect wallet: %w", err)
			}

			return app.render(cmd, newAccountView(domain.Account{}), func(w io.Writer) error {
				_, err := fmt.Fprintln(w, "disconnected")
				return err
			})
		},
	}
}

func newWalletStatusCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the connected account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			account, _ := app.session.CurrentAccount()
			return app.render(cmd, newAccountView(account), func(w io.Writer) error {
				return writeAccountLine(w, account)
			})
		},
	}
}

func newWalletWatchCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print connection changes made by other invocations until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			changes, err := app.sessions.Watch(cmd.Context())
			if err != nil {
				return fmt.Errorf("watch session: %w", err)
			}

			format, err := app.opts.format()
			if err != nil {
				return err
			}

			updates, unsubscribe := app.session.Subscribe()
			go func() {
				defer unsubscribe()
				for account := range changes {
					app.session.Adopt(account)
				}
			}()

			current, _ := app.session.CurrentAccount()
			if err := writeFormatted(cmd.OutOrStdout(), format, newAccountView(current), func(w io.Writer) error {
				return writeAccountLine(w, current)
			}); err != nil {
				return err
			}

			for account := range updates {
				if err := writeFormatted(cmd.OutOrStdout(), format, newAccountView(account), func(w io.Writer) error {
					return writeAccountLine(w, account)
				}); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

func writeAccountLine(w io.Writer, account domain.Account) error {
	if !account.Connected {
		_, err := fmt.Fprintln(w, "not connected")
		return err
	}

	view := newAccountView(account)
	_, err := fmt.Fprintf(w, "connected %s (%s)\n", account.Address, strings.Join(view.Permissions, ", "))
	return err
}
