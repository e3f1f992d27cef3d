package toml

import (
	"fmt"
	"time"

	"github.com/bnema/dumdum-cli/internal/domain"
)

const currentSchemaVersion = 1

type walletsFileSchema struct {
	Version int            `toml:"version"`
	Wallets []walletSchema `toml:"wallets"`
}

type walletSchema struct {
	Address   string   `toml:"address"`
	Label     string   `toml:"label,omitempty"`
	KeyRef    string   `toml:"key_ref"`
	Granted   []string `toml:"granted"`
	CreatedAt string   `toml:"created_at"`
}

type sessionFileSchema struct {
	Version int            `toml:"version"`
	Session *sessionSchema `toml:"session,omitempty"`
}

type sessionSchema struct {
	Address     string   `toml:"address"`
	Connected   bool     `toml:"connected"`
	Permissions []string `toml:"permissions"`
	ConnectedAt string   `toml:"connected_at"`
}

func applyVersion(version *int) {
	if *version == 0 {
		*version = currentSchemaVersion
	}
}

func validateVersion(what string, version int) error {
	if version > currentSchemaVersion {
		return fmt.Errorf("unsupported %s schema version %d (current %d)", what, version, currentSchemaVersion)
	}

	return nil
}

func toWalletSchema(wallet domain.WalletRecord) walletSchema {
	return walletSchema{
		Address:   wallet.Address,
		Label:     wallet.Label,
		KeyRef:    wallet.KeyRef,
		Granted:   permissionsToStrings(wallet.Granted),
		CreatedAt: formatTime(wallet.CreatedAt),
	}
}

func fromWalletSchema(wallet walletSchema) domain.WalletRecord {
	return domain.WalletRecord{
		Address:   wallet.Address,
		Label:     wallet.Label,
		KeyRef:    wallet.KeyRef,
		Granted:   permissionsFromStrings(wallet.Granted),
		CreatedAt: parseTime(wallet.CreatedAt),
	}
}

func toSessionSchema(account domain.Account) *sessionSchema {
	if !account.Connected {
		return nil
	}

	return &sessionSchema{
		Address:     account.Address,
		Connected:   true,
		Permissions: permissionsToStrings(account.Permissions),
		ConnectedAt: formatTime(account.ConnectedAt),
	}
}

func fromSessionSchema(session *sessionSchema) domain.Account {
	if session == nil || !session.Connected || session.Address == "" {
		return domain.Account{}
	}

	return domain.Account{
		Address:     session.Address,
		Connected:   true,
		Permissions: permissionsFromStrings(session.Permissions),
		ConnectedAt: parseTime(session.ConnectedAt),
	}
}

func permissionsToStrings(permissions []domain.PermissionKind) []string {
	out := make([]string, 0, len(permissions))
	for _, permission := range permissions {
		out = append(out, string(permission))
	}
	return out
}

// permissionsFromStrings drops entries this version does not know.
func permissionsFromStrings(raw []string) []domain.PermissionKind {
	var out []domain.PermissionKind
	for _, entry := range raw {
		permission, err := domain.ParsePermission(entry)
		if err != nil {
			continue
		}
		out = append(out, permission)
	}
	return out
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339)
}
