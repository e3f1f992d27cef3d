package domain

import (
	"fmt"
	"slices"
	"time"
)

type PermissionKind string

const (
	PermissionAccessAddress   PermissionKind = "ACCESS_ADDRESS"
	PermissionAccessPublicKey PermissionKind = "ACCESS_PUBLIC_KEY"
	PermissionSignTransaction PermissionKind = "SIGN_TRANSACTION"
	PermissionDispatch        PermissionKind = "DISPATCH"
)

func DefaultPermissions() []PermissionKind {
	return []PermissionKind{
		PermissionAccessAddress,
		PermissionAccessPublicKey,
		PermissionSignTransaction,
		PermissionDispatch,
	}
}

func ParsePermission(raw string) (PermissionKind, error) {
	permission := PermissionKind(raw)
	if !slices.Contains(DefaultPermissions(), permission) {
		return "", fmt.Errorf("unsupported permission %q", raw)
	}

	return permission, nil
}

// Account is the wallet identity the session is connected with. The zero
// value is the disconnected state.
type Account struct {
	Address     string
	Connected   bool
	Permissions []PermissionKind
	ConnectedAt time.Time
}

func (a Account) Has(permission PermissionKind) bool {
	return a.Connected && slices.Contains(a.Permissions, permission)
}

type WalletRecord struct {
	Address   string
	Label     string
	KeyRef    string
	Granted   []PermissionKind
	CreatedAt time.Time
}

// MissingPermissions returns the requested permissions this wallet does not grant.
func (w WalletRecord) MissingPermissions(requested []PermissionKind) []PermissionKind {
	var missing []PermissionKind
	for _, permission := range requested {
		if !slices.Contains(w.Granted, permission) {
			missing = append(missing, permission)
		}
	}

	return missing
}

// SignedEnvelope is a write request signed by the connected wallet.
type SignedEnvelope struct {
	ID        string `json:"id"`
	Owner     string `json:"owner"`
	Target    string `json:"target"`
	Anchor    string `json:"anchor"`
	Tags      Tags   `json:"tags"`
	Data      []byte `json:"data"`
	Signature string `json:"signature"`
}
