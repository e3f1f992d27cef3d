package ports

import (
	"context"

	"github.com/bnema/dumdum-cli/internal/domain"
)

type WalletRepository interface {
	GetByAddress(ctx context.Context, address string) (domain.WalletRecord, error)
	List(ctx context.Context) ([]domain.WalletRecord, error)
	Save(ctx context.Context, wallet domain.WalletRecord) error
	Delete(ctx context.Context, address string) error
}

// SessionRepository persists the connected account between invocations.
type SessionRepository interface {
	Load(ctx context.Context) (domain.Account, error)
	Save(ctx context.Context, account domain.Account) error
	Clear(ctx context.Context) error
}

type ApprovalKind string

const (
	ApprovalConnect ApprovalKind = "connect"
	ApprovalSign    ApprovalKind = "sign"
)

type ApprovalRequest struct {
	Kind        ApprovalKind
	Address     string
	Permissions []domain.PermissionKind
	ProcessID   string
	Tags        domain.Tags
}

// Approver stands in for the wallet extension's confirmation dialog.
type Approver interface {
	Approve(ctx context.Context, req ApprovalRequest) (bool, error)
}

type WalletSession interface {
	Connect(ctx context.Context, requested []domain.PermissionKind) (domain.Account, error)
	Disconnect(ctx context.Context) error
	CurrentAccount() (domain.Account, bool)
	Sign(ctx context.Context, req domain.WriteRequest) (domain.SignedEnvelope, error)
	Provision(ctx context.Context, name string, tags domain.Tags) (string, error)
}
