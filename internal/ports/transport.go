package ports

import (
	"context"

	"github.com/bnema/dumdum-cli/internal/domain"
)

// DryRunResult is the raw answer of a compute unit to a read.
type DryRunResult struct {
	Messages []domain.OutcomeMessage
	Output   string
	Error    string
}

// ProcessTransport is the messaging API of the remote compute network.
type ProcessTransport interface {
	DryRun(ctx context.Context, req domain.ReadRequest) (DryRunResult, error)
	Submit(ctx context.Context, envelope domain.SignedEnvelope) (string, error)
	Result(ctx context.Context, processID string, messageID string) (domain.WriteOutcome, error)
}

// SpawnConfig names the module and scheduler new processes run on.
type SpawnConfig struct {
	Module    string
	Scheduler string
	Authority string
}
