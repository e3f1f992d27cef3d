package application

import (
	"context"
	"testing"
	"time"

	"github.com/bnema/dumdum-cli/internal/domain"
	"github.com/bnema/dumdum-cli/internal/ports"
	"github.com/bnema/dumdum-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPortfolioSummary(t *testing.T) {
	client, remote, _, _ := newConnectedClient(t)
	remote.onRead(testMain, "getUser", `[{"Wallet_Address":"abc","Process_ID":"p1"}]`)
	remote.onRead(testMain, "getInvestmentPlans", `[
		{"Wallet_Address":"abc","iToken_Address":"t1","oToken_Address":"t2","numberOfTokens":10,"RecurringDay":20},
		{"Wallet_Address":"abc","iToken_Address":"t2","oToken_Address":"t1","numberOfTokens":30,"RecurringDay":5}
	]`)

	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	service := NewPortfolioService(client, testProcesses, fixedClock{now: now})

	summary, err := service.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, testAddress, summary.Address)
	assert.Equal(t, "p1", summary.ProcessID)
	assert.Equal(t, 2, summary.ActiveInvestments)
	assert.InDelta(t, 40, summary.TotalInvested, 1e-9)
	assert.InDelta(t, 4, summary.TotalReturns, 1e-9)
	assert.Equal(t, time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), summary.NextInvestment)
}

func TestPortfolioSummaryWithoutPlans(t *testing.T) {
	client, _, _, _ := newConnectedClient(t)
	service := NewPortfolioService(client, testProcesses, fixedClock{now: time.Now()})

	summary, err := service.Summary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.ActiveInvestments)
	assert.True(t, summary.NextInvestment.IsZero())
	assert.Empty(t, summary.ProcessID)
}

func TestPortfolioSummaryFailsWhenEitherReadFails(t *testing.T) {
	session := mocks.NewMockWalletSession(t)
	transport := mocks.NewMockProcessTransport(t)
	session.EXPECT().CurrentAccount().Return(connectedAccount(), true)
	transport.EXPECT().DryRun(mockAnyContext(), mock.MatchedBy(func(req domain.ReadRequest) bool {
		return req.Tags.Action() == "getUser"
	})).Return(ports.DryRunResult{}, assert.AnError)
	transport.EXPECT().DryRun(mockAnyContext(), mock.Anything).Return(ports.DryRunResult{}, nil).Maybe()

	service := NewPortfolioService(NewProcessClient(session, transport, nil, nil), testProcesses, nil)
	_, err := service.Summary(context.Background())
	require.ErrorIs(t, err, domain.ErrRemoteUnavailable)
	require.ErrorIs(t, err, assert.AnError)
}
