package application

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/dumdum-cli/internal/domain"
	"github.com/bnema/dumdum-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOnboardProvisionsAndRegistersUnknownWallet(t *testing.T) {
	client, remote, session, _ := newConnectedClient(t)
	session.EXPECT().Provision(mockAnyContext(), testAddress, domain.Tags(nil)).Return("p1", nil).Once()

	service := NewOnboardingService(client, testProcesses, nil)
	result, err := service.Onboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OnboardingResult{Status: Onboarded, Address: testAddress, ProcessID: "p1"}, result)
	assert.Equal(t, []string{"addUser"}, remote.actions())

	envelope, ok := remote.lastSubmitted("addUser")
	require.True(t, ok)
	assert.Equal(t, testMain, envelope.Target)
	assert.Equal(t, domain.Tags{
		domain.Action("addUser"),
		{Name: "Wallet_Address", Value: "abc"},
		{Name: "Process_ID", Value: "p1"},
	}, envelope.Tags)
}

func TestOnboardExistingWalletSkipsProvisioning(t *testing.T) {
	client, remote, session, _ := newConnectedClient(t)
	remote.onRead(testMain, "getUser", `[{"Wallet_Address":"abc","Process_ID":"p0"}]`)

	service := NewOnboardingService(client, testProcesses, nil)
	result, err := service.Onboard(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Existing)
	assert.Equal(t, Onboarded, result.Status)
	assert.Equal(t, "p0", result.ProcessID)
	assert.Empty(t, remote.actions())
	session.AssertNotCalled(t, "Provision", mock.Anything, mock.Anything, mock.Anything)
}

func TestOnboardRecordWithoutProcessIsOnboarded(t *testing.T) {
	client, remote, session, _ := newConnectedClient(t)
	remote.onRead(testMain, "getUser", `[{"Wallet_Address":"abc"}]`)

	service := NewOnboardingService(client, testProcesses, nil)
	result, err := service.Onboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OnboardingResult{Status: Onboarded, Address: testAddress, Existing: true}, result)
	assert.Empty(t, remote.actions())
	session.AssertNotCalled(t, "Provision", mock.Anything, mock.Anything, mock.Anything)
}

func TestOnboardTwiceRegistersOnce(t *testing.T) {
	client, remote, session, _ := newConnectedClient(t)
	session.EXPECT().Provision(mockAnyContext(), testAddress, domain.Tags(nil)).Return("p1", nil).Once()
	remote.onRead(testMain, "getUser", `[]`)
	remote.afterWrite(testMain, "addUser", func() {
		remote.onRead(testMain, "getUser", `[{"Wallet_Address":"abc","Process_ID":"p1"}]`)
	})

	service := NewOnboardingService(client, testProcesses, nil)
	first, err := service.Onboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OnboardingResult{Status: Onboarded, Address: testAddress, ProcessID: "p1"}, first)

	second, err := service.Onboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OnboardingResult{Status: Onboarded, Address: testAddress, ProcessID: "p1", Existing: true}, second)

	assert.Equal(t, []string{"addUser"}, remote.actions())
	assert.Equal(t, 2, remote.dryRunCount())
}

func TestOnboardRejectedRegistrationFails(t *testing.T) {
	client, remote, session, _ := newConnectedClient(t)
	session.EXPECT().Provision(mockAnyContext(), testAddress, mock.Anything).Return("p1", nil)
	remote.onWrite(testMain, "addUser", domain.WriteOutcome{Error: "user already exists"})

	service := NewOnboardingService(client, testProcesses, nil)
	result, err := service.Onboard(context.Background())
	require.ErrorIs(t, err, domain.ErrRemoteRejected)

	assert.Equal(t, OnboardingFailed, result.Status)
	assert.Equal(t, "user already exists", result.Error)
	assert.Equal(t, "p1", result.ProcessID)
}

func TestOnboardProvisionFailureStopsFlow(t *testing.T) {
	client, remote, session, _ := newConnectedClient(t)
	provisionErr := errors.New("scheduler unreachable")
	session.EXPECT().Provision(mockAnyContext(), testAddress, mock.Anything).Return("", provisionErr)

	service := NewOnboardingService(client, testProcesses, nil)
	_, err := service.Onboard(context.Background())
	require.ErrorIs(t, err, provisionErr)
	assert.Empty(t, remote.actions())
}

func TestOnboardRequiresConnectedWallet(t *testing.T) {
	session := mocks.NewMockWalletSession(t)
	transport := mocks.NewMockProcessTransport(t)
	session.EXPECT().CurrentAccount().Return(domain.Account{}, false)

	service := NewOnboardingService(NewProcessClient(session, transport, nil, nil), testProcesses, nil)
	_, err := service.Onboard(context.Background())
	require.ErrorIs(t, err, domain.ErrWalletNotConnected)
	transport.AssertNotCalled(t, "DryRun", mock.Anything, mock.Anything)
}
