package wallet

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
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

type sessionFixture struct {
	session  *Session
	wallets  *memWallets
	sessions *memSessions
	secrets  *memSecrets
	address  string
}

func newSessionFixture(t *testing.T, approver ports.Approver, transport ports.ProcessTransport) sessionFixture {
	t.Helper()

	wallets := newMemWallets()
	secrets := newMemSecrets()
	manager := &Manager{Wallets: wallets, Secrets: secrets, Clock: fixedClock{now: testNow}}

	wallet, err := manager.Import(context.Background(), testMnemonic, "main")
	require.NoError(t, err)

	sessions := &memSessions{}
	session := NewSession(SessionDeps{
		Wallets:   wallets,
		Sessions:  sessions,
		Secrets:   secrets,
		Approver:  approver,
		Transport: transport,
		Spawn:     ports.SpawnConfig{Module: "module-1", Scheduler: "scheduler-1", Authority: "authority-1"},
		Clock:     fixedClock{now: testNow},
	})

	return sessionFixture{session: session, wallets: wallets, sessions: sessions, secrets: secrets, address: wallet.Address}
}

func TestConnectWithoutWalletIsUnavailable(t *testing.T) {
	t.Parallel()

	session := NewSession(SessionDeps{Wallets: newMemWallets(), Secrets: newMemSecrets()})

	_, err := session.Connect(context.Background(), nil)
	require.ErrorIs(t, err, domain.ErrWalletUnavailable)

	_, connected := session.CurrentAccount()
	assert.False(t, connected)
}

func TestConnectWithMissingKeyMaterialIsUnavailable(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t, AutoApprover{}, nil)
	require.NoError(t, f.secrets.Delete(context.Background(), MnemonicKey(f.address)))

	_, err := f.session.Connect(context.Background(), nil)
	require.ErrorIs(t, err, domain.ErrWalletUnavailable)
}

func TestConnectDeclinedByApprover(t *testing.T) {
	t.Parallel()

	deny := ApproverFunc(func(_ context.Context, req ports.ApprovalRequest) (bool, error) {
		assert.Equal(t, ports.ApprovalConnect, req.Kind)
		return false, nil
	})
	f := newSessionFixture(t, deny, nil)

	_, err := f.session.Connect(context.Background(), nil)
	require.ErrorIs(t, err, domain.ErrConnectionDenied)

	_, connected := f.session.CurrentAccount()
	assert.False(t, connected)
}

func TestConnectDeniedForUngrantedPermission(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t, AutoApprover{}, nil)
	wallet, err := f.wallets.GetByAddress(context.Background(), f.address)
	require.NoError(t, err)
	wallet.Granted = []domain.PermissionKind{domain.PermissionAccessAddress}
	require.NoError(t, f.wallets.Save(context.Background(), wallet))

	_, err = f.session.Connect(context.Background(), []domain.PermissionKind{domain.PermissionSignTransaction})
	require.ErrorIs(t, err, domain.ErrConnectionDenied)
	assert.ErrorContains(t, err, string(domain.PermissionSignTransaction))
}

func TestConnectPersistsAndBroadcasts(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t, AutoApprover{}, nil)
	updates, unsubscribe := f.session.Subscribe()
	defer unsubscribe()

	account, err := f.session.Connect(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, f.address, account.Address)
	assert.Equal(t, domain.DefaultPermissions(), account.Permissions)
	assert.Equal(t, testNow, account.ConnectedAt)

	current, connected := f.session.CurrentAccount()
	require.True(t, connected)
	assert.Equal(t, account, current)

	persisted, err := f.sessions.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, account, persisted)

	select {
	case got := <-updates:
		assert.Equal(t, account, got)
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive the connection")
	}
}

func TestDisconnectAlwaysSucceeds(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t, AutoApprover{}, nil)
	_, err := f.session.Connect(context.Background(), nil)
	require.NoError(t, err)

	f.sessions.clearErr = errBoom
	require.NoError(t, f.session.Disconnect(context.Background()))

	_, connected := f.session.CurrentAccount()
	assert.False(t, connected)

	require.NoError(t, f.session.Disconnect(context.Background()))
}

func TestSubscribeKeepsOnlyLatestState(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t, AutoApprover{}, nil)
	updates, unsubscribe := f.session.Subscribe()

	_, err := f.session.Connect(context.Background(), nil)
	require.NoError(t, err)
	require.NoError(t, f.session.Disconnect(context.Background()))

	latest := <-updates
	assert.False(t, latest.Connected)

	unsubscribe()
	unsubscribe()

	_, open := <-updates
	assert.False(t, open)
}

func TestRestoreLoadsPersistedAccount(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t, AutoApprover{}, nil)
	persisted := domain.Account{Address: f.address, Connected: true, Permissions: domain.DefaultPermissions(), ConnectedAt: testNow}
	require.NoError(t, f.sessions.Save(context.Background(), persisted))

	require.NoError(t, f.session.Restore(context.Background()))

	current, connected := f.session.CurrentAccount()
	require.True(t, connected)
	assert.Equal(t, persisted, current)
}

func TestRestoreDropsSessionOfForgottenWallet(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t, AutoApprover{}, nil)
	require.NoError(t, f.sessions.Save(context.Background(), domain.Account{Address: "gone", Connected: true}))

	require.NoError(t, f.session.Restore(context.Background()))

	_, connected := f.session.CurrentAccount()
	assert.False(t, connected)
	persisted, err := f.sessions.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, persisted.Connected)
}

func TestRestoreDropsSessionWithoutKeyMaterial(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t, AutoApprover{}, nil)
	require.NoError(t, f.sessions.Save(context.Background(), domain.Account{Address: f.address, Connected: true, Permissions: domain.DefaultPermissions()}))
	require.NoError(t, f.secrets.Delete(context.Background(), MnemonicKey(f.address)))

	require.NoError(t, f.session.Restore(context.Background()))

	_, connected := f.session.CurrentAccount()
	assert.False(t, connected)
	persisted, err := f.sessions.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, persisted.Connected)
}

func TestAdoptBroadcastsOnlyChanges(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t, AutoApprover{}, nil)
	updates, unsubscribe := f.session.Subscribe()
	defer unsubscribe()

	account := domain.Account{Address: f.address, Connected: true, Permissions: domain.DefaultPermissions(), ConnectedAt: testNow}
	f.session.Adopt(account)

	current, connected := f.session.CurrentAccount()
	require.True(t, connected)
	assert.Equal(t, account, current)
	assert.Equal(t, account, <-updates)

	f.session.Adopt(account)
	select {
	case got := <-updates:
		t.Fatalf("unexpected update %+v", got)
	default:
	}

	f.session.Adopt(domain.Account{Address: f.address})
	assert.Equal(t, domain.Account{}, <-updates)
	_, connected = f.session.CurrentAccount()
	assert.False(t, connected)

	persisted, err := f.sessions.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Account{}, persisted)
}

func TestSignRequiresConnection(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t, AutoApprover{}, nil)

	_, err := f.session.Sign(context.Background(), domain.WriteRequest{ProcessID: "pid", Tags: domain.Tags{domain.Action("Start")}})
	require.ErrorIs(t, err, domain.ErrWalletNotConnected)
}

func TestSignRejectedByApprover(t *testing.T) {
	t.Parallel()

	approver := ApproverFunc(func(_ context.Context, req ports.ApprovalRequest) (bool, error) {
		return req.Kind == ports.ApprovalConnect, nil
	})
	f := newSessionFixture(t, approver, nil)
	_, err := f.session.Connect(context.Background(), nil)
	require.NoError(t, err)

	_, err = f.session.Sign(context.Background(), domain.WriteRequest{ProcessID: "pid", Tags: domain.Tags{domain.Action("Start")}})
	require.ErrorIs(t, err, domain.ErrSigningRejected)
}

func TestSignWithoutSignPermissionIsRejected(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t, AutoApprover{}, nil)
	_, err := f.session.Connect(context.Background(), []domain.PermissionKind{domain.PermissionAccessAddress})
	require.NoError(t, err)

	_, err = f.session.Sign(context.Background(), domain.WriteRequest{ProcessID: "pid"})
	require.ErrorIs(t, err, domain.ErrSigningRejected)
}

func TestSignProducesVerifiableEnvelope(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t, AutoApprover{}, nil)
	_, err := f.session.Connect(context.Background(), nil)
	require.NoError(t, err)

	req := domain.WriteRequest{
		ProcessID: "pid",
		Tags:      domain.Tags{domain.Action("Setup"), {Name: "Slippage", Value: "0.3"}},
		Data:      []byte("payload"),
	}
	envelope, err := f.session.Sign(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "pid", envelope.Target)
	assert.Equal(t, req.Tags, envelope.Tags)
	assert.NotEmpty(t, envelope.Anchor)
	require.NoError(t, Verify(envelope))

	key, _, err := KeyFromMnemonic(testMnemonic)
	require.NoError(t, err)
	assert.Equal(t, f.address, AddressOf(key.PublicKey()))
}

func TestProvisionSubmitsSpawnEnvelope(t *testing.T) {
	t.Parallel()

	transport := mocks.NewMockProcessTransport(t)
	f := newSessionFixture(t, AutoApprover{}, transport)
	_, err := f.session.Connect(context.Background(), nil)
	require.NoError(t, err)

	transport.EXPECT().
		Submit(mock.Anything, mock.MatchedBy(func(envelope domain.SignedEnvelope) bool {
			return envelope.Target == "" &&
				envelope.Tags.String() == "Data-Protocol=ao,Variant=ao.TN.1,Type=Process,Module=module-1,Scheduler=scheduler-1,App=dumdum,Name=abc,Authority=authority-1" &&
				Verify(envelope) == nil
		})).
		Return("new-process", nil).
		Once()

	processID, err := f.session.Provision(context.Background(), "abc", domain.Tags{{Name: "App", Value: "dumdum"}})
	require.NoError(t, err)
	assert.Equal(t, "new-process", processID)
}

func TestProvisionRequiresConnection(t *testing.T) {
	t.Parallel()

	transport := mocks.NewMockProcessTransport(t)
	f := newSessionFixture(t, AutoApprover{}, transport)

	_, err := f.session.Provision(context.Background(), "abc", nil)
	require.ErrorIs(t, err, domain.ErrWalletNotConnected)
}
