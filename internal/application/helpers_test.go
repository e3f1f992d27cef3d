package application

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/dumdum-cli/internal/domain"
	"github.com/bnema/dumdum-cli/internal/ports"
	"github.com/bnema/dumdum-cli/internal/ports/mocks"
	"github.com/stretchr/testify/mock"
)

const (
	testAddress   = "abc"
	testMain      = "main-pid"
	testArbitrage = "bot-pid"
	testFaucet    = "faucet-pid"
)

var testProcesses = Processes{Main: testMain, Arbitrage: testArbitrage, Faucet: testFaucet}

func connectedAccount() domain.Account {
	return domain.Account{
		Address:     testAddress,
		Connected:   true,
		Permissions: domain.DefaultPermissions(),
		ConnectedAt: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
	}
}

// fakeRemote answers reads and settles writes by (process, action). It
// records every submitted envelope in order.
type fakeRemote struct {
	mu        sync.Mutex
	reads     map[string]ports.DryRunResult
	outcomes  map[string]domain.WriteOutcome
	effects   map[string]func()
	submitted []domain.SignedEnvelope
	dryRuns   []domain.ReadRequest
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		reads:    map[string]ports.DryRunResult{},
		outcomes: map[string]domain.WriteOutcome{},
		effects:  map[string]func(){},
	}
}

func remoteKey(processID string, action string) string {
	return processID + "/" + action
}

func (r *fakeRemote) onRead(processID string, action string, data string) {
	r.reads[remoteKey(processID, action)] = ports.DryRunResult{
		Messages: []domain.OutcomeMessage{{Target: testAddress, Data: data}},
	}
}

func (r *fakeRemote) onWrite(processID string, action string, outcome domain.WriteOutcome) {
	r.outcomes[remoteKey(processID, action)] = outcome
}

// afterWrite runs apply when a write of action to processID settles
// without error. apply runs with the remote locked and may call onRead.
func (r *fakeRemote) afterWrite(processID string, action string, apply func()) {
	r.effects[remoteKey(processID, action)] = apply
}

func (r *fakeRemote) dryRunCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.dryRuns)
}

func (r *fakeRemote) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	actions := make([]string, 0, len(r.submitted))
	for _, envelope := range r.submitted {
		actions = append(actions, envelope.Tags.Action())
	}
	return actions
}

func (r *fakeRemote) lastSubmitted(action string) (domain.SignedEnvelope, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := len(r.submitted) - 1; i >= 0; i-- {
		if r.submitted[i].Tags.Action() == action {
			return r.submitted[i], true
		}
	}
	return domain.SignedEnvelope{}, false
}

// install wires the fake into transport and session mocks. Every
// expectation is optional so tests only assert on what they care about.
func (r *fakeRemote) install(session *mocks.MockWalletSession, transport *mocks.MockProcessTransport) {
	session.EXPECT().Sign(mockAnyContext(), mock.Anything).RunAndReturn(func(_ context.Context, req domain.WriteRequest) (domain.SignedEnvelope, error) {
		r.mu.Lock()
		defer r.mu.Unlock()

		return domain.SignedEnvelope{
			ID:        "msg-" + strings.ToLower(req.Tags.Action()) + "-" + string(rune('a'+len(r.submitted))),
			Owner:     "owner",
			Target:    req.ProcessID,
			Tags:      req.Tags,
			Data:      req.Data,
			Signature: "sig",
		}, nil
	}).Maybe()

	transport.EXPECT().DryRun(mockAnyContext(), mock.Anything).RunAndReturn(func(_ context.Context, req domain.ReadRequest) (ports.DryRunResult, error) {
		r.mu.Lock()
		defer r.mu.Unlock()

		r.dryRuns = append(r.dryRuns, req)
		return r.reads[remoteKey(req.ProcessID, req.Tags.Action())], nil
	}).Maybe()

	pending := map[string]domain.SignedEnvelope{}
	transport.EXPECT().Submit(mockAnyContext(), mock.Anything).RunAndReturn(func(_ context.Context, envelope domain.SignedEnvelope) (string, error) {
		r.mu.Lock()
		defer r.mu.Unlock()

		r.submitted = append(r.submitted, envelope)
		pending[envelope.ID] = envelope
		return envelope.ID, nil
	}).Maybe()

	transport.EXPECT().Result(mockAnyContext(), mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, processID string, messageID string) (domain.WriteOutcome, error) {
		r.mu.Lock()
		defer r.mu.Unlock()

		envelope := pending[messageID]
		key := remoteKey(processID, envelope.Tags.Action())
		outcome := r.outcomes[key]
		outcome.MessageID = messageID
		if apply, ok := r.effects[key]; ok && !outcome.Failed() {
			apply()
		}
		return outcome, nil
	}).Maybe()
}

// newConnectedClient returns a client whose session reports testAddress as
// connected and whose remote is served by the returned fake.
func newConnectedClient(t *testing.T) (*ProcessClient, *fakeRemote, *mocks.MockWalletSession, *mocks.MockProcessTransport) {
	t.Helper()

	session := mocks.NewMockWalletSession(t)
	transport := mocks.NewMockProcessTransport(t)
	session.EXPECT().CurrentAccount().Return(connectedAccount(), true).Maybe()

	remote := newFakeRemote()
	remote.install(session, transport)

	return NewProcessClient(session, transport, nil, nil), remote, session, transport
}

func mockAnyContext() interface{} {
	return mock.Anything
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}
