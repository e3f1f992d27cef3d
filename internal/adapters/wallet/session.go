package wallet

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/bnema/dumdum-cli/internal/domain"
	"github.com/bnema/dumdum-cli/internal/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	spawnDataProtocol = "ao"
	spawnVariant      = "ao.TN.1"
	spawnType         = "Process"
	// spawnData is the conventional body of a spawn message.
	spawnData = "1984"
)

type SessionDeps struct {
	Wallets   ports.WalletRepository
	Sessions  ports.SessionRepository
	Secrets   ports.SecretStore
	Approver  ports.Approver
	Transport ports.ProcessTransport
	Spawn     ports.SpawnConfig
	Clock     ports.Clock
	Logger    *zap.Logger
	// Address selects the wallet Connect uses. Empty means the only or
	// oldest known wallet.
	Address string
}

// Session is the wallet session provider. It holds at most one connected
// account, shared by every caller in the process.
type Session struct {
	wallets   ports.WalletRepository
	sessions  ports.SessionRepository
	secrets   ports.SecretStore
	approver  ports.Approver
	transport ports.ProcessTransport
	spawn     ports.SpawnConfig
	clock     ports.Clock
	logger    *zap.Logger
	address   string

	mu      sync.RWMutex
	account domain.Account

	subMu       sync.Mutex
	subscribers map[int]chan domain.Account
	nextSubID   int
}

var _ ports.WalletSession = (*Session)(nil)

func NewSession(deps SessionDeps) *Session {
	clock := deps.Clock
	if clock == nil {
		clock = ports.SystemClock{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	approver := deps.Approver
	if approver == nil {
		approver = AutoApprover{}
	}

	return &Session{
		wallets:     deps.Wallets,
		sessions:    deps.Sessions,
		secrets:     deps.Secrets,
		approver:    approver,
		transport:   deps.Transport,
		spawn:       deps.Spawn,
		clock:       clock,
		logger:      logger,
		address:     strings.TrimSpace(deps.Address),
		subscribers: map[int]chan domain.Account{},
	}
}

// Restore loads the account persisted by an earlier invocation. A persisted
// account whose wallet or key material is gone is dropped.
func (s *Session) Restore(ctx context.Context) error {
	if s.sessions == nil {
		return nil
	}

	account, err := s.sessions.Load(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if !account.Connected {
		return nil
	}

	wallet, err := s.wallets.GetByAddress(ctx, account.Address)
	if err != nil {
		if errors.Is(err, domain.ErrWalletNotFound) {
			s.logger.Warn("dropping session for unknown wallet", zap.String("address", account.Address))
			return s.clearPersisted(ctx)
		}
		return fmt.Errorf("load session wallet: %w", err)
	}
	if _, err := s.loadKey(ctx, wallet); err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			s.logger.Warn("dropping session for wallet without key material", zap.String("address", account.Address))
			return s.clearPersisted(ctx)
		}
		return fmt.Errorf("load session key: %w", err)
	}

	s.mu.Lock()
	s.account = account
	s.mu.Unlock()

	s.logger.Debug("session restored", zap.String("address", account.Address))
	return nil
}

func (s *Session) Connect(ctx context.Context, requested []domain.PermissionKind) (domain.Account, error) {
	if len(requested) == 0 {
		requested = domain.DefaultPermissions()
	}

	wallet, err := s.selectWallet(ctx)
	if err != nil {
		return domain.Account{}, err
	}

	key, err := s.loadKey(ctx, wallet)
	if err != nil {
		return domain.Account{}, err
	}
	if key.Address() != wallet.Address {
		return domain.Account{}, fmt.Errorf("%w: key material does not match wallet %s", domain.ErrWalletUnavailable, wallet.Address)
	}

	if missing := wallet.MissingPermissions(requested); len(missing) > 0 {
		return domain.Account{}, fmt.Errorf("%w: wallet %s does not grant %s", domain.ErrConnectionDenied, wallet.Address, joinPermissions(missing))
	}

	approved, err := s.approver.Approve(ctx, ports.ApprovalRequest{
		Kind:        ports.ApprovalConnect,
		Address:     wallet.Address,
		Permissions: requested,
	})
	if err != nil {
		return domain.Account{}, fmt.Errorf("approve connection: %w", err)
	}
	if !approved {
		return domain.Account{}, fmt.Errorf("%w: declined by user", domain.ErrConnectionDenied)
	}

	account := domain.Account{
		Address:     wallet.Address,
		Connected:   true,
		Permissions: slices.Clone(requested),
		ConnectedAt: s.clock.Now().UTC(),
	}

	if s.sessions != nil {
		if err := s.sessions.Save(ctx, account); err != nil {
			return domain.Account{}, fmt.Errorf("persist session: %w", err)
		}
	}

	s.mu.Lock()
	s.account = account
	s.mu.Unlock()

	s.logger.Info("wallet connected", zap.String("address", account.Address))
	s.broadcast(account)

	return account, nil
}

// Disconnect always clears the session. Failing to clear the persisted
// copy is logged.
func (s *Session) Disconnect(ctx context.Context) error {
	s.mu.Lock()
	previous := s.account
	s.account = domain.Account{}
	s.mu.Unlock()

	if err := s.clearPersisted(ctx); err != nil {
		s.logger.Warn("clear persisted session", zap.Error(err))
	}

	if previous.Connected {
		s.logger.Info("wallet disconnected", zap.String("address", previous.Address))
	}
	s.broadcast(domain.Account{})

	return nil
}

func (s *Session) CurrentAccount() (domain.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account := s.account
	account.Permissions = slices.Clone(account.Permissions)
	return account, account.Connected
}

func (s *Session) Sign(ctx context.Context, req domain.WriteRequest) (domain.SignedEnvelope, error) {
	if err := req.Validate(); err != nil {
		return domain.SignedEnvelope{}, err
	}

	return s.sign(ctx, domain.SignedEnvelope{
		Target: req.ProcessID,
		Tags:   req.Tags.Clone(),
		Data:   slices.Clone(req.Data),
	})
}

// Provision spawns a new process owned by the connected wallet and returns
// its id.
func (s *Session) Provision(ctx context.Context, name string, tags domain.Tags) (string, error) {
	if s.transport == nil {
		return "", fmt.Errorf("%w: no transport configured", domain.ErrWalletUnavailable)
	}

	envelope, err := s.sign(ctx, domain.SignedEnvelope{
		Tags: s.spawnTags(name, tags),
		Data: []byte(spawnData),
	})
	if err != nil {
		return "", err
	}

	processID, err := s.transport.Submit(ctx, envelope)
	if err != nil {
		return "", fmt.Errorf("spawn process: %w", err)
	}

	s.logger.Info("process spawned", zap.String("process", processID), zap.String("name", name))
	return processID, nil
}

// Adopt takes over an account persisted by another invocation without
// saving it again. Subscribers are told only when the state changes.
func (s *Session) Adopt(account domain.Account) {
	if !account.Connected {
		account = domain.Account{}
	}

	s.mu.Lock()
	changed := !sameAccount(s.account, account)
	s.account = account
	s.mu.Unlock()

	if changed {
		s.broadcast(account)
	}
}

func sameAccount(a, b domain.Account) bool {
	return a.Address == b.Address &&
		a.Connected == b.Connected &&
		a.ConnectedAt.Equal(b.ConnectedAt) &&
		slices.Equal(a.Permissions, b.Permissions)
}

// Subscribe returns a channel that receives every connection change. Slow
// readers only see the latest state. The returned func stops delivery and
// closes the channel.
func (s *Session) Subscribe() (<-chan domain.Account, func()) {
	ch := make(chan domain.Account, 1)

	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = ch
	s.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subscribers, id)
			s.subMu.Unlock()
			close(ch)
		})
	}
}

func (s *Session) sign(ctx context.Context, envelope domain.SignedEnvelope) (domain.SignedEnvelope, error) {
	account, connected := s.CurrentAccount()
	if !connected {
		return domain.SignedEnvelope{}, domain.ErrWalletNotConnected
	}
	if !account.Has(domain.PermissionSignTransaction) {
		return domain.SignedEnvelope{}, fmt.Errorf("%w: %s not granted", domain.ErrSigningRejected, domain.PermissionSignTransaction)
	}

	approved, err := s.approver.Approve(ctx, ports.ApprovalRequest{
		Kind:      ports.ApprovalSign,
		Address:   account.Address,
		ProcessID: envelope.Target,
		Tags:      envelope.Tags,
	})
	if err != nil {
		return domain.SignedEnvelope{}, fmt.Errorf("approve signature: %w", err)
	}
	if !approved {
		return domain.SignedEnvelope{}, fmt.Errorf("%w: declined by user", domain.ErrSigningRejected)
	}

	wallet, err := s.wallets.GetByAddress(ctx, account.Address)
	if err != nil {
		return domain.SignedEnvelope{}, fmt.Errorf("%w: %w", domain.ErrWalletUnavailable, err)
	}
	key, err := s.loadKey(ctx, wallet)
	if err != nil {
		return domain.SignedEnvelope{}, err
	}

	envelope.Anchor = uuid.NewString()
	signed := key.Sign(envelope)

	s.logger.Debug("envelope signed",
		zap.String("id", signed.ID),
		zap.String("target", signed.Target),
		zap.String("tags", signed.Tags.String()),
	)

	return signed, nil
}

func (s *Session) selectWallet(ctx context.Context) (domain.WalletRecord, error) {
	if s.wallets == nil {
		return domain.WalletRecord{}, fmt.Errorf("%w: no wallet repository", domain.ErrWalletUnavailable)
	}

	if s.address != "" {
		wallet, err := s.wallets.GetByAddress(ctx, s.address)
		if err != nil {
			if errors.Is(err, domain.ErrWalletNotFound) {
				return domain.WalletRecord{}, fmt.Errorf("%w: %w: %s", domain.ErrWalletUnavailable, err, s.address)
			}
			return domain.WalletRecord{}, fmt.Errorf("load wallet: %w", err)
		}
		return wallet, nil
	}

	wallets, err := s.wallets.List(ctx)
	if err != nil {
		return domain.WalletRecord{}, fmt.Errorf("list wallets: %w", err)
	}
	if len(wallets) == 0 {
		return domain.WalletRecord{}, fmt.Errorf("%w: no wallet configured", domain.ErrWalletUnavailable)
	}

	sort.SliceStable(wallets, func(i, j int) bool {
		return wallets[i].CreatedAt.Before(wallets[j].CreatedAt)
	})

	return wallets[0], nil
}

func (s *Session) loadKey(ctx context.Context, wallet domain.WalletRecord) (Key, error) {
	if s.secrets == nil {
		return Key{}, fmt.Errorf("%w: no key store", domain.ErrWalletUnavailable)
	}

	keyRef := wallet.KeyRef
	if keyRef == "" {
		keyRef = MnemonicKey(wallet.Address)
	}

	mnemonic, err := s.secrets.Get(ctx, keyRef)
	if err != nil {
		return Key{}, fmt.Errorf("%w: load key material for %s: %w", domain.ErrWalletUnavailable, wallet.Address, err)
	}

	key, _, err := KeyFromMnemonic(mnemonic)
	if err != nil {
		return Key{}, fmt.Errorf("%w: %w", domain.ErrWalletUnavailable, err)
	}

	return key, nil
}

func (s *Session) spawnTags(name string, extra domain.Tags) domain.Tags {
	tags := domain.Tags{
		{Name: "Data-Protocol", Value: spawnDataProtocol},
		{Name: "Variant", Value: spawnVariant},
		{Name: "Type", Value: spawnType},
		{Name: "Module", Value: s.spawn.Module},
		{Name: "Scheduler", Value: s.spawn.Scheduler},
	}
	tags = tags.With(extra...)
	if name != "" {
		tags = tags.With(domain.Tag{Name: "Name", Value: name})
	}
	if s.spawn.Authority != "" {
		tags = tags.With(domain.Tag{Name: "Authority", Value: s.spawn.Authority})
	}

	return tags
}

func (s *Session) clearPersisted(ctx context.Context) error {
	if s.sessions == nil {
		return nil
	}

	return s.sessions.Clear(ctx)
}

func (s *Session) broadcast(account domain.Account) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for _, ch := range s.subscribers {
		select {
		case <-ch:
		default:
		}
		ch <- account
	}
}

func joinPermissions(permissions []domain.PermissionKind) string {
	parts := make([]string, 0, len(permissions))
	for _, permission := range permissions {
		parts = append(parts, string(permission))
	}

	return strings.Join(parts, ", ")
}
