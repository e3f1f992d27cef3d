package wallet

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bnema/dumdum-cli/internal/domain"
)

type memWallets struct {
	mu      sync.Mutex
	wallets map[string]domain.WalletRecord
}

func newMemWallets(wallets ...domain.WalletRecord) *memWallets {
	repo := &memWallets{wallets: map[string]domain.WalletRecord{}}
	for _, wallet := range wallets {
		repo.wallets[wallet.Address] = wallet
	}
	return repo
}

func (r *memWallets) GetByAddress(_ context.Context, address string) (domain.WalletRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wallet, ok := r.wallets[address]
	if !ok {
		return domain.WalletRecord{}, domain.ErrWalletNotFound
	}
	return wallet, nil
}

func (r *memWallets) List(context.Context) ([]domain.WalletRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.WalletRecord, 0, len(r.wallets))
	for _, wallet := range r.wallets {
		out = append(out, wallet)
	}
	return out, nil
}

func (r *memWallets) Save(_ context.Context, wallet domain.WalletRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.wallets[wallet.Address] = wallet
	return nil
}

func (r *memWallets) Delete(_ context.Context, address string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.wallets[address]; !ok {
		return domain.ErrWalletNotFound
	}
	delete(r.wallets, address)
	return nil
}

type memSessions struct {
	mu       sync.Mutex
	account  domain.Account
	clearErr error
}

func (r *memSessions) Load(context.Context) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.account, nil
}

func (r *memSessions) Save(_ context.Context, account domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.account = account
	return nil
}

func (r *memSessions) Clear(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.clearErr != nil {
		return r.clearErr
	}
	r.account = domain.Account{}
	return nil
}

type memSecrets struct {
	mu      sync.Mutex
	secrets map[string]string
	putErr  error
}

func newMemSecrets() *memSecrets {
	return &memSecrets{secrets: map[string]string{}}
}

func (s *memSecrets) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.secrets[key]
	if !ok {
		return "", domain.ErrSecretNotFound
	}
	return value, nil
}

func (s *memSecrets) Put(_ context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.putErr != nil {
		return s.putErr
	}
	s.secrets[key] = value
	return nil
}

func (s *memSecrets) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.secrets, key)
	return nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

var errBoom = errors.New("boom")
