package wallet

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/dumdum-cli/internal/domain"
	"github.com/bnema/dumdum-cli/internal/ports"
)

// Manager creates and imports wallets. Mnemonics go to the secret store,
// only the public record goes to the wallet repository.
type Manager struct {
	Wallets ports.WalletRepository
	Secrets ports.SecretStore
	Clock   ports.Clock
}

// Create generates a fresh wallet and returns its record with the mnemonic.
// The mnemonic is not retrievable through the manager afterwards.
func (m *Manager) Create(ctx context.Context, label string) (domain.WalletRecord, string, error) {
	mnemonic, err := NewMnemonic()
	if err != nil {
		return domain.WalletRecord{}, "", err
	}

	wallet, err := m.Import(ctx, mnemonic, label)
	if err != nil {
		return domain.WalletRecord{}, "", err
	}

	return wallet, mnemonic, nil
}

func (m *Manager) Import(ctx context.Context, mnemonic string, label string) (domain.WalletRecord, error) {
	key, normalized, err := KeyFromMnemonic(mnemonic)
	if err != nil {
		return domain.WalletRecord{}, err
	}

	address := key.Address()
	existing, err := m.Wallets.GetByAddress(ctx, address)
	switch {
	case err == nil:
		return existing, nil
	case !errors.Is(err, domain.ErrWalletNotFound):
		return domain.WalletRecord{}, fmt.Errorf("load wallet: %w", err)
	}

	keyRef := MnemonicKey(address)
	if err := m.Secrets.Put(ctx, keyRef, normalized); err != nil {
		return domain.WalletRecord{}, fmt.Errorf("store key material: %w", err)
	}

	wallet := domain.WalletRecord{
		Address:   address,
		Label:     strings.TrimSpace(label),
		KeyRef:    keyRef,
		Granted:   domain.DefaultPermissions(),
		CreatedAt: m.now(),
	}

	if err := m.Wallets.Save(ctx, wallet); err != nil {
		if rollbackErr := m.Secrets.Delete(ctx, keyRef); rollbackErr != nil {
			return domain.WalletRecord{}, errors.Join(fmt.Errorf("save wallet: %w", err), fmt.Errorf("rollback key material: %w", rollbackErr))
		}
		return domain.WalletRecord{}, fmt.Errorf("save wallet: %w", err)
	}

	return wallet, nil
}

func (m *Manager) List(ctx context.Context) ([]domain.WalletRecord, error) {
	return m.Wallets.List(ctx)
}

// Remove forgets a wallet and deletes its key material.
func (m *Manager) Remove(ctx context.Context, address string) error {
	wallet, err := m.Wallets.GetByAddress(ctx, address)
	if err != nil {
		return err
	}

	keyRef := wallet.KeyRef
	if keyRef == "" {
		keyRef = MnemonicKey(address)
	}
	if err := m.Secrets.Delete(ctx, keyRef); err != nil && !errors.Is(err, domain.ErrSecretNotFound) {
		return fmt.Errorf("delete key material: %w", err)
	}

	return m.Wallets.Delete(ctx, address)
}

func (m *Manager) now() time.Time {
	if m.Clock == nil {
		return time.Now().UTC()
	}

	return m.Clock.Now().UTC()
}
