package toml

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/bnema/dumdum-cli/internal/domain"
	"github.com/bnema/dumdum-cli/internal/ports"
	"github.com/spf13/viper"
)

const walletsFile = "wallets.toml"

// WalletRepository keeps the public records of known wallets. Key material
// never goes here.
type WalletRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.WalletRepository = (*WalletRepository)(nil)

func NewWalletRepository(cfg *viper.Viper) (*WalletRepository, error) {
	if cfg == nil {
		return nil, fmt.Errorf("wallet repository: config is required")
	}

	path, err := normalizePath(cfg.GetString(KeyWalletsPath))
	if err != nil {
		return nil, fmt.Errorf("wallets path: %w", err)
	}

	return &WalletRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *WalletRepository) Save(ctx context.Context, wallet domain.WalletRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toWalletSchema(wallet)
	updated := false
	for i := range file.Wallets {
		if file.Wallets[i].Address == encoded.Address {
			file.Wallets[i] = encoded
			updated = true
			break
		}
	}

	if !updated {
		file.Wallets = append(file.Wallets, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *WalletRepository) GetByAddress(ctx context.Context, address string) (domain.WalletRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.WalletRecord{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.WalletRecord{}, err
	}

	for _, entry := range file.Wallets {
		if entry.Address == address {
			return fromWalletSchema(entry), nil
		}
	}

	return domain.WalletRecord{}, domain.ErrWalletNotFound
}

// List returns wallets oldest first.
func (r *WalletRepository) List(ctx context.Context) ([]domain.WalletRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	wallets := make([]domain.WalletRecord, 0, len(file.Wallets))
	for _, entry := range file.Wallets {
		wallets = append(wallets, fromWalletSchema(entry))
	}
	sort.SliceStable(wallets, func(i, j int) bool {
		return wallets[i].CreatedAt.Before(wallets[j].CreatedAt)
	})

	return wallets, nil
}

func (r *WalletRepository) Delete(ctx context.Context, address string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	kept := file.Wallets[:0]
	found := false
	for _, entry := range file.Wallets {
		if entry.Address == address {
			found = true
			continue
		}
		kept = append(kept, entry)
	}
	if !found {
		return domain.ErrWalletNotFound
	}
	file.Wallets = kept

	return r.writeSchema(file)
}

func (r *WalletRepository) readSchema() (walletsFileSchema, error) {
	var file walletsFileSchema
	if err := readTOML(r.path, "wallets", &file); err != nil {
		return walletsFileSchema{}, err
	}
	if err := validateVersion("wallets", file.Version); err != nil {
		return walletsFileSchema{}, err
	}
	applyVersion(&file.Version)

	return file, nil
}

func (r *WalletRepository) writeSchema(file walletsFileSchema) error {
	applyVersion(&file.Version)
	return writeTOML(r.path, "wallets", file)
}
