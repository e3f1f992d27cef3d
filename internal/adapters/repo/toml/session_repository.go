package toml

import (
	"context"
	"fmt"
	"path/filepath"
	"reflect"
	"sync"

	"github.com/bnema/dumdum-cli/internal/domain"
	"github.com/bnema/dumdum-cli/internal/ports"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const sessionFile = "session.toml"

// SessionRepository persists the connected account so later invocations
// reuse the connection.
type SessionRepository struct {
	path   string
	mu     *sync.RWMutex
	logger *zap.Logger
}

var _ ports.SessionRepository = (*SessionRepository)(nil)

func NewSessionRepository(cfg *viper.Viper, logger *zap.Logger) (*SessionRepository, error) {
	if cfg == nil {
		return nil, fmt.Errorf("session repository: config is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	path, err := normalizePath(cfg.GetString(KeySessionsPath))
	if err != nil {
		return nil, fmt.Errorf("sessions path: %w", err)
	}

	return &SessionRepository{path: path, mu: lockForPath(path), logger: logger}, nil
}

func (r *SessionRepository) Load(ctx context.Context) (domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return domain.Account{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Account{}, err
	}

	return fromSessionSchema(file.Session), nil
}

func (r *SessionRepository) Save(ctx context.Context, account domain.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return writeTOML(r.path, "session", sessionFileSchema{
		Version: currentSchemaVersion,
		Session: toSessionSchema(account),
	})
}

func (r *SessionRepository) Clear(ctx context.Context) error {
	return r.Save(ctx, domain.Account{})
}

// Watch reports the persisted account every time another invocation
// changes it. The channel is closed when ctx ends.
func (r *SessionRepository) Watch(ctx context.Context) (<-chan domain.Account, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create session watcher: %w", err)
	}

	// Writes replace the file by rename, so watch the directory.
	dir := filepath.Dir(r.path)
	if err := writeDirIfMissing(dir); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch session directory: %w", err)
	}

	last, err := r.Load(ctx)
	if err != nil {
		_ = watcher.Close()
		return nil, err
	}

	updates := make(chan domain.Account, 1)
	go func() {
		defer close(updates)
		defer func() { _ = watcher.Close() }()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != r.path || !event.Has(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) {
					continue
				}

				account, err := r.Load(ctx)
				if err != nil {
					r.logger.Debug("reload session", zap.Error(err))
					continue
				}
				if reflect.DeepEqual(account, last) {
					continue
				}
				last = account

				select {
				case updates <- account:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				r.logger.Warn("session watcher", zap.Error(err))
			}
		}
	}()

	return updates, nil
}

func (r *SessionRepository) readSchema() (sessionFileSchema, error) {
	var file sessionFileSchema
	if err := readTOML(r.path, "session", &file); err != nil {
		return sessionFileSchema{}, err
	}
	if err := validateVersion("session", file.Version); err != nil {
		return sessionFileSchema{}, err
	}
	applyVersion(&file.Version)

	return file, nil
}
