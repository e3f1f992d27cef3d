package pass

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/dumdum-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mnemonicKey = "dumdum/wallets/addr-1/mnemonic"

func TestStorePutUsesPassInsert(t *testing.T) {
	t.Parallel()

	called := false
	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			called = true
			assert.Equal(t, context.Background(), ctx)
			assert.Equal(t, []string{"insert", "-m", "-f", mnemonicKey}, args)
			assert.Equal(t, "abandon ability able\n", input)
			return "", "", nil
		},
	}

	err := store.Put(context.Background(), mnemonicKey, "abandon ability able")
	require.NoError(t, err)
	assert.True(t, called)
}

func TestStoreGetUsesPassShowAndKeepsFirstLine(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"show", mnemonicKey}, args)
			assert.Empty(t, input)
			return "abandon ability able\nlabel: savings\n", "", nil
		},
	}

	value, err := store.Get(context.Background(), mnemonicKey)
	require.NoError(t, err)
	assert.Equal(t, "abandon ability able", value)
}

func TestStoreDeleteUsesPassRemove(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"rm", "-f", mnemonicKey}, args)
			assert.Empty(t, input)
			return "", "", nil
		},
	}

	err := store.Delete(context.Background(), mnemonicKey)
	require.NoError(t, err)
}

func TestStoreDeleteIgnoresMissingEntry(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(context.Context, string, ...string) (string, string, error) {
			return "", "Error: " + mnemonicKey + " is not in the password store.", errors.New("exit status 1")
		},
	}

	require.NoError(t, store.Delete(context.Background(), mnemonicKey))
}

func TestStoreGetMapsMissingEntryToNotFound(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(context.Context, string, ...string) (string, string, error) {
			return "", "Error: " + mnemonicKey + " is not in the password store.", errors.New("exit status 1")
		},
	}

	_, err := store.Get(context.Background(), mnemonicKey)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreGetReturnsClearError(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "gpg: decryption failed", errors.New("exit status 2")
		},
	}

	_, err := store.Get(context.Background(), mnemonicKey)
	require.Error(t, err)
	assert.ErrorContains(t, err, "pass get")
	assert.ErrorContains(t, err, mnemonicKey)
	assert.ErrorContains(t, err, "gpg: decryption failed")
}

func TestStoreCanceledContextSkipsCommand(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(context.Context, string, ...string) (string, string, error) {
			t.Fatal("pass must not run on a canceled context")
			return "", "", nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Get(ctx, mnemonicKey)
	require.ErrorIs(t, err, context.Canceled)
}
