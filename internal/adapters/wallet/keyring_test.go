package wallet

import (
	"crypto/sha256"
	"testing"

	"github.com/bnema/dumdum-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestKeyFromMnemonicIsDeterministic(t *testing.T) {
	t.Parallel()

	first, normalized, err := KeyFromMnemonic("  abandon abandon abandon abandon abandon abandon\nabandon abandon abandon abandon abandon about ")
	require.NoError(t, err)
	assert.Equal(t, testMnemonic, normalized)

	second, _, err := KeyFromMnemonic(testMnemonic)
	require.NoError(t, err)

	assert.Equal(t, first.Address(), second.Address())
	assert.Len(t, first.Address(), 43)
	assert.Equal(t, AddressOf(first.PublicKey()), first.Address())
}

func TestKeyFromMnemonicRejectsBadInput(t *testing.T) {
	t.Parallel()

	_, _, err := KeyFromMnemonic("   ")
	require.ErrorIs(t, err, ErrMnemonicRequired)

	_, _, err = KeyFromMnemonic("abandon abandon abandon")
	require.ErrorIs(t, err, ErrInvalidMnemonic)
}

func TestNewMnemonicProducesImportableWallet(t *testing.T) {
	t.Parallel()

	mnemonic, err := NewMnemonic()
	require.NoError(t, err)

	_, normalized, err := KeyFromMnemonic(mnemonic)
	require.NoError(t, err)
	assert.Equal(t, mnemonic, normalized)
}

func TestSignAndVerifyEnvelope(t *testing.T) {
	t.Parallel()

	key, _, err := KeyFromMnemonic(testMnemonic)
	require.NoError(t, err)

	signed := key.Sign(domain.SignedEnvelope{
		Target: "pid",
		Anchor: "anchor-1",
		Tags:   domain.Tags{domain.Action("Start")},
		Data:   []byte("payload"),
	})

	assert.Equal(t, key.Owner(), signed.Owner)
	require.NoError(t, Verify(signed))

	signature, err := encoding.DecodeString(signed.Signature)
	require.NoError(t, err)
	sum := sha256.Sum256(signature)
	assert.Equal(t, encoding.EncodeToString(sum[:]), signed.ID)

	tampered := signed
	tampered.Tags = domain.Tags{domain.Action("Stop")}
	require.ErrorIs(t, Verify(tampered), ErrInvalidSignature)

	wrongID := signed
	wrongID.ID = "other"
	require.ErrorIs(t, Verify(wrongID), ErrInvalidSignature)
}

func TestCanonicalBytesSeparatesFields(t *testing.T) {
	t.Parallel()

	a := canonicalBytes(domain.SignedEnvelope{Target: "ab", Anchor: "c"})
	b := canonicalBytes(domain.SignedEnvelope{Target: "a", Anchor: "bc"})
	assert.NotEqual(t, a, b)
}

func TestMnemonicKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "dumdum/wallets/addr-1/mnemonic", MnemonicKey("addr-1"))
}
