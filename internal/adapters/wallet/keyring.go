package wallet

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/dumdum-cli/internal/domain"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/hkdf"
)

const (
	mnemonicEntropyBits = 256
	hkdfInfoSigning     = "dumdum/wallet/signing/v1"
	mnemonicKeyPrefix   = "dumdum/wallets/"
	mnemonicKeySuffix   = "/mnemonic"
)

var (
	ErrMnemonicRequired = errors.New("mnemonic is required")
	ErrInvalidMnemonic  = errors.New("invalid mnemonic")
	ErrInvalidSignature = errors.New("invalid envelope signature")
)

var encoding = base64.RawURLEncoding

// Key is the signing key of one wallet.
type Key struct {
	private ed25519.PrivateKey
}

func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(mnemonicEntropyBits)
	if err != nil {
		return "", fmt.Errorf("generate entropy: %w", err)
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("generate mnemonic: %w", err)
	}

	return mnemonic, nil
}

// KeyFromMnemonic derives the wallet's ed25519 key from a BIP-39 phrase.
// The same phrase always yields the same key and address.
func KeyFromMnemonic(mnemonic string) (Key, string, error) {
	mnemonic = normalizeMnemonic(mnemonic)
	if mnemonic == "" {
		return Key{}, "", ErrMnemonicRequired
	}
	if !bip39.IsMnemonicValid(mnemonic) {
		return Key{}, "", ErrInvalidMnemonic
	}

	seed := bip39.NewSeed(mnemonic, "")
	signingSeed, err := hkdfExpand(seed, hkdfInfoSigning, ed25519.SeedSize)
	if err != nil {
		return Key{}, "", fmt.Errorf("derive signing key: %w", err)
	}

	return Key{private: ed25519.NewKeyFromSeed(signingSeed)}, mnemonic, nil
}

func (k Key) PublicKey() ed25519.PublicKey {
	return k.private.Public().(ed25519.PublicKey)
}

// Owner is the public key in the form carried by signed envelopes.
func (k Key) Owner() string {
	return encoding.EncodeToString(k.PublicKey())
}

func (k Key) Address() string {
	return AddressOf(k.PublicKey())
}

// Sign fills in the owner, signature and id of the envelope.
func (k Key) Sign(envelope domain.SignedEnvelope) domain.SignedEnvelope {
	envelope.Owner = k.Owner()
	signature := ed25519.Sign(k.private, canonicalBytes(envelope))
	envelope.Signature = encoding.EncodeToString(signature)
	envelope.ID = envelopeID(signature)

	return envelope
}

// AddressOf derives a wallet address: base64url of the sha256 of the public key.
func AddressOf(publicKey ed25519.PublicKey) string {
	sum := sha256.Sum256(publicKey)
	return encoding.EncodeToString(sum[:])
}

// Verify checks an envelope's signature against its owner and id.
func Verify(envelope domain.SignedEnvelope) error {
	publicKey, err := encoding.DecodeString(envelope.Owner)
	if err != nil || len(publicKey) != ed25519.PublicKeySize {
		return fmt.Errorf("%w: bad owner", ErrInvalidSignature)
	}

	signature, err := encoding.DecodeString(envelope.Signature)
	if err != nil {
		return fmt.Errorf("%w: bad signature encoding", ErrInvalidSignature)
	}

	if !ed25519.Verify(publicKey, canonicalBytes(envelope), signature) {
		return ErrInvalidSignature
	}
	if envelope.ID != envelopeID(signature) {
		return fmt.Errorf("%w: id does not match signature", ErrInvalidSignature)
	}

	return nil
}

func MnemonicKey(address string) string {
	return mnemonicKeyPrefix + address + mnemonicKeySuffix
}

// canonicalBytes is the signed message: every envelope field except the
// id and signature, length-prefixed so no two envelopes share an encoding.
func canonicalBytes(envelope domain.SignedEnvelope) []byte {
	var buf bytes.Buffer
	writeField := func(value []byte) {
		_, _ = fmt.Fprintf(&buf, "%d:", len(value))
		buf.Write(value)
	}

	writeField([]byte(envelope.Owner))
	writeField([]byte(envelope.Target))
	writeField([]byte(envelope.Anchor))
	_, _ = fmt.Fprintf(&buf, "%d:", len(envelope.Tags))
	for _, tag := range envelope.Tags {
		writeField([]byte(tag.Name))
		writeField([]byte(tag.Value))
	}
	writeField(envelope.Data)

	return buf.Bytes()
}

func envelopeID(signature []byte) string {
	sum := sha256.Sum256(signature)
	return encoding.EncodeToString(sum[:])
}

func hkdfExpand(seed []byte, info string, outLen int) ([]byte, error) {
	reader := hkdf.New(sha256.New, seed, nil, []byte(info))
	out := make([]byte, outLen)
	if _, err := io.ReadFull(reader, out); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeMnemonic(mnemonic string) string {
	return strings.Join(strings.Fields(mnemonic), " ")
}
