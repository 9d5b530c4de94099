// Package cryptox seals small records at rest. The credential store uses it
// so the bearer token never touches disk in the clear.
package cryptox

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/tablebook/tablebook/internal/common"
)

// KeySize is the device key length in bytes.
const KeySize = chacha20poly1305.KeySize

// ErrInvalidKey is returned when the key material has the wrong length.
var ErrInvalidKey = errors.New("invalid key size")

// SealRecord serializes v to JSON and encrypts it with ChaCha20-Poly1305.
// A fresh random nonce is generated per call and returned alongside the
// ciphertext.
func SealRecord(v any, key []byte) (ciphertext, nonce []byte, err error) {
	if len(key) != KeySize {
		return nil, nil, ErrInvalidKey
	}

	plaintext, err := json.Marshal(v)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal record: %w", err)
	}

	// XChaCha20 so the random 24-byte nonce is collision-safe.
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, nil, err
	}

	nonce = common.GenerateRandByteArray(aead.NonceSize())
	ciphertext = aead.Seal(nil, nonce, plaintext, nil)
	return ciphertext, nonce, nil
}

// OpenRecord decrypts ciphertext produced by SealRecord and unmarshals the
// JSON payload into v.
func OpenRecord(ciphertext, nonce, key []byte, v any) error {
	if len(key) != KeySize {
		return ErrInvalidKey
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return err
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return fmt.Errorf("open record: %w", err)
	}

	if err := json.Unmarshal(plaintext, v); err != nil {
		return fmt.Errorf("unmarshal record: %w", err)
	}
	return nil
}

// LoadOrCreateKey returns the device key stored at path, generating and
// persisting a new one (0600) on first use.
func LoadOrCreateKey(path string) ([]byte, error) {
	key, err := os.ReadFile(path)
	if err == nil {
		if len(key) != KeySize {
			return nil, fmt.Errorf("%s: %w", path, ErrInvalidKey)
		}
		return key, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read device key: %w", err)
	}

	key = common.GenerateRandByteArray(KeySize)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create key dir: %w", err)
	}
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, fmt.Errorf("write device key: %w", err)
	}
	return key, nil
}
