// Package crypto encrypts secret values for embedding in reef.yaml.
// Values are age-encrypted with a scrypt passphrase (the master key) and
// carried as a base64 string behind a recognizable marker prefix.
package crypto

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"filippo.io/age"
)

// Prefix marks encrypted values in config files.
const Prefix = "REEF[age]:"

// IsEncrypted reports whether the value carries the encryption marker.
func IsEncrypted(value string) bool {
	return strings.HasPrefix(value, Prefix)
}

// Encrypt seals plaintext with the master key and returns the marked,
// base64-encoded value.
func Encrypt(plaintext, key string) (string, error) {
	recipient, err := age.NewScryptRecipient(key)
	if err != nil {
		return "", fmt.Errorf("building recipient: %w", err)
	}

	var buf bytes.Buffer
	w, err := age.Encrypt(&buf, recipient)
	if err != nil {
		return "", fmt.Errorf("starting encryption: %w", err)
	}
	if _, err := io.WriteString(w, plaintext); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	return Prefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Decrypt opens a marked value with the master key. Unmarked values pass
// through untouched.
func Decrypt(value, key string) (string, error) {
	if !IsEncrypted(value) {
		return value, nil
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(value, Prefix))
	if err != nil {
		return "", fmt.Errorf("malformed encrypted value: %w", err)
	}

	identity, err := age.NewScryptIdentity(key)
	if err != nil {
		return "", fmt.Errorf("building identity: %w", err)
	}

	r, err := age.Decrypt(bytes.NewReader(raw), identity)
	if err != nil {
		return "", fmt.Errorf("decryption failed (wrong master key?): %w", err)
	}

	plaintext, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
