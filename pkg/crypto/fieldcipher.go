package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	keyLength        = 32 // AES-256
	pbkdf2Iterations = 100_000
)

// FieldCipher encrypts and decrypts individual PII fields (client name, email,
// phone) stored encrypted at rest. Ciphertexts are base64(nonce || sealed).
type FieldCipher struct {
	gcm cipher.AEAD
}

// NewFieldCipher derives an AES-256 key from the given secret and salt using
// PBKDF2-SHA256 and returns a cipher ready for field encryption.
func NewFieldCipher(secret, salt string) (*FieldCipher, error) {
	if secret == "" {
		return nil, errors.New("field encryption secret must not be empty")
	}

	key := pbkdf2.Key([]byte(secret), []byte(salt), pbkdf2Iterations, keyLength, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize GCM: %w", err)
	}

	return &FieldCipher{gcm: gcm}, nil
}

// Encrypt seals a plaintext field value. Empty strings pass through unchanged
// so that optional fields (e.g. a missing phone number) stay empty at rest.
func (fc *FieldCipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	nonce := make([]byte, fc.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := fc.gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a ciphertext produced by Encrypt. Empty strings pass through.
func (fc *FieldCipher) Decrypt(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("invalid ciphertext encoding: %w", err)
	}

	nonceSize := fc.gcm.NonceSize()
	if len(raw) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	nonce, sealed := raw[:nonceSize], raw[nonceSize:]
	plaintext, err := fc.gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt field: %w", err)
	}

	return string(plaintext), nil
}
