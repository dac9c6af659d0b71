// Package secure seals short secrets (stored card references) with
// AES-256-GCM before they are bound into procedure parameters.
package secure

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

const nonceSize = 12

// Payload is the sealed form: ciphertext, nonce and auth tag, each hex
// encoded so it can travel through JSON and procedure parameters intact.
type Payload struct {
	Content string `json:"content"`
	IV      string `json:"iv"`
	Tag     string `json:"tag"`
}

var ErrDecrypt = errors.New("secure: decryption failed")

// Encrypt seals plaintext under a key derived from secret by sha256.
func Encrypt(secret, plaintext string) (Payload, error) {
	gcm, err := newGCM(secret)
	if err != nil {
		return Payload{}, err
	}
	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return Payload{}, fmt.Errorf("secure: nonce: %w", err)
	}
	sealed := gcm.Seal(nil, nonce, []byte(plaintext), nil)
	tagAt := len(sealed) - gcm.Overhead()
	return Payload{
		Content: hex.EncodeToString(sealed[:tagAt]),
		IV:      hex.EncodeToString(nonce),
		Tag:     hex.EncodeToString(sealed[tagAt:]),
	}, nil
}

// Decrypt opens a Payload produced by Encrypt with the same secret.
func Decrypt(secret string, p Payload) (string, error) {
	gcm, err := newGCM(secret)
	if err != nil {
		return "", err
	}
	content, err := hex.DecodeString(p.Content)
	if err != nil {
		return "", ErrDecrypt
	}
	nonce, err := hex.DecodeString(p.IV)
	if err != nil || len(nonce) != nonceSize {
		return "", ErrDecrypt
	}
	tag, err := hex.DecodeString(p.Tag)
	if err != nil || len(tag) != gcm.Overhead() {
		return "", ErrDecrypt
	}
	plain, err := gcm.Open(nil, nonce, append(content, tag...), nil)
	if err != nil {
		return "", ErrDecrypt
	}
	return string(plain), nil
}

func newGCM(secret string) (cipher.AEAD, error) {
	key := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("secure: cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("secure: gcm: %w", err)
	}
	return gcm, nil
}
