// Package fieldcodec шифрует отдельные поля записей перед сохранением в БД
// и расшифровывает их при чтении (XChaCha20-Poly1305).
//
// Формат шифротекста: nonce (24 байта) || ciphertext || tag.
package fieldcodec

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

var (
	// ErrInvalidKey возвращается при некорректном ключе
	ErrInvalidKey = errors.New("fieldcodec: invalid key")

	// ErrDecrypt возвращается, если шифротекст поврежден или зашифрован другим ключом
	ErrDecrypt = errors.New("fieldcodec: failed to decrypt field")
)

// KeySize размер ключа в байтах
const KeySize = chacha20poly1305.KeySize

// Codec шифрует и расшифровывает поля
type Codec struct {
	aead cipher.AEAD
}

// New создает codec из 32-байтового ключа
func New(key []byte) (*Codec, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidKey, KeySize, len(key))
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return &Codec{aead: aead}, nil
}

// NewFromBase64 создает codec из ключа в base64 (std encoding)
func NewFromBase64(encoded string) (*Codec, error) {
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return New(key)
}

// Encrypt шифрует строку; пустая строка хранится как NULL (nil)
func (c *Codec) Encrypt(plain string) ([]byte, error) {
	if plain == "" {
		return nil, nil
	}

	nonce := make([]byte, c.aead.NonceSize(), c.aead.NonceSize()+len(plain)+c.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("fieldcodec: generate nonce: %w", err)
	}

	return c.aead.Seal(nonce, nonce, []byte(plain), nil), nil
}

// Decrypt расшифровывает значение; NULL (nil или пустой срез) дает пустую строку
func (c *Codec) Decrypt(sealed []byte) (string, error) {
	if len(sealed) == 0 {
		return "", nil
	}

	nonceSize := c.aead.NonceSize()
	if len(sealed) < nonceSize+c.aead.Overhead() {
		return "", ErrDecrypt
	}

	plain, err := c.aead.Open(nil, sealed[:nonceSize], sealed[nonceSize:], nil)
	if err != nil {
		return "", ErrDecrypt
	}

	return string(plain), nil
}

// DecryptNullable расшифровывает значение, возвращая nil для NULL
func (c *Codec) DecryptNullable(sealed []byte) (*string, error) {
	if len(sealed) == 0 {
		return nil, nil
	}
	plain, err := c.Decrypt(sealed)
	if err != nil {
		return nil, err
	}
	return &plain, nil
}
