package security

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

const envelopeVersion byte = 0x01

// cipherBox : AEAD-обёртка для токенов, которые хранятся в БД.
// Ключ = SHA-256 от секрета процесса, вычисляется один раз при создании
type cipherBox struct {
	aead cipher.AEAD
}

func newCipherBox(secrets Secrets) (*cipherBox, error) {
	secret := secrets.SecretKey()
	if len(secret) == 0 {
		return nil, errors.New("пустой секрет для шифрования токенов")
	}

	key := sha256.Sum256(secret)
	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return nil, fmt.Errorf("не удалось создать шифр: %w", err)
	}
	return &cipherBox{aead: aead}, nil
}

// seal : version || nonce || ciphertext, в base64url без паддинга
func (b *cipherBox) seal(plaintext []byte) (string, error) {
	nonceSize := b.aead.NonceSize()
	envelope := make([]byte, 1+nonceSize, 1+nonceSize+len(plaintext)+b.aead.Overhead())
	envelope[0] = envelopeVersion

	nonce := envelope[1 : 1+nonceSize]
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("не удалось сгенерировать nonce: %w", err)
	}

	envelope = b.aead.Seal(envelope, nonce, plaintext, envelope[:1])
	return base64.RawURLEncoding.EncodeToString(envelope), nil
}

func (b *cipherBox) open(token string) ([]byte, error) {
	envelope, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	nonceSize := b.aead.NonceSize()
	if len(envelope) < 1+nonceSize+b.aead.Overhead() || envelope[0] != envelopeVersion {
		return nil, ErrInvalidToken
	}

	nonce := envelope[1 : 1+nonceSize]
	plaintext, err := b.aead.Open(nil, nonce, envelope[1+nonceSize:], envelope[:1])
	if err != nil {
		return nil, ErrInvalidToken
	}
	return plaintext, nil
}
