package security

import (
	"time"
)

// TokenFactory : единая точка создания и проверки токенов секретных ссылок.
// Вызывающему не нужно знать, ограничен ли токен по времени
type TokenFactory struct {
	plain *EncryptedSerializer
	timed *TimedSerializer
	box   *cipherBox
}

func NewTokenFactory(secrets Secrets, opts ...SerializerOption) (*TokenFactory, error) {
	plain, err := NewPlainSerializer(secrets, PurposeSecretLink, opts...)
	if err != nil {
		return nil, err
	}
	timed, err := NewTimedSerializer(secrets, PurposeSecretLink, time.Time{}, opts...)
	if err != nil {
		return nil, err
	}
	box, err := newCipherBox(secrets)
	if err != nil {
		return nil, err
	}

	return &TokenFactory{
		plain: &EncryptedSerializer{inner: plain, box: box},
		timed: timed,
		box:   box,
	}, nil
}

// CreateToken : timed-токен, если задан expiresAt, иначе plain
func (f *TokenFactory) CreateToken(id int64, data map[string]any, expiresAt *time.Time) (string, error) {
	if expiresAt != nil {
		return f.timedAt(*expiresAt).CreateToken(id, data)
	}
	return f.plain.CreateToken(id, data)
}

// ValidateToken : сначала timed, потом plain
func (f *TokenFactory) ValidateToken(token string, expected map[string]any) (*TokenPayload, bool) {
	if payload, ok := f.timedAt(time.Time{}).ValidateToken(token, expected); ok {
		return payload, true
	}
	return f.plain.ValidateToken(token, expected)
}

// LoadToken : сначала plain, при любой ошибке timed.
// Так просроченный timed-токен возвращает ExpiredTokenError, а не ErrInvalidToken
func (f *TokenFactory) LoadToken(token string, force bool) (*TokenPayload, error) {
	if payload, err := f.plain.LoadToken(token, force); err == nil {
		return payload, nil
	}
	return f.timedAt(time.Time{}).LoadToken(token, force)
}

func (f *TokenFactory) timedAt(expiresAt time.Time) *EncryptedSerializer {
	return &EncryptedSerializer{inner: f.timed.WithExpiry(expiresAt), box: f.box}
}
