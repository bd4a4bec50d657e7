package security

import (
	"access-request-server/internal/util"
	"crypto/sha512"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// PurposeSecretLink : токены секретных ссылок
	PurposeSecretLink = "secret-link"
	// PurposeEmailConfirmation : токены из письма подтверждения email
	PurposeEmailConfirmation = "email-confirmation"

	rndLength = 8
)

var (
	// ErrInvalidToken : подпись не сошлась, токен повреждён, не расшифровывается или другого типа
	ErrInvalidToken = errors.New("невалидный токен")
	// ErrSignatureExpired : истёк срок действия подписи
	ErrSignatureExpired = errors.New("срок действия токена истёк")
)

// ExpiredTokenError : токен подписан верно, но просрочен. Payload доступен для вызывающего
type ExpiredTokenError struct {
	Payload *TokenPayload
}

func (e *ExpiredTokenError) Error() string {
	return ErrSignatureExpired.Error()
}

func (e *ExpiredTokenError) Is(target error) bool {
	return target == ErrSignatureExpired
}

// TokenPayload : содержимое токена без rnd.
// Числа в Data после декодирования имеют тип float64
type TokenPayload struct {
	ID   int64          `json:"id"`
	Data map[string]any `json:"data"`
}

// Serializer : общий интерфейс сериализаторов токенов
type Serializer interface {
	CreateToken(id int64, data map[string]any) (string, error)
	ValidateToken(token string, expected map[string]any) (*TokenPayload, bool)
	LoadToken(token string, force bool) (*TokenPayload, error)
}

type SerializerOption func(*signer)

// WithClock : подменяет источник текущего времени (для тестов)
func WithClock(now func() time.Time) SerializerOption {
	return func(s *signer) {
		s.now = now
	}
}

type tokenClaims struct {
	LinkID int64          `json:"id"`
	Data   map[string]any `json:"data"`
	Rnd    string         `json:"rnd"`
	jwt.RegisteredClaims
}

func (c *tokenClaims) payload() *TokenPayload {
	data := c.Data
	if data == nil {
		data = map[string]any{}
	}
	return &TokenPayload{ID: c.LinkID, Data: data}
}

// signer : JWS (HS512) подпись полезной нагрузки {id, data, rnd}.
// Ключ подписи выводится из секрета и назначения токена один раз
type signer struct {
	key     []byte
	purpose string
	now     func() time.Time
}

func newSigner(secrets Secrets, purpose string, opts ...SerializerOption) (*signer, error) {
	secret := secrets.SecretKey()
	if len(secret) == 0 {
		return nil, errors.New("пустой секрет для подписи токенов")
	}

	sum := sha512.Sum512([]byte(purpose + "signer" + string(secret)))
	s := &signer{key: sum[:], purpose: purpose, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *signer) sign(id int64, data map[string]any, expiresAt *time.Time) (string, error) {
	rnd, err := util.RandomHex(rndLength)
	if err != nil {
		return "", err
	}
	if data == nil {
		data = map[string]any{}
	}

	claims := tokenClaims{
		LinkID: id,
		Data:   data,
		Rnd:    rnd,
		RegisteredClaims: jwt.RegisteredClaims{
			Audience: jwt.ClaimStrings{s.purpose},
		},
	}
	if expiresAt != nil {
		claims.ExpiresAt = jwt.NewNumericDate(*expiresAt)
		claims.IssuedAt = jwt.NewNumericDate(s.now())
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}
	return token, nil
}

// parse : проверяет подпись и тип токена. Для timed-токена с истёкшим exp
// возвращает *ExpiredTokenError, если force == false
func (s *signer) parse(token string, timed bool, force bool) (*TokenPayload, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if force {
		options = append(options, jwt.WithoutClaimsValidation())
	} else if timed {
		options = append(options, jwt.WithExpirationRequired())
	}

	claims := &tokenClaims{}
	_, err := jwt.NewParser(options...).ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.key, nil
	})

	expired := err != nil && errors.Is(err, jwt.ErrTokenExpired)
	if err != nil && !expired {
		return nil, ErrInvalidToken
	}
	if !slices.Contains(claims.Audience, s.purpose) || timed != (claims.ExpiresAt != nil) {
		return nil, ErrInvalidToken
	}
	if expired {
		return nil, &ExpiredTokenError{Payload: claims.payload()}
	}

	return claims.payload(), nil
}

// validate : load без force + проверка expected_data
func validate(load func(string, bool) (*TokenPayload, error), token string, expected map[string]any) (*TokenPayload, bool) {
	payload, err := load(token, false)
	if err != nil {
		return nil, false
	}
	if !MatchesExpected(payload.Data, expected) {
		return nil, false
	}
	return payload, true
}

// MatchesExpected : каждый ключ expected присутствует в data с равным значением.
// expected нормализуется через JSON, чтобы 1 и float64(1) считались равными
func MatchesExpected(data map[string]any, expected map[string]any) bool {
	if len(expected) == 0 {
		return true
	}

	normalized, err := normalizeJSON(expected)
	if err != nil {
		return false
	}

	for key, want := range normalized {
		got, ok := data[key]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

func normalizeJSON(value map[string]any) (map[string]any, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	var normalized map[string]any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return nil, err
	}
	return normalized, nil
}

// PlainSerializer : подписанный токен без срока действия
type PlainSerializer struct {
	signer *signer
}

func NewPlainSerializer(secrets Secrets, purpose string, opts ...SerializerOption) (*PlainSerializer, error) {
	s, err := newSigner(secrets, purpose, opts...)
	if err != nil {
		return nil, err
	}
	return &PlainSerializer{signer: s}, nil
}

func (s *PlainSerializer) CreateToken(id int64, data map[string]any) (string, error) {
	return s.signer.sign(id, data, nil)
}

func (s *PlainSerializer) ValidateToken(token string, expected map[string]any) (*TokenPayload, bool) {
	return validate(s.LoadToken, token, expected)
}

// LoadToken : force не влияет, т.к. у plain-токена нет срока действия
func (s *PlainSerializer) LoadToken(token string, force bool) (*TokenPayload, error) {
	return s.signer.parse(token, false, force)
}

// TimedSerializer : подписанный токен с абсолютным моментом истечения в конверте
type TimedSerializer struct {
	signer    *signer
	expiresAt time.Time
}

func NewTimedSerializer(secrets Secrets, purpose string, expiresAt time.Time, opts ...SerializerOption) (*TimedSerializer, error) {
	s, err := newSigner(secrets, purpose, opts...)
	if err != nil {
		return nil, err
	}
	return &TimedSerializer{signer: s, expiresAt: expiresAt}, nil
}

// WithExpiry : копия сериализатора с другим моментом истечения и теми же ключами
func (s *TimedSerializer) WithExpiry(expiresAt time.Time) *TimedSerializer {
	return &TimedSerializer{signer: s.signer, expiresAt: expiresAt}
}

func (s *TimedSerializer) CreateToken(id int64, data map[string]any) (string, error) {
	expiresAt := s.expiresAt
	return s.signer.sign(id, data, &expiresAt)
}

func (s *TimedSerializer) ValidateToken(token string, expected map[string]any) (*TokenPayload, bool) {
	return validate(s.LoadToken, token, expected)
}

func (s *TimedSerializer) LoadToken(token string, force bool) (*TokenPayload, error) {
	return s.signer.parse(token, true, force)
}

// EncryptedSerializer : шифрует результат вложенного сериализатора.
// Используется для всех токенов, которые попадают в БД
type EncryptedSerializer struct {
	inner Serializer
	box   *cipherBox
}

func NewEncryptedSerializer(inner Serializer, secrets Secrets) (*EncryptedSerializer, error) {
	box, err := newCipherBox(secrets)
	if err != nil {
		return nil, err
	}
	return &EncryptedSerializer{inner: inner, box: box}, nil
}

func (s *EncryptedSerializer) CreateToken(id int64, data map[string]any) (string, error) {
	signed, err := s.inner.CreateToken(id, data)
	if err != nil {
		return "", err
	}
	return s.box.seal([]byte(signed))
}

func (s *EncryptedSerializer) ValidateToken(token string, expected map[string]any) (*TokenPayload, bool) {
	return validate(s.LoadToken, token, expected)
}

func (s *EncryptedSerializer) LoadToken(token string, force bool) (*TokenPayload, error) {
	signed, err := s.box.open(token)
	if err != nil {
		return nil, err
	}
	return s.inner.LoadToken(string(signed), force)
}

// EmailConfirmationSerializer : зашифрованный timed-токен для письма подтверждения email,
// срок действия = now + ttl на момент создания
type EmailConfirmationSerializer struct {
	timed *TimedSerializer
	box   *cipherBox
	ttl   time.Duration
}

func NewEmailConfirmationSerializer(secrets Secrets, ttl time.Duration, opts ...SerializerOption) (*EmailConfirmationSerializer, error) {
	timed, err := NewTimedSerializer(secrets, PurposeEmailConfirmation, time.Time{}, opts...)
	if err != nil {
		return nil, err
	}
	box, err := newCipherBox(secrets)
	if err != nil {
		return nil, err
	}
	return &EmailConfirmationSerializer{timed: timed, box: box, ttl: ttl}, nil
}

func (s *EmailConfirmationSerializer) TTL() time.Duration {
	return s.ttl
}

func (s *EmailConfirmationSerializer) CreateToken(id int64, data map[string]any) (string, error) {
	timed := s.timed.WithExpiry(s.timed.signer.now().Add(s.ttl))
	return (&EncryptedSerializer{inner: timed, box: s.box}).CreateToken(id, data)
}

func (s *EmailConfirmationSerializer) ValidateToken(token string, expected map[string]any) (*TokenPayload, bool) {
	return validate(s.LoadToken, token, expected)
}

func (s *EmailConfirmationSerializer) LoadToken(token string, force bool) (*TokenPayload, error) {
	return (&EncryptedSerializer{inner: s.timed, box: s.box}).LoadToken(token, force)
}
