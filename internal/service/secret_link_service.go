package service

import (
	"access-request-server/internal/model"
	"access-request-server/internal/ports"
	"access-request-server/internal/security"
	"access-request-server/internal/signals"
	"access-request-server/internal/util"
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log"
	"maps"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

type SecretLinkService struct {
	repository ports.SecretLinkRepository
	db         sqlx.ExtContext
	tokens     *security.TokenFactory
	bus        *signals.Bus
	urls       ports.URLBuilder
	now        func() time.Time
}

func NewSecretLinkService(
	repository ports.SecretLinkRepository,
	db sqlx.ExtContext,
	tokens *security.TokenFactory,
	bus *signals.Bus,
	urls ports.URLBuilder,
) *SecretLinkService {
	return &SecretLinkService{
		repository: repository,
		db:         db,
		tokens:     tokens,
		bus:        bus,
		urls:       urls,
		now:        time.Now,
	}
}

// SetClock : подменяет текущее время (для тестов)
func (s *SecretLinkService) SetClock(now func() time.Time) {
	s.now = now
}

// Create : вставляет строку с пустым токеном, подписывает токен полученным id и дописывает его.
// Всё в одной транзакции, после commit отправляется link-created.
// Если упал получатель сигнала, ссылка уже сохранена и возвращается вместе с ошибкой
func (s *SecretLinkService) Create(ctx context.Context, params model.NewSecretLinkParams) (*model.SecretLink, error) {
	if strings.TrimSpace(params.Title) == "" {
		return nil, fmt.Errorf("%w: не задано название ссылки", model.ErrInvalidInput)
	}
	if params.OwnerUserID == 0 {
		return nil, fmt.Errorf("%w: не задан владелец ссылки", model.ErrInvalidInput)
	}

	// exp в токене хранится с точностью до секунды, строка должна истекать в тот же момент
	var expiresAt *time.Time
	if params.ExpiresAt != nil {
		truncated := params.ExpiresAt.Truncate(time.Second)
		expiresAt = &truncated
	}

	exec, rollback, commit, err := s.repository.BeginTX(ctx)
	if err != nil {
		return nil, util.LogError("[SecretLinkService] не удалось начать транзакцию", err)
	}
	defer rollback()

	link, err := s.repository.Create(ctx, exec, &model.SecretLink{
		OwnerUserID: params.OwnerUserID,
		Title:       params.Title,
		Description: params.Description,
		CreatedAt:   s.now(),
		ExpiresAt:   expiresAt,
	})
	if err != nil {
		return nil, util.LogError("[SecretLinkService] не удалось сохранить ссылку", err)
	}

	token, err := s.tokens.CreateToken(link.ID, params.ExtraData, expiresAt)
	if err != nil {
		return nil, util.LogError("[SecretLinkService] не удалось создать токен", err)
	}

	if err := s.repository.UpdateToken(ctx, exec, link.ID, token); err != nil {
		return nil, util.LogError("[SecretLinkService] не удалось сохранить токен", err)
	}

	if err := commit(); err != nil {
		return nil, util.LogError("[SecretLinkService] не удалось закоммитить транзакцию", err)
	}
	link.Token = token

	log.Printf("[SecretLinkService] ссылка %d создана для пользователя %d", link.ID, link.OwnerUserID)

	if err := s.bus.Send(ctx, signals.Event{Name: signals.LinkCreated, Sender: link}); err != nil {
		return link, err
	}
	return link, nil
}

// ValidateToken : true, если токен расшифровывается, подпись верна, срок не истёк,
// data совпадает с expected, а ссылка с этим токеном существует и не отозвана.
// Ошибок не возвращает
func (s *SecretLinkService) ValidateToken(ctx context.Context, token string, expected map[string]any) bool {
	result := s.validate(ctx, token, expected)
	signals.TokenValidations.WithLabelValues(result).Inc()
	return result == "valid"
}

func (s *SecretLinkService) validate(ctx context.Context, token string, expected map[string]any) string {
	payload, ok := s.tokens.ValidateToken(token, expected)
	if !ok {
		return "invalid"
	}

	link, err := s.repository.GetByID(ctx, s.db, payload.ID)
	if err != nil {
		if !errors.Is(err, model.ErrLinkNotFound) {
			log.Printf("[SecretLinkService] ошибка проверки ссылки %d: %v", payload.ID, err)
		}
		return "unknown_link"
	}

	// пока токен не дописан в строку, он не совпадёт ни с одним предъявленным
	if link.Token == "" || subtle.ConstantTimeCompare([]byte(link.Token), []byte(token)) != 1 {
		return "unknown_link"
	}
	if link.IsRevoked() {
		return "revoked"
	}
	if link.IsExpired(s.now()) {
		return "expired"
	}
	return "valid"
}

// Revoke : true, если ссылка отозвана этим вызовом, false, если она уже была отозвана
func (s *SecretLinkService) Revoke(ctx context.Context, linkID int64) (bool, error) {
	return s.revoke(ctx, func(exec sqlx.ExtContext) (*model.SecretLink, error) {
		return s.repository.GetByID(ctx, exec, linkID)
	})
}

// RevokeOwned : как Revoke, но только для ссылок ownerUserID
func (s *SecretLinkService) RevokeOwned(ctx context.Context, linkID int64, ownerUserID int64) (bool, error) {
	return s.revoke(ctx, func(exec sqlx.ExtContext) (*model.SecretLink, error) {
		return s.repository.GetByOwner(ctx, exec, linkID, ownerUserID)
	})
}

func (s *SecretLinkService) revoke(ctx context.Context, load func(exec sqlx.ExtContext) (*model.SecretLink, error)) (bool, error) {
	exec, rollback, commit, err := s.repository.BeginTX(ctx)
	if err != nil {
		return false, util.LogError("[SecretLinkService] не удалось начать транзакцию", err)
	}
	defer rollback()

	link, err := load(exec)
	if err != nil {
		return false, err
	}

	now := s.now()
	revoked, err := s.repository.Revoke(ctx, exec, link.ID, now)
	if err != nil {
		return false, util.LogError("[SecretLinkService] не удалось отозвать ссылку", err)
	}
	if !revoked {
		return false, nil
	}

	if err := commit(); err != nil {
		return false, util.LogError("[SecretLinkService] не удалось закоммитить транзакцию", err)
	}
	link.RevokedAt = &now

	log.Printf("[SecretLinkService] ссылка %d отозвана", link.ID)

	if err := s.bus.Send(ctx, signals.Event{Name: signals.LinkRevoked, Sender: link}); err != nil {
		return true, err
	}
	return true, nil
}

// ExtraData : параметры ресурса из сохранённого токена. Токен читается без проверки срока,
// у истёкшей ссылки extra_data остаётся доступной
func (s *SecretLinkService) ExtraData(link *model.SecretLink) (map[string]any, error) {
	payload, err := s.tokens.LoadToken(link.Token, true)
	if err != nil {
		return nil, fmt.Errorf("[SecretLinkService] не удалось прочитать токен ссылки %d: %w", link.ID, err)
	}
	return payload.Data, nil
}

// AbsoluteURL : ссылка на эндпоинт ресурса с token и extra_data в параметрах
func (s *SecretLinkService) AbsoluteURL(link *model.SecretLink, endpoint string) (string, error) {
	data, err := s.ExtraData(link)
	if err != nil {
		return "", err
	}

	params := maps.Clone(data)
	if params == nil {
		params = map[string]any{}
	}
	params["token"] = link.Token

	return s.urls.Build(endpoint, params)
}

func (s *SecretLinkService) Get(ctx context.Context, linkID int64) (*model.SecretLink, error) {
	return s.repository.GetByID(ctx, s.db, linkID)
}

// QueryByOwner : ссылки, выданные пользователем
func (s *SecretLinkService) QueryByOwner(ctx context.Context, ownerUserID int64) ([]model.SecretLink, error) {
	links, err := s.repository.ListByOwner(ctx, s.db, ownerUserID)
	if err != nil {
		return nil, util.LogError("[SecretLinkService] не удалось получить ссылки пользователя", err)
	}
	return links, nil
}

func (s *SecretLinkService) GetByOwner(ctx context.Context, linkID int64, ownerUserID int64) (*model.SecretLink, error) {
	return s.repository.GetByOwner(ctx, s.db, linkID, ownerUserID)
}
