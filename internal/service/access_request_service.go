package service

import (
	"access-request-server/internal/model"
	"access-request-server/internal/ports"
	"access-request-server/internal/security"
	"access-request-server/internal/signals"
	"access-request-server/internal/util"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
)

type AccessRequestService struct {
	repository  ports.AccessRequestRepository
	db          sqlx.ExtContext
	links       *SecretLinkService
	records     ports.RecordResolver
	emailTokens *security.EmailConfirmationSerializer
	bus         *signals.Bus
	now         func() time.Time
}

func NewAccessRequestService(
	repository ports.AccessRequestRepository,
	db sqlx.ExtContext,
	links *SecretLinkService,
	records ports.RecordResolver,
	emailTokens *security.EmailConfirmationSerializer,
	bus *signals.Bus,
) *AccessRequestService {
	return &AccessRequestService{
		repository:  repository,
		db:          db,
		links:       links,
		records:     records,
		emailTokens: emailTokens,
		bus:         bus,
		now:         time.Now,
	}
}

// SetClock : подменяет текущее время (для тестов)
func (s *AccessRequestService) SetClock(now func() time.Time) {
	s.now = now
}

// Create : сохраняет заявку и после commit отправляет request-created или request-confirmed.
// Запись должна существовать и быть закрытой. Получатель по умолчанию = владелец записи.
// При ошибке получателя сигнала заявка уже сохранена и возвращается вместе с ошибкой
func (s *AccessRequestService) Create(ctx context.Context, params model.NewAccessRequestParams) (*model.AccessRequest, error) {
	record, err := s.records.GetRecord(ctx, params.ResourceID)
	if err != nil {
		return nil, util.LogError("[AccessRequestService] не удалось получить запись", err)
	}
	if record == nil {
		return nil, &model.RecordNotFoundError{ResourceID: params.ResourceID}
	}
	if record.IsOpen() {
		return nil, fmt.Errorf("%w: запись %d открыта, заявка не нужна", model.ErrInvalidInput, record.ID)
	}
	if params.ReceiverUserID == 0 {
		params.ReceiverUserID = record.OwnerUserID
	}

	request, events, err := model.NewAccessRequest(params, s.now())
	if err != nil {
		return nil, err
	}

	exec, rollback, commit, err := s.repository.BeginTX(ctx)
	if err != nil {
		return nil, util.LogError("[AccessRequestService] не удалось начать транзакцию", err)
	}
	defer rollback()

	created, err := s.repository.Create(ctx, exec, &request)
	if err != nil {
		return nil, util.LogError("[AccessRequestService] не удалось сохранить заявку", err)
	}

	if err := commit(); err != nil {
		return nil, util.LogError("[AccessRequestService] не удалось закоммитить транзакцию", err)
	}

	log.Printf("[AccessRequestService] заявка %d на запись %d создана в статусе %s", created.ID, created.ResourceID, created.Status)

	return created, s.publish(ctx, created, events)
}

// ConfirmEmail : email_validation -> pending. Повторный вызов возвращает InvalidRequestStateError
func (s *AccessRequestService) ConfirmEmail(ctx context.Context, requestID int64) (*model.AccessRequest, error) {
	return s.transition(ctx, requestID, 0, func(request model.AccessRequest) (model.AccessRequest, []signals.Event, error) {
		return request.ConfirmEmail(s.now())
	})
}

// ConfirmEmailByToken : проверяет токен из письма ({id заявки, email}) и подтверждает email
func (s *AccessRequestService) ConfirmEmailByToken(ctx context.Context, token string) (*model.AccessRequest, error) {
	payload, err := s.emailTokens.LoadToken(token, false)
	if err != nil {
		return nil, err
	}

	request, err := s.repository.GetByID(ctx, s.db, payload.ID)
	if err != nil {
		if errors.Is(err, model.ErrRequestNotFound) {
			return nil, security.ErrInvalidToken
		}
		return nil, err
	}
	if !security.MatchesExpected(payload.Data, map[string]any{"email": request.SenderEmail}) {
		return nil, security.ErrInvalidToken
	}

	return s.ConfirmEmail(ctx, request.ID)
}

// Accept : pending -> accepted, затем request-accepted. Ссылку создаёт получатель create_secret_link.
// Если получатель упал, статус accepted уже сохранён, ошибка возвращается вместе с заявкой
func (s *AccessRequestService) Accept(ctx context.Context, requestID int64, receiverUserID int64, message string, expiresAt *time.Time) (*model.AccessRequest, error) {
	return s.transition(ctx, requestID, receiverUserID, func(request model.AccessRequest) (model.AccessRequest, []signals.Event, error) {
		return request.Accept(message, expiresAt, s.now())
	})
}

// Reject : pending -> rejected, затем request-rejected
func (s *AccessRequestService) Reject(ctx context.Context, requestID int64, receiverUserID int64, message string) (*model.AccessRequest, error) {
	return s.transition(ctx, requestID, receiverUserID, func(request model.AccessRequest) (model.AccessRequest, []signals.Event, error) {
		return request.Reject(message, s.now())
	})
}

type transitionFunc func(request model.AccessRequest) (model.AccessRequest, []signals.Event, error)

// transition : блокирует строку, применяет переход, сохраняет, коммитит и только потом отправляет события.
// receiverUserID == 0 отключает проверку получателя
func (s *AccessRequestService) transition(ctx context.Context, requestID int64, receiverUserID int64, apply transitionFunc) (*model.AccessRequest, error) {
	exec, rollback, commit, err := s.repository.BeginTX(ctx)
	if err != nil {
		return nil, util.LogError("[AccessRequestService] не удалось начать транзакцию", err)
	}
	defer rollback()

	current, err := s.repository.GetForUpdate(ctx, exec, requestID)
	if err != nil {
		return nil, err
	}
	if receiverUserID != 0 && current.ReceiverUserID != receiverUserID {
		return nil, model.ErrRequestNotFound
	}

	next, events, err := apply(*current)
	if err != nil {
		return nil, err
	}

	if err := s.repository.Update(ctx, exec, &next); err != nil {
		return nil, util.LogError("[AccessRequestService] не удалось обновить заявку", err)
	}
	if err := commit(); err != nil {
		return nil, util.LogError("[AccessRequestService] не удалось закоммитить транзакцию", err)
	}

	log.Printf("[AccessRequestService] заявка %d: %s -> %s", next.ID, current.Status, next.Status)

	return &next, s.publish(ctx, &next, events)
}

// CreateSecretLink : создаёт ссылку на запись заявки и сохраняет link_id в заявке
func (s *AccessRequestService) CreateSecretLink(ctx context.Context, request *model.AccessRequest, title, description string, expiresAt *time.Time) (*model.SecretLink, error) {
	link, linkErr := s.links.Create(ctx, model.NewSecretLinkParams{
		Title:       title,
		OwnerUserID: request.ReceiverUserID,
		ExtraData:   request.ResourceData(),
		Description: description,
		ExpiresAt:   expiresAt,
	})
	if link == nil {
		return nil, linkErr
	}

	exec, rollback, commit, err := s.repository.BeginTX(ctx)
	if err != nil {
		return nil, util.LogError("[AccessRequestService] не удалось начать транзакцию", err)
	}
	defer rollback()

	current, err := s.repository.GetForUpdate(ctx, exec, request.ID)
	if err != nil {
		return nil, err
	}

	updated := current.AttachLink(link.ID, s.now())
	if err := s.repository.Update(ctx, exec, &updated); err != nil {
		return nil, util.LogError("[AccessRequestService] не удалось привязать ссылку к заявке", err)
	}
	if err := commit(); err != nil {
		return nil, util.LogError("[AccessRequestService] не удалось закоммитить транзакцию", err)
	}

	*request = updated
	return link, linkErr
}

// QueryByReceiver : заявки, адресованные пользователю
func (s *AccessRequestService) QueryByReceiver(ctx context.Context, receiverUserID int64) ([]model.AccessRequest, error) {
	requests, err := s.repository.ListByReceiver(ctx, s.db, receiverUserID)
	if err != nil {
		return nil, util.LogError("[AccessRequestService] не удалось получить заявки пользователя", err)
	}
	return requests, nil
}

// GetByReceiver : заявка, если она адресована пользователю, иначе ErrRequestNotFound
func (s *AccessRequestService) GetByReceiver(ctx context.Context, requestID int64, receiverUserID int64) (*model.AccessRequest, error) {
	return s.repository.GetByReceiver(ctx, s.db, requestID, receiverUserID)
}

func (s *AccessRequestService) publish(ctx context.Context, request *model.AccessRequest, events []signals.Event) error {
	for i := range events {
		events[i].Sender = request
	}
	return s.bus.SendAll(ctx, events)
}
