package service

import (
	"access-request-server/internal/model"
	"access-request-server/internal/notifier"
	"access-request-server/internal/ports"
	"access-request-server/internal/security"
	"access-request-server/internal/signals"
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

const (
	ConfirmEmailEndpoint  = "/access-requests/confirm/{token}"
	AccessRequestEndpoint = "/api/access-requests/{id}"
)

// SecretLinkIssuer : создание ссылки по принятой заявке
type SecretLinkIssuer interface {
	CreateSecretLink(ctx context.Context, request *model.AccessRequest, title, description string, expiresAt *time.Time) (*model.SecretLink, error)
}

// SecretLinkReader : чтение ссылки и её абсолютного URL
type SecretLinkReader interface {
	Get(ctx context.Context, linkID int64) (*model.SecretLink, error)
	AbsoluteURL(link *model.SecretLink, endpoint string) (string, error)
}

// Receivers : получатели сигналов по умолчанию (письма и создание ссылки)
type Receivers struct {
	mailer       ports.Mailer
	templates    ports.TemplateRenderer
	urls         ports.URLBuilder
	records      ports.RecordResolver
	users        ports.UserDirectory
	emailTokens  *security.EmailConfirmationSerializer
	issuer       SecretLinkIssuer
	links        SecretLinkReader
	linkEndpoint string
}

type ReceiversDeps struct {
	Mailer       ports.Mailer
	Templates    ports.TemplateRenderer
	URLs         ports.URLBuilder
	Records      ports.RecordResolver
	Users        ports.UserDirectory
	EmailTokens  *security.EmailConfirmationSerializer
	Issuer       SecretLinkIssuer
	Links        SecretLinkReader
	LinkEndpoint string
}

func NewReceivers(deps ReceiversDeps) *Receivers {
	return &Receivers{
		mailer:       deps.Mailer,
		templates:    deps.Templates,
		urls:         deps.URLs,
		records:      deps.Records,
		users:        deps.Users,
		emailTokens:  deps.EmailTokens,
		issuer:       deps.Issuer,
		links:        deps.Links,
		linkEndpoint: deps.LinkEndpoint,
	}
}

// Register : порядок важен, create_secret_link должен выполниться до send_accept_notification
func (r *Receivers) Register(bus *signals.Bus) {
	bus.Connect(signals.RequestCreated, "send_email_validation", r.SendEmailValidation)
	bus.Connect(signals.RequestConfirmed, "send_confirmed_notifications", r.SendConfirmedNotifications)
	bus.Connect(signals.RequestAccepted, "create_secret_link", r.CreateSecretLink)
	bus.Connect(signals.RequestAccepted, "send_accept_notification", r.SendAcceptNotification)
	bus.Connect(signals.RequestRejected, "send_reject_notification", r.SendRejectNotification)
}

func requestFromEvent(event signals.Event) (*model.AccessRequest, error) {
	request, ok := event.Sender.(*model.AccessRequest)
	if !ok || request == nil {
		return nil, fmt.Errorf("[Receivers] сигнал %s без заявки", event.Name)
	}
	return request, nil
}

// SendEmailValidation : письмо со ссылкой подтверждения email
func (r *Receivers) SendEmailValidation(ctx context.Context, event signals.Event) error {
	request, err := requestFromEvent(event)
	if err != nil {
		return err
	}

	token, err := r.emailTokens.CreateToken(request.ID, map[string]any{"email": request.SenderEmail})
	if err != nil {
		return err
	}
	confirmURL, err := r.urls.Build(ConfirmEmailEndpoint, map[string]any{"token": token})
	if err != nil {
		return err
	}

	record, err := r.records.GetRecord(ctx, request.ResourceID)
	if err != nil {
		return err
	}

	return r.send(ctx, request.SenderEmail, "Access request verification", notifier.TemplateEmailValidation, map[string]any{
		"FullName":    request.SenderFullName,
		"RecordTitle": recordTitle(record),
		"ConfirmURL":  confirmURL,
		"ValidDays":   int(r.emailTokens.TTL().Hours() / 24),
	})
}

// SendConfirmedNotifications : письмо владельцу о новой заявке и письмо автору заявки.
// Если запись не найдена, письма не отправляются и ошибка не возвращается
func (r *Receivers) SendConfirmedNotifications(ctx context.Context, event signals.Event) error {
	request, err := requestFromEvent(event)
	if err != nil {
		return err
	}

	record, err := r.records.GetRecord(ctx, request.ResourceID)
	if err != nil {
		log.Printf("[Receivers] не удалось получить запись %d для заявки %d: %v", request.ResourceID, request.ID, err)
		return nil
	}
	if record == nil {
		log.Printf("[Receivers] запись %d для заявки %d не найдена, уведомления не отправлены", request.ResourceID, request.ID)
		return nil
	}

	receiver, err := r.users.FindByID(ctx, request.ReceiverUserID)
	if err != nil {
		return err
	}

	requestURL, err := r.urls.Build(AccessRequestEndpoint, map[string]any{"id": request.ID})
	if err != nil {
		return err
	}

	err = r.send(ctx, receiver.Email, fmt.Sprintf("Access request: %s", record.Title), notifier.TemplateNewRequest, map[string]any{
		"FullName":      request.SenderFullName,
		"Email":         request.SenderEmail,
		"RecordTitle":   record.Title,
		"Justification": request.Justification,
		"RequestURL":    requestURL,
	})
	if err != nil {
		return err
	}

	return r.send(ctx, request.SenderEmail, fmt.Sprintf("Access request submitted: %s", record.Title), notifier.TemplateRequestReceived, map[string]any{
		"FullName":    request.SenderFullName,
		"RecordTitle": record.Title,
	})
}

// CreateSecretLink : создаёт ссылку для принятой заявки. Если записи нет, возвращает
// RecordNotFoundError и следующие получатели не вызываются
func (r *Receivers) CreateSecretLink(ctx context.Context, event signals.Event) error {
	request, err := requestFromEvent(event)
	if err != nil {
		return err
	}

	record, err := r.records.GetRecord(ctx, request.ResourceID)
	if err != nil {
		return err
	}
	if record == nil {
		return &model.RecordNotFoundError{ResourceID: request.ResourceID}
	}

	description, err := r.templates.Render(notifier.TemplateLinkDescription, map[string]any{
		"FullName":      request.SenderFullName,
		"Email":         request.SenderEmail,
		"Justification": request.Justification,
	})
	if err != nil {
		return err
	}

	_, err = r.issuer.CreateSecretLink(ctx, request, record.Title, description, event.ExpiresAt)
	return err
}

// SendAcceptNotification : письмо автору заявки с абсолютной ссылкой
func (r *Receivers) SendAcceptNotification(ctx context.Context, event signals.Event) error {
	request, err := requestFromEvent(event)
	if err != nil {
		return err
	}
	if request.LinkID == nil {
		return errors.New("[Receivers] у принятой заявки нет ссылки")
	}

	link, err := r.links.Get(ctx, *request.LinkID)
	if err != nil {
		return err
	}
	linkURL, err := r.links.AbsoluteURL(link, r.linkEndpoint)
	if err != nil {
		return err
	}

	expiresAt := ""
	if link.ExpiresAt != nil {
		expiresAt = link.ExpiresAt.Format("2006-01-02")
	}

	return r.send(ctx, request.SenderEmail, fmt.Sprintf("Access request accepted: %s", link.Title), notifier.TemplateRequestAccepted, map[string]any{
		"FullName":    request.SenderFullName,
		"RecordTitle": link.Title,
		"Message":     event.Message,
		"LinkURL":     linkURL,
		"ExpiresAt":   expiresAt,
	})
}

// SendRejectNotification : письмо автору заявки с сообщением владельца
func (r *Receivers) SendRejectNotification(ctx context.Context, event signals.Event) error {
	request, err := requestFromEvent(event)
	if err != nil {
		return err
	}

	record, err := r.records.GetRecord(ctx, request.ResourceID)
	if err != nil {
		return err
	}

	return r.send(ctx, request.SenderEmail, "Access request rejected", notifier.TemplateRequestRejected, map[string]any{
		"FullName":    request.SenderFullName,
		"RecordTitle": recordTitle(record),
		"Message":     event.Message,
	})
}

func (r *Receivers) send(ctx context.Context, to, subject, template string, data map[string]any) error {
	body, err := r.templates.Render(template, data)
	if err != nil {
		return err
	}

	return r.mailer.Send(ctx, model.MailMessage{
		To:      []string{to},
		Subject: subject,
		Body:    body,
	})
}

func recordTitle(record *model.Record) string {
	if record == nil {
		return ""
	}
	return record.Title
}
