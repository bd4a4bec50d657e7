package model

import (
	"access-request-server/internal/signals"
	"fmt"
	"strings"
	"time"
)

// RequestStatus : состояние заявки на доступ
type RequestStatus string

const (
	StatusEmailValidation RequestStatus = "email_validation"
	StatusPending         RequestStatus = "pending"
	StatusAccepted        RequestStatus = "accepted"
	StatusRejected        RequestStatus = "rejected"
)

// AccessRequest : заявка третьего лица на доступ к закрытой записи
type AccessRequest struct {
	ID             int64         `db:"id" json:"id"`
	Status         RequestStatus `db:"status" json:"status"`
	ReceiverUserID int64         `db:"receiver_user_id" json:"receiver_user_id"`
	SenderUserID   *int64        `db:"sender_user_id" json:"sender_user_id,omitempty"`
	SenderFullName string        `db:"sender_full_name" json:"sender_full_name"`
	SenderEmail    string        `db:"sender_email" json:"sender_email"`
	ResourceID     int64         `db:"recid" json:"recid"`
	Justification  string        `db:"justification" json:"justification"`
	Message        string        `db:"message" json:"message"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
	ModifiedAt     time.Time     `db:"modified_at" json:"modified_at"`
	LinkID         *int64        `db:"link_id" json:"link_id,omitempty"`
}

// NewAccessRequestParams : входные данные для создания заявки
type NewAccessRequestParams struct {
	ResourceID     int64
	ReceiverUserID int64
	SenderFullName string
	SenderEmail    string
	Justification  string
	Sender         *User
}

// NewAccessRequest : создаёт заявку и событие, которое нужно отправить после сохранения.
// Сразу в pending попадает только заявка пользователя с подтверждённым email,
// совпадающим с адресом в заявке. Остальные проходят email_validation
func NewAccessRequest(params NewAccessRequestParams, now time.Time) (AccessRequest, []signals.Event, error) {
	if params.ReceiverUserID == 0 {
		return AccessRequest{}, nil, fmt.Errorf("%w: не задан получатель заявки", ErrInvalidInput)
	}
	if strings.TrimSpace(params.SenderFullName) == "" {
		return AccessRequest{}, nil, fmt.Errorf("%w: не задано имя отправителя", ErrInvalidInput)
	}
	if strings.TrimSpace(params.SenderEmail) == "" {
		return AccessRequest{}, nil, fmt.Errorf("%w: не задан email отправителя", ErrInvalidInput)
	}
	if strings.TrimSpace(params.Justification) == "" {
		return AccessRequest{}, nil, fmt.Errorf("%w: не задано обоснование", ErrInvalidInput)
	}

	request := AccessRequest{
		Status:         StatusEmailValidation,
		ReceiverUserID: params.ReceiverUserID,
		SenderFullName: params.SenderFullName,
		SenderEmail:    params.SenderEmail,
		ResourceID:     params.ResourceID,
		Justification:  params.Justification,
		CreatedAt:      now,
		ModifiedAt:     now,
	}

	if params.Sender != nil {
		senderID := params.Sender.ID
		request.SenderUserID = &senderID
		if params.Sender.IsConfirmed() && strings.EqualFold(strings.TrimSpace(params.SenderEmail), params.Sender.Email) {
			request.Status = StatusPending
		}
	}

	signal := signals.RequestCreated
	if request.Status == StatusPending {
		signal = signals.RequestConfirmed
	}

	return request, []signals.Event{{Name: signal}}, nil
}

// ConfirmEmail : email_validation -> pending
func (r AccessRequest) ConfirmEmail(now time.Time) (AccessRequest, []signals.Event, error) {
	if r.Status != StatusEmailValidation {
		return r, nil, &InvalidRequestStateError{Expected: StatusEmailValidation, Actual: r.Status}
	}

	r.Status = StatusPending
	r.touch(now)
	return r, []signals.Event{{Name: signals.RequestConfirmed}}, nil
}

// Accept : pending -> accepted. Ссылку создаёт получатель сигнала request-accepted
func (r AccessRequest) Accept(message string, expiresAt *time.Time, now time.Time) (AccessRequest, []signals.Event, error) {
	if r.Status != StatusPending {
		return r, nil, &InvalidRequestStateError{Expected: StatusPending, Actual: r.Status}
	}

	r.Status = StatusAccepted
	r.Message = message
	r.touch(now)
	return r, []signals.Event{{Name: signals.RequestAccepted, Message: message, ExpiresAt: expiresAt}}, nil
}

// Reject : pending -> rejected
func (r AccessRequest) Reject(message string, now time.Time) (AccessRequest, []signals.Event, error) {
	if r.Status != StatusPending {
		return r, nil, &InvalidRequestStateError{Expected: StatusPending, Actual: r.Status}
	}

	r.Status = StatusRejected
	r.Message = message
	r.touch(now)
	return r, []signals.Event{{Name: signals.RequestRejected, Message: message}}, nil
}

// AttachLink : привязывает созданную секретную ссылку
func (r AccessRequest) AttachLink(linkID int64, now time.Time) AccessRequest {
	r.LinkID = &linkID
	r.touch(now)
	return r
}

func (r *AccessRequest) touch(now time.Time) {
	if now.Before(r.CreatedAt) {
		now = r.CreatedAt
	}
	r.ModifiedAt = now
}

// ResourceData : extra_data секретной ссылки, выданной по этой заявке
func (r AccessRequest) ResourceData() map[string]any {
	return map[string]any{"resource_id": r.ResourceID}
}
