package requestresponse

import (
	"access-request-server/internal/model"
	"time"
)

// CreateAccessRequestRequest : форма запроса доступа к закрытой записи
type CreateAccessRequestRequest struct {
	FullName      string `json:"full_name" example:"Jane Doe"`
	Email         string `json:"email" example:"jane@example.org"`
	Justification string `json:"justification" example:"please"`
}

// DecisionRequest : решение владельца по заявке
type DecisionRequest struct {
	Message   string     `json:"message" example:"ok"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" example:"2025-08-23T00:00:00Z"`
}

// AccessRequestResponse : заявка для JSON-ответа
type AccessRequestResponse struct {
	ID             int64  `json:"id" example:"1"`
	Status         string `json:"status" example:"pending"`
	RecordID       int64  `json:"recid" example:"1"`
	SenderFullName string `json:"sender_full_name" example:"Jane Doe"`
	SenderEmail    string `json:"sender_email" example:"jane@example.org"`
	Justification  string `json:"justification" example:"please"`
	Message        string `json:"message,omitempty" example:"ok"`
	LinkID         *int64 `json:"link_id,omitempty" example:"1"`
	CreatedAt      string `json:"created" example:"2025-08-23T12:34:56Z"`
	ModifiedAt     string `json:"modified" example:"2025-08-23T12:34:56Z"`
}

// AccessRequestResponseFromModel : конвертирует model.AccessRequest в AccessRequestResponse
func AccessRequestResponseFromModel(request *model.AccessRequest) AccessRequestResponse {
	return AccessRequestResponse{
		ID:             request.ID,
		Status:         string(request.Status),
		RecordID:       request.ResourceID,
		SenderFullName: request.SenderFullName,
		SenderEmail:    request.SenderEmail,
		Justification:  request.Justification,
		Message:        request.Message,
		LinkID:         request.LinkID,
		CreatedAt:      request.CreatedAt.Format(time.RFC3339),
		ModifiedAt:     request.ModifiedAt.Format(time.RFC3339),
	}
}

// ListAccessRequestsResponse : заявки, адресованные текущему пользователю
type ListAccessRequestsResponse struct {
	Data struct {
		Requests []AccessRequestResponse `json:"requests"`
	} `json:"data"`
	Count int `json:"count" example:"10"`
}

// ConfirmEmailResponse : результат перехода по ссылке из письма
type ConfirmEmailResponse struct {
	Response struct {
		Status  string `json:"status" example:"pending"`
		Message string `json:"message" example:"email подтверждён"`
	} `json:"response"`
}
