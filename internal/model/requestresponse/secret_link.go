package requestresponse

import (
	"access-request-server/internal/model"
	"time"
)

// CreateSecretLinkRequest : создание ссылки владельцем записи вручную
type CreateSecretLinkRequest struct {
	RecordID    int64      `json:"recid" example:"1"`
	Title       string     `json:"title" example:"Для рецензента"`
	Description string     `json:"description" example:""`
	ExpiresAt   *time.Time `json:"expires_at,omitempty" example:"2025-08-23T00:00:00Z"`
}

// SecretLinkResponse : ссылка для JSON-ответа
type SecretLinkResponse struct {
	ID          int64  `json:"id" example:"1"`
	Title       string `json:"title" example:"Doc"`
	Description string `json:"description"`
	URL         string `json:"url,omitempty" example:"https://zenodo.example/records/1?token=..."`
	CreatedAt   string `json:"created" example:"2025-08-23T12:34:56Z"`
	ExpiresAt   string `json:"expires_at,omitempty" example:"2025-09-23T12:34:56Z"`
	RevokedAt   string `json:"revoked_at,omitempty"`
	Valid       bool   `json:"valid" example:"true"`
}

// SecretLinkResponseFromModel : конвертирует model.SecretLink в SecretLinkResponse
func SecretLinkResponseFromModel(link *model.SecretLink, url string, now time.Time) SecretLinkResponse {
	response := SecretLinkResponse{
		ID:          link.ID,
		Title:       link.Title,
		Description: link.Description,
		URL:         url,
		CreatedAt:   link.CreatedAt.Format(time.RFC3339),
		Valid:       link.IsValid(now),
	}
	if link.ExpiresAt != nil {
		response.ExpiresAt = link.ExpiresAt.Format(time.RFC3339)
	}
	if link.RevokedAt != nil {
		response.RevokedAt = link.RevokedAt.Format(time.RFC3339)
	}
	return response
}

// ListSecretLinksResponse : ссылки текущего пользователя
type ListSecretLinksResponse struct {
	Data struct {
		Links []SecretLinkResponse `json:"links"`
	} `json:"data"`
	Count int `json:"count" example:"10"`
}

// RevokeResponse : результат отзыва ссылки
type RevokeResponse struct {
	Response struct {
		Revoked bool `json:"revoked" example:"true"`
	} `json:"response"`
}

// ErrorDetail : детальная информация об ошибке
type ErrorDetail struct {
	Code int    `json:"code" example:"400"`
	Text string `json:"text" example:"описание ошибки"`
}

// ErrorResponse : стандартная структура ошибки
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
