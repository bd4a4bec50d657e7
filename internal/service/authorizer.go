package service

import (
	"context"
	"log"
)

// TokenValidator : проверка токена секретной ссылки
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string, expected map[string]any) bool
}

// Authorizer : единая точка проверки bearer-токена для серверов ресурсов
type Authorizer struct {
	validator TokenValidator
}

func NewAuthorizer(validator TokenValidator) *Authorizer {
	return &Authorizer{validator: validator}
}

// AuthorizeBearer : true, только если токен действителен и его extra_data
// содержит все ключи expectedResource с равными значениями. Никогда не паникует
func (a *Authorizer) AuthorizeBearer(ctx context.Context, token string, expectedResource map[string]any) (authorized bool) {
	if token == "" {
		return false
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Authorizer] паника при проверке токена: %v", r)
			authorized = false
		}
	}()

	return a.validator.ValidateToken(ctx, token, expectedResource)
}
