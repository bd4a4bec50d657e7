package ports

import (
	"access-request-server/internal/model"
	"context"
)

// RecordResolver : nil, nil если записи нет
type RecordResolver interface {
	GetRecord(ctx context.Context, id int64) (*model.Record, error)
}

// UserDirectory : пользователи сервиса учётных записей
type UserDirectory interface {
	FindByID(ctx context.Context, id int64) (*model.User, error)
}

// Mailer : отправка письма. Ошибки возвращаются отправителю сигнала
type Mailer interface {
	Send(ctx context.Context, message model.MailMessage) error
}

// TemplateRenderer : рендер именованного шаблона письма или описания ссылки
type TemplateRenderer interface {
	Render(name string, data any) (string, error)
}

// URLBuilder : абсолютный URL эндпоинта с параметрами
type URLBuilder interface {
	Build(endpoint string, params map[string]any) (string, error)
}
