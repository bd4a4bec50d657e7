package ports

import (
	"access-request-server/internal/model"
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// Transactor : BeginTX возвращает исполнитель запросов, rollback и commit.
// rollback после commit ничего не делает
type Transactor interface {
	BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error)
}

// AccessRequestRepository : SQL слой заявок на доступ
type AccessRequestRepository interface {
	Transactor
	Create(ctx context.Context, exec sqlx.ExtContext, request *model.AccessRequest) (*model.AccessRequest, error)
	GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.AccessRequest, error)
	GetForUpdate(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.AccessRequest, error)
	Update(ctx context.Context, exec sqlx.ExtContext, request *model.AccessRequest) error
	ListByReceiver(ctx context.Context, exec sqlx.ExtContext, receiverUserID int64) ([]model.AccessRequest, error)
	GetByReceiver(ctx context.Context, exec sqlx.ExtContext, id int64, receiverUserID int64) (*model.AccessRequest, error)
}

// SecretLinkRepository : SQL слой секретных ссылок
type SecretLinkRepository interface {
	Transactor
	Create(ctx context.Context, exec sqlx.ExtContext, link *model.SecretLink) (*model.SecretLink, error)
	UpdateToken(ctx context.Context, exec sqlx.ExtContext, id int64, token string) error
	GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.SecretLink, error)
	Revoke(ctx context.Context, exec sqlx.ExtContext, id int64, revokedAt time.Time) (bool, error)
	ListByOwner(ctx context.Context, exec sqlx.ExtContext, ownerUserID int64) ([]model.SecretLink, error)
	GetByOwner(ctx context.Context, exec sqlx.ExtContext, id int64, ownerUserID int64) (*model.SecretLink, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.User, error)
}

type RecordRepository interface {
	GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.Record, error)
}

// CacheRepository : Redis слой для записей
type CacheRepository interface {
	SetRecord(ctx context.Context, record *model.Record) error
	GetRecord(ctx context.Context, id int64) (*model.Record, error)
}
