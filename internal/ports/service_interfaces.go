package ports

import (
	"access-request-server/internal/model"
	"context"
	"time"
)

type AccessRequestService interface {
	Create(ctx context.Context, params model.NewAccessRequestParams) (*model.AccessRequest, error)
	ConfirmEmailByToken(ctx context.Context, token string) (*model.AccessRequest, error)
	QueryByReceiver(ctx context.Context, receiverUserID int64) ([]model.AccessRequest, error)
	GetByReceiver(ctx context.Context, requestID int64, receiverUserID int64) (*model.AccessRequest, error)
	Accept(ctx context.Context, requestID int64, receiverUserID int64, message string, expiresAt *time.Time) (*model.AccessRequest, error)
	Reject(ctx context.Context, requestID int64, receiverUserID int64, message string) (*model.AccessRequest, error)
}

type SecretLinkService interface {
	Create(ctx context.Context, params model.NewSecretLinkParams) (*model.SecretLink, error)
	QueryByOwner(ctx context.Context, ownerUserID int64) ([]model.SecretLink, error)
	RevokeOwned(ctx context.Context, linkID int64, ownerUserID int64) (bool, error)
	AbsoluteURL(link *model.SecretLink, endpoint string) (string, error)
}

// RecordFileService : pre-signed ссылка на файл записи после проверки доступа
type RecordFileService interface {
	DownloadURL(ctx context.Context, recordID int64, key string, token string, userID int64) (string, error)
}
