package ports

import (
	"context"
	"time"
)

// S3Storage : файлы записей лежат в S3, наружу отдаём только pre-signed ссылки
type S3Storage interface {
	GeneratePresignedGetURL(ctx context.Context, key string, expire time.Duration) (string, error)
}
