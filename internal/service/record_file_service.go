package service

import (
	"access-request-server/internal/model"
	"access-request-server/internal/ports"
	"access-request-server/internal/util"
	"context"
	"fmt"
	"log"
	"strings"
	"time"
)

// RecordFileService : выдача файлов записи по секретной ссылке или владельцу
type RecordFileService struct {
	records    ports.RecordResolver
	authorizer *Authorizer
	storage    ports.S3Storage
	ttl        time.Duration
}

func NewRecordFileService(records ports.RecordResolver, authorizer *Authorizer, storage ports.S3Storage, ttl time.Duration) *RecordFileService {
	return &RecordFileService{records: records, authorizer: authorizer, storage: storage, ttl: ttl}
}

// DownloadURL : pre-signed GET URL файла. Открытая запись доступна всем, закрытая владельцу
// или по действительному токену секретной ссылки на эту запись
func (s *RecordFileService) DownloadURL(ctx context.Context, recordID int64, key string, token string, userID int64) (string, error) {
	if key == "" || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: некорректное имя файла", model.ErrInvalidInput)
	}

	record, err := s.records.GetRecord(ctx, recordID)
	if err != nil {
		return "", err
	}
	if record == nil {
		return "", &model.RecordNotFoundError{ResourceID: recordID}
	}

	if !s.allowed(ctx, record, token, userID) {
		return "", model.ErrForbidden
	}

	url, err := s.storage.GeneratePresignedGetURL(ctx, fmt.Sprintf("records/%d/%s", record.ID, key), s.ttl)
	if err != nil {
		return "", util.LogError("[RecordFileService] не удалось получить ссылку на файл", err)
	}

	log.Printf("[RecordFileService] выдан файл %s записи %d", key, record.ID)
	return url, nil
}

func (s *RecordFileService) allowed(ctx context.Context, record *model.Record, token string, userID int64) bool {
	if record.IsOpen() {
		return true
	}
	if userID != 0 && userID == record.OwnerUserID {
		return true
	}
	return s.authorizer.AuthorizeBearer(ctx, token, map[string]any{"resource_id": record.ID})
}
