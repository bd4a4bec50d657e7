package service

import (
	"access-request-server/internal/model"
	"access-request-server/internal/ports"
	"access-request-server/internal/util"
	"context"
	"errors"
	"log"

	"github.com/jmoiron/sqlx"
)

// RecordService : поиск записи сначала в Redis, затем в БД
type RecordService struct {
	repository ports.RecordRepository
	cache      ports.CacheRepository
	db         sqlx.ExtContext
}

func NewRecordService(repository ports.RecordRepository, cache ports.CacheRepository, db sqlx.ExtContext) *RecordService {
	return &RecordService{repository: repository, cache: cache, db: db}
}

// GetRecord : nil, nil если записи нет
func (s *RecordService) GetRecord(ctx context.Context, id int64) (*model.Record, error) {
	record, err := s.cache.GetRecord(ctx, id)
	if err != nil {
		log.Printf("[RecordService] кэш недоступен, читаем запись %d из БД: %v", id, err)
	} else if record != nil {
		return record, nil
	}

	record, err = s.repository.GetByID(ctx, s.db, id)
	if errors.Is(err, model.ErrRecordNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, util.LogError("[RecordService] не удалось получить запись", err)
	}

	if err := s.cache.SetRecord(ctx, record); err != nil {
		log.Printf("[RecordService] не удалось закэшировать запись %d: %v", id, err)
	}
	return record, nil
}
