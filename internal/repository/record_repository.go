package repository

import (
	"access-request-server/config"
	"access-request-server/internal/model"
	"access-request-server/internal/util"
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// RecordRepository : чтение полей записи, нужных заявкам на доступ
type RecordRepository struct {
	*config.Database
}

func NewRecordRepository(database *config.Database) *RecordRepository {
	return &RecordRepository{database}
}

func (r *RecordRepository) GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.Record, error) {
	query := `SELECT id, owner_user_id, title, access_right FROM records WHERE id = $1`
	var record model.Record
	err := sqlx.GetContext(ctx, exec, &record, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &model.RecordNotFoundError{ResourceID: id}
	} else if err != nil {
		return nil, util.LogError("[RecordRepo] не удалось получить запись", err)
	}
	return &record, nil
}
