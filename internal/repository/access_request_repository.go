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

const accessRequestColumns = `id, status, receiver_user_id, sender_user_id, sender_full_name, sender_email,
		recid, justification, message, created_at, modified_at, link_id`

type AccessRequestRepository struct {
	transactor
}

func NewAccessRequestRepository(database *config.Database) *AccessRequestRepository {
	return &AccessRequestRepository{transactor{database}}
}

// Create : сохраняет новую заявку, id назначает БД
func (r *AccessRequestRepository) Create(ctx context.Context, exec sqlx.ExtContext, request *model.AccessRequest) (*model.AccessRequest, error) {
	query := `
		INSERT INTO access_requests (status, receiver_user_id, sender_user_id, sender_full_name, sender_email,
			recid, justification, message, created_at, modified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	created := *request
	err := exec.QueryRowxContext(ctx, query,
		request.Status,
		request.ReceiverUserID,
		request.SenderUserID,
		request.SenderFullName,
		request.SenderEmail,
		request.ResourceID,
		request.Justification,
		request.Message,
		request.CreatedAt,
		request.ModifiedAt,
	).Scan(&created.ID)
	if err != nil {
		return nil, util.LogError("[AccessRequestRepo] ошибка вставки заявки в БД", err)
	}

	return &created, nil
}

func (r *AccessRequestRepository) GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.AccessRequest, error) {
	query := `SELECT ` + accessRequestColumns + ` FROM access_requests WHERE id = $1`
	return r.get(ctx, exec, query, id)
}

// GetForUpdate : блокирует строку до конца транзакции, переходы одной заявки выполняются последовательно
func (r *AccessRequestRepository) GetForUpdate(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.AccessRequest, error) {
	query := `SELECT ` + accessRequestColumns + ` FROM access_requests WHERE id = $1 FOR UPDATE`
	return r.get(ctx, exec, query, id)
}

// GetByReceiver : заявка, только если она адресована receiverUserID
func (r *AccessRequestRepository) GetByReceiver(ctx context.Context, exec sqlx.ExtContext, id int64, receiverUserID int64) (*model.AccessRequest, error) {
	query := `SELECT ` + accessRequestColumns + ` FROM access_requests WHERE id = $1 AND receiver_user_id = $2`
	return r.get(ctx, exec, query, id, receiverUserID)
}

func (r *AccessRequestRepository) get(ctx context.Context, exec sqlx.ExtContext, query string, args ...any) (*model.AccessRequest, error) {
	var request model.AccessRequest
	err := sqlx.GetContext(ctx, exec, &request, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrRequestNotFound
	} else if err != nil {
		return nil, util.LogError("[AccessRequestRepo] не удалось получить заявку", err)
	}
	return &request, nil
}

// Update : сохраняет изменяемые поля заявки
func (r *AccessRequestRepository) Update(ctx context.Context, exec sqlx.ExtContext, request *model.AccessRequest) error {
	query := `
		UPDATE access_requests
		SET status = $2, message = $3, modified_at = $4, link_id = $5
		WHERE id = $1
	`
	result, err := exec.ExecContext(ctx, query, request.ID, request.Status, request.Message, request.ModifiedAt, request.LinkID)
	if err != nil {
		return util.LogError("[AccessRequestRepo] не удалось обновить заявку", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[AccessRequestRepo] не удалось получить число изменённых строк", err)
	}
	if affected == 0 {
		return model.ErrRequestNotFound
	}
	return nil
}

// ListByReceiver : заявки владельца записи, новые первыми
func (r *AccessRequestRepository) ListByReceiver(ctx context.Context, exec sqlx.ExtContext, receiverUserID int64) ([]model.AccessRequest, error) {
	query := `
		SELECT ` + accessRequestColumns + `
		FROM access_requests
		WHERE receiver_user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	requests := []model.AccessRequest{}
	if err := sqlx.SelectContext(ctx, exec, &requests, query, receiverUserID); err != nil {
		return nil, util.LogError("[AccessRequestRepo] не удалось получить список заявок", err)
	}
	return requests, nil
}
