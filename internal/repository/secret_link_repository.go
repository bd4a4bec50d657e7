package repository

import (
	"access-request-server/config"
	"access-request-server/internal/model"
	"access-request-server/internal/util"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

const secretLinkColumns = `id, token, owner_user_id, title, description, created_at, expires_at, revoked_at`

type SecretLinkRepository struct {
	transactor
}

func NewSecretLinkRepository(database *config.Database) *SecretLinkRepository {
	return &SecretLinkRepository{transactor{database}}
}

// Create : вставляет ссылку с пустым токеном, токен дописывается через UpdateToken в той же транзакции
func (r *SecretLinkRepository) Create(ctx context.Context, exec sqlx.ExtContext, link *model.SecretLink) (*model.SecretLink, error) {
	query := `
		INSERT INTO secret_links (token, owner_user_id, title, description, created_at, expires_at)
		VALUES ('', $1, $2, $3, $4, $5)
		RETURNING id
	`

	created := *link
	created.Token = ""
	err := exec.QueryRowxContext(ctx, query,
		link.OwnerUserID,
		link.Title,
		link.Description,
		link.CreatedAt,
		link.ExpiresAt,
	).Scan(&created.ID)
	if err != nil {
		return nil, util.LogError("[SecretLinkRepo] ошибка вставки ссылки в БД", err)
	}

	return &created, nil
}

func (r *SecretLinkRepository) UpdateToken(ctx context.Context, exec sqlx.ExtContext, id int64, token string) error {
	result, err := exec.ExecContext(ctx, `UPDATE secret_links SET token = $2 WHERE id = $1`, id, token)
	if err != nil {
		return util.LogError("[SecretLinkRepo] не удалось сохранить токен", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[SecretLinkRepo] не удалось получить число изменённых строк", err)
	}
	if affected == 0 {
		return model.ErrLinkNotFound
	}
	return nil
}

func (r *SecretLinkRepository) GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.SecretLink, error) {
	query := `SELECT ` + secretLinkColumns + ` FROM secret_links WHERE id = $1`
	return r.get(ctx, exec, query, id)
}

func (r *SecretLinkRepository) GetByOwner(ctx context.Context, exec sqlx.ExtContext, id int64, ownerUserID int64) (*model.SecretLink, error) {
	query := `SELECT ` + secretLinkColumns + ` FROM secret_links WHERE id = $1 AND owner_user_id = $2`
	return r.get(ctx, exec, query, id, ownerUserID)
}

func (r *SecretLinkRepository) get(ctx context.Context, exec sqlx.ExtContext, query string, args ...any) (*model.SecretLink, error) {
	var link model.SecretLink
	err := sqlx.GetContext(ctx, exec, &link, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrLinkNotFound
	} else if err != nil {
		return nil, util.LogError("[SecretLinkRepo] не удалось получить ссылку", err)
	}
	return &link, nil
}

// Revoke : проставляет revoked_at, если ссылка ещё не отозвана. false, если отозвана раньше
func (r *SecretLinkRepository) Revoke(ctx context.Context, exec sqlx.ExtContext, id int64, revokedAt time.Time) (bool, error) {
	query := `
		UPDATE secret_links
		SET revoked_at = $2
		WHERE id = $1 AND revoked_at IS NULL
	`
	result, err := exec.ExecContext(ctx, query, id, revokedAt)
	if err != nil {
		return false, util.LogError("[SecretLinkRepo] не удалось отозвать ссылку", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, util.LogError("[SecretLinkRepo] не удалось получить число изменённых строк", err)
	}
	return affected > 0, nil
}

// ListByOwner : ссылки пользователя, новые первыми
func (r *SecretLinkRepository) ListByOwner(ctx context.Context, exec sqlx.ExtContext, ownerUserID int64) ([]model.SecretLink, error) {
	query := `
		SELECT ` + secretLinkColumns + `
		FROM secret_links
		WHERE owner_user_id = $1 AND token <> ''
		ORDER BY created_at DESC, id DESC
	`

	links := []model.SecretLink{}
	if err := sqlx.SelectContext(ctx, exec, &links, query, ownerUserID); err != nil {
		return nil, util.LogError("[SecretLinkRepo] не удалось получить список ссылок", err)
	}
	return links, nil
}
