package repository

import (
	"access-request-server/config"
	"context"

	"github.com/jmoiron/sqlx"
)

// transactor : общий BeginTX для SQL-репозиториев
type transactor struct {
	*config.Database
}

// BeginTX : возвращает транзакцию, rollback и commit. rollback после commit ничего не делает
func (t transactor) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	tx, err := t.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, nil, err
	}

	committed := false
	rollback := func() error {
		if committed {
			return nil
		}
		return tx.Rollback()
	}
	commit := func() error {
		if err := tx.Commit(); err != nil {
			return err
		}
		committed = true
		return nil
	}

	return tx, rollback, commit, nil
}
