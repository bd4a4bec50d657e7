package service

import (
	"access-request-server/internal/model"
	"access-request-server/internal/ports"
	"context"

	"github.com/jmoiron/sqlx"
)

// UserService : пользователи для писем и определения подтверждённого отправителя
type UserService struct {
	repository ports.UserRepository
	db         sqlx.ExtContext
}

func NewUserService(repository ports.UserRepository, db sqlx.ExtContext) *UserService {
	return &UserService{repository: repository, db: db}
}

func (s *UserService) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return s.repository.FindByID(ctx, s.db, id)
}
