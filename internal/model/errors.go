package model

import (
	"errors"
	"fmt"
)

var (
	ErrRequestNotFound = errors.New("заявка на доступ не найдена")
	ErrLinkNotFound    = errors.New("секретная ссылка не найдена")
	ErrRecordNotFound  = errors.New("запись не найдена")
	ErrUserNotFound    = errors.New("пользователь не найден")
	ErrInvalidInput    = errors.New("некорректные входные данные")
	ErrForbidden       = errors.New("доступ запрещён")
)

// InvalidRequestStateError : переход не разрешён из текущего состояния заявки
type InvalidRequestStateError struct {
	Expected RequestStatus
	Actual   RequestStatus
}

func (e *InvalidRequestStateError) Error() string {
	return fmt.Sprintf("недопустимое состояние заявки: ожидалось %s, текущее %s", e.Expected, e.Actual)
}

// RecordNotFoundError : запись, на которую ссылается заявка, не найдена
type RecordNotFoundError struct {
	ResourceID int64
}

func (e *RecordNotFoundError) Error() string {
	return fmt.Sprintf("запись %d не найдена", e.ResourceID)
}

func (e *RecordNotFoundError) Is(target error) bool {
	return target == ErrRecordNotFound
}
