package model

import "time"

type User struct {
	ID          int64      `db:"id" json:"id"`
	Email       string     `db:"email" json:"email"`
	ConfirmedAt *time.Time `db:"confirmed_at" json:"confirmed_at,omitempty"`
}

// IsConfirmed : email пользователя подтверждён
func (u *User) IsConfirmed() bool {
	return u != nil && u.ConfirmedAt != nil
}
