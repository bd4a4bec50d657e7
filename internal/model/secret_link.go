package model

import "time"

// SecretLink : секретная ссылка на закрытую запись. Token хранится зашифрованным
type SecretLink struct {
	ID          int64      `db:"id" json:"id"`
	Token       string     `db:"token" json:"-"`
	OwnerUserID int64      `db:"owner_user_id" json:"owner_user_id"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	ExpiresAt   *time.Time `db:"expires_at" json:"expires_at,omitempty"`
	RevokedAt   *time.Time `db:"revoked_at" json:"revoked_at,omitempty"`
}

func (l *SecretLink) IsRevoked() bool {
	return l.RevokedAt != nil
}

func (l *SecretLink) IsExpired(now time.Time) bool {
	return l.ExpiresAt != nil && !now.Before(*l.ExpiresAt)
}

// IsValid : не отозвана и не истекла
func (l *SecretLink) IsValid(now time.Time) bool {
	return !l.IsRevoked() && !l.IsExpired(now)
}

// NewSecretLinkParams : входные данные для создания секретной ссылки
type NewSecretLinkParams struct {
	Title       string
	OwnerUserID int64
	ExtraData   map[string]any
	Description string
	ExpiresAt   *time.Time
}
