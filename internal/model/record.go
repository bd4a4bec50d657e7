package model

const AccessRightOpen = "open"

// Record : поля записи, которые нужны подсистеме заявок
type Record struct {
	ID          int64  `db:"id" json:"id"`
	OwnerUserID int64  `db:"owner_user_id" json:"owner_user_id"`
	Title       string `db:"title" json:"title"`
	AccessRight string `db:"access_right" json:"access_right"`
}

func (r *Record) IsOpen() bool {
	return r.AccessRight == AccessRightOpen
}
