package model

import "time"

// BaseModel carries the identity and soft-delete tombstone shared by every
// catalog table. Rows are never physically removed; IsDeleted is flipped and
// every query filters on it.
type BaseModel struct {
	ID        string    `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	IsDeleted bool      `db:"is_deleted" json:"-"`
}
