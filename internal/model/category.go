package model

type Category struct {
	BaseModel
	ParentID    *string `db:"parent_id" json:"parent_id"` // NULL = root
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
	SortOrder   int     `db:"sort_order" json:"sort_order"`

	Children []Category `db:"-" json:"children,omitempty"` // Tree responses only, not in DB
}
