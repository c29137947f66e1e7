package model

type Shop struct {
	BaseModel
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
	Address     *string `db:"address" json:"address"`
	Phone       *string `db:"phone" json:"phone"`
	Email       *string `db:"email" json:"email"`
	Website     *string `db:"website" json:"website"`
	LogoURL     *string `db:"logo_url" json:"logo_url"`
}
