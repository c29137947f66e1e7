package model

// EntityType names a localizable entity. Translations reference their target
// by (EntityType, EntityID) only; the link is resolved at read time.
type EntityType string

const (
	EntityCategory       EntityType = "category"
	EntityAttribute      EntityType = "attribute"
	EntityAttributeValue EntityType = "attributeValue"
	EntityProduct        EntityType = "product"
	EntityShop           EntityType = "shop"
	EntityProductVariant EntityType = "productVariant"
)

func (t EntityType) IsValid() bool {
	switch t {
	case EntityCategory, EntityAttribute, EntityAttributeValue,
		EntityProduct, EntityShop, EntityProductVariant:
		return true
	}
	return false
}

// Translation is unique per (EntityType, EntityID, Locale, Field) among
// non-deleted rows. Locale matching is exact; "en-US" does not fall back
// to "en".
type Translation struct {
	BaseModel
	EntityType  EntityType `db:"entity_type" json:"entity_type"`
	EntityID    string     `db:"entity_id" json:"entity_id"`
	Locale      string     `db:"locale" json:"locale"`
	Field       string     `db:"field" json:"field"`
	Translation string     `db:"translation" json:"translation"`
}
