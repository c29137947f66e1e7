package dto

import "github.com/eliasbui/asia-shop/internal/model"

type TranslationInput struct {
	EntityType  model.EntityType
	EntityID    string
	Locale      string
	Field       string
	Translation string
}

type CoverageReport struct {
	EntityType    model.EntityType `json:"entity_type"`
	Locale        string           `json:"locale"`
	TotalEntities int              `json:"total_entities"`
	Translated    int              `json:"translated"`
	Percentage    float64          `json:"percentage"`
}

type MissingTranslation struct {
	EntityType model.EntityType `json:"entity_type"`
	EntityID   string           `json:"entity_id"`
	Locale     string           `json:"locale"`
	Field      string           `json:"field"`
}

type LocaleCount struct {
	Locale string `json:"locale"`
	Count  int    `json:"count"`
}

type EntityTypeCount struct {
	EntityType model.EntityType `json:"entity_type"`
	Count      int              `json:"count"`
}

type Statistics struct {
	Total        int               `json:"total"`
	ByLocale     []LocaleCount     `json:"by_locale"`
	ByEntityType []EntityTypeCount `json:"by_entity_type"`
}
