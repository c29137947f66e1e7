package translation

import (
	"context"

	"github.com/eliasbui/asia-shop/internal/model"
	"github.com/eliasbui/asia-shop/internal/translation/dto"
)

// RequiredFields are the fields every localizable entity is expected to
// translate; Missing() reports against this set.
var RequiredFields = []string{"name", "description"}

type UseCase interface {
	// Resolve returns the translation for the exact (entityType, entityID,
	// locale, field) tuple, or nil when absent. There is no locale
	// fallback chain; callers wanting "en" must ask for "en".
	Resolve(ctx context.Context, entityType model.EntityType, entityID, locale, field string) (*string, error)
	ResolveAll(ctx context.Context, entityType model.EntityType, entityID, locale string) (map[string]string, error)

	CreateTranslation(ctx context.Context, input *dto.TranslationInput) (*model.Translation, error)
	GetTranslation(ctx context.Context, id string) (*model.Translation, error)
	UpdateTranslation(ctx context.Context, id, text string) (*model.Translation, error)
	DeleteTranslation(ctx context.Context, id string) error
	EntityTranslations(ctx context.Context, entityType model.EntityType, entityID string) ([]model.Translation, error)
	// BulkUpsert applies all inputs or none.
	BulkUpsert(ctx context.Context, inputs []dto.TranslationInput) ([]model.Translation, error)

	Coverage(ctx context.Context, entityType model.EntityType, locale string) (*dto.CoverageReport, error)
	Missing(ctx context.Context, entityType model.EntityType, locale string) ([]dto.MissingTranslation, error)
	AvailableLocales(ctx context.Context, entityType model.EntityType) ([]string, error)
	Statistics(ctx context.Context) (*dto.Statistics, error)
}
