package translation

import (
	"context"

	"github.com/eliasbui/asia-shop/internal/model"
)

type Repository interface {
	Create(ctx context.Context, t *model.Translation) error
	FindByID(ctx context.Context, id string) (*model.Translation, error)
	// FindByKey is the exact-match lookup on the unique tuple; nil when
	// absent.
	FindByKey(ctx context.Context, entityType model.EntityType, entityID, locale, field string) (*model.Translation, error)
	FindByEntity(ctx context.Context, entityType model.EntityType, entityID string) ([]model.Translation, error)
	FindByEntityLocale(ctx context.Context, entityType model.EntityType, entityID, locale string) ([]model.Translation, error)
	Update(ctx context.Context, t *model.Translation) error
	SoftDelete(ctx context.Context, id string) error
	// UpsertBatch inserts or updates every row in one transaction.
	UpsertBatch(ctx context.Context, translations []model.Translation) error

	DistinctLocales(ctx context.Context, entityType model.EntityType) ([]string, error)
	CountByLocale(ctx context.Context, locale string) (int, error)
	CountByEntityType(ctx context.Context, entityType model.EntityType) (int, error)
	CountTranslatedEntities(ctx context.Context, entityType model.EntityType, locale string) (int, error)
	// CountEntities counts non-deleted rows of the entity's own table.
	CountEntities(ctx context.Context, entityType model.EntityType) (int, error)
	// EntityIDsMissingField lists entities lacking a translation row for
	// the field in the locale.
	EntityIDsMissingField(ctx context.Context, entityType model.EntityType, locale, field string) ([]string, error)
}
