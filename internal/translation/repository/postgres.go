package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/eliasbui/asia-shop/internal/model"
	"github.com/eliasbui/asia-shop/pkg/database"
)

// entityTables maps entity type tags to the table holding the canonical
// rows, for coverage and missing-translation aggregates.
var entityTables = map[model.EntityType]string{
	model.EntityCategory:       "categories",
	model.EntityAttribute:      "attributes",
	model.EntityAttributeValue: "attribute_allowed_values",
	model.EntityProduct:        "products",
	model.EntityShop:           "shops",
	model.EntityProductVariant: "product_variants",
}

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, t *model.Translation) error {
	query := `
        INSERT INTO translations (id, entity_type, entity_id, locale, field, translation, is_deleted, created_at, updated_at)
        VALUES (:id, :entity_type, :entity_id, :locale, :field, :translation, :is_deleted, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, t)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Translation, error) {
	var t model.Translation
	query := `SELECT * FROM translations WHERE id = $1 AND is_deleted = FALSE LIMIT 1`
	err := r.DB.GetContext(ctx, &t, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *PGRepository) FindByKey(ctx context.Context, entityType model.EntityType, entityID, locale, field string) (*model.Translation, error) {
	var t model.Translation
	query := `
        SELECT * FROM translations
        WHERE entity_type = $1 AND entity_id = $2 AND locale = $3 AND field = $4 AND is_deleted = FALSE
        LIMIT 1
    `
	err := r.DB.GetContext(ctx, &t, query, entityType, entityID, locale, field)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *PGRepository) FindByEntity(ctx context.Context, entityType model.EntityType, entityID string) ([]model.Translation, error) {
	var translations []model.Translation
	query := `
        SELECT * FROM translations
        WHERE entity_type = $1 AND entity_id = $2 AND is_deleted = FALSE
        ORDER BY locale ASC, field ASC
    `
	if err := r.DB.SelectContext(ctx, &translations, query, entityType, entityID); err != nil {
		return nil, err
	}
	return translations, nil
}

func (r *PGRepository) FindByEntityLocale(ctx context.Context, entityType model.EntityType, entityID, locale string) ([]model.Translation, error) {
	var translations []model.Translation
	query := `
        SELECT * FROM translations
        WHERE entity_type = $1 AND entity_id = $2 AND locale = $3 AND is_deleted = FALSE
        ORDER BY field ASC
    `
	if err := r.DB.SelectContext(ctx, &translations, query, entityType, entityID, locale); err != nil {
		return nil, err
	}
	return translations, nil
}

func (r *PGRepository) Update(ctx context.Context, t *model.Translation) error {
	query := `
        UPDATE translations
        SET translation = :translation,
            updated_at = :updated_at
        WHERE id = :id AND is_deleted = FALSE
    `
	_, err := r.DB.NamedExecContext(ctx, query, t)
	return err
}

func (r *PGRepository) SoftDelete(ctx context.Context, id string) error {
	query := `UPDATE translations SET is_deleted = TRUE, updated_at = $2 WHERE id = $1 AND is_deleted = FALSE`
	_, err := r.DB.ExecContext(ctx, query, id, time.Now())
	return err
}

// UpsertBatch updates each row by its unique tuple, inserting when no
// non-deleted row matches. All rows go through one transaction.
func (r *PGRepository) UpsertBatch(ctx context.Context, translations []model.Translation) error {
	return database.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		for i := range translations {
			t := &translations[i]

			updateQuery := `
                UPDATE translations
                SET translation = :translation,
                    updated_at = :updated_at
                WHERE entity_type = :entity_type AND entity_id = :entity_id
                  AND locale = :locale AND field = :field AND is_deleted = FALSE
            `
			res, err := tx.NamedExecContext(ctx, updateQuery, t)
			if err != nil {
				return err
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if affected > 0 {
				continue
			}

			insertQuery := `
                INSERT INTO translations (id, entity_type, entity_id, locale, field, translation, is_deleted, created_at, updated_at)
                VALUES (:id, :entity_type, :entity_id, :locale, :field, :translation, :is_deleted, :created_at, :updated_at)
            `
			if _, err := tx.NamedExecContext(ctx, insertQuery, t); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PGRepository) DistinctLocales(ctx context.Context, entityType model.EntityType) ([]string, error) {
	var locales []string
	query := `
        SELECT DISTINCT locale FROM translations
        WHERE entity_type = $1 AND is_deleted = FALSE
        ORDER BY locale ASC
    `
	if err := r.DB.SelectContext(ctx, &locales, query, entityType); err != nil {
		return nil, err
	}
	return locales, nil
}

func (r *PGRepository) CountByLocale(ctx context.Context, locale string) (int, error) {
	var count int
	query := `SELECT count(*) FROM translations WHERE locale = $1 AND is_deleted = FALSE`
	if err := r.DB.GetContext(ctx, &count, query, locale); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PGRepository) CountByEntityType(ctx context.Context, entityType model.EntityType) (int, error) {
	var count int
	query := `SELECT count(*) FROM translations WHERE entity_type = $1 AND is_deleted = FALSE`
	if err := r.DB.GetContext(ctx, &count, query, entityType); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PGRepository) CountTranslatedEntities(ctx context.Context, entityType model.EntityType, locale string) (int, error) {
	var count int
	query := `
        SELECT count(DISTINCT entity_id) FROM translations
        WHERE entity_type = $1 AND locale = $2 AND is_deleted = FALSE
    `
	if err := r.DB.GetContext(ctx, &count, query, entityType, locale); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PGRepository) CountEntities(ctx context.Context, entityType model.EntityType) (int, error) {
	table, ok := entityTables[entityType]
	if !ok {
		return 0, fmt.Errorf("no table mapping for entity type %q", entityType)
	}
	var count int
	query := fmt.Sprintf(`SELECT count(*) FROM %s WHERE is_deleted = FALSE`, table)
	if err := r.DB.GetContext(ctx, &count, query); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PGRepository) EntityIDsMissingField(ctx context.Context, entityType model.EntityType, locale, field string) ([]string, error) {
	table, ok := entityTables[entityType]
	if !ok {
		return nil, fmt.Errorf("no table mapping for entity type %q", entityType)
	}
	var ids []string
	query := fmt.Sprintf(`
        SELECT e.id FROM %s e
        WHERE e.is_deleted = FALSE
          AND NOT EXISTS (
              SELECT 1 FROM translations t
              WHERE t.entity_type = $1 AND t.entity_id = e.id
                AND t.locale = $2 AND t.field = $3 AND t.is_deleted = FALSE
          )
        ORDER BY e.id ASC
    `, table)
	if err := r.DB.SelectContext(ctx, &ids, query, entityType, locale, field); err != nil {
		return nil, err
	}
	return ids, nil
}
