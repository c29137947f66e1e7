package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/eliasbui/asia-shop/internal/attribute/dto"
	"github.com/eliasbui/asia-shop/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

// Groups

func (r *PGRepository) CreateGroup(ctx context.Context, g *model.AttributeGroup) error {
	query := `
        INSERT INTO attribute_groups (id, name, display_order, is_deleted, created_at, updated_at)
        VALUES (:id, :name, :display_order, :is_deleted, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, g)
	return err
}

func (r *PGRepository) FindGroupByID(ctx context.Context, id string) (*model.AttributeGroup, error) {
	var group model.AttributeGroup
	query := `SELECT * FROM attribute_groups WHERE id = $1 AND is_deleted = FALSE LIMIT 1`
	err := r.DB.GetContext(ctx, &group, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

func (r *PGRepository) FindAllGroups(ctx context.Context) ([]model.AttributeGroup, error) {
	var groups []model.AttributeGroup
	query := `SELECT * FROM attribute_groups WHERE is_deleted = FALSE ORDER BY display_order ASC, name ASC`
	if err := r.DB.SelectContext(ctx, &groups, query); err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *PGRepository) GroupNameExists(ctx context.Context, name, excludeID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM attribute_groups WHERE name = $1 AND id != $2 AND is_deleted = FALSE)`
	if err := r.DB.GetContext(ctx, &exists, query, name, excludeID); err != nil {
		return false, err
	}
	return exists, nil
}

// Attributes

func (r *PGRepository) CreateAttribute(ctx context.Context, a *model.Attribute) error {
	query := `
        INSERT INTO attributes (id, code, input_type, data_type, unit, group_id, is_filterable, is_required, is_deleted, created_at, updated_at)
        VALUES (:id, :code, :input_type, :data_type, :unit, :group_id, :is_filterable, :is_required, :is_deleted, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, a)
	return err
}

func (r *PGRepository) FindAttributeByID(ctx context.Context, id string) (*model.Attribute, error) {
	var attr model.Attribute
	query := `SELECT * FROM attributes WHERE id = $1 AND is_deleted = FALSE LIMIT 1`
	err := r.DB.GetContext(ctx, &attr, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &attr, nil
}

func (r *PGRepository) FindAttributes(ctx context.Context, f *dto.AttributeFilters) ([]model.Attribute, int, error) {
	var attrs []model.Attribute
	var count int

	conditions := []string{"is_deleted = FALSE"}
	args := map[string]interface{}{}

	if f.GroupID != "" {
		conditions = append(conditions, "group_id = :group_id")
		args["group_id"] = f.GroupID
	}
	if f.DataType != "" {
		conditions = append(conditions, "data_type = :data_type")
		args["data_type"] = f.DataType
	}
	if f.IsFilterable != nil {
		conditions = append(conditions, "is_filterable = :is_filterable")
		args["is_filterable"] = *f.IsFilterable
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	countQuery := "SELECT count(*) FROM attributes" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return nil, 0, err
		}
	}

	query := "SELECT * FROM attributes" + whereClause + " ORDER BY code ASC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &attrs, args); err != nil {
		return nil, 0, err
	}
	return attrs, count, nil
}

func (r *PGRepository) UpdateAttribute(ctx context.Context, a *model.Attribute) error {
	query := `
        UPDATE attributes
        SET code = :code,
            input_type = :input_type,
            data_type = :data_type,
            unit = :unit,
            group_id = :group_id,
            is_filterable = :is_filterable,
            is_required = :is_required,
            updated_at = :updated_at
        WHERE id = :id AND is_deleted = FALSE
    `
	_, err := r.DB.NamedExecContext(ctx, query, a)
	return err
}

func (r *PGRepository) SoftDeleteAttribute(ctx context.Context, id string) error {
	query := `UPDATE attributes SET is_deleted = TRUE, updated_at = $2 WHERE id = $1 AND is_deleted = FALSE`
	_, err := r.DB.ExecContext(ctx, query, id, time.Now())
	return err
}

func (r *PGRepository) CodeExists(ctx context.Context, code, excludeID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM attributes WHERE code = $1 AND id != $2 AND is_deleted = FALSE)`
	if err := r.DB.GetContext(ctx, &exists, query, code, excludeID); err != nil {
		return false, err
	}
	return exists, nil
}

// Allowed values

func (r *PGRepository) CreateAllowedValue(ctx context.Context, v *model.AttributeAllowedValue) error {
	query := `
        INSERT INTO attribute_allowed_values (id, attribute_id, value, display_order, is_deleted, created_at, updated_at)
        VALUES (:id, :attribute_id, :value, :display_order, :is_deleted, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, v)
	return err
}

func (r *PGRepository) FindAllowedValueByID(ctx context.Context, id string) (*model.AttributeAllowedValue, error) {
	var value model.AttributeAllowedValue
	query := `SELECT * FROM attribute_allowed_values WHERE id = $1 AND is_deleted = FALSE LIMIT 1`
	err := r.DB.GetContext(ctx, &value, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &value, nil
}

func (r *PGRepository) FindAllowedValues(ctx context.Context, attributeID string) ([]model.AttributeAllowedValue, error) {
	var values []model.AttributeAllowedValue
	query := `
        SELECT * FROM attribute_allowed_values
        WHERE attribute_id = $1 AND is_deleted = FALSE
        ORDER BY display_order ASC, value ASC
    `
	if err := r.DB.SelectContext(ctx, &values, query, attributeID); err != nil {
		return nil, err
	}
	return values, nil
}

func (r *PGRepository) UpdateAllowedValue(ctx context.Context, v *model.AttributeAllowedValue) error {
	query := `
        UPDATE attribute_allowed_values
        SET value = :value,
            display_order = :display_order,
            updated_at = :updated_at
        WHERE id = :id AND is_deleted = FALSE
    `
	_, err := r.DB.NamedExecContext(ctx, query, v)
	return err
}

func (r *PGRepository) SoftDeleteAllowedValue(ctx context.Context, id string) error {
	query := `UPDATE attribute_allowed_values SET is_deleted = TRUE, updated_at = $2 WHERE id = $1 AND is_deleted = FALSE`
	_, err := r.DB.ExecContext(ctx, query, id, time.Now())
	return err
}

func (r *PGRepository) AllowedValueExists(ctx context.Context, attributeID, value, excludeID string) (bool, error) {
	var exists bool
	query := `
        SELECT EXISTS(
            SELECT 1 FROM attribute_allowed_values
            WHERE attribute_id = $1 AND value = $2 AND id != $3 AND is_deleted = FALSE
        )
    `
	if err := r.DB.GetContext(ctx, &exists, query, attributeID, value, excludeID); err != nil {
		return false, err
	}
	return exists, nil
}

// Category bindings

func (r *PGRepository) CreateBinding(ctx context.Context, b *model.CategoryAttribute) error {
	query := `
        INSERT INTO category_attributes (id, category_id, attribute_id, display_order, is_deleted, created_at, updated_at)
        VALUES (:id, :category_id, :attribute_id, :display_order, :is_deleted, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, b)
	return err
}

func (r *PGRepository) FindBinding(ctx context.Context, categoryID, attributeID string) (*model.CategoryAttribute, error) {
	var binding model.CategoryAttribute
	query := `
        SELECT * FROM category_attributes
        WHERE category_id = $1 AND attribute_id = $2 AND is_deleted = FALSE
        LIMIT 1
    `
	err := r.DB.GetContext(ctx, &binding, query, categoryID, attributeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &binding, nil
}

func (r *PGRepository) FindBindingsByAttribute(ctx context.Context, attributeID string) ([]model.CategoryAttribute, error) {
	var bindings []model.CategoryAttribute
	query := `SELECT * FROM category_attributes WHERE attribute_id = $1 AND is_deleted = FALSE`
	if err := r.DB.SelectContext(ctx, &bindings, query, attributeID); err != nil {
		return nil, err
	}
	return bindings, nil
}

func (r *PGRepository) SoftDeleteBinding(ctx context.Context, categoryID, attributeID string) error {
	query := `
        UPDATE category_attributes SET is_deleted = TRUE, updated_at = $3
        WHERE category_id = $1 AND attribute_id = $2 AND is_deleted = FALSE
    `
	_, err := r.DB.ExecContext(ctx, query, categoryID, attributeID, time.Now())
	return err
}

func (r *PGRepository) SoftDeleteBindingsByAttribute(ctx context.Context, attributeID string) error {
	query := `
        UPDATE category_attributes SET is_deleted = TRUE, updated_at = $2
        WHERE attribute_id = $1 AND is_deleted = FALSE
    `
	_, err := r.DB.ExecContext(ctx, query, attributeID, time.Now())
	return err
}

func (r *PGRepository) FindAttributesByCategory(ctx context.Context, categoryID string) ([]model.Attribute, error) {
	var attrs []model.Attribute
	query := `
        SELECT a.* FROM attributes a
        JOIN category_attributes ca ON ca.attribute_id = a.id
        WHERE ca.category_id = $1 AND ca.is_deleted = FALSE AND a.is_deleted = FALSE
        ORDER BY ca.display_order ASC, a.code ASC
    `
	if err := r.DB.SelectContext(ctx, &attrs, query, categoryID); err != nil {
		return nil, err
	}
	return attrs, nil
}

func (r *PGRepository) CategoryExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1 AND is_deleted = FALSE)`
	if err := r.DB.GetContext(ctx, &exists, query, id); err != nil {
		return false, err
	}
	return exists, nil
}
