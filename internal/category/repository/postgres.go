package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/eliasbui/asia-shop/internal/apperr"
	"github.com/eliasbui/asia-shop/internal/category/dto"
	"github.com/eliasbui/asia-shop/internal/model"
	"github.com/eliasbui/asia-shop/pkg/database"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Category) error {
	query := `
        INSERT INTO categories (id, parent_id, name, description, sort_order, is_deleted, created_at, updated_at)
        VALUES (:id, :parent_id, :name, :description, :sort_order, :is_deleted, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	var category model.Category
	query := `SELECT * FROM categories WHERE id = $1 AND is_deleted = FALSE LIMIT 1`
	err := r.DB.GetContext(ctx, &category, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.CategoryFilters) ([]model.Category, int, error) {
	var categories []model.Category
	var count int

	conditions := []string{"is_deleted = FALSE"}
	args := map[string]interface{}{}

	if f.ParentID != nil {
		if *f.ParentID == "" {
			conditions = append(conditions, "parent_id IS NULL")
		} else {
			conditions = append(conditions, "parent_id = :parent_id")
			args["parent_id"] = *f.ParentID
		}
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	countQuery := "SELECT count(*) FROM categories" + whereClause
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

	query := "SELECT * FROM categories" + whereClause + " ORDER BY sort_order ASC, name ASC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &categories, args); err != nil {
		return nil, 0, err
	}

	return categories, count, nil
}

func (r *PGRepository) FindChildren(ctx context.Context, parentID string) ([]model.Category, error) {
	var categories []model.Category
	query := `
        SELECT * FROM categories
        WHERE parent_id = $1 AND is_deleted = FALSE
        ORDER BY sort_order ASC, name ASC
    `
	if err := r.DB.SelectContext(ctx, &categories, query, parentID); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *PGRepository) Update(ctx context.Context, c *model.Category) error {
	query := `
        UPDATE categories
        SET name = :name,
            description = :description,
            sort_order = :sort_order,
            updated_at = :updated_at
        WHERE id = :id AND is_deleted = FALSE
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}

// SoftDelete flags the category and its attribute bindings in one
// transaction so a later binding lookup never resurrects a dead category.
func (r *PGRepository) SoftDelete(ctx context.Context, id string) error {
	return database.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		now := time.Now()
		query := `UPDATE categories SET is_deleted = TRUE, updated_at = $2 WHERE id = $1 AND is_deleted = FALSE`
		if _, err := tx.ExecContext(ctx, query, id, now); err != nil {
			return err
		}
		query = `UPDATE category_attributes SET is_deleted = TRUE, updated_at = $2 WHERE category_id = $1 AND is_deleted = FALSE`
		_, err := tx.ExecContext(ctx, query, id, now)
		return err
	})
}

func (r *PGRepository) HasChildren(ctx context.Context, id string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM categories WHERE parent_id = $1 AND is_deleted = FALSE)`
	if err := r.DB.GetContext(ctx, &exists, query, id); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PGRepository) HasProducts(ctx context.Context, id string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM products WHERE category_id = $1 AND is_deleted = FALSE)`
	if err := r.DB.GetContext(ctx, &exists, query, id); err != nil {
		return false, err
	}
	return exists, nil
}

// Move flips the parent pointer after re-verifying, inside the transaction,
// that newParentID is not the category itself or one of its descendants.
// The walk is bounded by maxDepth so a corrupted cycle fails loudly instead
// of looping.
func (r *PGRepository) Move(ctx context.Context, categoryID string, newParentID *string, maxDepth int) error {
	return database.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		cur := newParentID
		for depth := 0; cur != nil; depth++ {
			if depth >= maxDepth {
				return apperr.New(apperr.CodeInvalidHierarchy,
					"ancestor walk exceeded depth %d; tree may be corrupted", maxDepth)
			}
			if *cur == categoryID {
				return apperr.New(apperr.CodeInvalidHierarchy,
					"category %s cannot be moved under its own descendant", categoryID)
			}

			var parent sql.NullString
			query := `SELECT parent_id FROM categories WHERE id = $1 AND is_deleted = FALSE FOR UPDATE`
			if err := tx.GetContext(ctx, &parent, query, *cur); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return apperr.NotFound("category", *cur)
				}
				return err
			}
			if !parent.Valid {
				break
			}
			p := parent.String
			cur = &p
		}

		query := `UPDATE categories SET parent_id = $2, updated_at = $3 WHERE id = $1 AND is_deleted = FALSE`
		_, err := tx.ExecContext(ctx, query, categoryID, newParentID, time.Now())
		return err
	})
}
