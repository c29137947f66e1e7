package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/eliasbui/asia-shop/internal/model"
	"github.com/eliasbui/asia-shop/internal/shop/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, s *model.Shop) error {
	query := `
        INSERT INTO shops (id, name, description, address, phone, email, website, logo_url, is_deleted, created_at, updated_at)
        VALUES (:id, :name, :description, :address, :phone, :email, :website, :logo_url, :is_deleted, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, s)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Shop, error) {
	var shop model.Shop
	query := `SELECT * FROM shops WHERE id = $1 AND is_deleted = FALSE LIMIT 1`
	err := r.DB.GetContext(ctx, &shop, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &shop, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ShopFilters) ([]model.Shop, int, error) {
	var shops []model.Shop
	var count int

	conditions := []string{"is_deleted = FALSE"}
	args := map[string]interface{}{}

	if f.SearchQuery != "" {
		conditions = append(conditions, "(name ILIKE :search OR description ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	countQuery := "SELECT count(*) FROM shops" + whereClause
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

	query := "SELECT * FROM shops" + whereClause + " ORDER BY name ASC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &shops, args); err != nil {
		return nil, 0, err
	}
	return shops, count, nil
}

func (r *PGRepository) Update(ctx context.Context, s *model.Shop) error {
	query := `
        UPDATE shops
        SET name = :name,
            description = :description,
            address = :address,
            phone = :phone,
            email = :email,
            website = :website,
            logo_url = :logo_url,
            updated_at = :updated_at
        WHERE id = :id AND is_deleted = FALSE
    `
	_, err := r.DB.NamedExecContext(ctx, query, s)
	return err
}

func (r *PGRepository) SoftDelete(ctx context.Context, id string) error {
	query := `UPDATE shops SET is_deleted = TRUE, updated_at = $2 WHERE id = $1 AND is_deleted = FALSE`
	_, err := r.DB.ExecContext(ctx, query, id, time.Now())
	return err
}

func (r *PGRepository) CountProductsByStatus(ctx context.Context, shopID string) (map[string]int, error) {
	query := `
        SELECT status, count(*) AS total FROM products
        WHERE shop_id = $1 AND is_deleted = FALSE
        GROUP BY status
    `
	rows, err := r.DB.QueryxContext(ctx, query, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var total int
		if err := rows.Scan(&status, &total); err != nil {
			return nil, err
		}
		counts[status] = total
	}
	return counts, rows.Err()
}

func (r *PGRepository) CountCategoriesUsed(ctx context.Context, shopID string) (int, error) {
	var count int
	query := `
        SELECT count(DISTINCT category_id) FROM products
        WHERE shop_id = $1 AND category_id IS NOT NULL AND is_deleted = FALSE
    `
	if err := r.DB.GetContext(ctx, &count, query, shopID); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PGRepository) FindCategoryIDsUsed(ctx context.Context, shopID string) ([]string, error) {
	var ids []string
	query := `
        SELECT DISTINCT category_id FROM products
        WHERE shop_id = $1 AND category_id IS NOT NULL AND is_deleted = FALSE
    `
	if err := r.DB.SelectContext(ctx, &ids, query, shopID); err != nil {
		return nil, err
	}
	return ids, nil
}
