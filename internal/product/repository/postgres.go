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
	"github.com/eliasbui/asia-shop/internal/product/dto"
	"github.com/eliasbui/asia-shop/pkg/database"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (id, shop_id, category_id, sku, name, description, status, is_deleted, created_at, updated_at)
        VALUES (:id, :shop_id, :category_id, :sku, :name, :description, :status, :is_deleted, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	query := `SELECT * FROM products WHERE id = $1 AND is_deleted = FALSE LIMIT 1`
	err := r.DB.GetContext(ctx, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT * FROM products WHERE id IN (?) AND is_deleted = FALSE`, ids)
	if err != nil {
		return nil, err
	}
	query = r.DB.Rebind(query)

	var products []model.Product
	if err := r.DB.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, err
	}

	// Preserve the order of ids (search relevance).
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	ordered := make([]model.Product, 0, len(products))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	var products []model.Product
	var count int

	conditions := []string{"is_deleted = FALSE"}
	args := map[string]interface{}{}

	if f.ShopID != "" {
		conditions = append(conditions, "shop_id = :shop_id")
		args["shop_id"] = f.ShopID
	}
	if f.CategoryID != "" {
		conditions = append(conditions, "category_id = :category_id")
		args["category_id"] = f.CategoryID
	}
	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "(name ILIKE :search OR sku ILIKE :search OR description ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	countQuery := "SELECT count(*) FROM products" + whereClause
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

	query := "SELECT * FROM products" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &products, args); err != nil {
		return nil, 0, err
	}
	return products, count, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products
        SET category_id = :category_id,
            sku = :sku,
            name = :name,
            description = :description,
            status = :status,
            updated_at = :updated_at
        WHERE id = :id AND is_deleted = FALSE
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) SoftDelete(ctx context.Context, id string) error {
	query := `UPDATE products SET is_deleted = TRUE, updated_at = $2 WHERE id = $1 AND is_deleted = FALSE`
	_, err := r.DB.ExecContext(ctx, query, id, time.Now())
	return err
}

func (r *PGRepository) SKUExists(ctx context.Context, shopID, sku, excludeID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM products WHERE shop_id = $1 AND sku = $2 AND id != $3 AND is_deleted = FALSE)`
	if err := r.DB.GetContext(ctx, &exists, query, shopID, sku, excludeID); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PGRepository) ShopExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM shops WHERE id = $1 AND is_deleted = FALSE)`
	if err := r.DB.GetContext(ctx, &exists, query, id); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PGRepository) CategoryExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1 AND is_deleted = FALSE)`
	if err := r.DB.GetContext(ctx, &exists, query, id); err != nil {
		return false, err
	}
	return exists, nil
}

// Variants

func (r *PGRepository) CreateVariant(ctx context.Context, v *model.ProductVariant) error {
	query := `
        INSERT INTO product_variants (id, product_id, sku, name, price, compare_price, weight, barcode, image_url, position, status, is_deleted, created_at, updated_at)
        VALUES (:id, :product_id, :sku, :name, :price, :compare_price, :weight, :barcode, :image_url, :position, :status, :is_deleted, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, v)
	return err
}

func (r *PGRepository) FindVariantByID(ctx context.Context, id string) (*model.ProductVariant, error) {
	var variant model.ProductVariant
	query := `SELECT * FROM product_variants WHERE id = $1 AND is_deleted = FALSE LIMIT 1`
	err := r.DB.GetContext(ctx, &variant, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &variant, nil
}

func (r *PGRepository) FindVariantsByProduct(ctx context.Context, productID string) ([]model.ProductVariant, error) {
	var variants []model.ProductVariant
	query := `
        SELECT * FROM product_variants
        WHERE product_id = $1 AND is_deleted = FALSE
        ORDER BY position ASC, name ASC
    `
	if err := r.DB.SelectContext(ctx, &variants, query, productID); err != nil {
		return nil, err
	}
	return variants, nil
}

func (r *PGRepository) UpdateVariant(ctx context.Context, v *model.ProductVariant) error {
	query := `
        UPDATE product_variants
        SET sku = :sku,
            name = :name,
            price = :price,
            compare_price = :compare_price,
            weight = :weight,
            barcode = :barcode,
            image_url = :image_url,
            position = :position,
            status = :status,
            updated_at = :updated_at
        WHERE id = :id AND is_deleted = FALSE
    `
	_, err := r.DB.NamedExecContext(ctx, query, v)
	return err
}

func (r *PGRepository) SoftDeleteVariant(ctx context.Context, id string) error {
	query := `UPDATE product_variants SET is_deleted = TRUE, updated_at = $2 WHERE id = $1 AND is_deleted = FALSE`
	_, err := r.DB.ExecContext(ctx, query, id, time.Now())
	return err
}

func (r *PGRepository) VariantSKUExists(ctx context.Context, productID, sku, excludeID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM product_variants WHERE product_id = $1 AND sku = $2 AND id != $3 AND is_deleted = FALSE)`
	if err := r.DB.GetContext(ctx, &exists, query, productID, sku, excludeID); err != nil {
		return false, err
	}
	return exists, nil
}

// Attribute values

func (r *PGRepository) FindValuesByProduct(ctx context.Context, productID string) ([]model.ProductAttributeValue, error) {
	var values []model.ProductAttributeValue
	query := `
        SELECT * FROM product_attribute_values
        WHERE product_id = $1 AND is_deleted = FALSE
        ORDER BY attribute_id ASC, created_at ASC
    `
	if err := r.DB.SelectContext(ctx, &values, query, productID); err != nil {
		return nil, err
	}
	return values, nil
}

func (r *PGRepository) FindValues(ctx context.Context, productID, attributeID string) ([]model.ProductAttributeValue, error) {
	var values []model.ProductAttributeValue
	query := `
        SELECT * FROM product_attribute_values
        WHERE product_id = $1 AND attribute_id = $2 AND is_deleted = FALSE
        ORDER BY created_at ASC
    `
	if err := r.DB.SelectContext(ctx, &values, query, productID, attributeID); err != nil {
		return nil, err
	}
	return values, nil
}

func (r *PGRepository) ReplaceValues(ctx context.Context, productID string, attributeIDs []string, rows []model.ProductAttributeValue) error {
	return database.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		if len(attributeIDs) > 0 {
			query, args, err := sqlx.In(`
                UPDATE product_attribute_values SET is_deleted = TRUE, updated_at = ?
                WHERE product_id = ? AND attribute_id IN (?) AND is_deleted = FALSE
            `, time.Now(), productID, attributeIDs)
			if err != nil {
				return err
			}
			query = tx.Rebind(query)
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return err
			}
		}

		insertQuery := `
            INSERT INTO product_attribute_values (id, product_id, attribute_id, value_string, value_number, value_boolean, value_date, value_option_id, is_deleted, created_at, updated_at)
            VALUES (:id, :product_id, :attribute_id, :value_string, :value_number, :value_boolean, :value_date, :value_option_id, :is_deleted, :created_at, :updated_at)
        `
		for i := range rows {
			if _, err := tx.NamedExecContext(ctx, insertQuery, &rows[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PGRepository) SoftDeleteValues(ctx context.Context, productID, attributeID string) error {
	query := `
        UPDATE product_attribute_values SET is_deleted = TRUE, updated_at = $3
        WHERE product_id = $1 AND attribute_id = $2 AND is_deleted = FALSE
    `
	_, err := r.DB.ExecContext(ctx, query, productID, attributeID, time.Now())
	return err
}
