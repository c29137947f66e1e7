package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eliasbui/asia-shop/internal/apperr"
	"github.com/eliasbui/asia-shop/internal/model"
	"github.com/eliasbui/asia-shop/internal/product"
	"github.com/eliasbui/asia-shop/internal/product/dto"
	"github.com/eliasbui/asia-shop/pkg/cache"
	"github.com/eliasbui/asia-shop/pkg/logger"
	"github.com/eliasbui/asia-shop/pkg/search"
)

const (
	productIndex    = "products"
	productCacheKey = "catalog:product:"
	productCacheTTL = 10 * time.Minute
)

type productUseCase struct {
	repo       product.Repository
	schema     product.SchemaRegistry
	translator product.Translator
	cache      *cache.RedisClient
	es         *search.Client
	logger     logger.ZapLogger
}

func NewProductUseCase(repo product.Repository, schema product.SchemaRegistry, translator product.Translator, rc *cache.RedisClient, es *search.Client, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:       repo,
		schema:     schema,
		translator: translator,
		cache:      rc,
		es:         es,
		logger:     log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	shopExists, err := uc.repo.ShopExists(ctx, input.ShopID)
	if err != nil {
		return nil, err
	}
	if !shopExists {
		return nil, apperr.NotFound("shop", input.ShopID)
	}

	var categoryID *string
	if input.CategoryID != "" {
		exists, err := uc.repo.CategoryExists(ctx, input.CategoryID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperr.NotFound("category", input.CategoryID)
		}
		categoryID = &input.CategoryID
	}

	skuTaken, err := uc.repo.SKUExists(ctx, input.ShopID, input.SKU, "")
	if err != nil {
		return nil, err
	}
	if skuTaken {
		return nil, apperr.AlreadyExists("SKU %q already exists in shop %s", input.SKU, input.ShopID)
	}

	// All attribute validation happens before any write.
	id := uuid.New().String()
	var rows []model.ProductAttributeValue
	var attrIDs []string
	if len(input.Attributes) > 0 || categoryID != nil {
		rows, attrIDs, err = uc.validateAttributeSet(ctx, id, categoryID, input.Attributes)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	p := &model.Product{
		BaseModel: model.BaseModel{
			ID:        id,
			CreatedAt: now,
			UpdatedAt: now,
		},
		ShopID:     input.ShopID,
		CategoryID: categoryID,
		SKU:        input.SKU,
		Name:       input.Name,
		Status:     model.ProductActive,
	}
	if input.Description != "" {
		p.Description = &input.Description
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		if err := uc.repo.ReplaceValues(ctx, id, attrIDs, rows); err != nil {
			return nil, err
		}
	}

	uc.indexProduct(ctx, p)
	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id, locale string) (*model.Product, error) {
	// Only the canonical (untranslated) product is cached; localized reads
	// go through the resolver every time.
	if locale == "" {
		if p := uc.cachedProduct(ctx, id); p != nil {
			return p, nil
		}
	}

	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("product", id)
	}

	variants, err := uc.repo.FindVariantsByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Variants = variants

	if locale == "" {
		uc.cacheProduct(ctx, p)
		return p, nil
	}

	uc.localize(ctx, p, locale)
	return p, nil
}

func (uc *productUseCase) cachedProduct(ctx context.Context, id string) *model.Product {
	if uc.cache == nil {
		return nil
	}
	data, err := uc.cache.Client.Get(ctx, productCacheKey+id).Bytes()
	if err != nil {
		return nil
	}
	var p model.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil
	}
	return &p
}

func (uc *productUseCase) cacheProduct(ctx context.Context, p *model.Product) {
	if uc.cache == nil {
		return
	}
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := uc.cache.Client.Set(ctx, productCacheKey+p.ID, data, productCacheTTL).Err(); err != nil {
		uc.logger.Warn("failed to cache product", zap.String("product_id", p.ID), zap.Error(err))
	}
}

func (uc *productUseCase) invalidateProduct(ctx context.Context, id string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Client.Del(ctx, productCacheKey+id).Err(); err != nil {
		uc.logger.Warn("failed to invalidate product cache", zap.String("product_id", id), zap.Error(err))
	}
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("product", input.ID)
	}

	var categoryID *string
	if input.CategoryID != "" {
		exists, err := uc.repo.CategoryExists(ctx, input.CategoryID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperr.NotFound("category", input.CategoryID)
		}
		categoryID = &input.CategoryID
	}

	if input.SKU != p.SKU {
		skuTaken, err := uc.repo.SKUExists(ctx, p.ShopID, input.SKU, p.ID)
		if err != nil {
			return nil, err
		}
		if skuTaken {
			return nil, apperr.AlreadyExists("SKU %q already exists in shop %s", input.SKU, p.ShopID)
		}
	}

	// Moving a product to another category does not re-validate stored
	// attribute values; they survive as historical data.
	p.CategoryID = categoryID
	p.SKU = input.SKU
	p.Name = input.Name
	p.Description = nil
	if input.Description != "" {
		desc := input.Description
		p.Description = &desc
	}
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	uc.invalidateProduct(ctx, p.ID)
	uc.indexProduct(ctx, p)
	return p, nil
}

func (uc *productUseCase) UpdateStatus(ctx context.Context, id string, status model.ProductStatus) (*model.Product, error) {
	if !status.IsValid() {
		return nil, apperr.New(apperr.CodeInvalidInput, "unknown product status %q", status)
	}

	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("product", id)
	}

	p.Status = status
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	uc.invalidateProduct(ctx, p.ID)
	uc.indexProduct(ctx, p)
	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return apperr.NotFound("product", id)
	}

	// Attribute values and translations stay resolvable after the owner
	// is tombstoned.
	if err := uc.repo.SoftDelete(ctx, id); err != nil {
		return err
	}

	uc.invalidateProduct(ctx, id)
	if uc.es != nil {
		if err := uc.es.Delete(ctx, productIndex, id); err != nil {
			uc.logger.Warn("failed to remove product from search index",
				zap.String("product_id", id), zap.Error(err))
		}
	}
	return nil
}

func (uc *productUseCase) SearchProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	if filters.SearchQuery == "" || uc.es == nil {
		return uc.repo.FindAll(ctx, filters)
	}

	must := []map[string]interface{}{
		{
			"query_string": map[string]interface{}{
				"query":  "*" + filters.SearchQuery + "*",
				"fields": []string{"name^3", "sku", "description"},
			},
		},
	}
	if filters.ShopID != "" {
		must = append(must, map[string]interface{}{
			"term": map[string]interface{}{"shop_id": filters.ShopID},
		})
	}
	if filters.CategoryID != "" {
		must = append(must, map[string]interface{}{
			"term": map[string]interface{}{"category_id": filters.CategoryID},
		})
	}
	if filters.Status != "" {
		must = append(must, map[string]interface{}{
			"term": map[string]interface{}{"status": filters.Status},
		})
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"must": must},
		},
	}
	if filters.PageSize > 0 {
		query["from"] = (filters.Page - 1) * filters.PageSize
		query["size"] = filters.PageSize
	}

	ids, total, err := uc.es.Search(ctx, productIndex, query)
	if err != nil {
		uc.logger.Warn("search index unavailable, falling back to database", zap.Error(err))
		return uc.repo.FindAll(ctx, filters)
	}

	products, err := uc.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

type productDoc struct {
	ID          string  `json:"id"`
	ShopID      string  `json:"shop_id"`
	CategoryID  *string `json:"category_id"`
	SKU         string  `json:"sku"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
}

// indexProduct mirrors the product into the search index, best effort; the
// catalog stays consistent without it.
func (uc *productUseCase) indexProduct(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}
	doc := productDoc{
		ID:          p.ID,
		ShopID:      p.ShopID,
		CategoryID:  p.CategoryID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
	if err := uc.es.Index(ctx, productIndex, p.ID, doc); err != nil {
		uc.logger.Warn("failed to index product", zap.String("product_id", p.ID), zap.Error(err))
	}
}

func (uc *productUseCase) localize(ctx context.Context, p *model.Product, locale string) {
	if locale == "" || uc.translator == nil {
		return
	}
	fields, err := uc.translator.ResolveAll(ctx, model.EntityProduct, p.ID, locale)
	if err != nil {
		uc.logger.Warn("failed to resolve product translations",
			zap.String("product_id", p.ID), zap.Error(err))
		return
	}
	if name, ok := fields["name"]; ok {
		p.Name = name
	}
	if desc, ok := fields["description"]; ok {
		p.Description = &desc
	}
}
