package usecase

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/eliasbui/asia-shop/internal/apperr"
	"github.com/eliasbui/asia-shop/internal/model"
	"github.com/eliasbui/asia-shop/internal/product"
	"github.com/eliasbui/asia-shop/internal/product/dto"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...zap.Field) {}
func (nopLogger) Info(string, ...zap.Field)  {}
func (nopLogger) Warn(string, ...zap.Field)  {}
func (nopLogger) Error(string, ...zap.Field) {}
func (nopLogger) Fatal(string, ...zap.Field) {}
func (nopLogger) Sync() error                { return nil }

type fakeRepo struct {
	products map[string]*model.Product
	variants map[string]*model.ProductVariant
	values   []*model.ProductAttributeValue
	shops    map[string]bool
	cats     map[string]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		products: make(map[string]*model.Product),
		variants: make(map[string]*model.ProductVariant),
		shops:    map[string]bool{"shop1": true},
		cats:     map[string]bool{"cat1": true},
	}
}

func (r *fakeRepo) Create(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok || p.IsDeleted {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) FindByIDs(_ context.Context, ids []string) ([]model.Product, error) {
	var out []model.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok && !p.IsDeleted {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeRepo) FindAll(_ context.Context, _ *dto.ProductFilters) ([]model.Product, int, error) {
	var out []model.Product
	for _, p := range r.products {
		if !p.IsDeleted {
			out = append(out, *p)
		}
	}
	return out, len(out), nil
}

func (r *fakeRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeRepo) SoftDelete(_ context.Context, id string) error {
	if p, ok := r.products[id]; ok {
		p.IsDeleted = true
	}
	return nil
}

func (r *fakeRepo) SKUExists(_ context.Context, shopID, sku, excludeID string) (bool, error) {
	for _, p := range r.products {
		if !p.IsDeleted && p.ShopID == shopID && p.SKU == sku && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) ShopExists(_ context.Context, id string) (bool, error)     { return r.shops[id], nil }
func (r *fakeRepo) CategoryExists(_ context.Context, id string) (bool, error) { return r.cats[id], nil }

func (r *fakeRepo) CreateVariant(_ context.Context, v *model.ProductVariant) error {
	r.variants[v.ID] = v
	return nil
}

func (r *fakeRepo) FindVariantByID(_ context.Context, id string) (*model.ProductVariant, error) {
	v, ok := r.variants[id]
	if !ok || v.IsDeleted {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *fakeRepo) FindVariantsByProduct(_ context.Context, productID string) ([]model.ProductVariant, error) {
	var out []model.ProductVariant
	for _, v := range r.variants {
		if !v.IsDeleted && v.ProductID == productID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdateVariant(_ context.Context, v *model.ProductVariant) error {
	r.variants[v.ID] = v
	return nil
}

func (r *fakeRepo) SoftDeleteVariant(_ context.Context, id string) error {
	if v, ok := r.variants[id]; ok {
		v.IsDeleted = true
	}
	return nil
}

func (r *fakeRepo) VariantSKUExists(_ context.Context, productID, sku, excludeID string) (bool, error) {
	for _, v := range r.variants {
		if !v.IsDeleted && v.ProductID == productID && v.SKU == sku && v.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) FindValuesByProduct(_ context.Context, productID string) ([]model.ProductAttributeValue, error) {
	var out []model.ProductAttributeValue
	for _, v := range r.values {
		if !v.IsDeleted && v.ProductID == productID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *fakeRepo) FindValues(_ context.Context, productID, attributeID string) ([]model.ProductAttributeValue, error) {
	var out []model.ProductAttributeValue
	for _, v := range r.values {
		if !v.IsDeleted && v.ProductID == productID && v.AttributeID == attributeID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *fakeRepo) ReplaceValues(_ context.Context, productID string, attributeIDs []string, rows []model.ProductAttributeValue) error {
	replaced := make(map[string]bool, len(attributeIDs))
	for _, id := range attributeIDs {
		replaced[id] = true
	}
	for _, v := range r.values {
		if v.ProductID == productID && replaced[v.AttributeID] {
			v.IsDeleted = true
		}
	}
	for i := range rows {
		row := rows[i]
		r.values = append(r.values, &row)
	}
	return nil
}

func (r *fakeRepo) SoftDeleteValues(_ context.Context, productID, attributeID string) error {
	for _, v := range r.values {
		if v.ProductID == productID && v.AttributeID == attributeID {
			v.IsDeleted = true
		}
	}
	return nil
}

type fakeSchema struct {
	effective map[string][]model.Attribute
	allowed   map[string][]model.AttributeAllowedValue
}

func (s *fakeSchema) EffectiveAttributes(_ context.Context, categoryID string) ([]model.Attribute, error) {
	return s.effective[categoryID], nil
}

func (s *fakeSchema) GetAttribute(_ context.Context, id string) (*model.Attribute, error) {
	for _, attrs := range s.effective {
		for i := range attrs {
			if attrs[i].ID == id {
				return &attrs[i], nil
			}
		}
	}
	return nil, apperr.NotFound("attribute", id)
}

func (s *fakeSchema) AllowedValues(_ context.Context, attributeID string) ([]model.AttributeAllowedValue, error) {
	return s.allowed[attributeID], nil
}

type fakeTranslator struct {
	labels map[string]string // entityID|locale|field -> text
}

func (t *fakeTranslator) Resolve(_ context.Context, _ model.EntityType, entityID, locale, field string) (*string, error) {
	if v, ok := t.labels[entityID+"|"+locale+"|"+field]; ok {
		return &v, nil
	}
	return nil, nil
}

func (t *fakeTranslator) ResolveAll(_ context.Context, _ model.EntityType, entityID, locale string) (map[string]string, error) {
	out := make(map[string]string)
	for _, field := range []string{"name", "description"} {
		if v, ok := t.labels[entityID+"|"+locale+"|"+field]; ok {
			out[field] = v
		}
	}
	return out, nil
}

// colorSchema: category cat1 carries a required MULTISELECT "color" with
// allowed values Red, Black, Green, plus an optional NUMBER "weight".
func colorSchema() *fakeSchema {
	return &fakeSchema{
		effective: map[string][]model.Attribute{
			"cat1": {
				{
					BaseModel:  model.BaseModel{ID: "attr-color"},
					Code:       "color",
					InputType:  model.InputMultiSelect,
					DataType:   model.DataString,
					IsRequired: true,
				},
				{
					BaseModel: model.BaseModel{ID: "attr-weight"},
					Code:      "weight",
					InputType: model.InputNumber,
					DataType:  model.DataNumber,
				},
			},
		},
		allowed: map[string][]model.AttributeAllowedValue{
			"attr-color": {
				{BaseModel: model.BaseModel{ID: "val-red"}, AttributeID: "attr-color", Value: "Red"},
				{BaseModel: model.BaseModel{ID: "val-black"}, AttributeID: "attr-color", Value: "Black"},
				{BaseModel: model.BaseModel{ID: "val-green"}, AttributeID: "attr-color", Value: "Green"},
			},
		},
	}
}

func seedProduct(repo *fakeRepo, id string, categoryID *string) {
	repo.products[id] = &model.Product{
		BaseModel:  model.BaseModel{ID: id, CreatedAt: time.Now()},
		ShopID:     "shop1",
		CategoryID: categoryID,
		SKU:        "SKU-" + id,
		Name:       id,
		Status:     model.ProductActive,
	}
}

func newUC(repo *fakeRepo, schema product.SchemaRegistry, tr product.Translator) product.UseCase {
	return NewProductUseCase(repo, schema, tr, nil, nil, nopLogger{})
}

func strPtr(s string) *string { return &s }

func TestSetAttributeValue(t *testing.T) {
	tests := []struct {
		name        string
		productCat  *string
		attributeID string
		value       interface{}
		wantCode    apperr.Code
		wantRows    int
	}{
		{
			name:        "single allowed option",
			productCat:  strPtr("cat1"),
			attributeID: "attr-color",
			value:       "val-red",
			wantRows:    1,
		},
		{
			name:        "multiselect array",
			productCat:  strPtr("cat1"),
			attributeID: "attr-color",
			value:       []interface{}{"val-red", "val-black"},
			wantRows:    2,
		},
		{
			name:        "option outside the allowed set",
			productCat:  strPtr("cat1"),
			attributeID: "attr-color",
			value:       "val-purple",
			wantCode:    apperr.CodeAttributeValueNotAllowed,
		},
		{
			name:        "duplicate selection",
			productCat:  strPtr("cat1"),
			attributeID: "attr-color",
			value:       []interface{}{"val-red", "val-red"},
			wantCode:    apperr.CodeInvalidAttributeValue,
		},
		{
			name:        "attribute not bound to category",
			productCat:  strPtr("cat1"),
			attributeID: "attr-ghost",
			value:       "x",
			wantCode:    apperr.CodeAttributeNotApplicable,
		},
		{
			name:        "product without category",
			productCat:  nil,
			attributeID: "attr-color",
			value:       "val-red",
			wantCode:    apperr.CodeAttributeNotApplicable,
		},
		{
			name:        "number with wrong kind",
			productCat:  strPtr("cat1"),
			attributeID: "attr-weight",
			value:       "heavy",
			wantCode:    apperr.CodeInvalidAttributeValue,
		},
		{
			name:        "array on single-valued attribute",
			productCat:  strPtr("cat1"),
			attributeID: "attr-weight",
			value:       []interface{}{1.5, 2.5},
			wantCode:    apperr.CodeInvalidAttributeValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			seedProduct(repo, "p1", tt.productCat)
			uc := newUC(repo, colorSchema(), nil)

			attrs, err := uc.SetAttributeValue(context.Background(), "p1", tt.attributeID, tt.value)
			if tt.wantCode != "" {
				if !apperr.IsCode(err, tt.wantCode) {
					t.Fatalf("SetAttributeValue() error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("SetAttributeValue() unexpected error: %v", err)
			}
			if len(attrs) != 1 {
				t.Fatalf("len(attrs) = %d, want 1", len(attrs))
			}
			if len(attrs[0].Values) != tt.wantRows {
				t.Errorf("stored rows = %d, want %d", len(attrs[0].Values), tt.wantRows)
			}
		})
	}
}

func TestSetAttributeValue_ReplacesMultiselect(t *testing.T) {
	repo := newFakeRepo()
	seedProduct(repo, "p1", strPtr("cat1"))
	uc := newUC(repo, colorSchema(), nil)

	if _, err := uc.SetAttributeValue(context.Background(), "p1", "attr-color", []interface{}{"val-red", "val-black"}); err != nil {
		t.Fatalf("first set: %v", err)
	}
	attrs, err := uc.SetAttributeValue(context.Background(), "p1", "attr-color", []interface{}{"val-green"})
	if err != nil {
		t.Fatalf("second set: %v", err)
	}
	if len(attrs[0].Values) != 1 {
		t.Fatalf("stored rows = %d, want 1 (old selection replaced)", len(attrs[0].Values))
	}
	if attrs[0].Values[0].ValueOptionID == nil || *attrs[0].Values[0].ValueOptionID != "val-green" {
		t.Errorf("stored option = %v, want val-green", attrs[0].Values[0].ValueOptionID)
	}
}

func TestUpdateAttributes_RequiredEnforcement(t *testing.T) {
	repo := newFakeRepo()
	seedProduct(repo, "p1", strPtr("cat1"))
	uc := newUC(repo, colorSchema(), nil)

	// color is required; a batch that omits it fails and writes nothing.
	_, err := uc.UpdateAttributes(context.Background(), "p1", []dto.AttributeValueInput{
		{AttributeID: "attr-weight", Value: 1.5},
	})
	if !apperr.IsCode(err, apperr.CodeRequiredAttributeMissing) {
		t.Fatalf("UpdateAttributes() error = %v, want REQUIRED_ATTRIBUTE_MISSING", err)
	}
	if stored, _ := repo.FindValuesByProduct(context.Background(), "p1"); len(stored) != 0 {
		t.Fatalf("stored rows = %d after failed batch, want 0", len(stored))
	}

	attrs, err := uc.UpdateAttributes(context.Background(), "p1", []dto.AttributeValueInput{
		{AttributeID: "attr-color", Value: "val-red"},
		{AttributeID: "attr-weight", Value: 1.5},
	})
	if err != nil {
		t.Fatalf("UpdateAttributes() unexpected error: %v", err)
	}
	if len(attrs) != 2 {
		t.Fatalf("len(attrs) = %d, want 2", len(attrs))
	}
}

func TestUpdateAttributes_AllOrNothing(t *testing.T) {
	repo := newFakeRepo()
	seedProduct(repo, "p1", strPtr("cat1"))
	uc := newUC(repo, colorSchema(), nil)

	// One invalid value poisons the whole batch.
	_, err := uc.UpdateAttributes(context.Background(), "p1", []dto.AttributeValueInput{
		{AttributeID: "attr-color", Value: "val-red"},
		{AttributeID: "attr-weight", Value: "not-a-number"},
	})
	if !apperr.IsCode(err, apperr.CodeInvalidAttributeValue) {
		t.Fatalf("UpdateAttributes() error = %v, want INVALID_ATTRIBUTE_VALUE", err)
	}
	if stored, _ := repo.FindValuesByProduct(context.Background(), "p1"); len(stored) != 0 {
		t.Fatalf("stored rows = %d after failed batch, want 0", len(stored))
	}
}

func TestRemoveAttributeValue_Idempotent(t *testing.T) {
	repo := newFakeRepo()
	seedProduct(repo, "p1", strPtr("cat1"))
	uc := newUC(repo, colorSchema(), nil)

	if _, err := uc.SetAttributeValue(context.Background(), "p1", "attr-color", "val-red"); err != nil {
		t.Fatalf("set: %v", err)
	}

	if err := uc.RemoveAttributeValue(context.Background(), "p1", "attr-color"); err != nil {
		t.Fatalf("first remove: %v", err)
	}
	// Removing an absent value stays a no-op.
	if err := uc.RemoveAttributeValue(context.Background(), "p1", "attr-color"); err != nil {
		t.Fatalf("second remove: %v", err)
	}
	if stored, _ := repo.FindValues(context.Background(), "p1", "attr-color"); len(stored) != 0 {
		t.Fatalf("stored rows = %d, want 0", len(stored))
	}
}

func TestProductAttributes_LocalizedOptionLabel(t *testing.T) {
	repo := newFakeRepo()
	seedProduct(repo, "p1", strPtr("cat1"))
	tr := &fakeTranslator{labels: map[string]string{"val-red|fr|name": "Rouge"}}
	uc := newUC(repo, colorSchema(), tr)

	if _, err := uc.SetAttributeValue(context.Background(), "p1", "attr-color", "val-red"); err != nil {
		t.Fatalf("set: %v", err)
	}

	attrs, err := uc.ProductAttributes(context.Background(), "p1", "fr")
	if err != nil {
		t.Fatalf("ProductAttributes: %v", err)
	}
	if len(attrs) != 1 || len(attrs[0].DisplayValues) != 1 {
		t.Fatalf("attrs = %+v, want one attribute with one display value", attrs)
	}
	if attrs[0].DisplayValues[0] != "Rouge" {
		t.Errorf("display value = %q, want Rouge", attrs[0].DisplayValues[0])
	}

	// Without a locale the canonical allowed-value text is used.
	attrs, err = uc.ProductAttributes(context.Background(), "p1", "")
	if err != nil {
		t.Fatalf("ProductAttributes: %v", err)
	}
	if attrs[0].DisplayValues[0] != "Red" {
		t.Errorf("display value = %q, want Red", attrs[0].DisplayValues[0])
	}
}

func TestCreateProduct(t *testing.T) {
	repo := newFakeRepo()
	uc := newUC(repo, colorSchema(), nil)

	input := &dto.CreateProductInput{
		ShopID:     "shop1",
		CategoryID: "cat1",
		SKU:        "TS-001",
		Name:       "T-Shirt",
		Attributes: []dto.AttributeValueInput{
			{AttributeID: "attr-color", Value: "val-red"},
		},
	}
	p, err := uc.CreateProduct(context.Background(), input)
	if err != nil {
		t.Fatalf("CreateProduct() unexpected error: %v", err)
	}
	if p.Status != model.ProductActive {
		t.Errorf("status = %s, want ACTIVE", p.Status)
	}
	if stored, _ := repo.FindValuesByProduct(context.Background(), p.ID); len(stored) != 1 {
		t.Errorf("stored attribute rows = %d, want 1", len(stored))
	}

	// Same SKU in the same shop is a conflict.
	if _, err := uc.CreateProduct(context.Background(), input); !apperr.IsCode(err, apperr.CodeAlreadyExists) {
		t.Fatalf("duplicate SKU error = %v, want ALREADY_EXISTS", err)
	}

	input.ShopID = "ghost"
	if _, err := uc.CreateProduct(context.Background(), input); !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Fatalf("unknown shop error = %v, want NOT_FOUND", err)
	}
}

func TestCreateProduct_RequiredMissing(t *testing.T) {
	repo := newFakeRepo()
	uc := newUC(repo, colorSchema(), nil)

	_, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		ShopID:     "shop1",
		CategoryID: "cat1",
		SKU:        "TS-002",
		Name:       "T-Shirt",
	})
	if !apperr.IsCode(err, apperr.CodeRequiredAttributeMissing) {
		t.Fatalf("CreateProduct() error = %v, want REQUIRED_ATTRIBUTE_MISSING", err)
	}
	if len(repo.products) != 0 {
		t.Fatalf("product persisted despite failed validation")
	}
}
