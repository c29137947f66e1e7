package usecase

import (
	"context"
	"sort"
	"testing"

	"go.uber.org/zap"

	"github.com/eliasbui/asia-shop/internal/apperr"
	"github.com/eliasbui/asia-shop/internal/attribute/dto"
	"github.com/eliasbui/asia-shop/internal/model"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...zap.Field) {}
func (nopLogger) Info(string, ...zap.Field)  {}
func (nopLogger) Warn(string, ...zap.Field)  {}
func (nopLogger) Error(string, ...zap.Field) {}
func (nopLogger) Fatal(string, ...zap.Field) {}
func (nopLogger) Sync() error                { return nil }

type fakeRepo struct {
	groups     map[string]*model.AttributeGroup
	attributes map[string]*model.Attribute
	values     map[string]*model.AttributeAllowedValue
	bindings   []*model.CategoryAttribute
	categories map[string]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		groups:     make(map[string]*model.AttributeGroup),
		attributes: make(map[string]*model.Attribute),
		values:     make(map[string]*model.AttributeAllowedValue),
		categories: make(map[string]bool),
	}
}

func (r *fakeRepo) CreateGroup(_ context.Context, g *model.AttributeGroup) error {
	r.groups[g.ID] = g
	return nil
}

func (r *fakeRepo) FindGroupByID(_ context.Context, id string) (*model.AttributeGroup, error) {
	g, ok := r.groups[id]
	if !ok || g.IsDeleted {
		return nil, nil
	}
	return g, nil
}

func (r *fakeRepo) FindAllGroups(_ context.Context) ([]model.AttributeGroup, error) {
	var out []model.AttributeGroup
	for _, g := range r.groups {
		if !g.IsDeleted {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (r *fakeRepo) GroupNameExists(_ context.Context, name, excludeID string) (bool, error) {
	for _, g := range r.groups {
		if !g.IsDeleted && g.Name == name && g.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) CreateAttribute(_ context.Context, a *model.Attribute) error {
	r.attributes[a.ID] = a
	return nil
}

func (r *fakeRepo) FindAttributeByID(_ context.Context, id string) (*model.Attribute, error) {
	a, ok := r.attributes[id]
	if !ok || a.IsDeleted {
		return nil, nil
	}
	return a, nil
}

func (r *fakeRepo) FindAttributes(_ context.Context, _ *dto.AttributeFilters) ([]model.Attribute, int, error) {
	var out []model.Attribute
	for _, a := range r.attributes {
		if !a.IsDeleted {
			out = append(out, *a)
		}
	}
	return out, len(out), nil
}

func (r *fakeRepo) UpdateAttribute(_ context.Context, a *model.Attribute) error {
	r.attributes[a.ID] = a
	return nil
}

func (r *fakeRepo) SoftDeleteAttribute(_ context.Context, id string) error {
	if a, ok := r.attributes[id]; ok {
		a.IsDeleted = true
	}
	return nil
}

func (r *fakeRepo) CodeExists(_ context.Context, code, excludeID string) (bool, error) {
	for _, a := range r.attributes {
		if !a.IsDeleted && a.Code == code && a.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) CreateAllowedValue(_ context.Context, v *model.AttributeAllowedValue) error {
	r.values[v.ID] = v
	return nil
}

func (r *fakeRepo) FindAllowedValueByID(_ context.Context, id string) (*model.AttributeAllowedValue, error) {
	v, ok := r.values[id]
	if !ok || v.IsDeleted {
		return nil, nil
	}
	return v, nil
}

func (r *fakeRepo) FindAllowedValues(_ context.Context, attributeID string) ([]model.AttributeAllowedValue, error) {
	var out []model.AttributeAllowedValue
	for _, v := range r.values {
		if !v.IsDeleted && v.AttributeID == attributeID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdateAllowedValue(_ context.Context, v *model.AttributeAllowedValue) error {
	r.values[v.ID] = v
	return nil
}

func (r *fakeRepo) SoftDeleteAllowedValue(_ context.Context, id string) error {
	if v, ok := r.values[id]; ok {
		v.IsDeleted = true
	}
	return nil
}

func (r *fakeRepo) AllowedValueExists(_ context.Context, attributeID, value, excludeID string) (bool, error) {
	for _, v := range r.values {
		if !v.IsDeleted && v.AttributeID == attributeID && v.Value == value && v.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) CreateBinding(_ context.Context, b *model.CategoryAttribute) error {
	r.bindings = append(r.bindings, b)
	return nil
}

func (r *fakeRepo) FindBinding(_ context.Context, categoryID, attributeID string) (*model.CategoryAttribute, error) {
	for _, b := range r.bindings {
		if !b.IsDeleted && b.CategoryID == categoryID && b.AttributeID == attributeID {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) FindBindingsByAttribute(_ context.Context, attributeID string) ([]model.CategoryAttribute, error) {
	var out []model.CategoryAttribute
	for _, b := range r.bindings {
		if !b.IsDeleted && b.AttributeID == attributeID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeRepo) SoftDeleteBinding(_ context.Context, categoryID, attributeID string) error {
	for _, b := range r.bindings {
		if !b.IsDeleted && b.CategoryID == categoryID && b.AttributeID == attributeID {
			b.IsDeleted = true
		}
	}
	return nil
}

func (r *fakeRepo) SoftDeleteBindingsByAttribute(_ context.Context, attributeID string) error {
	for _, b := range r.bindings {
		if b.AttributeID == attributeID {
			b.IsDeleted = true
		}
	}
	return nil
}

func (r *fakeRepo) FindAttributesByCategory(_ context.Context, categoryID string) ([]model.Attribute, error) {
	var live []*model.CategoryAttribute
	for _, b := range r.bindings {
		if !b.IsDeleted && b.CategoryID == categoryID {
			live = append(live, b)
		}
	}
	sort.Slice(live, func(i, j int) bool { return live[i].DisplayOrder < live[j].DisplayOrder })

	var out []model.Attribute
	for _, b := range live {
		if a, ok := r.attributes[b.AttributeID]; ok && !a.IsDeleted {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeRepo) CategoryExists(_ context.Context, id string) (bool, error) {
	return r.categories[id], nil
}

func seedGroup(r *fakeRepo) string {
	r.groups["g1"] = &model.AttributeGroup{BaseModel: model.BaseModel{ID: "g1"}, Name: "General"}
	return "g1"
}

func TestCreateAttribute(t *testing.T) {
	tests := []struct {
		name     string
		input    dto.CreateAttributeInput
		wantCode apperr.Code
	}{
		{
			name:  "valid select attribute",
			input: dto.CreateAttributeInput{Code: "color", InputType: model.InputSelect, DataType: model.DataString, GroupID: "g1"},
		},
		{
			name:     "unknown input type",
			input:    dto.CreateAttributeInput{Code: "x", InputType: "RADIO", DataType: model.DataString, GroupID: "g1"},
			wantCode: apperr.CodeInvalidInput,
		},
		{
			name:     "select with number storage",
			input:    dto.CreateAttributeInput{Code: "x", InputType: model.InputSelect, DataType: model.DataNumber, GroupID: "g1"},
			wantCode: apperr.CodeInvalidInput,
		},
		{
			name:     "unknown group",
			input:    dto.CreateAttributeInput{Code: "x", InputType: model.InputText, DataType: model.DataString, GroupID: "ghost"},
			wantCode: apperr.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			seedGroup(repo)
			uc := NewAttributeUseCase(repo, nil, nopLogger{})

			attr, err := uc.CreateAttribute(context.Background(), &tt.input)
			if tt.wantCode != "" {
				if !apperr.IsCode(err, tt.wantCode) {
					t.Fatalf("CreateAttribute() error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateAttribute() unexpected error: %v", err)
			}
			if attr.ID == "" {
				t.Error("attribute has no id")
			}
		})
	}
}

func TestCreateAttribute_DuplicateCode(t *testing.T) {
	repo := newFakeRepo()
	seedGroup(repo)
	uc := NewAttributeUseCase(repo, nil, nopLogger{})

	input := &dto.CreateAttributeInput{Code: "color", InputType: model.InputText, DataType: model.DataString, GroupID: "g1"}
	if _, err := uc.CreateAttribute(context.Background(), input); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := uc.CreateAttribute(context.Background(), input); !apperr.IsCode(err, apperr.CodeAlreadyExists) {
		t.Fatalf("second create error = %v, want ALREADY_EXISTS", err)
	}

	// A tombstoned attribute frees its code.
	var id string
	for k := range repo.attributes {
		if !repo.attributes[k].IsDeleted {
			id = k
		}
	}
	if err := uc.DeleteAttribute(context.Background(), id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := uc.CreateAttribute(context.Background(), input); err != nil {
		t.Fatalf("create after delete: %v", err)
	}
}

func TestBindAttribute(t *testing.T) {
	repo := newFakeRepo()
	seedGroup(repo)
	repo.categories["cat1"] = true
	uc := NewAttributeUseCase(repo, nil, nopLogger{})

	mk := func(code string) string {
		attr, err := uc.CreateAttribute(context.Background(), &dto.CreateAttributeInput{
			Code: code, InputType: model.InputText, DataType: model.DataString, GroupID: "g1",
		})
		if err != nil {
			t.Fatalf("create %s: %v", code, err)
		}
		return attr.ID
	}
	first := mk("material")
	second := mk("origin")

	// Bind in reverse display order; the effective set must come back
	// ordered by the binding's display order, not insertion order.
	if err := uc.BindAttribute(context.Background(), "cat1", second, 2); err != nil {
		t.Fatalf("bind second: %v", err)
	}
	if err := uc.BindAttribute(context.Background(), "cat1", first, 1); err != nil {
		t.Fatalf("bind first: %v", err)
	}

	if err := uc.BindAttribute(context.Background(), "cat1", first, 5); !apperr.IsCode(err, apperr.CodeAlreadyExists) {
		t.Fatalf("duplicate bind error = %v, want ALREADY_EXISTS", err)
	}
	if err := uc.BindAttribute(context.Background(), "ghost", first, 1); !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Fatalf("unknown category error = %v, want NOT_FOUND", err)
	}
	if err := uc.BindAttribute(context.Background(), "cat1", "ghost", 1); !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Fatalf("unknown attribute error = %v, want NOT_FOUND", err)
	}

	attrs, err := uc.EffectiveAttributes(context.Background(), "cat1")
	if err != nil {
		t.Fatalf("EffectiveAttributes: %v", err)
	}
	if len(attrs) != 2 || attrs[0].Code != "material" || attrs[1].Code != "origin" {
		t.Fatalf("effective set = %+v, want [material origin]", attrs)
	}

	if err := uc.UnbindAttribute(context.Background(), "cat1", first); err != nil {
		t.Fatalf("unbind: %v", err)
	}
	if err := uc.UnbindAttribute(context.Background(), "cat1", first); !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Fatalf("second unbind error = %v, want NOT_FOUND", err)
	}

	attrs, err = uc.EffectiveAttributes(context.Background(), "cat1")
	if err != nil {
		t.Fatalf("EffectiveAttributes after unbind: %v", err)
	}
	if len(attrs) != 1 || attrs[0].Code != "origin" {
		t.Fatalf("effective set after unbind = %+v, want [origin]", attrs)
	}
}

func TestAllowedValues(t *testing.T) {
	repo := newFakeRepo()
	seedGroup(repo)
	uc := NewAttributeUseCase(repo, nil, nopLogger{})

	sel, err := uc.CreateAttribute(context.Background(), &dto.CreateAttributeInput{
		Code: "color", InputType: model.InputSelect, DataType: model.DataString, GroupID: "g1",
	})
	if err != nil {
		t.Fatalf("create select: %v", err)
	}
	text, err := uc.CreateAttribute(context.Background(), &dto.CreateAttributeInput{
		Code: "note", InputType: model.InputText, DataType: model.DataString, GroupID: "g1",
	})
	if err != nil {
		t.Fatalf("create text: %v", err)
	}

	if _, err := uc.AddAllowedValue(context.Background(), text.ID, &dto.AllowedValueInput{Value: "Red"}); !apperr.IsCode(err, apperr.CodeInvalidInput) {
		t.Fatalf("allowed value on text attribute error = %v, want INVALID_INPUT", err)
	}

	if _, err := uc.AddAllowedValue(context.Background(), sel.ID, &dto.AllowedValueInput{Value: "Red"}); err != nil {
		t.Fatalf("add Red: %v", err)
	}
	if _, err := uc.AddAllowedValue(context.Background(), sel.ID, &dto.AllowedValueInput{Value: "Red"}); !apperr.IsCode(err, apperr.CodeAlreadyExists) {
		t.Fatalf("duplicate value error = %v, want ALREADY_EXISTS", err)
	}
}
