package usecase

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/eliasbui/asia-shop/internal/apperr"
	"github.com/eliasbui/asia-shop/internal/category/dto"
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
	categories map[string]*model.Category
	products   map[string]bool // categoryID -> has products
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		categories: make(map[string]*model.Category),
		products:   make(map[string]bool),
	}
}

func (r *fakeRepo) add(id string, parentID *string) *model.Category {
	cat := &model.Category{
		BaseModel: model.BaseModel{ID: id},
		ParentID:  parentID,
		Name:      id,
	}
	r.categories[id] = cat
	return cat
}

func (r *fakeRepo) Create(_ context.Context, cat *model.Category) error {
	r.categories[cat.ID] = cat
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*model.Category, error) {
	cat, ok := r.categories[id]
	if !ok || cat.IsDeleted {
		return nil, nil
	}
	cp := *cat
	return &cp, nil
}

func (r *fakeRepo) FindAll(_ context.Context, _ *dto.CategoryFilters) ([]model.Category, int, error) {
	var out []model.Category
	for _, cat := range r.categories {
		if !cat.IsDeleted {
			out = append(out, *cat)
		}
	}
	return out, len(out), nil
}

func (r *fakeRepo) FindChildren(_ context.Context, parentID string) ([]model.Category, error) {
	var out []model.Category
	for _, cat := range r.categories {
		if !cat.IsDeleted && cat.ParentID != nil && *cat.ParentID == parentID {
			out = append(out, *cat)
		}
	}
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, cat *model.Category) error {
	r.categories[cat.ID] = cat
	return nil
}

func (r *fakeRepo) SoftDelete(_ context.Context, id string) error {
	if cat, ok := r.categories[id]; ok {
		cat.IsDeleted = true
	}
	return nil
}

func (r *fakeRepo) HasChildren(_ context.Context, id string) (bool, error) {
	for _, cat := range r.categories {
		if !cat.IsDeleted && cat.ParentID != nil && *cat.ParentID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) HasProducts(_ context.Context, id string) (bool, error) {
	return r.products[id], nil
}

func (r *fakeRepo) Move(_ context.Context, categoryID string, newParentID *string, maxDepth int) error {
	cur := newParentID
	for depth := 0; cur != nil; depth++ {
		if depth >= maxDepth {
			return apperr.New(apperr.CodeInvalidHierarchy, "depth exceeded")
		}
		if *cur == categoryID {
			return apperr.New(apperr.CodeInvalidHierarchy, "cycle")
		}
		parent, ok := r.categories[*cur]
		if !ok || parent.IsDeleted {
			break
		}
		cur = parent.ParentID
	}
	r.categories[categoryID].ParentID = newParentID
	return nil
}

func strPtr(s string) *string { return &s }

func TestMove(t *testing.T) {
	tests := []struct {
		name        string
		categoryID  string
		newParentID *string
		wantCode    apperr.Code
		wantParent  *string
	}{
		{
			name:        "reparent to sibling subtree",
			categoryID:  "b",
			newParentID: strPtr("d"),
			wantParent:  strPtr("d"),
		},
		{
			name:        "move to root",
			categoryID:  "b",
			newParentID: nil,
			wantParent:  nil,
		},
		{
			name:        "empty parent means root",
			categoryID:  "b",
			newParentID: strPtr(""),
			wantParent:  nil,
		},
		{
			name:        "own parent rejected",
			categoryID:  "b",
			newParentID: strPtr("b"),
			wantCode:    apperr.CodeInvalidHierarchy,
		},
		{
			name:        "descendant parent rejected",
			categoryID:  "a",
			newParentID: strPtr("c"),
			wantCode:    apperr.CodeInvalidHierarchy,
		},
		{
			name:        "unknown parent",
			categoryID:  "b",
			newParentID: strPtr("ghost"),
			wantCode:    apperr.CodeNotFound,
		},
		{
			name:        "unknown category",
			categoryID:  "ghost",
			newParentID: nil,
			wantCode:    apperr.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// a -> b -> c, plus a sibling root d
			repo := newFakeRepo()
			repo.add("a", nil)
			repo.add("b", strPtr("a"))
			repo.add("c", strPtr("b"))
			repo.add("d", nil)
			uc := NewCategoryUseCase(repo, nil, nopLogger{})

			moved, err := uc.Move(context.Background(), tt.categoryID, tt.newParentID)
			if tt.wantCode != "" {
				if !apperr.IsCode(err, tt.wantCode) {
					t.Fatalf("Move() error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Move() unexpected error: %v", err)
			}
			switch {
			case tt.wantParent == nil && moved.ParentID != nil:
				t.Errorf("ParentID = %q, want nil", *moved.ParentID)
			case tt.wantParent != nil && (moved.ParentID == nil || *moved.ParentID != *tt.wantParent):
				t.Errorf("ParentID = %v, want %q", moved.ParentID, *tt.wantParent)
			}
		})
	}
}

func TestDeleteCategory(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		products map[string]bool
		wantCode apperr.Code
	}{
		{name: "leaf without products", id: "c"},
		{name: "has children", id: "a", wantCode: apperr.CodeCategoryHasChildren},
		{name: "has products", id: "c", products: map[string]bool{"c": true}, wantCode: apperr.CodeCategoryHasProducts},
		{name: "unknown id", id: "ghost", wantCode: apperr.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			repo.add("a", nil)
			repo.add("b", strPtr("a"))
			repo.add("c", strPtr("b"))
			if tt.products != nil {
				repo.products = tt.products
			}
			uc := NewCategoryUseCase(repo, nil, nopLogger{})

			err := uc.DeleteCategory(context.Background(), tt.id)
			if tt.wantCode != "" {
				if !apperr.IsCode(err, tt.wantCode) {
					t.Fatalf("DeleteCategory() error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("DeleteCategory() unexpected error: %v", err)
			}
			if got, _ := repo.FindByID(context.Background(), tt.id); got != nil {
				t.Errorf("category %s still visible after delete", tt.id)
			}
		})
	}
}

func TestDeleteCategory_Idempotent(t *testing.T) {
	repo := newFakeRepo()
	repo.add("a", nil)
	uc := NewCategoryUseCase(repo, nil, nopLogger{})

	if err := uc.DeleteCategory(context.Background(), "a"); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	// Tombstoned categories are invisible; a second delete is a NotFound.
	if err := uc.DeleteCategory(context.Background(), "a"); !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Fatalf("second delete error = %v, want NOT_FOUND", err)
	}
}

func TestAncestors(t *testing.T) {
	repo := newFakeRepo()
	repo.add("root", nil)
	repo.add("mid", strPtr("root"))
	repo.add("leaf", strPtr("mid"))
	uc := NewCategoryUseCase(repo, nil, nopLogger{})

	chain, err := uc.Ancestors(context.Background(), "leaf", "")
	if err != nil {
		t.Fatalf("Ancestors() error: %v", err)
	}
	if len(chain) != 2 {
		t.Fatalf("len(chain) = %d, want 2", len(chain))
	}
	if chain[0].ID != "root" || chain[1].ID != "mid" {
		t.Errorf("chain = [%s %s], want [root mid]", chain[0].ID, chain[1].ID)
	}

	if _, err := uc.Ancestors(context.Background(), "ghost", ""); !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Errorf("Ancestors(ghost) error = %v, want NOT_FOUND", err)
	}

	// A root has no ancestors.
	chain, err = uc.Ancestors(context.Background(), "root", "")
	if err != nil {
		t.Fatalf("Ancestors(root) error: %v", err)
	}
	if len(chain) != 0 {
		t.Errorf("len(chain) = %d, want 0", len(chain))
	}
}

func TestAncestors_CorruptedTreeBounded(t *testing.T) {
	// Manufacture a parent cycle directly in the fake; the walk must fail
	// instead of spinning.
	repo := newFakeRepo()
	repo.add("a", strPtr("b"))
	repo.add("b", strPtr("a"))
	uc := NewCategoryUseCase(repo, nil, nopLogger{})

	if _, err := uc.Ancestors(context.Background(), "a", ""); !apperr.IsCode(err, apperr.CodeInvalidHierarchy) {
		t.Fatalf("Ancestors() error = %v, want INVALID_CATEGORY_HIERARCHY", err)
	}
}

func TestCreateCategory_UnknownParent(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCategoryUseCase(repo, nil, nopLogger{})

	_, err := uc.CreateCategory(context.Background(), &dto.CreateCategoryInput{
		ParentID: strPtr("ghost"),
		Name:     "Phones",
	})
	if !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Fatalf("CreateCategory() error = %v, want NOT_FOUND", err)
	}
}
