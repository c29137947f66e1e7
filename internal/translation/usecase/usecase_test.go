package usecase

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/eliasbui/asia-shop/internal/apperr"
	"github.com/eliasbui/asia-shop/internal/model"
	"github.com/eliasbui/asia-shop/internal/translation/dto"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...zap.Field) {}
func (nopLogger) Info(string, ...zap.Field)  {}
func (nopLogger) Warn(string, ...zap.Field)  {}
func (nopLogger) Error(string, ...zap.Field) {}
func (nopLogger) Fatal(string, ...zap.Field) {}
func (nopLogger) Sync() error                { return nil }

type fakeRepo struct {
	rows     map[string]*model.Translation
	entities map[model.EntityType][]string // entity tables, by type
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		rows:     make(map[string]*model.Translation),
		entities: make(map[model.EntityType][]string),
	}
}

func (r *fakeRepo) Create(_ context.Context, t *model.Translation) error {
	r.rows[t.ID] = t
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*model.Translation, error) {
	t, ok := r.rows[id]
	if !ok || t.IsDeleted {
		return nil, nil
	}
	return t, nil
}

func (r *fakeRepo) FindByKey(_ context.Context, entityType model.EntityType, entityID, locale, field string) (*model.Translation, error) {
	for _, t := range r.rows {
		if !t.IsDeleted && t.EntityType == entityType && t.EntityID == entityID && t.Locale == locale && t.Field == field {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) FindByEntity(_ context.Context, entityType model.EntityType, entityID string) ([]model.Translation, error) {
	var out []model.Translation
	for _, t := range r.rows {
		if !t.IsDeleted && t.EntityType == entityType && t.EntityID == entityID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeRepo) FindByEntityLocale(_ context.Context, entityType model.EntityType, entityID, locale string) ([]model.Translation, error) {
	var out []model.Translation
	for _, t := range r.rows {
		if !t.IsDeleted && t.EntityType == entityType && t.EntityID == entityID && t.Locale == locale {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, t *model.Translation) error {
	r.rows[t.ID] = t
	return nil
}

func (r *fakeRepo) SoftDelete(_ context.Context, id string) error {
	if t, ok := r.rows[id]; ok {
		t.IsDeleted = true
	}
	return nil
}

func (r *fakeRepo) UpsertBatch(_ context.Context, translations []model.Translation) error {
	for i := range translations {
		t := translations[i]
		if existing, _ := r.FindByKey(context.Background(), t.EntityType, t.EntityID, t.Locale, t.Field); existing != nil {
			existing.Translation = t.Translation
			continue
		}
		r.rows[t.ID] = &t
	}
	return nil
}

func (r *fakeRepo) DistinctLocales(_ context.Context, entityType model.EntityType) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, t := range r.rows {
		if !t.IsDeleted && t.EntityType == entityType && !seen[t.Locale] {
			seen[t.Locale] = true
			out = append(out, t.Locale)
		}
	}
	return out, nil
}

func (r *fakeRepo) CountByLocale(_ context.Context, locale string) (int, error) {
	n := 0
	for _, t := range r.rows {
		if !t.IsDeleted && t.Locale == locale {
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) CountByEntityType(_ context.Context, entityType model.EntityType) (int, error) {
	n := 0
	for _, t := range r.rows {
		if !t.IsDeleted && t.EntityType == entityType {
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) CountTranslatedEntities(_ context.Context, entityType model.EntityType, locale string) (int, error) {
	seen := map[string]bool{}
	for _, t := range r.rows {
		if !t.IsDeleted && t.EntityType == entityType && t.Locale == locale {
			seen[t.EntityID] = true
		}
	}
	return len(seen), nil
}

func (r *fakeRepo) CountEntities(_ context.Context, entityType model.EntityType) (int, error) {
	return len(r.entities[entityType]), nil
}

func (r *fakeRepo) EntityIDsMissingField(_ context.Context, entityType model.EntityType, locale, field string) ([]string, error) {
	var out []string
	for _, id := range r.entities[entityType] {
		if t, _ := r.FindByKey(context.Background(), entityType, id, locale, field); t == nil {
			out = append(out, id)
		}
	}
	return out, nil
}

func TestResolve_ExactMatchOnly(t *testing.T) {
	repo := newFakeRepo()
	uc := NewTranslationUseCase(repo, nopLogger{})

	_, err := uc.CreateTranslation(context.Background(), &dto.TranslationInput{
		EntityType: model.EntityCategory, EntityID: "cat1", Locale: "fr-FR", Field: "name", Translation: "Téléphones",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	tests := []struct {
		name   string
		locale string
		field  string
		want   *string
	}{
		{name: "exact tuple", locale: "fr-FR", field: "name", want: strPtr("Téléphones")},
		{name: "base locale does not match regional", locale: "fr", field: "name", want: nil},
		{name: "other field", locale: "fr-FR", field: "description", want: nil},
		{name: "other locale", locale: "de-DE", field: "name", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := uc.Resolve(context.Background(), model.EntityCategory, "cat1", tt.locale, tt.field)
			if err != nil {
				t.Fatalf("Resolve() error: %v", err)
			}
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("Resolve() = %q, want absence", *got)
			case tt.want != nil && (got == nil || *got != *tt.want):
				t.Errorf("Resolve() = %v, want %q", got, *tt.want)
			}
		})
	}
}

func strPtr(s string) *string { return &s }

func TestCreateTranslation_DuplicateTuple(t *testing.T) {
	repo := newFakeRepo()
	uc := NewTranslationUseCase(repo, nopLogger{})

	input := &dto.TranslationInput{
		EntityType: model.EntityProduct, EntityID: "p1", Locale: "vi", Field: "name", Translation: "Áo thun",
	}
	if _, err := uc.CreateTranslation(context.Background(), input); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := uc.CreateTranslation(context.Background(), input); !apperr.IsCode(err, apperr.CodeAlreadyExists) {
		t.Fatalf("second create error = %v, want ALREADY_EXISTS", err)
	}

	if _, err := uc.CreateTranslation(context.Background(), &dto.TranslationInput{
		EntityType: "banner", EntityID: "x", Locale: "vi", Field: "name", Translation: "x",
	}); !apperr.IsCode(err, apperr.CodeInvalidInput) {
		t.Fatalf("unknown entity type error = %v, want INVALID_INPUT", err)
	}
}

func TestBulkUpsert(t *testing.T) {
	repo := newFakeRepo()
	uc := NewTranslationUseCase(repo, nopLogger{})

	// One bad input rejects the whole batch before anything is written.
	_, err := uc.BulkUpsert(context.Background(), []dto.TranslationInput{
		{EntityType: model.EntityProduct, EntityID: "p1", Locale: "vi", Field: "name", Translation: "Áo thun"},
		{EntityType: model.EntityProduct, EntityID: "p1", Locale: "", Field: "name", Translation: "x"},
	})
	if !apperr.IsCode(err, apperr.CodeInvalidInput) {
		t.Fatalf("BulkUpsert() error = %v, want INVALID_INPUT", err)
	}
	if len(repo.rows) != 0 {
		t.Fatalf("rows written despite failed batch: %d", len(repo.rows))
	}

	// Upsert semantics: second batch overwrites the existing tuple.
	if _, err := uc.BulkUpsert(context.Background(), []dto.TranslationInput{
		{EntityType: model.EntityProduct, EntityID: "p1", Locale: "vi", Field: "name", Translation: "Áo thun"},
	}); err != nil {
		t.Fatalf("first batch: %v", err)
	}
	if _, err := uc.BulkUpsert(context.Background(), []dto.TranslationInput{
		{EntityType: model.EntityProduct, EntityID: "p1", Locale: "vi", Field: "name", Translation: "Áo phông"},
	}); err != nil {
		t.Fatalf("second batch: %v", err)
	}

	got, err := uc.Resolve(context.Background(), model.EntityProduct, "p1", "vi", "name")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got == nil || *got != "Áo phông" {
		t.Fatalf("Resolve() = %v, want Áo phông", got)
	}
}

func TestCoverage(t *testing.T) {
	repo := newFakeRepo()
	repo.entities[model.EntityCategory] = []string{"c1", "c2", "c3", "c4"}
	uc := NewTranslationUseCase(repo, nopLogger{})

	for _, id := range []string{"c1", "c2", "c3"} {
		if _, err := uc.CreateTranslation(context.Background(), &dto.TranslationInput{
			EntityType: model.EntityCategory, EntityID: id, Locale: "ja", Field: "name", Translation: "訳",
		}); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	report, err := uc.Coverage(context.Background(), model.EntityCategory, "ja")
	if err != nil {
		t.Fatalf("Coverage: %v", err)
	}
	if report.TotalEntities != 4 || report.Translated != 3 {
		t.Fatalf("coverage = %d/%d, want 3/4", report.Translated, report.TotalEntities)
	}
	if report.Percentage != 75 {
		t.Errorf("percentage = %v, want 75", report.Percentage)
	}
}

func TestMissing(t *testing.T) {
	repo := newFakeRepo()
	repo.entities[model.EntityCategory] = []string{"c1", "c2"}
	uc := NewTranslationUseCase(repo, nopLogger{})

	if _, err := uc.CreateTranslation(context.Background(), &dto.TranslationInput{
		EntityType: model.EntityCategory, EntityID: "c1", Locale: "ja", Field: "name", Translation: "訳",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	missing, err := uc.Missing(context.Background(), model.EntityCategory, "ja")
	if err != nil {
		t.Fatalf("Missing: %v", err)
	}
	// c1 lacks description; c2 lacks both required fields.
	if len(missing) != 3 {
		t.Fatalf("len(missing) = %d, want 3", len(missing))
	}
}

func TestStatistics(t *testing.T) {
	repo := newFakeRepo()
	uc := NewTranslationUseCase(repo, nopLogger{})

	seed := []dto.TranslationInput{
		{EntityType: model.EntityCategory, EntityID: "c1", Locale: "vi", Field: "name", Translation: "a"},
		{EntityType: model.EntityCategory, EntityID: "c1", Locale: "ja", Field: "name", Translation: "b"},
		{EntityType: model.EntityProduct, EntityID: "p1", Locale: "vi", Field: "name", Translation: "c"},
	}
	for i := range seed {
		if _, err := uc.CreateTranslation(context.Background(), &seed[i]); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	stats, err := uc.Statistics(context.Background())
	if err != nil {
		t.Fatalf("Statistics: %v", err)
	}
	if stats.Total != 3 {
		t.Errorf("total = %d, want 3", stats.Total)
	}
	if len(stats.ByLocale) != 2 {
		t.Fatalf("len(ByLocale) = %d, want 2", len(stats.ByLocale))
	}
	// Locales come back sorted.
	if stats.ByLocale[0].Locale != "ja" || stats.ByLocale[1].Locale != "vi" {
		t.Errorf("locales = [%s %s], want [ja vi]", stats.ByLocale[0].Locale, stats.ByLocale[1].Locale)
	}
	if stats.ByLocale[0].Count != 1 || stats.ByLocale[1].Count != 2 {
		t.Errorf("locale counts = [%d %d], want [1 2]", stats.ByLocale[0].Count, stats.ByLocale[1].Count)
	}
}
