package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/eliasbui/asia-shop/internal/apperr"
	"github.com/eliasbui/asia-shop/internal/model"
	"github.com/eliasbui/asia-shop/internal/translation"
	"github.com/eliasbui/asia-shop/internal/translation/dto"
	"github.com/eliasbui/asia-shop/pkg/logger"
)

var allEntityTypes = []model.EntityType{
	model.EntityCategory,
	model.EntityAttribute,
	model.EntityAttributeValue,
	model.EntityProduct,
	model.EntityShop,
	model.EntityProductVariant,
}

type translationUseCase struct {
	repo   translation.Repository
	logger logger.ZapLogger
}

func NewTranslationUseCase(repo translation.Repository, log logger.ZapLogger) translation.UseCase {
	return &translationUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *translationUseCase) Resolve(ctx context.Context, entityType model.EntityType, entityID, locale, field string) (*string, error) {
	if !entityType.IsValid() {
		return nil, apperr.New(apperr.CodeInvalidInput, "unknown entity type %q", entityType)
	}
	t, err := uc.repo.FindByKey(ctx, entityType, entityID, locale, field)
	if err != nil {
		return nil, err
	}
	if t == nil {
		// Absence, not an error; the caller keeps the canonical value.
		return nil, nil
	}
	return &t.Translation, nil
}

func (uc *translationUseCase) ResolveAll(ctx context.Context, entityType model.EntityType, entityID, locale string) (map[string]string, error) {
	if !entityType.IsValid() {
		return nil, apperr.New(apperr.CodeInvalidInput, "unknown entity type %q", entityType)
	}
	rows, err := uc.repo.FindByEntityLocale(ctx, entityType, entityID, locale)
	if err != nil {
		return nil, err
	}
	fields := make(map[string]string, len(rows))
	for _, t := range rows {
		fields[t.Field] = t.Translation
	}
	return fields, nil
}

func (uc *translationUseCase) CreateTranslation(ctx context.Context, input *dto.TranslationInput) (*model.Translation, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	existing, err := uc.repo.FindByKey(ctx, input.EntityType, input.EntityID, input.Locale, input.Field)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.AlreadyExists("translation already exists for (%s, %s, %s, %s)",
			input.EntityType, input.EntityID, input.Locale, input.Field)
	}

	now := time.Now()
	t := &model.Translation{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		EntityType:  input.EntityType,
		EntityID:    input.EntityID,
		Locale:      input.Locale,
		Field:       input.Field,
		Translation: input.Translation,
	}

	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (uc *translationUseCase) GetTranslation(ctx context.Context, id string) (*model.Translation, error) {
	t, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperr.NotFound("translation", id)
	}
	return t, nil
}

func (uc *translationUseCase) UpdateTranslation(ctx context.Context, id, text string) (*model.Translation, error) {
	t, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperr.NotFound("translation", id)
	}

	t.Translation = text
	t.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (uc *translationUseCase) DeleteTranslation(ctx context.Context, id string) error {
	t, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return apperr.NotFound("translation", id)
	}
	return uc.repo.SoftDelete(ctx, id)
}

func (uc *translationUseCase) EntityTranslations(ctx context.Context, entityType model.EntityType, entityID string) ([]model.Translation, error) {
	if !entityType.IsValid() {
		return nil, apperr.New(apperr.CodeInvalidInput, "unknown entity type %q", entityType)
	}
	return uc.repo.FindByEntity(ctx, entityType, entityID)
}

func (uc *translationUseCase) BulkUpsert(ctx context.Context, inputs []dto.TranslationInput) ([]model.Translation, error) {
	// Validate everything up front; the batch is all-or-nothing.
	for i := range inputs {
		if err := validateInput(&inputs[i]); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	rows := make([]model.Translation, 0, len(inputs))
	for _, in := range inputs {
		rows = append(rows, model.Translation{
			BaseModel: model.BaseModel{
				ID:        uuid.New().String(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			EntityType:  in.EntityType,
			EntityID:    in.EntityID,
			Locale:      in.Locale,
			Field:       in.Field,
			Translation: in.Translation,
		})
	}

	if err := uc.repo.UpsertBatch(ctx, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (uc *translationUseCase) Coverage(ctx context.Context, entityType model.EntityType, locale string) (*dto.CoverageReport, error) {
	if !entityType.IsValid() {
		return nil, apperr.New(apperr.CodeInvalidInput, "unknown entity type %q", entityType)
	}

	total, err := uc.repo.CountEntities(ctx, entityType)
	if err != nil {
		return nil, err
	}
	translated, err := uc.repo.CountTranslatedEntities(ctx, entityType, locale)
	if err != nil {
		return nil, err
	}

	report := &dto.CoverageReport{
		EntityType:    entityType,
		Locale:        locale,
		TotalEntities: total,
		Translated:    translated,
	}
	if total > 0 {
		report.Percentage = float64(translated) / float64(total) * 100
	}
	return report, nil
}

func (uc *translationUseCase) Missing(ctx context.Context, entityType model.EntityType, locale string) ([]dto.MissingTranslation, error) {
	if !entityType.IsValid() {
		return nil, apperr.New(apperr.CodeInvalidInput, "unknown entity type %q", entityType)
	}

	var missing []dto.MissingTranslation
	for _, field := range translation.RequiredFields {
		ids, err := uc.repo.EntityIDsMissingField(ctx, entityType, locale, field)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			missing = append(missing, dto.MissingTranslation{
				EntityType: entityType,
				EntityID:   id,
				Locale:     locale,
				Field:      field,
			})
		}
	}
	return missing, nil
}

func (uc *translationUseCase) AvailableLocales(ctx context.Context, entityType model.EntityType) ([]string, error) {
	if !entityType.IsValid() {
		return nil, apperr.New(apperr.CodeInvalidInput, "unknown entity type %q", entityType)
	}
	return uc.repo.DistinctLocales(ctx, entityType)
}

func (uc *translationUseCase) Statistics(ctx context.Context) (*dto.Statistics, error) {
	stats := &dto.Statistics{}

	seen := map[string]bool{}
	for _, et := range allEntityTypes {
		count, err := uc.repo.CountByEntityType(ctx, et)
		if err != nil {
			return nil, err
		}
		stats.Total += count
		stats.ByEntityType = append(stats.ByEntityType, dto.EntityTypeCount{EntityType: et, Count: count})

		locales, err := uc.repo.DistinctLocales(ctx, et)
		if err != nil {
			return nil, err
		}
		for _, l := range locales {
			seen[l] = true
		}
	}

	locales := make([]string, 0, len(seen))
	for locale := range seen {
		locales = append(locales, locale)
	}
	sort.Strings(locales)

	for _, locale := range locales {
		count, err := uc.repo.CountByLocale(ctx, locale)
		if err != nil {
			return nil, err
		}
		stats.ByLocale = append(stats.ByLocale, dto.LocaleCount{Locale: locale, Count: count})
	}
	return stats, nil
}

func validateInput(input *dto.TranslationInput) error {
	if !input.EntityType.IsValid() {
		return apperr.New(apperr.CodeInvalidInput, "unknown entity type %q", input.EntityType)
	}
	if input.EntityID == "" || input.Locale == "" || input.Field == "" {
		return apperr.New(apperr.CodeInvalidInput, "entity id, locale and field are required")
	}
	return nil
}
