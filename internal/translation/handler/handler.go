package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/eliasbui/asia-shop/internal/model"
	"github.com/eliasbui/asia-shop/internal/translation"
	"github.com/eliasbui/asia-shop/internal/translation/dto"
	"github.com/eliasbui/asia-shop/pkg/httputil"
	"github.com/eliasbui/asia-shop/pkg/logger"
)

type TranslationHandler struct {
	uc       translation.UseCase
	validate *validator.Validate
	logger   logger.ZapLogger
}

func NewTranslationHandler(uc translation.UseCase, log logger.ZapLogger) *TranslationHandler {
	return &TranslationHandler{
		uc:       uc,
		validate: validator.New(),
		logger:   log,
	}
}

func (h *TranslationHandler) Routes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	translations := rg.Group("/translations")
	{
		translations.GET("/statistics", h.Statistics)
		translations.GET("/coverage", h.Coverage)
		translations.GET("/missing", h.Missing)
		translations.GET("/locales", h.AvailableLocales)
		translations.GET("/entity/:type/:entityId", h.EntityTranslations)
		translations.GET("/:id", h.Get)

		translations.POST("", auth, h.Create)
		translations.POST("/bulk", auth, h.BulkUpsert)
		translations.PUT("/:id", auth, h.Update)
		translations.DELETE("/:id", auth, h.Delete)
	}
}

type translationRequest struct {
	EntityType  string `json:"entity_type" validate:"required"`
	EntityID    string `json:"entity_id" validate:"required"`
	Locale      string `json:"locale" validate:"required,max=10"`
	Field       string `json:"field" validate:"required,max=100"`
	Translation string `json:"translation" validate:"required"`
}

type updateTranslationRequest struct {
	Translation string `json:"translation" validate:"required"`
}

func (r *translationRequest) toInput() dto.TranslationInput {
	return dto.TranslationInput{
		EntityType:  model.EntityType(r.EntityType),
		EntityID:    r.EntityID,
		Locale:      r.Locale,
		Field:       r.Field,
		Translation: r.Translation,
	}
}

func (h *TranslationHandler) Create(c *gin.Context) {
	var req translationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	input := req.toInput()
	t, err := h.uc.CreateTranslation(c.Request.Context(), &input)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, t)
}

func (h *TranslationHandler) Get(c *gin.Context) {
	t, err := h.uc.GetTranslation(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, t)
}

func (h *TranslationHandler) Update(c *gin.Context) {
	var req updateTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	t, err := h.uc.UpdateTranslation(c.Request.Context(), c.Param("id"), req.Translation)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, t)
}

func (h *TranslationHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteTranslation(c.Request.Context(), c.Param("id")); err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.NoContent(c)
}

func (h *TranslationHandler) EntityTranslations(c *gin.Context) {
	translations, err := h.uc.EntityTranslations(c.Request.Context(),
		model.EntityType(c.Param("type")), c.Param("entityId"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, translations)
}

func (h *TranslationHandler) BulkUpsert(c *gin.Context) {
	var reqs []translationRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	inputs := make([]dto.TranslationInput, 0, len(reqs))
	for i := range reqs {
		if err := h.validate.Struct(&reqs[i]); err != nil {
			httputil.BadRequest(c, err.Error())
			return
		}
		inputs = append(inputs, reqs[i].toInput())
	}

	translations, err := h.uc.BulkUpsert(c.Request.Context(), inputs)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, translations)
}

func (h *TranslationHandler) Coverage(c *gin.Context) {
	report, err := h.uc.Coverage(c.Request.Context(),
		model.EntityType(c.Query("entity_type")), c.Query("locale"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, report)
}

func (h *TranslationHandler) Missing(c *gin.Context) {
	missing, err := h.uc.Missing(c.Request.Context(),
		model.EntityType(c.Query("entity_type")), c.Query("locale"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, missing)
}

func (h *TranslationHandler) AvailableLocales(c *gin.Context) {
	locales, err := h.uc.AvailableLocales(c.Request.Context(), model.EntityType(c.Query("entity_type")))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, locales)
}

func (h *TranslationHandler) Statistics(c *gin.Context) {
	stats, err := h.uc.Statistics(c.Request.Context())
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, stats)
}
