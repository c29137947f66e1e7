package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/eliasbui/asia-shop/internal/attribute"
	"github.com/eliasbui/asia-shop/internal/attribute/dto"
	"github.com/eliasbui/asia-shop/internal/model"
	"github.com/eliasbui/asia-shop/pkg/httputil"
	"github.com/eliasbui/asia-shop/pkg/logger"
)

type AttributeHandler struct {
	uc       attribute.UseCase
	validate *validator.Validate
	logger   logger.ZapLogger
}

func NewAttributeHandler(uc attribute.UseCase, log logger.ZapLogger) *AttributeHandler {
	return &AttributeHandler{
		uc:       uc,
		validate: validator.New(),
		logger:   log,
	}
}

func (h *AttributeHandler) Routes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	groups := rg.Group("/attribute-groups")
	{
		groups.GET("", h.ListGroups)
		groups.POST("", auth, h.CreateGroup)
	}

	attributes := rg.Group("/attributes")
	{
		attributes.GET("", h.List)
		attributes.GET("/:id", h.Get)
		attributes.GET("/:id/values", h.ListAllowedValues)

		attributes.POST("", auth, h.Create)
		attributes.PUT("/:id", auth, h.Update)
		attributes.DELETE("/:id", auth, h.Delete)
		attributes.POST("/:id/values", auth, h.AddAllowedValue)
		attributes.PUT("/:id/values/:valueId", auth, h.UpdateAllowedValue)
		attributes.DELETE("/:id/values/:valueId", auth, h.DeleteAllowedValue)
	}

	categories := rg.Group("/categories/:id/attributes")
	{
		categories.GET("", h.EffectiveAttributes)
		categories.POST("", auth, h.Bind)
		categories.DELETE("/:attributeId", auth, h.Unbind)
	}
}

type createGroupRequest struct {
	Name         string `json:"name" validate:"required,max=255"`
	DisplayOrder int    `json:"display_order"`
}

type attributeRequest struct {
	Code         string `json:"code" validate:"required,max=100"`
	InputType    string `json:"input_type" validate:"required"`
	DataType     string `json:"data_type" validate:"required"`
	Unit         string `json:"unit"`
	GroupID      string `json:"group_id" validate:"required"`
	IsFilterable bool   `json:"is_filterable"`
	IsRequired   bool   `json:"is_required"`
}

type allowedValueRequest struct {
	Value        string `json:"value" validate:"required,max=255"`
	DisplayOrder int    `json:"display_order"`
}

type bindRequest struct {
	AttributeID  string `json:"attribute_id" validate:"required"`
	DisplayOrder int    `json:"display_order"`
}

func (h *AttributeHandler) CreateGroup(c *gin.Context) {
	var req createGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	group, err := h.uc.CreateGroup(c.Request.Context(), &dto.CreateGroupInput{
		Name:         req.Name,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, group)
}

func (h *AttributeHandler) ListGroups(c *gin.Context) {
	groups, err := h.uc.ListGroups(c.Request.Context())
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, groups)
}

func (h *AttributeHandler) Create(c *gin.Context) {
	var req attributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	attr, err := h.uc.CreateAttribute(c.Request.Context(), &dto.CreateAttributeInput{
		Code:         req.Code,
		InputType:    model.InputType(req.InputType),
		DataType:     model.DataType(req.DataType),
		Unit:         req.Unit,
		GroupID:      req.GroupID,
		IsFilterable: req.IsFilterable,
		IsRequired:   req.IsRequired,
	})
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, attr)
}

func (h *AttributeHandler) Get(c *gin.Context) {
	attr, err := h.uc.GetAttribute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, attr)
}

func (h *AttributeHandler) List(c *gin.Context) {
	page, pageSize := httputil.Pagination(c)
	filters := &dto.AttributeFilters{
		GroupID:  c.Query("group_id"),
		DataType: c.Query("data_type"),
		Page:     page,
		PageSize: pageSize,
	}
	if v, ok := c.GetQuery("is_filterable"); ok {
		filterable := v == "true"
		filters.IsFilterable = &filterable
	}

	attrs, total, err := h.uc.ListAttributes(c.Request.Context(), filters)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, gin.H{"items": attrs, "total": total})
}

func (h *AttributeHandler) Update(c *gin.Context) {
	var req attributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	attr, err := h.uc.UpdateAttribute(c.Request.Context(), &dto.UpdateAttributeInput{
		ID:           c.Param("id"),
		Code:         req.Code,
		InputType:    model.InputType(req.InputType),
		DataType:     model.DataType(req.DataType),
		Unit:         req.Unit,
		GroupID:      req.GroupID,
		IsFilterable: req.IsFilterable,
		IsRequired:   req.IsRequired,
	})
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, attr)
}

func (h *AttributeHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteAttribute(c.Request.Context(), c.Param("id")); err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.NoContent(c)
}

func (h *AttributeHandler) ListAllowedValues(c *gin.Context) {
	values, err := h.uc.AllowedValues(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, values)
}

func (h *AttributeHandler) AddAllowedValue(c *gin.Context) {
	var req allowedValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	value, err := h.uc.AddAllowedValue(c.Request.Context(), c.Param("id"), &dto.AllowedValueInput{
		Value:        req.Value,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, value)
}

func (h *AttributeHandler) UpdateAllowedValue(c *gin.Context) {
	var req allowedValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	value, err := h.uc.UpdateAllowedValue(c.Request.Context(), c.Param("id"), c.Param("valueId"), &dto.AllowedValueInput{
		Value:        req.Value,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, value)
}

func (h *AttributeHandler) DeleteAllowedValue(c *gin.Context) {
	if err := h.uc.DeleteAllowedValue(c.Request.Context(), c.Param("id"), c.Param("valueId")); err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.NoContent(c)
}

func (h *AttributeHandler) EffectiveAttributes(c *gin.Context) {
	attrs, err := h.uc.EffectiveAttributes(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, attrs)
}

func (h *AttributeHandler) Bind(c *gin.Context) {
	var req bindRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	if err := h.uc.BindAttribute(c.Request.Context(), c.Param("id"), req.AttributeID, req.DisplayOrder); err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.NoContent(c)
}

func (h *AttributeHandler) Unbind(c *gin.Context) {
	if err := h.uc.UnbindAttribute(c.Request.Context(), c.Param("id"), c.Param("attributeId")); err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.NoContent(c)
}
