package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/eliasbui/asia-shop/internal/category"
	"github.com/eliasbui/asia-shop/internal/category/dto"
	"github.com/eliasbui/asia-shop/pkg/httputil"
	"github.com/eliasbui/asia-shop/pkg/logger"
)

type CategoryHandler struct {
	uc       category.UseCase
	validate *validator.Validate
	logger   logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:       uc,
		validate: validator.New(),
		logger:   log,
	}
}

func (h *CategoryHandler) Routes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	categories := rg.Group("/categories")
	{
		categories.GET("", h.List)
		categories.GET("/:id", h.Get)
		categories.GET("/:id/children", h.Children)
		categories.GET("/:id/ancestors", h.Ancestors)

		categories.POST("", auth, h.Create)
		categories.PUT("/:id", auth, h.Update)
		categories.PUT("/:id/move", auth, h.Move)
		categories.DELETE("/:id", auth, h.Delete)
	}
}

type createCategoryRequest struct {
	ParentID    *string `json:"parent_id"`
	Name        string  `json:"name" validate:"required,max=255"`
	Description string  `json:"description"`
	SortOrder   int     `json:"sort_order"`
}

type updateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

type moveCategoryRequest struct {
	ParentID *string `json:"parent_id"`
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	cat, err := h.uc.CreateCategory(c.Request.Context(), &dto.CreateCategoryInput{
		ParentID:    req.ParentID,
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, cat)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	cat, err := h.uc.GetCategory(c.Request.Context(), c.Param("id"), c.Query("locale"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, cat)
}

func (h *CategoryHandler) List(c *gin.Context) {
	page, pageSize := httputil.Pagination(c)
	filters := &dto.CategoryFilters{Page: page, PageSize: pageSize}
	if parentID, ok := c.GetQuery("parent_id"); ok {
		filters.ParentID = &parentID
	}

	categories, total, err := h.uc.ListCategories(c.Request.Context(), filters)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, gin.H{"items": categories, "total": total})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var req updateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	cat, err := h.uc.UpdateCategory(c.Request.Context(), &dto.UpdateCategoryInput{
		ID:          c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, cat)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.NoContent(c)
}

func (h *CategoryHandler) Children(c *gin.Context) {
	children, err := h.uc.Children(c.Request.Context(), c.Param("id"), c.Query("locale"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, children)
}

func (h *CategoryHandler) Ancestors(c *gin.Context) {
	ancestors, err := h.uc.Ancestors(c.Request.Context(), c.Param("id"), c.Query("locale"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, ancestors)
}

func (h *CategoryHandler) Move(c *gin.Context) {
	var req moveCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	cat, err := h.uc.Move(c.Request.Context(), c.Param("id"), req.ParentID)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, cat)
}
