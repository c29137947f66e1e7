package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/eliasbui/asia-shop/internal/shop"
	"github.com/eliasbui/asia-shop/internal/shop/dto"
	"github.com/eliasbui/asia-shop/pkg/httputil"
	"github.com/eliasbui/asia-shop/pkg/logger"
)

type ShopHandler struct {
	uc       shop.UseCase
	validate *validator.Validate
	logger   logger.ZapLogger
}

func NewShopHandler(uc shop.UseCase, log logger.ZapLogger) *ShopHandler {
	return &ShopHandler{
		uc:       uc,
		validate: validator.New(),
		logger:   log,
	}
}

func (h *ShopHandler) Routes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	shops := rg.Group("/shops")
	{
		shops.GET("", h.List)
		shops.GET("/:id", h.Get)
		shops.GET("/:id/statistics", h.Statistics)
		shops.GET("/:id/categories", h.CategoriesUsed)

		shops.POST("", auth, h.Create)
		shops.PUT("/:id", auth, h.Update)
		shops.DELETE("/:id", auth, h.Delete)
	}
}

type shopRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Phone       string `json:"phone" validate:"max=30"`
	Email       string `json:"email" validate:"omitempty,email"`
	Website     string `json:"website" validate:"omitempty,url"`
	LogoURL     string `json:"logo_url" validate:"omitempty,url"`
}

func (h *ShopHandler) Create(c *gin.Context) {
	var req shopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	s, err := h.uc.CreateShop(c.Request.Context(), &dto.CreateShopInput{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
		Website:     req.Website,
		LogoURL:     req.LogoURL,
	})
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, s)
}

func (h *ShopHandler) Get(c *gin.Context) {
	s, err := h.uc.GetShop(c.Request.Context(), c.Param("id"), c.Query("locale"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, s)
}

func (h *ShopHandler) List(c *gin.Context) {
	page, pageSize := httputil.Pagination(c)
	shops, total, err := h.uc.ListShops(c.Request.Context(), &dto.ShopFilters{
		SearchQuery: c.Query("q"),
		Page:        page,
		PageSize:    pageSize,
	})
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, gin.H{"items": shops, "total": total})
}

func (h *ShopHandler) Update(c *gin.Context) {
	var req shopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	s, err := h.uc.UpdateShop(c.Request.Context(), &dto.UpdateShopInput{
		ID:          c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
		Website:     req.Website,
		LogoURL:     req.LogoURL,
	})
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, s)
}

func (h *ShopHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteShop(c.Request.Context(), c.Param("id")); err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.NoContent(c)
}

func (h *ShopHandler) CategoriesUsed(c *gin.Context) {
	ids, err := h.uc.CategoriesUsed(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, gin.H{"category_ids": ids})
}

func (h *ShopHandler) Statistics(c *gin.Context) {
	stats, err := h.uc.Statistics(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, stats)
}
