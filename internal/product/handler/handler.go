package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/eliasbui/asia-shop/internal/model"
	"github.com/eliasbui/asia-shop/internal/product"
	"github.com/eliasbui/asia-shop/internal/product/dto"
	"github.com/eliasbui/asia-shop/pkg/httputil"
	"github.com/eliasbui/asia-shop/pkg/logger"
)

type ProductHandler struct {
	uc       product.UseCase
	validate *validator.Validate
	logger   logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:       uc,
		validate: validator.New(),
		logger:   log,
	}
}

func (h *ProductHandler) Routes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	products := rg.Group("/products")
	{
		products.GET("", h.List)
		products.GET("/search", h.Search)
		products.GET("/:id", h.Get)
		products.GET("/:id/attributes", h.Attributes)
		products.GET("/:id/variants", h.Variants)

		products.POST("", auth, h.Create)
		products.PUT("/:id", auth, h.Update)
		products.PATCH("/:id/status", auth, h.UpdateStatus)
		products.DELETE("/:id", auth, h.Delete)

		products.PUT("/:id/attributes", auth, h.UpdateAttributes)
		products.PUT("/:id/attributes/:attributeId", auth, h.SetAttributeValue)
		products.DELETE("/:id/attributes/:attributeId", auth, h.RemoveAttributeValue)

		products.POST("/:id/variants", auth, h.AddVariant)
		products.PUT("/:id/variants/:variantId", auth, h.UpdateVariant)
		products.DELETE("/:id/variants/:variantId", auth, h.DeleteVariant)
	}
}

type attributeValueRequest struct {
	AttributeID string      `json:"attribute_id" validate:"required"`
	Value       interface{} `json:"value" validate:"required"`
}

type createProductRequest struct {
	ShopID      string                  `json:"shop_id" validate:"required"`
	CategoryID  string                  `json:"category_id"`
	SKU         string                  `json:"sku" validate:"required,max=100"`
	Name        string                  `json:"name" validate:"required,max=255"`
	Description string                  `json:"description"`
	Attributes  []attributeValueRequest `json:"attributes" validate:"dive"`
}

type updateProductRequest struct {
	CategoryID  string `json:"category_id"`
	SKU         string `json:"sku" validate:"required,max=100"`
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type setValueRequest struct {
	Value interface{} `json:"value" validate:"required"`
}

type variantRequest struct {
	SKU          string           `json:"sku" validate:"required,max=100"`
	Name         string           `json:"name" validate:"required,max=255"`
	Price        decimal.Decimal  `json:"price" validate:"required"`
	ComparePrice *decimal.Decimal `json:"compare_price"`
	Weight       *decimal.Decimal `json:"weight"`
	Barcode      string           `json:"barcode"`
	ImageURL     string           `json:"image_url"`
	Position     int              `json:"position"`
	Status       string           `json:"status"`
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	input := &dto.CreateProductInput{
		ShopID:      req.ShopID,
		CategoryID:  req.CategoryID,
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
	}
	for _, a := range req.Attributes {
		input.Attributes = append(input.Attributes, dto.AttributeValueInput{
			AttributeID: a.AttributeID,
			Value:       a.Value,
		})
	}

	p, err := h.uc.CreateProduct(c.Request.Context(), input)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, p)
}

func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.uc.GetProduct(c.Request.Context(), c.Param("id"), c.Query("locale"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, p)
}

func (h *ProductHandler) List(c *gin.Context) {
	products, total, err := h.uc.ListProducts(c.Request.Context(), h.filters(c))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, gin.H{"items": products, "total": total})
}

func (h *ProductHandler) Search(c *gin.Context) {
	products, total, err := h.uc.SearchProducts(c.Request.Context(), h.filters(c))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, gin.H{"items": products, "total": total})
}

func (h *ProductHandler) filters(c *gin.Context) *dto.ProductFilters {
	page, pageSize := httputil.Pagination(c)
	return &dto.ProductFilters{
		ShopID:      c.Query("shop_id"),
		CategoryID:  c.Query("category_id"),
		Status:      c.Query("status"),
		SearchQuery: c.Query("q"),
		Page:        page,
		PageSize:    pageSize,
	}
}

func (h *ProductHandler) Update(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	p, err := h.uc.UpdateProduct(c.Request.Context(), &dto.UpdateProductInput{
		ID:          c.Param("id"),
		CategoryID:  req.CategoryID,
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, p)
}

func (h *ProductHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	p, err := h.uc.UpdateStatus(c.Request.Context(), c.Param("id"), model.ProductStatus(req.Status))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, p)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.NoContent(c)
}

func (h *ProductHandler) Attributes(c *gin.Context) {
	attrs, err := h.uc.ProductAttributes(c.Request.Context(), c.Param("id"), c.Query("locale"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, attrs)
}

func (h *ProductHandler) SetAttributeValue(c *gin.Context) {
	var req setValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	attrs, err := h.uc.SetAttributeValue(c.Request.Context(), c.Param("id"), c.Param("attributeId"), req.Value)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, attrs)
}

func (h *ProductHandler) UpdateAttributes(c *gin.Context) {
	var req []attributeValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	inputs := make([]dto.AttributeValueInput, 0, len(req))
	for _, a := range req {
		inputs = append(inputs, dto.AttributeValueInput{
			AttributeID: a.AttributeID,
			Value:       a.Value,
		})
	}

	attrs, err := h.uc.UpdateAttributes(c.Request.Context(), c.Param("id"), inputs)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, attrs)
}

func (h *ProductHandler) RemoveAttributeValue(c *gin.Context) {
	if err := h.uc.RemoveAttributeValue(c.Request.Context(), c.Param("id"), c.Param("attributeId")); err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.NoContent(c)
}

func (h *ProductHandler) Variants(c *gin.Context) {
	variants, err := h.uc.Variants(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, variants)
}

func (h *ProductHandler) AddVariant(c *gin.Context) {
	var req variantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	v, err := h.uc.AddVariant(c.Request.Context(), &dto.CreateVariantInput{
		ProductID:    c.Param("id"),
		SKU:          req.SKU,
		Name:         req.Name,
		Price:        req.Price,
		ComparePrice: req.ComparePrice,
		Weight:       req.Weight,
		Barcode:      req.Barcode,
		ImageURL:     req.ImageURL,
		Position:     req.Position,
	})
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, v)
}

func (h *ProductHandler) UpdateVariant(c *gin.Context) {
	var req variantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	v, err := h.uc.UpdateVariant(c.Request.Context(), &dto.UpdateVariantInput{
		ID:           c.Param("variantId"),
		ProductID:    c.Param("id"),
		SKU:          req.SKU,
		Name:         req.Name,
		Price:        req.Price,
		ComparePrice: req.ComparePrice,
		Weight:       req.Weight,
		Barcode:      req.Barcode,
		ImageURL:     req.ImageURL,
		Position:     req.Position,
		Status:       req.Status,
	})
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, v)
}

func (h *ProductHandler) DeleteVariant(c *gin.Context) {
	if err := h.uc.DeleteVariant(c.Request.Context(), c.Param("id"), c.Param("variantId")); err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.NoContent(c)
}
