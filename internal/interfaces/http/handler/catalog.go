package handler

import (
	catalogapp "github.com/erp/saleproject/internal/application/catalog"
	"github.com/erp/saleproject/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogHandler handles product and unit of measure endpoints
type CatalogHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
	uomService     *catalogapp.UoMService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(productService *catalogapp.ProductService, uomService *catalogapp.UoMService) *CatalogHandler {
	return &CatalogHandler{productService: productService, uomService: uomService}
}

// CreateProduct godoc
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateProductRequest true "Product creation request"
// @Success      201 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	var req catalogapp.CreateProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if userID := middleware.GetUserID(c); userID != uuid.Nil {
		req.CreatedBy = &userID
	}

	resp, err := h.productService.Create(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListProducts godoc
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        search query string false "Search in code and name"
// @Param        type query string false "Product type" Enums(service, goods, assets)
// @Param        salable query bool false "Salable only"
// @Param        active query bool false "Active only"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Sort field" Enums(code, name, type, created_at, updated_at)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	var filter catalogapp.ProductListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	items, total, err := h.productService.List(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// GetProduct godoc
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	companyID, productID, ok := h.scoped(c)
	if !ok {
		return
	}
	resp, err := h.productService.GetByID(c.Request.Context(), companyID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListUoMs godoc
// @Summary      List units of measure
// @Description  List the shared unit of measure catalog
// @Tags         uoms
// @Produce      json
// @Success      200 {object} APIResponse[[]catalogapp.UoMResponse]
// @Security     BearerAuth
// @Router       /uoms [get]
func (h *CatalogHandler) ListUoMs(c *gin.Context) {
	resp, err := h.uomService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
