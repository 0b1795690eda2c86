package router

import (
	"github.com/erp/saleproject/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
)

// chain prepends mw to h when mw is set
func chain(mw gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	if mw == nil {
		return []gin.HandlerFunc{h}
	}
	return []gin.HandlerFunc{mw, h}
}

// SaleRoutes builds the sale domain group. idempotency guards the
// operations that create records and may be nil.
func SaleRoutes(h *handler.SaleHandler, idempotency gin.HandlerFunc) *DomainGroup {
	g := NewDomainGroup("sale", "/sales")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)

	// Lines
	g.POST("/:id/lines", h.AddLine)
	g.PUT("/:id/lines/:line_id", h.UpdateLine)
	g.DELETE("/:id/lines/:line_id", h.RemoveLine)

	// Project link
	g.PUT("/:id/work", h.SetWork)
	g.PUT("/:id/create-project", h.SetCreateProject)

	// Workflow
	g.POST("/:id/quote", h.Quote)
	g.POST("/:id/confirm", h.Confirm)
	g.POST("/:id/process", chain(idempotency, h.Process)...)
	g.POST("/:id/done", h.Done)
	g.POST("/:id/cancel", h.Cancel)
	g.POST("/:id/draft", h.Draft)

	g.POST("/:id/load-project", chain(idempotency, h.LoadProject)...)
	g.POST("/:id/copy", chain(idempotency, h.Copy)...)
	g.POST("/:id/change-party", h.ChangeParty)
	return g
}

// ProjectRoutes builds the project domain group
func ProjectRoutes(h *handler.ProjectHandler) *DomainGroup {
	g := NewDomainGroup("project", "/projects")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("/:id/tasks", h.AddTask)
	g.GET("/:id/cost", h.Cost)
	g.POST("/:id/copy", h.Copy)
	return g
}

// CatalogRoutes builds the product and unit of measure routes
func CatalogRoutes(h *handler.CatalogHandler) *DomainGroup {
	g := NewDomainGroup("catalog", "")
	g.POST("/products", h.CreateProduct)
	g.GET("/products", h.ListProducts)
	g.GET("/products/:id", h.GetProduct)
	g.GET("/uoms", h.ListUoMs)
	return g
}
