package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	r := NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v1"))

	group := NewDomainGroup("sale", "/sales")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	r.Register(group)
	assert.Len(t, r.registrars, 1)
	r.Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sales/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestRouterUse(t *testing.T) {
	engine := gin.New()
	engine.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	r := NewRouter(engine)
	r.Use(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusUnauthorized)
	})
	g := NewDomainGroup("sale", "/sales")
	g.GET("", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.Register(g).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sales", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// routes outside the versioned group are not affected
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDomainGroup(t *testing.T) {
	t.Run("creates group with name and prefix", func(t *testing.T) {
		g := NewDomainGroup("project", "/projects")
		assert.Equal(t, "project", g.Name())
		assert.Equal(t, "/projects", g.Prefix())
	})

	t.Run("registers every method", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("sale", "/sales")
		ok := func(c *gin.Context) { c.String(http.StatusOK, c.Request.Method) }
		g.GET("/:id", ok).POST("/:id/quote", ok).PUT("/:id", ok).PATCH("/:id", ok).DELETE("/:id/lines/:line_id", ok)
		g.RegisterRoutes(engine.Group("/api/v1"))

		tests := []struct {
			method string
			path   string
		}{
			{http.MethodGet, "/api/v1/sales/1"},
			{http.MethodPost, "/api/v1/sales/1/quote"},
			{http.MethodPut, "/api/v1/sales/1"},
			{http.MethodPatch, "/api/v1/sales/1"},
			{http.MethodDelete, "/api/v1/sales/1/lines/2"},
		}
		for _, tt := range tests {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, http.StatusOK, w.Code, "%s %s", tt.method, tt.path)
			assert.Equal(t, tt.method, w.Body.String())
		}
	})

	t.Run("applies middleware", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("project", "/projects")
		g.Use(func(c *gin.Context) {
			c.Header("X-Test-Middleware", "applied")
			c.Next()
		})
		g.GET("", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
		g.RegisterRoutes(engine.Group("/api/v1"))

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil))
		assert.Equal(t, "applied", w.Header().Get("X-Test-Middleware"))
	})

	t.Run("creates subgroups", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("catalog", "")

		products := g.Group("products", "/products")
		products.GET("", func(c *gin.Context) { c.String(http.StatusOK, "products list") })
		uoms := g.Group("uoms", "/uoms")
		uoms.GET("", func(c *gin.Context) { c.String(http.StatusOK, "uoms list") })

		g.RegisterRoutes(engine.Group("/api/v1"))

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "products list", w.Body.String())

		w = httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/uoms", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "uoms list", w.Body.String())
	})
}

func TestChain(t *testing.T) {
	h := func(c *gin.Context) {}
	assert.Len(t, chain(nil, h), 1)
	assert.Len(t, chain(h, h), 2)
}

func TestDomainGroup_Routes(t *testing.T) {
	g := NewDomainGroup("catalog", "")
	g.GET("/uoms", func(c *gin.Context) {})
	sub := g.Group("products", "/products")
	sub.POST("", func(c *gin.Context) {}).GET("/:id", func(c *gin.Context) {})

	assert.Equal(t, []string{
		"GET /uoms",
		"POST /products",
		"GET /products/:id",
	}, g.Routes())
}

func TestRouter_BasePath(t *testing.T) {
	assert.Equal(t, "/api/v1", NewRouter(gin.New()).BasePath())
	assert.Equal(t, "/api/v2", NewRouter(gin.New(), WithAPIVersion("v2")).BasePath())
}
