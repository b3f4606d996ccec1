package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"garden-stock-api/internal/handler/api"
	"garden-stock-api/internal/handler/httperr"
	"garden-stock-api/internal/handler/middleware"
	"garden-stock-api/internal/pkg/config"
	"garden-stock-api/internal/pkg/errs"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, stockHandler *api.StockHandler) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, stockHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, stockHandler *api.StockHandler) {
	engine.NoRoute(notFound)
	engine.GET("/", stockHandler.Index)
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	gardenGroup := engine.Group("/api/grow-a-garden")
	{
		addRoutes(gardenGroup, []route{
			{Method: http.MethodGet, Path: "/stock", Handler: stockHandler.GetStock},
			{Method: http.MethodGet, Path: "/stock/refresh", Handler: stockHandler.Refresh, Mw: []gin.HandlerFunc{middleware.NoStore()}},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func notFound(c *gin.Context) {
	httperr.AbortWithError(c, http.StatusNotFound, errs.Newf("no route for %s %s", c.Request.Method, c.Request.URL.Path), "Not found", nil)
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
