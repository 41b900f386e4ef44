package handler

import (
	"net/http"

	"previsit-intake/internal/handler/api"
	"previsit-intake/internal/handler/middleware"
	"previsit-intake/internal/observability/metrics"
	"previsit-intake/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Calendar *api.CalendarHandler
	PreVisit *api.PreVisitHandler
	Report   *api.ReportHandler
	Workflow *api.WorkflowHandler
}

type Observability struct {
	Logger   *middleware.Logger
	Metrics  *metrics.HTTPMetrics
	Gatherer prometheus.Gatherer
}

func NewRouter(engine *gin.Engine, cfg config.Config, obs Observability, h Handlers) {
	setupMiddleware(engine, cfg, obs)
	setupRoutes(engine, obs, h)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, obs Observability) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(obs.Logger.LoggingMiddleware())
	engine.Use(middleware.RequestMetrics(obs.Metrics))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, obs Observability, h Handlers) {
	jsonBody := []gin.HandlerFunc{middleware.RequireJSON()}

	engine.GET("/health", healthCheck)
	if obs.Gatherer != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(obs.Gatherer, promhttp.HandlerOpts{})))
	}

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup.Group("/calendar"), []route{
			{Method: http.MethodGet, Path: "", Handler: h.Calendar.ListEvents},
			{Method: http.MethodPost, Path: "/availability/check", Handler: h.Calendar.CheckAvailability, Mw: jsonBody},
			{Method: http.MethodGet, Path: "/suggestions", Handler: h.Calendar.SuggestSlots},
			{Method: http.MethodPost, Path: "/events", Handler: h.Calendar.CreateEvent, Mw: jsonBody},
			{Method: http.MethodGet, Path: "/events/:id", Handler: h.Calendar.GetEvent},
		})

		addRoutes(apiGroup.Group("/pre-visit"), []route{
			{Method: http.MethodGet, Path: "/question/:id", Handler: h.PreVisit.NextQuestion},
			{Method: http.MethodPost, Path: "/answer", Handler: h.PreVisit.Answer, Mw: jsonBody},
			{Method: http.MethodPost, Path: "/generate-report", Handler: h.PreVisit.GenerateReport, Mw: jsonBody},
			{Method: http.MethodGet, Path: "/history/:id", Handler: h.PreVisit.History},
		})

		addRoutes(apiGroup.Group("/report"), []route{
			{Method: http.MethodGet, Path: "/:id", Handler: h.Report.Get},
		})

		addRoutes(apiGroup.Group("/workflow"), []route{
			{Method: http.MethodGet, Path: "/state/:id", Handler: h.Workflow.State},
			{Method: http.MethodPost, Path: "/process", Handler: h.Workflow.Process, Mw: jsonBody},
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
