package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/funnyprom/work-management-system/config"
	"github.com/funnyprom/work-management-system/internal/api/handler"
	"github.com/funnyprom/work-management-system/internal/api/middleware"
	"github.com/funnyprom/work-management-system/pkg/metrics"
	"github.com/funnyprom/work-management-system/pkg/response"
)

// Setup 初始化并返回 Gin 路由引擎
// limiter 为 nil 时写接口不限流；m 为 nil 时不暴露 /metrics
func Setup(cfg *config.Config, h *handler.Handler, limiter middleware.RateLimiter, m *metrics.Metrics, logger *zap.Logger) *gin.Engine {
	if cfg.Server.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	if m != nil {
		r.Use(m.Middleware())
	}
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── 服务端点 ──
	r.GET("/", h.System.Index)
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	// 写接口限流
	write := func(hf gin.HandlerFunc) []gin.HandlerFunc {
		if !cfg.RateLimit.Enabled || limiter == nil {
			return []gin.HandlerFunc{hf}
		}
		return []gin.HandlerFunc{
			middleware.RateLimit(limiter, cfg.RateLimit.Requests, cfg.RateLimit.Window, logger),
			hf,
		}
	}

	api := r.Group("/api")
	{
		api.GET("/health", h.System.Health)

		// 采购申请模块
		prs := api.Group("/purchase-requests")
		{
			prs.GET("", h.PurchaseRequest.ListPurchaseRequests)
			prs.GET("/stats/summary", h.PurchaseRequest.GetStats)
			prs.GET("/export", h.Export.ExportPurchaseRequests)
			prs.GET("/:id", h.PurchaseRequest.GetPurchaseRequest)
			prs.POST("", write(h.PurchaseRequest.CreatePurchaseRequest)...)
			prs.PUT("/:id", write(h.PurchaseRequest.UpdatePurchaseRequest)...)
			prs.DELETE("/:id", write(h.PurchaseRequest.DeletePurchaseRequest)...)
		}

		// 任务模块
		tasks := api.Group("/tasks")
		{
			tasks.GET("", h.Task.ListTasks)
			tasks.GET("/stats/summary", h.Task.GetStats)
			tasks.GET("/:id", h.Task.GetTask)
			tasks.POST("", write(h.Task.CreateTask)...)
			tasks.PUT("/:id", write(h.Task.UpdateTask)...)
			tasks.DELETE("/:id", write(h.Task.DeleteTask)...)
		}

		// 部门模块
		departments := api.Group("/departments")
		{
			departments.GET("", h.Department.ListDepartments)
			departments.POST("", write(h.Department.CreateDepartment)...)
		}

		// 用户模块
		users := api.Group("/users")
		{
			users.GET("", h.User.ListUsers)
			users.GET("/:id", h.User.GetUser)
			users.POST("", write(h.User.CreateUser)...)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "Route not found")
	})

	return r
}
