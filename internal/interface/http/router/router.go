package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/xiebiao/todo/docs" // swagger文档
	"github.com/xiebiao/todo/internal/interface/http/handler"
	"github.com/xiebiao/todo/internal/interface/http/middleware"
)

// Options 路由配置
type Options struct {
	Mode           string // debug | release | test
	MetricsEnabled bool
	MetricsPath    string
	SwaggerEnabled bool
	TracingEnabled bool
}

// New 创建Gin引擎并注册路由
//
// 路由表：
//
//	GET    /api/todoitems       列表
//	GET    /api/todoitems/:id   详情
//	POST   /api/todoitems       新建
//	PUT    /api/todoitems/:id   更新
//	DELETE /api/todoitems/:id   删除
//	DELETE /api/todoitems       批量删除（请求体为ID数组）
//	GET    /api/health          存活检查
func New(opts Options, logger *zap.Logger, todoHandler *handler.TodoItemHandler, healthHandler *handler.HealthHandler) *gin.Engine {
	// 设置运行模式
	switch opts.Mode {
	case gin.ReleaseMode, gin.TestMode, gin.DebugMode:
		gin.SetMode(opts.Mode)
	}

	r := gin.New()

	// 中间件顺序：recovery最外层，tracing先于logger以便日志带trace_id
	r.Use(middleware.Recovery(logger))
	if opts.TracingEnabled {
		r.Use(middleware.Tracing())
	}
	r.Use(middleware.Logger(logger))
	if opts.MetricsEnabled {
		r.Use(middleware.Metrics())

		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(promhttp.Handler()))
	}

	// Swagger文档
	// 访问 http://localhost:8080/swagger/index.html 查看API文档
	if opts.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")
	{
		api.GET("/health", healthHandler.Check)

		items := api.Group("/todoitems")
		{
			items.GET("", todoHandler.List)
			items.GET("/:id", todoHandler.Get)
			items.POST("", todoHandler.Create)
			items.PUT("/:id", todoHandler.Update)
			items.DELETE("/:id", todoHandler.Delete)
			items.DELETE("", todoHandler.DeleteMany)
		}
	}

	return r
}
