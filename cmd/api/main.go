package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/todo/internal/infrastructure/config"
	"github.com/xiebiao/todo/pkg/logger"
	"github.com/xiebiao/todo/pkg/metrics"
	"github.com/xiebiao/todo/pkg/tracing"
)

// @title           Todo API
// @version         1.0
// @description     待办事项管理服务
// @BasePath        /
func main() {
	configPath := flag.String("config", "", "配置文件路径（默认按TODO_ENV加载config/config.yaml）")
	flag.Parse()

	// 1. 加载配置
	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化日志
	logOpts := logger.Options{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Development: cfg.Server.Mode == "debug",
		WithCaller:  cfg.Log.EnableCaller,
	}
	if cfg.Log.Output != "" {
		logOpts.OutputPaths = []string{cfg.Log.Output}
	}
	zlog, err := logger.New(logOpts)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer zlog.Sync()

	zlog.Info("配置加载成功",
		zap.String("name", cfg.Server.Name),
		zap.Int("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("db_driver", cfg.Database.Driver),
	)

	// 3. 监控指标
	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
	}

	// 4. 链路追踪
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(tracing.Options{
			ServiceName: cfg.Server.Name,
			Endpoint:    cfg.Tracing.Endpoint,
			Insecure:    cfg.Tracing.Insecure,
			SampleRatio: cfg.Tracing.SampleRatio,
		})
		if err != nil {
			zlog.Fatal("初始化链路追踪失败", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				zlog.Warn("关闭链路追踪失败", zap.Error(err))
			}
		}()
	}

	// 5. 依赖注入（Wire生成）
	engine, cleanup, err := InitializeApp(cfg, zlog)
	if err != nil {
		zlog.Fatal("初始化应用失败", zap.Error(err))
	}
	defer cleanup()

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 6. 启动HTTP服务
	go func() {
		zlog.Info("服务启动成功", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("HTTP服务启动失败", zap.Error(err))
		}
	}()

	// 7. 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("服务强制关闭", zap.Error(err))
	}

	zlog.Info("服务已关闭")
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}
