package main

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/todo/internal/domain/todo"
	"github.com/xiebiao/todo/internal/infrastructure/config"
	"github.com/xiebiao/todo/internal/infrastructure/event"
	"github.com/xiebiao/todo/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/todo/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/todo/internal/interface/http/router"
	"github.com/xiebiao/todo/pkg/circuitbreaker"
	"github.com/xiebiao/todo/pkg/mq"
)

// redisPingTimeout 启动时Redis连接检查超时
const redisPingTimeout = 5 * time.Second

// provideDB 创建数据库连接，cleanup时关闭连接池
func provideDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, func(), error) {
	db, err := mysql.NewDB(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

// provideServiceOptions 按配置组装领域服务的可选依赖
// cache.enabled → Redis缓存，mq.enabled → RabbitMQ事件发布
func provideServiceOptions(cfg *config.Config, logger *zap.Logger) ([]todo.ServiceOption, func(), error) {
	opts := []todo.ServiceOption{todo.WithLogger(logger)}
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.Cache.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		client, err := redis.NewClient(ctx, cfg.Redis, logger)
		cancel()
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() { client.Close() })
		opts = append(opts, todo.WithCache(redis.NewItemCache(client, cfg.Cache.KeyPrefix, cfg.Cache.ItemTTL)))
	}

	if cfg.MQ.Enabled {
		publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, logger)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, func() { publisher.Close() })

		breaker := circuitbreaker.New("todo-events", circuitbreaker.Config{
			Timeout:     cfg.MQ.BreakerTimeout,
			ReadyToTrip: circuitbreaker.ConsecutiveFailures(cfg.MQ.BreakerFailures),
			OnStateChange: func(name string, from, to circuitbreaker.State) {
				logger.Warn("事件发布熔断器状态变化",
					zap.String("name", name),
					zap.Stringer("from", from),
					zap.Stringer("to", to),
				)
			},
		})
		opts = append(opts, todo.WithPublisher(event.NewPublisher(publisher, event.WithBreaker(breaker))))
	}

	return opts, cleanup, nil
}

// provideTodoService 创建待办事项领域服务
func provideTodoService(store todo.Store, opts []todo.ServiceOption) todo.Service {
	return todo.NewService(store, opts...)
}

// provideRouterOptions 从配置提取路由选项
func provideRouterOptions(cfg *config.Config) router.Options {
	return router.Options{
		Mode:           cfg.Server.Mode,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsPath:    cfg.Metrics.Path,
		SwaggerEnabled: cfg.Swagger.Enabled,
		TracingEnabled: cfg.Tracing.Enabled,
	}
}
