//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 生成命令：wire gen ./cmd/api
// 生成结果：wire_gen.go（InitializeApp的实际实现）

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/xiebiao/todo/internal/domain/todo"
	"github.com/xiebiao/todo/internal/infrastructure/config"
	"github.com/xiebiao/todo/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/todo/internal/interface/http/handler"
	"github.com/xiebiao/todo/internal/interface/http/router"
)

// infrastructureSet 基础设施层依赖：数据库、缓存、消息队列
var infrastructureSet = wire.NewSet(
	provideDB,
	provideServiceOptions,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewTodoStore,
	wire.Bind(new(todo.Store), new(*mysql.TodoStore)),
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	provideTodoService,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewTodoItemHandler,
	handler.NewHealthHandler,
)

// routerSet Gin引擎
var routerSet = wire.NewSet(
	provideRouterOptions,
	router.New,
)

// InitializeApp 初始化整个应用
// cleanup按创建的逆序关闭MQ、Redis、数据库连接
func InitializeApp(cfg *config.Config, logger *zap.Logger) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		handlerSet,
		routerSet,
	)
	return nil, nil, nil
}
