package mysql

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/todo/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架，驱动由database.driver选择（mysql | sqlite）
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 启动时连接检查失败按指数退避重试
// 5. database.auto_migrate开启时自动迁移表结构
func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	// 1. 选择驱动
	dialector, err := openDialector(cfg.Database)
	if err != nil {
		return nil, err
	}

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 5. 测试连接（带重试）
	err = pingWithRetry(context.Background(), sqlDB.PingContext,
		cfg.Database.MaxRetries, cfg.Database.MaxRetryDelay, log)
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Info("数据库连接成功", zap.String("driver", cfg.Database.Driver))

	// 6. 自动迁移表结构（开发环境）
	// 注意：生产环境使用migrations/下的版本化脚本
	if cfg.Database.AutoMigrate {
		if err := autoMigrate(db); err != nil {
			return nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
	}

	return db, nil
}

func openDialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverMySQL, "":
		return mysql.Open(cfg.DSN()), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", cfg.Driver)
	}
}

// initialRetryDelay 第一次重试前的等待时间
const initialRetryDelay = 500 * time.Millisecond

// retryDelay 第attempt次重试的等待时间（从0开始，翻倍，不超过maxDelay）
func retryDelay(attempt int, maxDelay time.Duration) time.Duration {
	delay := initialRetryDelay << attempt
	if maxDelay > 0 && (delay > maxDelay || delay <= 0) {
		return maxDelay
	}
	return delay
}

// pingWithRetry 连接检查，最多重试maxRetries次
func pingWithRetry(ctx context.Context, ping func(context.Context) error, maxRetries int, maxDelay time.Duration, log *zap.Logger) error {
	var err error
	for attempt := 0; ; attempt++ {
		if err = ping(ctx); err == nil {
			return nil
		}
		if attempt >= maxRetries {
			return err
		}

		delay := retryDelay(attempt, maxDelay)
		log.Warn("数据库连接失败，准备重试",
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", maxRetries),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

// autoMigrate 自动迁移表结构
// 学习要点：
// 1. AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
// 2. 生产环境应使用版本化的迁移脚本，不要依赖AutoMigrate
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&TodoItemModel{})
}
