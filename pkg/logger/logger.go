// Package logger 基于zap构建应用日志
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options 日志配置
type Options struct {
	Level       string   // debug/info/warn/error
	Format      string   // json/console
	OutputPaths []string // 默认stdout
	Development bool     // 开发模式：堆栈更详细、DPanic会panic
	WithCaller  bool     // 记录调用位置
}

// New 创建zap.Logger
func New(opts Options) (*zap.Logger, error) {
	// 1. 解析日志级别
	level := zap.NewAtomicLevel()
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, fmt.Errorf("无效的日志级别 %q: %w", opts.Level, err)
		}
	}

	// 2. 编码格式
	encoding := opts.Format
	if encoding == "" {
		encoding = "json"
	}
	if encoding != "json" && encoding != "console" {
		return nil, fmt.Errorf("无效的日志格式 %q", opts.Format)
	}

	outputs := opts.OutputPaths
	if len(outputs) == 0 {
		outputs = []string{"stdout"}
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "time"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if encoding == "console" {
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	cfg := zap.Config{
		Level:            level,
		Development:      opts.Development,
		Encoding:         encoding,
		EncoderConfig:    encoderCfg,
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
	}

	// 3. 构建
	var buildOpts []zap.Option
	if opts.WithCaller {
		buildOpts = append(buildOpts, zap.AddCaller())
	} else {
		cfg.DisableCaller = true
	}
	logger, err := cfg.Build(buildOpts...)
	if err != nil {
		return nil, fmt.Errorf("创建日志失败: %w", err)
	}
	return logger, nil
}
