// Package tracing 提供基于OpenTelemetry的链路追踪
//
// 一次请求在本服务内的Span层级：
//
//	HTTP GET /api/todoitems/:id        (middleware.Tracing)
//	└─ todo.Service/GetByID            (领域服务)
//	   └─ gorm查询                      (仓储，继承ctx)
//
// 未启用追踪时不会创建Exporter，otel全局Provider保持no-op，
// StartSpan仍可安全调用。
//
// 使用示例：
//
//	shutdown, err := tracing.InitTracer(tracing.Options{
//	    ServiceName: "todo-api",
//	    Endpoint:    "localhost:4317",
//	    SampleRatio: 1,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer shutdown(context.Background())
package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// Options 追踪配置
type Options struct {
	ServiceName string
	Endpoint    string  // OTLP gRPC端点，如 localhost:4317
	Insecure    bool    // 禁用TLS（本地Jaeger）
	SampleRatio float64 // 采样率，>=1表示全量采样
}

// InitTracer 初始化全局Tracer Provider（OTLP gRPC导出）
// 返回的shutdown必须在程序退出前调用，刷新未发送的Span
func InitTracer(opts Options) (func(context.Context) error, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 1. 创建OTLP gRPC Exporter
	clientOpts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(opts.Endpoint)}
	if opts.Insecure {
		clientOpts = append(clientOpts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("创建OTLP exporter失败: %w", err)
	}

	// 2. 批量发送
	tp, err := NewProvider(opts, sdktrace.WithBatcher(exporter))
	if err != nil {
		return nil, err
	}

	// 3. 设置全局Provider和传播器
	Install(tp)

	shutdown := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}
	return shutdown, nil
}

// NewProvider 创建带服务资源属性和采样策略的TracerProvider
// extra用于注入Span处理器（生产为Batcher，测试为内存Exporter）
func NewProvider(opts Options, extra ...sdktrace.TracerProviderOption) (*sdktrace.TracerProvider, error) {
	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(semconv.ServiceName(opts.ServiceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("创建资源属性失败: %w", err)
	}

	sampler := sdktrace.AlwaysSample()
	if opts.SampleRatio > 0 && opts.SampleRatio < 1 {
		sampler = sdktrace.ParentBased(sdktrace.TraceIDRatioBased(opts.SampleRatio))
	}

	providerOpts := append([]sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sampler),
		sdktrace.WithResource(res),
	}, extra...)
	return sdktrace.NewTracerProvider(providerOpts...), nil
}

// Install 设置全局TracerProvider和W3C传播器
func Install(tp trace.TracerProvider) {
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)
}

// StartSpan 创建Span（ctx中有父Span时自动成为子Span）
func StartSpan(ctx context.Context, tracerName, spanName string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, spanName)
}

// EndSpan 结束Span，err非空时记录错误并标记失败
//
//	ctx, span := tracing.StartSpan(ctx, tracerName, "Create")
//	defer func() { tracing.EndSpan(span, err) }()
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// ExtractTraceID 从Context提取TraceID（用于关联日志）
func ExtractTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().TraceID().String()
}

// ExtractSpanID 从Context提取SpanID
func ExtractSpanID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().SpanID().String()
}
