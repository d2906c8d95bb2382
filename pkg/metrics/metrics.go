// Package metrics 提供基于Prometheus的指标收集
//
// 指标分为两类：
//   - HTTP指标：请求总数、耗时分布、处理中的请求数（由中间件记录）
//   - 业务指标：待办事项变更数、缓存命中情况、事件发布结果（由领域服务记录）
//
// 未调用InitMetrics时，所有记录函数均为no-op，便于单元测试直接使用领域服务。
//
// 命名规范：
//  1. Counter以`_total`结尾
//  2. Histogram以单位结尾（`_seconds`）
//  3. 标签只使用有限取值（method、path模板、status），避免高基数
package metrics

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	initOnce    sync.Once
	initialized atomic.Bool

	// HTTPRequestsTotal HTTP请求总数
	// 标签：method、path（路由模板，如/api/todoitems/:id）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// TodoItemMutationsTotal 待办事项变更数（按条计）
	// 标签：operation（todo.item.created/updated/deleted）
	TodoItemMutationsTotal *prometheus.CounterVec

	// CacheLookupsTotal 缓存查询次数
	// 标签：result（hit/miss/error）
	CacheLookupsTotal *prometheus.CounterVec

	// EventsPublishedTotal 事件发布次数
	// 标签：type、result（success/failure）
	EventsPublishedTotal *prometheus.CounterVec
)

// InitMetrics 初始化并注册所有指标到默认Registry
// 可重复调用，只有第一次生效
func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP请求耗时（秒）",
				// 1ms、10ms、100ms、500ms、1s、5s、10s
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		TodoItemMutationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "todo_item_mutations_total",
				Help: "待办事项变更条数",
			},
			[]string{"operation"},
		)

		CacheLookupsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "todo_item_cache_lookups_total",
				Help: "待办事项缓存查询次数",
			},
			[]string{"result"},
		)

		EventsPublishedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "todo_events_published_total",
				Help: "生命周期事件发布次数",
			},
			[]string{"type", "result"},
		)

		initialized.Store(true)
	})
}

// Enabled 是否已初始化
func Enabled() bool {
	return initialized.Load()
}

// RequestStarted 记录请求开始，返回结束时调用的函数
func RequestStarted() func() {
	if !Enabled() {
		return func() {}
	}
	HTTPRequestsInProgress.Inc()
	return HTTPRequestsInProgress.Dec
}

// ObserveHTTPRequest 记录一次HTTP请求
func ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if !Enabled() {
		return
	}
	HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ItemsMutated 记录n条待办事项变更
func ItemsMutated(operation string, n int) {
	if !Enabled() || n <= 0 {
		return
	}
	TodoItemMutationsTotal.WithLabelValues(operation).Add(float64(n))
}

// CacheLookup 记录缓存查询结果（hit/miss/error）
func CacheLookup(result string) {
	if !Enabled() {
		return
	}
	CacheLookupsTotal.WithLabelValues(result).Inc()
}

// EventPublished 记录事件发布结果
func EventPublished(eventType string, ok bool) {
	if !Enabled() {
		return
	}
	result := "success"
	if !ok {
		result = "failure"
	}
	EventsPublishedTotal.WithLabelValues(eventType, result).Inc()
}
