package event

import (
	"context"

	"github.com/xiebiao/todo/internal/domain/todo"
	"github.com/xiebiao/todo/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/todo/pkg/errors"
)

// MessagePublisher 消息发布能力（pkg/mq.Publisher实现）
type MessagePublisher interface {
	Publish(ctx context.Context, routingKey, messageID string, message interface{}) error
}

// Publisher 将待办事项生命周期事件发布到消息队列
// routing_key为事件类型，消息ID为事件ID
type Publisher struct {
	mq      MessagePublisher
	breaker *circuitbreaker.CircuitBreaker
}

// Option 发布者可选配置
type Option func(*Publisher)

// WithBreaker 熔断保护：broker持续不可用时直接失败，不再阻塞写请求
func WithBreaker(cb *circuitbreaker.CircuitBreaker) Option {
	return func(p *Publisher) {
		p.breaker = cb
	}
}

// NewPublisher 创建事件发布者
func NewPublisher(mq MessagePublisher, opts ...Option) *Publisher {
	p := &Publisher{mq: mq}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish 实现todo.EventPublisher
func (p *Publisher) Publish(ctx context.Context, e todo.Event) error {
	publish := func() error {
		return p.mq.Publish(ctx, string(e.Type), e.ID, e)
	}

	var err error
	if p.breaker != nil {
		err = p.breaker.Execute(publish)
	} else {
		err = publish()
	}
	if err != nil {
		return apperrors.WrapCode(err, apperrors.ErrCodeMQError, "发布事件失败")
	}
	return nil
}
