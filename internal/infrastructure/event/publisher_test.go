package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/todo/internal/domain/todo"
	"github.com/xiebiao/todo/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/todo/pkg/errors"
)

type mockMessagePublisher struct {
	mock.Mock
}

func (m *mockMessagePublisher) Publish(ctx context.Context, routingKey, messageID string, message interface{}) error {
	return m.Called(ctx, routingKey, messageID, message).Error(0)
}

func TestPublisher_Publish(t *testing.T) {
	t.Run("事件类型作为路由键", func(t *testing.T) {
		mq := &mockMessagePublisher{}
		e := todo.NewEvent(todo.EventItemUpdated, []int{3})
		mq.On("Publish", mock.Anything, "todo.item.updated", e.ID, e).Return(nil)

		require.NoError(t, NewPublisher(mq).Publish(context.Background(), e))
		mq.AssertExpectations(t)
	})

	t.Run("发布失败包装为MQ错误", func(t *testing.T) {
		mq := &mockMessagePublisher{}
		mq.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("channel closed"))

		err := NewPublisher(mq).Publish(context.Background(), todo.NewEvent(todo.EventItemDeleted, []int{1}))
		assert.Equal(t, apperrors.ErrCodeMQError, apperrors.CodeOf(err))
		assert.ErrorContains(t, err, "channel closed")
	})
}

func TestPublisher_WithBreaker(t *testing.T) {
	mq := &mockMessagePublisher{}
	mq.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("connection reset")).Twice()

	cb := circuitbreaker.New("todo-events", circuitbreaker.Config{
		Timeout:     time.Minute,
		ReadyToTrip: circuitbreaker.ConsecutiveFailures(2),
	})
	p := NewPublisher(mq, WithBreaker(cb))

	for i := 0; i < 2; i++ {
		err := p.Publish(context.Background(), todo.NewEvent(todo.EventItemCreated, []int{i + 1}))
		assert.ErrorContains(t, err, "connection reset")
	}

	// 熔断后不再调用broker
	err := p.Publish(context.Background(), todo.NewEvent(todo.EventItemCreated, []int{3}))
	assert.ErrorIs(t, err, circuitbreaker.ErrOpenState)
	assert.Equal(t, apperrors.ErrCodeMQError, apperrors.CodeOf(err))
	mq.AssertNumberOfCalls(t, "Publish", 2)
}

var _ todo.EventPublisher = (*Publisher)(nil)
