package mysql

import (
	"time"
)

// EntryState 暂存变更的类型
type EntryState int

const (
	StateAdded EntryState = iota + 1
	StateModified
	StateDeleted
)

func (s EntryState) String() string {
	switch s {
	case StateAdded:
		return "added"
	case StateModified:
		return "modified"
	case StateDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Entry 一条暂存变更
type Entry struct {
	State  EntryState
	Entity interface{}
}

// PreCommitHook 提交前钩子，在写入存储之前对全部暂存变更执行
// now是本次提交的统一时间
type PreCommitHook func(entries []Entry, now time.Time)

// Timestamped 需要由持久化层写入时间戳的实体
type Timestamped interface {
	SetCreatedAt(t time.Time)
	SetUpdatedAt(t time.Time)
}

// TimestampHook 时间戳钩子
// - Added：CreatedAt和UpdatedAt都写入now（两者相等）
// - Modified：只刷新UpdatedAt
// - Deleted：不处理
func TimestampHook(entries []Entry, now time.Time) {
	for _, e := range entries {
		ts, ok := e.Entity.(Timestamped)
		if !ok {
			continue
		}
		switch e.State {
		case StateAdded:
			ts.SetCreatedAt(now)
			ts.SetUpdatedAt(now)
		case StateModified:
			ts.SetUpdatedAt(now)
		}
	}
}

// changeSet 工作单元内的暂存变更（保持登记顺序）
type changeSet struct {
	entries []Entry
}

func (cs *changeSet) track(state EntryState, entity interface{}) {
	cs.entries = append(cs.entries, Entry{State: state, Entity: entity})
}

func (cs *changeSet) len() int {
	return len(cs.entries)
}

func (cs *changeSet) reset() {
	cs.entries = nil
}
