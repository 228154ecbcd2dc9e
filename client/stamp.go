package client

import (
	"sync/atomic"
	"time"
)

// stamper yields strictly increasing millisecond stamps for the `_t`
// cache-busting parameter, even when calls land in the same millisecond.
type stamper struct {
	now  func() time.Time
	last atomic.Int64
}

func newStamper(now func() time.Time) *stamper {
	return &stamper{now: now}
}

func (s *stamper) Next() int64 {
	for {
		last := s.last.Load()
		next := s.now().UnixMilli()
		if next <= last {
			next = last + 1
		}
		if s.last.CompareAndSwap(last, next) {
			return next
		}
	}
}
