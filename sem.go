// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package scanq

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// semLimit bounds the internal weighted semaphore. Queue posts a token per
// successful operation but the fast path never consumes one, so the live
// count can exceed the queue capacity; the limit only has to stay out of
// reach of any realistic token accumulation.
const semLimit = 1 << 40

// sem is a counting semaphore: wait blocks until the count is positive and
// decrements it, post increments it and wakes one waiter.
//
// An error from the underlying primitive is not a retryable user error; it
// signals resource exhaustion and is treated as fatal.
type sem struct {
	w *semaphore.Weighted
}

// newSem creates a semaphore seeded with initial tokens.
func newSem(initial int64) *sem {
	s := &sem{w: semaphore.NewWeighted(semLimit)}
	if err := s.w.Acquire(context.Background(), semLimit-initial); err != nil {
		panic("scanq: semaphore init: " + err.Error())
	}
	return s
}

// post increments the count, waking one waiter if any.
func (s *sem) post() {
	s.w.Release(1)
}

// wait blocks the calling goroutine until the count is positive, then
// decrements it.
func (s *sem) wait() {
	if err := s.w.Acquire(context.Background(), 1); err != nil {
		panic("scanq: semaphore wait: " + err.Error())
	}
}
