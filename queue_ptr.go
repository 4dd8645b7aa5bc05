// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package scanq

import "unsafe"

// QueuePtr is a bounded blocking MPMC queue for unsafe.Pointer values with
// quiescent-scan support.
//
// QueuePtr passes pointers directly without copying the pointed-to object.
// The producer transfers ownership to the consumer: after Push, the producer
// must not access the object again. The only place two threads may observe
// the same element is inside a Scan visitor, which holds exclusive access.
//
// This is the natural shape for collector-style callers that need to
// enumerate live references: Scan visits every stored pointer while
// producers and consumers are briefly paused.
type QueuePtr struct {
	q *Queue[unsafe.Pointer]
}

// NewQueuePtr creates a bounded blocking pointer queue.
// Capacity must be a power of 2 and at least 2; panics otherwise.
func NewQueuePtr(capacity int) *QueuePtr {
	return &QueuePtr{q: NewQueue[unsafe.Pointer](capacity)}
}

// Push adds a pointer to the queue, blocking while the queue is full.
// Ownership of the pointed-to object transfers to the queue.
func (q *QueuePtr) Push(elem unsafe.Pointer) {
	q.q.Push(&elem)
}

// Pop removes and returns the oldest pointer, blocking while the queue is
// empty. Ownership transfers to the caller.
func (q *QueuePtr) Pop() unsafe.Pointer {
	return q.q.Pop()
}

// TryPush adds a pointer to the queue (non-blocking).
// Returns ErrWouldBlock immediately if the queue is full.
func (q *QueuePtr) TryPush(elem unsafe.Pointer) error {
	return q.q.TryPush(&elem)
}

// TryPop removes and returns a pointer from the queue (non-blocking).
// Returns (nil, ErrWouldBlock) immediately if the queue is empty.
func (q *QueuePtr) TryPop() (unsafe.Pointer, error) {
	return q.q.TryPop()
}

// Scan invokes visit once for every pointer currently stored in the queue,
// oldest first, with exclusive access for the whole traversal. The same
// contract as Queue.Scan applies: read-only, no reentrancy, one scanner.
func (q *QueuePtr) Scan(visit func(elem unsafe.Pointer)) {
	q.q.Scan(func(elem *unsafe.Pointer) {
		visit(*elem)
	})
}

// Cap returns the queue capacity.
func (q *QueuePtr) Cap() int {
	return q.q.Cap()
}
