// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package scanq

// Queue is a bounded blocking MPMC queue that supports quiescent scans.
//
// Queue composes a lock-free Ring with a Guard and two counting semaphores.
// Push and Pop park the calling goroutine when the queue is momentarily
// full or empty instead of spinning; Scan drains in-flight operators and
// walks the buffer read-only with exclusive access.
//
// Every mutation goes through the guard's admission protocol, so a scanner
// can always reach a quiescent point. Operations never hold a lock across a
// suspension: inside the guarded window only the ring's bounded slot-claim
// CAS runs, and all parking happens outside it.
type Queue[T any] struct {
	ring  *Ring[T]
	guard Guard
	items *sem // Claimable items, seeded 0
	space *sem // Claimable empty slots, seeded capacity
}

// NewQueue creates a bounded blocking queue.
// Capacity must be a power of 2 and at least 2; panics otherwise.
func NewQueue[T any](capacity int) *Queue[T] {
	return &Queue[T]{
		ring:  NewRing[T](capacity),
		items: newSem(0),
		space: newSem(int64(capacity)),
	}
}

// Push adds an element to the queue, blocking while the queue is full.
// The element is copied into the queue's internal buffer.
func (q *Queue[T]) Push(elem *T) {
	for {
		q.guard.Enter()
		err := q.ring.Enqueue(elem)
		q.guard.Exit()
		if err == nil {
			q.items.post()
			return
		}
		q.space.wait()
	}
}

// Pop removes and returns the oldest element, blocking while the queue is
// empty.
func (q *Queue[T]) Pop() T {
	for {
		q.guard.Enter()
		elem, err := q.ring.Dequeue()
		q.guard.Exit()
		if err == nil {
			q.space.post()
			return elem
		}
		q.items.wait()
	}
}

// TryPush adds an element to the queue (non-blocking).
// Returns nil on success, ErrWouldBlock if the queue is full.
func (q *Queue[T]) TryPush(elem *T) error {
	q.guard.Enter()
	err := q.ring.Enqueue(elem)
	q.guard.Exit()
	if err == nil {
		q.items.post()
	}
	return err
}

// TryPop removes and returns an element from the queue (non-blocking).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *Queue[T]) TryPop() (T, error) {
	q.guard.Enter()
	elem, err := q.ring.Dequeue()
	q.guard.Exit()
	if err == nil {
		q.space.post()
	}
	return elem, err
}

// Scan invokes visit once for every element currently stored in the queue,
// oldest first, with exclusive access for the whole traversal.
//
// Scan waits for in-flight Push/Pop operations to finish, holds new ones off
// while it runs, then releases them. Producers and consumers stall only for
// the duration of the traversal; they are never failed.
//
// The visitor must treat the element as read-only and must not call Push,
// Pop, TryPush, TryPop, or Scan on the same queue (undefined behavior).
// At most one Scan may run at a time; the scanner role belongs to a single
// coordinator by contract.
func (q *Queue[T]) Scan(visit func(elem *T)) {
	q.guard.Quiesce(func() {
		q.ring.ForEach(visit)
	})
}

// Cap returns the queue capacity.
func (q *Queue[T]) Cap() int {
	return q.ring.Cap()
}
