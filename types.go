// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package scanq

// Buffer is the combined producer-consumer interface for a non-blocking
// bounded FIFO buffer.
//
// Buffer provides non-blocking Enqueue and Dequeue operations. Both return
// ErrWouldBlock when they cannot proceed (buffer full or empty).
//
// The interface intentionally excludes length because accurate counts in
// lock-free algorithms require expensive cross-core synchronization.
// Track counts in application logic when needed.
type Buffer[T any] interface {
	Producer[T]
	Consumer[T]
	Cap() int
}

// Producer is the interface for enqueueing elements.
//
// The element is passed by pointer to avoid copying large structs. The
// buffer stores a copy of the pointed-to value, so the original can be
// modified after Enqueue returns.
type Producer[T any] interface {
	// Enqueue adds an element (non-blocking).
	// Returns nil on success, ErrWouldBlock if the buffer is full.
	Enqueue(elem *T) error
}

// Consumer is the interface for dequeueing elements.
//
// The element is returned by value (copied out of the internal buffer).
// The vacated slot is cleared to allow garbage collection of referenced
// objects.
type Consumer[T any] interface {
	// Dequeue removes and returns an element (non-blocking).
	// Returns (zero-value, ErrWouldBlock) if the buffer is empty.
	Dequeue() (T, error)
}

// Scannable is the capability interface for quiescent read-only traversal.
//
// Scan invokes visit once per currently-stored element with exclusive
// access guaranteed for the whole traversal: writers are paused, never
// failed. The visitor must not mutate the element or reenter the queue.
//
// The interface decouples collector-style callers that enumerate live
// references from any particular queue implementation.
type Scannable[T any] interface {
	Scan(visit func(elem *T))
}

// Compile-time interface conformance.
var (
	_ Buffer[int]    = (*Ring[int])(nil)
	_ Scannable[int] = (*Queue[int])(nil)
)

// pad is cache line padding to prevent false sharing.
type pad [64]byte

// padShort is padding to fill cache line after 8-byte field.
type padShort [64 - 8]byte
