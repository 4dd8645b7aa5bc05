// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package scanq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Ring is a CAS-based multi-producer multi-consumer bounded ring buffer.
//
// Ring uses per-slot sequence numbers which provide:
//   - Full ABA safety via sequence-based validation
//   - Works with both distinct and non-distinct values
//   - Good performance under moderate contention
//
// Enqueue and Dequeue are non-blocking and return ErrWouldBlock instead of
// waiting. For a blocking surface with quiescent-scan support, use Queue,
// which layers a Guard and counting semaphores over a Ring.
//
// Memory: n slots (16+ bytes per slot)
type Ring[T any] struct {
	_        pad
	tail     atomix.Uint64 // Producer index
	_        pad
	head     atomix.Uint64 // Consumer index
	_        pad
	buffer   []ringSlot[T]
	mask     uint64
	capacity uint64
}

type ringSlot[T any] struct {
	seq  atomix.Uint64
	data T
	_    padShort // Pad to cache line
}

// NewRing creates a new CAS-based MPMC ring buffer.
//
// Capacity must be a power of 2 and at least 2, so that position-to-index
// mapping is a single mask. Panics otherwise; capacity is never rounded.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 2 || capacity&(capacity-1) != 0 {
		panic("scanq: capacity must be a power of 2, >= 2")
	}

	n := uint64(capacity)
	r := &Ring[T]{
		buffer:   make([]ringSlot[T], n),
		mask:     n - 1,
		capacity: n,
	}

	for i := uint64(0); i < n; i++ {
		r.buffer[i].seq.StoreRelaxed(i)
	}

	return r
}

// Enqueue adds an element to the ring.
// Returns ErrWouldBlock immediately if the ring is full; it never waits.
func (r *Ring[T]) Enqueue(elem *T) error {
	sw := spin.Wait{}
	for {
		tail := r.tail.LoadAcquire()
		slot := &r.buffer[tail&r.mask]
		seq := slot.seq.LoadAcquire()
		diff := int64(seq) - int64(tail)

		if diff == 0 {
			if r.tail.CompareAndSwapAcqRel(tail, tail+1) {
				slot.data = *elem
				slot.seq.StoreRelease(tail + 1)
				return nil
			}
		} else if diff < 0 {
			return ErrWouldBlock
		}
		sw.Once()
	}
}

// Dequeue removes and returns an element from the ring.
// Returns (zero-value, ErrWouldBlock) immediately if the ring is empty.
// The vacated slot is cleared so referenced objects can be collected.
func (r *Ring[T]) Dequeue() (T, error) {
	sw := spin.Wait{}
	for {
		head := r.head.LoadAcquire()
		slot := &r.buffer[head&r.mask]
		seq := slot.seq.LoadAcquire()
		diff := int64(seq) - int64(head+1)

		if diff == 0 {
			if r.head.CompareAndSwapAcqRel(head, head+1) {
				elem := slot.data
				var zero T
				slot.data = zero
				slot.seq.StoreRelease(head + r.capacity)
				return elem, nil
			}
		} else if diff < 0 {
			var zero T
			return zero, ErrWouldBlock
		}
		sw.Once()
	}
}

// ForEach visits every element currently stored in the ring, oldest first.
//
// The caller must guarantee that no Enqueue or Dequeue runs for the duration
// of the call. ForEach performs no slot claims and leaves the ring unchanged;
// the visitor receives a pointer into the slot and must treat it as
// read-only. Queue.Scan provides the required exclusivity via its Guard.
func (r *Ring[T]) ForEach(visit func(elem *T)) {
	tail := r.tail.LoadAcquire()
	head := r.head.LoadAcquire()
	for pos := head; pos != tail; pos++ {
		slot := &r.buffer[pos&r.mask]
		// Under exclusivity every claimed slot is fully published.
		if slot.seq.LoadAcquire() == pos+1 {
			visit(&slot.data)
		}
	}
}

// Cap returns the ring capacity.
func (r *Ring[T]) Cap() int {
	return int(r.capacity)
}
