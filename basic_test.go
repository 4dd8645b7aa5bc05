// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package scanq_test

import (
	"errors"
	"slices"
	"testing"
	"unsafe"

	"code.hybscloud.com/scanq"
)

// =============================================================================
// Ring - Basic Operations
// =============================================================================

// TestRingBasic tests basic Ring operations: capacity, FIFO order, and
// immediate ErrWouldBlock on full and empty.
func TestRingBasic(t *testing.T) {
	r := scanq.NewRing[int](4)

	if r.Cap() != 4 {
		t.Fatalf("Cap: got %d, want 4", r.Cap())
	}

	// Enqueue to capacity
	for i := range 4 {
		v := i + 100
		if err := r.Enqueue(&v); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}

	// Full ring returns ErrWouldBlock without waiting
	v := 999
	if err := r.Enqueue(&v); !errors.Is(err, scanq.ErrWouldBlock) {
		t.Fatalf("Enqueue on full: got %v, want ErrWouldBlock", err)
	}

	// Dequeue in FIFO order
	for i := range 4 {
		val, err := r.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue(%d): %v", i, err)
		}
		if val != i+100 {
			t.Fatalf("Dequeue(%d): got %d, want %d", i, val, i+100)
		}
	}

	// Empty ring returns ErrWouldBlock without waiting
	if _, err := r.Dequeue(); !errors.Is(err, scanq.ErrWouldBlock) {
		t.Fatalf("Dequeue on empty: got %v, want ErrWouldBlock", err)
	}
}

// TestRingWraparound tests that positions wrap correctly across several
// rounds of the buffer.
func TestRingWraparound(t *testing.T) {
	r := scanq.NewRing[int](4)

	for round := range 10 {
		for i := range 4 {
			v := round*10 + i
			if err := r.Enqueue(&v); err != nil {
				t.Fatalf("round %d Enqueue(%d): %v", round, i, err)
			}
		}
		for i := range 4 {
			val, err := r.Dequeue()
			if err != nil {
				t.Fatalf("round %d Dequeue(%d): %v", round, i, err)
			}
			if val != round*10+i {
				t.Fatalf("round %d Dequeue(%d): got %d, want %d", round, i, val, round*10+i)
			}
		}
	}
}

// =============================================================================
// Queue - Non-Blocking Surface
// =============================================================================

// TestQueueTryBasic tests TryPush/TryPop: capacity, FIFO order, and
// ErrWouldBlock on full and empty.
func TestQueueTryBasic(t *testing.T) {
	q := scanq.NewQueue[int](8)

	if q.Cap() != 8 {
		t.Fatalf("Cap: got %d, want 8", q.Cap())
	}

	for i := range 8 {
		v := i
		if err := q.TryPush(&v); err != nil {
			t.Fatalf("TryPush(%d): %v", i, err)
		}
	}

	v := 999
	if err := q.TryPush(&v); !errors.Is(err, scanq.ErrWouldBlock) {
		t.Fatalf("TryPush on full: got %v, want ErrWouldBlock", err)
	}

	for i := range 8 {
		val, err := q.TryPop()
		if err != nil {
			t.Fatalf("TryPop(%d): %v", i, err)
		}
		if val != i {
			t.Fatalf("TryPop(%d): got %d, want %d", i, val, i)
		}
	}

	if _, err := q.TryPop(); !errors.Is(err, scanq.ErrWouldBlock) {
		t.Fatalf("TryPop on empty: got %v, want ErrWouldBlock", err)
	}
}

// TestQueueFIFO tests strict FIFO order through the blocking surface with a
// single goroutine.
func TestQueueFIFO(t *testing.T) {
	q := scanq.NewQueue[int](16)

	for i := range 16 {
		v := i
		q.Push(&v)
	}
	for i := range 16 {
		if got := q.Pop(); got != i {
			t.Fatalf("Pop(%d): got %d, want %d", i, got, i)
		}
	}
}

// TestQueuePtrBasic tests the unsafe.Pointer flavor round-trip.
func TestQueuePtrBasic(t *testing.T) {
	q := scanq.NewQueuePtr(4)

	if q.Cap() != 4 {
		t.Fatalf("Cap: got %d, want 4", q.Cap())
	}

	vals := [4]int{10, 20, 30, 40}
	for i := range vals {
		if err := q.TryPush(unsafe.Pointer(&vals[i])); err != nil {
			t.Fatalf("TryPush(%d): %v", i, err)
		}
	}

	if err := q.TryPush(unsafe.Pointer(&vals[0])); !errors.Is(err, scanq.ErrWouldBlock) {
		t.Fatalf("TryPush on full: got %v, want ErrWouldBlock", err)
	}

	for i := range vals {
		p, err := q.TryPop()
		if err != nil {
			t.Fatalf("TryPop(%d): %v", i, err)
		}
		if got := *(*int)(p); got != vals[i] {
			t.Fatalf("TryPop(%d): got %d, want %d", i, got, vals[i])
		}
	}

	if _, err := q.TryPop(); !errors.Is(err, scanq.ErrWouldBlock) {
		t.Fatalf("TryPop on empty: got %v, want ErrWouldBlock", err)
	}
}

// =============================================================================
// Construction Validation
// =============================================================================

// TestPanicOnBadCapacity tests that all constructors reject capacities that
// are below 2 or not a power of 2. Capacity is validated, never rounded.
func TestPanicOnBadCapacity(t *testing.T) {
	badCaps := []int{-1, 0, 1, 3, 6, 100}

	constructors := []struct {
		name string
		fn   func(capacity int)
	}{
		{"Ring", func(c int) { scanq.NewRing[int](c) }},
		{"Queue", func(c int) { scanq.NewQueue[int](c) }},
		{"QueuePtr", func(c int) { scanq.NewQueuePtr(c) }},
	}

	for c := range slices.Values(constructors) {
		for n := range slices.Values(badCaps) {
			t.Run(c.name, func(t *testing.T) {
				defer func() {
					if r := recover(); r == nil {
						t.Fatalf("expected panic for capacity %d", n)
					}
				}()
				c.fn(n)
			})
		}
	}
}

// TestValidCapacities tests that power-of-2 capacities >= 2 are accepted
// as-is.
func TestValidCapacities(t *testing.T) {
	for n := range slices.Values([]int{2, 4, 8, 1024}) {
		q := scanq.NewQueue[int](n)
		if q.Cap() != n {
			t.Fatalf("Cap: got %d, want %d", q.Cap(), n)
		}
	}
}
