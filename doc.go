// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package scanq provides a bounded MPMC queue with quiescent-scan support.
//
// The package solves one problem: a lock-free multi-producer multi-consumer
// queue whose contents a separate, lower-frequency scanner can enumerate
// while producers and consumers keep running, without ever observing a
// half-written slot and without taking a lock on every push and pop.
// The canonical caller is a collector-style coordinator that must traverse
// live references; any "walk the buffer read-only while writers are briefly
// paused" workload fits.
//
// # Components
//
//   - Ring: lock-free CAS sequence-tagged MPMC ring buffer (non-blocking)
//   - Guard: scan/operate mutual-exclusion protocol (flag + operator counter)
//   - Queue: Ring + Guard + counting semaphores → blocking Push/Pop/Scan
//   - QueuePtr: unsafe.Pointer flavor of Queue for zero-copy hand-off
//
// # Quick Start
//
//	q := scanq.NewQueue[Job](1024)
//
//	// Producers (block while full)
//	q.Push(&job)
//
//	// Consumers (block while empty)
//	job := q.Pop()
//
//	// One coordinator, at any time
//	q.Scan(func(j *Job) {
//	    mark(j)
//	})
//
// Capacity must be a power of 2 and at least 2; constructors panic
// otherwise. A bad capacity is a construction-time defect, never a runtime
// error, so it is rejected deterministically and never rounded.
//
// # Blocking and Non-Blocking Surfaces
//
// Push and Pop park the calling goroutine on a counting semaphore when the
// queue is momentarily full or empty; they never spin waiting for data.
// The only spins in the hot path are the bounded per-slot CAS retry and the
// guard admission check, both O(1) with backoff.
//
// TryPush and TryPop are the non-blocking variants and return
// [ErrWouldBlock] instead of waiting:
//
//	if err := q.TryPush(&job); scanq.IsWouldBlock(err) {
//	    // full — shed load or back off
//	}
//
// The raw Ring is also exported for callers that want the lock-free core
// without the blocking wrapper or the scan guard:
//
//	r := scanq.NewRing[Event](4096)
//	err := r.Enqueue(&ev)        // ErrWouldBlock when full
//	ev, err := r.Dequeue()       // ErrWouldBlock when empty
//
// Note that a bare Ring offers no scan safety: ForEach requires externally
// guaranteed exclusivity. Use Queue when scans must coexist with writers.
//
// # Scan Semantics
//
// Scan admits the caller as the scanner: new Push/Pop operators are held at
// the guard, operators already inside finish their bounded slot claim, and
// once the queue is quiescent the visitor runs with exclusive access. The
// visitor is invoked once per currently-stored element, oldest first, and
// receives a pointer it must treat as read-only. Writers are paused for the
// duration of the traversal, never failed.
//
// Two contractual limits, enforced by convention rather than at runtime:
//
//   - At most one scanner at a time. Make the scanner role a singleton
//     owned by one coordinator.
//   - The visitor must not call Push, Pop, TryPush, TryPop, or Scan on the
//     same queue. Reentrancy is undefined.
//
// # Ordering Guarantee
//
// Elements are dequeued in the order their producing slot was claimed
// (position-counter order), not wall-clock call order: two producers racing
// for a slot are ordered by whichever CAS wins. Per slot the queue is
// strictly FIFO.
//
// # Memory Ordering
//
// The ring uses the sequence-tag protocol: a producer publishes the value
// with a release store of the slot tag, a consumer acquires it before
// reading, and republishes the slot for the next round the same way. The
// guard's flag and counter use totally ordered operations; weaker orderings
// may be sufficient but are not adopted without a memory-model proof.
//
// # Error Handling
//
// Transient full/empty is not a failure: it is signaled as [ErrWouldBlock],
// sourced from [code.hybscloud.com/iox] for ecosystem consistency, and
// classified with [IsWouldBlock], [IsSemantic], and [IsNonFailure].
// Construction with an invalid capacity panics. A failure of the blocking
// primitive itself signals process-level resource exhaustion and is treated
// as fatal; it is never retried.
//
// There is deliberately no timeout or cancellation in this core. Callers
// that need bounded waiting must layer timeout-capable blocking on top.
//
// # Race Detection
//
// Go's race detector is not designed for lock-free algorithm verification:
// it cannot observe happens-before established through atomic operations on
// separate variables, so correct runs of the ring may be reported as races.
// Tests incompatible with race detection skip via the RaceEnabled constant.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit
// memory ordering, [code.hybscloud.com/spin] for CPU pause instructions,
// and golang.org/x/sync/semaphore for the blocking layer.
package scanq
