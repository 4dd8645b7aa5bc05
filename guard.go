// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package scanq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Guard is a scan/operate mutual-exclusion protocol.
//
// Guard admits any number of concurrent operators (threads performing a
// short, bounded buffer operation) while allowing a single scanner to drain
// them and run with exclusive access. It holds no lock: the protocol is one
// flag plus one active-operator counter.
//
// The guard moves through three phases:
//
//	Open     — no scan pending, operators flow freely
//	Draining — scan requested; operators already inside finish,
//	           no new ones are admitted
//	Scanning — the counter reached zero; the scanner runs exclusively,
//	           then reopens the guard
//
// At most one scanner may be active at a time. The guard does not detect
// violations; concurrent Quiesce calls are undefined behavior. Make the
// scanner role a singleton owned by one coordinator.
//
// The flag and counter use totally ordered atomic operations. Weaker
// acquire/release orderings may be sufficient but have not been proven
// against the memory model, so the conservative ordering stays.
type Guard struct {
	_       pad
	scanReq atomix.Bool
	_       pad
	active  atomix.Int64
	_       pad
}

// Enter admits the caller as an operator, spinning while a scan is pending.
//
// The counter is incremented before the flag is checked. If the flag turns
// out to be set, the increment is revoked and Enter waits for the scan to
// finish. This order guarantees that once a scanner observes a zero counter,
// every operator that was admitted before the flag was raised has left; a
// later increment is always followed by a flag check and back-out before the
// operator touches anything.
//
// The wait is a pure CPU spin with bounded backoff, not an OS wait: the
// scanner's critical section is short and operators must not be suspended
// holding any admission state.
func (g *Guard) Enter() {
	sw := spin.Wait{}
	for {
		g.active.Add(1)
		if !g.scanReq.Load() {
			return
		}
		g.active.Add(-1)
		for g.scanReq.Load() {
			sw.Once()
		}
		sw.Reset()
	}
}

// Exit releases the caller's operator admission.
func (g *Guard) Exit() {
	g.active.Add(-1)
}

// Quiesce runs f with exclusive access to whatever the operators protect.
//
// Quiesce raises the scan flag, spins until the active-operator counter
// drains to zero, runs f, then reopens the guard. There is no timeout: the
// scanner blocks as long as an operator stays inside. The drain is bounded
// by the longest in-flight operation, which for Queue is a single lock-free
// slot claim.
//
// f must not Enter the same guard; reentrancy is undefined.
func (g *Guard) Quiesce(f func()) {
	g.scanReq.Store(true)
	sw := spin.Wait{}
	for g.active.Load() != 0 {
		sw.Once()
	}
	f()
	g.scanReq.Store(false)
}
