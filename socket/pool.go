/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package socket

import "sync"

// Pool is a fixed-size table of client Slots, the Go stand-in for the
// reference server's two compile-time-sized arrays (plaintext and TLS). A
// listener's accept path and the worker's iteration both walk the same
// table; Claim is the only mutating entry point and is therefore the only
// one that takes the pool's mutex.
type Pool struct {
	mu    sync.Mutex
	slots []*Slot
}

// NewPool allocates a pool of size client slots, each initially unused.
func NewPool(size int) *Pool {
	slots := make([]*Slot, size)
	for i := range slots {
		slots[i] = &Slot{}
	}
	return &Pool{slots: slots}
}

// Claim returns the first slot with InUse()==false and marks it in-use, or
// nil if every slot in the pool is occupied — the caller (a listener's
// do_read) is expected to let the kernel backlog hold the peer until a
// slot frees.
func (p *Pool) Claim() *Slot {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, s := range p.slots {
		if !s.InUse() {
			s.SetInUse(true)
			return s
		}
	}
	return nil
}

// Slots exposes the underlying table for the worker's pre-select/
// post-select walk. The slice itself never changes size or order after
// NewPool; only each Slot's own fields mutate.
func (p *Pool) Slots() []*Slot {
	return p.slots
}

// Size returns the pool's fixed capacity.
func (p *Pool) Size() int {
	return len(p.slots)
}

// InUseCount reports how many slots are currently claimed, used by the
// optional monitor adapter to report connection pressure.
func (p *Pool) InUseCount() int {
	n := 0
	for _, s := range p.slots {
		if s.InUse() {
			n++
		}
	}
	return n
}
