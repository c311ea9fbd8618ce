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

import (
	"net"
	"sync"
	"sync/atomic"
)

// Kind distinguishes a listening socket from an accepted client socket.
type Kind uint8

const (
	KindListener Kind = iota
	KindClient
)

// Event is the callback set a slot's owner (listener or HTTP session)
// installs once the slot is claimed. It mirrors the on_connect/on_close/
// want_read/want_write/do_read/do_write vtable the worker drives every
// pass; either vtable may be absent at points in a slot's lifetime, which
// here is simply a nil Event field.
type Event interface {
	// OnConnect runs once, the first pass after the slot becomes connected.
	OnConnect()
	// OnClose runs before the transport is closed, if the slot has one.
	OnClose()
	// WantRead reports whether the slot should be added to the read set.
	WantRead() bool
	// WantWrite reports whether the slot should be added to the write set.
	WantWrite() bool
	// DoRead runs when the slot's fd was ready for reading.
	DoRead()
	// DoWrite runs when the slot's fd was ready for writing.
	DoWrite()
}

// Slot is one entry in a server's fixed-size client (or listener) table.
type Slot struct {
	mu sync.Mutex

	Kind  Kind
	Proto uint8

	Transport Transport
	Event     Event

	// Connect is a one-shot thunk armed by whoever claims the slot
	// (typically a listener's accept path) and invoked, then cleared, on
	// the worker's next pre-select pass — this is where a TLS handshake
	// starts.
	Connect func()

	RemoteAddr net.Addr

	inUse       atomic.Bool
	connected   atomic.Bool
	pendClose   atomic.Bool
	lastActive  int64 // unix ms
	idleTimeout int64 // ms; 0 disables reaping

	// UserData is the opaque pointer the HTTP engine hangs its session off.
	UserData interface{}
}

func (s *Slot) InUse() bool       { return s.inUse.Load() }
func (s *Slot) SetInUse(v bool)   { s.inUse.Store(v) }
func (s *Slot) Connected() bool   { return s.connected.Load() }
func (s *Slot) SetConnected(v bool) { s.connected.Store(v) }

// PendClose reports the one-shot close request: once set, the next worker
// pass must close the slot.
func (s *Slot) PendClose() bool     { return s.pendClose.Load() }
func (s *Slot) SetPendClose(v bool) { s.pendClose.Store(v) }

func (s *Slot) LastActive() int64    { return atomic.LoadInt64(&s.lastActive) }
func (s *Slot) SetLastActive(ms int64) { atomic.StoreInt64(&s.lastActive, ms) }

func (s *Slot) IdleTimeout() int64     { return atomic.LoadInt64(&s.idleTimeout) }
func (s *Slot) SetIdleTimeout(ms int64) { atomic.StoreInt64(&s.idleTimeout, ms) }

// Fd returns the slot's underlying file descriptor, or -1 if no transport
// has been installed yet. The worker uses this to build its select sets.
func (s *Slot) Fd() int {
	if s.Transport == nil {
		return -1
	}
	return s.Transport.Fd()
}

// Reset zeroes the slot so it can be reused by a future accept. Invariant:
// a slot with InUse()==false participates in no select round.
func (s *Slot) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Transport = nil
	s.Event = nil
	s.Connect = nil
	s.RemoteAddr = nil
	s.UserData = nil
	s.inUse.Store(false)
	s.connected.Store(false)
	s.pendClose.Store(false)
	s.lastActive = 0
	s.idleTimeout = 0
}
