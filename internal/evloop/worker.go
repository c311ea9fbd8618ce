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

// Package evloop is the single-threaded, select-driven event loop every
// listener and client slot is polled through: one pass captures the
// current time, walks every registered slot's pre-select housekeeping
// (armed connect thunks, idle reaping, pend-close draining), blocks in
// select(2) for at most SelectInterval, then walks the ready slots'
// post-select dispatch. It is the direct translation of worker.c; socket
// and session know nothing about it beyond the socket.Event contract it
// drives.
package evloop

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sys/unix"

	liberr "github/sabouaram/ews/errors"
	"github/sabouaram/ews/logger"
	loglvl "github/sabouaram/ews/logger/level"
	"github/sabouaram/ews/socket"
)

// SelectInterval caps every select(2) call, matching worker.c's hardcoded
// 100ms timeout: a bound on how stale idle-timeout reaping and shutdown
// detection can be, not a throughput knob.
const SelectInterval = 100 * time.Millisecond

// ShutdownGrace is the drain window a caller should give in-flight
// sessions before treating Shutdown as having failed to quiesce, mirroring
// the reference implementation's 5-second one-shot reaper timer.
const ShutdownGrace = 5 * time.Second

// Worker runs the event loop on its own goroutine. The zero value is not
// ready to use; build one with New.
type Worker struct {
	log logger.Logger

	mu    sync.Mutex
	slots []*socket.Slot

	running  atomic.Bool
	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// New builds a Worker logging through log (a package-default logger if
// nil).
func New(log logger.Logger) *Worker {
	if log == nil {
		log = logger.New(loglvl.InfoLevel, nil)
	}
	return &Worker{
		log:    log,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// Register adds s to the set of slots polled every pass. Safe to call
// before or after Run starts; a listener and every pool slot it can
// accept into are registered once, up front, and live for the worker's
// whole lifetime — slots are recycled via socket.Slot.Reset, never
// unregistered.
func (w *Worker) Register(s *socket.Slot) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.slots = append(w.slots, s)
}

func (w *Worker) snapshot() []*socket.Slot {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]*socket.Slot, len(w.slots))
	copy(out, w.slots)
	return out
}

// Running reports whether Run's loop is currently executing.
func (w *Worker) Running() bool {
	return w.running.Load()
}

// Run executes the event loop until Shutdown is called or select(2)
// returns a fatal error. It blocks the calling goroutine; callers
// typically invoke it with `go worker.Run()`.
func (w *Worker) Run() {
	w.running.Store(true)
	defer func() {
		w.running.Store(false)
		close(w.doneCh)
	}()

	for {
		select {
		case <-w.stopCh:
			return
		default:
		}

		now := nowMillis()
		slots := w.snapshot()

		var rset, wset unix.FdSet
		fdMax := -1
		var readable, writable []*socket.Slot

		for _, s := range slots {
			if !w.preSelect(s, now) {
				continue
			}

			fd := s.Fd()
			if fd < 0 {
				continue
			}

			if s.Event.WantRead() {
				fdSetAdd(&rset, fd)
				readable = append(readable, s)
				if fd > fdMax {
					fdMax = fd
				}
			}
			if s.Event.WantWrite() {
				fdSetAdd(&wset, fd)
				writable = append(writable, s)
				if fd > fdMax {
					fdMax = fd
				}
			}
		}

		if fdMax < 0 {
			// Nothing selectable this pass (e.g. every slot mid TLS
			// handshake); still honor the 100ms cadence so idle reaping
			// and shutdown detection stay timely.
			time.Sleep(SelectInterval)
			continue
		}

		tv := unix.NsecToTimeval(SelectInterval.Nanoseconds())
		n, e := unix.Select(fdMax+1, &rset, &wset, nil, &tv)
		if e != nil {
			if e == unix.EINTR {
				continue
			}
			w.log.Entry(loglvl.ErrorLevel, "select failed").ErrorAdd(true, e).Log()
			return
		}
		if n == 0 {
			continue
		}

		w.postSelect(now, readable, writable, &rset, &wset)
	}
}

// preSelect runs one slot's housekeeping: connect-thunk invocation, idle
// reaping, pend-close draining, and on_connect dispatch, in that order per
// spec. It returns whether the slot should be considered for this pass's
// select sets at all.
func (w *Worker) preSelect(s *socket.Slot, now int64) bool {
	if !s.InUse() {
		return false
	}

	if s.Connect != nil {
		fn := s.Connect
		s.Connect = nil
		fn()
	}

	if idle := s.IdleTimeout(); idle > 0 && s.Transport != nil && now-s.LastActive() > idle {
		w.closeSlot(s)
		return false
	}

	if s.PendClose() {
		w.closeSlot(s)
		return false
	}

	if s.Event == nil {
		// Under asynchronous construction (a TLS handshake goroutine
		// hasn't installed the session yet); nothing to drive this pass.
		return false
	}

	if !s.Connected() {
		s.Event.OnConnect()
		s.SetConnected(true)
	}

	return s.Connected()
}

// postSelect invokes do_read/do_write for every slot whose fd came back
// ready, updating last_active first as spec requires.
func (w *Worker) postSelect(now int64, readable, writable []*socket.Slot, rset, wset *unix.FdSet) {
	for _, s := range readable {
		if fdIsSet(rset, s.Fd()) {
			s.SetLastActive(now)
			s.Event.DoRead()
		}
	}
	for _, s := range writable {
		if fdIsSet(wset, s.Fd()) {
			s.SetLastActive(now)
			s.Event.DoWrite()
		}
	}
}

// closeSlot tears a slot down via its event vtable's OnClose if present,
// else the transport's Close, then resets it for reuse.
func (w *Worker) closeSlot(s *socket.Slot) {
	if s.Event != nil {
		s.Event.OnClose()
	} else if s.Transport != nil {
		_ = s.Transport.Close()
	}
	s.Reset()
}

// Shutdown stops the loop and waits for the current pass to finish, up to
// ctx's deadline. Callers typically bound ctx at ShutdownGrace.
func (w *Worker) Shutdown(ctx context.Context) liberr.Error {
	w.stopOnce.Do(func() { close(w.stopCh) })

	select {
	case <-w.doneCh:
		return nil
	case <-ctx.Done():
		return liberr.ErrorServerClosed.ErrorParent(ctx.Err())
	}
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}
