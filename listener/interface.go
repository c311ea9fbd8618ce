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

// Package listener binds one TCP port and accepts incoming connections
// into a free slot of a socket.Pool. It has no HTTP knowledge: it hands
// an accepted, non-blocking fd and the claiming slot to an Accepter, which
// is where the session engine (or a TLS handshake goroutine ahead of it)
// gets wired in. A Listener presents itself to the worker as an ordinary
// *socket.Slot, always want-read, so the event loop's pre-select/
// post-select walk never special-cases listeners against client sockets.
package listener

import (
	"net"

	"golang.org/x/sys/unix"

	liberr "github/sabouaram/ews/errors"
	"github/sabouaram/ews/socket"
)

// Accepter installs a Transport and Event onto slot for the connection
// accepted on fd from remote. It runs on the worker goroutine unless it
// chooses to hand the handshake off (TLS) — in which case the goroutine
// running the handshake sets slot.Transport and slot.Event once it succeeds.
type Accepter func(fd int, remote net.Addr, slot *socket.Slot)

// Listener is a bound, listening, non-blocking socket plus the free-slot
// pool its accept path claims into.
type Listener struct {
	slot   *socket.Slot
	fd     int
	pool   *socket.Pool
	accept Accepter
}

// Slot returns the *socket.Slot representing this listener, ready to be
// registered with a worker alongside ordinary client slots.
func (l *Listener) Slot() *socket.Slot {
	return l.slot
}

// Addr returns the address actually bound, useful when Bind was called
// with port 0 and the kernel chose an ephemeral one.
func (l *Listener) Addr() net.Addr {
	sa, e := unix.Getsockname(l.fd)
	if e != nil {
		return nil
	}
	return sockaddrToAddr(sa)
}

// Close releases the listening socket. Safe to call once.
func (l *Listener) Close() liberr.Error {
	return l.slot.Transport.Close()
}
