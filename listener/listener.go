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

package listener

import (
	"net"

	"golang.org/x/sys/unix"

	liberr "github/sabouaram/ews/errors"
	"github/sabouaram/ews/socket"
)

// Bind creates, binds and listens on addr ("host:port"; an empty host
// binds every interface) with the given backlog, selecting the address
// family (v4 or v6) from how addr resolves — the Go stand-in for the
// reference listener's compile-time v4/v6 choice. pool is the client-slot
// table this listener's accept path claims into; accept is invoked once
// per accepted connection.
func Bind(addr string, backlog int, pool *socket.Pool, accept Accepter) (*Listener, liberr.Error) {
	tcpAddr, e := net.ResolveTCPAddr("tcp", addr)
	if e != nil {
		return nil, liberr.ErrorListenFailed.ErrorParent(e)
	}

	family := unix.AF_INET
	var sa unix.Sockaddr
	if ip4 := tcpAddr.IP.To4(); ip4 != nil || tcpAddr.IP == nil {
		var b [4]byte
		if ip4 != nil {
			copy(b[:], ip4)
		}
		sa = &unix.SockaddrInet4{Port: tcpAddr.Port, Addr: b}
	} else {
		family = unix.AF_INET6
		var b [16]byte
		copy(b[:], tcpAddr.IP.To16())
		sa = &unix.SockaddrInet6{Port: tcpAddr.Port, Addr: b}
	}

	fd, e := unix.Socket(family, unix.SOCK_STREAM, 0)
	if e != nil {
		return nil, liberr.ErrorListenFailed.ErrorParent(e)
	}

	if e = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); e != nil {
		_ = unix.Close(fd)
		return nil, liberr.ErrorListenFailed.ErrorParent(e)
	}

	if e = unix.Bind(fd, sa); e != nil {
		_ = unix.Close(fd)
		return nil, liberr.ErrorListenFailed.ErrorParent(e)
	}

	if backlog <= 0 {
		backlog = 16
	}
	if e = unix.Listen(fd, backlog); e != nil {
		_ = unix.Close(fd)
		return nil, liberr.ErrorListenFailed.ErrorParent(e)
	}

	if e = unix.SetNonblock(fd, true); e != nil {
		_ = unix.Close(fd)
		return nil, liberr.ErrorListenFailed.ErrorParent(e)
	}

	l := &Listener{fd: fd, pool: pool, accept: accept}

	s := &socket.Slot{
		Kind:      socket.KindListener,
		Transport: &listenTransport{fd: fd},
		Event:     l,
	}
	s.SetInUse(true)
	s.SetConnected(true)
	l.slot = s

	return l, nil
}

// OnConnect implements socket.Event. A listener slot is marked Connected
// at construction, so the worker never invokes this.
func (l *Listener) OnConnect() {}

// OnClose implements socket.Event.
func (l *Listener) OnClose() {
	_ = l.slot.Transport.Close()
}

// WantRead implements socket.Event: a listener always wants to be woken
// on read readiness, i.e. a pending connection in the accept queue.
func (l *Listener) WantRead() bool { return true }

// WantWrite implements socket.Event: listeners never select for write.
func (l *Listener) WantWrite() bool { return false }

// DoWrite implements socket.Event; never invoked, since WantWrite is
// always false.
func (l *Listener) DoWrite() {}

// DoRead implements socket.Event: drains the accept queue into free slots
// until it would block or the pool is exhausted, in which case the kernel
// backlog absorbs the remaining pending peers until a slot frees.
func (l *Listener) DoRead() {
	for {
		slot := l.pool.Claim()
		if slot == nil {
			return
		}

		fd, sa, e := unix.Accept(l.fd)
		if e != nil {
			slot.SetInUse(false)
			return
		}

		_ = unix.SetNonblock(fd, true)

		remote := sockaddrToAddr(sa)
		slot.RemoteAddr = remote
		slot.Kind = socket.KindClient

		acceptFd, acceptRemote, acceptSlot := fd, remote, slot
		slot.Connect = func() {
			l.accept(acceptFd, acceptRemote, acceptSlot)
		}
	}
}

func sockaddrToAddr(sa unix.Sockaddr) net.Addr {
	switch a := sa.(type) {
	case *unix.SockaddrInet4:
		return &net.TCPAddr{IP: net.IP(a.Addr[:]), Port: a.Port}
	case *unix.SockaddrInet6:
		return &net.TCPAddr{IP: net.IP(a.Addr[:]), Port: a.Port}
	default:
		return nil
	}
}

// listenTransport is a socket.Transport stub wrapping the listening fd
// itself. Only Fd and Close carry real meaning for a listener; the rest
// of the interface is never exercised by the worker but must be present
// to satisfy socket.Slot's Transport field.
type listenTransport struct {
	fd int
}

func (t *listenTransport) Fd() int         { return t.fd }
func (t *listenTransport) PendClose() bool { return false }

func (t *listenTransport) Send([]byte) (int, bool, liberr.Error) { return 0, false, nil }
func (t *listenTransport) Recv([]byte) (int, bool, liberr.Error) { return 0, false, nil }
func (t *listenTransport) Avail() int                            { return 0 }
func (t *listenTransport) SetBlocking(bool) liberr.Error         { return nil }
func (t *listenTransport) Shutdown() liberr.Error                { return nil }

func (t *listenTransport) Close() liberr.Error {
	if t.fd < 0 {
		return nil
	}
	fd := t.fd
	t.fd = -1
	if e := unix.Close(fd); e != nil {
		return liberr.ErrorSocketClosed.ErrorParent(e)
	}
	return nil
}
