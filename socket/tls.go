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
	"bufio"
	"crypto/tls"
	"net"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/sys/unix"

	liberr "github/sabouaram/ews/errors"
)

// DefaultIOTimeout bounds a single Send/Recv call on a tlsTransport when
// SetIOTimeout is never called. Unlike the plaintext transport, a
// *tls.Conn's Read/Write always block until a full TLS record arrives or
// is flushed; without a deadline a stalled peer would park the worker
// goroutine indefinitely, stalling every other connection it drives.
const DefaultIOTimeout = 30 * time.Second

// tlsTransport is a Transport over a TLS session layered on an accepted fd.
// The handshake itself runs on an auxiliary goroutine (the accept path
// installs the HTTP event vtable only once it completes), mirroring the teacher's
// per-connection handshake thread; all reads and writes after that happen
// on the worker goroutine like any other transport.
type tlsTransport struct {
	fd        int
	raw       net.Conn
	conn      *tls.Conn
	buf       *bufio.Reader
	shutdown  atomic.Bool
	pendClose atomic.Bool
	timeoutNs atomic.Int64
}

// SetIOTimeout bounds every subsequent Send/Recv with a read/write
// deadline of d, letting a stalled peer surface as wouldBlock instead of
// blocking the calling goroutine forever. d <= 0 restores DefaultIOTimeout.
func (t *tlsTransport) SetIOTimeout(d time.Duration) {
	t.timeoutNs.Store(int64(d))
}

func (t *tlsTransport) ioTimeout() time.Duration {
	if d := t.timeoutNs.Load(); d > 0 {
		return time.Duration(d)
	}
	return DefaultIOTimeout
}

// NewTLS wraps an accepted fd in a server-side TLS session using cfg.
// NewTLS returns before the handshake runs; call Handshake to run it.
func NewTLS(fd int, cfg *tls.Config) (*tlsTransport, liberr.Error) {
	f := os.NewFile(uintptr(fd), "")
	raw, err := net.FileConn(f)
	if err != nil {
		return nil, liberr.ErrorSocketClosed.ErrorParent(err)
	}

	conn := tls.Server(raw, cfg)
	return &tlsTransport{
		fd:   fd,
		raw:  raw,
		conn: conn,
		buf:  bufio.NewReader(conn),
	}, nil
}

// Handshake runs the TLS handshake. Intended to run off the worker
// goroutine; the caller installs the HTTP event vtable only after this
// returns successfully.
func (t *tlsTransport) Handshake() liberr.Error {
	_ = t.conn.SetDeadline(time.Now().Add(t.ioTimeout()))
	if e := t.conn.Handshake(); e != nil {
		t.pendClose.Store(true)
		return liberr.ErrorTLSHandshake.ErrorParent(e)
	}
	return nil
}

func (t *tlsTransport) Fd() int {
	return t.fd
}

func (t *tlsTransport) PendClose() bool {
	return t.pendClose.Load()
}

func (t *tlsTransport) Send(buf []byte) (int, bool, liberr.Error) {
	if t.shutdown.Load() {
		return -1, false, nil
	}

	_ = t.conn.SetWriteDeadline(time.Now().Add(t.ioTimeout()))
	n, err := t.conn.Write(buf)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return -1, true, nil
		}
		t.pendClose.Store(true)
		return -1, false, liberr.ErrorSocketReset.ErrorParent(err)
	}
	return n, false, nil
}

func (t *tlsTransport) Recv(buf []byte) (int, bool, liberr.Error) {
	_ = t.conn.SetReadDeadline(time.Now().Add(t.ioTimeout()))
	n, err := t.buf.Read(buf)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return -1, true, nil
		}
		t.pendClose.Store(true)
		if n == 0 {
			return 0, false, nil
		}
		return -1, false, liberr.ErrorSocketClosed.ErrorParent(err)
	}
	if n == 0 {
		t.pendClose.Store(true)
	}
	return n, false, nil
}

// Avail reports bytes already decrypted and sitting in the read buffer,
// letting the HTTP engine drain a full request without waiting on select
// again.
func (t *tlsTransport) Avail() int {
	return t.buf.Buffered()
}

func (t *tlsTransport) SetBlocking(block bool) liberr.Error {
	if e := unix.SetNonblock(t.fd, !block); e != nil {
		return liberr.ErrorSocketClosed.ErrorParent(e)
	}
	return nil
}

func (t *tlsTransport) Shutdown() liberr.Error {
	if t.shutdown.Swap(true) {
		return nil
	}
	if e := t.conn.CloseWrite(); e != nil {
		return liberr.ErrorSocketClosed.ErrorParent(e)
	}
	return nil
}

func (t *tlsTransport) Close() liberr.Error {
	if e := t.conn.Close(); e != nil {
		return liberr.ErrorSocketClosed.ErrorParent(e)
	}
	return nil
}
