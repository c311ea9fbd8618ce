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
	"sync/atomic"

	"golang.org/x/sys/unix"

	liberr "github/sabouaram/ews/errors"
)

// plain is a Transport over a raw, non-blocking TCP file descriptor.
type plain struct {
	fd        int
	shutdown  atomic.Bool
	pendClose atomic.Bool
}

// NewPlain wraps an already-accepted, non-blocking fd.
func NewPlain(fd int) Transport {
	return &plain{fd: fd}
}

func (p *plain) Fd() int {
	return p.fd
}

func (p *plain) PendClose() bool {
	return p.pendClose.Load()
}

func (p *plain) Send(buf []byte) (int, bool, liberr.Error) {
	if p.shutdown.Load() {
		return -1, false, nil
	}

	n, err := unix.Write(p.fd, buf)
	if n < 0 || err != nil {
		errno, _ := err.(unix.Errno)
		if errno == unix.ECONNRESET {
			// connection reset by peer
		} else if errno == unix.EAGAIN {
			return -1, true, nil
		}

		p.pendClose.Store(true)
		return -1, false, liberr.ErrorSocketReset.ErrorParent(err)
	}

	return n, false, nil
}

func (p *plain) Recv(buf []byte) (int, bool, liberr.Error) {
	n, err := unix.Read(p.fd, buf)
	if n < 0 || err != nil {
		errno, _ := err.(unix.Errno)
		if errno == unix.ECONNRESET {
			p.pendClose.Store(true)
			return -1, false, liberr.ErrorSocketReset.ErrorParent(err)
		} else if errno == unix.EAGAIN {
			return -1, true, nil
		}

		p.pendClose.Store(true)
		return -1, false, liberr.ErrorSocketClosed.ErrorParent(err)
	} else if n == 0 {
		p.pendClose.Store(true)
	}

	return n, false, nil
}

// Avail always returns 0 on plaintext: unlike TLS, a plain socket has no
// decrypted-but-unread queue to peek at ahead of the next select pass.
func (p *plain) Avail() int {
	return 0
}

func (p *plain) SetBlocking(block bool) liberr.Error {
	if e := unix.SetNonblock(p.fd, !block); e != nil {
		return liberr.ErrorSocketClosed.ErrorParent(e)
	}
	return nil
}

func (p *plain) Shutdown() liberr.Error {
	if p.shutdown.Swap(true) {
		return nil
	}
	if e := unix.Shutdown(p.fd, unix.SHUT_WR); e != nil {
		return liberr.ErrorSocketClosed.ErrorParent(e)
	}
	return nil
}

func (p *plain) Close() liberr.Error {
	if p.fd < 0 {
		return nil
	}
	fd := p.fd
	p.fd = -1
	if e := unix.Close(fd); e != nil {
		return liberr.ErrorSocketClosed.ErrorParent(e)
	}
	return nil
}
