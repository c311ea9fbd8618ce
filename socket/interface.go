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

// Package socket is the transport vtable that plaintext and TLS connections
// share: send/recv/avail/set-blocking/shutdown/close over a raw file
// descriptor, so the worker event loop and the HTTP session engine never
// need to know which one they're driving.
package socket

import liberr "github/sabouaram/ews/errors"

// Transport is the uniform operation set over a client connection, whether
// backed by a plain TCP socket or a TLS session layered on top of one.
type Transport interface {
	// Send writes buf and returns the number of bytes actually written.
	// A -1 result with wouldBlock true is transient and should be retried
	// on the next ready pass; any other failure means the transport has
	// marked itself pend-close.
	Send(buf []byte) (n int, wouldBlock bool, err liberr.Error)
	// Recv reads into buf. 0 signals an orderly peer close; -1 with
	// wouldBlock true is transient.
	Recv(buf []byte) (n int, wouldBlock bool, err liberr.Error)
	// Avail reports bytes already buffered inside the transport (TLS's
	// decrypted queue) without blocking. Plaintext always returns 0.
	Avail() int
	// SetBlocking toggles the underlying fd's blocking mode.
	SetBlocking(block bool) liberr.Error
	// Shutdown half-closes the send side. Idempotent.
	Shutdown() liberr.Error
	// Close releases every transport resource. Idempotent.
	Close() liberr.Error
	// PendClose reports whether the transport observed a fatal condition
	// (peer reset, orderly close, write failure) and should be torn down
	// on the worker's next pass.
	PendClose() bool
	// Fd returns the underlying file descriptor, used by the worker to
	// build its select fd sets.
	Fd() int
}
