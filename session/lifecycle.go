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

package session

import "github/sabouaram/ews/route"

// OnConnect implements socket.Event.
func (e *Engine) OnConnect() {
	_ = e.transport.SetBlocking(false)
}

// OnClose implements socket.Event.
func (e *Engine) OnClose() {
	e.finalize()
	_ = e.transport.Close()
}

// WantRead implements socket.Event.
func (e *Engine) WantRead() bool {
	return e.blk.state.IsIngress()
}

// WantWrite implements socket.Event.
func (e *Engine) WantWrite() bool {
	return e.blk.state.IsEgress()
}

// DoWrite implements socket.Event, dispatching the handler once for
// whichever response state the session currently sits at.
func (e *Engine) DoWrite() {
	switch e.blk.state {
	case route.ResponseBegin, route.ResponseHeader, route.ResponseBody:
		e.callHandler()
	}
}

// finalize invokes the winning route's handler once more at FINALIZE
// (bypassing callHandler's bookkeeping and status switch — the return
// value is meaningless here), half-closes the transport unless the
// connection negotiated keepalive, and scrubs the per-request block so
// the connection is ready for another request. A connection that never
// got past REQUEST_BEGIN has nothing to finalize.
func (e *Engine) finalize() {
	b := &e.blk

	if b.state == route.RequestBegin {
		return
	}

	if b.route != nil {
		b.state = route.Finalize
		b.stateCount = 0
		b.route.Handler(e, b.state)
	}

	if !b.keepalive {
		_ = e.transport.Shutdown()
	}

	b.reset()
}
