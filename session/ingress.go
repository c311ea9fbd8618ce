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

import (
	"strings"

	liberr "github/sabouaram/ews/errors"
	"github/sabouaram/ews/internal/wire"
	"github/sabouaram/ews/route"
)

// DoRead implements socket.Event. It drains the transport into the ingress
// buffer and repeatedly dispatches whole lines/chunks out of it until
// either the buffer empties, a dispatch asks to stop, or the session is
// marked pend-close. When the transport still reports buffered bytes
// (TLS) after a pass, it loops for another recv without waiting on the
// next select round.
func (e *Engine) DoRead() {
	for {
		n, wouldBlock, err := e.transport.Recv(e.buf.WriteSlice())
		if wouldBlock {
			return
		}
		if err != nil || n <= 0 {
			e.slot.SetPendClose(true)
			return
		}
		e.buf.Wrote(n)

		for e.buf.Len() > 0 && e.blk.state.IsIngress() {
			stop := e.dispatchIngress()
			if e.slot.PendClose() {
				return
			}
			if stop {
				break
			}
		}

		if e.buf.Full() {
			e.slot.SetPendClose(true)
			return
		}
		e.buf.Compact()

		if e.transport.Avail() <= 0 {
			return
		}
	}
}

// dispatchIngress runs the parser for the current ingress state. It
// returns true when this read pass has nothing further to extract right
// now (no complete line yet, or a body chunk was exposed for this pass).
func (e *Engine) dispatchIngress() bool {
	switch e.blk.state {
	case route.RequestBegin:
		return e.parseRequestBegin()
	case route.RequestHeader:
		return e.parseRequestHeader()
	case route.RequestBody:
		return e.parseRequestBody()
	default:
		return true
	}
}

// parseRequestBegin pulls one request line out of the buffer, tokenizes
// and normalizes it, and walks the route list to find a handler willing
// to claim it, falling back to the 404 route. It then advances to
// REQUEST_HEADER, or straight to RESPONSE_BEGIN for a 0.9 request that
// carries no headers.
func (e *Engine) parseRequestBegin() bool {
	line, ok := e.buf.Line()
	if !ok {
		if e.buf.AtStart() && e.buf.Free() <= 1 {
			e.httpError(414, "URI Too Long")
			e.slot.SetPendClose(true)
		}
		return true
	}

	rl, perr := wire.ParseRequestLine(line)
	if perr != nil {
		if perr.Is(liberr.ErrorUnsupportedVersion) {
			// A version token was present but unrecognized. Leaving
			// version at its zero value here would read as a genuine
			// HTTP/0.9 request and silently suppress the status line;
			// force it so the 505 response actually gets written.
			e.blk.version = wire.Version10
			e.httpError(505, "HTTP Version Not Supported")
		} else {
			e.httpError(400, "Bad Request")
		}
		e.slot.SetPendClose(true)
		return true
	}

	e.blk.method = rl.Method
	e.blk.path, e.blk.query = route.NormalizePath(rl.RawPath)
	e.blk.version = rl.Version
	e.blk.keepalive = rl.Keepalive

	found := false
	cur := e.routes.Matching(nil, e.blk.path)
	for cur != nil {
		e.blk.route = cur
		status := e.callHandler()
		if status == route.Found {
			found = true
			break
		} else if status != route.NotFound {
			return true
		}
		cur = e.routes.Matching(cur.Next(), e.blk.path)
	}

	if !found {
		e.blk.route = route.NotFound404
		e.callHandler()
	}

	if e.blk.version == wire.Version09 {
		e.blk.state = route.ResponseBegin
	} else {
		e.blk.state = route.RequestHeader
	}

	return false
}

// parseRequestHeader pulls one header line out of the buffer. An empty
// line ends the header block and moves straight to RESPONSE_BEGIN without
// invoking the handler; any other line is split and handed to the
// handler at REQUEST_HEADER.
func (e *Engine) parseRequestHeader() bool {
	line, ok := e.buf.Line()
	if !ok {
		if e.buf.AtStart() && e.buf.Free() <= 1 {
			e.httpError(431, "Request Header Fields Too Large")
			e.slot.SetPendClose(true)
		}
		return true
	}

	if len(line) == 0 {
		e.blk.state = route.ResponseBegin
		return false
	}

	name, value, perr := wire.ParseHeaderLine(line)
	if perr != nil {
		e.httpError(400, "Invalid Header")
		e.slot.SetPendClose(true)
		return true
	}

	if strings.EqualFold(name, "Connection") {
		lv := strings.ToLower(value)
		if strings.Contains(lv, "close") {
			e.blk.keepalive = false
		} else if strings.Contains(lv, "keep-alive") {
			e.blk.keepalive = true
		}
	}

	e.blk.headerName = name
	e.blk.headerValue = value
	e.callHandler()

	return false
}

// parseRequestBody exposes whatever is currently buffered as one chunk and
// calls the handler once; a do_read pass never exposes more than one
// chunk; a new one only reaches the handler on the next recv.
func (e *Engine) parseRequestBody() bool {
	e.callHandler()
	return true
}
