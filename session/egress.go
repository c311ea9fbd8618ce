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
	"fmt"
	"strconv"
	"strings"

	"github/sabouaram/ews/internal/wire"
	loglvl "github/sabouaram/ews/logger/level"
	"github/sabouaram/ews/route"
)

// rawSend writes buf straight to the transport, bypassing any response
// framing. A write failure finalizes the session.
func (e *Engine) rawSend(buf []byte) {
	if len(buf) == 0 {
		return
	}
	n, wouldBlock, err := e.transport.Send(buf)
	if err != nil || (n < 0 && !wouldBlock) {
		e.finalize()
	}
}

func (e *Engine) rawSendf(format string, args ...interface{}) {
	e.rawSend([]byte(fmt.Sprintf(format, args...)))
}

// httpStatusLine writes the status line. A 0.9 request never gets one; a
// call past RESPONSE_BEGIN is a contract violation that tears the session
// down instead of emitting a malformed second status line.
func (e *Engine) httpStatusLine(code int, msg string) {
	b := &e.blk

	if b.version == wire.Version09 {
		return
	}

	if b.state > route.ResponseBegin {
		e.finalize()
		e.slot.SetPendClose(true)
		return
	}

	verStr := "HTTP/1.0"
	if b.version == wire.Version11 {
		verStr = "HTTP/1.1"
	}
	e.rawSendf("%s %d %s\r\n", verStr, code, msg)
}

// httpError emits a minimal HTML error body if the response hasn't started
// yet, then unconditionally finalizes. Reached either directly from a
// handler's Error call, or internally whenever a handler violates the
// state contract.
func (e *Engine) httpError(code int, msg string) {
	b := &e.blk

	e.log.Entry(loglvl.ErrorLevel, "session error response").
		FieldAdd("trace", e.traceID).
		FieldAdd("code", code).
		FieldAdd("msg", msg).
		Log()

	// An engine-generated error answer never offers to keep the
	// connection open, regardless of what the request negotiated.
	b.keepalive = false

	if b.state <= route.ResponseBegin && b.version > wire.Version09 {
		body := fmt.Sprintf("<h1>%s</h1>", msg)

		e.httpStatusLine(code, msg)
		e.rawSendf("Content-Type: text/html\r\nContent-Length: %d\r\n\r\n", len(body))
		e.rawSend([]byte(body))
	}

	e.finalize()
}

// Status implements route.Session.
func (e *Engine) Status(code int, msg string) {
	e.httpStatusLine(code, msg)
}

// Error implements route.Session.
func (e *Engine) Error(code int, msg string) {
	e.httpError(code, msg)
}

// SetHeader implements route.Session. Connection, Content-Length and
// Transfer-Encoding are inspected for their framing side effects before
// being emitted verbatim like any other header.
func (e *Engine) SetHeader(name, value string) {
	b := &e.blk

	if b.state != route.ResponseHeader {
		e.httpError(500, "Internal Server Error")
		return
	}

	switch strings.ToLower(name) {
	case "connection":
		lv := strings.ToLower(value)
		if strings.Contains(lv, "close") {
			b.keepalive = false
		} else if strings.Contains(lv, "keep-alive") {
			b.keepalive = true
		}
	case "content-length":
		if n, perr := strconv.ParseInt(value, 10, 64); perr == nil {
			b.respRemaining = n
		}
	case "transfer-encoding":
		if strings.Contains(strings.ToLower(value), "chunked") {
			b.respChunked = true
		}
	}

	e.rawSendf("%s: %s\r\n", name, value)
}

// Send implements route.Session, framing the payload per the negotiated
// chunked or content-length mode.
func (e *Engine) Send(buf []byte) int {
	b := &e.blk

	if b.state != route.ResponseBody {
		e.httpError(500, "Internal Server Error")
		return -1
	}

	n := len(buf)
	total := 0

	if b.respChunked {
		header := fmt.Sprintf("%X\r\n", n)
		e.rawSend([]byte(header))
		total += len(header)
	} else if b.respRemaining > 0 && int64(n) > b.respRemaining {
		n = int(b.respRemaining)
	}

	sent, wouldBlock, err := e.transport.Send(buf[:n])
	if err != nil || (sent < 0 && !wouldBlock) {
		e.finalize()
		return -1
	}
	total += sent

	if b.respChunked {
		trailer := "\r\n"
		e.rawSend([]byte(trailer))
		total += len(trailer)
	} else if b.respRemaining > 0 {
		b.respRemaining -= int64(sent)
	}

	return total
}

// Sendf implements route.Session.
func (e *Engine) Sendf(format string, args ...interface{}) {
	e.Send([]byte(fmt.Sprintf(format, args...)))
}
