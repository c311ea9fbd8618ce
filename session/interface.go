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

// Package session drives one HTTP/1.x connection's state machine: it owns
// the receive buffer, parses request lines, headers and body fragments
// via internal/wire, dispatches a route.List at REQUEST_BEGIN, and frames
// the response according to what the winning handler emits. An Engine
// implements both socket.Event (so the worker can drive it) and
// route.Session (so a handler can drive the response back through it).
package session

import (
	"github.com/google/uuid"

	"github/sabouaram/ews/internal/wire"
	"github/sabouaram/ews/logger"
	loglvl "github/sabouaram/ews/logger/level"
	"github/sabouaram/ews/route"
	"github/sabouaram/ews/socket"
)

// DefaultBufferSize is used when a non-positive size is requested.
const DefaultBufferSize = 4096

// block is the per-request state scrubbed by finalize. The buffer and the
// Engine itself outlive it so a keepalive connection can serve another
// request.
type block struct {
	route      *route.Route
	state      route.State
	prevState  route.State
	stateCount int

	method string
	path   string
	query  string

	headerName  string
	headerValue string

	version   wire.Version
	keepalive bool

	// reqChunked and reqMultipart mirror flags the wire format describes
	// on the request side; recv never decodes either framing, so a
	// handler that needs them has to parse the raw chunk itself.
	reqChunked    bool
	reqMultipart  bool
	respChunked   bool
	respRemaining int64
}

func (b *block) reset() {
	*b = block{}
}

// Engine is one connection's HTTP session. It is installed as a
// socket.Slot's Event once the connection is accepted.
type Engine struct {
	transport socket.Transport
	slot      *socket.Slot
	routes    *route.List
	buf       *wire.Buffer
	log       logger.Logger

	// traceID correlates every log line this connection produces across
	// its lifetime, independent of the block that finalize scrubs between
	// keepalive requests.
	traceID string

	blk block
}

// New builds an Engine over an already-accepted transport. slot is the
// owning socket.Slot, used to raise the one-shot pend-close flag; routes
// is shared across every connection a server drives. bufSize at or below
// zero uses DefaultBufferSize. A nil log falls back to a package-default
// logger at level.InfoLevel.
func New(transport socket.Transport, slot *socket.Slot, routes *route.List, bufSize int, log logger.Logger) *Engine {
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}
	if log == nil {
		log = logger.New(loglvl.InfoLevel, nil)
	}

	return &Engine{
		transport: transport,
		slot:      slot,
		routes:    routes,
		buf:       wire.NewBuffer(bufSize),
		log:       log,
		traceID:   uuid.NewString(),
	}
}
