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

// Package route owns the handler contract a session engine drives: the
// per-state callback signature, the status codes a handler may return, the
// glob-style pattern matcher, and the insertion-ordered list routes are
// dispatched from. It has no knowledge of sockets or wire parsing; it only
// describes what a registered handler sees and may answer.
package route

// State is one step of the session pipeline a handler is invoked at. The
// low nibble is the step, the high nibble the phase, so phase tests are a
// single mask.
type State uint8

const (
	RequestBegin  State = 0x00
	RequestHeader State = 0x01
	RequestBody   State = 0x02

	ResponseBegin  State = 0x10
	ResponseHeader State = 0x11
	ResponseBody   State = 0x12

	Finalize State = 0x30
)

const phaseMask = 0x30

// IsIngress reports whether state belongs to the request (read) phase.
func (s State) IsIngress() bool {
	return s&phaseMask == 0x00
}

// IsEgress reports whether state belongs to the response (write) phase.
func (s State) IsEgress() bool {
	return s&phaseMask == 0x10
}

func (s State) String() string {
	switch s {
	case RequestBegin:
		return "REQUEST_BEGIN"
	case RequestHeader:
		return "REQUEST_HEADER"
	case RequestBody:
		return "REQUEST_BODY"
	case ResponseBegin:
		return "RESPONSE_BEGIN"
	case ResponseHeader:
		return "RESPONSE_HEADER"
	case ResponseBody:
		return "RESPONSE_BODY"
	case Finalize:
		return "FINALIZE"
	default:
		return "UNKNOWN"
	}
}

// Status is the directive a handler returns from one invocation, telling
// the engine how to proceed.
type Status uint8

const (
	// Error is fatal: mark pend-close, and past REQUEST_BEGIN emit 500 and
	// finalize.
	Error Status = iota
	// Close is a polite shutdown: mark pend-close, finalize first if past
	// REQUEST_BEGIN.
	Close
	// NotFound is only legal at REQUEST_BEGIN: try the next route.
	NotFound
	// Found is only legal at REQUEST_BEGIN: this handler owns the request.
	Found
	// Next advances to the next state in the current phase.
	Next
	// Done finalizes immediately; the request/response is fully handled.
	Done
	// More stays in the current state; legal only in RESPONSE_HEADER and
	// RESPONSE_BODY.
	More
)

func (s Status) String() string {
	switch s {
	case Error:
		return "ERROR"
	case Close:
		return "CLOSE"
	case NotFound:
		return "NOT_FOUND"
	case Found:
		return "FOUND"
	case Next:
		return "NEXT"
	case Done:
		return "DONE"
	case More:
		return "MORE"
	default:
		return "UNKNOWN"
	}
}

// Session is the handler-visible surface of an in-flight HTTP session. Its
// accessors share one piece of storage across states per the wire
// contract: Path/Query are only meaningful at RequestBegin, Header at
// RequestHeader, Chunk at RequestBody. Sess operations honor the current
// State and return an engine error if called out of turn.
type Session interface {
	// Method returns the upper-cased request method token, or "OTHER".
	Method() string
	// Path returns the normalized request path, valid at RequestBegin.
	Path() string
	// Query returns the raw query string following '?', valid at
	// RequestBegin. Empty if the request line carried none.
	Query() string
	// Header returns the current header line's name and value, valid at
	// RequestHeader.
	Header() (name, value string)
	// Chunk returns the currently received body fragment, valid at
	// RequestBody.
	Chunk() []byte

	// Recv logically consumes up to len(buf) bytes of the current body
	// chunk into buf, returning the count consumed.
	Recv(buf []byte) int
	// Send writes response body bytes at RESPONSE_BODY, framed per the
	// negotiated chunked/content-length mode.
	Send(buf []byte) int
	// Sendf is a convenience formatter over Send.
	Sendf(format string, args ...interface{})
	// Status writes the status line at RESPONSE_BEGIN.
	Status(code int, msg string)
	// Error writes a minimal HTML error body (if still answerable) and
	// finalizes.
	Error(code int, msg string)
	// SetHeader emits one response header at RESPONSE_HEADER.
	SetHeader(name, value string)

	// StateCount is 0 on first entry to the current state and increments
	// on each subsequent re-invocation in the same state (the MORE
	// continuation protocol).
	StateCount() int
}

// Handler is invoked once per State with the session driving it, and
// returns the Status directing the engine's next step.
type Handler func(sess Session, state State) Status

// Route is one node of a Server's insertion-ordered dispatch list: a
// borrowed glob pattern, a handler, and the variadic argument vector
// captured at registration. Patterns are never copied or freed by this
// package; the caller owns them for as long as the Route lives.
type Route struct {
	Pattern string
	Handler Handler
	Args    []interface{}

	next *Route
}

// Next returns the route registered immediately after r, or nil if r is
// the last. The session engine uses this to resume a REQUEST_BEGIN walk
// after a route answers NotFound.
func (r *Route) Next() *Route {
	return r.next
}

// List is a singly-linked, insertion-ordered sequence of routes with O(1)
// append. The zero value is an empty list ready to use.
type List struct {
	first *Route
	last  *Route
}

// Append adds a route at the tail of the list. pattern is borrowed: List
// never copies it.
func (l *List) Append(pattern string, handler Handler, args ...interface{}) *Route {
	r := &Route{Pattern: pattern, Handler: handler, Args: args}
	if l.last == nil {
		l.first = r
		l.last = r
	} else {
		l.last.next = r
		l.last = r
	}
	return r
}

// Clear drops every route. It does not touch the patterns or handlers
// themselves, only this list's references to them.
func (l *List) Clear() {
	l.first = nil
	l.last = nil
}

// Walk calls fct for every route in registration order, stopping early if
// fct returns false.
func (l *List) Walk(fct func(r *Route) bool) {
	for r := l.first; r != nil; r = r.next {
		if !fct(r) {
			return
		}
	}
}

// Matching returns the next route at or after start (inclusive) whose
// Pattern matches path, or nil if none remains. Passing a nil start begins
// at the head of the list. The session engine uses this to walk candidate
// routes one at a time at RequestBegin, keeping the per-call state-count
// bookkeeping and the NotFound/Found handling in its own call_handler
// equivalent rather than here.
func (l *List) Matching(start *Route, path string) *Route {
	r := l.first
	if start != nil {
		r = start
	}
	for ; r != nil; r = r.next {
		if Match(r.Pattern, path) {
			return r
		}
	}
	return nil
}
