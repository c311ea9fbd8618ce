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

// callHandler invokes the current route's handler for the current state,
// maintaining the state_count/prev_state bookkeeping, and applies the
// status-specific side effects. It is the single entry point every state
// transition goes through, ingress or egress.
func (e *Engine) callHandler() route.Status {
	b := &e.blk

	if b.state != b.prevState {
		b.stateCount = 0
	} else {
		b.stateCount++
	}

	status := b.route.Handler(e, b.state)
	b.prevState = b.state

	switch status {
	case route.Close:
		e.slot.SetPendClose(true)
		if b.state > route.RequestBegin {
			e.finalize()
		}
		return status

	case route.NotFound, route.Found:
		if b.state != route.RequestBegin {
			e.httpError(500, "Internal Server Error")
			return route.Error
		}
		return status

	case route.Next:
		switch b.state {
		case route.ResponseBegin:
			b.state = route.ResponseHeader
		case route.ResponseHeader:
			e.rawSend([]byte("\r\n"))
			b.state = route.ResponseBody
		case route.ResponseBody:
			e.finalize()
		}
		return status

	case route.Done:
		e.finalize()
		return status

	case route.More:
		switch b.state {
		case route.ResponseHeader, route.ResponseBody:
			return status
		default:
			e.slot.SetPendClose(true)
			if b.state > route.RequestBegin {
				e.httpError(500, "Internal Server Error")
				return route.Error
			}
			return status
		}

	default: // route.Error and any unrecognized status
		e.slot.SetPendClose(true)
		if b.state > route.RequestBegin {
			e.httpError(500, "Internal Server Error")
			return route.Error
		}
		return status
	}
}
