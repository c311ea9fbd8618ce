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

// Method implements route.Session.
func (e *Engine) Method() string { return e.blk.method }

// Path implements route.Session.
func (e *Engine) Path() string { return e.blk.path }

// Query implements route.Session.
func (e *Engine) Query() string { return e.blk.query }

// Header implements route.Session.
func (e *Engine) Header() (name, value string) {
	return e.blk.headerName, e.blk.headerValue
}

// Chunk implements route.Session: the body bytes currently buffered and
// not yet consumed via Recv.
func (e *Engine) Chunk() []byte {
	return e.buf.Unconsumed()
}

// Recv implements route.Session, copying out of and logically consuming
// the current body chunk.
func (e *Engine) Recv(buf []byte) int {
	chunk := e.buf.Unconsumed()
	n := len(buf)
	if n > len(chunk) {
		n = len(chunk)
	}
	copy(buf[:n], chunk[:n])
	e.buf.Consume(n)
	return n
}

// StateCount implements route.Session.
func (e *Engine) StateCount() int { return e.blk.stateCount }
