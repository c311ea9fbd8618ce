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

// Package wire holds the raw, stateless mechanics of HTTP/1.x ingress
// parsing: a fixed-capacity rolling receive buffer and the request-line
// and header-line tokenizers that read from it. It knows nothing about
// the session state machine or route dispatch; session drives this
// package one line at a time.
package wire

import "bytes"

var crlf = []byte("\r\n")

// Buffer is a fixed-capacity byte buffer with a consumed head (pos) and a
// written tail (pos+len). Reads append at the tail; parsing consumes from
// the head. It never grows past its initial capacity.
type Buffer struct {
	buf []byte
	pos int
	len int
}

// NewBuffer allocates a buffer with the given fixed capacity.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{buf: make([]byte, capacity)}
}

// Free returns the number of bytes that can still be appended before the
// buffer is compacted or is full.
func (b *Buffer) Free() int {
	return len(b.buf) - (b.pos + b.len)
}

// Full reports whether the buffer holds a full capacity's worth of
// unconsumed bytes — the peer is sending a token larger than the buffer.
func (b *Buffer) Full() bool {
	return b.len == len(b.buf)
}

// AtStart reports whether no bytes have been consumed yet, the condition
// under which Full means an oversized token rather than a trivially
// compactable one.
func (b *Buffer) AtStart() bool {
	return b.pos == 0
}

// WriteSlice exposes the tail region a Recv call should read into.
func (b *Buffer) WriteSlice() []byte {
	return b.buf[b.pos+b.len:]
}

// Wrote records that n bytes were just written into WriteSlice's region.
func (b *Buffer) Wrote(n int) {
	b.len += n
}

// Compact moves the unconsumed region down to offset 0 so future writes
// have room. Safe to call whenever pos > 0.
func (b *Buffer) Compact() {
	if b.pos == 0 {
		return
	}
	copy(b.buf, b.buf[b.pos:b.pos+b.len])
	b.pos = 0
}

// Unconsumed returns the bytes not yet consumed by parsing.
func (b *Buffer) Unconsumed() []byte {
	return b.buf[b.pos : b.pos+b.len]
}

// Consume advances the head by n bytes, as if a parser logically read and
// discarded them (used by REQUEST_BODY consumption).
func (b *Buffer) Consume(n int) int {
	if n > b.len {
		n = b.len
	}
	b.pos += n
	b.len -= n
	return n
}

// Line looks for a CRLF-terminated line in the unconsumed region. On a
// match it returns the line (excluding the CRLF) and advances past it,
// including the CRLF, and ok is true. If no CRLF is present, ok is false
// and nothing is consumed.
func (b *Buffer) Line() (line []byte, ok bool) {
	region := b.Unconsumed()
	idx := bytes.Index(region, crlf)
	if idx < 0 {
		return nil, false
	}

	line = region[:idx]
	b.pos += idx + 2
	b.len -= idx + 2
	return line, true
}

// Len reports the number of unconsumed bytes currently buffered.
func (b *Buffer) Len() int {
	return b.len
}
