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

package wire_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	liberr "github/sabouaram/ews/errors"
	"github/sabouaram/ews/internal/wire"
)

func TestEWSWire(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Wire Suite")
}

var _ = Describe("Buffer", func() {
	It("finds a CRLF-terminated line and consumes it with the terminator", func() {
		b := wire.NewBuffer(64)
		n := copy(b.WriteSlice(), "GET / HTTP/1.1\r\nHost: x\r\n\r\n")
		b.Wrote(n)

		line, ok := b.Line()
		Expect(ok).To(BeTrue())
		Expect(string(line)).To(Equal("GET / HTTP/1.1"))
		Expect(b.Len()).To(Equal(n - len("GET / HTTP/1.1") - 2))
	})

	It("reports no line when no CRLF is present yet", func() {
		b := wire.NewBuffer(64)
		n := copy(b.WriteSlice(), "GET / HTTP/1.1")
		b.Wrote(n)

		_, ok := b.Line()
		Expect(ok).To(BeFalse())
	})

	It("reports full at capacity", func() {
		b := wire.NewBuffer(4)
		n := copy(b.WriteSlice(), "abcd")
		b.Wrote(n)
		Expect(b.Full()).To(BeTrue())
		Expect(b.Free()).To(Equal(0))
	})

	It("compacts unconsumed bytes to the front, freeing room at the tail", func() {
		b := wire.NewBuffer(16)
		n := copy(b.WriteSlice(), "AB\r\nCDEF")
		b.Wrote(n)
		_, _ = b.Line()
		Expect(string(b.Unconsumed())).To(Equal("CDEF"))
		Expect(b.Free()).To(Equal(8))

		b.Compact()
		Expect(string(b.Unconsumed())).To(Equal("CDEF"))
		Expect(b.Free()).To(Equal(12))
	})

	It("consumes body bytes logically without moving the write tail", func() {
		b := wire.NewBuffer(16)
		n := copy(b.WriteSlice(), "hello")
		b.Wrote(n)

		got := b.Consume(3)
		Expect(got).To(Equal(3))
		Expect(string(b.Unconsumed())).To(Equal("lo"))
	})
})

var _ = Describe("ParseRequestLine", func() {
	It("parses a GET HTTP/1.1 request line as keepalive", func() {
		rl, err := wire.ParseRequestLine([]byte("GET /foo?bar=1 HTTP/1.1"))
		Expect(err).To(BeNil())
		Expect(rl.Method).To(Equal(wire.MethodGet))
		Expect(rl.RawPath).To(Equal("/foo?bar=1"))
		Expect(rl.Version).To(Equal(wire.Version11))
		Expect(rl.Keepalive).To(BeTrue())
	})

	It("parses HTTP/1.0 as non-keepalive", func() {
		rl, err := wire.ParseRequestLine([]byte("POST /x HTTP/1.0"))
		Expect(err).To(BeNil())
		Expect(rl.Version).To(Equal(wire.Version10))
		Expect(rl.Keepalive).To(BeFalse())
	})

	It("treats a missing version as HTTP/0.9", func() {
		rl, err := wire.ParseRequestLine([]byte("GET /"))
		Expect(err).To(BeNil())
		Expect(rl.Version).To(Equal(wire.Version09))
	})

	It("upper-cases a lowercase method", func() {
		rl, err := wire.ParseRequestLine([]byte("get / HTTP/1.1"))
		Expect(err).To(BeNil())
		Expect(rl.Method).To(Equal(wire.MethodGet))
	})

	It("maps an unrecognized method to OTHER", func() {
		rl, err := wire.ParseRequestLine([]byte("FROB / HTTP/1.1"))
		Expect(err).To(BeNil())
		Expect(rl.Method).To(Equal(wire.MethodOther))
	})

	It("rejects an unsupported version", func() {
		_, err := wire.ParseRequestLine([]byte("GET / HTTP/2.0"))
		Expect(err).ToNot(BeNil())
		Expect(err.Is(liberr.ErrorUnsupportedVersion)).To(BeTrue())
	})

	It("rejects an empty line", func() {
		_, err := wire.ParseRequestLine([]byte(""))
		Expect(err).ToNot(BeNil())
	})

	It("ignores tokens beyond method, path and version", func() {
		rl, err := wire.ParseRequestLine([]byte("GET / HTTP/1.1 extra junk"))
		Expect(err).To(BeNil())
		Expect(rl.Version).To(Equal(wire.Version11))
	})
})

var _ = Describe("ParseHeaderLine", func() {
	It("splits name and value on the first colon-space", func() {
		name, value, err := wire.ParseHeaderLine([]byte("Host: example.com"))
		Expect(err).To(BeNil())
		Expect(name).To(Equal("Host"))
		Expect(value).To(Equal("example.com"))
	})

	It("trims extra leading whitespace from the value", func() {
		_, value, err := wire.ParseHeaderLine([]byte("X-Thing:    value"))
		Expect(err).To(BeNil())
		Expect(value).To(Equal("value"))
	})

	It("rejects a line with no colon-space", func() {
		_, _, err := wire.ParseHeaderLine([]byte("not-a-header"))
		Expect(err).ToNot(BeNil())
	})

	It("rejects a line whose name is empty", func() {
		_, _, err := wire.ParseHeaderLine([]byte(": value"))
		Expect(err).ToNot(BeNil())
	})
})
