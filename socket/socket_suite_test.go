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

package socket_test

import (
	"testing"

	"golang.org/x/sys/unix"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libsck "github/sabouaram/ews/socket"
)

func TestEWSSocket(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Socket Suite")
}

func socketPair() (a, b int) {
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	Expect(err).ToNot(HaveOccurred())
	return fds[0], fds[1]
}

var _ = Describe("Slot", func() {
	It("starts out unused and not connected", func() {
		s := &libsck.Slot{}
		Expect(s.InUse()).To(BeFalse())
		Expect(s.Connected()).To(BeFalse())
		Expect(s.PendClose()).To(BeFalse())
	})

	It("tracks pend-close as a one-shot flag", func() {
		s := &libsck.Slot{}
		s.SetPendClose(true)
		Expect(s.PendClose()).To(BeTrue())
	})

	It("zeroes every field on Reset", func() {
		s := &libsck.Slot{}
		s.SetInUse(true)
		s.SetConnected(true)
		s.SetPendClose(true)
		s.SetLastActive(123)
		s.SetIdleTimeout(456)
		s.UserData = "session"

		s.Reset()

		Expect(s.InUse()).To(BeFalse())
		Expect(s.Connected()).To(BeFalse())
		Expect(s.PendClose()).To(BeFalse())
		Expect(s.LastActive()).To(Equal(int64(0)))
		Expect(s.IdleTimeout()).To(Equal(int64(0)))
		Expect(s.UserData).To(BeNil())
	})
})

var _ = Describe("plain transport", func() {
	It("round-trips bytes between both ends of a socket pair", func() {
		a, b := socketPair()
		ta := libsck.NewPlain(a)
		tb := libsck.NewPlain(b)
		defer ta.Close()
		defer tb.Close()

		n, wouldBlock, err := ta.Send([]byte("hello"))
		Expect(err).ToNot(HaveOccurred())
		Expect(wouldBlock).To(BeFalse())
		Expect(n).To(Equal(5))

		buf := make([]byte, 16)
		n, wouldBlock, err = tb.Recv(buf)
		Expect(err).ToNot(HaveOccurred())
		Expect(wouldBlock).To(BeFalse())
		Expect(string(buf[:n])).To(Equal("hello"))
	})

	It("reports Avail as always 0", func() {
		a, b := socketPair()
		ta := libsck.NewPlain(a)
		defer ta.Close()
		defer unix.Close(b)

		Expect(ta.Avail()).To(Equal(0))
	})

	It("sets pend-close on an orderly peer close", func() {
		a, b := socketPair()
		ta := libsck.NewPlain(a)
		tb := libsck.NewPlain(b)
		defer ta.Close()

		Expect(tb.Close()).ToNot(HaveOccurred())

		buf := make([]byte, 16)
		n, _, err := ta.Recv(buf)
		Expect(err).ToNot(HaveOccurred())
		Expect(n).To(Equal(0))
		Expect(ta.PendClose()).To(BeTrue())
	})

	It("marks shutdown idempotent", func() {
		a, b := socketPair()
		ta := libsck.NewPlain(a)
		defer ta.Close()
		defer unix.Close(b)

		Expect(ta.Shutdown()).ToNot(HaveOccurred())
		Expect(ta.Shutdown()).ToNot(HaveOccurred())
	})

	It("refuses to send after shutdown", func() {
		a, b := socketPair()
		ta := libsck.NewPlain(a)
		defer ta.Close()
		defer unix.Close(b)

		Expect(ta.Shutdown()).ToNot(HaveOccurred())
		n, _, err := ta.Send([]byte("x"))
		Expect(err).ToNot(HaveOccurred())
		Expect(n).To(Equal(-1))
	})
})
