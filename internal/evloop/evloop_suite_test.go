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

package evloop_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/sys/unix"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libevl "github/sabouaram/ews/internal/evloop"
	libsck "github/sabouaram/ews/socket"
)

func TestEWSEvloop(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Evloop Suite")
}

func socketPair() (a, b int) {
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	Expect(err).ToNot(HaveOccurred())
	return fds[0], fds[1]
}

// fakeEvent is a minimal socket.Event recording how many times each hook
// fired, standing in for the HTTP session engine in these tests.
type fakeEvent struct {
	reads, writes, connects, closes atomic.Int32
	wantRead, wantWrite             atomic.Bool
}

func (f *fakeEvent) OnConnect()        { f.connects.Add(1) }
func (f *fakeEvent) OnClose()          { f.closes.Add(1) }
func (f *fakeEvent) WantRead() bool    { return f.wantRead.Load() }
func (f *fakeEvent) WantWrite() bool   { return f.wantWrite.Load() }
func (f *fakeEvent) DoRead()           { f.reads.Add(1) }
func (f *fakeEvent) DoWrite()          { f.writes.Add(1) }

var _ = Describe("Worker", func() {
	var w *libevl.Worker

	BeforeEach(func() {
		w = libevl.New(nil)
	})

	It("invokes OnConnect once then marks the slot connected", func() {
		fda, fdb := socketPair()
		defer unix.Close(fdb)

		ev := &fakeEvent{}
		ev.wantRead.Store(true)

		slot := &libsck.Slot{Transport: libsck.NewPlain(fda), Event: ev}
		slot.SetInUse(true)
		w.Register(slot)

		go w.Run()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = w.Shutdown(ctx)
		}()

		Eventually(func() bool { return slot.Connected() }, time.Second, 5*time.Millisecond).Should(BeTrue())
		Expect(ev.connects.Load()).To(Equal(int32(1)))
	})

	It("drives DoRead when the peer writes", func() {
		fda, fdb := socketPair()
		defer unix.Close(fdb)

		ev := &fakeEvent{}
		ev.wantRead.Store(true)

		slot := &libsck.Slot{Transport: libsck.NewPlain(fda), Event: ev}
		slot.SetInUse(true)
		w.Register(slot)

		go w.Run()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = w.Shutdown(ctx)
		}()

		Eventually(func() bool { return slot.Connected() }, time.Second, 5*time.Millisecond).Should(BeTrue())

		_, err := unix.Write(fdb, []byte("hello"))
		Expect(err).ToNot(HaveOccurred())

		Eventually(func() int32 { return ev.reads.Load() }, time.Second, 5*time.Millisecond).Should(BeNumerically(">=", 1))
	})

	It("reaps an idle slot via OnClose and resets it", func() {
		fda, fdb := socketPair()
		defer unix.Close(fdb)

		ev := &fakeEvent{}
		slot := &libsck.Slot{Transport: libsck.NewPlain(fda), Event: ev}
		slot.SetInUse(true)
		slot.SetConnected(true)
		slot.SetIdleTimeout(1)
		slot.SetLastActive(time.Now().UnixMilli() - 1000)
		w.Register(slot)

		go w.Run()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = w.Shutdown(ctx)
		}()

		Eventually(func() bool { return slot.InUse() }, time.Second, 5*time.Millisecond).Should(BeFalse())
		Expect(ev.closes.Load()).To(Equal(int32(1)))
	})

	It("closes a pend-close slot on the next pass", func() {
		fda, fdb := socketPair()
		defer unix.Close(fdb)

		ev := &fakeEvent{}
		slot := &libsck.Slot{Transport: libsck.NewPlain(fda), Event: ev}
		slot.SetInUse(true)
		slot.SetConnected(true)
		slot.SetPendClose(true)
		w.Register(slot)

		go w.Run()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = w.Shutdown(ctx)
		}()

		Eventually(func() bool { return slot.InUse() }, time.Second, 5*time.Millisecond).Should(BeFalse())
		Expect(ev.closes.Load()).To(Equal(int32(1)))
	})

	It("Shutdown returns once Run observes the stop signal", func() {
		go w.Run()
		Eventually(w.Running, time.Second, 5*time.Millisecond).Should(BeTrue())

		ctx, cancel := context.WithTimeout(context.Background(), libevl.ShutdownGrace)
		defer cancel()
		Expect(w.Shutdown(ctx)).To(BeNil())
		Expect(w.Running()).To(BeFalse())
	})
})
