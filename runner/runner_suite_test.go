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

package runner_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	liberr "github/sabouaram/ews/errors"
	librun "github/sabouaram/ews/runner"
)

func TestEWSRunner(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Runner Suite")
}

type fakeTarget struct {
	starts, stops atomic.Int32
	startErr      liberr.Error
	stopErr       liberr.Error
}

func (f *fakeTarget) Start(ctx context.Context) liberr.Error {
	f.starts.Add(1)
	return f.startErr
}

func (f *fakeTarget) Stop(ctx context.Context) liberr.Error {
	f.stops.Add(1)
	return f.stopErr
}

var _ = Describe("Runner", func() {
	It("reports not running until Start succeeds", func() {
		t := &fakeTarget{}
		r := librun.New(t)
		Expect(r.IsRunning()).To(BeFalse())

		Expect(r.Start(context.Background())).To(BeNil())
		Expect(r.IsRunning()).To(BeTrue())
		Expect(t.starts.Load()).To(Equal(int32(1)))
	})

	It("rejects a second Start while already running", func() {
		t := &fakeTarget{}
		r := librun.New(t)
		Expect(r.Start(context.Background())).To(BeNil())
		Expect(r.Start(context.Background())).ToNot(BeNil())
	})

	It("rejects Stop when not running", func() {
		r := librun.New(&fakeTarget{})
		Expect(r.Stop(context.Background())).ToNot(BeNil())
	})

	It("Restart stops then starts again", func() {
		t := &fakeTarget{}
		r := librun.New(t)
		Expect(r.Start(context.Background())).To(BeNil())
		Expect(r.Restart(context.Background())).To(BeNil())
		Expect(t.starts.Load()).To(Equal(int32(2)))
		Expect(t.stops.Load()).To(Equal(int32(1)))
		Expect(r.IsRunning()).To(BeTrue())
	})

	It("records the error from a failed Start and stops running", func() {
		want := liberr.ErrorServerClosed.Error(nil)
		t := &fakeTarget{startErr: want}
		r := librun.New(t)

		Expect(r.Start(context.Background())).ToNot(BeNil())
		Expect(r.IsRunning()).To(BeFalse())
		Expect(r.GetError()).ToNot(BeNil())
	})

	It("reports zero uptime while stopped", func() {
		r := librun.New(&fakeTarget{})
		Expect(r.Uptime()).To(Equal(time.Duration(0)))
	})
})
