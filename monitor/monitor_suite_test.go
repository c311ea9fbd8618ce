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

package monitor_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libmon "github/sabouaram/ews/monitor"
)

func TestEWSMonitor(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Monitor Suite")
}

type fakeSource struct{ running bool }

func (f fakeSource) Running() bool { return f.running }

type fakePool struct{ size, inUse int }

func (f fakePool) Size() int       { return f.size }
func (f fakePool) InUseCount() int { return f.inUse }

var _ = Describe("Monitor", func() {
	It("reports healthy when the worker is running", func() {
		m := libmon.New("test", fakeSource{running: true}, fakePool{size: 4, inUse: 1})
		Expect(m.Name()).To(Equal("test"))
		Expect(m.HealthCheck(context.Background())).To(BeNil())

		s := m.Snapshot()
		Expect(s.WorkerRunning).To(BeTrue())
		Expect(s.PoolSize).To(Equal(4))
		Expect(s.PoolInUse).To(Equal(1))
	})

	It("reports unhealthy when the worker is stopped", func() {
		m := libmon.New("test", fakeSource{running: false}, nil)
		Expect(m.HealthCheck(context.Background())).ToNot(BeNil())
	})

	It("treats a nil worker source as unhealthy", func() {
		m := libmon.New("test", nil, nil)
		Expect(m.HealthCheck(context.Background())).ToNot(BeNil())
		Expect(m.Snapshot().WorkerRunning).To(BeFalse())
	})

	It("renders a Stats summary string", func() {
		s := libmon.Stats{WorkerRunning: true, PoolSize: 4, PoolInUse: 2}
		Expect(s.String()).To(Equal("running=true conns=2/4"))
	})
})
