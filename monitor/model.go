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

package monitor

import (
	"context"

	liberr "github/sabouaram/ews/errors"
)

type monitor struct {
	name   string
	worker Source
	pool   PoolSource
}

func (m *monitor) Name() string {
	return m.name
}

func (m *monitor) HealthCheck(ctx context.Context) liberr.Error {
	if m.worker == nil || !m.worker.Running() {
		return liberr.ErrorServerNotRunning.Error(nil)
	}
	return nil
}

func (m *monitor) Snapshot() Stats {
	s := Stats{WorkerRunning: m.worker != nil && m.worker.Running()}
	if m.pool != nil {
		s.PoolSize = m.pool.Size()
		s.PoolInUse = m.pool.InUseCount()
	}
	return s
}
