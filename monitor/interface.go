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

// Package monitor is httpserver/monitor.go's HealthCheck/MonitorName pair,
// shrunk to what an embedded engine can report without a config/version
// registry of its own: whether the worker goroutine is alive and how much
// of the connection pool is occupied.
package monitor

import (
	"context"
	"fmt"

	liberr "github/sabouaram/ews/errors"
)

// Source is the liveness signal the monitor inspects; the worker implements
// it. The client pool exposes a different signal and implements PoolSource.
type Source interface {
	// Running reports whether the inspected component is alive.
	Running() bool
}

// PoolSource additionally exposes connection pressure; socket.Pool
// implements it.
type PoolSource interface {
	Size() int
	InUseCount() int
}

// Monitor is the health-check surface a caller (an HTTP health endpoint,
// an orchestrator readiness probe) polls.
type Monitor interface {
	// Name identifies this monitor instance in logs and probe output.
	Name() string
	// HealthCheck returns nil when the worker is running; otherwise an
	// error describing why it isn't.
	HealthCheck(ctx context.Context) liberr.Error
	// Snapshot reports a point-in-time view of connection pressure.
	Snapshot() Stats
}

// Stats is a point-in-time readout of pool occupancy.
type Stats struct {
	WorkerRunning bool
	PoolSize      int
	PoolInUse     int
}

// String renders Stats the way a /healthz handler would log or print it.
func (s Stats) String() string {
	return fmt.Sprintf("running=%t conns=%d/%d", s.WorkerRunning, s.PoolInUse, s.PoolSize)
}

// New builds a Monitor named name, reporting on worker's liveness and
// pool's occupancy. pool may be nil when a caller only wants worker
// liveness (e.g. the plaintext-only listener has no separate TLS pool).
func New(name string, worker Source, pool PoolSource) Monitor {
	return &monitor{name: name, worker: worker, pool: pool}
}
