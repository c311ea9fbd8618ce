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

package runner

import (
	"context"
	"sync"
	"time"

	liberr "github/sabouaram/ews/errors"
)

type runner struct {
	mu      sync.RWMutex
	target  StartStopper
	running bool
	startAt time.Time
	err     liberr.Error
}

func (r *runner) Start(ctx context.Context) liberr.Error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return liberr.ErrorServerAlreadyRunning.Error(nil)
	}
	r.running = true
	r.startAt = time.Now()
	r.err = nil
	r.mu.Unlock()

	e := r.target.Start(ctx)

	r.mu.Lock()
	if e != nil {
		r.running = false
		r.err = e
	}
	r.mu.Unlock()

	return e
}

func (r *runner) Stop(ctx context.Context) liberr.Error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return liberr.ErrorServerNotRunning.Error(nil)
	}
	r.mu.Unlock()

	e := r.target.Stop(ctx)

	r.mu.Lock()
	r.running = false
	if e != nil {
		r.err = e
	}
	r.mu.Unlock()

	return e
}

func (r *runner) Restart(ctx context.Context) liberr.Error {
	if e := r.Stop(ctx); e != nil {
		return e
	}
	return r.Start(ctx)
}

func (r *runner) IsRunning() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.running
}

func (r *runner) Uptime() time.Duration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.running {
		return 0
	}
	return time.Since(r.startAt)
}

func (r *runner) GetError() liberr.Error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.err
}
