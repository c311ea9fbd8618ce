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

// Package runner is the Start/Stop/Restart/IsRunning lifecycle wrapper
// httpserver/run puts around a *http.Server, applied here to whatever
// StartStopper a caller hands it — the worker goroutine pair this module
// assembles in its top-level Server. Runner itself knows nothing about
// sockets or sessions; it only sequences calls and tracks state.
package runner

import (
	"context"
	"time"

	liberr "github/sabouaram/ews/errors"
)

// StartStopper is the minimum a component needs to implement to be driven
// by a Runner: a Start that brings the component up and returns, and a Stop
// that tears it down within its context.
type StartStopper interface {
	Start(ctx context.Context) liberr.Error
	Stop(ctx context.Context) liberr.Error
}

// Runner sequences Start/Stop/Restart calls against an underlying
// StartStopper and tracks run state and the last error observed, mirroring
// sRun's GetError/run-flag bookkeeping.
type Runner interface {
	Start(ctx context.Context) liberr.Error
	Stop(ctx context.Context) liberr.Error
	Restart(ctx context.Context) liberr.Error
	IsRunning() bool
	Uptime() time.Duration
	GetError() liberr.Error
}

// New wraps target in a Runner.
func New(target StartStopper) Runner {
	return &runner{target: target}
}
