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

package config

import (
	"net"
	"strconv"
	"time"

	"github/sabouaram/ews/certificates"
	"github/sabouaram/ews/logger"
)

func splitPort(addr string) int {
	_, ps, e := net.SplitHostPort(addr)
	if e != nil {
		return 0
	}
	p, e := strconv.Atoi(ps)
	if e != nil {
		return 0
	}
	return p
}

// WithBind sets the plain HTTP listen address. Only the port is retained;
// a listener built from Config always binds every local interface, matching
// ews_init's own INADDR_ANY behavior.
func WithBind(addr string) Option {
	return func(c *Config) { c.HTTPPort = splitPort(addr) }
}

// WithBacklog sets the plain HTTP listen(2) backlog.
func WithBacklog(n int) Option {
	return func(c *Config) { c.HTTPBacklog = n }
}

// WithTLSBind sets the HTTPS listen address, following the same
// port-only convention as WithBind.
func WithTLSBind(addr string) Option {
	return func(c *Config) { c.HTTPSPort = splitPort(addr) }
}

// WithTLSBacklog sets the HTTPS listen(2) backlog.
func WithTLSBacklog(n int) Option {
	return func(c *Config) { c.HTTPSBacklog = n }
}

// WithIdleTimeout sets how long a connection may sit without activity
// before the worker reaps it.
func WithIdleTimeout(d time.Duration) Option {
	return func(c *Config) { c.IdleTimeout = d }
}

// WithTLS names the certificate and private key files the HTTPS listener
// loads at startup.
func WithTLS(crtFile, keyFile string) Option {
	return func(c *Config) {
		c.HTTPSCrtFile = crtFile
		c.HTTPSKeyFile = keyFile
	}
}

// WithTLSConfig supplies an already-built TLSConfig, bypassing
// WithTLS's file-based loading entirely — the same "either declarative
// Config or a hand-built TLSConfig" split httpserver/serverOpt.go offers.
func WithTLSConfig(t certificates.TLSConfig) Option {
	return func(c *Config) { c.TLS = t }
}

// WithMaxConnections caps the number of client slots kept in the pool.
func WithMaxConnections(n int) Option {
	return func(c *Config) { c.MaxConnections = n }
}

// WithReadBufferSize sets the per-session ingress buffer capacity.
func WithReadBufferSize(n int) Option {
	return func(c *Config) { c.ReadBufferSize = n }
}

// WithHTTP2 sets the reserved, inert HTTP/2 flag. No component reads it;
// BuildTLS does not consult it either.
func WithHTTP2(enabled bool) Option {
	return func(c *Config) { c.EnableHTTP2 = enabled }
}

// WithWorkerStackHint records a requested worker stack size. Accepted for
// API-compatibility with the reference implementation's thread creation
// call; Go goroutines grow their own stacks, so the value is logged at
// debug level by the caller and otherwise unused.
func WithWorkerStackHint(bytes int) Option {
	return func(c *Config) { c.WorkerStackHint = bytes }
}

// WithLogger sets the logger components built from this Config log
// through.
func WithLogger(l logger.Logger) Option {
	return func(c *Config) { c.Logger = l }
}
