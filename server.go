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

package ews

import (
	"context"
	"fmt"
	"net"
	"time"

	"golang.org/x/sys/unix"

	"github/sabouaram/ews/certificates"
	libcfg "github/sabouaram/ews/config"
	liberr "github/sabouaram/ews/errors"
	"github/sabouaram/ews/internal/evloop"
	"github/sabouaram/ews/listener"
	"github/sabouaram/ews/logger"
	loglvl "github/sabouaram/ews/logger/level"
	libmon "github/sabouaram/ews/monitor"
	"github/sabouaram/ews/route"
	"github/sabouaram/ews/runner"
	"github/sabouaram/ews/session"
	"github/sabouaram/ews/socket"
)

// Server owns one embeddable engine instance: its listeners, client-slot
// pools, worker, and the dispatch list an embedder registers routes into.
// The zero value is not usable; build one with New.
type Server struct {
	cfg *libcfg.Config
	log logger.Logger
	tls certificates.TLSConfig

	routes *route.List
	worker *evloop.Worker

	httpPool  *socket.Pool
	httpsPool *socket.Pool

	httpListener  *listener.Listener
	httpsListener *listener.Listener

	run runner.Runner
}

// New builds a Server from cfg. A nil cfg uses every default in
// config.New(). Building fails only if cfg's TLS material is present but
// invalid or unreadable.
func New(cfg *libcfg.Config) (*Server, liberr.Error) {
	if cfg == nil {
		cfg = libcfg.New()
	}
	if e := cfg.Validate(); e != nil {
		return nil, e
	}

	log := cfg.Logger
	if log == nil {
		log = logger.New(loglvl.InfoLevel, nil)
	}

	tlsCfg, e := cfg.BuildTLS()
	if e != nil {
		return nil, e
	}

	if cfg.WorkerStackHint != 0 {
		log.Entry(loglvl.DebugLevel, "worker stack hint ignored").
			FieldAdd("bytes", cfg.WorkerStackHint).Log()
	}

	s := &Server{
		cfg:      cfg,
		log:      log,
		tls:      tlsCfg,
		routes:   &route.List{},
		worker:   evloop.New(log),
		httpPool: socket.NewPool(cfg.MaxConnections),
	}
	if s.tls != nil {
		s.httpsPool = socket.NewPool(cfg.MaxConnections)
	}
	s.run = runner.New(&serverLifecycle{s: s})

	return s, nil
}

// Append registers a route at the tail of the dispatch list. Safe to call
// before Start; calling it on a running Server affects requests accepted
// after the call returns.
func (s *Server) Append(pattern string, handler route.Handler, args ...interface{}) *route.Route {
	return s.routes.Append(pattern, handler, args...)
}

// Clear drops every registered route, leaving only the built-in 404
// fallback the session engine always falls back to.
func (s *Server) Clear() {
	s.routes.Clear()
}

// Start binds the listeners and starts the worker goroutine. Returns an
// error if the Server is already running or a listener fails to bind.
func (s *Server) Start(ctx context.Context) liberr.Error {
	return s.run.Start(ctx)
}

// Stop runs the three-phase shutdown: stop accepting new connections,
// give in-flight sessions evloop.ShutdownGrace (or ctx's deadline, if
// sooner) to finish on their own, then tear down the worker.
func (s *Server) Stop(ctx context.Context) liberr.Error {
	return s.run.Stop(ctx)
}

// Restart stops then starts the Server again.
func (s *Server) Restart(ctx context.Context) liberr.Error {
	return s.run.Restart(ctx)
}

// IsRunning reports whether the worker goroutine is currently active.
func (s *Server) IsRunning() bool {
	return s.run.IsRunning()
}

// Monitor returns a health-check adapter reporting worker liveness and
// plaintext connection pool occupancy.
func (s *Server) Monitor() libmon.Monitor {
	return libmon.New(fmt.Sprintf("ews [:%d]", s.cfg.HTTPPort), s.worker, s.httpPool)
}

// serverLifecycle adapts Server's private doStart/doStop to the
// runner.StartStopper contract, the same split httpserver/run keeps
// between its Run wrapper and the *http.Server it drives.
type serverLifecycle struct {
	s *Server
}

func (l *serverLifecycle) Start(ctx context.Context) liberr.Error {
	return l.s.doStart(ctx)
}

func (l *serverLifecycle) Stop(ctx context.Context) liberr.Error {
	return l.s.doStop(ctx)
}

func (s *Server) doStart(ctx context.Context) liberr.Error {
	httpAddr := fmt.Sprintf(":%d", s.cfg.HTTPPort)
	l, e := listener.Bind(httpAddr, s.cfg.HTTPBacklog, s.httpPool, s.acceptPlain)
	if e != nil {
		return e
	}
	s.httpListener = l
	s.worker.Register(l.Slot())
	for _, slot := range s.httpPool.Slots() {
		s.worker.Register(slot)
	}
	s.log.Entry(loglvl.InfoLevel, "listening").FieldAdd("addr", httpAddr).Log()

	if s.tls != nil {
		httpsAddr := fmt.Sprintf(":%d", s.cfg.HTTPSPort)
		l2, e := listener.Bind(httpsAddr, s.cfg.HTTPSBacklog, s.httpsPool, s.acceptTLS)
		if e != nil {
			_ = s.httpListener.Close()
			return e
		}
		s.httpsListener = l2
		s.worker.Register(l2.Slot())
		for _, slot := range s.httpsPool.Slots() {
			s.worker.Register(slot)
		}
		s.log.Entry(loglvl.InfoLevel, "listening").FieldAdd("addr", httpsAddr).FieldAdd("tls", true).Log()
	}

	go s.worker.Run()
	return nil
}

func (s *Server) doStop(ctx context.Context) liberr.Error {
	if s.httpListener != nil {
		_ = s.httpListener.Close()
	}
	if s.httpsListener != nil {
		_ = s.httpsListener.Close()
	}

	grace := time.After(evloop.ShutdownGrace)
	for s.httpPool.InUseCount() > 0 || (s.httpsPool != nil && s.httpsPool.InUseCount() > 0) {
		select {
		case <-grace:
			return s.worker.Shutdown(ctx)
		case <-ctx.Done():
			return s.worker.Shutdown(ctx)
		case <-time.After(evloop.SelectInterval):
		}
	}

	return s.worker.Shutdown(ctx)
}

// acceptPlain wires a freshly accepted plaintext fd into an HTTP session
// engine synchronously, on the worker goroutine's pre-select pass — there
// is no handshake to wait on, so the thunk that armed this callback can
// finish the job inline.
func (s *Server) acceptPlain(fd int, remote net.Addr, slot *socket.Slot) {
	t := socket.NewPlain(fd)
	slot.Transport = t
	slot.Event = session.New(t, slot, s.routes, s.cfg.ReadBufferSize, s.log)
	slot.SetIdleTimeout(s.cfg.IdleTimeout.Milliseconds())
	slot.SetLastActive(time.Now().UnixMilli())
}

// acceptTLS hands the handshake to an auxiliary goroutine per config.md's
// allowance: slot.Transport/Event are only published once the handshake
// succeeds, and the worker's own Event==nil guard in its pre-select pass
// is what keeps it from touching a slot still under construction. A slot
// that fails to complete the handshake is marked pend-close so the next
// pass reaps it; this module has no non-blocking TLS handshake primitive
// to poll with the worker's own idle-timeout pass in the meantime.
func (s *Server) acceptTLS(fd int, remote net.Addr, slot *socket.Slot) {
	go func() {
		t, e := socket.NewTLS(fd, s.tls.TlsConfig(""))
		if e != nil {
			s.log.Entry(loglvl.ErrorLevel, "tls setup failed").ErrorAdd(true, e).Log()
			_ = unix.Close(fd)
			slot.SetPendClose(true)
			return
		}
		t.SetIOTimeout(s.cfg.IdleTimeout)
		if e := t.Handshake(); e != nil {
			s.log.Entry(loglvl.ErrorLevel, "tls handshake failed").ErrorAdd(true, e).Log()
			_ = t.Close()
			slot.SetPendClose(true)
			return
		}

		slot.Transport = t
		slot.Event = session.New(t, slot, s.routes, s.cfg.ReadBufferSize, s.log)
		slot.SetIdleTimeout(s.cfg.IdleTimeout.Milliseconds())
		slot.SetLastActive(time.Now().UnixMilli())
	}()
}
