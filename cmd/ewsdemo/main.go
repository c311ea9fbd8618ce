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

// Command ewsdemo embeds the engine with a couple of routes, enough to
// exercise the whole request lifecycle end to end: a static response, an
// echo of the request body, and the built-in 404 fallback for everything
// else.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	ews "github/sabouaram/ews"
	libcfg "github/sabouaram/ews/config"
	"github/sabouaram/ews/logger"
	loglvl "github/sabouaram/ews/logger/level"
	"github/sabouaram/ews/route"
)

func main() {
	log := logger.New(loglvl.InfoLevel, nil)

	cfg := libcfg.New(
		libcfg.WithBind(":8080"),
		libcfg.WithIdleTimeout(30*time.Second),
		libcfg.WithLogger(log),
	)

	srv, e := ews.New(cfg)
	if e != nil {
		log.Entry(loglvl.ErrorLevel, "building server").ErrorAdd(true, e).Log()
		os.Exit(1)
	}

	srv.Append("/hello", helloHandler)
	srv.Append("/echo", echoHandler)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if e := srv.Start(ctx); e != nil {
		log.Entry(loglvl.ErrorLevel, "starting server").ErrorAdd(true, e).Log()
		os.Exit(1)
	}
	log.Entry(loglvl.InfoLevel, "ewsdemo started").Log()

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if e := srv.Stop(stopCtx); e != nil {
		log.Entry(loglvl.ErrorLevel, "stopping server").ErrorAdd(true, e).Log()
		os.Exit(1)
	}
}

func helloHandler(sess route.Session, state route.State) route.Status {
	switch state {
	case route.RequestBegin:
		return route.Found
	case route.RequestHeader, route.RequestBody:
		return route.Next
	case route.ResponseBegin:
		sess.Status(200, "OK")
		return route.Next
	case route.ResponseHeader:
		sess.SetHeader("Content-Type", "text/plain")
		return route.Next
	case route.ResponseBody:
		sess.Sendf("hello from ewsdemo\n")
		return route.Done
	default:
		return route.Done
	}
}

// echoHandler streams the request body straight back as the response body,
// a chunk at a time, exercising the RequestBody/ResponseBody More protocol.
func echoHandler(sess route.Session, state route.State) route.Status {
	switch state {
	case route.RequestBegin:
		return route.Found
	case route.RequestHeader:
		return route.Next
	case route.RequestBody:
		return route.Next
	case route.ResponseBegin:
		sess.Status(200, "OK")
		return route.Next
	case route.ResponseHeader:
		sess.SetHeader("Content-Type", "application/octet-stream")
		return route.Next
	case route.ResponseBody:
		buf := make([]byte, 4096)
		n := sess.Recv(buf)
		if n == 0 {
			return route.Done
		}
		sess.Send(buf[:n])
		return route.More
	default:
		return route.Done
	}
}
