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

package ews_test

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	ews "github/sabouaram/ews"
	libcfg "github/sabouaram/ews/config"
	"github/sabouaram/ews/route"
)

func TestEWSServer(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Server Suite")
}

var _ = Describe("Server", func() {
	var (
		srv  *ews.Server
		port int
	)

	BeforeEach(func() {
		port = freePort()
		cfg := libcfg.New(
			libcfg.WithBind(":"+strconv.Itoa(port)),
			libcfg.WithBacklog(4),
			libcfg.WithMaxConnections(4),
		)

		var err error
		srv, err = ews.New(cfg)
		Expect(err).To(BeNil())

		srv.Append("/hello", func(sess route.Session, state route.State) route.Status {
			switch state {
			case route.RequestBegin:
				return route.Found
			case route.RequestHeader, route.RequestBody:
				return route.Next
			case route.ResponseBegin:
				sess.Status(200, "OK")
				return route.Next
			case route.ResponseHeader:
				sess.SetHeader("Content-Length", "2")
				return route.Next
			case route.ResponseBody:
				sess.Send([]byte("ok"))
				return route.Done
			default:
				return route.Done
			}
		})
	})

	AfterEach(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Stop(ctx)
	})

	It("starts, serves a registered route, and stops cleanly", func() {
		Expect(srv.Start(context.Background())).To(BeNil())
		Eventually(srv.IsRunning, time.Second, 5*time.Millisecond).Should(BeTrue())

		var resp string
		Eventually(func() string {
			resp = httpGET(port, "/hello")
			return resp
		}, 2*time.Second, 10*time.Millisecond).Should(ContainSubstring("200"))
		Expect(resp).To(ContainSubstring("ok"))

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		Expect(srv.Stop(ctx)).To(BeNil())
		Expect(srv.IsRunning()).To(BeFalse())
	})

	It("reports a healthy monitor once running", func() {
		Expect(srv.Start(context.Background())).To(BeNil())
		Eventually(srv.IsRunning, time.Second, 5*time.Millisecond).Should(BeTrue())

		m := srv.Monitor()
		Expect(m.HealthCheck(context.Background())).To(BeNil())
	})

	It("rejects a second Start while already running", func() {
		Expect(srv.Start(context.Background())).To(BeNil())
		Eventually(srv.IsRunning, time.Second, 5*time.Millisecond).Should(BeTrue())
		Expect(srv.Start(context.Background())).ToNot(BeNil())
	})
})

func freePort() int {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	Expect(err).ToNot(HaveOccurred())
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func httpGET(port int, path string) string {
	conn, err := net.DialTimeout("tcp", "127.0.0.1:"+strconv.Itoa(port), time.Second)
	Expect(err).ToNot(HaveOccurred())
	defer conn.Close()

	_, err = conn.Write([]byte("GET " + path + " HTTP/1.1\r\nHost: localhost\r\nConnection: close\r\n\r\n"))
	Expect(err).ToNot(HaveOccurred())

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	buf := make([]byte, 4096)
	n, _ := conn.Read(buf)
	return string(buf[:n])
}
