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

package config_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libcfg "github/sabouaram/ews/config"
)

func TestEWSConfig(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Config Suite")
}

var _ = Describe("Config", func() {
	Context("defaulting", func() {
		It("fills in every zero-valued knob", func() {
			c := libcfg.New()

			Expect(c.HTTPPort).To(Equal(libcfg.DefaultHTTPPort))
			Expect(c.HTTPBacklog).To(Equal(libcfg.DefaultBacklog))
			Expect(c.HTTPSPort).To(Equal(libcfg.DefaultHTTPSPort))
			Expect(c.HTTPSBacklog).To(Equal(libcfg.DefaultBacklog))
			Expect(c.IdleTimeout).To(Equal(libcfg.DefaultIdleTimeout))
			Expect(c.MaxConnections).To(Equal(libcfg.DefaultMaxConns))
			Expect(c.ReadBufferSize).To(Equal(libcfg.DefaultReadBufSize))
		})

		It("keeps explicit non-zero overrides", func() {
			c := libcfg.New(
				libcfg.WithBind("0.0.0.0:9090"),
				libcfg.WithBacklog(64),
				libcfg.WithIdleTimeout(5*time.Second),
				libcfg.WithMaxConnections(128),
				libcfg.WithReadBufferSize(8192),
			)

			Expect(c.HTTPPort).To(Equal(9090))
			Expect(c.HTTPBacklog).To(Equal(64))
			Expect(c.IdleTimeout).To(Equal(5 * time.Second))
			Expect(c.MaxConnections).To(Equal(128))
			Expect(c.ReadBufferSize).To(Equal(8192))
		})

		It("ignores a negative backlog and falls back to the default", func() {
			c := libcfg.New(libcfg.WithBacklog(-1))
			Expect(c.HTTPBacklog).To(Equal(libcfg.DefaultBacklog))
		})
	})

	Context("Validate", func() {
		It("accepts a config with no TLS material at all", func() {
			c := libcfg.New()
			Expect(c.Validate()).To(BeNil())
		})

		It("accepts a matched cert/key file pair", func() {
			c := libcfg.New(libcfg.WithTLS("server.crt", "server.key"))
			Expect(c.Validate()).To(BeNil())
		})

		It("rejects a cert file without a matching key file", func() {
			c := libcfg.New(libcfg.WithTLS("server.crt", ""))
			Expect(c.Validate()).ToNot(BeNil())
		})
	})

	Context("WantsTLS / BuildTLS", func() {
		It("reports no TLS wanted when nothing was configured", func() {
			c := libcfg.New()
			Expect(c.WantsTLS()).To(BeFalse())

			t, err := c.BuildTLS()
			Expect(err).To(BeNil())
			Expect(t).To(BeNil())
		})

		It("reports TLS wanted once a cert/key pair is set", func() {
			c := libcfg.New(libcfg.WithTLS("server.crt", "server.key"))
			Expect(c.WantsTLS()).To(BeTrue())
		})

		It("fails to build from files that don't exist on disk", func() {
			c := libcfg.New(libcfg.WithTLS("/no/such.crt", "/no/such.key"))
			_, err := c.BuildTLS()
			Expect(err).ToNot(BeNil())
		})
	})
})
