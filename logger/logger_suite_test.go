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

package logger_test

import (
	"bytes"
	"errors"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	liblog "github/sabouaram/ews/logger"
	loglvl "github/sabouaram/ews/logger/level"
)

func TestEWSLogger(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Logger Suite")
}

var _ = Describe("Logger", func() {
	It("writes an entry that meets the configured level", func() {
		buf := &bytes.Buffer{}
		log := liblog.New(loglvl.InfoLevel, buf)

		log.Entry(loglvl.InfoLevel, "server started").FieldAdd("addr", ":8080").Log()

		Expect(buf.String()).To(ContainSubstring("server started"))
		Expect(buf.String()).To(ContainSubstring("addr"))
	})

	It("suppresses everything at NilLevel", func() {
		buf := &bytes.Buffer{}
		log := liblog.New(loglvl.NilLevel, buf)

		log.Entry(loglvl.ErrorLevel, "should not appear").Log()

		Expect(buf.String()).To(BeEmpty())
	})

	It("includes attached errors", func() {
		buf := &bytes.Buffer{}
		log := liblog.New(loglvl.DebugLevel, buf)

		log.Entry(loglvl.ErrorLevel, "accept failed").ErrorAdd(true, nil, errors.New("too many open files")).Log()
		Expect(buf.String()).To(ContainSubstring("accept failed"))
		Expect(buf.String()).To(ContainSubstring("too many open files"))
	})
})
