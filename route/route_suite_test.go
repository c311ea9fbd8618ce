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

package route_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github/sabouaram/ews/route"
)

func TestEWSRoute(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Route Suite")
}

var _ = Describe("Match", func() {
	DescribeTable("glob truth table",
		func(pattern, s string, want bool) {
			Expect(route.Match(pattern, s)).To(Equal(want))
		},
		Entry("literal exact match", "/foo", "/foo", true),
		Entry("literal mismatch", "/foo", "/bar", false),
		Entry("literal prefix is not a match", "/foo", "/foobar", false),
		Entry("trailing star matches any suffix", "/foo*", "/foobar", true),
		Entry("trailing star matches empty suffix", "/foo*", "/foo", true),
		Entry("leading star matches any prefix", "*/foo", "/a/b/foo", true),
		Entry("bare star matches everything", "*", "/anything/at/all", true),
		Entry("bare star matches empty string", "*", "", true),
		Entry("question mark matches exactly one byte", "/a?c", "/abc", true),
		Entry("question mark does not match zero bytes", "/a?c", "/ac", false),
		Entry("question mark does not match two bytes", "/a?c", "/abbc", false),
		Entry("star requires backtracking past a false start", "/a*c", "/axyzc", true),
		Entry("star backtrack stops at the first literal match, leaving tail unconsumed", "/a*c", "/abcabc", false),
		Entry("empty pattern only matches empty string", "", "", true),
		Entry("empty pattern rejects nonempty string", "", "/x", false),
	)
})

var _ = Describe("NormalizePath", func() {
	DescribeTable("normalization examples",
		func(raw, wantPath, wantQuery string) {
			path, query := route.NormalizePath(raw)
			Expect(path).To(Equal(wantPath))
			Expect(query).To(Equal(wantQuery))
		},
		Entry("collapses dot and dot-dot segments", "/..//a/./b", "/a/b", ""),
		Entry("decodes percent escapes", "/%48%69", "/Hi", ""),
		Entry("decodes lowercase percent escapes", "/%6f%6b", "/ok", ""),
		Entry("plus becomes space", "/a+b", "/a b", ""),
		Entry("splits off the query string", "/foo?bar=1", "/foo", "bar=1"),
		Entry("collapses repeated slashes", "/a//b///c", "/a/b/c", ""),
		Entry("dot-dot never pops below root", "/../../a", "/a", ""),
		Entry("already normalized path is unchanged", "/a/b/c", "/a/b/c", ""),
		Entry("literal dot not followed by slash is kept", "/a.b", "/a.b", ""),
	)

	It("is idempotent on its own output", func() {
		first, _ := route.NormalizePath("/..//a/./b")
		second, _ := route.NormalizePath(first)
		Expect(second).To(Equal(first))
	})
})

var _ = Describe("List", func() {
	It("dispatches in registration order and matches patterns", func() {
		var l route.List
		l.Append("/a", func(route.Session, route.State) route.Status { return route.Found })
		l.Append("/b", func(route.Session, route.State) route.Status { return route.Found })

		r := l.Matching(nil, "/b")
		Expect(r).ToNot(BeNil())
		Expect(r.Pattern).To(Equal("/b"))
	})

	It("returns nil when nothing matches", func() {
		var l route.List
		l.Append("/a", func(route.Session, route.State) route.Status { return route.Found })

		Expect(l.Matching(nil, "/z")).To(BeNil())
	})

	It("resumes from a given route to find the next match", func() {
		var l route.List
		first := l.Append("/*", func(route.Session, route.State) route.Status { return route.NotFound })
		l.Append("/*", func(route.Session, route.State) route.Status { return route.Found })

		next := l.Matching(first.Next(), "/anything")
		Expect(next).ToNot(BeNil())
	})

	It("clear drops every route", func() {
		var l route.List
		l.Append("/a", func(route.Session, route.State) route.Status { return route.Found })
		l.Clear()

		Expect(l.Matching(nil, "/a")).To(BeNil())
	})
})

var _ = Describe("NotFound404", func() {
	It("claims the request at REQUEST_BEGIN", func() {
		Expect(route.NotFound404.Handler(nil, route.RequestBegin)).To(Equal(route.Found))
	})

	It("passes through header and body states", func() {
		Expect(route.NotFound404.Handler(nil, route.RequestHeader)).To(Equal(route.Next))
		Expect(route.NotFound404.Handler(nil, route.RequestBody)).To(Equal(route.Next))
	})
})
