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

package wire

import (
	"strings"
	"unicode"

	liberr "github/sabouaram/ews/errors"
)

// Version is the HTTP version token off the request line.
type Version uint8

const (
	// Version09 means no version token was present; no status line is
	// emitted for a 0.9 response.
	Version09 Version = iota
	Version10
	Version11
)

// Methods recognized without the optional rare-method set; anything else
// becomes MethodOther.
const (
	MethodGet     = "GET"
	MethodPost    = "POST"
	MethodOptions = "OPTIONS"
	MethodHead    = "HEAD"
	MethodConnect = "CONNECT"
	MethodDelete  = "DELETE"
	MethodPatch   = "PATCH"
	MethodPut     = "PUT"
	MethodTrace   = "TRACE"
	MethodOther   = "OTHER"
)

var knownMethods = map[string]bool{
	MethodGet: true, MethodPost: true, MethodOptions: true, MethodHead: true,
	MethodConnect: true, MethodDelete: true, MethodPatch: true, MethodPut: true,
	MethodTrace: true,
}

// RequestLine is the tokenized, not-yet-path-normalized result of parsing
// a request line.
type RequestLine struct {
	Method    string
	RawPath   string // path token including any '?query', not yet normalized
	Version   Version
	Keepalive bool
}

// ParseRequestLine splits line on runs of whitespace into up to three
// tokens (method, path+query, version), exactly like the reference
// tokenizer: only the first token after the first whitespace run becomes
// the path, and only the first token after the second becomes the
// version; anything beyond that is ignored. The method token is
// upper-cased and mapped against the known table, OTHER otherwise.
// Version absence means HTTP/0.9; HTTP/1.1 implies keepalive by default;
// any other non-empty version token is an error.
func ParseRequestLine(line []byte) (RequestLine, liberr.Error) {
	fields := splitWhitespaceRuns(string(line))

	if len(fields) == 0 || fields[0] == "" {
		return RequestLine{}, liberr.ErrorMalformedRequestLine.Error(nil)
	}

	method := strings.ToUpper(fields[0])
	if !knownMethods[method] {
		method = MethodOther
	}

	if len(fields) < 2 {
		return RequestLine{}, liberr.ErrorMalformedRequestLine.Error(nil)
	}
	rl := RequestLine{Method: method, RawPath: fields[1]}

	if len(fields) < 3 {
		rl.Version = Version09
		return rl, nil
	}

	switch strings.ToUpper(fields[2]) {
	case "HTTP/1.1":
		rl.Version = Version11
		rl.Keepalive = true
	case "HTTP/1.0":
		rl.Version = Version10
	default:
		return RequestLine{}, liberr.ErrorUnsupportedVersion.Error(nil)
	}

	return rl, nil
}

// splitWhitespaceRuns mirrors the reference tokenizer's single pass: it
// only ever records the first token (method, implicitly everything up to
// the first whitespace run), the token right after the first whitespace
// run (path), and the token right after the second (version) — any
// further whitespace-separated tokens on the line are discarded.
func splitWhitespaceRuns(s string) []string {
	var tokens []string
	i := 0
	n := len(s)

	for i < n && len(tokens) < 3 {
		for i < n && unicode.IsSpace(rune(s[i])) {
			i++
		}
		start := i
		for i < n && !unicode.IsSpace(rune(s[i])) {
			i++
		}
		if i > start {
			tokens = append(tokens, s[start:i])
		} else {
			break
		}
	}

	return tokens
}
