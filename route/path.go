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

package route

// NormalizePath rewrites the path token carried on a request line: percent
// escapes decode to their byte, '+' becomes a literal space, repeated '/'
// collapse to one, '/.' segments are dropped, '/..' segments pop back to
// the previous '/' without ever going below the root, and a '?' ends the
// path and starts the returned query string. Only literal dot segments in
// the raw bytes trigger collapsing — a percent-escaped "%2e" decodes to a
// plain '.' character and is never treated as a path segment.
func NormalizePath(raw string) (path, query string) {
	out := make([]byte, 0, len(raw))
	n := len(raw)
	i := 0

	for i < n {
		c := raw[i]

		switch {
		case c == '%' && i+2 < n && isHexDigit(raw[i+1]) && isHexDigit(raw[i+2]):
			out = append(out, hexByte(raw[i+1], raw[i+2]))
			i += 3

		case c == '+':
			out = append(out, ' ')
			i++

		case c == '/' && i+1 < n && raw[i+1] == '.':
			if i+2 >= n || raw[i+2] == '/' {
				// "/." or trailing "/." — drop the dot segment.
				i += 2
			} else if raw[i+2] == '.' && (i+3 >= n || raw[i+3] == '/') {
				// "/.." — pop back to the previous separator.
				i += 3
				for len(out) > 0 {
					out = out[:len(out)-1]
					if len(out) == 0 || out[len(out)-1] == '/' {
						break
					}
				}
			} else {
				out = append(out, c)
				i++
			}

		case c == '/' && len(out) > 0 && out[len(out)-1] == '/':
			// Collapse a run of '/' down to the one already written.
			i++

		case c == '?':
			return string(out), raw[i+1:]

		default:
			out = append(out, c)
			i++
		}
	}

	return string(out), query
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexVal(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

func hexByte(hi, lo byte) byte {
	return hexVal(hi)<<4 | hexVal(lo)
}
