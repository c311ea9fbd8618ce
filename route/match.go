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

// Match reports whether string s fully satisfies glob pattern: '?' matches
// exactly one byte, '*' matches any run including empty, any other byte
// matches literally. On a mismatch after a '*', the match resumes one byte
// further into s with the pattern pointer rewound to just past that '*' —
// the single backtrack anchor pl tracks where to rewind to. Both pattern
// and s must be fully consumed for a match.
func Match(pattern, s string) bool {
	var p, pl int
	havePl := false
	var si int

	pe := len(pattern)
	se := len(s)

	for {
		if p < pe && pattern[p] == '*' {
			p++
			if p == pe {
				return true
			}
			pl = p
			havePl = true
		}

		if p == pe && si == se {
			return true
		} else if p == pe || si == se {
			return false
		}

		if pattern[p] == s[si] || pattern[p] == '?' {
			p++
			si++
		} else if havePl {
			p = pl
			si++
		} else {
			return false
		}
	}
}
