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

package errors

// MinPkgEWS is the first code in this module's range. Unlike the teacher's
// per-package MinPkgXXX table (one cohesive domain here, not a hundred
// packages), a single range covers every component.
const MinPkgEWS CodeError = 1000

const (
	ErrorParamsEmpty = MinPkgEWS + iota
	ErrorSocketClosed
	ErrorSocketReset
	ErrorSocketWouldBlock
	ErrorListenFailed
	ErrorAcceptFailed
	ErrorBufferFull
	ErrorRequestLineTooLong
	ErrorHeaderTooLong
	ErrorMalformedRequestLine
	ErrorMalformedHeader
	ErrorUnsupportedVersion
	ErrorHandlerContractViolation
	ErrorTLSHandshake
	ErrorCertLoad
	ErrorConfigInvalid
	ErrorServerClosed
	ErrorServerAlreadyRunning
	ErrorServerNotRunning
	ErrorCertFileStat
	ErrorCertFileRead
	ErrorCertFileEmpty
	ErrorCertAppend
	ErrorCertKeyPairParse
)

func init() {
	RegisterIdFctMessage(MinPkgEWS, func(code CodeError) string {
		switch code {
		case ErrorParamsEmpty:
			return "required parameter is empty"
		case ErrorSocketClosed:
			return "socket is closed"
		case ErrorSocketReset:
			return "connection reset by peer"
		case ErrorSocketWouldBlock:
			return "operation would block"
		case ErrorListenFailed:
			return "listen failed"
		case ErrorAcceptFailed:
			return "accept failed"
		case ErrorBufferFull:
			return "session buffer is full"
		case ErrorRequestLineTooLong:
			return "request line too long"
		case ErrorHeaderTooLong:
			return "request header too long"
		case ErrorMalformedRequestLine:
			return "malformed request line"
		case ErrorMalformedHeader:
			return "malformed request header"
		case ErrorUnsupportedVersion:
			return "unsupported http version"
		case ErrorHandlerContractViolation:
			return "handler returned an illegal status for the current state"
		case ErrorTLSHandshake:
			return "tls handshake failed"
		case ErrorCertLoad:
			return "could not load tls certificate material"
		case ErrorConfigInvalid:
			return "invalid configuration"
		case ErrorServerClosed:
			return "server is closed"
		case ErrorServerAlreadyRunning:
			return "server is already running"
		case ErrorServerNotRunning:
			return "server is not running"
		case ErrorCertFileStat:
			return "cannot stat certificate file"
		case ErrorCertFileRead:
			return "cannot read certificate file"
		case ErrorCertFileEmpty:
			return "certificate file is empty"
		case ErrorCertAppend:
			return "cannot append PEM data to pool"
		case ErrorCertKeyPairParse:
			return "cannot parse certificate/key pair"
		default:
			return ""
		}
	})
}
