/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

// Package certificates builds the *tls.Config a listener binds to TLS
// sockets with: certificate/key pairs, root and client CA pools, min/max
// protocol version, cipher suite and curve preference lists.
package certificates

import (
	"crypto/tls"
	"crypto/x509"

	liberr "github/sabouaram/ews/errors"
)

// TLSConfig accumulates certificate material and TLS policy, then renders a
// stdlib *tls.Config on demand. All methods are safe to call before the
// listener that consumes TlsConfig starts accepting connections; nothing
// here is safe for concurrent mutation once a listener is live.
type TLSConfig interface {
	// AddRootCAString appends a PEM-encoded root CA to the trust pool used
	// to verify peer certificates when this config dials out.
	AddRootCAString(rootCA string) bool
	// AddRootCAFile reads a PEM file and appends it to the root CA pool.
	AddRootCAFile(pemFile string) liberr.Error
	// GetRootCA returns the accumulated root CA pool, or nil if none was set.
	GetRootCA() *x509.CertPool

	// AddClientCAString appends a PEM-encoded CA used to verify client
	// certificates when ClientAuth requires one.
	AddClientCAString(ca string) bool
	// AddClientCAFile reads a PEM file and appends it to the client CA pool.
	AddClientCAFile(pemFile string) liberr.Error
	// GetClientCA returns the accumulated client CA pool, or nil if none was set.
	GetClientCA() *x509.CertPool
	// SetClientAuth sets the client certificate verification policy.
	SetClientAuth(cAuth tls.ClientAuthType)

	// AddCertificatePairString parses a PEM-encoded key/cert pair and adds
	// it to the list of certificates offered during the handshake.
	AddCertificatePairString(key, crt string) liberr.Error
	// AddCertificatePairFile loads a key/cert pair from disk.
	AddCertificatePairFile(keyFile, crtFile string) liberr.Error
	// LenCertificatePair reports how many pairs have been loaded.
	LenCertificatePair() int
	// CleanCertificatePair discards every loaded pair.
	CleanCertificatePair()
	// GetCertificatePair returns the loaded pairs.
	GetCertificatePair() []tls.Certificate

	SetVersionMin(vers uint16)
	SetVersionMax(vers uint16)
	SetCipherList(cipher []uint16)
	SetCurveList(curves []tls.CurveID)
	SetDynamicSizingDisabled(flag bool)
	SetSessionTicketDisabled(flag bool)

	// TlsConfig renders the accumulated state into a *tls.Config. serverName
	// sets SNI for outbound use; server-side listeners pass "".
	TlsConfig(serverName string) *tls.Config
}

// New returns a TLSConfig defaulting to TLS 1.2 as the floor and TLS 1.3 as
// the ceiling, with no client certificate requirement.
func New() TLSConfig {
	return &config{
		clientAuth:    tls.NoClientCert,
		tlsMinVersion: tls.VersionTLS12,
		tlsMaxVersion: tls.VersionTLS13,
	}
}

// SystemRootCA returns a copy of the host's root CA pool, falling back to an
// empty pool if the system pool cannot be loaded.
func SystemRootCA() *x509.CertPool {
	if p, e := x509.SystemCertPool(); e == nil && p != nil {
		return p
	}
	return x509.NewCertPool()
}
