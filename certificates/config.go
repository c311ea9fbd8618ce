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

package certificates

import (
	"crypto/tls"

	liberr "github/sabouaram/ews/errors"
)

// Config is the declarative, serializable form of a TLSConfig: a bind
// config's TLS section unmarshals into this and calls New to produce the
// TLSConfig a listener actually binds with.
type Config struct {
	CertPairs            []CertPair `mapstructure:"certs" json:"certs" yaml:"certs" toml:"certs"`
	RootCAFiles          []string   `mapstructure:"rootCAFiles" json:"rootCAFiles" yaml:"rootCAFiles" toml:"rootCAFiles"`
	ClientCAFiles        []string   `mapstructure:"clientCAFiles" json:"clientCAFiles" yaml:"clientCAFiles" toml:"clientCAFiles"`
	VersionMin           uint16     `mapstructure:"versionMin" json:"versionMin" yaml:"versionMin" toml:"versionMin"`
	VersionMax           uint16     `mapstructure:"versionMax" json:"versionMax" yaml:"versionMax" toml:"versionMax"`
	ClientAuth           uint8      `mapstructure:"clientAuth" json:"clientAuth" yaml:"clientAuth" toml:"clientAuth"`
	DynamicSizingDisable bool       `mapstructure:"dynamicSizingDisable" json:"dynamicSizingDisable" yaml:"dynamicSizingDisable" toml:"dynamicSizingDisable"`
	SessionTicketDisable bool       `mapstructure:"sessionTicketDisable" json:"sessionTicketDisable" yaml:"sessionTicketDisable" toml:"sessionTicketDisable"`
}

// CertPair is a single certificate/key pair, either inline PEM or a file path.
type CertPair struct {
	KeyFile  string `mapstructure:"keyFile" json:"keyFile" yaml:"keyFile" toml:"keyFile"`
	CertFile string `mapstructure:"certFile" json:"certFile" yaml:"certFile" toml:"certFile"`
	KeyPEM   string `mapstructure:"keyPem" json:"keyPem" yaml:"keyPem" toml:"keyPem"`
	CertPEM  string `mapstructure:"certPem" json:"certPem" yaml:"certPem" toml:"certPem"`
}

// Validate reports whether the config names at least one usable certificate
// source when it declares any certificate pair at all.
func (c *Config) Validate() liberr.Error {
	for _, p := range c.CertPairs {
		hasFile := p.KeyFile != "" && p.CertFile != ""
		hasPEM := p.KeyPEM != "" && p.CertPEM != ""
		if !hasFile && !hasPEM {
			return liberr.ErrorConfigInvalid.Error(nil)
		}
	}
	return nil
}

// New builds a TLSConfig from the declarative Config, loading every
// certificate pair and CA file named. It stops at the first load failure.
func (c *Config) New() (TLSConfig, liberr.Error) {
	t := New()

	if c.VersionMin != 0 {
		t.SetVersionMin(c.VersionMin)
	}
	if c.VersionMax != 0 {
		t.SetVersionMax(c.VersionMax)
	}
	if c.ClientAuth != 0 {
		t.SetClientAuth(tls.ClientAuthType(c.ClientAuth))
	}
	t.SetDynamicSizingDisabled(c.DynamicSizingDisable)
	t.SetSessionTicketDisabled(c.SessionTicketDisable)

	for _, p := range c.CertPairs {
		if p.KeyFile != "" && p.CertFile != "" {
			if e := t.AddCertificatePairFile(p.KeyFile, p.CertFile); e != nil {
				return nil, e
			}
		} else if p.KeyPEM != "" && p.CertPEM != "" {
			if e := t.AddCertificatePairString(p.KeyPEM, p.CertPEM); e != nil {
				return nil, e
			}
		}
	}

	for _, f := range c.RootCAFiles {
		if e := t.AddRootCAFile(f); e != nil {
			return nil, e
		}
	}

	for _, f := range c.ClientCAFiles {
		if e := t.AddClientCAFile(f); e != nil {
			return nil, e
		}
	}

	return t, nil
}
