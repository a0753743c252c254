// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

// Package auth supplies session credentials for the upstream tenancy
// API. The upstream authenticates with two session cookies; when the
// session expires mid-fetch the engine asks its Provider for fresh
// credentials exactly once before giving up.
package auth

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// Cookie names expected by the upstream API.
const (
	CookieAMSToken    = "_ams_token"
	CookieCommonToken = "_common_token"
)

// ErrRefreshUnavailable reports that the configured provider has no
// way to obtain fresh credentials.
var ErrRefreshUnavailable = errors.New("credential refresh unavailable")

// Credentials is one session's cookie pair.
type Credentials struct {
	AMSToken    string
	CommonToken string
}

// Valid reports whether both cookies are present.
func (c Credentials) Valid() bool {
	return c.AMSToken != "" && c.CommonToken != ""
}

// Provider supplies session credentials. Refresh is called at most
// once per fetch session, after the upstream rejects the current pair.
type Provider interface {
	// Current returns the credentials to use for the next request.
	Current() Credentials
	// Refresh obtains fresh credentials, replacing the current pair.
	Refresh(ctx context.Context) (Credentials, error)
}

// StaticProvider serves a fixed cookie pair from configuration. It
// cannot refresh; an expired session surfaces as ErrRefreshUnavailable.
type StaticProvider struct {
	creds Credentials
}

// NewStaticProvider returns a provider serving the given pair.
func NewStaticProvider(creds Credentials) *StaticProvider {
	return &StaticProvider{creds: creds}
}

// Current implements Provider.
func (p *StaticProvider) Current() Credentials {
	return p.creds
}

// Refresh implements Provider. Static credentials cannot be renewed.
func (p *StaticProvider) Refresh(_ context.Context) (Credentials, error) {
	return Credentials{}, fmt.Errorf("%w: static credentials configured, set AUTH_TOKEN_FILE to enable refresh", ErrRefreshUnavailable)
}

// FileProvider re-reads credentials from a JSON cookie export on each
// refresh. The file is the output of a browser cookie-export helper:
// either a flat object of cookie name to value, or a list of
// {"name": ..., "value": ...} objects.
type FileProvider struct {
	path  string
	creds Credentials
}

// NewFileProvider loads the initial pair from path.
func NewFileProvider(path string) (*FileProvider, error) {
	p := &FileProvider{path: path}
	creds, err := p.load()
	if err != nil {
		return nil, err
	}
	p.creds = creds
	return p, nil
}

// Current implements Provider.
func (p *FileProvider) Current() Credentials {
	return p.creds
}

// Refresh implements Provider by re-reading the cookie export. The
// operator is expected to refresh the export out of band; this picks
// up whatever is on disk now.
func (p *FileProvider) Refresh(_ context.Context) (Credentials, error) {
	creds, err := p.load()
	if err != nil {
		return Credentials{}, err
	}
	if creds == p.creds {
		return Credentials{}, fmt.Errorf("%w: cookie export %s has not changed", ErrRefreshUnavailable, p.path)
	}
	p.creds = creds
	return creds, nil
}

func (p *FileProvider) load() (Credentials, error) {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		return Credentials{}, fmt.Errorf("read cookie export: %w", err)
	}

	cookies, err := parseCookieExport(raw)
	if err != nil {
		return Credentials{}, fmt.Errorf("parse cookie export %s: %w", p.path, err)
	}

	creds := Credentials{
		AMSToken:    cookies[CookieAMSToken],
		CommonToken: cookies[CookieCommonToken],
	}
	if !creds.Valid() {
		return Credentials{}, fmt.Errorf("cookie export %s missing %s or %s", p.path, CookieAMSToken, CookieCommonToken)
	}
	return creds, nil
}

// parseCookieExport accepts both export shapes: a flat name->value
// object, or a list of cookie objects with name and value fields.
func parseCookieExport(raw []byte) (map[string]string, error) {
	var flat map[string]string
	if err := json.Unmarshal(raw, &flat); err == nil {
		return flat, nil
	}

	var list []struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}

	cookies := make(map[string]string, len(list))
	for _, c := range list {
		cookies[c.Name] = c.Value
	}
	return cookies, nil
}

// FromConfig builds the right provider for the given settings: a
// FileProvider when a token file is configured, otherwise a
// StaticProvider over the configured pair.
func FromConfig(amsToken, commonToken, tokenFile string) (Provider, error) {
	if tokenFile != "" {
		return NewFileProvider(tokenFile)
	}
	creds := Credentials{AMSToken: amsToken, CommonToken: commonToken}
	if !creds.Valid() {
		return nil, errors.New("credentials required: set AMS_TOKEN and COMMON_TOKEN, or AUTH_TOKEN_FILE")
	}
	return NewStaticProvider(creds), nil
}
