// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

package sync

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/roomatlas/roomatlas/internal/auth"
	"github.com/roomatlas/roomatlas/internal/config"
	"github.com/roomatlas/roomatlas/internal/models/ams"
)

// guestsListPath is the upstream endpoint serving paginated occupancy records.
const guestsListPath = "/ams/api/contractEnterprise/guestsList"

// maxErrorBodySize limits how much of an error response body is read
// for diagnostics.
const maxErrorBodySize = 64 * 1024 // 64KB

// SourceClient is the upstream tenancy API surface the fetcher needs.
// Implemented by AMSClient for production and by test doubles.
type SourceClient interface {
	// GuestsList fetches one page of occupancy records.
	GuestsList(ctx context.Context, pageNumber, pageSize int) (*ams.GuestsPage, error)
	// SetCredentials replaces the session cookies used on subsequent requests.
	SetCredentials(creds auth.Credentials)
}

// AMSClient talks to the tenancy-management API. Authentication rides
// on two session cookies attached to every request.
//
// Thread safety: SetCredentials and GuestsList must not race; the
// fetcher owns the client for the duration of a cycle.
type AMSClient struct {
	httpClient *http.Client
	baseURL    string
	creds      auth.Credentials
	req        ams.GuestsListRequest
}

// NewAMSClient builds a client for the configured upstream.
func NewAMSClient(cfg *config.SourceConfig, creds auth.Credentials) *AMSClient {
	return &AMSClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		creds:      creds,
		req: ams.GuestsListRequest{
			GuestsName:   "",
			ContractType: cfg.ContractType,
			ContractID:   cfg.ContractID,
		},
	}
}

// SetCredentials implements SourceClient.
func (c *AMSClient) SetCredentials(creds auth.Credentials) {
	c.creds = creds
}

// GuestsList implements SourceClient. A 401 surfaces as ErrAuthExpired
// so the fetcher can refresh credentials; an undecodable body surfaces
// as ErrMalformedResponse.
func (c *AMSClient) GuestsList(ctx context.Context, pageNumber, pageSize int) (*ams.GuestsPage, error) {
	payload := c.req
	payload.PageNumber = pageNumber
	payload.PageSize = pageSize

	body, err := json.Marshal(&payload)
	if err != nil {
		return nil, fmt.Errorf("marshal guests request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+guestsListPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build guests request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: auth.CookieAMSToken, Value: c.creds.AMSToken})
	req.AddCookie(&http.Cookie{Name: auth.CookieCommonToken, Value: c.creds.CommonToken})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("guests list page %d: %w", pageNumber, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("guests list page %d: %w (HTTP %d)", pageNumber, ErrAuthExpired, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		errBody := readBodyForError(resp.Body)
		return nil, fmt.Errorf("guests list page %d: HTTP %d: %s", pageNumber, resp.StatusCode, errBody)
	}

	var envelope ams.GuestsListResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("guests list page %d: %w: %w", pageNumber, ErrMalformedResponse, err)
	}

	if !envelope.Success {
		// Some deployments report session expiry in-band with HTTP 200.
		if envelope.Code == http.StatusUnauthorized {
			return nil, fmt.Errorf("guests list page %d: %w: %s", pageNumber, ErrAuthExpired, envelope.Message)
		}
		return nil, fmt.Errorf("guests list page %d: upstream error: %s", pageNumber, envelope.Message)
	}

	return &envelope.Data, nil
}

// readBodyForError reads at most maxErrorBodySize of a response body
// for inclusion in an error message.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}
