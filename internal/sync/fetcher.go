// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/roomatlas/roomatlas/internal/auth"
	"github.com/roomatlas/roomatlas/internal/config"
	"github.com/roomatlas/roomatlas/internal/logging"
	"github.com/roomatlas/roomatlas/internal/metrics"
	"github.com/roomatlas/roomatlas/internal/models/ams"
)

// Fetcher pages through the upstream guests listing and collects every
// occupancy record. One Fetcher drives one cycle at a time.
type Fetcher struct {
	client     SourceClient
	creds      auth.Provider
	pageSize   int
	maxRetries int
	retryDelay time.Duration
	pageDelay  time.Duration
}

// NewFetcher builds a Fetcher over the given client and credential
// provider.
func NewFetcher(client SourceClient, creds auth.Provider, cfg *config.SourceConfig) *Fetcher {
	return &Fetcher{
		client:     client,
		creds:      creds,
		pageSize:   cfg.PageSize,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		pageDelay:  cfg.PageDelay,
	}
}

// FetchAll retrieves every page of occupancy records.
//
// Paging stops at the page count reported by the first page (a
// non-positive count means a single page), or early on an empty page.
// Each page gets up to maxRetries attempts with a fixed delay between
// them. A session rejection triggers one
// credential refresh for the whole fetch; the rejected attempt is not
// charged against the retry budget.
//
// On failure the records gathered so far are returned alongside the
// error, so the caller can decide whether partial data is still worth
// reconciling.
func (f *Fetcher) FetchAll(ctx context.Context) ([]ams.GuestRecord, error) {
	var (
		records    []ams.GuestRecord
		totalPages = 0 // unknown until the first page lands
		refreshed  = false
	)

	for page := 1; ; page++ {
		result, err := f.fetchPage(ctx, page, &refreshed)
		if err != nil {
			return records, fmt.Errorf("page %d: %w", page, err)
		}

		metrics.RecordFetchPage(len(result.Records), nil)
		logging.Ctx(ctx).Debug().
			Int("page", page).
			Int("records", len(result.Records)).
			Int("total", result.Total).
			Msg("Fetched guests page")

		if len(result.Records) == 0 {
			break
		}
		records = append(records, result.Records...)

		if totalPages == 0 {
			totalPages = result.Pages
			// A missing or non-positive page count means this is the
			// only page.
			if totalPages <= 0 {
				break
			}
		}
		if page >= totalPages {
			break
		}

		if err := sleepCtx(ctx, f.pageDelay); err != nil {
			return records, err
		}
	}

	logging.Ctx(ctx).Info().
		Int("records", len(records)).
		Int("pages", totalPages).
		Msg("Fetch complete")

	return records, nil
}

// fetchPage retrieves one page, retrying transient failures and
// refreshing credentials at most once per fetch session.
func (f *Fetcher) fetchPage(ctx context.Context, page int, refreshed *bool) (*ams.GuestsPage, error) {
	var lastErr error

	for attempt := 1; attempt <= f.maxRetries; attempt++ {
		result, err := f.client.GuestsList(ctx, page, f.pageSize)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}

		// An undecodable body will not improve on retry.
		if errors.Is(err, ErrMalformedResponse) {
			metrics.RecordFetchPage(0, err)
			return nil, err
		}

		if errors.Is(err, ErrAuthExpired) {
			if *refreshed {
				return nil, err
			}
			*refreshed = true

			creds, refreshErr := f.creds.Refresh(ctx)
			metrics.RecordAuthRefresh(refreshErr)
			if refreshErr != nil {
				return nil, fmt.Errorf("%w: refresh failed: %w", err, refreshErr)
			}

			logging.Ctx(ctx).Info().Msg("Session credentials refreshed, retrying request")
			f.client.SetCredentials(creds)
			attempt-- // the rejected attempt does not count
			continue
		}

		metrics.FetchRetriesTotal.Inc()
		logging.Ctx(ctx).Warn().
			Err(err).
			Int("page", page).
			Int("attempt", attempt).
			Int("max_attempts", f.maxRetries).
			Msg("Page fetch failed")

		if attempt < f.maxRetries {
			if err := sleepCtx(ctx, f.retryDelay); err != nil {
				return nil, err
			}
		}
	}

	metrics.RecordFetchPage(0, lastErr)
	return nil, lastErr
}

// sleepCtx waits for d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
