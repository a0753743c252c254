// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

package auth

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestStaticProviderRefreshUnavailable(t *testing.T) {
	t.Parallel()

	p := NewStaticProvider(Credentials{AMSToken: "a", CommonToken: "b"})

	if got := p.Current(); got.AMSToken != "a" || got.CommonToken != "b" {
		t.Errorf("Current() = %+v", got)
	}

	_, err := p.Refresh(context.Background())
	if !errors.Is(err, ErrRefreshUnavailable) {
		t.Errorf("Refresh error = %v, want ErrRefreshUnavailable", err)
	}
}

func TestFileProviderFlatExport(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cookies.json")
	writeFile(t, path, `{"_ams_token": "tok1", "_common_token": "tok2", "other": "x"}`)

	p, err := NewFileProvider(path)
	if err != nil {
		t.Fatalf("NewFileProvider: %v", err)
	}

	got := p.Current()
	if got.AMSToken != "tok1" || got.CommonToken != "tok2" {
		t.Errorf("Current() = %+v", got)
	}
}

func TestFileProviderListExport(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cookies.json")
	writeFile(t, path, `[
		{"name": "_ams_token", "value": "tok1", "domain": ".example.com"},
		{"name": "_common_token", "value": "tok2"}
	]`)

	p, err := NewFileProvider(path)
	if err != nil {
		t.Fatalf("NewFileProvider: %v", err)
	}
	if got := p.Current(); got.AMSToken != "tok1" || got.CommonToken != "tok2" {
		t.Errorf("Current() = %+v", got)
	}
}

func TestFileProviderRefresh(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cookies.json")
	writeFile(t, path, `{"_ams_token": "old1", "_common_token": "old2"}`)

	p, err := NewFileProvider(path)
	if err != nil {
		t.Fatalf("NewFileProvider: %v", err)
	}

	// Unchanged file means the session is still stale.
	if _, err := p.Refresh(context.Background()); !errors.Is(err, ErrRefreshUnavailable) {
		t.Errorf("Refresh with unchanged export = %v, want ErrRefreshUnavailable", err)
	}

	writeFile(t, path, `{"_ams_token": "new1", "_common_token": "new2"}`)
	creds, err := p.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if creds.AMSToken != "new1" || creds.CommonToken != "new2" {
		t.Errorf("refreshed creds = %+v", creds)
	}
	if p.Current() != creds {
		t.Error("Current() does not reflect refreshed credentials")
	}
}

func TestFileProviderMissingCookies(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cookies.json")
	writeFile(t, path, `{"_ams_token": "only-one"}`)

	if _, err := NewFileProvider(path); err == nil {
		t.Error("expected error for export missing _common_token")
	}
}

func TestFromConfig(t *testing.T) {
	t.Parallel()

	if _, err := FromConfig("", "", ""); err == nil {
		t.Error("expected error with no credentials configured")
	}

	p, err := FromConfig("a", "b", "")
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	if _, ok := p.(*StaticProvider); !ok {
		t.Errorf("FromConfig returned %T, want *StaticProvider", p)
	}

	path := filepath.Join(t.TempDir(), "cookies.json")
	writeFile(t, path, `{"_ams_token": "x", "_common_token": "y"}`)
	p, err = FromConfig("", "", path)
	if err != nil {
		t.Fatalf("FromConfig with token file: %v", err)
	}
	if _, ok := p.(*FileProvider); !ok {
		t.Errorf("FromConfig returned %T, want *FileProvider", p)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
