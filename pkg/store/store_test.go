package store

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestDirSourceReadsPrepOutput(t *testing.T) {
	base := t.TempDir()
	if err := os.WriteFile(filepath.Join(base, ManifestName), []byte(`{"days":[]}`), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	src, err := NewDirSource(base)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	got, err := src.Read(context.Background(), ManifestName)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != `{"days":[]}` {
		t.Fatalf("unexpected manifest %q", got)
	}

	if _, err := src.Read(context.Background(), "day-009.json"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := src.Read(context.Background(), "../secret.json"); err == nil {
		t.Fatalf("expected traversal to be rejected")
	}
}

func TestDirSourceRequiresDirectory(t *testing.T) {
	if _, err := NewDirSource(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestHTTPSourceResolvesRelativeToBase(t *testing.T) {
	var seen string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.URL.Path
		if r.URL.Path == "/content/index.json" {
			_, _ = w.Write([]byte(`[]`))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	src, err := NewHTTPSource(srv.URL+"/content", time.Second)
	if err != nil {
		t.Fatalf("new source: %v", err)
	}
	got, err := src.Read(context.Background(), ManifestName)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != `[]` || seen != "/content/index.json" {
		t.Fatalf("unexpected response %q from %q", got, seen)
	}

	_, err = src.Read(context.Background(), "day-001.json")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var status *StatusError
	if !errors.As(err, &status) || status.Code != http.StatusNotFound {
		t.Fatalf("expected 404 StatusError, got %v", err)
	}
}

func TestHTTPSourceServerErrorIsNotNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	src, err := NewHTTPSource(srv.URL, time.Second)
	if err != nil {
		t.Fatalf("new source: %v", err)
	}
	_, err = src.Read(context.Background(), ManifestName)
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected a non-404 error, got %v", err)
	}
}

func TestOpenSelectsSourceKind(t *testing.T) {
	src, err := Open("https://example.com/thoughts", time.Second)
	if err != nil {
		t.Fatalf("open http: %v", err)
	}
	if _, ok := src.(*HTTPSource); !ok {
		t.Fatalf("expected HTTPSource, got %T", src)
	}

	dir := t.TempDir()
	src, err = Open(dir, time.Second)
	if err != nil {
		t.Fatalf("open dir: %v", err)
	}
	if _, ok := src.(*DirSource); !ok {
		t.Fatalf("expected DirSource, got %T", src)
	}

	if _, err := Open("  ", time.Second); err == nil {
		t.Fatalf("expected error for empty location")
	}
}

func TestLoadConfigLayers(t *testing.T) {
	dir := t.TempDir()
	cfg := []byte("source: /srv/thoughts\ntimezone: America/Chicago\npreload:\n  rate: 2\n")
	if err := os.WriteFile(filepath.Join(dir, ".thought.yaml"), cfg, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("THOUGHT_CONFIG_PATH", dir)
	t.Setenv("THOUGHT_TIMEOUT", "5s")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("source", "", "")
	fs.String("timezone", "", "")
	fs.String("timeout", "", "")
	if err := fs.Parse([]string{"--timezone", "Europe/Paris"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	got, err := LoadConfig(fs)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Source != "/srv/thoughts" {
		t.Fatalf("expected source from file, got %q", got.Source)
	}
	if got.Timezone != "Europe/Paris" {
		t.Fatalf("expected flag to win, got %q", got.Timezone)
	}
	if got.Timeout != 5*time.Second {
		t.Fatalf("expected env timeout, got %v", got.Timeout)
	}
	if got.PreloadRate != 2 {
		t.Fatalf("expected preload rate 2, got %v", got.PreloadRate)
	}
	if got.LogLevel != "warn" {
		t.Fatalf("expected default log level, got %q", got.LogLevel)
	}
}
