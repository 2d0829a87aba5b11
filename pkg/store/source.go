package store

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
)

// ManifestName is the file listing every available day.
const ManifestName = "index.json"

// ErrNotFound is returned when a source has no object with the given name.
var ErrNotFound = errors.New("store: not found")

// Source reads named objects (the manifest and per-day records) produced by
// the content preparation tool.
type Source interface {
	Read(ctx context.Context, name string) ([]byte, error)
	String() string
}

// StatusError reports a non-success HTTP response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("store: %s: HTTP %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// Is lets errors.Is(err, ErrNotFound) match 404 and 410 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && (e.Code == http.StatusNotFound || e.Code == http.StatusGone)
}

// Open returns an HTTP source for http(s) locations and a directory source
// for everything else. A leading "~" is expanded to the home directory.
func Open(location string, timeout time.Duration) (Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, errors.New("store: source location required")
	}
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return NewHTTPSource(location, timeout)
	}
	dir, err := homedir.Expand(location)
	if err != nil {
		return nil, fmt.Errorf("store: expand %q: %w", location, err)
	}
	return NewDirSource(dir)
}

// validName rejects names that would escape the source root.
func validName(name string) error {
	if name == "" || name != path.Base(name) || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("store: invalid object name %q", name)
	}
	return nil
}
