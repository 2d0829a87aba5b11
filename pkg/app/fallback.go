package app

import (
	"context"
	"errors"

	"tableflip.dev/thought/pkg/catalog"
)

// Shown when the catalog cannot be loaded.
const (
	FallbackTitle = "Thought for the Day"
	FallbackBody  = "<p>Today's thought could not be loaded.</p>" +
		"<p>Check that the content source is reachable and contains an index.json, then try again.</p>"
)

// Start initializes s and renders the fallback state when the catalog cannot
// be loaded. The initialization error is always returned.
func Start(ctx context.Context, s *Session, location string) error {
	err := s.Init(ctx, location)
	var le *catalog.LoadError
	if errors.As(err, &le) {
		s.logger.Error("catalog unavailable", "source", le.Source, "err", le.Err)
		s.renderer.Render(FallbackTitle, FallbackBody)
	}
	return err
}
