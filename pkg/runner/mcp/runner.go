package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/thought/pkg/app"
)

// Runner coordinates MCP server startup over stdio.
type Runner struct {
	Options app.Options
	Name    string
	Version string
}

// Run starts the Model Context Protocol server using stdio transport.
func Run(ctx context.Context, opts app.Options, version string) error {
	r := Runner{
		Options: opts,
		Name:    "thought",
		Version: version,
	}
	return r.Do(ctx)
}

// Do loads the catalog and serves until stdin closes.
func (r Runner) Do(ctx context.Context) error {
	srv, err := r.Server(ctx)
	if err != nil {
		return err
	}
	return server.ServeStdio(srv)
}

// Server builds the MCP server backed by a freshly initialized session.
func (r Runner) Server(ctx context.Context) (*server.MCPServer, error) {
	if r.Options.Source == nil {
		return nil, errors.New("mcp runner requires a content source")
	}
	name := r.Name
	if name == "" {
		name = "thought"
	}
	version := r.Version
	if version == "" {
		version = "dev"
	}

	// Tools never render; keep the session quiet.
	opts := r.Options
	opts.Renderer = app.RendererFunc(func(string, string) {})
	sess := app.New(opts)
	// Only a missing catalog is fatal; a bad entry for today is not.
	if err := sess.Init(ctx, ""); err != nil && sess.Catalog() == nil {
		return nil, err
	}

	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	srv := server.NewMCPServer(
		fmt.Sprintf("%s MCP", name),
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Read the daily devotional thought: today's entry, any day by number, or the full index."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)

	svc := NewService(sess, loc)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv, nil
}
