package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerIndexResource(srv, svc)
	registerDayTemplate(srv, svc)
}

func registerIndexResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"thought://index",
		"Index",
		mcp.WithResourceDescription("Every available day with its title."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		list, err := svc.List(ctx, "")
		if err != nil {
			return nil, err
		}
		payload := map[string]any{
			"days":  list,
			"count": len(list),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerDayTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"thought://days/{day}",
		"Thought",
		mcp.WithTemplateDescription("The full thought for one day."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		day, err := dayArgument(request.Params.Arguments["day"])
		if err != nil {
			return nil, err
		}
		dto, err := svc.Thought(ctx, day)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{"thought": dto})
	})
}

// dayArgument accepts the template variable as a string or a one-element
// list, which is how URI template matches are delivered.
func dayArgument(v any) (int, error) {
	switch t := v.(type) {
	case string:
		return parseDay(t)
	case []string:
		if len(t) == 1 {
			return parseDay(t[0])
		}
	case []any:
		if len(t) == 1 {
			if s, ok := t[0].(string); ok {
				return parseDay(s)
			}
		}
	}
	return 0, fmt.Errorf("day is required")
}

func parseDay(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid day %q", s)
	}
	return n, nil
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
