package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerTodayTool(srv, svc)
	registerGetThoughtTool(srv, svc)
	registerListThoughtsTool(srv, svc)
}

func registerTodayTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"today",
		mcp.WithDescription("Return the thought for today, or for a given date."),
		mcp.WithString("date",
			mcp.Description("Optional date as YYYY-MM-DD in the configured timezone."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Date string `json:"date"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.Today(ctx, args.Date)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerGetThoughtTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_thought",
		mcp.WithDescription("Return the thought for a specific day number."),
		mcp.WithNumber("day",
			mcp.Required(),
			mcp.Description("Day number as listed by list_thoughts."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		day := request.GetInt("day", 0)
		if day < 1 {
			return mcp.NewToolResultError("day must be a positive integer"), nil
		}

		dto, err := svc.Thought(ctx, day)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerListThoughtsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_thoughts",
		mcp.WithDescription("List available days and titles."),
		mcp.WithString("query",
			mcp.Description("Optional case-insensitive title filter."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results (default 50)."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := request.GetString("query", "")
		limit := request.GetInt("limit", 50)

		list, err := svc.List(ctx, query)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if limit > 0 && len(list) > limit {
			list = list[:limit]
		}
		return toJSONResult(map[string]any{
			"count":    len(list),
			"thoughts": list,
		})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
