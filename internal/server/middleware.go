package server

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// loggingMiddleware logs every tool call with its duration and outcome.
func loggingMiddleware(logger *slog.Logger) mcpserver.ToolHandlerMiddleware {
	return func(next mcpserver.ToolHandlerFunc) mcpserver.ToolHandlerFunc {
		return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := time.Now()
			res, err := next(ctx, request)
			attrs := []any{"tool", request.Params.Name, "duration", time.Since(start)}
			switch {
			case err != nil:
				logger.ErrorContext(ctx, "tool call failed", append(attrs, "error", err)...)
			case res != nil && res.IsError:
				logger.WarnContext(ctx, "tool call returned error", append(attrs, "result", resultText(res))...)
			default:
				logger.InfoContext(ctx, "tool call", attrs...)
			}
			return res, err
		}
	}
}

func resultText(res *mcp.CallToolResult) string {
	var parts []string
	for _, c := range res.Content {
		if tc, ok := mcp.AsTextContent(c); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}
