package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool results can embed whole deck summaries.
const maxLoggedPayload = 4096

// trafficLoggingMiddleware logs every request and response at debug level.
// Tool calls additionally get an info line with the tool name, duration and
// whether the tool reported an error.
func trafficLoggingMiddleware(logger *slog.Logger, direction string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			tool := toolName(req)
			debug := logger.Enabled(ctx, slog.LevelDebug)
			if !debug && tool == "" {
				return next(ctx, method, req)
			}

			log := logger.With("direction", direction, "method", method)
			if debug {
				log.Debug("mcp request", "params", truncate(encodePayload(requestParams(req)), maxLoggedPayload))
			}

			start := time.Now()
			result, err := next(ctx, method, req)
			elapsed := time.Since(start)

			if tool != "" {
				attrs := []any{"tool", tool, "elapsed", elapsed}
				if res, ok := result.(*sdkmcp.CallToolResult); ok && res != nil && res.IsError {
					attrs = append(attrs, "tool_error", true)
				}
				if err != nil {
					attrs = append(attrs, "error", err)
				}
				log.Info("tool call", attrs...)
			}
			if debug && !strings.HasPrefix(method, "notifications/") {
				log.Debug("mcp response", "elapsed", elapsed, "result", truncate(encodePayload(result), maxLoggedPayload))
			}
			return result, err
		}
	}
}

func toolName(req sdkmcp.Request) string {
	params, ok := requestParams(req).(*sdkmcp.CallToolParamsRaw)
	if !ok || params == nil {
		return ""
	}
	return params.Name
}

func requestParams(req sdkmcp.Request) (params any) {
	if req == nil {
		return nil
	}
	defer func() {
		if recover() != nil {
			params = nil
		}
	}()
	return req.GetParams()
}

func encodePayload(payload any) string {
	if payload == nil {
		return "<nil>"
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%T", payload)
	}
	return string(data)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "...(truncated)"
}
