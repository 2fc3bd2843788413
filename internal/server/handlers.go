package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/desktop-vision/internal/capture"
	"github.com/mj1618/desktop-vision/internal/model"
)

func (s *Server) handleListWindows(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := s.svc.ListWindows(ctx)
	return s.render(ctx, res, err, "Failed to list windows")
}

func (s *Server) handleCaptureWindow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const prefix = "Failed to capture window"
	params := request.GetArguments()

	windowID, err := requiredString(params, "window_id")
	if err != nil {
		return s.render(ctx, nil, err, prefix)
	}
	req := model.CaptureWindowRequest{WindowID: windowID}
	if req.Mode, err = modeParam(params); err != nil {
		return s.render(ctx, nil, err, prefix)
	}
	if req.OutputPath, err = stringParam(params, "output_path"); err != nil {
		return s.render(ctx, nil, err, prefix)
	}
	if req.Scale, err = numberParam(params, "scale"); err != nil {
		return s.render(ctx, nil, err, prefix)
	}

	res, err := s.svc.CaptureWindow(ctx, req)
	return s.render(ctx, res, err, prefix)
}

func (s *Server) handleCaptureWindows(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const prefix = "Failed to capture windows"
	params := request.GetArguments()

	ids, err := stringSliceParam(params, "window_ids")
	if err != nil {
		return s.render(ctx, nil, err, prefix)
	}
	req := model.CaptureWindowsRequest{WindowIDs: ids}
	if req.Mode, err = modeParam(params); err != nil {
		return s.render(ctx, nil, err, prefix)
	}
	if req.OutputDir, err = stringParam(params, "output_dir"); err != nil {
		return s.render(ctx, nil, err, prefix)
	}
	if req.Scale, err = numberParam(params, "scale"); err != nil {
		return s.render(ctx, nil, err, prefix)
	}

	res, err := s.svc.CaptureWindows(ctx, req)
	return s.render(ctx, res, err, prefix)
}

func (s *Server) handleCaptureDisplay(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const prefix = "Failed to capture display"
	params := request.GetArguments()

	display, err := optionalIntParam(params, "display_id")
	if err != nil {
		return s.render(ctx, nil, err, prefix)
	}
	req := model.CaptureDisplayRequest{Display: display}
	if req.Scale, err = numberParam(params, "scale"); err != nil {
		return s.render(ctx, nil, err, prefix)
	}

	res, err := s.svc.CaptureDisplay(ctx, req)
	return s.render(ctx, res, err, prefix)
}

// render turns a service outcome into a tool result. Successes carry the
// envelope both as structured content and as indented JSON text; failures
// become error results whose text carries the JSON-RPC code.
func (s *Server) render(ctx context.Context, res any, err error, prefix string) (*mcp.CallToolResult, error) {
	if err != nil {
		return errorResult(capture.Normalize(err, prefix)), nil
	}
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to encode result", "error", err)
		return errorResult(capture.Normalize(err, prefix)), nil
	}
	return mcp.NewToolResultStructured(res, string(b)), nil
}

func errorResult(e *capture.Error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("MCP error %d: %s", errorCode(e.Kind), e.Message))
}

// errorCode maps an error kind onto its JSON-RPC error code.
func errorCode(k capture.Kind) int {
	if k == capture.KindInvalidRequest {
		return mcp.INVALID_REQUEST
	}
	return mcp.INTERNAL_ERROR
}
