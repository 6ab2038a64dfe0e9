// Package mcpserver exposes the volume facade as MCP tools. Each tool replies
// with a single line of text; failures render as "Error: <message>" results
// rather than protocol errors, so a client always gets the same text surface.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/akansha-code/volumemcpserver/internal/domain/volume"
	"github.com/akansha-code/volumemcpserver/internal/version"
)

const serverName = "volume-control"

// SetVolumeArgs is the input for set_volume.
type SetVolumeArgs struct {
	Percentage float64 `json:"percentage" jsonschema:"Volume percentage (0-100)"`
}

// New builds an MCP server with the five volume tools registered on ctrl.
// Transport is the caller's choice: Run for stdio, the streamable HTTP
// handler for serving over the network.
func New(ctrl *volume.Controller) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Title:   "Volume Control",
		Version: version.Version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_volume",
		Description: "Get the current system volume level and mute status. Returns volume percentage, mute status, and decibel level.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
		st, err := ctrl.Status(ctx)
		if err != nil {
			return errorResult(err), nil, nil
		}
		return textResult(StatusText(st)), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "set_volume",
		Description: "Set the system volume to a specific percentage.",
		Annotations: &mcp.ToolAnnotations{IdempotentHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, args SetVolumeArgs) (*mcp.CallToolResult, any, error) {
		res, err := ctrl.SetVolume(ctx, args.Percentage)
		if err != nil {
			return errorResult(err), nil, nil
		}
		return textResult(setText(res)), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "mute",
		Description: "Mute the system audio.",
		Annotations: &mcp.ToolAnnotations{IdempotentHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
		res, err := ctrl.Mute(ctx)
		if err != nil {
			return errorResult(err), nil, nil
		}
		return textResult(res.Message), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "unmute",
		Description: "Unmute the system audio.",
		Annotations: &mcp.ToolAnnotations{IdempotentHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
		res, err := ctrl.Unmute(ctx)
		if err != nil {
			return errorResult(err), nil, nil
		}
		return textResult(res.Message), nil, nil
	})

	// No IdempotentHint here: toggle always writes the flipped state.
	mcp.AddTool(server, &mcp.Tool{
		Name:        "toggle_mute",
		Description: "Toggle the system mute status (mute if unmuted, unmute if muted).",
	}, func(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
		res, err := ctrl.ToggleMute(ctx)
		if err != nil {
			return errorResult(err), nil, nil
		}
		return textResult(res.Message), nil, nil
	})

	return server
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: errorText(err)}},
		IsError: true,
	}
}
