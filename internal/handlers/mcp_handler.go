package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	domain "github.com/inference-gateway/brain-dev/internal/domain"
	logger "github.com/inference-gateway/brain-dev/internal/logger"
	version "github.com/inference-gateway/brain-dev/internal/version"
	mcp "github.com/metoro-io/mcp-golang"
	zap "go.uber.org/zap"
)

// Tool names exposed by the MCP server
const (
	ToolGetVersion   = "get_version"
	ToolCheckVersion = "check_version"
)

// GetVersionArgs are the arguments of the get_version tool
type GetVersionArgs struct {
	Detailed bool `json:"detailed" jsonschema:"description=Include commit, build date and version source"`
}

// CheckVersionArgs are the arguments of the check_version tool
type CheckVersionArgs struct {
	ManifestPath string `json:"manifest_path" jsonschema:"description=Path to the manifest file. Searched upwards from the working directory when empty"`
}

// ToolRegistrar is the subset of *mcp.Server the handler needs
type ToolRegistrar interface {
	RegisterTool(name string, description string, handler any) error
}

// MCPHandler serves the version tools over MCP
type MCPHandler struct {
	ctx            context.Context
	versionService domain.VersionService
}

// NewMCPHandler creates a handler. ctx carries the session logger; tool
// calls from the MCP library do not provide their own context.
func NewMCPHandler(ctx context.Context, versionService domain.VersionService) *MCPHandler {
	return &MCPHandler{
		ctx:            ctx,
		versionService: versionService,
	}
}

// Register adds every tool to the server
func (h *MCPHandler) Register(server ToolRegistrar) error {
	if err := server.RegisterTool(
		ToolGetVersion,
		"Report the version of the running Dev Brain server",
		h.HandleGetVersion,
	); err != nil {
		return fmt.Errorf("failed to register %s tool: %w", ToolGetVersion, err)
	}

	if err := server.RegisterTool(
		ToolCheckVersion,
		"Verify that the running server version matches the version declared in the project manifest",
		h.HandleCheckVersion,
	); err != nil {
		return fmt.Errorf("failed to register %s tool: %w", ToolCheckVersion, err)
	}

	return nil
}

// HandleGetVersion returns the bare version, or the full info as JSON
func (h *MCPHandler) HandleGetVersion(args GetVersionArgs) (*mcp.ToolResponse, error) {
	ctx := logger.WithTool(h.ctx, ToolGetVersion)
	info := h.versionService.Info()
	logger.FromContext(ctx).Debug("Serving version", zap.String("version", info.Version))

	if !args.Detailed {
		return textResponse(info.Version), nil
	}
	return jsonResponse(info)
}

// HandleCheckVersion runs the manifest comparison. Failures are reported in
// the tool result, not as protocol errors.
func (h *MCPHandler) HandleCheckVersion(args CheckVersionArgs) (*mcp.ToolResponse, error) {
	ctx := logger.WithTool(h.ctx, ToolCheckVersion)

	result, err := h.versionService.Check(ctx, args.ManifestPath)
	if err != nil && !errors.Is(err, version.ErrVersionMismatch) {
		logger.FromContext(ctx).Warn("Version check failed", zap.Error(err))
		return textResponse(fmt.Sprintf("Version check failed: %v", err)), nil
	}

	payload := struct {
		*domain.CheckResult
		Message string `json:"message,omitempty"`
	}{CheckResult: result}
	if err != nil {
		payload.Message = err.Error()
	}

	return jsonResponse(payload)
}

func textResponse(text string) *mcp.ToolResponse {
	return mcp.NewToolResponse(mcp.NewTextContent(text))
}

func jsonResponse(v any) (*mcp.ToolResponse, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode tool result: %w", err)
	}
	return textResponse(string(data)), nil
}
