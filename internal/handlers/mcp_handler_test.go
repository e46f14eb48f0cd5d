package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	config "github.com/inference-gateway/brain-dev/config"
	domain "github.com/inference-gateway/brain-dev/internal/domain"
	logger "github.com/inference-gateway/brain-dev/internal/logger"
	services "github.com/inference-gateway/brain-dev/internal/services"
	version "github.com/inference-gateway/brain-dev/internal/version"
	mcp "github.com/metoro-io/mcp-golang"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

type recordingRegistrar struct {
	names []string
	fail  string
}

func (r *recordingRegistrar) RegisterTool(name string, _ string, _ any) error {
	if name == r.fail {
		return errors.New("duplicate tool")
	}
	r.names = append(r.names, name)
	return nil
}

type failingVersionService struct{}

func (failingVersionService) Info() domain.VersionInfo {
	return domain.VersionInfo{Version: version.Fallback}
}

func (failingVersionService) Check(context.Context, string) (*domain.CheckResult, error) {
	return nil, errors.New("disk on fire")
}

func responseText(t *testing.T, resp *mcp.ToolResponse) string {
	t.Helper()
	require.NotNil(t, resp)
	require.Len(t, resp.Content, 1)
	require.NotNil(t, resp.Content[0].TextContent)
	return resp.Content[0].TextContent.Text
}

func newTestHandler(t *testing.T, installed string) *MCPHandler {
	t.Helper()
	svc := services.NewVersionService(config.DefaultConfig(), version.StaticRegistry{version.ModulePath: installed})
	return NewMCPHandler(logger.NopContext(), svc)
}

func writeManifest(t *testing.T, v string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "release.toml")
	require.NoError(t, os.WriteFile(path, []byte("[project]\nversion = \""+v+"\"\n"), 0644))
	return path
}

func TestMCPHandler_Register(t *testing.T) {
	t.Run("registers all tools", func(t *testing.T) {
		r := &recordingRegistrar{}
		require.NoError(t, newTestHandler(t, "1.0.0").Register(r))
		assert.Equal(t, []string{ToolGetVersion, ToolCheckVersion}, r.names)
	})

	t.Run("registration error is wrapped", func(t *testing.T) {
		r := &recordingRegistrar{fail: ToolCheckVersion}
		err := newTestHandler(t, "1.0.0").Register(r)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ToolCheckVersion)
	})
}

func TestMCPHandler_HandleGetVersion(t *testing.T) {
	h := newTestHandler(t, "1.0.0")

	t.Run("plain", func(t *testing.T) {
		resp, err := h.HandleGetVersion(GetVersionArgs{})
		require.NoError(t, err)
		assert.Equal(t, "1.0.0", responseText(t, resp))
	})

	t.Run("detailed", func(t *testing.T) {
		resp, err := h.HandleGetVersion(GetVersionArgs{Detailed: true})
		require.NoError(t, err)

		var info domain.VersionInfo
		require.NoError(t, json.Unmarshal([]byte(responseText(t, resp)), &info))
		assert.Equal(t, "1.0.0", info.Version)
		assert.Equal(t, version.SourceStatic, info.Source)
	})
}

func TestMCPHandler_HandleCheckVersion(t *testing.T) {
	tests := []struct {
		name          string
		installed     string
		manifest      string
		expectMatch   bool
		expectMessage bool
	}{
		{name: "match", installed: "1.0.0", manifest: "1.0.0", expectMatch: true},
		{name: "mismatch", installed: "1.0.0", manifest: "1.0.1", expectMessage: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, tt.installed)

			resp, err := h.HandleCheckVersion(CheckVersionArgs{ManifestPath: writeManifest(t, tt.manifest)})
			require.NoError(t, err)

			var payload struct {
				domain.CheckResult
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal([]byte(responseText(t, resp)), &payload))
			assert.Equal(t, tt.expectMatch, payload.Match)
			assert.Equal(t, tt.manifest, payload.ManifestVersion)
			assert.Equal(t, tt.installed, payload.RuntimeVersion)
			if tt.expectMessage {
				assert.Contains(t, payload.Message, tt.installed)
				assert.Contains(t, payload.Message, tt.manifest)
			} else {
				assert.Empty(t, payload.Message)
			}
		})
	}
}

func TestMCPHandler_HandleCheckVersionFailure(t *testing.T) {
	h := NewMCPHandler(logger.NopContext(), failingVersionService{})

	resp, err := h.HandleCheckVersion(CheckVersionArgs{})
	require.NoError(t, err)
	assert.Equal(t, "Version check failed: disk on fire", responseText(t, resp))
}
