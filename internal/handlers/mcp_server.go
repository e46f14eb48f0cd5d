package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	gin "github.com/gin-gonic/gin"
	config "github.com/inference-gateway/brain-dev/config"
	domain "github.com/inference-gateway/brain-dev/internal/domain"
	logger "github.com/inference-gateway/brain-dev/internal/logger"
	mcp "github.com/metoro-io/mcp-golang"
	transport "github.com/metoro-io/mcp-golang/transport"
	mcphttp "github.com/metoro-io/mcp-golang/transport/http"
	stdio "github.com/metoro-io/mcp-golang/transport/stdio"
	zap "go.uber.org/zap"
)

const (
	serverName      = "brain-dev"
	shutdownTimeout = 5 * time.Second
)

// MCPServer runs the Dev Brain MCP endpoint on the configured transport
type MCPServer struct {
	cfg            config.ServerConfig
	versionService domain.VersionService

	stdin  io.Reader
	stdout io.Writer
	listen func(network, address string) (net.Listener, error)
}

// NewMCPServer creates a server for cfg
func NewMCPServer(cfg config.ServerConfig, versionService domain.VersionService) *MCPServer {
	return &MCPServer{
		cfg:            cfg,
		versionService: versionService,
		stdin:          os.Stdin,
		stdout:         os.Stdout,
		listen:         net.Listen,
	}
}

// Serve blocks until ctx is cancelled, the client closes stdin (stdio) or
// the listener fails (http)
func (s *MCPServer) Serve(ctx context.Context) error {
	ctx, _ = logger.WithSession(ctx)

	switch s.cfg.Transport {
	case config.TransportStdio, "":
		return s.serveStdio(ctx)
	case config.TransportHTTP:
		return s.serveHTTP(ctx)
	default:
		return fmt.Errorf("unsupported server transport %q", s.cfg.Transport)
	}
}

// start registers the tools and connects the protocol to t
func (s *MCPServer) start(ctx context.Context, t transport.Transport) error {
	info := s.versionService.Info()
	server := mcp.NewServer(t, mcp.WithName(serverName), mcp.WithVersion(info.Version))
	if err := NewMCPHandler(ctx, s.versionService).Register(server); err != nil {
		return err
	}

	logger.FromContext(ctx).Info("Starting MCP server",
		zap.String("transport", s.cfg.Transport),
		zap.String("version", info.Version),
	)

	if err := server.Serve(); err != nil {
		return fmt.Errorf("mcp server stopped: %w", err)
	}
	return nil
}

func (s *MCPServer) serveStdio(ctx context.Context) error {
	log := logger.FromContext(ctx)

	in := newEOFReader(s.stdin)
	t := stdio.NewStdioServerTransportWithIO(in, s.stdout)
	if err := s.start(ctx, t); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		log.Info("Shutting down MCP server")
	case <-in.done:
		log.Info("MCP client closed stdin")
	}

	return t.Close()
}

func (s *MCPServer) serveHTTP(ctx context.Context) error {
	log := logger.FromContext(ctx)

	t := mcphttp.NewGinTransport()
	if err := s.start(ctx, t); err != nil {
		return err
	}
	defer func() { _ = t.Close() }()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Any(s.cfg.Path, t.Handler())

	ln, err := s.listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	log.Info("MCP server listening", zap.String("addr", ln.Addr().String()), zap.String("path", s.cfg.Path))

	select {
	case <-ctx.Done():
		log.Info("Shutting down MCP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		shutdownErr := srv.Shutdown(shutdownCtx)
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("mcp server stopped: %w", err)
		}
		return shutdownErr
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("mcp server stopped: %w", err)
	}
}

// eofReader closes done once the wrapped reader returns an error, which is
// when the stdio transport stops reading
type eofReader struct {
	r    io.Reader
	once sync.Once
	done chan struct{}
}

func newEOFReader(r io.Reader) *eofReader {
	return &eofReader{r: r, done: make(chan struct{})}
}

func (e *eofReader) Read(p []byte) (int, error) {
	n, err := e.r.Read(p)
	if err != nil {
		e.once.Do(func() { close(e.done) })
	}
	return n, err
}
