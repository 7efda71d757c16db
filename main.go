// Command abalone starts the Abalone game server.
//
// It supports two modes:
//  1. "server" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "stdio-mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//
// Flags control host/port, layout and session directories, log level, and
// optional ngrok tunneling for easy external access during development.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/abalone/api"
	"github.com/wricardo/abalone/game/config"
	"github.com/wricardo/abalone/game/service"
	"github.com/wricardo/abalone/game/session"
	"github.com/wricardo/abalone/transport/mcp"
	"github.com/wricardo/abalone/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Abalone Server"
)

const (
	sessionMaxAge       = 24 * time.Hour
	cleanupInterval     = 1 * time.Hour
	filesystemSyncEvery = 5 * time.Second
	externalAPIURL      = "http://localhost:8080"
)

// options are the resolved command line flags.
type options struct {
	host        string
	port        int
	configDir   string
	sessionsDir string
	ngrok       bool
	ngrokAuth   string
	ngrokDomain string
}

func (o options) addr() string {
	return fmt.Sprintf("%s:%d", o.host, o.port)
}

func optionsFrom(cmd *cli.Command) options {
	return options{
		host:        cmd.String("host"),
		port:        cmd.Int("port"),
		configDir:   cmd.String("config-dir"),
		sessionsDir: cmd.String("sessions-dir"),
		ngrok:       cmd.Bool("ngrok"),
		ngrokAuth:   cmd.String("ngrok-auth"),
		ngrokDomain: cmd.String("ngrok-domain"),
	}
}

func main() {
	// Load .env file if it exists
	envErr := godotenv.Load()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	switch {
	case envErr == nil:
		log.Debug().Msg("loaded environment variables from .env file")
	case !errors.Is(envErr, fs.ErrNotExist):
		log.Warn().Err(envErr).Msg("error loading .env file")
	}

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("exiting")
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "abalone",
		Usage:   AppName,
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Value: "localhost",
				Usage: "HTTP server host",
			},
			&cli.IntFlag{
				Name:  "port",
				Value: 8080,
				Usage: "HTTP server port",
			},
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing layout files",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:    "sessions-dir",
				Value:   "sessions",
				Usage:   "directory where sessions are persisted",
				Sources: cli.EnvVars("SESSIONS_DIR"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "trace, debug, info, warn or error",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.BoolFlag{
				Name:    "ngrok",
				Usage:   "expose the server through an ngrok tunnel",
				Sources: cli.EnvVars("NGROK_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "ngrok-auth",
				Usage:   "ngrok auth token",
				Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
			},
			&cli.StringFlag{
				Name:    "ngrok-domain",
				Usage:   "custom ngrok domain (optional)",
				Sources: cli.EnvVars("NGROK_DOMAIN"),
			},
		},
		Action: runServerCommand,
		Commands: []*cli.Command{
			{
				Name:    "server",
				Aliases: []string{"http"},
				Usage:   "run HTTP server with API, WebSocket, and MCP endpoint (default)",
				Action:  runServerCommand,
			},
			{
				Name:    "stdio-mcp",
				Aliases: []string{"mcp-stdio", "mcp"},
				Usage:   "run MCP stdio server, starting an internal HTTP API when none is reachable",
				Action:  runStdioCommand,
			},
			{
				Name:  "version",
				Usage: "print the version",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fmt.Printf("%s v%s\n", AppName, Version)
					return nil
				},
			},
		},
	}
}

// setupLogging applies the log level flag to the global zerolog logger.
func setupLogging(cmd *cli.Command) error {
	level, err := zerolog.ParseLevel(cmd.String("log-level"))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	return nil
}

func runServerCommand(ctx context.Context, cmd *cli.Command) error {
	if err := setupLogging(cmd); err != nil {
		return err
	}
	opts := optionsFrom(cmd)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := initializeServices(opts.configDir, opts.sessionsDir)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	svc.startMaintenance(ctx)

	log.Info().Str("version", Version).Str("mode", "server").Msgf("Starting %s", AppName)
	return runHTTPServer(ctx, svc.game, opts)
}

func runStdioCommand(ctx context.Context, cmd *cli.Command) error {
	if err := setupLogging(cmd); err != nil {
		return err
	}
	opts := optionsFrom(cmd)

	svc, err := initializeServices(opts.configDir, opts.sessionsDir)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	svc.startMaintenance(ctx)

	log.Info().Str("version", Version).Str("mode", "stdio-mcp").Msgf("Starting %s", AppName)
	return runStdioMCPWithInternalServer(ctx, svc.game)
}

// mcpHandler serves single JSON-RPC messages posted to /mcp.
func mcpHandler(client *mcp.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := client.GetMCPServer().HandleMessage(r.Context(), body)

		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(responseData)
	}
}

// newRouter builds the REST API with the /mcp endpoint mounted on it.
func newRouter(gameService service.GameService, hub *websocket.Hub, mcpBaseURL string) http.Handler {
	apiServer := api.NewServer(gameService, hub)
	apiServer.Router().HandleFunc("/mcp", mcpHandler(mcp.NewClient(mcpBaseURL))).Methods(http.MethodPost)
	return apiServer
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
// If ngrok is enabled, it also provisions a public tunnel. It returns when ctx is cancelled.
func runHTTPServer(ctx context.Context, gameService service.GameService, opts options) error {
	hub := websocket.NewHub()
	go hub.Run()
	defer hub.Stop()

	addr := opts.addr()
	handler := newRouter(gameService, hub, "http://"+addr)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var wg sync.WaitGroup
	serveErr := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Info().
			Str("addr", addr).
			Str("api", fmt.Sprintf("http://%s/api", addr)).
			Str("ws", fmt.Sprintf("ws://%s/ws?session=<session_id>", addr)).
			Str("mcp", fmt.Sprintf("http://%s/mcp", addr)).
			Msg("HTTP server listening")

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	if opts.ngrok {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, handler, opts)
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down...")
	case runErr = <-serveErr:
		log.Error().Err(runErr).Msg("HTTP server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	wg.Wait()
	log.Info().Msg("Server stopped")
	return runErr
}

// runNgrokTunnel serves handler through an ngrok endpoint until ctx ends.
func runNgrokTunnel(ctx context.Context, handler http.Handler, opts options) {
	if opts.ngrokAuth == "" {
		log.Warn().Msg("ngrok enabled but no auth token provided (use --ngrok-auth or NGROK_AUTHTOKEN)")
		return
	}

	var tunnel ngrokConfig.Tunnel
	if opts.ngrokDomain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(opts.ngrokDomain))
		log.Info().Str("domain", opts.ngrokDomain).Msg("using custom ngrok domain")
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(opts.ngrokAuth))
	if err != nil {
		log.Error().Err(err).Msg("failed to start ngrok tunnel")
		return
	}

	ngrokURL := tun.URL()
	log.Info().
		Str("url", ngrokURL).
		Str("api", ngrokURL+"/api").
		Str("mcp", ngrokURL+"/mcp").
		Msg("ngrok tunnel established")

	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close ngrok tunnel")
		}
	}()

	if err := http.Serve(tun, handler); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("ngrok server error")
	}
	log.Info().Msg("ngrok tunnel closed")
}

// services holds what initializeServices wires together.
type services struct {
	game        service.GameService
	sessions    *session.Manager
	persistence session.SessionPersistence
}

// initializeServices wires session/config managers and the game service.
// Persisted sessions are loaded from sessionsDir.
func initializeServices(configDir, sessionsDir string) (*services, error) {
	configManager, err := config.NewManager(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	persistence, err := session.NewFilePersistence(sessionsDir, configManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create session persistence: %w", err)
	}

	sessionManager := session.NewManagerWithPersistence(persistence)
	if err := sessionManager.LoadPersistedSessions(); err != nil {
		log.Warn().Err(err).Msg("failed to load persisted sessions")
	}

	return &services{
		game:        service.NewGameService(sessionManager, configManager),
		sessions:    sessionManager,
		persistence: persistence,
	}, nil
}

// startMaintenance runs session cleanup and filesystem sync until ctx ends.
func (s *services) startMaintenance(ctx context.Context) {
	go s.sessionCleanupRoutine(ctx, cleanupInterval)
	go s.filesystemSyncRoutine(ctx, filesystemSyncEvery)
}

// sessionCleanupRoutine periodically removes sessions that have not been
// accessed within sessionMaxAge.
func (s *services) sessionCleanupRoutine(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.sessions.CleanupExpiredSessions(sessionMaxAge); removed > 0 {
				log.Info().Int("removed", removed).Msg("cleaned up expired sessions")
			}
		}
	}
}

// filesystemSyncRoutine periodically drops in-memory sessions whose files
// were deleted.
func (s *services) filesystemSyncRoutine(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.syncWithFilesystem()
		}
	}
}

func (s *services) syncWithFilesystem() int {
	if s.persistence == nil {
		return 0
	}

	pruned := 0
	for _, sess := range s.sessions.List() {
		if s.persistence.Exists(sess.ID) {
			continue
		}
		if err := s.sessions.DeleteFromMemory(sess.ID); err == nil {
			pruned++
			log.Info().Str("session", sess.ID).Msg("pruned session from memory (file deleted)")
		}
	}
	return pruned
}

// runStdioMCPWithInternalServer runs an MCP stdio server.
// It tries to reuse an external API at http://localhost:8080; if unavailable, it
// starts a minimal internal HTTP API bound to a random loopback port and targets that.
func runStdioMCPWithInternalServer(ctx context.Context, gameService service.GameService) error {
	baseURL := externalAPIURL

	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalAPIURL + "/api/health")
	if err == nil {
		resp.Body.Close()
	}
	if err == nil && resp.StatusCode < 500 {
		log.Info().Str("url", externalAPIURL).Msg("external API server found, using it for MCP")
	} else {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}

		hub := websocket.NewHub()
		go hub.Run()
		defer hub.Stop()

		httpServer := &http.Server{Handler: api.NewServer(gameService, hub)}
		go func() {
			if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("internal HTTP server error")
			}
		}()
		defer httpServer.Close()

		baseURL = "http://" + listener.Addr().String()
		log.Info().Str("url", baseURL).Msg("started internal HTTP server for MCP stdio")
	}

	mcpClient := mcp.NewClient(baseURL)
	log.Info().Msg("MCP stdio server ready")

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}
