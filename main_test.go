package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"
)

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}

	expectedAppName := "Abalone Server"
	if AppName != expectedAppName {
		t.Errorf("Expected app name %s, got %s", expectedAppName, AppName)
	}
}

func TestInitializeServices(t *testing.T) {
	if _, err := os.Stat("configs"); os.IsNotExist(err) {
		t.Skip("Skipping test - configs directory not found")
	}

	svc, err := initializeServices("configs", t.TempDir())
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}

	if svc.game == nil {
		t.Fatal("Expected game service to be initialized")
	}
	if svc.sessions == nil || svc.persistence == nil {
		t.Fatal("Expected session manager and persistence to be initialized")
	}
}

func TestInitializeServices_InvalidConfigDir(t *testing.T) {
	_, err := initializeServices("/non/existent/path", t.TempDir())
	if err == nil {
		t.Error("Expected error for non-existent config directory")
	}
}

func TestInitializeServices_LoadsPersistedSessions(t *testing.T) {
	sessionsDir := t.TempDir()

	first, err := initializeServices("configs", sessionsDir)
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	info, err := first.game.CreateSession(context.Background(), "belgian_daisy")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	second, err := initializeServices("configs", sessionsDir)
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	got, err := second.game.GetSession(context.Background(), info.ID)
	if err != nil {
		t.Fatalf("Expected persisted session %s: %v", info.ID, err)
	}
	if got.GameState.ConfigName != info.GameState.ConfigName {
		t.Errorf("Expected layout %q, got %q", info.GameState.ConfigName, got.GameState.ConfigName)
	}
}

func TestSyncWithFilesystem(t *testing.T) {
	svc, err := initializeServices("configs", t.TempDir())
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}

	kept, err := svc.game.CreateSession(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	removed, err := svc.game.CreateSession(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}

	if pruned := svc.syncWithFilesystem(); pruned != 0 {
		t.Errorf("Expected nothing to prune, got %d", pruned)
	}

	if err := svc.persistence.Delete(removed.ID); err != nil {
		t.Fatal(err)
	}
	if pruned := svc.syncWithFilesystem(); pruned != 1 {
		t.Errorf("Expected 1 pruned session, got %d", pruned)
	}

	if _, err := svc.sessions.Get(kept.ID); err != nil {
		t.Errorf("Session %s should survive the sync: %v", kept.ID, err)
	}
	if _, err := svc.sessions.Get(removed.ID); err == nil {
		t.Errorf("Session %s should have been pruned", removed.ID)
	}
}

func TestSyncWithFilesystem_NoPersistence(t *testing.T) {
	svc := &services{}
	if pruned := svc.syncWithFilesystem(); pruned != 0 {
		t.Errorf("Expected 0, got %d", pruned)
	}
}

func TestNewApp(t *testing.T) {
	app := newApp()

	commands := map[string][]string{
		"server":    {"http"},
		"stdio-mcp": {"mcp-stdio", "mcp"},
		"version":   nil,
	}
	for name, aliases := range commands {
		cmd := app.Command(name)
		if cmd == nil {
			t.Errorf("Expected command %s", name)
			continue
		}
		for _, alias := range aliases {
			if app.Command(alias) != cmd {
				t.Errorf("Expected %s to alias %s", alias, name)
			}
		}
	}

	for _, flag := range []string{"host", "port", "config-dir", "sessions-dir", "log-level", "ngrok", "ngrok-auth", "ngrok-domain"} {
		found := false
		for _, f := range app.Flags {
			for _, n := range f.Names() {
				if n == flag {
					found = true
				}
			}
		}
		if !found {
			t.Errorf("Expected flag --%s", flag)
		}
	}
}

func TestFlagDefaults(t *testing.T) {
	var got options
	app := newApp()
	app.Action = func(ctx context.Context, cmd *cli.Command) error {
		got = optionsFrom(cmd)
		return nil
	}

	t.Setenv("CONFIG_DIR", "")
	os.Unsetenv("CONFIG_DIR")
	if err := app.Run(context.Background(), []string{"abalone"}); err != nil {
		t.Fatal(err)
	}

	if got.port != 8080 {
		t.Errorf("Expected default port 8080, got %d", got.port)
	}
	if got.host != "localhost" {
		t.Errorf("Expected default host localhost, got %s", got.host)
	}
	if got.configDir != "configs" {
		t.Errorf("Expected default config dir configs, got %s", got.configDir)
	}
	if got.addr() != "localhost:8080" {
		t.Errorf("Unexpected addr %s", got.addr())
	}
}

func TestFlagsFromEnvironment(t *testing.T) {
	t.Setenv("CONFIG_DIR", "/tmp/layouts")
	t.Setenv("NGROK_ENABLED", "true")
	t.Setenv("NGROK_DOMAIN", "abalone.example.com")

	var got options
	app := newApp()
	app.Action = func(ctx context.Context, cmd *cli.Command) error {
		got = optionsFrom(cmd)
		return nil
	}

	if err := app.Run(context.Background(), []string{"abalone", "--port", "9090"}); err != nil {
		t.Fatal(err)
	}

	if got.configDir != "/tmp/layouts" {
		t.Errorf("Expected config dir from env, got %s", got.configDir)
	}
	if !got.ngrok || got.ngrokDomain != "abalone.example.com" {
		t.Errorf("Expected ngrok settings from env, got %+v", got)
	}
	if got.port != 9090 {
		t.Errorf("Expected port 9090, got %d", got.port)
	}
}

func TestInvalidLogLevel(t *testing.T) {
	err := newApp().Run(context.Background(), []string{"abalone", "--log-level", "loud", "server"})
	if err == nil || !strings.Contains(err.Error(), "invalid log level") {
		t.Errorf("Expected invalid log level error, got %v", err)
	}
}

func TestMCPEndpoint(t *testing.T) {
	svc, err := initializeServices("configs", t.TempDir())
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}

	var handler http.Handler
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler.ServeHTTP(w, r)
	}))
	defer ts.Close()
	handler = newRouter(svc.game, nil, ts.URL)

	resp, err := http.Post(ts.URL+"/mcp", "application/json",
		strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected JSON response, got %q", ct)
	}

	get, err := http.Get(ts.URL + "/mcp")
	if err != nil {
		t.Fatal(err)
	}
	get.Body.Close()
	if get.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405 for GET /mcp, got %d", get.StatusCode)
	}

	// the REST API is still reachable on the same router
	health, err := http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatal(err)
	}
	health.Body.Close()
	if health.StatusCode != http.StatusOK {
		t.Errorf("Expected 200 from health, got %d", health.StatusCode)
	}
}
