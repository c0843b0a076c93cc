package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/leshachaplin/eventreporter/internal/config"
	"github.com/leshachaplin/eventreporter/reporter"
)

type recorder struct {
	mu     sync.Mutex
	paths  []string
	bodies []map[string]any
	status int
}

func (r *recorder) snapshot() ([]string, []map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...), append([]map[string]any(nil), r.bodies...)
}

func newTestEnv(t *testing.T, status int) (Env, *recorder, *bytes.Buffer) {
	t.Helper()

	rec := &recorder{status: status}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(data, &body)

		rec.mu.Lock()
		rec.paths = append(rec.paths, r.URL.Path)
		rec.bodies = append(rec.bodies, body)
		rec.mu.Unlock()

		w.WriteHeader(rec.status)
		_, _ = w.Write([]byte(`{"id":"rec-1"}`))
	}))
	t.Cleanup(server.Close)

	stdout := &bytes.Buffer{}
	return Env{
		Config: config.Config{
			Reporter: reporter.Config{BaseURL: server.URL + "/", AuthToken: "token"},
		},
		Logger: zerolog.Nop(),
		Stdout: stdout,
		Stderr: io.Discard,
	}, rec, stdout
}

func TestParseFlags_Errors(t *testing.T) {
	env, _, _ := newTestEnv(t, http.StatusCreated)

	cases := map[string][]string{
		"no subcommand":      {},
		"unknown subcommand": {"uninstall"},
		"missing title":      {"install", "-platform", "android"},
		"missing platform":   {"session", "-title", "title1"},
		"missing install":    {"purchase", "-title", "title1"},
		"unknown flag":       {"install", "-title", "t", "-platform", "p", "-color"},
	}

	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseFlags(args, env)
			require.Error(t, err)
		})
	}

	_, err := ParseFlags([]string{"help"}, env)
	require.ErrorIs(t, err, ErrHelp)
}

func TestInstallCommand(t *testing.T) {
	env, rec, stdout := newTestEnv(t, http.StatusCreated)

	cmd, err := ParseFlags([]string{"install", "-title", "title1", "-platform", "android"}, env)
	require.NoError(t, err)
	require.NoError(t, cmd.Run(context.Background()))

	require.Equal(t, "{\"id\":\"rec-1\"}\n", stdout.String())
	paths, bodies := rec.snapshot()
	require.Equal(t, []string{"/titles/title1/installs"}, paths)

	body := bodies[0]
	require.Len(t, body, 2)
	require.Equal(t, "android", body["platform"])
	_, err = uuid.Parse(body["user_install_id"].(string))
	require.NoError(t, err, "install id is generated when not given")
}

func TestSessionCommand_Fingerprint(t *testing.T) {
	env, rec, _ := newTestEnv(t, http.StatusOK)

	path := filepath.Join(t.TempDir(), "fp.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"os":{"name":"Linux","version":"6.8"}}`), 0o600))

	cmd, err := ParseFlags([]string{
		"session", "-title", "title1", "-platform", "linux", "-install-id", "abc123", "-session", "sess99", "-fingerprint", path,
	}, env)
	require.NoError(t, err)
	require.NoError(t, cmd.Run(context.Background()))

	_, bodies := rec.snapshot()
	require.Equal(t, map[string]any{
		"user_install_id":        "abc123",
		"platform":               "linux",
		"session_id":             "sess99",
		"fingerprint_components": map[string]any{"os": map[string]any{"name": "Linux", "version": "6.8"}},
	}, bodies[0])
}

func TestSessionCommand_BadFingerprint(t *testing.T) {
	env, rec, _ := newTestEnv(t, http.StatusOK)

	path := filepath.Join(t.TempDir(), "fp.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"gpu":"unknown"}`), 0o600))

	cmd, err := ParseFlags([]string{"session", "-title", "t", "-platform", "p", "-fingerprint", path}, env)
	require.NoError(t, err)
	require.Error(t, cmd.Run(context.Background()))
	paths, _ := rec.snapshot()
	require.Empty(t, paths)
}

func TestPurchaseCommand(t *testing.T) {
	env, rec, _ := newTestEnv(t, http.StatusCreated)

	cmd, err := ParseFlags([]string{
		"purchase", "-title", "title1", "-game-install", "inst1", "-amount", "4.99", "-sku", "sku1", "-name", "Sword",
	}, env)
	require.NoError(t, err)
	require.NoError(t, cmd.Run(context.Background()))

	paths, bodies := rec.snapshot()
	require.Equal(t, []string{"/titles/title1/purchases"}, paths)
	require.Equal(t, map[string]any{
		"game_install_id": "inst1",
		"purchase_amount": 4.99,
		"currency":        "USD",
		"item_sku":        "sku1",
		"item_name":       "Sword",
		"quantity":        float64(1),
	}, bodies[0])
}

func TestCommand_Failure(t *testing.T) {
	env, _, stdout := newTestEnv(t, http.StatusUnauthorized)

	cmd, err := ParseFlags([]string{"install", "-title", "title1", "-platform", "android"}, env)
	require.NoError(t, err)

	err = cmd.Run(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "401")
	require.Empty(t, stdout.String())
}

func TestCommand_InvalidConfig(t *testing.T) {
	env, _, _ := newTestEnv(t, http.StatusCreated)
	env.Config.Reporter.BaseURL = "no-slash"

	cmd, err := ParseFlags([]string{"install", "-title", "title1", "-platform", "android"}, env)
	require.NoError(t, err)
	require.ErrorContains(t, cmd.Run(context.Background()), "reporter config")
}
