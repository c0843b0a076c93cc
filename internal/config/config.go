package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"

	sandbox "github.com/leshachaplin/eventreporter/internal/server/http"
	"github.com/leshachaplin/eventreporter/reporter"
)

const (
	envPrefix = "EVENTREPORTER_"

	defaultLogLevel    = "INFO"
	defaultSandboxAddr = ":8080"
)

// Config is the main config for the application
type Config struct {
	LogLevel string          `mapstructure:"log_level"`
	Reporter reporter.Config `mapstructure:"reporter"`
	Sandbox  sandbox.Config  `mapstructure:"sandbox"`
}

// envKeys maps environment variables, without prefix, to config paths.
var envKeys = map[string][]string{
	"LOG_LEVEL":             {"log_level"},
	"BASE_URL":              {"reporter", "base_url"},
	"AUTH_TOKEN":            {"reporter", "auth_token"},
	"SANDBOX_ADDR":          {"sandbox", "addr"},
	"SANDBOX_TOKEN":         {"sandbox", "auth_token"},
	"SANDBOX_READ_TIMEOUT":  {"sandbox", "read_timeout"},
	"SANDBOX_WRITE_TIMEOUT": {"sandbox", "write_timeout"},
}

// Load reads the given dotenv files (".env" when none are given, ignored if
// missing) and decodes EVENTREPORTER_* variables into a Config.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load dotenv: %w", err)
	}

	raw := map[string]any{}
	for env, path := range envKeys {
		val, ok := os.LookupEnv(envPrefix + env)
		if !ok || strings.TrimSpace(val) == "" {
			continue
		}
		setPath(raw, path, strings.TrimSpace(val))
	}

	cfg := Config{
		LogLevel: defaultLogLevel,
		Sandbox:  sandbox.Config{Addr: defaultSandboxAddr},
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, fmt.Errorf("config decoder: %w", err)
	}
	if err = dec.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	cfg.LogLevel = strings.ToUpper(cfg.LogLevel)
	return cfg, nil
}

func setPath(m map[string]any, path []string, val string) {
	for _, key := range path[:len(path)-1] {
		next, ok := m[key].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[key] = next
		}
		m = next
	}
	m[path[len(path)-1]] = val
}
