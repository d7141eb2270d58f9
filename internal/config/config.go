// Package config loads SmartStudy configuration.
//
// Precedence (highest to lowest):
//  1. SMARTSTUDY_* environment variables
//  2. YAML config file (~/.config/smartstudy/config.yaml)
//  3. Built-in defaults
//
// When the selected LLM provider still has no API key, the standard
// provider variables (GEMINI_API_KEY, OPENAI_API_KEY, ...) are checked.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/abhisek/smartstudy/internal/llm"
	"github.com/abhisek/smartstudy/internal/logging"
)

const (
	envPrefix         = "SMARTSTUDY_"
	maxConfigFileSize = 1024 * 1024 // 1MB
)

// Config is the full application configuration.
type Config struct {
	LLM   llm.Config     `koanf:"llm"`
	Log   logging.Config `koanf:"log"`
	Study StudyConfig    `koanf:"study"`

	// DB overrides the database path. Empty uses store.DefaultDBPath.
	DB string `koanf:"db"`
}

// StudyConfig tunes the study service.
type StudyConfig struct {
	// StrictResponses surfaces malformed model output as an error instead
	// of recording an empty quiz.
	StrictResponses bool `koanf:"strict_responses"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LLM: llm.DefaultConfig(),
		Log: logging.DefaultConfig(),
	}
}

// DefaultPath returns ~/.config/smartstudy/config.yaml, honouring
// XDG_CONFIG_HOME.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "smartstudy", "config.yaml"), nil
}

// Load reads configuration. An empty path uses DefaultPath and tolerates
// a missing file; an explicit path must exist.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	content, err := readConfigFile(path)
	switch {
	case err == nil:
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file; defaults and env only.
	default:
		return nil, err
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if !cfg.LLM.HasKey() {
		cfg.LLM, _ = llm.DiscoverConfig(cfg.LLM)
	}

	return &cfg, nil
}

// readConfigFile opens the file once and validates it through the open
// descriptor. The file may hold API keys, so it must not be readable by
// other users.
func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if runtime.GOOS != "windows" {
		if perm := info.Mode().Perm(); perm&0o077 != 0 {
			return nil, fmt.Errorf("insecure config file permissions: %v (expected 0600 or 0400)", perm)
		}
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return content, nil
}

// llmSections are the nested llm.* blocks addressable from env.
var llmSections = []string{"gemini", "openai", "anthropic", "openrouter", "retry"}

// envKey maps SMARTSTUDY_* variables to config keys:
//
//	SMARTSTUDY_LLM_PROVIDER        -> llm.provider
//	SMARTSTUDY_LLM_TIMEOUT         -> llm.timeout
//	SMARTSTUDY_GEMINI_API_KEY      -> llm.gemini.api_key
//	SMARTSTUDY_RETRY_MAX_ATTEMPTS  -> llm.retry.max_attempts
//	SMARTSTUDY_LOG_LEVEL           -> log.level
//	SMARTSTUDY_STUDY_STRICT_RESPONSES -> study.strict_responses
//	SMARTSTUDY_DB                  -> db
//
// Unrecognised variables are ignored.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))

	if key == "db" {
		return "db"
	}
	for _, sec := range llmSections {
		if rest, ok := strings.CutPrefix(key, sec+"_"); ok {
			return "llm." + sec + "." + rest
		}
	}
	for _, sec := range []string{"llm", "log", "study"} {
		if rest, ok := strings.CutPrefix(key, sec+"_"); ok {
			return sec + "." + rest
		}
	}
	return ""
}
