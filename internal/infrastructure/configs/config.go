package configs

import (
	"fmt"
	"time"

	"github.com/hilthontt/lobbycli/internal/infrastructure/env"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server ServerConfig `koanf:"server"`
	Chat   ChatConfig   `koanf:"chat"`
	Log    LogConfig    `koanf:"log"`
}

type ServerConfig struct {
	// BaseURL is the http(s) origin of the lobby server. The websocket
	// endpoint is derived from it by swapping the scheme.
	BaseURL          string        `koanf:"base_url"`
	HandshakeTimeout time.Duration `koanf:"handshake_timeout"`
}

type ChatConfig struct {
	// EchoWindow bounds how long a sent message is remembered for
	// suppressing the server's echo of it.
	EchoWindow time.Duration `koanf:"echo_window"`
}

type LogConfig struct {
	FilePath   string `koanf:"file_path"`
	Level      string `koanf:"level"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Load from YAML file if it exists
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			// Only return error if file was explicitly provided but failed to load
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// Apply defaults and environment variable overrides
	applyDefaults(k)
	applyEnvOverrides(k)

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(k *koanf.Koanf) {
	setDefault(k, "server.base_url", "http://localhost:8080")
	setDefault(k, "server.handshake_timeout", 10*time.Second)

	setDefault(k, "chat.echo_window", 5*time.Second)

	setDefault(k, "log.file_path", "./lobbycli.log")
	setDefault(k, "log.level", "info")
	setDefault(k, "log.max_size_mb", 10)
	setDefault(k, "log.max_backups", 3)
}

func applyEnvOverrides(k *koanf.Koanf) {
	if baseURL := env.GetString("LOBBY_SERVER_URL", ""); baseURL != "" {
		k.Set("server.base_url", baseURL)
	}
	if timeout := env.GetInt("LOBBY_HANDSHAKE_TIMEOUT_SECONDS", 0); timeout > 0 {
		k.Set("server.handshake_timeout", time.Duration(timeout)*time.Second)
	}

	if window := env.GetInt("LOBBY_ECHO_WINDOW_SECONDS", 0); window > 0 {
		k.Set("chat.echo_window", time.Duration(window)*time.Second)
	}

	if filePath := env.GetString("LOBBY_LOG_FILE", ""); filePath != "" {
		k.Set("log.file_path", filePath)
	}
	if level := env.GetString("LOBBY_LOG_LEVEL", ""); level != "" {
		k.Set("log.level", level)
	}
}

// setDefault only sets the value if the key doesn't already exist
func setDefault(k *koanf.Koanf, key string, value interface{}) {
	if !k.Exists(key) {
		k.Set(key, value)
	}
}
