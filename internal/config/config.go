package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"

	"github.com/yegors/watson-go/pkg/core"
	"github.com/yegors/watson-go/pkg/logger"
)

// Config is the configuration of the watson-stt tool
type Config struct {
	Logging       LoggingConfig   `toml:"logging"`
	SpeechToText  ServiceConfig   `toml:"speech_to_text"`
	Assistant     ServiceConfig   `toml:"assistant"`
	Discovery     ServiceConfig   `toml:"discovery"`
	CompareComply ServiceConfig   `toml:"compare_comply"`
	Storage       StorageConfig   `toml:"storage"`
	Streaming     StreamingConfig `toml:"streaming"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // json, console, auto
}

// Credentials select the authenticator of a service. A bearer token wins
// over a username and password.
type Credentials struct {
	URL         string `toml:"url"`
	Username    string `toml:"username"`
	Password    string `toml:"password"`
	BearerToken string `toml:"bearer_token"`
}

// ServiceConfig is one [<service>] section
type ServiceConfig struct {
	Credentials
	Version string `toml:"version"`
}

type StorageConfig struct {
	Path string `toml:"path"`
}

type StreamingConfig struct {
	Model          string `toml:"model"`
	ContentType    string `toml:"content_type"`
	InterimResults bool   `toml:"interim_results"`
	ChunkMs        int    `toml:"chunk_ms"`
	SampleRate     int    `toml:"sample_rate"`
	Channels       int    `toml:"channels"`
}

// Version dates used when a section leaves version empty
const (
	DefaultAssistantVersion     = "2018-09-20"
	DefaultDiscoveryVersion     = "2018-12-03"
	DefaultCompareComplyVersion = "2018-10-15"
)

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "auto",
		},
		Assistant:     ServiceConfig{Version: DefaultAssistantVersion},
		Discovery:     ServiceConfig{Version: DefaultDiscoveryVersion},
		CompareComply: ServiceConfig{Version: DefaultCompareComplyVersion},
		Storage: StorageConfig{
			Path: "transcripts.db",
		},
		Streaming: StreamingConfig{
			ContentType:    "audio/wav",
			InterimResults: true,
			ChunkMs:        100,
			SampleRate:     16000,
			Channels:       1,
		},
	}
}

// Load reads the TOML file at path on top of the defaults, applies
// environment overrides and validates the result. An empty path skips the
// file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, key := range undecoded {
				keys = append(keys, key.String())
			}
			return nil, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Logging.Level = envOrDefault("WATSON_LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = envOrDefault("WATSON_LOG_FORMAT", c.Logging.Format)
	c.Storage.Path = envOrDefault("WATSON_STORAGE_PATH", c.Storage.Path)

	c.SpeechToText.applyEnv("WATSON_SPEECH_TO_TEXT")
	c.Assistant.applyEnv("WATSON_ASSISTANT")
	c.Discovery.applyEnv("WATSON_DISCOVERY")
	c.CompareComply.applyEnv("WATSON_COMPARE_COMPLY")

	c.Streaming.Model = envOrDefault("WATSON_STREAMING_MODEL", c.Streaming.Model)
	c.Streaming.ChunkMs = envOrDefaultInt("WATSON_STREAMING_CHUNK_MS", c.Streaming.ChunkMs)
}

func (s *ServiceConfig) applyEnv(prefix string) {
	s.URL = envOrDefault(prefix+"_URL", s.URL)
	s.Username = envOrDefault(prefix+"_USERNAME", s.Username)
	s.Password = envOrDefault(prefix+"_PASSWORD", s.Password)
	s.BearerToken = envOrDefault(prefix+"_BEARER_TOKEN", s.BearerToken)
	s.Version = envOrDefault(prefix+"_VERSION", s.Version)
}

// Validate reports every problem at once
func (c *Config) Validate() error {
	var err error

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		err = multierr.Append(err, fmt.Errorf("logging.level: unsupported level %q", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "json", "console", "auto":
	default:
		err = multierr.Append(err, fmt.Errorf("logging.format: unsupported format %q", c.Logging.Format))
	}

	err = multierr.Append(err, c.SpeechToText.validate("speech_to_text", false))
	err = multierr.Append(err, c.Assistant.validate("assistant", true))
	err = multierr.Append(err, c.Discovery.validate("discovery", true))
	err = multierr.Append(err, c.CompareComply.validate("compare_comply", true))

	if c.Storage.Path == "" {
		err = multierr.Append(err, errors.New("storage.path: must not be empty"))
	}
	if c.Streaming.ContentType == "" {
		err = multierr.Append(err, errors.New("streaming.content_type: must not be empty"))
	}
	if c.Streaming.ChunkMs <= 0 {
		err = multierr.Append(err, fmt.Errorf("streaming.chunk_ms: must be positive, got %d", c.Streaming.ChunkMs))
	}
	if c.Streaming.SampleRate <= 0 {
		err = multierr.Append(err, fmt.Errorf("streaming.sample_rate: must be positive, got %d", c.Streaming.SampleRate))
	}
	if c.Streaming.Channels <= 0 {
		err = multierr.Append(err, fmt.Errorf("streaming.channels: must be positive, got %d", c.Streaming.Channels))
	}
	return err
}

func (s ServiceConfig) validate(section string, versioned bool) error {
	var err error
	if s.URL != "" {
		u, perr := url.Parse(s.URL)
		if perr != nil || u.Scheme == "" || u.Host == "" {
			err = multierr.Append(err, fmt.Errorf("%s.url: invalid url %q", section, s.URL))
		}
	}
	if s.BearerToken == "" && s.Password != "" && s.Username == "" {
		err = multierr.Append(err, fmt.Errorf("%s.username: required with password", section))
	}
	if versioned && s.Version == "" {
		err = multierr.Append(err, fmt.Errorf("%s.version: must not be empty", section))
	}
	return err
}

// Authenticator builds the authenticator the credentials describe
func (c Credentials) Authenticator() core.Authenticator {
	switch {
	case c.BearerToken != "":
		return &core.BearerTokenAuthenticator{Token: c.BearerToken}
	case c.Username != "":
		return &core.BasicAuthenticator{Username: c.Username, Password: c.Password}
	default:
		return core.NoAuthAuthenticator{}
	}
}

// ServiceOptions wires credentials and logger into options for a service
// client. An empty URL selects the client's default endpoint.
func (c Credentials) ServiceOptions(log *logger.Logger) core.ServiceOptions {
	return core.ServiceOptions{
		URL:           c.URL,
		Authenticator: c.Authenticator(),
		Logger:        log,
	}
}

// LoggerConfig maps the [logging] section onto pkg/logger
func (l LoggingConfig) LoggerConfig() logger.Config {
	return logger.Config{Level: l.Level, Format: l.Format}
}

func envOrDefault(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrDefaultInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
