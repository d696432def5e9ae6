package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"

	"github.com/yegors/watson-go/pkg/core"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "watson.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Streaming.ChunkMs != 100 || cfg.Streaming.SampleRate != 16000 || !cfg.Streaming.InterimResults {
		t.Fatalf("unexpected streaming defaults: %+v", cfg.Streaming)
	}
	if cfg.Assistant.Version != DefaultAssistantVersion || cfg.Discovery.Version != DefaultDiscoveryVersion {
		t.Fatalf("unexpected versions: %q %q", cfg.Assistant.Version, cfg.Discovery.Version)
	}
	if _, ok := cfg.SpeechToText.Authenticator().(core.NoAuthAuthenticator); !ok {
		t.Fatalf("expected no-auth without credentials, got %T", cfg.SpeechToText.Authenticator())
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[logging]
level = "debug"
format = "console"

[speech_to_text]
url = "https://gateway.example.test/speech-to-text/api"
username = "apikey"
password = "secret"

[assistant]
bearer_token = "token"
version = "2019-02-28"

[storage]
path = "/var/lib/watson/transcripts.db"

[streaming]
model = "en-US_NarrowbandModel"
content_type = "audio/l16;rate=8000"
chunk_ms = 250
sample_rate = 8000
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Fatalf("unexpected logging: %+v", cfg.Logging)
	}
	if cfg.SpeechToText.URL != "https://gateway.example.test/speech-to-text/api" {
		t.Fatalf("unexpected url: %q", cfg.SpeechToText.URL)
	}
	basic, ok := cfg.SpeechToText.Authenticator().(*core.BasicAuthenticator)
	if !ok || basic.Username != "apikey" || basic.Password != "secret" {
		t.Fatalf("expected basic authenticator, got %#v", cfg.SpeechToText.Authenticator())
	}
	bearer, ok := cfg.Assistant.Authenticator().(*core.BearerTokenAuthenticator)
	if !ok || bearer.Token != "token" || cfg.Assistant.Version != "2019-02-28" {
		t.Fatalf("unexpected assistant config: %+v", cfg.Assistant)
	}
	if cfg.Streaming.ChunkMs != 250 || cfg.Streaming.SampleRate != 8000 || cfg.Streaming.Channels != 1 {
		t.Fatalf("unexpected streaming config: %+v", cfg.Streaming)
	}
	// untouched keys keep their defaults
	if !cfg.Streaming.InterimResults || cfg.CompareComply.Version != DefaultCompareComplyVersion {
		t.Fatalf("defaults were lost: %+v", cfg)
	}

	opts := cfg.SpeechToText.ServiceOptions(nil)
	if opts.URL != cfg.SpeechToText.URL || opts.Authenticator == nil {
		t.Fatalf("unexpected service options: %+v", opts)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[speech_to_text]
username = "apikey"
password = "from-file"
`)
	t.Setenv("WATSON_SPEECH_TO_TEXT_BEARER_TOKEN", "env-token")
	t.Setenv("WATSON_SPEECH_TO_TEXT_URL", "http://localhost:9000/stt")
	t.Setenv("WATSON_STREAMING_CHUNK_MS", "40")
	t.Setenv("WATSON_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bearer, ok := cfg.SpeechToText.Authenticator().(*core.BearerTokenAuthenticator)
	if !ok || bearer.Token != "env-token" {
		t.Fatalf("expected bearer token from env to win, got %#v", cfg.SpeechToText.Authenticator())
	}
	if cfg.SpeechToText.URL != "http://localhost:9000/stt" || cfg.Streaming.ChunkMs != 40 || cfg.Logging.Level != "warn" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
[streaming]
chunk_size = 10
`)
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "streaming.chunk_size") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Logging.Level = "verbose"
	cfg.Streaming.ChunkMs = 0
	cfg.Discovery.Version = ""
	cfg.SpeechToText.URL = "not a url"

	err := cfg.Validate()
	if got := len(multierr.Errors(err)); got != 4 {
		t.Fatalf("expected 4 errors, got %d: %v", got, err)
	}
	for _, want := range []string{"logging.level", "streaming.chunk_ms", "discovery.version", "speech_to_text.url"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %s in %v", want, err)
		}
	}
}
