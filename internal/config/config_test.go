package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cradle.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Preview.AllowedOrigins) != 0 {
		t.Errorf("expected empty allowed origins by default, got %v", cfg.Preview.AllowedOrigins)
	}
	if cfg.Preview.MaxMessageSize != 4096 {
		t.Errorf("expected max message size 4096, got %d", cfg.Preview.MaxMessageSize)
	}
	if !cfg.Journal.Enabled || cfg.Journal.Driver != "sqlite" {
		t.Errorf("expected sqlite journal enabled by default, got %+v", cfg.Journal)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadConfig_FileNotExists(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/cradle.yaml")
	if err != nil {
		t.Errorf("expected no error for missing file, got %v", err)
	}
	if cfg.Content.MazeWidth != 33 {
		t.Errorf("expected default maze width, got %d", cfg.Content.MazeWidth)
	}
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
preview:
  addr: ":9000"
  allowed_origins:
    - "https://example.com"
journal:
  enabled: false
  driver: postgres
  postgres:
    host: db
    database: casts
content:
  spells_file: data/spells.yaml
  map_file: data/maps/arena.yaml
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Preview.Addr != ":9000" || len(cfg.Preview.AllowedOrigins) != 1 {
		t.Errorf("preview = %+v", cfg.Preview)
	}
	if cfg.Preview.MaxMessageSize != 4096 {
		t.Errorf("unset max_message_size lost its default: %d", cfg.Preview.MaxMessageSize)
	}
	if cfg.Journal.Enabled || cfg.Journal.Driver != "postgres" || cfg.Journal.Postgres.Host != "db" {
		t.Errorf("journal = %+v", cfg.Journal)
	}
	if cfg.Journal.Postgres.Port != 5432 {
		t.Errorf("expected default postgres port, got %d", cfg.Journal.Postgres.Port)
	}
	if cfg.Content.MapFile != "data/maps/arena.yaml" || cfg.Content.SpellsFile != "data/spells.yaml" {
		t.Errorf("content = %+v", cfg.Content)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed", "preview: [nope"},
		{"tiny_maze", "content:\n  maze_width: 2\n"},
		{"no_message_size", "preview:\n  max_message_size: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected an error")
			}
			if cfg.Preview.MaxMessageSize != 4096 {
				t.Error("expected defaults alongside the error")
			}
		})
	}
}

func TestIsOriginAllowed(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    bool
	}{
		{"same_origin_no_header", nil, "", true},
		{"same_origin_match", nil, "http://localhost:4000", true},
		{"same_origin_other_host", nil, "http://evil.com", false},
		{"wildcard", []string{"*"}, "http://anything.com", true},
		{"exact", []string{"https://example.com"}, "https://example.com", true},
		{"partial", []string{"https://example.com"}, "https://example.com:8080", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := PreviewConfig{AllowedOrigins: tt.allowed}
			if got := cfg.IsOriginAllowed(tt.origin, "localhost:4000"); got != tt.want {
				t.Errorf("IsOriginAllowed(%q) = %v, want %v", tt.origin, got, tt.want)
			}
		})
	}
}

func TestIsSameOrigin(t *testing.T) {
	tests := []struct {
		origin      string
		requestHost string
		expected    bool
	}{
		{"", "localhost:4000", true},                       // No origin header
		{"http://localhost:4000", "localhost:4000", true},  // HTTP match
		{"https://localhost:4000", "localhost:4000", true}, // HTTPS match
		{"http://localhost:4000/", "localhost:4000", true}, // Trailing slash
		{"http://example.com", "localhost:4000", false},    // Different host
		{"http://localhost:3000", "localhost:4000", false}, // Different port
		{"ws://localhost:4000", "localhost:4000", true},    // WebSocket scheme
	}

	for _, tt := range tests {
		result := isSameOrigin(tt.origin, tt.requestHost)
		if result != tt.expected {
			t.Errorf("isSameOrigin(%q, %q) = %v, want %v",
				tt.origin, tt.requestHost, result, tt.expected)
		}
	}
}
