package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Earlh21/rw-cradle/internal/journal"
)

// SandboxConfig holds the settings of the cradle sandbox.
type SandboxConfig struct {
	Preview PreviewConfig `yaml:"preview"`
	Journal JournalConfig `yaml:"journal"`
	Content ContentConfig `yaml:"content"`
}

// PreviewConfig holds the preview server settings.
type PreviewConfig struct {
	// Addr is the listen address of the preview server.
	Addr string `yaml:"addr"`

	// AllowedOrigins is a list of origins allowed to connect via WebSocket.
	// Empty list enforces same-origin policy.
	// Use "*" to allow all origins (not recommended outside local testing).
	AllowedOrigins []string `yaml:"allowed_origins"`

	// MaxMessageSize is the maximum WebSocket message size in bytes.
	MaxMessageSize int64 `yaml:"max_message_size"`
}

// JournalConfig controls the cast journal.
type JournalConfig struct {
	Enabled        bool `yaml:"enabled"`
	journal.Config `yaml:",inline"`
}

// ContentConfig says where spells and the level come from.
type ContentConfig struct {
	// SpellsFile overlays the built-in spell definitions. Empty uses them as is.
	SpellsFile string `yaml:"spells_file"`

	// MapFile is a YAML level. When empty a maze is generated.
	MapFile string `yaml:"map_file"`

	MazeSeed   int64 `yaml:"maze_seed"`
	MazeWidth  int   `yaml:"maze_width"`
	MazeHeight int   `yaml:"maze_height"`
}

// DefaultConfig returns a SandboxConfig with safe defaults.
func DefaultConfig() *SandboxConfig {
	return &SandboxConfig{
		Preview: PreviewConfig{
			Addr:           "127.0.0.1:8089",
			AllowedOrigins: []string{}, // Same-origin only by default
			MaxMessageSize: 4096,
		},
		Journal: JournalConfig{
			Enabled: true,
			Config:  journal.DefaultConfig("data/journal.db"),
		},
		Content: ContentConfig{
			MazeSeed:   1,
			MazeWidth:  33,
			MazeHeight: 21,
		},
	}
}

// LoadConfig loads sandbox configuration from a YAML file.
// If the file doesn't exist, returns default config.
func LoadConfig(path string) (*SandboxConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil // Use defaults if file doesn't exist
		}
		return config, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), fmt.Errorf("parse %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("%s: %w", path, err)
	}

	return config, nil
}

// Validate rejects settings the sandbox cannot run with.
func (c *SandboxConfig) Validate() error {
	if c.Content.MapFile == "" && (c.Content.MazeWidth < 3 || c.Content.MazeHeight < 3) {
		return fmt.Errorf("maze size %dx%d is too small", c.Content.MazeWidth, c.Content.MazeHeight)
	}
	if c.Preview.MaxMessageSize <= 0 {
		return fmt.Errorf("max_message_size must be positive")
	}
	return nil
}

// IsOriginAllowed checks if the given origin is allowed based on the config.
// Returns true if:
// - AllowedOrigins contains "*" (allow all)
// - AllowedOrigins contains the exact origin
// - AllowedOrigins is empty and origin matches the request host (same-origin)
func (c *PreviewConfig) IsOriginAllowed(origin, requestHost string) bool {
	if len(c.AllowedOrigins) == 0 {
		return isSameOrigin(origin, requestHost)
	}

	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}

	return false
}

// isSameOrigin checks if the origin matches the request host (same-origin policy).
func isSameOrigin(origin, requestHost string) bool {
	if origin == "" {
		return true // No origin header means a non-browser client
	}

	// "http://localhost:3000" -> "localhost:3000"
	originHost := origin
	if idx := strings.Index(origin, "://"); idx != -1 {
		originHost = origin[idx+3:]
	}
	originHost = strings.TrimSuffix(originHost, "/")

	return originHost == requestHost
}
