package core

import (
	"crypto/tls"
	"net/http"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// User roles accepted in DROPPABLES_USER_ROLE.
const (
	RoleGM     = "gm"
	RolePlayer = "player"
)

// Config holds all configuration values
type Config struct {
	// Runtime
	DevMode  bool   `env:"DEV_MODE" envDefault:"false"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE" envDefault:"droppables.log"`

	// Storage
	DBPath    string `env:"DROPPABLES_DB_PATH" envDefault:"./data/droppables.db"`
	UploadDir string `env:"DROPPABLES_UPLOAD_DIR" envDefault:"./data/uploads"`
	WorldFile string `env:"DROPPABLES_WORLD_FILE" envDefault:"./world.yaml"`

	// Client identity
	Locale      string   `env:"DROPPABLES_LOCALE" envDefault:"en-US"`
	UserID      string   `env:"DROPPABLES_USER_ID" envDefault:"local"`
	UserRole    string   `env:"DROPPABLES_USER_ROLE" envDefault:"gm"`
	Permissions []string `env:"DROPPABLES_USER_PERMISSIONS" envSeparator:","`

	// Scene
	SceneID   string  `env:"DROPPABLES_SCENE_ID" envDefault:"default"`
	SceneName string  `env:"DROPPABLES_SCENE_NAME" envDefault:"Scene"`
	GridSize  float64 `env:"DROPPABLES_GRID_SIZE" envDefault:"100"`

	// Remote textures
	FetchTimeout         time.Duration `env:"DROPPABLES_FETCH_TIMEOUT" envDefault:"30s"`
	AllowSelfSignedCerts bool          `env:"ALLOW_SELF_SIGNED_CERTS" envDefault:"false"`
}

// LoadConfig parses the process environment (after any .env file has been
// loaded into it) and validates the result.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, ErrParseFailed(err)
	}
	cfg.UserRole = strings.ToLower(strings.TrimSpace(cfg.UserRole))
	for i, p := range cfg.Permissions {
		cfg.Permissions[i] = strings.ToUpper(strings.TrimSpace(p))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value domains that struct tags cannot express.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return ErrMissingConfig("DROPPABLES_DB_PATH")
	}
	if c.UploadDir == "" {
		return ErrMissingConfig("DROPPABLES_UPLOAD_DIR")
	}
	if c.UserRole != RoleGM && c.UserRole != RolePlayer {
		return ErrInvalidValue("DROPPABLES_USER_ROLE", c.UserRole, "must be gm or player")
	}
	if c.GridSize <= 0 {
		return ErrInvalidValue("DROPPABLES_GRID_SIZE", formatFloat(c.GridSize), "must be positive")
	}
	return nil
}

// IsGM reports whether the configured user holds the privileged role.
func (c *Config) IsGM() bool {
	return c.UserRole == RoleGM
}

// GetHTTPClient returns an HTTP client configured with TLS settings based on AllowSelfSignedCerts
func GetHTTPClient(cfg *Config, timeout time.Duration) *http.Client {
	client := &http.Client{
		Timeout: timeout,
	}

	if cfg.AllowSelfSignedCerts {
		client.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return client
}

// GetDefaultHTTPClient returns an HTTP client using FetchTimeout.
func GetDefaultHTTPClient(cfg *Config) *http.Client {
	return GetHTTPClient(cfg, cfg.FetchTimeout)
}
