package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	verrors "github.com/vellum-app/vellum/internal/errors"
)

// Environment variables recognized as overrides over the config file.
const (
	EnvBackendPostURL     = "VELLUM_BACKEND_POST_URL"
	EnvBackendGetURL      = "VELLUM_BACKEND_GET_URL"
	EnvSocketServerURL    = "VELLUM_SOCKET_SERVER_URL"
	EnvFileStoreURL       = "VELLUM_FILE_STORE_URL"
	EnvFileUploadMaxBytes = "VELLUM_FILE_UPLOAD_MAX_BYTES"
)

// Default endpoints used by `vellum config init`.
const (
	DefaultBackendPostURL  = "https://json.vellum.dev/api/v2/post/"
	DefaultBackendGetURL   = "https://json.vellum.dev/api/v2/"
	DefaultSocketServerURL = "https://ws.vellum.dev"
	DefaultFileStoreURL    = "https://files.vellum.dev/"
)

type UserConfig struct {
	Client    Client    `toml:"client"`
	Endpoints Endpoints `toml:"endpoints"`
	Upload    Upload    `toml:"upload"`
}

type Client struct {
	UUID      string    `toml:"client_uuid"`
	CreatedAt time.Time `toml:"created_at"`
}

// Endpoints are the remote services the transport talks to. They are plain
// configuration, never process-global mutable state.
type Endpoints struct {
	BackendPostURL  string `toml:"backend_post_url"`
	BackendGetURL   string `toml:"backend_get_url"`
	FileStoreURL    string `toml:"file_store_url"`
	SocketServerURL string `toml:"socket_server_url"`
}

type Upload struct {
	FileUploadMaxBytes int64 `toml:"file_upload_max_bytes"`
}

// DefaultUserConfig returns a fresh config with a new client id and the
// default endpoints.
func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Client: Client{
			UUID:      uuid.New().String(),
			CreatedAt: time.Now().UTC(),
		},
		Endpoints: Endpoints{
			BackendPostURL:  DefaultBackendPostURL,
			BackendGetURL:   DefaultBackendGetURL,
			FileStoreURL:    DefaultFileStoreURL,
			SocketServerURL: DefaultSocketServerURL,
		},
		Upload: Upload{FileUploadMaxBytes: 3 << 20},
	}
}

func configPath() string {
	return filepath.Join(UserVellumSettings.UserConfigsPath, "config.toml")
}

// ConfigExists reports whether the user config file has been created.
func ConfigExists() bool {
	_, err := os.Stat(configPath())
	return err == nil
}

// LoadUserConfig loads the user configuration from the config file.
// Returns ErrConfigNotInitialized if the file does not exist.
func LoadUserConfig() (*UserConfig, error) {
	path := configPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, verrors.ErrConfigNotInitialized
	}

	config := &UserConfig{}
	if err := LoadTOML(path, config); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	return config, nil
}

// SaveUserConfig saves the user configuration to the config file.
func SaveUserConfig(config *UserConfig) error {
	if err := SaveTOML(configPath(), config); err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}
	return nil
}

// ResolveEndpoints applies environment overrides on top of the stored
// config. Env vars win so one-off runs against a staging backend need no
// config edits.
func (c *UserConfig) ResolveEndpoints() Endpoints {
	resolved := c.Endpoints
	if v := os.Getenv(EnvBackendPostURL); v != "" {
		resolved.BackendPostURL = v
	}
	if v := os.Getenv(EnvBackendGetURL); v != "" {
		resolved.BackendGetURL = v
	}
	if v := os.Getenv(EnvFileStoreURL); v != "" {
		resolved.FileStoreURL = v
	}
	if v := os.Getenv(EnvSocketServerURL); v != "" {
		resolved.SocketServerURL = v
	}
	return resolved
}

// ResolveFileUploadMaxBytes applies the env override on top of the stored
// per-file upload ceiling.
func (c *UserConfig) ResolveFileUploadMaxBytes() int64 {
	if v := os.Getenv(EnvFileUploadMaxBytes); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return c.Upload.FileUploadMaxBytes
}
