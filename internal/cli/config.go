package cli

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/backoffice/internal/httpapi"
	"github.com/mesh-intelligence/backoffice/internal/media"
	"github.com/mesh-intelligence/backoffice/internal/paths"
	"github.com/mesh-intelligence/backoffice/internal/resource"
	"github.com/mesh-intelligence/backoffice/pkg/table"
	"github.com/mesh-intelligence/backoffice/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
)

// HTTPSettings configures the admin API listener.
type HTTPSettings struct {
	Addr          string `mapstructure:"addr" yaml:"addr"`
	SecureCookies bool   `mapstructure:"secure_cookies" yaml:"secure_cookies"`
	TrustProxy    bool   `mapstructure:"trust_proxy" yaml:"trust_proxy"`
}

// LogSettings configures the process logger.
type LogSettings struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// Settings is the content of config.yaml.
type Settings struct {
	Backend           string           `mapstructure:"backend" yaml:"backend"`
	DataDir           string           `mapstructure:"data_dir" yaml:"data_dir,omitempty"`
	DSN               string           `mapstructure:"dsn" yaml:"dsn,omitempty"`
	HTTP              HTTPSettings     `mapstructure:"http" yaml:"http"`
	SessionSecret     string           `mapstructure:"session_secret" yaml:"session_secret"`
	PageSize          int              `mapstructure:"page_size" yaml:"page_size"`
	LowStockThreshold int64            `mapstructure:"low_stock_threshold" yaml:"low_stock_threshold"`
	Features          httpapi.Features `mapstructure:"features" yaml:"features"`
	Media             media.Config     `mapstructure:"media" yaml:"media"`
	Log               LogSettings      `mapstructure:"log" yaml:"log"`
}

// defaultSettings returns the values written by init and used for keys the
// config file leaves out.
func defaultSettings() Settings {
	return Settings{
		Backend:           types.BackendSQLite,
		HTTP:              HTTPSettings{Addr: ":8080"},
		PageSize:          table.DefaultItemsPerPage,
		LowStockThreshold: resource.DefaultLowStockThreshold,
		Features:          httpapi.AllFeatures,
		Media:             media.Config{Driver: string(media.DriverFilesystem), BaseURL: "/media"},
		Log:               LogSettings{Level: "info"},
	}
}

// GatewayConfig returns the backend selection for Gateway.Attach.
func (s Settings) GatewayConfig(dataDir string) types.Config {
	return types.Config{Backend: s.Backend, DataDir: dataDir, DSN: s.DSN}
}

func newSessionSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// writeDefaultConfig creates config.yaml in dir with default values and a
// fresh session secret. An existing file is left alone and false returned.
func writeDefaultConfig(dir, dataDir string) (bool, error) {
	path := paths.ConfigFile(dir)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}

	s := defaultSettings()
	s.DataDir = dataDir
	secret, err := newSessionSecret()
	if err != nil {
		return false, fmt.Errorf("generate session secret: %w", err)
	}
	s.SessionSecret = secret

	data, err := yaml.Marshal(&s)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	header := "# backoffice configuration\n"
	return true, os.WriteFile(path, append([]byte(header), data...), 0o600)
}

// loadSettings reads config.yaml from dir with viper. A missing file yields
// the defaults. BACKOFFICE_* environment variables override file values.
func loadSettings(dir string) (Settings, error) {
	v := viper.New()
	d := defaultSettings()
	v.SetDefault("backend", d.Backend)
	v.SetDefault("http.addr", d.HTTP.Addr)
	v.SetDefault("page_size", d.PageSize)
	v.SetDefault("low_stock_threshold", d.LowStockThreshold)
	v.SetDefault("features.reviews", d.Features.Reviews)
	v.SetDefault("features.banners", d.Features.Banners)
	v.SetDefault("features.legal_texts", d.Features.LegalTexts)
	v.SetDefault("media.driver", d.Media.Driver)
	v.SetDefault("media.base_url", d.Media.BaseURL)
	v.SetDefault("log.level", d.Log.Level)

	v.SetEnvPrefix("BACKOFFICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range []string{"dsn", "session_secret", "http.addr", "log.level"} {
		_ = v.BindEnv(key)
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}
	return s, nil
}

// newLogger returns a text logger at the named level.
func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
