package media

import (
	"context"
	"fmt"
)

// Config selects and configures the media backend.
type Config struct {
	Driver  string   `mapstructure:"driver" yaml:"driver"`
	Dir     string   `mapstructure:"dir" yaml:"dir"`
	BaseURL string   `mapstructure:"base_url" yaml:"base_url"`
	S3      S3Config `mapstructure:"s3" yaml:"s3"`
}

// Open returns the store named by cfg.Driver. An empty driver selects the
// filesystem.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch Driver(cfg.Driver) {
	case "", DriverFilesystem:
		return NewFilesystem(cfg.Dir, cfg.BaseURL)
	case DriverS3:
		return NewS3(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown media driver %q", cfg.Driver)
	}
}
