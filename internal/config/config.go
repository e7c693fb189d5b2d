// Package config loads application settings from defaults, an optional
// config file and PAGETURN_* environment variables, in increasing order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application settings.
type Config struct {
	// DatabasePath is the location of the catalog database.
	DatabasePath string
	// LayoutSettleDelay is waited after a document load before measuring.
	LayoutSettleDelay time.Duration
	// RemeasureDelay is waited before the one-shot re-measurement.
	RemeasureDelay time.Duration
	// ThumbnailWidth is the maximum width of generated cover thumbnails.
	ThumbnailWidth int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database_path", defaultDatabasePath())
	v.SetDefault("layout_settle_delay", "200ms")
	v.SetDefault("remeasure_delay", "350ms")
	v.SetDefault("thumbnail_width", 320)
}

// Load reads the configuration. cfgFile, when non-empty, names an explicit
// config file; otherwise config.yaml is looked up in the working directory
// and in ~/.pageturn. A missing config file is not an error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("PAGETURN")
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".pageturn"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		DatabasePath:      v.GetString("database_path"),
		LayoutSettleDelay: v.GetDuration("layout_settle_delay"),
		RemeasureDelay:    v.GetDuration("remeasure_delay"),
		ThumbnailWidth:    v.GetInt("thumbnail_width"),
	}
	return cfg, nil
}

func defaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "pageturn.db"
	}
	return filepath.Join(home, ".pageturn", "pageturn.db")
}
