package config

import (
	"reflect"
	"strings"

	"content-exporter/core/channel"
	"content-exporter/core/database"
	"content-exporter/core/logger"
	"content-exporter/core/server"
	"content-exporter/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Channel holds configuration for the backend execution channel.
	Channel channel.Config `mapstructure:"channel"`
	// Export holds configuration for the export pipeline.
	Export ExportConfig `mapstructure:"export"`
	// Database holds configuration for the direct CMS database connection.
	Database database.Config `mapstructure:"database"`
	// Storage holds configuration for export publishing (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Server holds configuration for the summary HTTP server.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
}

// ExportConfig holds the export pipeline settings.
type ExportConfig struct {
	// BaseDomain is the site domain handed to renderers for URL construction.
	BaseDomain string `mapstructure:"base_domain" default:""`
	// OutputDir is the directory exports are written to.
	OutputDir string `mapstructure:"output_dir" default:"exports"`
	// Statuses is a comma-separated list of record statuses to export.
	Statuses string `mapstructure:"statuses" default:"publish"`
	// Categories is a comma-separated list of operator-supplied categories
	// appended to the manual discovery fallback.
	Categories string `mapstructure:"categories" default:""`
	// OverrideMetaKey is the meta attribute carrying the override path.
	OverrideMetaKey string `mapstructure:"override_meta_key" default:"custom_permalink"`
	// Publish uploads the finished export to object storage when true.
	Publish bool `mapstructure:"publish" default:"false"`
}

// StatusList returns the configured statuses as a cleaned slice.
func (c ExportConfig) StatusList() []string {
	return splitList(c.Statuses)
}

// ExtraCategories returns the operator-supplied categories as a cleaned slice.
func (c ExportConfig) ExtraCategories() []string {
	return splitList(c.Categories)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. CHANNEL_MODE -> channel.mode)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
