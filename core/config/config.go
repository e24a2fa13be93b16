package config

import (
	"reflect"
	"strings"

	"vmp-sync/core/database"
	"vmp-sync/core/logger"
	"vmp-sync/core/server"
	"vmp-sync/core/solr"
	"vmp-sync/core/storage"
	"vmp-sync/core/vmp"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// SyncConfig holds the knobs of the sync passes themselves.
type SyncConfig struct {
	// OccurrenceBatchSize is the dispatch batch size for occurrence upserts.
	OccurrenceBatchSize int `mapstructure:"occurrence_batch_size" default:"10"`
	// HoursBatchSize is the dispatch batch size for service hours.
	HoursBatchSize int `mapstructure:"hours_batch_size" default:"100"`
	// FetchBatchSize caps how many ids are fetched from the index per call.
	FetchBatchSize int `mapstructure:"fetch_batch_size" default:"100"`
	// DefaultImageURL is the fallback thumbnail when a fetch fails.
	DefaultImageURL string `mapstructure:"default_image_url" default:""`
	// BackfillLocale duplicates the present locale into a missing one when
	// mapping, matching the older mapping generation. Off by default: a
	// record with one locale yields a partial localized map.
	BackfillLocale bool `mapstructure:"backfill_locale" default:"false"`
}

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP trigger surface.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the ledger database.
	Database database.Config `mapstructure:"database"`
	// Solr holds configuration for the source occurrence index.
	Solr solr.Config `mapstructure:"solr"`
	// Vmp holds configuration for the destination platform API.
	Vmp vmp.Config `mapstructure:"vmp"`
	// Storage holds configuration for the dispatch audit archive.
	Storage storage.Config `mapstructure:"storage"`
	// Sync holds the sync pass settings.
	Sync SyncConfig `mapstructure:"sync"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if the file doesn't exist (e.g. production).
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values.
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SOLR_BASE_URL -> solr.base_url).
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default
// values in Viper based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv.
		v.SetDefault(key, defaultValue)
	}
}
