package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

func setDefaults() {
	viper.SetDefault("AREA", "Aachen, Germany")
	viper.SetDefault("NETWORK_TYPE", "drive")
	viper.SetDefault("DATA_DIR", "./data")
	viper.SetDefault("GRAPH_CACHE_SIZE", 4)

	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "30s")
	viper.SetDefault("API_RATE_LIMIT", 5)
	viper.SetDefault("API_RATE_BURST", 10)
	viper.SetDefault("SEARCH_TIMEOUT", "2s")
	viper.SetDefault("HTTP_SERVER_READ_TIMEOUT", "10s")
	viper.SetDefault("HTTP_SERVER_WRITE_TIMEOUT", "5s")
	viper.SetDefault("HTTP_SERVER_IDLE_TIMEOUT", "60s")
	viper.SetDefault("HTTP_SERVER_READ_HEADER_TIMEOUT", "5s")

	viper.SetDefault("GEOCODING_PROVIDER", "nominatim")
	viper.SetDefault("GEOCODING_API_KEY", "")
	viper.SetDefault("GEOCODING_RATE_LIMIT", 1)
	viper.SetDefault("GEOCODING_TIMEOUT", "10s")
	viper.SetDefault("GEOCODING_USER_AGENT", "routefinder/1.0 (https://github.com/lintang-b-s/routefinder)")
	viper.SetDefault("GEOCODING_BASE_URL", "")
	viper.SetDefault("GEOCODING_CACHE_DSN", "")
	viper.SetDefault("GEOCODING_CACHE_TTL", "168h")

	viper.SetDefault("SPATIAL_INDEX_INITIAL_RADIUS_KM", 0.05)
}

// ReadConfig. loads ./data/config.yaml, environment variables override file values.
// a missing config file is not an error, defaults are used instead.
func ReadConfig() error {
	setDefaults()
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./data/")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}
