package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ReadConfig loads an optional .env file and ./data/config.yaml, then lets environment variables
// override every key. A missing config file is not an error, defaults apply.
func ReadConfig() error {
	_ = godotenv.Load()

	SetDefaults()

	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")
	viper.AddConfigPath(".")
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

func SetDefaults() {
	viper.SetDefault("LOG_LEVEL", "info")

	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "30s")
	viper.SetDefault("HTTP_SERVER_READ_TIMEOUT", "15s")
	viper.SetDefault("HTTP_SERVER_WRITE_TIMEOUT", "15s")
	viper.SetDefault("HTTP_SERVER_IDLE_TIMEOUT", "60s")
	viper.SetDefault("HTTP_SERVER_READ_HEADER_TIMEOUT", "5s")
	viper.SetDefault("USE_RATE_LIMIT", false)
	viper.SetDefault("RATE_LIMIT_RPS", 20)
	viper.SetDefault("RATE_LIMIT_BURST", 40)

	viper.SetDefault("SAMPLING_INTERVAL_SECONDS", 3600.0)
	viper.SetDefault("WIND_INFLUENCE", 0.2)
	viper.SetDefault("CONNECTIVITY", "grid")
	viper.SetDefault("GRID_STEP", 0.01)
	viper.SetDefault("PROXIMITY_THRESHOLD", 5.0)
	viper.SetDefault("MAX_PROXIMITY_NODES", 5000)
	viper.SetDefault("GRAPH_CACHE_SIZE", 8)

	viper.SetDefault("SNAPSHOT_SOURCE", "http")
	viper.SetDefault("SNAPSHOT_CURRENT_URL", "https://a.windbornesystems.com/treasure/00.json")
	viper.SetDefault("SNAPSHOT_PREVIOUS_URL", "https://a.windbornesystems.com/treasure/01.json")
	viper.SetDefault("SNAPSHOT_CURRENT_FILE", "./data/current.json")
	viper.SetDefault("SNAPSHOT_PREVIOUS_FILE", "./data/previous.json")
	viper.SetDefault("REFRESH_INTERVAL", "60m")
	viper.SetDefault("FETCH_TIMEOUT", "10s")
	viper.SetDefault("FETCH_MAX_RETRIES", 3)
	viper.SetDefault("FETCH_REQUESTS_PER_MINUTE", 30)
}
