package transport

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LoadConfigFromEnv builds a Config by binding PLATFORM_-prefixed
// environment variables over a set of defaults, read once at session
// construction. A config file is optional: if configPath is
// empty, only defaults and the environment are consulted.
func LoadConfigFromEnv(configPath string) (Config, error) {
	v := viper.New()
	setEnvDefaults(v)

	v.SetEnvPrefix("PLATFORM")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		BaseURL:         v.GetString("base_url"),
		Project:         v.GetString("project"),
		MaxWorkers:      v.GetInt("max_workers"),
		RequestTimeout:  v.GetDuration("request_timeout"),
		RetryCount:      v.GetInt("retry_count"),
		MaxRetryBackoff: v.GetDuration("max_retry_backoff"),
		ConnPoolSize:    v.GetInt("conn_pool_size"),
		GzipDisabled:    v.GetBool("gzip_disabled"),
		HedgeDelay:      v.GetDuration("hedge_delay"),
		APIKey:          v.GetString("api_key"),
		Token:           v.GetString("token"),
		AppName:         v.GetString("app_name"),
	}

	if cfg.BaseURL == "" {
		return Config{}, fmt.Errorf("PLATFORM_BASE_URL is required")
	}
	if cfg.APIKey == "" && cfg.Token == "" {
		return Config{}, fmt.Errorf("one of PLATFORM_API_KEY or PLATFORM_TOKEN is required")
	}

	return cfg, nil
}

func setEnvDefaults(v *viper.Viper) {
	v.SetDefault("max_workers", 10)
	v.SetDefault("request_timeout", 30*time.Second)
	v.SetDefault("retry_count", 5)
	v.SetDefault("max_retry_backoff", 30*time.Second)
	v.SetDefault("gzip_disabled", false)
	v.SetDefault("hedge_delay", 0)
	v.SetDefault("app_name", "platform-client-go")
}
