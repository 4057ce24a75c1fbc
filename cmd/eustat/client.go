package cmd

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/eraptis/eustat-cli/pkg/eustat"
)

// defaultCacheDir resolves the on-disk cache location when none is
// configured.
func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".eustat", "cache")
	}
	return filepath.Join(home, ".eustat", "cache")
}

// newClient builds the API client from the effective configuration
// (config file, environment, flags).
func newClient() (*eustat.Client, error) {
	opts := []eustat.Option{}

	if base := viper.GetString("api.base-url"); base != "" {
		opts = append(opts, eustat.WithBaseURL(base))
	}

	timeoutSec := viper.GetInt("api.timeout")
	if timeoutSec <= 0 {
		timeoutSec = 30
	}
	opts = append(opts, eustat.WithTimeout(time.Duration(timeoutSec)*time.Second))

	if !viper.GetBool("cache.disabled") {
		dir := viper.GetString("cache.dir")
		if dir == "" {
			dir = defaultCacheDir()
		}
		opts = append(opts, eustat.WithCacheDir(dir))

		ttlHours := viper.GetInt("cache.ttl-hours")
		if ttlHours > 0 {
			opts = append(opts, eustat.WithCacheTTL(time.Duration(ttlHours)*time.Hour))
		}
	}

	return eustat.New(opts...)
}

// cacheDirInUse reports the configured cache directory for display.
func cacheDirInUse() string {
	if dir := viper.GetString("cache.dir"); dir != "" {
		return dir
	}
	return defaultCacheDir()
}
