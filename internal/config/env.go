package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to the upper-cased key name, e.g. ADHAN_CLOCK_METHOD.
const EnvPrefix = "ADHAN_CLOCK_"

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(key)
}

// LoadDotEnv loads variables from the given .env files (default ./.env)
// without overriding anything already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides config keys from ADHAN_CLOCK_* variables.
// Invalid values are reported with the variable name.
func (c *Config) ApplyEnv() error {
	for _, key := range ValidKeys {
		name := EnvName(key)
		v, ok := os.LookupEnv(name)
		if !ok || v == "" {
			continue
		}
		if err := c.Set(key, v); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
