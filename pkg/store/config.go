package store

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"tableflip.dev/thought/pkg/timeutil"
)

// Config holds the resolved runtime settings.
type Config struct {
	Source      string        `json:"source" yaml:"source"`
	Timezone    string        `json:"timezone" yaml:"timezone"`
	Timeout     time.Duration `json:"timeout" yaml:"timeout"`
	PreloadRate float64       `json:"preloadRate" yaml:"preloadRate"`
	LogLevel    string        `json:"logLevel" yaml:"logLevel"`
	LogFile     string        `json:"logFile" yaml:"logFile"`
}

// boundFlags lists the persistent flags that override config keys.
var boundFlags = map[string]string{
	"source":    "source",
	"timezone":  "timezone",
	"timeout":   "timeout",
	"log.level": "log-level",
}

// LoadConfig reads .thought.yaml from $THOUGHT_CONFIG_PATH or the working
// directory (or the file named by --config), applies THOUGHT_* environment
// overrides and then any flags set on fs. fs may be nil.
func LoadConfig(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault("source", "~/.thought/content")
	v.SetDefault("timezone", timeutil.DefaultZone)
	v.SetDefault("timeout", timeutil.DefaultTimeout)
	v.SetDefault("preload.rate", 4.0)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "~/.thought/thought.log")

	v.SetConfigName(".thought") // .yaml is implicit
	v.SetEnvPrefix("THOUGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("THOUGHT_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if fs != nil {
		if f := fs.Lookup("config"); f != nil && f.Value.String() != "" {
			v.SetConfigFile(f.Value.String())
		}
		for key, name := range boundFlags {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("store: bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	timeout, _, err := timeutil.ParseTimeout(v.GetString("timeout"))
	if err != nil {
		return nil, fmt.Errorf("store: timeout: %w", err)
	}
	rate := v.GetFloat64("preload.rate")
	if rate < 0 {
		return nil, fmt.Errorf("store: preload.rate must not be negative, got %v", rate)
	}
	logFile, err := homedir.Expand(v.GetString("log.file"))
	if err != nil {
		return nil, fmt.Errorf("store: log.file: %w", err)
	}

	return &Config{
		Source:      v.GetString("source"),
		Timezone:    v.GetString("timezone"),
		Timeout:     timeout,
		PreloadRate: rate,
		LogLevel:    v.GetString("log.level"),
		LogFile:     logFile,
	}, nil
}
