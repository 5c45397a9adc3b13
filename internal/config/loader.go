package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CLASS_FINDER"

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	configDir  string
	configFile string
}

// NewLoader creates a loader that looks for config.yml in configDir.
// A missing file is not an error.
func NewLoader(configDir string) Loader {
	return &loader{configDir: configDir}
}

// NewFileLoader creates a loader for an explicit config file, which must
// exist.
func NewFileLoader(path string) Loader {
	return &loader{configFile: path}
}

func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(l.configDir)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	bindEnvVars(v)

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if l.configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	v.BindEnv("home_dir")

	v.BindEnv("gradle.user_home")
	v.BindEnv("gradle.cache_root")
	v.BindEnv("gradle.command")
	v.BindEnv("gradle.configuration")
	v.BindEnv("gradle.helper_jar")

	v.BindEnv("runtime.java_home")
	v.BindEnv("runtime.probe_timeout_seconds")

	v.BindEnv("decompiler.command")
	v.BindEnv("decompiler.cfr_version")
	v.BindEnv("decompiler.download_url")
	v.BindEnv("decompiler.timeout_seconds")

	v.BindEnv("search.dedupe")
	v.BindEnv("search.local_sources")
	v.BindEnv("search.flat_dirs")
}

func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("home_dir", defaults.HomeDir)

	v.SetDefault("gradle.user_home", defaults.Gradle.UserHome)
	v.SetDefault("gradle.cache_root", defaults.Gradle.CacheRoot)
	v.SetDefault("gradle.command", defaults.Gradle.Command)
	v.SetDefault("gradle.configuration", defaults.Gradle.Configuration)
	v.SetDefault("gradle.helper_jar", defaults.Gradle.HelperJar)

	v.SetDefault("runtime.java_home", defaults.Runtime.JavaHome)
	v.SetDefault("runtime.probe_timeout_seconds", defaults.Runtime.ProbeTimeoutSeconds)

	v.SetDefault("decompiler.command", defaults.Decompiler.Command)
	v.SetDefault("decompiler.cfr_version", defaults.Decompiler.CFRVersion)
	v.SetDefault("decompiler.download_url", defaults.Decompiler.DownloadURL)
	v.SetDefault("decompiler.timeout_seconds", defaults.Decompiler.TimeoutSeconds)

	v.SetDefault("search.dedupe", defaults.Search.Dedupe)
	v.SetDefault("search.local_sources", defaults.Search.LocalSources)
	v.SetDefault("search.flat_dirs", defaults.Search.FlatDirs)
}

// LoadConfig loads from configFile when set, else from the default home
// directory.
func LoadConfig(configFile string) (*Config, error) {
	if configFile != "" {
		return NewFileLoader(configFile).Load()
	}
	return NewLoader(DefaultHomeDir()).Load()
}
