// Package config provides configuration loading for the class finder.
//
// Configuration lives in ~/.gradle-class-finder/config.yml (or a file given
// with --config). Priority, highest first:
//  1. Environment variables (CLASS_FINDER_*, dots become underscores:
//     CLASS_FINDER_GRADLE_USER_HOME)
//  2. Config file
//  3. Built-in defaults
//
// Example config.yml:
//
//	gradle:
//	  configuration: runtimeClasspath
//	runtime:
//	  java_home: /usr/lib/jvm/java-17
//	decompiler:
//	  timeout_seconds: 60
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/mvp-joe/gradle-class-finder/internal/artifact"
	"github.com/mvp-joe/gradle-class-finder/internal/gradle"
	"github.com/mvp-joe/gradle-class-finder/internal/toolchain"
)

// DirName is the per-user directory holding the config file and the
// provisioned decompiler.
const DirName = ".gradle-class-finder"

// Config represents the complete configuration.
type Config struct {
	HomeDir    string           `yaml:"home_dir" mapstructure:"home_dir"` // config + decompiler install dir
	Gradle     GradleConfig     `yaml:"gradle" mapstructure:"gradle"`
	Runtime    RuntimeConfig    `yaml:"runtime" mapstructure:"runtime"`
	Decompiler DecompilerConfig `yaml:"decompiler" mapstructure:"decompiler"`
	Search     SearchConfig     `yaml:"search" mapstructure:"search"`
}

// GradleConfig configures the build-tool query.
type GradleConfig struct {
	UserHome      string `yaml:"user_home" mapstructure:"user_home"`         // GRADLE_USER_HOME
	CacheRoot     string `yaml:"cache_root" mapstructure:"cache_root"`       // overrides <user_home>/caches/modules-2/files-2.1
	Command       string `yaml:"command" mapstructure:"command"`             // empty: ./gradlew, else gradle
	Configuration string `yaml:"configuration" mapstructure:"configuration"` // e.g. compileClasspath
	HelperJar     string `yaml:"helper_jar" mapstructure:"helper_jar"`       // structured report helper
}

// RuntimeConfig configures Java runtime discovery.
type RuntimeConfig struct {
	JavaHome            string `yaml:"java_home" mapstructure:"java_home"`
	ProbeTimeoutSeconds int    `yaml:"probe_timeout_seconds" mapstructure:"probe_timeout_seconds"`
}

// DecompilerConfig configures decompilation.
type DecompilerConfig struct {
	Command        []string `yaml:"command" mapstructure:"command"` // invoked as command... <archive> <class>
	CFRVersion     string   `yaml:"cfr_version" mapstructure:"cfr_version"`
	DownloadURL    string   `yaml:"download_url" mapstructure:"download_url"`       // %s is replaced by the version
	TimeoutSeconds int      `yaml:"timeout_seconds" mapstructure:"timeout_seconds"` // 0: no timeout
}

// SearchConfig toggles parts of find_class.
type SearchConfig struct {
	Dedupe       bool `yaml:"dedupe" mapstructure:"dedupe"`
	LocalSources bool `yaml:"local_sources" mapstructure:"local_sources"`
	FlatDirs     bool `yaml:"flat_dirs" mapstructure:"flat_dirs"`
}

// DefaultHomeDir returns ~/.gradle-class-finder, or a relative directory if
// the user home is unknown.
func DefaultHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DirName
	}
	return filepath.Join(home, DirName)
}

// DefaultGradleUserHome returns $GRADLE_USER_HOME, else ~/.gradle.
func DefaultGradleUserHome() string {
	if v := os.Getenv("GRADLE_USER_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gradle"
	}
	return filepath.Join(home, ".gradle")
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		HomeDir: DefaultHomeDir(),
		Gradle: GradleConfig{
			UserHome:      DefaultGradleUserHome(),
			Configuration: gradle.DefaultConfiguration,
		},
		Runtime: RuntimeConfig{
			ProbeTimeoutSeconds: int(toolchain.DefaultProbeTimeout / time.Second),
		},
		Decompiler: DecompilerConfig{
			Command:     []string{},
			CFRVersion:  toolchain.DefaultCFRVersion,
			DownloadURL: toolchain.DefaultCFRDownloadURL,
		},
		Search: SearchConfig{
			Dedupe:       true,
			LocalSources: true,
			FlatDirs:     true,
		},
	}
}

// CacheRoot returns the module-cache directory to search.
func (c *Config) CacheRoot() string {
	return artifact.CacheRoot(c.Gradle.CacheRoot, c.Gradle.UserHome)
}

// ToolchainOptions maps the runtime and decompiler settings.
func (c *Config) ToolchainOptions() toolchain.Options {
	return toolchain.Options{
		JavaHome:          c.Runtime.JavaHome,
		ProbeTimeout:      time.Duration(c.Runtime.ProbeTimeoutSeconds) * time.Second,
		DecompilerCommand: c.Decompiler.Command,
		CFRVersion:        c.Decompiler.CFRVersion,
		DownloadURL:       c.Decompiler.DownloadURL,
		HomeDir:           c.HomeDir,
		DecompileTimeout:  time.Duration(c.Decompiler.TimeoutSeconds) * time.Second,
	}
}

// GradleOptions maps the build-tool settings. The runtime comes from the
// resolved toolchain.
func (c *Config) GradleOptions(tc *toolchain.Toolchain) gradle.Options {
	opts := gradle.Options{
		Command:       c.Gradle.Command,
		Configuration: c.Gradle.Configuration,
		HelperJar:     c.Gradle.HelperJar,
	}
	if tc != nil {
		opts.JavaHome = tc.JavaHome
		opts.JavaPath = tc.JavaPath
	}
	return opts
}
