package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	// ErrEmptyHomeDir indicates a missing home directory
	ErrEmptyHomeDir = errors.New("empty home directory")

	// ErrEmptyConfiguration indicates a missing gradle configuration name
	ErrEmptyConfiguration = errors.New("empty gradle configuration")

	// ErrInvalidTimeout indicates a negative timeout
	ErrInvalidTimeout = errors.New("invalid timeout")

	// ErrInvalidDownloadURL indicates a malformed decompiler download URL
	ErrInvalidDownloadURL = errors.New("invalid download url")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if strings.TrimSpace(cfg.HomeDir) == "" {
		errs = append(errs, fmt.Errorf("%w: home_dir is required", ErrEmptyHomeDir))
	}

	if strings.TrimSpace(cfg.Gradle.Configuration) == "" {
		errs = append(errs, fmt.Errorf("%w: gradle.configuration is required", ErrEmptyConfiguration))
	}

	if cfg.Runtime.ProbeTimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("%w: runtime.probe_timeout_seconds cannot be negative, got %d",
			ErrInvalidTimeout, cfg.Runtime.ProbeTimeoutSeconds))
	}

	if cfg.Decompiler.TimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("%w: decompiler.timeout_seconds cannot be negative, got %d",
			ErrInvalidTimeout, cfg.Decompiler.TimeoutSeconds))
	}

	if len(cfg.Decompiler.Command) == 0 {
		if err := validateDownloadURL(cfg.Decompiler.DownloadURL); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func validateDownloadURL(raw string) error {
	// %s is a version placeholder and not a valid escape.
	u, err := url.Parse(strings.ReplaceAll(raw, "%s", "v"))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDownloadURL, err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("%w: decompiler.download_url must be http(s), got %q", ErrInvalidDownloadURL, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: decompiler.download_url has no host", ErrInvalidDownloadURL)
	}
	return nil
}
