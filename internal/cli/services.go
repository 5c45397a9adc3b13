package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/mvp-joe/gradle-class-finder/internal/artifact"
	"github.com/mvp-joe/gradle-class-finder/internal/config"
	"github.com/mvp-joe/gradle-class-finder/internal/finder"
	"github.com/mvp-joe/gradle-class-finder/internal/gradle"
	"github.com/mvp-joe/gradle-class-finder/internal/mcp"
	"github.com/mvp-joe/gradle-class-finder/internal/source"
	"github.com/mvp-joe/gradle-class-finder/internal/toolchain"
)

// services is the process-wide object graph shared by every command.
type services struct {
	cfg       *config.Config
	logger    *log.Logger
	toolchain *toolchain.Toolchain
	finder    *finder.Finder
	resolver  *source.Resolver
}

// loadServices loads configuration and builds the services.
func loadServices(ctx context.Context, logger *log.Logger) (*services, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return buildServices(ctx, cfg, logger), nil
}

// buildServices resolves the toolchain once and wires the finder and
// resolver on top of it. A missing runtime does not fail here; requests
// that need one report it.
func buildServices(ctx context.Context, cfg *config.Config, logger *log.Logger) *services {
	tc := toolchain.Resolve(ctx, cfg.ToolchainOptions(), logger)
	if tc.JavaPath != "" {
		logger.Debug("java runtime", "path", tc.JavaPath, "home", tc.JavaHome)
	}

	runner := gradle.NewRunner(cfg.GradleOptions(tc), logger)

	var candidates finder.CandidateSource
	if runner.HasHelper() {
		candidates = &finder.ReportSource{Query: runner, CacheRoot: cfg.CacheRoot()}
	} else {
		candidates = &finder.CacheSource{
			Query:   runner,
			Locator: artifact.NewLocator(cfg.CacheRoot()),
			Dedupe:  cfg.Search.Dedupe,
			Logger:  logger,
		}
	}

	return &services{
		cfg:       cfg,
		logger:    logger,
		toolchain: tc,
		finder: finder.New(candidates, finder.Options{
			LocalSources: cfg.Search.LocalSources,
			FlatDirs:     cfg.Search.FlatDirs,
		}, logger),
		resolver: source.NewResolver(tc.Decompiler(), logger),
	}
}

func (s *services) mcpServices() mcp.Services {
	return mcp.Services{Finder: s.finder, Resolver: s.resolver, Logger: s.logger}
}
