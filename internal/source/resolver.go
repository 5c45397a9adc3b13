package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	cferrors "github.com/mvp-joe/gradle-class-finder/internal/errors"
	"github.com/mvp-joe/gradle-class-finder/internal/toolchain"
)

// Resolver runs the recovery tiers in order until one produces text.
type Resolver struct {
	strategies []Strategy
	logger     *log.Logger
}

// NewResolver returns a resolver with the standard tiers: local file,
// sources jar, decompiler.
func NewResolver(decompiler toolchain.Decompiler, logger *log.Logger) *Resolver {
	return NewResolverWithStrategies(logger,
		LocalStrategy{},
		ArchiveStrategy{},
		DecompileStrategy{Decompiler: decompiler},
	)
}

// NewResolverWithStrategies returns a resolver over an explicit tier list.
func NewResolverWithStrategies(logger *log.Logger, strategies ...Strategy) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{strategies: strategies, logger: logger}
}

// Resolve recovers source for req.
//
// Failures of the original-text tiers are logged and the next tier is tried,
// except that an unreadable source file ends the request with NOT_FOUND.
// A failed decompile is not an error: it yields ERROR provenance with the
// failure and the decompiler's stderr in the text. A missing toolchain
// aborts the request.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*Recovered, error) {
	if req.ArchivePath == "" || req.ClassName == "" {
		return nil, cferrors.New(cferrors.ErrCodeInvalidInput, "archive path and class name are required")
	}

	for _, s := range r.strategies {
		text, origin, ok, err := s.Recover(ctx, req)
		if err == nil && ok {
			r.logger.Debug("source recovered", "class", req.ClassName, "provenance", s.Name(), "origin", origin)
			return &Recovered{Text: text, Provenance: s.Name(), ClassName: req.ClassName, Origin: origin}, nil
		}
		if err == nil {
			continue
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if s.Name() == ProvenanceLocal && isSourceFile(req.ArchivePath) {
			// A source path has no archive to fall back to.
			return nil, err
		}
		if s.Name() != ProvenanceDecompiled {
			r.logger.Warn("source tier failed", "tier", s.Name(), "class", req.ClassName, "err", err)
			continue
		}
		if cferrors.Is(err, cferrors.ErrCodeToolchainMissing) {
			return nil, err
		}

		r.logger.Warn("decompile failed", "class", req.ClassName, "archive", req.ArchivePath, "err", err)
		return &Recovered{
			Text:       failureText(req.ClassName, err),
			Provenance: ProvenanceError,
			ClassName:  req.ClassName,
			Origin:     req.ArchivePath,
		}, nil
	}

	return nil, cferrors.New(cferrors.ErrCodeNotFound, "no source available for %s in %s", req.ClassName, req.ArchivePath)
}

func failureText(className string, err error) string {
	var derr *toolchain.DecompileError
	if errors.As(err, &derr) {
		return fmt.Sprintf("// Failed to decompile %s: %v\n%s", className, derr, derr.Stderr)
	}
	return fmt.Sprintf("// Failed to decompile %s: %v\n", className, err)
}
