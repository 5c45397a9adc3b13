package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	cferrors "github.com/mvp-joe/gradle-class-finder/internal/errors"
)

// Decompiler turns a compiled class inside an archive into source text.
type Decompiler interface {
	Decompile(ctx context.Context, archivePath, className string) (string, error)
}

// DecompileError describes a decompiler run that did not succeed.
type DecompileError struct {
	ExitCode int
	Stderr   string
	Err      error
}

func (e *DecompileError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("decompiler exited with status %d", e.ExitCode)
	}
	return fmt.Sprintf("decompiler failed: %v", e.Err)
}

func (e *DecompileError) Unwrap() error { return e.Err }

// CommandDecompiler runs Argv followed by the archive path and class name.
type CommandDecompiler struct {
	Argv []string
	// Timeout of zero leaves the run bounded only by ctx.
	Timeout time.Duration
	// TargetArgs overrides how the archive and class are passed.
	TargetArgs func(archivePath, className string) []string
}

// Decompile runs the command and returns its standard output.
func (d *CommandDecompiler) Decompile(ctx context.Context, archivePath, className string) (string, error) {
	if len(d.Argv) == 0 {
		return "", cferrors.New(cferrors.ErrCodeToolchainMissing, "no decompiler command configured")
	}

	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	target := []string{archivePath, className}
	if d.TargetArgs != nil {
		target = d.TargetArgs(archivePath, className)
	}
	args := append(append([]string{}, d.Argv[1:]...), target...)
	cmd := exec.CommandContext(ctx, d.Argv[0], args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		derr := &DecompileError{ExitCode: -1, Stderr: strings.TrimSpace(stderr.String()), Err: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			derr.ExitCode = exitErr.ExitCode()
		}
		if ctx.Err() != nil {
			derr.Err = ctx.Err()
		}
		return "", derr
	}
	return stdout.String(), nil
}

// cfrDecompiler provisions CFR lazily, then runs it on the discovered runtime.
type cfrDecompiler struct {
	javaPath string
	provider *CFRProvider
	timeout  time.Duration
}

func (d *cfrDecompiler) Decompile(ctx context.Context, archivePath, className string) (string, error) {
	jarPath, err := d.provider.EnsureInstalled(ctx)
	if err != nil {
		return "", err
	}
	cmd := &CommandDecompiler{
		Argv:       []string{d.javaPath, "-jar", jarPath},
		Timeout:    d.timeout,
		TargetArgs: cfrTargetArgs,
	}
	return cmd.Decompile(ctx, archivePath, className)
}

// cfrTargetArgs selects one class of the archive. CFR prints to stdout
// when no output directory is given.
func cfrTargetArgs(archivePath, className string) []string {
	return []string{archivePath, "--jarfilter", "^" + regexp.QuoteMeta(className) + "$"}
}

// unavailableDecompiler reports the toolchain error on every call.
type unavailableDecompiler struct {
	err error
}

func (d unavailableDecompiler) Decompile(context.Context, string, string) (string, error) {
	return "", d.err
}
