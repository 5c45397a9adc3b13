package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	cferrors "github.com/mvp-joe/gradle-class-finder/internal/errors"
	"github.com/mvp-joe/gradle-class-finder/internal/mcp"
	"github.com/mvp-joe/gradle-class-finder/internal/outline"
	"github.com/mvp-joe/gradle-class-finder/internal/source"
)

var (
	sourceStart     int
	sourceEnd       int
	sourceSourceJar string
)

// sourceCmd represents the source command
var sourceCmd = &cobra.Command{
	Use:   "source <jar> <class>",
	Short: "Print the source of a class",
	Long: `Print a class's source. The workspace file or the companion sources jar is
used when available; otherwise the class is decompiled.

Examples:
  class-finder source lib-1.0.jar com.example.Widget
  class-finder source lib-1.0.jar com.example.Widget --start 10 --end 40`,
	Args: cobra.ExactArgs(2),
	RunE: runSource,
}

// metadataCmd represents the metadata command
var metadataCmd = &cobra.Command{
	Use:   "metadata <jar> <class>",
	Short: "Summarize a class's source as JSON",
	Args:  cobra.ExactArgs(2),
	RunE:  runMetadata,
}

// outlineCmd represents the outline command
var outlineCmd = &cobra.Command{
	Use:   "outline <jar> <class>",
	Short: "Print a class's package, types and methods as JSON",
	Args:  cobra.ExactArgs(2),
	RunE:  runOutline,
}

func init() {
	sourceCmd.Flags().IntVar(&sourceStart, "start", 0, "first line to print (1-based)")
	sourceCmd.Flags().IntVar(&sourceEnd, "end", 0, "last line to print (1-based, inclusive)")
	for _, c := range []*cobra.Command{sourceCmd, metadataCmd, outlineCmd} {
		c.Flags().StringVar(&sourceSourceJar, "source-jar", "", "companion sources jar, if not beside the jar")
		rootCmd.AddCommand(c)
	}
}

func sourceRequest(args []string) (source.Request, error) {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return source.Request{}, fmt.Errorf("failed to resolve path: %w", err)
	}
	req := source.RequestFromPath(path, args[1])
	req.SourceArchivePath = sourceSourceJar
	return req, nil
}

func runSource(cmd *cobra.Command, args []string) error {
	req, err := sourceRequest(args)
	if err != nil {
		return err
	}
	logger := stderrLogger()
	svc, err := loadServices(cmd.Context(), logger)
	if err != nil {
		return err
	}

	var start, end *int
	if cmd.Flags().Changed("start") {
		start = &sourceStart
	}
	if cmd.Flags().Changed("end") {
		end = &sourceEnd
	}
	return executeSource(cmd.Context(), svc.resolver, req, start, end, cmd.OutOrStdout(), logger)
}

func runMetadata(cmd *cobra.Command, args []string) error {
	req, err := sourceRequest(args)
	if err != nil {
		return err
	}
	logger := stderrLogger()
	svc, err := loadServices(cmd.Context(), logger)
	if err != nil {
		return err
	}
	return executeMetadata(cmd.Context(), svc.resolver, req, cmd.OutOrStdout())
}

func runOutline(cmd *cobra.Command, args []string) error {
	req, err := sourceRequest(args)
	if err != nil {
		return err
	}
	logger := stderrLogger()
	svc, err := loadServices(cmd.Context(), logger)
	if err != nil {
		return err
	}
	return executeOutline(cmd.Context(), svc.resolver, req, cmd.OutOrStdout())
}

// executeSource prints the recovered text, restricted to [start, end] when
// both are given.
func executeSource(ctx context.Context, r mcp.SourceResolver, req source.Request, start, end *int, out io.Writer, logger *log.Logger) error {
	if (start == nil) != (end == nil) {
		return cferrors.New(cferrors.ErrCodeInvalidInput, "--start and --end must be given together")
	}

	rec, err := r.Resolve(ctx, req)
	if err != nil {
		return err
	}
	logger.Info("source recovered", "class", req.ClassName, "provenance", rec.Provenance, "origin", rec.Origin)

	text := source.ExtractLines(rec.Text, start, end)
	if _, err := io.WriteString(out, text); err != nil {
		return err
	}
	if text != "" && text[len(text)-1] != '\n' {
		fmt.Fprintln(out)
	}
	return nil
}

func executeMetadata(ctx context.Context, r mcp.SourceResolver, req source.Request, out io.Writer) error {
	rec, err := r.Resolve(ctx, req)
	if err != nil {
		return err
	}
	return writeJSON(out, mcp.MetadataResponse{Metadata: source.Summarize(rec.Text), Provenance: rec.Provenance})
}

func executeOutline(ctx context.Context, r mcp.SourceResolver, req source.Request, out io.Writer) error {
	rec, err := r.Resolve(ctx, req)
	if err != nil {
		return err
	}
	if rec.Provenance == source.ProvenanceError {
		return cferrors.New(cferrors.ErrCodeDecompileFailure, "no source available for %s", req.ClassName)
	}
	o, err := outline.Parse([]byte(rec.Text))
	if err != nil {
		return err
	}
	return writeJSON(out, mcp.OutlineResponse{Outline: o, Provenance: rec.Provenance})
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
