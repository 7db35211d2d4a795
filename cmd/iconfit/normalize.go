package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/iconfit/iconfit/internal/pipeline"
	"github.com/iconfit/iconfit/svgicon"
)

var (
	normalizeSize    float64
	normalizeJobs    int
	normalizeOut     string
	normalizeStdout  bool
	normalizeStrict  bool
	normalizeNoCache bool
	normalizeVerbose bool
)

func init() {
	normalizeCmd.Flags().Float64Var(&normalizeSize, "size", 0, "target frame edge in user units (default from manifest, else 24)")
	normalizeCmd.Flags().IntVar(&normalizeJobs, "jobs", 0, "parallel workers (default GOMAXPROCS)")
	normalizeCmd.Flags().StringVar(&normalizeOut, "out", "", "write results under this directory instead of in place")
	normalizeCmd.Flags().BoolVar(&normalizeStdout, "stdout", false, "print the result of a single input to stdout")
	normalizeCmd.Flags().BoolVar(&normalizeStrict, "strict", false, "fail a file on its first unusable element")
	normalizeCmd.Flags().BoolVar(&normalizeNoCache, "no-cache", false, "bypass the result cache")
	normalizeCmd.Flags().BoolVar(&normalizeVerbose, "verbose", false, "log one structured event per file to stderr")
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize [files or directories]",
	Short: "Rewrite icons onto the target frame",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNormalize,
}

func runNormalize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	files, err := pipeline.Collect(args)
	if err != nil {
		return errors.Wrap(err, "collect inputs")
	}
	if len(files) == 0 {
		return fmt.Errorf("no SVG files under %s", strings.Join(args, ", "))
	}
	if normalizeStdout && len(files) != 1 {
		return fmt.Errorf("--stdout needs exactly one input, got %d", len(files))
	}

	size := normalizeSize
	if size <= 0 {
		size = cfg.Normalize.Size
	}
	jobs := normalizeJobs
	if jobs <= 0 {
		jobs = cfg.Pipeline.Jobs
	}
	mode := svgicon.IgnoreErrorMode
	if normalizeStrict {
		mode = svgicon.StrictErrorMode
	}
	b := pipeline.Batch{
		Size:      size,
		Jobs:      jobs,
		ErrorMode: mode,
		Cache:     openCache(cfg, normalizeNoCache),
	}
	if normalizeVerbose {
		b.LogOutput = cmd.ErrOrStderr()
	}
	results := b.Run(cmd.Context(), files)

	cmd.SilenceUsage = true
	var failed int
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "iconfit: %s: %s\n", res.Path, res.Err)
			continue
		}
		if normalizeStdout {
			fmt.Fprint(cmd.OutOrStdout(), res.Output)
			continue
		}
		dst := res.Path
		if normalizeOut != "" {
			dst = filepath.Join(normalizeOut, filepath.Base(res.Path))
		}
		if err := writeResult(dst, res.Output); err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "iconfit: %s: %s\n", dst, err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d icons failed", failed, len(results))
	}
	return nil
}

func writeResult(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), 0o644)
}
