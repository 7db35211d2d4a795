package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/iconfit/iconfit/internal/pipeline"
)

var (
	checkSize    float64
	checkJobs    int
	checkNoCache bool
)

func init() {
	checkCmd.Flags().Float64Var(&checkSize, "size", 0, "target frame edge in user units (default from manifest, else 24)")
	checkCmd.Flags().IntVar(&checkJobs, "jobs", 0, "parallel workers (default GOMAXPROCS)")
	checkCmd.Flags().BoolVar(&checkNoCache, "no-cache", false, "bypass the result cache")
}

var checkCmd = &cobra.Command{
	Use:   "check [files or directories]",
	Short: "Report which icons normalization would touch, without writing",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	files, err := pipeline.Collect(args)
	if err != nil {
		return errors.Wrap(err, "collect inputs")
	}

	size := checkSize
	if size <= 0 {
		size = cfg.Normalize.Size
	}
	jobs := checkJobs
	if jobs <= 0 {
		jobs = cfg.Pipeline.Jobs
	}
	b := pipeline.Batch{
		Size:  size,
		Jobs:  jobs,
		Cache: openCache(cfg, checkNoCache),
	}
	results := b.Run(cmd.Context(), files)

	if !isTerminal(os.Stdout) {
		color.NoColor = true
	}
	okC := color.New(color.FgGreen).SprintFunc()
	warnC := color.New(color.FgYellow).SprintFunc()
	errC := color.New(color.FgRed).SprintFunc()

	out := cmd.OutOrStdout()
	var flagged int
	for _, res := range results {
		switch {
		case res.Err != nil:
			flagged++
			fmt.Fprintf(out, "%s %s: %s\n", errC("error"), res.Path, res.Err)
		case !res.Resized:
			flagged++
			reason := ""
			if res.Reason != nil {
				reason = " (" + res.Reason.Error() + ")"
			}
			fmt.Fprintf(out, "%s %s%s\n", warnC("passthrough"), res.Path, reason)
		case res.SkipCount > 0:
			flagged++
			fmt.Fprintf(out, "%s %s: %d element(s) left as authored\n", warnC("partial"), res.Path, res.SkipCount)
			for _, s := range res.Skipped {
				fmt.Fprintf(out, "    <%s> at offset %d: %s\n", s.Element, s.Offset, s.Reason)
			}
		default:
			fmt.Fprintf(out, "%s %s\n", okC("ok"), res.Path)
		}
	}
	if flagged > 0 {
		cmd.SilenceUsage = true
		return fmt.Errorf("%d of %d icons need attention", flagged, len(results))
	}
	return nil
}
