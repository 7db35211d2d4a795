package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove every cached normalization result",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true
	c, err := cacheAt(cfg)
	if err != nil {
		return errors.Wrap(err, "open cache")
	}
	if err := c.Drop(); err != nil {
		return errors.Wrap(err, "clean cache")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "cleaned %s\n", c.Dir())
	return nil
}
