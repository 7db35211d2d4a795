package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/iconfit/iconfit/internal/cache"
	"github.com/iconfit/iconfit/internal/config"
	"github.com/iconfit/iconfit/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "iconfit",
	Short: "Normalize SVG icons onto a shared square frame",
	Long: `iconfit rewrites hand authored SVG icons so they all share the same
square viewBox, scaling path geometry textually and leaving markup it
does not understand exactly as authored.`,
}

var configPath string

func init() {
	rootCmd.Version = version.Number

	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultFile, "path to the iconfit.toml manifest")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is connected to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func loadConfig() (config.Config, error) {
	return config.Load(configPath)
}

// cacheAt opens the cache the manifest points at.
func cacheAt(cfg config.Config) (*cache.Cache, error) {
	if cfg.Cache.Dir != "" {
		return cache.OpenDir(cfg.Cache.Dir)
	}
	return cache.Open("iconfit")
}

// openCache honors the manifest and the --no-cache override. Cache
// trouble never blocks a run, it only loses the speedup.
func openCache(cfg config.Config, noCache bool) *cache.Cache {
	if noCache || !cfg.Cache.Enabled {
		return nil
	}
	c, err := cacheAt(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "iconfit: cache disabled: %s\n", err)
		return nil
	}
	return c
}
