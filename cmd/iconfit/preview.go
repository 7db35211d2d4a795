package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/iconfit/iconfit/svgraster"
)

var (
	previewSize  int
	previewColor string
	previewOut   string
)

func init() {
	previewCmd.Flags().IntVar(&previewSize, "size", 0, "preview edge in pixels (default from manifest, else 256)")
	previewCmd.Flags().StringVar(&previewColor, "color", "", "glyph color, named or #rrggbb (default from manifest)")
	previewCmd.Flags().StringVar(&previewOut, "png", "", "output file (default: input name with a .png extension)")
}

var previewCmd = &cobra.Command{
	Use:   "preview file.svg",
	Short: "Rasterize one icon to PNG",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	size := previewSize
	if size <= 0 {
		size = cfg.Preview.Size
	}
	name := previewColor
	if name == "" {
		name = cfg.Preview.Color
	}
	if name == "" {
		name = "black"
	}
	fill, err := svgraster.ParseColor(name)
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return errors.Wrap(err, "open icon")
	}
	defer f.Close()

	cmd.SilenceUsage = true
	img, err := svgraster.RenderStream(f, svgraster.Options{Size: size, Fill: fill})
	if err != nil {
		return errors.Wrap(err, args[0])
	}
	out := previewOut
	if out == "" {
		out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".png"
	}
	if err := imaging.Save(img, out); err != nil {
		return errors.Wrap(err, "save preview")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d)\n", out, img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}
