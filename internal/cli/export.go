package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tilery/tilery/pkg/boardio"
	"github.com/tilery/tilery/pkg/errors"
	"github.com/tilery/tilery/pkg/export"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	output string  // output file path
	format string  // "svg" or "png"
	scale  float64 // output scale multiplier
	dark   bool    // dark palette
}

// exportCommand creates the export command: render a board to an image.
func (c *CLI) exportCommand() *cobra.Command {
	opts := exportOpts{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a board as SVG or PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.scale == 0 {
				opts.scale = c.Config.Export.Scale
			}
			if !cmd.Flags().Changed("dark") {
				opts.dark = c.Config.Export.Dark
			}
			if opts.format == "" {
				opts.format = formatFromPath(opts.output)
			}
			return c.runExport(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "board.svg", "output file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg (default), png")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "scale multiplier (default from config)")
	cmd.Flags().BoolVar(&opts.dark, "dark", false, "use the dark palette")

	return cmd
}

func (c *CLI) runExport(cmd *cobra.Command, opts exportOpts) error {
	tiles, err := boardio.Read(boardFlag(cmd))
	if err != nil {
		return err
	}

	renderOpts := []export.Option{export.WithScale(opts.scale)}
	if opts.dark {
		renderOpts = append(renderOpts, export.WithDark())
	}

	var data []byte
	switch opts.format {
	case "svg":
		data = export.RenderSVG(tiles, renderOpts...)
	case "png":
		data, err = export.RenderPNG(tiles, renderOpts...)
		if err != nil {
			return err
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown export format %q (want svg or png)", opts.format)
	}

	if err := os.WriteFile(opts.output, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "writing %s", opts.output)
	}
	printSuccess("Exported %d tiles", len(tiles))
	printFile(opts.output)
	return nil
}

// formatFromPath infers the export format from the output extension.
func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	default:
		return "svg"
	}
}
