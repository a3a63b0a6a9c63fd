package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/treemap/pkg/pipeline"
)

// optionFlags holds the layout and render flags shared by several commands.
// Flags override the config file, which overrides the pipeline defaults.
type optionFlags struct {
	width        float64
	height       float64
	colorBy      string
	scale        float64
	legend       bool
	minLabelSide float64
}

func (f *optionFlags) registerLayout(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.width, "width", pipeline.DefaultWidth, "bounding box width")
	cmd.Flags().Float64Var(&f.height, "height", pipeline.DefaultHeight, "bounding box height")
	cmd.Flags().StringVar(&f.colorBy, "color-by", pipeline.DefaultColorBy, "color policy: category (default), path, leaf")
	_ = cmd.RegisterFlagCompletionFunc("color-by", cobra.FixedCompletions(
		[]string{"category", "path", "leaf"}, cobra.ShellCompDirectiveNoFileComp))
}

func (f *optionFlags) registerRender(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.scale, "scale", 0, "pixels per layout unit (default: longer side is 800px)")
	cmd.Flags().BoolVar(&f.legend, "legend", false, "draw the color key")
	cmd.Flags().Float64Var(&f.minLabelSide, "min-label-side", pipeline.DefaultMinLabelSide,
		"fraction of the box both sides of a rectangle must exceed to be labelled")
}

// options merges flags explicitly set on cmd over cfg.
func (f *optionFlags) options(cmd *cobra.Command, cfg Config) pipeline.Options {
	opts := cfg.options()
	set := cmd.Flags().Changed

	if set("width") {
		opts.Width = f.width
	}
	if set("height") {
		opts.Height = f.height
	}
	if set("color-by") {
		opts.ColorBy = f.colorBy
	}
	if set("scale") {
		opts.Scale = f.scale
	}
	if set("legend") {
		opts.Legend = f.legend
	}
	if set("min-label-side") {
		opts.MinLabelSide = f.minLabelSide
	}
	return opts
}
