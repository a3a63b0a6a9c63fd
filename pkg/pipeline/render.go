package pipeline

import (
	"fmt"

	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/layout"
	"github.com/matzehuels/treemap/pkg/render/sink"
)

// RenderFromLayout generates output artifacts in the requested formats.
func RenderFromLayout(l layout.Layout, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range sortedFormats(opts.Formats) {
		data, err := RenderFormat(l, format, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat renders l in a single format.
func RenderFormat(l layout.Layout, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(l, opts.SinkOptions()...), nil
	case FormatPNG:
		data, err := sink.RenderPNG(l, opts.SinkOptions()...)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		return data, nil
	case FormatJSON:
		return sink.RenderJSON(l)
	case FormatText:
		return sink.RenderText(l), nil
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
	}
}
