// Package layout defines the serialized form of a computed treemap.
//
// A [Layout] records which tree was laid out, the bounding box, the color
// policy, and the resulting rectangles. It is the hand-off format between
// the layout and rendering stages: `treemap layout` writes one, `treemap
// visualize` renders one, and the pipeline caches them.
//
//	{
//	  "tree": "birds",
//	  "width": 1,
//	  "height": 1,
//	  "color_by": "category",
//	  "rectangles": [
//	    {"x": 0, "y": 0, "width": 0.75, "height": 1, "label": "A", "color_code": ["A"]}
//	  ]
//	}
//
// Rectangles are validated again on read, so a hand-edited file with
// negative geometry is rejected with a VALIDATION error.
package layout
