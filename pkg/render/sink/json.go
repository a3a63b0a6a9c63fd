package sink

import (
	"bytes"

	"github.com/matzehuels/treemap/pkg/layout"
)

// RenderJSON exports the layout in the format read by [layout.Read].
func RenderJSON(l layout.Layout) ([]byte, error) {
	data, err := layout.Marshal(l)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// RenderText lists the rectangles one per line as
// "RECTANGLE x y width height label".
func RenderText(l layout.Layout) []byte {
	var buf bytes.Buffer
	for _, r := range l.Rectangles {
		buf.WriteString(r.String())
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
