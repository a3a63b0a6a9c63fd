package sink

import (
	"bytes"
	"encoding/xml"
)

const (
	fontHeightRatio = 0.6
	fontWidthRatio  = 0.85
	fontCharWidth   = 0.55
	fontSizeMin     = 8.0
	fontSizeMax     = 24.0
)

func fontSizeFor(availWidth, availHeight float64, textLen int) float64 {
	n := max(1, textLen)
	byHeight := availHeight * fontHeightRatio
	byWidth := (availWidth * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

// fitLabel returns the label shortened to fit a w × h box, and the font size
// to draw it at.
func fitLabel(label string, w, h float64) (string, float64) {
	runes := []rune(label)
	size := fontSizeFor(w, h, len(runes))
	maxChars := max(3, int(w*fontWidthRatio/(size*fontCharWidth)))
	return truncate(label, maxChars), size
}

// truncate shortens s to at most n runes, marking the cut with "..".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 2 {
		return string(runes[:max(0, n)])
	}
	return string(runes[:n-2]) + ".."
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
