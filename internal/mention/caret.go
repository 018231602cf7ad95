package mention

// FontMetrics describes a monospaced composer so caret math needs no renderer.
// WrapColumns of zero disables soft wrapping.
type FontMetrics struct {
	CharWidth   float64 `json:"char_width" validate:"gte=0"`
	LineHeight  float64 `json:"line_height" validate:"gte=0"`
	WrapColumns int     `json:"wrap_columns" validate:"gte=0"`
	PaddingLeft float64 `json:"padding_left"`
	PaddingTop  float64 `json:"padding_top"`
}

// Position is the caret's line/column and the popup anchor just below it.
type Position struct {
	Line   int     `json:"line"`
	Column int     `json:"column"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// Locate converts a caret rune index into a Position. The caret is clamped to
// the text bounds.
func Locate(text string, caret int, m FontMetrics) Position {
	runes := []rune(text)
	if caret < 0 {
		caret = 0
	}
	if caret > len(runes) {
		caret = len(runes)
	}
	line, column := 0, 0
	for _, r := range runes[:caret] {
		if r == '\n' {
			line++
			column = 0
			continue
		}
		if m.WrapColumns > 0 && column == m.WrapColumns {
			line++
			column = 0
		}
		column++
	}
	return Position{
		Line:   line,
		Column: column,
		X:      m.PaddingLeft + float64(column)*m.CharWidth,
		Y:      m.PaddingTop + float64(line+1)*m.LineHeight,
	}
}
