package render

import "strings"

// Box-drawing glyphs for ASCII table rendering.
const (
	boxTopLeft     = '┌'
	boxTopRight    = '┐'
	boxBottomLeft  = '└'
	boxBottomRight = '┘'
	boxHorizontal  = '─'
	boxVertical    = '│'
	boxTeeDown     = '┬'
	boxTeeUp       = '┴'
	boxTeeRight    = '├'
	boxTeeLeft     = '┤'
	boxCross       = '┼'

	// Header separator row.
	boxHeaderLeft  = '╞'
	boxHeaderBar   = '═'
	boxHeaderRight = '╡'
	boxHeaderCross = '╪'
)

// renderTableLines renders rows of cell text as box-drawn lines.
// When headerRow is set, the first row is separated with the double-bar
// header rule.
func renderTableLines(rows [][]string, headerRow bool) []string {
	if len(rows) == 0 {
		return nil
	}

	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return nil
	}

	widths := make([]int, cols)
	for _, row := range rows {
		for i, cell := range row {
			if w := len([]rune(cell)); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var lines []string
	lines = append(lines, ruleLine(widths, boxTopLeft, boxHorizontal, boxTeeDown, boxTopRight))
	for ri, row := range rows {
		lines = append(lines, cellLine(row, widths))
		if ri == len(rows)-1 {
			break
		}
		if ri == 0 && headerRow {
			lines = append(lines, ruleLine(widths, boxHeaderLeft, boxHeaderBar, boxHeaderCross, boxHeaderRight))
		} else {
			lines = append(lines, ruleLine(widths, boxTeeRight, boxHorizontal, boxCross, boxTeeLeft))
		}
	}
	lines = append(lines, ruleLine(widths, boxBottomLeft, boxHorizontal, boxTeeUp, boxBottomRight))
	return lines
}

func ruleLine(widths []int, left, bar, mid, right rune) string {
	var sb strings.Builder
	sb.WriteRune(left)
	for i, w := range widths {
		if i > 0 {
			sb.WriteRune(mid)
		}
		for j := 0; j < w+2; j++ {
			sb.WriteRune(bar)
		}
	}
	sb.WriteRune(right)
	return sb.String()
}

func cellLine(row []string, widths []int) string {
	var sb strings.Builder
	sb.WriteRune(boxVertical)
	for i, w := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		sb.WriteByte(' ')
		sb.WriteString(cell)
		for j := len([]rune(cell)); j < w+1; j++ {
			sb.WriteByte(' ')
		}
		sb.WriteRune(boxVertical)
	}
	return sb.String()
}

// Progress and meter glyphs.
const (
	glyphFilled = '█'
	glyphMedium = '▓'
	glyphEmpty  = '░'
)

const progressCells = 10

// progressGlyphs renders a value/max fraction as a fixed-width bar.
func progressGlyphs(fraction float64, indeterminate bool) string {
	var sb strings.Builder
	if indeterminate {
		for i := 0; i < progressCells; i++ {
			sb.WriteRune(glyphMedium)
		}
		return sb.String()
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction*progressCells + 0.5)
	for i := 0; i < progressCells; i++ {
		if i < filled {
			sb.WriteRune(glyphFilled)
		} else {
			sb.WriteRune(glyphEmpty)
		}
	}
	return sb.String()
}
