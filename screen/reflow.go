package screen

// Reflow re-wraps the buffer's visible content at a new column width instead
// of truncating or padding rows independently, so a shrink followed by a
// grow back to the original width restores the original line layout.
//
// Rows are grouped into logical lines by following the wrapped-line chain
// (IsWrapped(row) means row's content continues onto row+1). Each logical
// line has its trailing unstyled blank cells trimmed — unless the cursor
// sits on that line, in which case trailing cells are kept so the cursor's
// column is never invalidated — and is then re-broken into rows of newCols
// width. The cell the cursor was on is tracked through the rebuild and its
// new row/col returned, with the row clamped into the final newRows window.
func (b *Buffer) Reflow(newCols, newRows, cursorRow, cursorCol int) (newCursorRow, newCursorCol int) {
	if newCols <= 0 || newRows <= 0 {
		return cursorRow, cursorCol
	}

	type logicalLine struct {
		cells      []Cell
		cursorIdx  int // index within cells of the cursor cell, -1 if not on this line
	}

	var lines []logicalLine
	row := 0
	for row < b.rows {
		line := logicalLine{cursorIdx: -1}
		for {
			for col := 0; col < len(b.cells[row]); col++ {
				if row == cursorRow && col == cursorCol {
					line.cursorIdx = len(line.cells)
				}
				line.cells = append(line.cells, b.cells[row][col])
			}
			if !b.IsWrapped(row) || row+1 >= b.rows {
				row++
				break
			}
			row++
		}

		// Trim trailing blank cells, unless the cursor is on this line (its
		// column must remain addressable after the trim).
		if line.cursorIdx < 0 {
			end := len(line.cells)
			for end > 0 && isBlankCell(&line.cells[end-1]) {
				end--
			}
			line.cells = line.cells[:end]
		}

		lines = append(lines, line)
	}

	// Re-break each logical line into rows of newCols width.
	var newCells [][]Cell
	var newWrapped []bool
	newCursorRow, newCursorCol = 0, 0
	foundCursor := false

	for _, line := range lines {
		cells := line.cells
		if len(cells) == 0 {
			cells = []Cell{NewCell()}
		}
		for start := 0; start < len(cells); start += newCols {
			end := start + newCols
			wrapsNext := end < len(cells)
			if end > len(cells) {
				end = len(cells)
			}

			chunk := make([]Cell, newCols)
			for i := range chunk {
				if start+i < end {
					chunk[i] = cells[start+i]
				} else {
					chunk[i] = NewCell()
				}
			}

			if !foundCursor && line.cursorIdx >= start && line.cursorIdx < end {
				newCursorRow = len(newCells)
				newCursorCol = line.cursorIdx - start
				foundCursor = true
			}

			newCells = append(newCells, chunk)
			newWrapped = append(newWrapped, wrapsNext)
		}
	}

	// Fit the rewrapped rows into newRows. Growing pads at the bottom.
	// Shrinking keeps the top rows unless that would push the cursor's row
	// off the bottom of the screen, in which case rows are scrolled off the
	// top (into scrollback, same as a normal scroll-up) until the cursor
	// fits — mirroring how a live terminal keeps the cursor visible on a
	// window shrink instead of just truncating.
	if len(newCells) < newRows {
		// Pull lines back from scrollback before padding with blank rows, so
		// a shrink followed by a grow restores what scrolled off, the same
		// way a live terminal does.
		if popper, ok := b.scrollback.(scrollbackPopper); ok {
			var pulled [][]Cell
			for len(newCells)+len(pulled) < newRows {
				line := popper.Pop()
				if line == nil {
					break
				}
				pulled = append(pulled, line)
			}
			if len(pulled) > 0 {
				for i, j := 0, len(pulled)-1; i < j; i, j = i+1, j-1 {
					pulled[i], pulled[j] = pulled[j], pulled[i]
				}
				prefix := make([][]Cell, len(pulled))
				for i, line := range pulled {
					row := make([]Cell, newCols)
					for c := range row {
						if c < len(line) {
							row[c] = line[c]
						} else {
							row[c] = NewCell()
						}
					}
					prefix[i] = row
				}
				newCells = append(prefix, newCells...)
				newWrapped = append(make([]bool, len(pulled)), newWrapped...)
				if foundCursor {
					newCursorRow += len(pulled)
				}
			}
		}

		for len(newCells) < newRows {
			blank := make([]Cell, newCols)
			for i := range blank {
				blank[i] = NewCell()
			}
			newCells = append(newCells, blank)
			newWrapped = append(newWrapped, false)
		}
	} else if len(newCells) > newRows {
		keepFrom := 0
		if newCursorRow >= newRows {
			keepFrom = newCursorRow - newRows + 1
		}
		if maxKeepFrom := len(newCells) - newRows; keepFrom > maxKeepFrom {
			keepFrom = maxKeepFrom
		}

		if b.scrollback != nil && b.scrollback.MaxLines() > 0 {
			for i := 0; i < keepFrom; i++ {
				b.scrollback.Push(newCells[i])
			}
		}

		newCells = newCells[keepFrom : keepFrom+newRows]
		newWrapped = newWrapped[keepFrom : keepFrom+newRows]
		newCursorRow -= keepFrom
	}

	b.cells = newCells
	b.wrapped = newWrapped
	b.rows = newRows
	b.cols = newCols
	b.hasDirty = true

	if newCursorRow < 0 {
		newCursorRow = 0
	}
	if newCursorRow >= newRows {
		newCursorRow = newRows - 1
	}
	return newCursorRow, newCursorCol
}

// blankStyleKey is the StyleKey of a freshly-reset cell: default colors, no
// underline color, no flags. Cells matching it carry no visible styling.
var blankStyleKey = NewCell().StyleKey()

// isBlankCell reports whether a cell is an unstyled space: safe to drop when
// trimming trailing whitespace from a reflowed logical line. A space painted
// with a non-default Fg/Bg/UnderlineColor (e.g. a colored background run) is
// not blank — trimming it would silently discard that styling on resize.
func isBlankCell(c *Cell) bool {
	if c.Char != ' ' || len(c.Combining) != 0 || c.Hyperlink != nil {
		return false
	}
	return c.StyleKey() == blankStyleKey
}
