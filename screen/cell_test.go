package screen

import (
	"testing"
)

func TestNewCell(t *testing.T) {
	cell := NewCell()

	if cell.Char != ' ' {
		t.Errorf("expected space, got '%c'", cell.Char)
	}
	if cell.Fg == nil || cell.Bg == nil {
		t.Error("expected default foreground and background named colors")
	}
	if cell.Flags != 0 {
		t.Error("expected no flags")
	}
}

func TestCellReset(t *testing.T) {
	cell := NewCell()
	cell.Char = 'A'
	cell.SetFlag(CellFlagBold)

	cell.Reset()

	if cell.Char != ' ' {
		t.Errorf("expected space after reset, got '%c'", cell.Char)
	}
	if cell.HasFlag(CellFlagBold) {
		t.Error("expected no flags after reset")
	}
}

func TestCellFlags(t *testing.T) {
	cell := NewCell()

	cell.SetFlag(CellFlagBold)
	if !cell.HasFlag(CellFlagBold) {
		t.Error("expected bold flag")
	}

	cell.SetFlag(CellFlagItalic)
	if !cell.HasFlag(CellFlagBold) || !cell.HasFlag(CellFlagItalic) {
		t.Error("expected both flags")
	}

	cell.ClearFlag(CellFlagBold)
	if cell.HasFlag(CellFlagBold) {
		t.Error("expected bold flag to be cleared")
	}
	if !cell.HasFlag(CellFlagItalic) {
		t.Error("expected italic flag to remain")
	}
}

func TestCellDirty(t *testing.T) {
	cell := NewCell()

	if cell.IsDirty() {
		t.Error("expected cell not dirty initially")
	}

	cell.MarkDirty()
	if !cell.IsDirty() {
		t.Error("expected cell to be dirty")
	}

	cell.ClearDirty()
	if cell.IsDirty() {
		t.Error("expected cell not dirty after clear")
	}
}

func TestCellWide(t *testing.T) {
	cell := NewCell()

	cell.SetFlag(CellFlagWideChar)
	if !cell.IsWide() {
		t.Error("expected cell to be wide")
	}

	spacer := NewCell()
	spacer.SetFlag(CellFlagWideCharSpacer)
	if !spacer.IsWideSpacer() {
		t.Error("expected cell to be spacer")
	}
}

func TestCellCopy(t *testing.T) {
	cell := NewCell()
	cell.Char = 'X'
	cell.SetFlag(CellFlagBold | CellFlagItalic)

	copied := cell.Copy()

	if copied.Char != 'X' {
		t.Errorf("expected 'X', got '%c'", copied.Char)
	}
	if !copied.HasFlag(CellFlagBold) || !copied.HasFlag(CellFlagItalic) {
		t.Error("expected flags to be copied")
	}

	// Modify original, copy should be unchanged
	cell.Char = 'Y'
	if copied.Char != 'X' {
		t.Error("copy should be independent")
	}
}

// combiningAcute is U+0301 COMBINING ACUTE ACCENT, a zero-width mark that
// folds onto the preceding base rune instead of occupying its own cell.
const combiningAcute = '́'

// foldedE is the grapheme 'e' + combiningAcute folds into: the base rune
// followed by U+0301, with no normalization to precomposed U+00E9.
const foldedE = "é"

func TestCellGraphemeFoldsCombiningMark(t *testing.T) {
	var cell Cell
	cell.Char = 'e'
	cell.Combining = append(cell.Combining, combiningAcute)

	if got, want := cell.Grapheme(), foldedE; got != want {
		t.Errorf("expected grapheme %q, got %q", want, got)
	}
}

func TestInputFoldsCombiningMarkOntoPriorCell(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("e" + string(combiningAcute))

	_, col := term.CursorPos()
	if col != 1 {
		t.Errorf("expected cursor to stay at col 1 after zero-width mark, got %d", col)
	}

	cell := term.Cell(0, 0)
	if cell == nil {
		t.Fatal("expected cell at (0,0)")
	}
	if cell.Char != 'e' {
		t.Errorf("expected base char 'e', got '%c'", cell.Char)
	}
	if got, want := cell.Grapheme(), foldedE; got != want {
		t.Errorf("expected folded grapheme %q, got %q", want, got)
	}
}

func TestInputFoldsCombiningMarkAtWrapBoundary(t *testing.T) {
	term := New(WithSize(24, 3))

	// Fill the row exactly to its width, then emit a combining mark before
	// any further printable character triggers the wrap: the mark must
	// fold onto the last cell of the full row, not bleed onto row 1.
	term.WriteString("ab")
	term.WriteString("e" + string(combiningAcute))
	term.WriteString("c") // now triggers the wrap onto row 1

	last := term.Cell(0, 2)
	if last == nil {
		t.Fatal("expected cell at (0,2)")
	}
	if got, want := last.Grapheme(), foldedE; got != want {
		t.Errorf("expected folded grapheme %q on row 0's last cell, got %q", want, got)
	}

	wrapped := term.Cell(1, 0)
	if wrapped == nil {
		t.Fatal("expected cell at (1,0)")
	}
	if wrapped.Char != 'c' {
		t.Errorf("expected 'c' on the wrapped row, got '%c'", wrapped.Char)
	}
}
