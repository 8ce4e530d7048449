// Package keys translates abstract key presses into the byte sequences a
// VT100/xterm-compatible child process expects on its stdin. The mapping is
// a pure function of the key and whether the terminal is in cursor
// application mode (DECCKM); it holds no state of its own.
package keys

// Key identifies an abstract key press, independent of any host UI's own
// key event representation.
type Key int

const (
	KeyUnknown Key = iota

	KeyUp
	KeyDown
	KeyRight
	KeyLeft

	KeyHome
	KeyEnd
	KeyInsert
	KeyDelete
	KeyPageUp
	KeyPageDown

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	KeyTab
	KeyBacktab
	KeyEnter
	KeyBackspace
	KeyEscape
)

// applicationSequences holds the CSI-vs-SS3 pairs that differ between normal
// and cursor application mode. Keys absent here (editing/function
// keys) send the same bytes in both modes.
var applicationSequences = map[Key][2]string{
	KeyUp:    {"\x1b[A", "\x1bOA"},
	KeyDown:  {"\x1b[B", "\x1bOB"},
	KeyRight: {"\x1b[C", "\x1bOC"},
	KeyLeft:  {"\x1b[D", "\x1bOD"},
	KeyHome:  {"\x1b[H", "\x1bOH"},
	KeyEnd:   {"\x1b[F", "\x1bOF"},
}

// fixedSequences holds keys whose byte sequence never depends on
// application mode.
var fixedSequences = map[Key]string{
	KeyInsert:   "\x1b[2~",
	KeyDelete:   "\x1b[3~",
	KeyPageUp:   "\x1b[5~",
	KeyPageDown: "\x1b[6~",

	KeyF1:  "\x1bOP",
	KeyF2:  "\x1bOQ",
	KeyF3:  "\x1bOR",
	KeyF4:  "\x1bOS",
	KeyF5:  "\x1b[15~",
	KeyF6:  "\x1b[17~",
	KeyF7:  "\x1b[18~",
	KeyF8:  "\x1b[19~",
	KeyF9:  "\x1b[20~",
	KeyF10: "\x1b[21~",
	KeyF11: "\x1b[23~",
	KeyF12: "\x1b[24~",

	KeyTab:       "\t",
	KeyBacktab:   "\x1b[Z",
	KeyEnter:     "\r",
	KeyBackspace: "\x7f",
	KeyEscape:    "\x1b",
}

// Translate maps key to the byte sequence it should produce on the child's
// stdin. applicationMode selects the SS3-prefixed forms for cursor keys
// (DECCKM, the Screen's ModeCursorKeys). Unknown keys, and printable
// runes that should simply pass through unmodified, return nil.
func Translate(key Key, applicationMode bool) []byte {
	if pair, ok := applicationSequences[key]; ok {
		if applicationMode {
			return []byte(pair[1])
		}
		return []byte(pair[0])
	}
	if seq, ok := fixedSequences[key]; ok {
		return []byte(seq)
	}
	return nil
}

// TranslateRune passes a printable character straight through as UTF-8,
// modulo the Enter/Backspace/Tab special cases already in fixedSequences.
func TranslateRune(r rune) []byte {
	return []byte(string(r))
}
