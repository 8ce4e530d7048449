package screen

import "fmt"

// MouseButton identifies which button a mouse report describes.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonMiddle
	MouseButtonRight
	MouseButtonNone
	MouseButtonWheelUp
	MouseButtonWheelDown
)

// MouseEventKind distinguishes presses, releases, and motion.
type MouseEventKind int

const (
	MouseEventPress MouseEventKind = iota
	MouseEventRelease
	MouseEventMotion
)

// MouseModifiers holds the keyboard modifiers held during a mouse event,
// reported as part of the button byte.
type MouseModifiers struct {
	Shift bool
	Alt   bool
	Ctrl  bool
}

// MouseProtocol selects the wire encoding used for mouse reports.
type MouseProtocol int

const (
	// MouseProtocolX10 is the original xterm scheme: ESC [ M Cb Cx Cy, with
	// button and coordinates offset by 32 and encoded as single bytes. Only
	// addresses 0-based coordinates up to 95; EncodeMouseX10 clamps larger ones.
	MouseProtocolX10 MouseProtocol = iota
	// MouseProtocolUTF8 (DECSET 1005) is MouseProtocolX10 with coordinates
	// beyond 127 encoded as multi-byte UTF-8 rather than raw bytes, raising
	// the addressable range to 2015.
	MouseProtocolUTF8
	// MouseProtocolSGR (DECSET 1006) reports decimal coordinates with no
	// offset and no range limit: ESC [ < Cb ; Cx ; Cy M/m (M=press, m=release).
	MouseProtocolSGR
	// MouseProtocolURXVT (DECSET 1015) reports decimal coordinates with the
	// X10 button offset but no byte-range limit: ESC [ Cb ; Cx ; Cy M.
	MouseProtocolURXVT
)

// mouseButtonCode returns the xterm button number (0-3, or 64/65 for wheel)
// before modifier and motion bits are folded in.
func mouseButtonCode(button MouseButton) int {
	switch button {
	case MouseButtonLeft:
		return 0
	case MouseButtonMiddle:
		return 1
	case MouseButtonRight:
		return 2
	case MouseButtonNone:
		return 3
	case MouseButtonWheelUp:
		return 64
	case MouseButtonWheelDown:
		return 65
	default:
		return 3
	}
}

// mouseCb computes the combined button byte xterm protocols report: base
// button code, with bit 2 (4) for shift, bit 3 (8) for meta/alt, bit 4 (16)
// for ctrl, and bit 5 (32) for a motion event.
func mouseCb(button MouseButton, kind MouseEventKind, mods MouseModifiers) int {
	// X10-family protocols (X10, UTF8, urxvt) don't carry which button was
	// released, only that one was: releases always report button code 3.
	// Wheel events have no release phase so are reported as-is.
	reportedButton := button
	if kind == MouseEventRelease && button != MouseButtonWheelUp && button != MouseButtonWheelDown {
		reportedButton = MouseButtonNone
	}

	cb := mouseButtonCode(reportedButton)
	if mods.Shift {
		cb |= 0x04
	}
	if mods.Alt {
		cb |= 0x08
	}
	if mods.Ctrl {
		cb |= 0x10
	}
	if kind == MouseEventMotion {
		cb |= 0x20
	}
	return cb
}

// EncodeMouseX10 encodes a mouse event using the original xterm scheme:
// ESC [ M <chr(ev)> <chr(x+33)> <chr(y+33)>. Only valid when the 0-based
// row and column are both below 96; coordinates at or past that are
// clamped to 95 since the single-byte encoding can't address them.
func EncodeMouseX10(row, col int, button MouseButton, kind MouseEventKind, mods MouseModifiers) []byte {
	cb := mouseCb(button, kind, mods)
	cx := clampCoord96(col)
	cy := clampCoord96(row)
	return []byte{0x1b, '[', 'M', byte(cb + 32), byte(cx + 33), byte(cy + 33)}
}

func clampCoord96(v int) int {
	if v > 95 {
		return 95
	}
	if v < 0 {
		return 0
	}
	return v
}

// EncodeMouseUTF8 is EncodeMouseX10 with coordinates encoded as UTF-8 runes
// instead of raw bytes once they exceed a single byte, extending the
// addressable range to 2015.
func EncodeMouseUTF8(row, col int, button MouseButton, kind MouseEventKind, mods MouseModifiers) []byte {
	cb := mouseCb(button, kind, mods)
	cx := col + 1 + 32
	cy := row + 1 + 32
	if cx < 1 {
		cx = 1
	}
	if cy < 1 {
		cy = 1
	}

	buf := []byte{0x1b, '[', 'M', byte(cb + 32)}
	buf = append(buf, encodeMouseCoordRune(cx)...)
	buf = append(buf, encodeMouseCoordRune(cy)...)
	return buf
}

func encodeMouseCoordRune(v int) []byte {
	return []byte(string(rune(v)))
}

// EncodeMouseSGR encodes a mouse event using the SGR (1006) scheme: decimal
// coordinates with no offset or range limit, press/release distinguished by
// the trailing letter instead of the button byte.
func EncodeMouseSGR(row, col int, button MouseButton, kind MouseEventKind, mods MouseModifiers) []byte {
	cb := mouseButtonCode(button)
	if mods.Shift {
		cb |= 0x04
	}
	if mods.Alt {
		cb |= 0x08
	}
	if mods.Ctrl {
		cb |= 0x10
	}
	if kind == MouseEventMotion {
		cb |= 0x20
	}

	final := byte('M')
	if kind == MouseEventRelease {
		final = 'm'
	}
	return []byte(fmt.Sprintf("\x1b[<%d;%d;%d%c", cb, col+1, row+1, final))
}

// EncodeMouseURXVT encodes a mouse event using the urxvt (1015) scheme:
// decimal coordinates with the X10 button offset, but no byte-range limit.
func EncodeMouseURXVT(row, col int, button MouseButton, kind MouseEventKind, mods MouseModifiers) []byte {
	cb := mouseCb(button, kind, mods)
	return []byte(fmt.Sprintf("\x1b[%d;%d;%dM", cb+32, col+1, row+1))
}

// SetMouseProtocol forces ReportMouseEvent to encode with the given
// protocol, overriding whatever the SGR/UTF8 mode bits would select. Mainly
// useful for urxvt (1015) reporting, which has no corresponding mode bit in
// the underlying decoder.
func (t *Screen) SetMouseProtocol(p MouseProtocol) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.mouseProtocolOverride = &p
}

// ClearMouseProtocolOverride reverts to deriving the mouse encoding from the
// SGR/UTF8 mode bits.
func (t *Screen) ClearMouseProtocolOverride() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.mouseProtocolOverride = nil
}

// mouseProtocolLocked picks the wire encoding for outgoing mouse reports.
// Caller must hold t.mu.
func (t *Screen) mouseProtocolLocked() MouseProtocol {
	if t.mouseProtocolOverride != nil {
		return *t.mouseProtocolOverride
	}
	if t.modes&ModeSGRMouse != 0 {
		return MouseProtocolSGR
	}
	if t.modes&ModeUTF8Mouse != 0 {
		return MouseProtocolUTF8
	}
	return MouseProtocolX10
}

// MouseReportingEnabled reports whether the currently active modes would
// have a mouse event of the given kind reported at all: clicks need at
// least click tracking (1000); motion needs cell-motion (1002) or
// any-motion (1003) tracking.
func (t *Screen) MouseReportingEnabled(kind MouseEventKind) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	switch kind {
	case MouseEventMotion:
		return t.modes&(ModeReportCellMouseMotion|ModeReportAllMouseMotion) != 0
	default:
		return t.modes&(ModeReportMouseClicks|ModeReportCellMouseMotion|ModeReportAllMouseMotion) != 0
	}
}

// ReportMouseEvent encodes and writes a mouse event to the response
// provider using whichever protocol the active modes (or an explicit
// SetMouseProtocol override) select. row/col are 0-based. Does nothing if
// mouse reporting is currently disabled for this event kind.
func (t *Screen) ReportMouseEvent(row, col int, button MouseButton, kind MouseEventKind, mods MouseModifiers) {
	if !t.MouseReportingEnabled(kind) {
		return
	}

	t.mu.Lock()
	proto := t.mouseProtocolLocked()
	t.mu.Unlock()

	var data []byte
	switch proto {
	case MouseProtocolSGR:
		data = EncodeMouseSGR(row, col, button, kind, mods)
	case MouseProtocolUTF8:
		data = EncodeMouseUTF8(row, col, button, kind, mods)
	case MouseProtocolURXVT:
		data = EncodeMouseURXVT(row, col, button, kind, mods)
	default:
		data = EncodeMouseX10(row, col, button, kind, mods)
	}

	t.writeResponse(data)
}
