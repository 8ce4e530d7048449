// Package screen implements the screen component of a VT100/xterm terminal
// emulator core: a cell grid with scrollback, cursor, modes, margins, tab
// stops, an alternate screen buffer, and resize reflow. It has no display of
// its own and no dependency on any particular PTY or transport, which makes
// it usable headless — for testing terminal applications, building
// multiplexers and recorders, or driving a renderer in a GUI.
//
// # Quick Start
//
//	s := screen.New()
//	s.Write([]byte("\x1b[31mHello \x1b[32mWorld\x1b[0m!"))
//	fmt.Println(s.String()) // "Hello World!"
//
// # Architecture
//
//   - [Screen]: the emulator; implements [ansicode.Handler] and dispatches
//     every parsed escape sequence to the matching method
//   - [Buffer]: a 2D grid of [Cell] values with scrollback support
//   - [Cell]: one grid position — a grapheme cluster, colors, and attributes
//   - [Cursor]: position and rendering style
//
// Screen owns a [github.com/danielgatis/go-ansicode.Decoder], which is the
// actual escape-sequence DFA; Screen only supplies the semantics.
//
// # Dual Buffers
//
// Screen maintains two buffers:
//
//   - Primary buffer: normal mode, backed by a [ScrollbackProvider]
//   - Alternate buffer: used by full-screen apps (vim, less, htop), no
//     scrollback, cleared on every entry
//
// Applications switch buffers with CSI ?1049h/l. Entering snapshots margins,
// modes, charset state, and the cursor (via the savepoint stack used by
// DECSC/DECRC); leaving restores them.
//
//	if s.IsAlternateScreen() {
//	    // full-screen app is running
//	}
//
// # Cells and Attributes
//
//	cell := s.Cell(row, col)
//	if cell != nil {
//	    fmt.Printf("Grapheme: %q\n", cell.Grapheme())
//	    fmt.Printf("Bold: %v\n", cell.HasFlag(screen.CellFlagBold))
//	    fmt.Printf("Width: %d\n", cell.Width())
//	}
//
// Combining marks following a base character fold into that cell's
// Combining slice rather than occupying a cell of their own. Rendering
// attributes are exposed via [Cell.StyleKey], an interned string so
// identically-styled cells compare equal by pointer-sized string compare
// instead of a field-by-field diff.
//
// # Colors
//
// Colors are stored using Go's [image/color] interface: [color.RGBA] for
// truecolor, [IndexedColor] for the 256-color palette, and [NamedColor] for
// semantic slots (default foreground/background, cursor, dim variants).
// [resolveDefaultColor] converts any of these to a concrete RGBA.
//
// # Scrollback
//
// Lines scrolled off the top of the primary buffer are retained by a
// [ScrollbackProvider]. The default, installed automatically by [New],
// retains 2000 lines and trims back down to that cap in amortized batches
// rather than on every push. Supply your own via [WithScrollback] — for
// example [NoopScrollback] to disable retention entirely.
//
// # Providers
//
// Providers handle terminal events and queries; all are optional with
// no-op defaults:
//
//   - [BellProvider]: bell/beep events
//   - [TitleProvider]: window title changes (OSC 0/1/2)
//   - [ClipboardProvider]: clipboard operations (OSC 52)
//   - [ScrollbackProvider]: lines scrolled off screen
//   - [RecordingProvider]: raw input capture for replay
//   - [SizeProvider]: pixel cell geometry for DSR size queries
//   - [ShellIntegrationProvider]: shell prompt marks (OSC 133)
//   - [APCProvider], [PMProvider], [SOSProvider]: APC/PM/SOS payloads
//
// # Middleware
//
// [Middleware] intercepts handler calls for logging, filtering, or
// overriding default behavior. Each field wraps one handler method and is
// given a next continuation to invoke the default implementation:
//
//	mw := &screen.Middleware{
//	    Bell: func(next func()) {
//	        log.Println("bell")
//	        // omit next() to suppress it
//	    },
//	}
//	s := screen.New(screen.WithMiddleware(mw))
//
// # Modes
//
//	s.HasMode(screen.ModeLineWrap)       // autowrap enabled?
//	s.HasMode(screen.ModeBracketedPaste) // bracketed paste enabled?
//
// See [TerminalMode] for the full set.
//
// # Dirty Tracking
//
//	if s.HasDirty() {
//	    for _, pos := range s.DirtyCells() {
//	        // redraw cell at pos.Row, pos.Col
//	    }
//	    s.ClearDirty()
//	}
//
// # Resize and Reflow
//
// Resize re-wraps logical lines at the new column width rather than simply
// truncating or padding rows, so shrinking and then growing back to the
// original width restores the original layout:
//
//	s.Resize(25, 5) // lines re-wrap at 5 columns
//
// # Thread Safety
//
// All Screen methods are safe for concurrent use via an internal
// [sync.RWMutex]. A process driver built on top of Screen is still expected
// to be the single writer feeding it parsed output, per the package's
// single-owner event-loop model; the lock exists to let readers (a renderer
// goroutine) observe state concurrently with that writer.
//
// Bitmap graphics (Sixel, Kitty) are out of scope: [Screen.SixelReceived]
// and the APC dispatch path are no-ops beyond forwarding unrecognized
// payloads to [APCProvider], so streams that emit them don't corrupt
// parser state, but no image data is stored or rendered.
package screen
