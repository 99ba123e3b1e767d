// Package termcore provides a headless VT220-compatible terminal emulator core.
//
// This package emulates a terminal without any display, making it ideal for:
//   - Testing terminal applications without a GUI
//   - Building terminal multiplexers and recorders
//   - Creating terminal-based web applications
//   - Automated testing of CLI tools
//   - Screen scraping and automation
//
// # Quick Start
//
// Create a terminal and write ANSI sequences to it:
//
//	term := termcore.New()
//	term.WriteString("\x1b[31mHello \x1b[32mWorld\x1b[0m!")
//	fmt.Println(term.String()) // "Hello World!"
//
// # Architecture
//
// The package is organized around these core types:
//
//   - [Terminal]: The main emulator that processes ANSI sequences
//   - [Screen]: A page [Grid] plus its [Cursor]; the Terminal has a primary and an alternate Screen
//   - [Grid]: The page's lines plus in-memory history, reflowed on resize
//   - [Cell]: A single character with colors and attributes
//   - [Cursor]: Tracks position and rendering style
//
// # Terminal
//
// Terminal is the main entry point. It implements [io.Writer] so you can write
// raw bytes containing ANSI escape sequences:
//
//	term := termcore.New(
//	    termcore.WithSize(24, 80),          // 24 rows, 80 columns
//	    termcore.WithScrollback(mirror),    // Optional external copy of scrolled-off lines
//	    termcore.WithResponse(ptyWriter),   // Handle terminal responses
//	)
//
//	// Process output from a command
//	cmd := exec.Command("ls", "-la", "--color")
//	cmd.Stdout = term
//	cmd.Run()
//
//	// Read the result
//	for row := 0; row < term.Rows(); row++ {
//	    fmt.Println(term.LineContent(row))
//	}
//
// # Dual Buffers
//
// Terminal maintains two buffers:
//
//   - Primary buffer: Normal mode with optional scrollback storage
//   - Alternate buffer: Used by full-screen apps (vim, less, htop), no scrollback
//
// Applications switch buffers via ANSI sequences (CSI ?1049h/l). Check which
// buffer is active:
//
//	if term.IsAlternateScreen() {
//	    // Full-screen app is running
//	}
//
// # Cells and Attributes
//
// Each cell stores a character with styling information:
//
//	cell, ok := term.Cell(row, col)
//	if ok {
//	    fmt.Printf("Char: %c\n", cell.Char)
//	    fmt.Printf("Bold: %v\n", cell.HasFlag(termcore.CellFlagBold))
//	    fmt.Printf("FG: %v\n", cell.Attrs.Foreground)
//	    fmt.Printf("BG: %v\n", cell.Attrs.Background)
//	}
//
// Cell flags include: Bold, Faint, Italic, the underline variants (Underline,
// DoublyUnderlined, CurlyUnderlined, DottedUnderline, DashedUnderline),
// Blinking, RapidBlinking, Inverse, Hidden, CrossedOut, Framed and Overline.
//
// # Colors
//
// Colors implement [Color], which embeds Go's [image/color.Color]. A cell's
// color is one of:
//
//   - [DefaultColor] (the terminal's default foreground or background)
//   - [IndexedColor] (256-color palette, indices 0-255)
//   - [BrightColor] (the 8 bright ANSI colors)
//   - [TrueColor] (24-bit RGB)
//
// Use [ResolveColor] to convert any color to RGBA:
//
//	rgba := termcore.ResolveColor(cell.Attrs.Foreground, true)
//
// # Scrollback
//
// Lines scrolled off the top of the primary screen are kept in the Grid's
// in-memory history (capped by [WithMaxScrollbackLines]). An embedder that
// also wants to persist them implements [ScrollbackProvider] and passes it to
// [WithScrollback]; it is pushed each line as it scrolls into history.
//
//	// Access scrollback
//	for i := 0; i < term.ScrollbackLen(); i++ {
//	    line := term.ScrollbackLine(i) // string; 0 is the oldest line
//	}
//
// # Responses
//
// The [ResponseProvider] (an io.Writer) receives replies to queries such as
// cursor position reports:
//
//	term := termcore.New(termcore.WithResponse(ptyWriter))
//
// # Providers
//
// Providers handle terminal events and queries. All are optional with no-op defaults:
//
//   - [BellProvider]: Handles bell/beep events
//   - [TitleProvider]: Handles window title changes (OSC 0/1/2)
//   - [ClipboardProvider]: Handles clipboard operations (OSC 52)
//   - [ScrollbackProvider]: Receives an external copy of lines scrolled off screen
//   - [RecordingProvider]: Captures raw input for replay
//   - [SizeProvider]: Provides pixel dimensions for queries
//   - [ShellIntegrationProvider]: Receives shell integration marks (OSC 133)
//   - [NotificationProvider]: Receives desktop notifications (OSC 9, OSC 99)
//   - [CaptureBufferSink]: Receives capture-buffer text
//   - [APCProvider], [PMProvider], [SOSProvider]: Receive APC, PM and SOS payloads
//
// Example with providers:
//
//	term := termcore.New(
//	    termcore.WithResponse(os.Stdout),
//	    termcore.WithBell(&MyBellHandler{}),
//	    termcore.WithTitle(&MyTitleHandler{}),
//	)
//
// # Middleware
//
// Middleware intercepts ANSI handler calls for custom behavior:
//
//	mw := &termcore.Middleware{
//	    SetTitle: func(title string, next func(string)) {
//	        log.Printf("Title: %s", title)
//	        next(title) // Call default handler
//	    },
//	    Bell: func(next func()) {
//	        log.Println("Bell!")
//	        // Don't call next() to suppress the bell
//	    },
//	}
//	term := termcore.New(termcore.WithMiddleware(mw))
//
// # Terminal Modes
//
// Various terminal behaviors are controlled by mode flags, read through
// the [ModeSet] that Modes returns:
//
//	modes := term.Modes()
//	modes.Dec(termcore.DecModeDECAWM)         // Auto line wrap enabled?
//	modes.Dec(termcore.DecModeBracketedPaste) // Bracketed paste enabled?
//
// See [DecMode] and [AnsiMode] for all available modes.
//
// # Selection
//
// Manage text selections for copy/paste:
//
//	term.SetSelection(
//	    termcore.Position{Row: 0, Col: 0},
//	    termcore.Position{Row: 2, Col: 10},
//	)
//	text := term.GetSelectedText()
//	term.ClearSelection()
//
// # Search
//
// Find text in the visible screen or scrollback:
//
//	matches := term.Search("error")
//	for _, pos := range matches {
//	    fmt.Printf("Found at row %d, col %d\n", pos.Row, pos.Col)
//	}
//
//	// Search scrollback (returns negative row numbers)
//	scrollbackMatches := term.SearchScrollback("error")
//
// # Snapshots
//
// Capture the terminal state for serialization or rendering:
//
//	// Text only (smallest)
//	snap := term.Snapshot(termcore.SnapshotDetailText)
//
//	// With style segments (good for HTML rendering)
//	snap := term.Snapshot(termcore.SnapshotDetailStyled)
//
//	// Full per-cell data
//	snap := term.Snapshot(termcore.SnapshotDetailFull)
//
//	// Convert to JSON
//	data, _ := json.Marshal(snap)
//
// Snapshot attributes are booleans: bold, dim, italic, underline, blink,
// reverse, hidden, strikethrough and overline. Colors are "#rrggbb" strings.
// Snapshot.Images holds image placement metadata without pixel data;
// GetImageData returns an image's pixels.
//
// # Image Support
//
// The terminal supports inline images via Sixel and Kitty graphics protocols:
//
//	// Check if images are enabled
//	if term.SixelEnabled() || term.KittyEnabled() {
//	    // Process image sequences
//	}
//
//	// Access stored images
//	for _, placement := range term.ImagePlacements() {
//	    img := term.Image(placement.ImageID)
//	    // img.Data contains RGBA pixels
//	}
//
//	// Configure image memory budget
//	term.SetImageMaxMemory(100 * 1024 * 1024) // 100MB
//
// # Shell Integration
//
// Track shell prompts and command output (OSC 133):
//
//	term := termcore.New(
//	    termcore.WithShellIntegration(&MyHandler{}),
//	)
//
//	// Navigate between prompts (absolute rows count scrollback lines first)
//	currentAbsRow := term.ScrollbackLen() + 0 // viewport row 0 as an absolute row
//	nextAbsRow := term.NextPromptRow(currentAbsRow, -1) // -1 if none
//	prevAbsRow := term.PrevPromptRow(currentAbsRow, -1)
//
//	// Convert absolute row back to viewport for display
//	viewportRow := nextAbsRow - term.ScrollbackLen() // negative if in scrollback
//
//	// Get last command output
//	output := term.GetLastCommandOutput()
//
// # Thread Safety
//
// Write and the state accessors (Cell, LineContent, String, Snapshot, Search
// and the like) synchronize on one internal RWMutex, so one goroutine can
// feed PTY output while another reads. A sequence of several calls is not
// atomic as a whole.
//
// # Supported ANSI Sequences
//
// The terminal supports a comprehensive set of ANSI escape sequences including:
//
//   - Cursor movement (CUU, CUD, CUF, CUB, CUP, HVP, etc.)
//   - Cursor save/restore (DECSC, DECRC)
//   - Erase commands (ED, EL, ECH)
//   - Insert/delete (ICH, DCH, IL, DL)
//   - Scrolling (SU, SD, DECSTBM)
//   - Character attributes (SGR) with full color support
//   - Terminal modes (DECSET, DECRST)
//   - Device status reports (DSR)
//   - Alternate screen buffer
//   - Bracketed paste mode
//   - Mouse reporting
//   - Window title (OSC 0/1/2)
//   - Clipboard (OSC 52)
//   - Hyperlinks (OSC 8)
//   - Shell integration (OSC 133)
//   - Sixel and Kitty graphics
//
// For the complete list of supported sequences, see dispatch.go and its
// dispatch_*.go siblings, organized one file per sequence category.
package termcore
