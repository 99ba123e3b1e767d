package termcore

import (
	"image/color"
	"sync"
)

const (
	// DefaultRows is the default number of terminal rows.
	DefaultRows = 24
	// DefaultCols is the default number of terminal columns.
	DefaultCols = 80
	// defaultMaxHistoryLines is the default scrollback cap (spec §4.4).
	defaultMaxHistoryLines = 10000
)

// Position identifies a cell by (row, col). Row is relative to the active
// screen's visible area; a negative row addresses scrollback, where -1 is
// the most recent scrollback line (spec §4.4's negative-indexed history).
type Position struct {
	Row, Col int
}

// Before reports whether p sorts earlier than other in reading order.
func (p Position) Before(other Position) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Col < other.Col
}

// Selection is the spec §3 Selection. Start/End is always kept normalized
// (Start before or equal to End in reading order) except under
// SelectionRectangular, where Start/End instead mark the two opposite
// corners of a column-bounded block and rows/columns are each normalized
// independently by the accessors in selection.go.
type Selection struct {
	Start  Position
	End    Position
	Active bool
	Mode   SelectionMode

	// anchor is the fixed end of the drag that started the selection. It
	// never moves as the selection grows; Start/End are re-derived from it
	// and the current free-end position on every extend, which is what
	// lets dragging back past the anchor flip Start/End without losing
	// track of which corner is fixed.
	anchor Position
}

// ExecutionMode is the spec §4.12 debugging affordance: the writer lane can
// be suspended at the end of each Write call, either until Step or until
// Continue, so an embedder can replay a capture one Write at a time. The
// sequences inside a single Write call are processed without a break.
type ExecutionMode int

const (
	// ExecNormal runs the writer lane without suspension.
	ExecNormal ExecutionMode = iota
	// ExecWaiting suspends after every Write call until Continue, Step or a
	// mode change releases it.
	ExecWaiting
	// ExecSingleStep suspends after every Write call until Step is called once.
	ExecSingleStep
	// ExecBreakAtEmptyQueue suspends once a Write call's bytes are fully
	// processed, letting the writer lane run freely within one call; it is
	// released the same way as ExecWaiting.
	ExecBreakAtEmptyQueue
)

// Terminal is the spec §4.12 Terminal Facade: it owns the primary and
// alternate Screens, the hyperlink registry, the image pool, and the
// parser/assembler pipeline that feeds it, and exposes the embedder-facing
// entry points (write_from_pty, send_input, resize, render). A single coarse
// RWMutex protects screen/cursor/selection/mode state across the writer lane
// (PTY reader) and reader lane (renderer), per spec §5.
type Terminal struct {
	mu sync.RWMutex

	rows, cols int

	primary   *Screen
	alternate *Screen
	active    *Screen

	modes      *ModeSet
	hyperlinks *HyperlinkRegistry
	images     *ImageManager

	parser    *Parser
	assembler *Assembler

	widthPolicy WidthPolicy

	title      string
	titleStack []string
	workingDir string
	userVars   map[string]string

	// pendingHyperlink accumulates an OSC 8 URI/id before it is registered
	// and applied to the cursor's write-under template.
	pendingHyperlinkURI string
	pendingHyperlinkID  string

	promptMarks []PromptMark

	selection Selection

	logger     Logger
	middleware *Middleware

	responseProvider         ResponseProvider
	bellProvider             BellProvider
	titleProvider            TitleProvider
	apcProvider              APCProvider
	pmProvider               PMProvider
	sosProvider              SOSProvider
	clipboardProvider        ClipboardProvider
	scrollbackMirror         ScrollbackProvider
	recordingProvider        RecordingProvider
	shellIntegrationProvider ShellIntegrationProvider
	sizeProvider             SizeProvider
	notificationProvider     NotificationProvider
	captureBufferSink        CaptureBufferSink

	sixelEnabled bool
	kittyEnabled bool

	// kittyKeyboardStack is the push/pop stack CSI > f u / CSI < u / CSI =
	// f ; m u operate on (spec §4.9); the active flag set is the top entry,
	// or the DecModeKittyKeyboard fallback in kittyFlagsLocked when empty.
	kittyKeyboardStack []KittyKeyboardFlag

	// locator holds DEC locator (DECELR/DECEFR/DECRQLP) state.
	locator locatorState

	maxHistoryLines int

	// Execution-mode debugging affordance (spec §4.12/§5).
	execMu    sync.Mutex
	execCond  *sync.Cond
	execMode  ExecutionMode
	stepArmed bool
}

// Option configures a Terminal during construction.
type Option func(*Terminal)

// WithSize sets the terminal dimensions. Values <= 0 are replaced with
// defaults (24x80).
func WithSize(rows, cols int) Option {
	if rows <= 0 {
		rows = DefaultRows
	}
	if cols <= 0 {
		cols = DefaultCols
	}
	return func(t *Terminal) {
		t.rows = rows
		t.cols = cols
	}
}

// WithMaxScrollbackLines sets the primary screen's history cap.
func WithMaxScrollbackLines(n int) Option {
	return func(t *Terminal) { t.maxHistoryLines = n }
}

// WithLogger sets the diagnostic sink for recovered internal conditions.
func WithLogger(l Logger) Option {
	return func(t *Terminal) { t.logger = l }
}

// WithResponse sets the writer for terminal responses (e.g. cursor position
// reports). If nil, responses are discarded.
func WithResponse(p ResponseProvider) Option {
	return func(t *Terminal) { t.responseProvider = p }
}

// WithBell sets the handler for bell/beep events.
func WithBell(p BellProvider) Option {
	return func(t *Terminal) { t.bellProvider = p }
}

// WithTitle sets the handler for window title changes.
func WithTitle(p TitleProvider) Option {
	return func(t *Terminal) { t.titleProvider = p }
}

// WithAPC sets the handler for Application Program Command sequences.
func WithAPC(p APCProvider) Option {
	return func(t *Terminal) { t.apcProvider = p }
}

// WithPM sets the handler for Privacy Message sequences.
func WithPM(p PMProvider) Option {
	return func(t *Terminal) { t.pmProvider = p }
}

// WithSOS sets the handler for Start of String sequences.
func WithSOS(p SOSProvider) Option {
	return func(t *Terminal) { t.sosProvider = p }
}

// WithClipboard sets the handler for clipboard read/write operations (OSC 52).
func WithClipboard(p ClipboardProvider) Option {
	return func(t *Terminal) { t.clipboardProvider = p }
}

// WithScrollback sets an external mirror that is pushed every line that
// scrolls off the top of the primary screen's page into the Grid's in-memory
// history. Lines that Resize moves between the page and history are not
// mirrored, and the mirror is never read back. The Grid remains
// the source of truth for in-memory reads; this exists purely so an
// embedder can persist scrollback externally.
func WithScrollback(mirror ScrollbackProvider) Option {
	return func(t *Terminal) { t.scrollbackMirror = mirror }
}

// WithMiddleware sets functions to intercept handler calls. Each middleware
// receives the original parameters and a next function to call the default
// implementation.
func WithMiddleware(mw *Middleware) Option {
	return func(t *Terminal) {
		if t.middleware == nil {
			t.middleware = &Middleware{}
		}
		t.middleware.Merge(mw)
	}
}

// WithRecording sets the handler for capturing raw input bytes before ANSI
// parsing.
func WithRecording(p RecordingProvider) Option {
	return func(t *Terminal) { t.recordingProvider = p }
}

// WithShellIntegration sets the handler for shell integration events (OSC 133).
func WithShellIntegration(p ShellIntegrationProvider) Option {
	return func(t *Terminal) { t.shellIntegrationProvider = p }
}

// WithSizeProvider sets the provider for pixel dimension queries.
func WithSizeProvider(p SizeProvider) Option {
	return func(t *Terminal) { t.sizeProvider = p }
}

// WithNotification sets the handler for desktop notification requests (OSC 9/99).
func WithNotification(p NotificationProvider) Option {
	return func(t *Terminal) { t.notificationProvider = p }
}

// WithCaptureBuffer sets the sink for capture-buffer replies.
func WithCaptureBuffer(p CaptureBufferSink) Option {
	return func(t *Terminal) { t.captureBufferSink = p }
}

// WithSixel enables or disables Sixel graphics protocol support. Default true.
func WithSixel(enabled bool) Option {
	return func(t *Terminal) { t.sixelEnabled = enabled }
}

// WithKitty enables or disables Kitty graphics protocol support. Default true.
func WithKitty(enabled bool) Option {
	return func(t *Terminal) { t.kittyEnabled = enabled }
}

// WithWidthPolicy overrides the default (conservative) variation-selector
// width policy. See WidthPolicy: Print does not apply it to a following
// variation selector, so it does not change cell widths.
func WithWidthPolicy(p WidthPolicy) Option {
	return func(t *Terminal) { t.widthPolicy = p }
}

// SixelEnabled returns true if Sixel graphics protocol is enabled.
func (t *Terminal) SixelEnabled() bool { return t.sixelEnabled }

// KittyEnabled returns true if Kitty graphics protocol is enabled.
func (t *Terminal) KittyEnabled() bool { return t.kittyEnabled }

// New creates a terminal with the given options. Defaults to 24x80 with
// line wrap and cursor visible.
func New(opts ...Option) *Terminal {
	t := &Terminal{
		rows:              DefaultRows,
		cols:              DefaultCols,
		widthPolicy:       DefaultWidthPolicy,
		bellProvider:      NoopBell{},
		titleProvider:     NoopTitle{},
		apcProvider:       NoopAPC{},
		pmProvider:        NoopPM{},
		sosProvider:       NoopSOS{},
		clipboardProvider: NoopClipboard{},
		scrollbackMirror:  NoopScrollback{},
		recordingProvider: NoopRecording{},
		notificationProvider: NoopNotification{},
		sizeProvider:      NoopSize{},
		captureBufferSink: NoopCaptureBuffer{},
		sixelEnabled:      true,
		kittyEnabled:      true,
		maxHistoryLines:   defaultMaxHistoryLines,
		logger:            noopLogger{},
		userVars:          make(map[string]string),
	}

	for _, opt := range opts {
		opt(t)
	}

	t.primary = NewScreen(t.cols, t.rows, true, t.maxHistoryLines)
	t.alternate = NewScreen(t.cols, t.rows, false, 0)
	t.active = t.primary
	t.primary.Grid.OnEvict = t.mirrorEvictedLine

	t.modes = NewModeSet()
	t.hyperlinks = NewHyperlinkRegistry()
	t.hyperlinks.SetLogger(t.logger)
	t.images = NewImageManager()

	t.parser, t.assembler = NewPipeline(t, t)
	t.parser.SetLogger(t.logger)

	t.execCond = sync.NewCond(&t.execMu)

	return t
}

// --- Write path ---

// Write implements io.Writer: it records the bytes (if a recording provider
// is set) then drives them through the parser -> assembler -> dispatcher
// pipeline, mutating screen state. Safe to call from a dedicated PTY reader
// goroutine (spec §4.12/§5's "writer lane").
func (t *Terminal) Write(data []byte) (int, error) {
	t.recordingProvider.Record(data)

	t.mu.Lock()
	t.parser.AdvanceBytes(data)
	t.mu.Unlock()

	if t.execMode != ExecNormal {
		t.maybeBreak()
	}

	return len(data), nil
}

// WriteFromPTY is the spec §4.12 entry point name; it is equivalent to Write.
func (t *Terminal) WriteFromPTY(data []byte) (int, error) { return t.Write(data) }

// WriteString is a convenience method that converts the string to bytes and
// calls Write.
func (t *Terminal) WriteString(s string) (int, error) { return t.Write([]byte(s)) }

// Print implements Printer: it receives decoded Ground-state codepoints
// from the parser. GL-range bytes (<0x80) are routed through the active
// charset mapping; anything decoded from multi-byte UTF-8 bypasses charset
// translation entirely (spec §4.3).
func (t *Terminal) Print(r rune) {
	cur := t.active.Cursor
	if r < 0x80 {
		r = cur.Charsets.Translate(byte(r))
	}

	if isCombiningMark(r) {
		t.active.AppendCombining(r)
		return
	}

	width, _ := adjustedWidth(r, 0, t.widthPolicy)
	if width <= 0 {
		return
	}

	attrs := cur.SGR
	if cur.Protected {
		attrs.Flags |= CellFlagProtected
	}
	insertMode := t.modes.Ansi(ModeIRM)
	t.active.WritePrintable(r, width, attrs, cur.Hyperlink, insertMode)
}

// --- Execution-mode suspension (spec §4.12/§5) ---

// SetExecutionMode switches the debugging execution mode.
func (t *Terminal) SetExecutionMode(m ExecutionMode) {
	t.execMu.Lock()
	t.execMode = m
	t.execCond.Broadcast()
	t.execMu.Unlock()
}

// ExecutionMode returns the current execution mode.
func (t *Terminal) ExecutionMode() ExecutionMode {
	t.execMu.Lock()
	defer t.execMu.Unlock()
	return t.execMode
}

// Continue releases a Waiting suspension.
func (t *Terminal) Continue() {
	t.execMu.Lock()
	t.execCond.Broadcast()
	t.execMu.Unlock()
}

// Step releases a single SingleStep suspension.
func (t *Terminal) Step() {
	t.execMu.Lock()
	t.stepArmed = true
	t.execCond.Broadcast()
	t.execMu.Unlock()
}

// maybeBreak suspends the calling (writer-lane) goroutine according to the
// current execution mode. Called after a Write batch completes.
func (t *Terminal) maybeBreak() {
	t.execMu.Lock()
	defer t.execMu.Unlock()
	switch t.execMode {
	case ExecWaiting, ExecBreakAtEmptyQueue:
		// Continue, Step and SetExecutionMode all broadcast, so one wakeup
		// ends the suspension.
		t.execCond.Wait()
	case ExecSingleStep:
		for !t.stepArmed && t.execMode == ExecSingleStep {
			t.execCond.Wait()
		}
		t.stepArmed = false
	}
}

// --- Geometry & cursor accessors ---

// Rows returns the terminal height in character rows.
func (t *Terminal) Rows() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.rows
}

// Cols returns the terminal width in character columns.
func (t *Terminal) Cols() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cols
}

// Cell returns a copy of the cell at (row, col) in the active screen.
// Returns (Cell{}, false) if out of bounds.
func (t *Terminal) Cell(row, col int) (Cell, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	line := t.active.Grid.Line(row)
	if line == nil || col < 0 || col >= t.active.Grid.width {
		return Cell{}, false
	}
	return line.CellAt(col), true
}

// CursorPos returns the current cursor position (0-based).
func (t *Terminal) CursorPos() (row, col int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active.Cursor.Row, t.active.Cursor.Col
}

// CursorVisible returns true if the cursor is currently visible.
func (t *Terminal) CursorVisible() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active.Cursor.Visible
}

// CursorStyle returns the current cursor rendering style.
func (t *Terminal) CursorStyle() CursorStyle {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active.Cursor.Style
}

// Title returns the current window title string.
func (t *Terminal) Title() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.title
}

// IsAlternateScreen returns true if the alternate screen is currently active.
func (t *Terminal) IsAlternateScreen() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active == t.alternate
}

// IsWrapped returns true if row's content continues onto the next row
// because it overflowed the right margin under auto-wrap, as opposed to
// ending there because of an explicit newline.
func (t *Terminal) IsWrapped(row int) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	line := t.active.Grid.Line(row)
	if line == nil {
		return false
	}
	return line.Wrapped
}

// ScrollRegion returns the current top/bottom scrolling margins (0-based,
// inclusive).
func (t *Terminal) ScrollRegion() (top, bottom int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active.Margins.Top, t.active.Margins.Bottom
}

// Modes exposes the active mode set for read-only inspection.
func (t *Terminal) Modes() *ModeSet { return t.modes }

// Resize changes the terminal dimensions and reflows both screens. Invalid
// dimensions (<= 0) are ignored.
func (t *Terminal) Resize(rows, cols int) {
	if rows <= 0 || cols <= 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rows, t.cols = rows, cols
	t.primary.Resize(cols, rows)
	t.alternate.Resize(cols, rows)
}

// --- Scrollback ---

// ScrollbackLen returns the number of lines stored in scrollback (primary
// screen only).
func (t *Terminal) ScrollbackLen() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.primary.Grid.HistoryLen()
}

// ScrollbackLine returns the text of a scrollback line, where 0 is the
// oldest line. Returns empty string if index is out of range.
func (t *Terminal) ScrollbackLine(index int) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := t.primary.Grid.HistoryLen()
	if index < 0 || index >= n {
		return ""
	}
	line := t.primary.Grid.Line(index - n)
	if line == nil {
		return ""
	}
	return string(line.Runes())
}

// ClearScrollback removes all stored scrollback lines.
func (t *Terminal) ClearScrollback() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.primary.Grid.history = nil
}

// SetMaxScrollback sets the maximum number of scrollback lines retained.
func (t *Terminal) SetMaxScrollback(max int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.primary.Grid.maxHistoryLines = max
	if len(t.primary.Grid.history) > max {
		t.primary.Grid.history = t.primary.Grid.history[len(t.primary.Grid.history)-max:]
	}
}

// MaxScrollback returns the current maximum scrollback capacity.
func (t *Terminal) MaxScrollback() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.primary.Grid.maxHistoryLines
}

// mirrorEvictedLine pushes a line scrolled out of the visible page to the
// external scrollback mirror, as a snapshot of its cells.
func (t *Terminal) mirrorEvictedLine(l Line) {
	w := l.Width()
	if w == 0 {
		t.scrollbackMirror.Push(nil)
		return
	}
	cells := make([]Cell, w)
	for c := 0; c < w; c++ {
		cells[c] = l.CellAt(c)
	}
	t.scrollbackMirror.Push(cells)
}

// --- Providers: setters/getters ---

func (t *Terminal) SetResponseProvider(p ResponseProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.responseProvider = p
}
func (t *Terminal) ResponseProvider() ResponseProvider {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.responseProvider
}

func (t *Terminal) SetBellProvider(p BellProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bellProvider = p
}
func (t *Terminal) BellProvider() BellProvider {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.bellProvider
}

func (t *Terminal) SetTitleProvider(p TitleProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.titleProvider = p
}
func (t *Terminal) TitleProvider() TitleProvider {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.titleProvider
}

func (t *Terminal) SetAPCProvider(p APCProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.apcProvider = p
}
func (t *Terminal) APCProvider() APCProvider {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.apcProvider
}

func (t *Terminal) SetPMProvider(p PMProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pmProvider = p
}
func (t *Terminal) PMProvider() PMProvider {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pmProvider
}

func (t *Terminal) SetSOSProvider(p SOSProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sosProvider = p
}
func (t *Terminal) SOSProvider() SOSProvider {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sosProvider
}

func (t *Terminal) SetClipboardProvider(p ClipboardProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clipboardProvider = p
}
func (t *Terminal) ClipboardProvider() ClipboardProvider {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.clipboardProvider
}

func (t *Terminal) SetScrollbackProvider(p ScrollbackProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scrollbackMirror = p
}
func (t *Terminal) ScrollbackProvider() ScrollbackProvider {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.scrollbackMirror
}

func (t *Terminal) SetMiddleware(mw *Middleware) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.middleware = mw
}
func (t *Terminal) Middleware() *Middleware {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.middleware
}

func (t *Terminal) SetRecordingProvider(p RecordingProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.recordingProvider = p
}
func (t *Terminal) RecordingProvider() RecordingProvider {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.recordingProvider
}
func (t *Terminal) RecordedData() []byte {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.recordingProvider.Data()
}
func (t *Terminal) ClearRecording() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.recordingProvider.Clear()
}

func (t *Terminal) SetSizeProvider(p SizeProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sizeProvider = p
}
func (t *Terminal) SizeProvider() SizeProvider {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sizeProvider
}

func (t *Terminal) SetNotificationProvider(p NotificationProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.notificationProvider = p
}
func (t *Terminal) NotificationProvider() NotificationProvider {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.notificationProvider
}

func (t *Terminal) SetCaptureBufferSink(p CaptureBufferSink) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.captureBufferSink = p
}
func (t *Terminal) CaptureBufferSink() CaptureBufferSink {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.captureBufferSink
}

// DesktopNotification routes an assembled OSC 9/99 payload to the
// notification provider (through middleware, if any) and writes back
// whatever the provider returns (e.g. a query response).
// DesktopNotification is called both from OSC 9/99 dispatch (already running
// under Write's held lock) and directly by embedders, so it and everything
// it calls must never take t.mu itself.
func (t *Terminal) DesktopNotification(payload *NotificationPayload) {
	mw := t.middleware

	deliver := t.desktopNotificationInternal
	if mw != nil && mw.DesktopNotification != nil {
		mw.DesktopNotification(payload, deliver)
		return
	}
	deliver(payload)
}

func (t *Terminal) desktopNotificationInternal(payload *NotificationPayload) {
	provider := t.notificationProvider
	if provider == nil {
		return
	}
	reply := provider.Notify(payload)
	if reply != "" {
		t.writeResponseString(reply)
	}
}

// writeResponse writes a response back via the response provider if set. It
// is reached from dispatch while Write's single write-lane lock is held, so
// it never acquires t.mu.
func (t *Terminal) writeResponse(data []byte) {
	if t.responseProvider != nil {
		t.responseProvider.Write(data)
	}
}

func (t *Terminal) writeResponseString(s string) { t.writeResponse([]byte(s)) }

// --- Selection ---

// SetSelection sets the active text selection region, normalizing so Start
// is before or equal to End.
func (t *Terminal) SetSelection(start, end Position) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if end.Before(start) {
		start, end = end, start
	}
	t.selection = Selection{Start: start, End: end, Active: true, Mode: SelectionLinear}
}

// ClearSelection deactivates the current selection.
func (t *Terminal) ClearSelection() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selection.Active = false
}

// GetSelection returns the current selection state.
func (t *Terminal) GetSelection() Selection {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.selection
}

// HasSelection returns true if a selection is currently active.
func (t *Terminal) HasSelection() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.selection.Active
}

// IsSelected returns true if (row, col) falls within the active selection.
func (t *Terminal) IsSelected(row, col int) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.selection.Active {
		return false
	}
	if t.selection.Mode == SelectionRectangular {
		top, bottom, left, right := t.selection.rectangularBounds()
		return row >= top && row <= bottom && col >= left && col <= right
	}
	pos := Position{Row: row, Col: col}
	if pos.Before(t.selection.Start) || t.selection.End.Before(pos) {
		return false
	}
	return true
}

// GetSelectedText extracts the text content within the active selection.
func (t *Terminal) GetSelectedText() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.selection.Active {
		return ""
	}
	if t.selection.Mode == SelectionRectangular {
		return t.rectangularSelectedText()
	}
	start, end := t.selection.Start, t.selection.End
	var result []rune
	for row := start.Row; row <= end.Row && row < t.rows; row++ {
		line := t.active.Grid.Line(row)
		startCol, endCol := 0, t.cols
		if row == start.Row {
			startCol = start.Col
		}
		if row == end.Row {
			endCol = end.Col + 1
		}
		for col := startCol; col < endCol && col < t.cols; col++ {
			if line == nil {
				result = append(result, ' ')
				continue
			}
			c := line.CellAt(col)
			if c.IsWideContinuation() {
				continue
			}
			result = append(result, c.Char)
		}
		if row < end.Row {
			result = append(result, '\n')
		}
	}
	return string(result)
}

// --- Convenience text access ---

// LineContent returns the text content of a row, trimming trailing spaces.
func (t *Terminal) LineContent(row int) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	line := t.active.Grid.Line(row)
	if line == nil {
		return ""
	}
	return trimmedLineString(line)
}

// trimmedLineString renders a line's runes with trailing blank cells dropped.
// trimTrailingBlanks returns the end of the non-blank content, so Width()
// minus it is the number of trailing blank cells; since that trailing run is never a wide char or its continuation, it maps
// 1:1 onto trailing entries of Runes() even though Runes() itself collapses
// wide-continuation cells earlier in the line.
func trimmedLineString(line *Line) string {
	runes := line.Runes()
	trimCount := line.Width() - line.trimTrailingBlanks()
	if trimCount < 0 {
		trimCount = 0
	}
	if trimCount > len(runes) {
		trimCount = len(runes)
	}
	return string(runes[:len(runes)-trimCount])
}

// String returns the visible screen content as a newline-separated string,
// omitting trailing empty lines.
func (t *Terminal) String() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	lines := make([]string, t.rows)
	lastNonEmpty := -1
	for row := 0; row < t.rows; row++ {
		line := t.active.Grid.Line(row)
		if line != nil {
			lines[row] = trimmedLineString(line)
		}
		if lines[row] != "" {
			lastNonEmpty = row
		}
	}
	if lastNonEmpty < 0 {
		return ""
	}
	result := ""
	for i := 0; i <= lastNonEmpty; i++ {
		if i > 0 {
			result += "\n"
		}
		result += lines[i]
	}
	return result
}

// Search finds all occurrences of pattern in the visible screen content.
func (t *Terminal) Search(pattern string) []Position {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if pattern == "" {
		return nil
	}
	var matches []Position
	patternRunes := []rune(pattern)
	for row := 0; row < t.rows; row++ {
		line := t.active.Grid.Line(row)
		if line == nil {
			continue
		}
		lineRunes := line.Runes()
		for col := 0; col <= len(lineRunes)-len(patternRunes); col++ {
			if runesEqual(lineRunes[col:col+len(patternRunes)], patternRunes) {
				matches = append(matches, Position{Row: row, Col: col})
			}
		}
	}
	return matches
}

// SearchScrollback finds all occurrences of pattern in scrollback lines.
// Returned rows are negative, where -1 is the most recent scrollback line.
func (t *Terminal) SearchScrollback(pattern string) []Position {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if pattern == "" {
		return nil
	}
	var matches []Position
	patternRunes := []rune(pattern)
	n := t.primary.Grid.HistoryLen()
	for i := 0; i < n; i++ {
		line := t.primary.Grid.Line(i - n)
		if line == nil {
			continue
		}
		lineRunes := line.Runes()
		for col := 0; col <= len(lineRunes)-len(patternRunes); col++ {
			if runesEqual(lineRunes[col:col+len(patternRunes)], patternRunes) {
				matches = append(matches, Position{Row: -(n - i), Col: col})
			}
		}
	}
	return matches
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// --- Image accessors ---

func (t *Terminal) Image(id uint32) *ImageData       { return t.images.Image(id) }
func (t *Terminal) ImagePlacements() []*ImagePlacement { return t.images.Placements() }
func (t *Terminal) ImageCount() int                   { return t.images.ImageCount() }
func (t *Terminal) ImagePlacementCount() int          { return t.images.PlacementCount() }
func (t *Terminal) ImageUsedMemory() int64            { return t.images.UsedMemory() }
func (t *Terminal) SetImageMaxMemory(bytes int64)     { t.images.SetMaxMemory(bytes) }
func (t *Terminal) ClearImages()                      { t.images.Clear() }

// --- Working directory (OSC 7) ---

func (t *Terminal) WorkingDirectory() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.workingDir
}

// WorkingDirectoryPath returns the filesystem path component of the last
// OSC 7 URI, stripping the "file://host" prefix regardless of whether the
// shell reported a hostname.
func (t *Terminal) WorkingDirectoryPath() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.workingDir == "" {
		return ""
	}
	return ExtractPathFromFileURL(t.workingDir)
}

// --- User variables (OSC 1337) ---

func (t *Terminal) UserVar(name string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.userVars[name]
	return v, ok
}

func (t *Terminal) UserVars() map[string]string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]string, len(t.userVars))
	for k, v := range t.userVars {
		out[k] = v
	}
	return out
}

func (t *Terminal) ClearUserVars() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.userVars = make(map[string]string)
}

var _ = color.RGBA{}
