package termcore

// ShellIntegrationMark classifies an OSC 133 shell-integration marker (spec
// §4.6's FinalTerm/iTerm2-style prompt protocol).
type ShellIntegrationMark int

const (
	PromptStart ShellIntegrationMark = iota
	CommandStart
	CommandExecuted
	CommandFinished
)

// PromptMark stores information about a shell integration mark (OSC 133).
// Used for prompt-based navigation in scrollback.
type PromptMark struct {
	// Type is the mark type (PromptStart, CommandStart, CommandExecuted, CommandFinished).
	Type ShellIntegrationMark
	// Row is the absolute row position (including scrollback offset).
	Row int
	// ExitCode is the command exit code (only valid for CommandFinished marks, -1 otherwise).
	ExitCode int
}

// ShellIntegrationProvider handles shell integration events (OSC 133).
type ShellIntegrationProvider interface {
	// OnMark is called when a shell integration mark is received.
	OnMark(mark ShellIntegrationMark, exitCode int)
}

// NoopShellIntegration ignores all shell integration events.
type NoopShellIntegration struct{}

func (NoopShellIntegration) OnMark(mark ShellIntegrationMark, exitCode int) {}

var _ ShellIntegrationProvider = (*NoopShellIntegration)(nil)

// ShellIntegrationMark processes an assembled OSC 133 mark, routing through
// middleware if set. It is reached from OSC dispatch while Write's lock is
// already held, so neither it nor shellIntegrationMarkInternal take t.mu.
func (t *Terminal) ShellIntegrationMark(mark ShellIntegrationMark, exitCode int) {
	if t.middleware != nil && t.middleware.ShellIntegrationMark != nil {
		t.middleware.ShellIntegrationMark(mark, exitCode, t.shellIntegrationMarkInternal)
		return
	}
	t.shellIntegrationMarkInternal(mark, exitCode)
}

func (t *Terminal) shellIntegrationMarkInternal(mark ShellIntegrationMark, exitCode int) {
	absoluteRow := t.active.Cursor.Row + t.primary.Grid.HistoryLen()

	t.promptMarks = append(t.promptMarks, PromptMark{
		Type:     mark,
		Row:      absoluteRow,
		ExitCode: exitCode,
	})

	if t.shellIntegrationProvider != nil {
		t.shellIntegrationProvider.OnMark(mark, exitCode)
	}
}

// PromptMarks returns all recorded prompt marks.
func (t *Terminal) PromptMarks() []PromptMark {
	t.mu.RLock()
	defer t.mu.RUnlock()
	marks := make([]PromptMark, len(t.promptMarks))
	copy(marks, t.promptMarks)
	return marks
}

// PromptMarkCount returns the number of recorded prompt marks.
func (t *Terminal) PromptMarkCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.promptMarks)
}

// ClearPromptMarks removes all recorded prompt marks.
func (t *Terminal) ClearPromptMarks() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.promptMarks = nil
}

// NextPromptRow returns the absolute row of the next prompt mark after
// currentAbsRow, restricted to markType unless it is -1. Returns -1 if none.
func (t *Terminal) NextPromptRow(currentAbsRow int, markType ShellIntegrationMark) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, mark := range t.promptMarks {
		if mark.Row > currentAbsRow {
			if markType == -1 || mark.Type == markType {
				return mark.Row
			}
		}
	}
	return -1
}

// PrevPromptRow returns the absolute row of the previous prompt mark before
// currentAbsRow, restricted to markType unless it is -1. Returns -1 if none.
func (t *Terminal) PrevPromptRow(currentAbsRow int, markType ShellIntegrationMark) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for i := len(t.promptMarks) - 1; i >= 0; i-- {
		mark := t.promptMarks[i]
		if mark.Row < currentAbsRow {
			if markType == -1 || mark.Type == markType {
				return mark.Row
			}
		}
	}
	return -1
}

// GetPromptMarkAt returns the prompt mark at the given absolute row, or nil.
func (t *Terminal) GetPromptMarkAt(absRow int) *PromptMark {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for i := range t.promptMarks {
		if t.promptMarks[i].Row == absRow {
			mark := t.promptMarks[i]
			return &mark
		}
	}
	return nil
}

// SetShellIntegrationProvider sets the shell integration provider at runtime.
func (t *Terminal) SetShellIntegrationProvider(p ShellIntegrationProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.shellIntegrationProvider = p
}

// ShellIntegrationProviderValue returns the current shell integration provider.
func (t *Terminal) ShellIntegrationProviderValue() ShellIntegrationProvider {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.shellIntegrationProvider
}

// GetLastCommandOutput returns the text between the last CommandExecuted
// mark and the last CommandFinished mark that follows it, or "" if no
// complete command output is available.
func (t *Terminal) GetLastCommandOutput() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if len(t.promptMarks) == 0 {
		return ""
	}

	var lastExecuted, lastFinished *PromptMark
	for i := len(t.promptMarks) - 1; i >= 0; i-- {
		mark := &t.promptMarks[i]
		if lastFinished == nil && mark.Type == CommandFinished {
			lastFinished = mark
		}
		if lastExecuted == nil && mark.Type == CommandExecuted {
			lastExecuted = mark
		}
		if lastExecuted != nil && lastFinished != nil {
			if lastExecuted.Row < lastFinished.Row {
				break
			}
			lastFinished = nil
			lastExecuted = nil
		}
	}

	if lastExecuted == nil || lastFinished == nil {
		return ""
	}
	return t.extractTextBetweenRows(lastExecuted.Row, lastFinished.Row)
}

// extractTextBetweenRows joins the text of absolute rows [startRow, endRow),
// resolving each row against scrollback or the visible page as needed,
// dropping each row's trailing blank cells, and trims trailing empty lines.
func (t *Terminal) extractTextBetweenRows(startRow, endRow int) string {
	scrollbackLen := t.primary.Grid.HistoryLen()

	var lines []string
	for absRow := startRow; absRow < endRow; absRow++ {
		var lineContent string
		if absRow < scrollbackLen {
			line := t.primary.Grid.Line(absRow - scrollbackLen)
			if line != nil {
				lineContent = trimmedLineString(line)
			}
		} else {
			bufferRow := absRow - scrollbackLen
			if bufferRow >= 0 && bufferRow < t.rows {
				line := t.active.Grid.Line(bufferRow)
				if line != nil {
					lineContent = trimmedLineString(line)
				}
			}
		}
		lines = append(lines, lineContent)
	}

	lastNonEmpty := -1
	for i, line := range lines {
		if line != "" {
			lastNonEmpty = i
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
