package termcore

// Middleware intercepts a subset of Terminal's externally observable
// handler calls, letting an embedder run custom logic before/after the
// default implementation, or replace it outright. Each field wraps one
// handler: receive the original parameters and a next function that
// performs the default behavior.
//
// Only handlers an embedder plausibly wants to observe or override are
// wrapped here — bell, title, hyperlink, clipboard, desktop notifications,
// shell-integration marks, working directory, and user variables. Cursor
// motion, erase, and SGR dispatch run straight through dispatch_csi.go/
// dispatch_sgr.go without an interception point: they mutate Grid/Cursor
// state directly at a rate (thousands of calls per screen redraw) where a
// func-pointer indirection per cell write would be a real cost for a
// concern no embedder has asked to intercept.
type Middleware struct {
	// Bell wraps the bell (BEL) handler.
	Bell func(next func())

	// SetTitle wraps a window-title change (OSC 0/2).
	SetTitle func(title string, next func(string))

	// PushTitle wraps a title-stack push (CSI 22 t).
	PushTitle func(next func())

	// PopTitle wraps a title-stack pop (CSI 23 t).
	PopTitle func(next func())

	// SetHyperlink wraps an OSC 8 hyperlink open/close. hyperlink is nil
	// when the sequence closes the currently open link.
	SetHyperlink func(hyperlink *Hyperlink, next func(*Hyperlink))

	// ClipboardLoad wraps an OSC 52 read request.
	ClipboardLoad func(clipboard byte, next func(byte) string) string

	// ClipboardStore wraps an OSC 52 write request.
	ClipboardStore func(clipboard byte, data []byte, next func(byte, []byte))

	// DesktopNotification wraps the DesktopNotification handler (OSC 9/99).
	DesktopNotification func(payload *NotificationPayload, next func(*NotificationPayload))

	// ShellIntegrationMark wraps an OSC 133 shell-integration mark.
	ShellIntegrationMark func(mark ShellIntegrationMark, exitCode int, next func(ShellIntegrationMark, int))

	// SetWorkingDirectory wraps an OSC 7 working-directory update.
	SetWorkingDirectory func(uri string, next func(string))

	// SetUserVar wraps an OSC 1337 SetUserVar assignment.
	SetUserVar func(name, value string, next func(string, string))

	// ResetState wraps a full terminal reset (RIS / ESC c).
	ResetState func(next func())
}

// Merge copies non-nil middleware functions from other into this, overwriting existing values.
func (m *Middleware) Merge(other *Middleware) {
	if other == nil {
		return
	}

	if other.Bell != nil {
		m.Bell = other.Bell
	}
	if other.SetTitle != nil {
		m.SetTitle = other.SetTitle
	}
	if other.PushTitle != nil {
		m.PushTitle = other.PushTitle
	}
	if other.PopTitle != nil {
		m.PopTitle = other.PopTitle
	}
	if other.SetHyperlink != nil {
		m.SetHyperlink = other.SetHyperlink
	}
	if other.ClipboardLoad != nil {
		m.ClipboardLoad = other.ClipboardLoad
	}
	if other.ClipboardStore != nil {
		m.ClipboardStore = other.ClipboardStore
	}
	if other.DesktopNotification != nil {
		m.DesktopNotification = other.DesktopNotification
	}
	if other.ShellIntegrationMark != nil {
		m.ShellIntegrationMark = other.ShellIntegrationMark
	}
	if other.SetWorkingDirectory != nil {
		m.SetWorkingDirectory = other.SetWorkingDirectory
	}
	if other.SetUserVar != nil {
		m.SetUserVar = other.SetUserVar
	}
	if other.ResetState != nil {
		m.ResetState = other.ResetState
	}
}
