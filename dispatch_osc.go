package termcore

import (
	"encoding/base64"
	"strconv"
	"strings"
)

// dispatchOsc routes an assembled OSC sequence by its leading numeric
// parameter (spec §4.6), which Assembler.applyOscNumericPrefix already
// peeled off into Params.Values[0] with the remainder left in Data. Like
// dispatchCsi, this runs under Write's held lock, so nothing here takes
// t.mu itself.
func (t *Terminal) dispatchOsc(seq *Sequence) {
	if seq.Params.Count == 0 {
		t.diagnostic(ErrUnknownSequence, "OSC with no numeric prefix")
		return
	}

	switch seq.Params.GetRaw(0, -1) {
	case 0: // icon name + window title
		t.setTitle(string(seq.Data))
	case 1: // icon name only
		// No separate icon-name slot is tracked; treated as a no-op.
	case 2: // window title only
		t.setTitle(string(seq.Data))
	case 4:
		t.dispatchOscColorTable(seq.Data)
	case 7: // current working directory (file://host/path or bare path)
		t.setWorkingDirectory(string(seq.Data))
	case 8:
		t.dispatchOscHyperlink(seq.Data)
	case 9:
		t.dispatchOscGrowlNotification(seq.Data)
	case 10, 11, 12:
		// Dynamic foreground/background/cursor color get/set: the palette
		// resolver (colors.go) has no per-terminal override slot, and no
		// component in this tree consumes one, so these are acknowledged
		// but not applied.
	case 22:
		// Set mouse cursor shape: cosmetic, no screen-state effect.
	case 52:
		t.dispatchOscClipboard(seq.Data)
	case 99:
		t.dispatchOscNotification(seq.Data)
	case 133:
		t.dispatchOscShellIntegration(seq.Data)
	case 1337:
		t.dispatchOscITerm2(seq.Data)
	default:
		t.diagnostic(ErrUnknownSequence, "unhandled OSC %d", seq.Params.GetRaw(0, -1))
	}
}

func (t *Terminal) setTitle(title string) {
	do := func(title string) {
		t.title = title
		t.titleProvider.SetTitle(title)
	}
	if t.middleware != nil && t.middleware.SetTitle != nil {
		t.middleware.SetTitle(title, do)
		return
	}
	do(title)
}

func (t *Terminal) setWorkingDirectory(uri string) {
	if rest, ok := strings.CutPrefix(uri, "file://"); ok {
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			rest = rest[i:]
		}
		uri = rest
	}
	do := func(uri string) { t.workingDir = uri }
	if t.middleware != nil && t.middleware.SetWorkingDirectory != nil {
		t.middleware.SetWorkingDirectory(uri, do)
		return
	}
	do(uri)
}

// dispatchOscColorTable handles OSC 4 (query/set indexed palette entries).
// Entries arrive as "index;spec" pairs separated by ';'; a spec of "?" is a
// query this headless core has no pixel-accurate answer for (no per-terminal
// palette override exists), so queries are ignored rather than answered with
// a guess.
func (t *Terminal) dispatchOscColorTable(data []byte) {
	// Set requests mutate a per-terminal palette override that nothing in
	// this tree reads back from yet (colors.go resolves against the fixed
	// DefaultPalette); parsed and discarded rather than left unparsed so a
	// future palette-override slot only needs to replace this no-op body.
	_ = strings.Split(string(data), ";")
}

// dispatchOscHyperlink handles OSC 8 (hyperlink start/end): "params;uri".
// params is a ':'-separated list of key=value pairs; only id= is
// recognized. An empty uri closes the currently open hyperlink.
func (t *Terminal) dispatchOscHyperlink(data []byte) {
	parts := strings.SplitN(string(data), ";", 2)
	var params, uri string
	if len(parts) == 2 {
		params, uri = parts[0], parts[1]
	} else if len(parts) == 1 {
		uri = parts[0]
	}

	var link *Hyperlink
	idHint := ""
	if uri != "" {
		for _, kv := range strings.Split(params, ":") {
			if name, val, ok := strings.Cut(kv, "="); ok && name == "id" {
				idHint = val
			}
		}
		link = &Hyperlink{URI: uri, IDHint: idHint}
	}

	do := func(link *Hyperlink) {
		if link == nil {
			t.active.Cursor.Hyperlink = 0
			return
		}
		t.active.Cursor.Hyperlink = t.hyperlinks.Register(link.URI, link.IDHint)
	}
	if t.middleware != nil && t.middleware.SetHyperlink != nil {
		t.middleware.SetHyperlink(link, do)
		return
	}
	do(link)
}

// dispatchOscClipboard handles OSC 52: "clipboard;base64data". clipboard is
// a run of selection-class letters ('c','p','s','0'-'7'); only the first is
// honored, matching the common single-target xterm convention. A payload of
// "?" is a read request answered through responseProvider.
func (t *Terminal) dispatchOscClipboard(data []byte) {
	parts := strings.SplitN(string(data), ";", 2)
	if len(parts) != 2 {
		return
	}
	selector := byte('c')
	if len(parts[0]) > 0 {
		selector = parts[0][0]
	}
	payload := parts[1]

	if payload == "?" {
		load := t.clipboardProvider.Read
		if t.middleware != nil && t.middleware.ClipboardLoad != nil {
			load = func(c byte) string { return t.middleware.ClipboardLoad(c, t.clipboardProvider.Read) }
		}
		content := load(selector)
		encoded := base64.StdEncoding.EncodeToString([]byte(content))
		t.writeResponse([]byte("\x1b]52;" + string(selector) + ";" + encoded + "\x07"))
		return
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		t.diagnostic(ErrParser, "OSC 52 payload is not valid base64")
		return
	}
	if t.middleware != nil && t.middleware.ClipboardStore != nil {
		t.middleware.ClipboardStore(selector, decoded, t.clipboardProvider.Write)
		return
	}
	t.clipboardProvider.Write(selector, decoded)
}

// dispatchOscGrowlNotification handles OSC 9 (the simple growl-style "just
// show this text" notification, as opposed to OSC 99's structured form).
func (t *Terminal) dispatchOscGrowlNotification(data []byte) {
	t.DesktopNotification(&NotificationPayload{
		PayloadType: "body",
		Data:        append([]byte(nil), data...),
	})
}

// dispatchOscNotification handles OSC 99: "key=value:key=value;text". Keys
// recognized per the kitty desktop-notifications spec: i (id), d (done), p
// (payload type), e (encoding), a (actions), c (track-close), w (timeout).
func (t *Terminal) dispatchOscNotification(data []byte) {
	parts := strings.SplitN(string(data), ";", 2)
	payload := &NotificationPayload{PayloadType: "body", Timeout: -1}
	if len(parts) > 1 {
		payload.Data = []byte(parts[1])
	}

	if len(parts[0]) > 0 {
		for _, kv := range strings.Split(parts[0], ":") {
			key, val, ok := strings.Cut(kv, "=")
			if !ok {
				continue
			}
			switch key {
			case "i":
				payload.ID = val
			case "d":
				payload.Done = val == "1" || val == "yes"
			case "p":
				payload.PayloadType = val
			case "e":
				payload.Encoding = val
			case "a":
				payload.Actions = append(payload.Actions, val)
			case "c":
				payload.TrackClose = val == "1" || val == "yes"
			case "w":
				if n, err := strconv.Atoi(val); err == nil {
					payload.Timeout = n
				}
			}
		}
	}

	t.DesktopNotification(payload)
}

// dispatchOscShellIntegration handles OSC 133: "A" (prompt start), "B"
// (command start), "C" (command executed), "D" or "D;exitcode" (command
// finished).
func (t *Terminal) dispatchOscShellIntegration(data []byte) {
	s := string(data)
	var tag string
	var rest string
	if len(s) > 0 {
		tag = s[:1]
		if len(s) > 1 && s[1] == ';' {
			rest = s[2:]
		}
	}

	exitCode := -1
	switch tag {
	case "A":
		t.ShellIntegrationMark(PromptStart, exitCode)
	case "B":
		t.ShellIntegrationMark(CommandStart, exitCode)
	case "C":
		t.ShellIntegrationMark(CommandExecuted, exitCode)
	case "D":
		if rest != "" {
			if n, err := strconv.Atoi(rest); err == nil {
				exitCode = n
			}
		}
		t.ShellIntegrationMark(CommandFinished, exitCode)
	default:
		t.diagnostic(ErrUnknownSequence, "unhandled OSC 133 tag %q", tag)
	}
}

// dispatchOscITerm2 handles the subset of OSC 1337 this core models: user
// variables ("SetUserVar=name=base64value"). Other iTerm2 1337 subcommands
// (file transfer, RemoteHost, ShellIntegrationVersion, ...) have no screen
// or state effect here and are ignored.
func (t *Terminal) dispatchOscITerm2(data []byte) {
	const prefix = "SetUserVar="
	s := string(data)
	if !strings.HasPrefix(s, prefix) {
		return
	}
	name, encoded, ok := strings.Cut(s[len(prefix):], "=")
	if !ok {
		return
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.diagnostic(ErrParser, "OSC 1337 SetUserVar value is not valid base64")
		return
	}
	value := string(decoded)
	do := func(name, value string) { t.userVars[name] = value }
	if t.middleware != nil && t.middleware.SetUserVar != nil {
		t.middleware.SetUserVar(name, value, do)
		return
	}
	do(name, value)
}
