package termcore

// HyperlinkID identifies an entry in the HyperlinkRegistry. The zero value
// means "no hyperlink" and is never issued to a real link.
type HyperlinkID uint32

// HyperlinkState tracks pointer-hover highlighting for OSC 8 links (spec §3).
type HyperlinkState int

const (
	HyperlinkInactive HyperlinkState = iota
	HyperlinkHover
)

// Hyperlink is the registry record an OSC 8 sequence creates: its URI and
// the optional id= parameter used to group multiple spans into one link for
// hover purposes.
type Hyperlink struct {
	URI     string
	IDHint  string
	State   HyperlinkState
}

// maxHyperlinkPayload bounds the URI of a single OSC 8 hyperlink at the
// reference implementation's 512-byte cap; an oversized URI is truncated
// and logged rather than rejected outright. The params are not bounded.
const maxHyperlinkPayload = 512

// HyperlinkRegistry is a copy-on-write id -> Hyperlink table (spec §3 and
// §4's hyperlink handling): cells store a weak HyperlinkID reference instead
// of a pointer, so the registry can be swapped wholesale (e.g. by undo/replay
// tooling) without invalidating already-rendered cells.
type HyperlinkRegistry struct {
	entries []Hyperlink // index 0 unused, so HyperlinkID 0 means "none"
	byURI   map[string]HyperlinkID
	logger  Logger
}

// NewHyperlinkRegistry creates an empty registry.
func NewHyperlinkRegistry() *HyperlinkRegistry {
	return &HyperlinkRegistry{
		entries: make([]Hyperlink, 1), // reserve index 0
		byURI:   make(map[string]HyperlinkID),
		logger:  noopLogger{},
	}
}

func (r *HyperlinkRegistry) SetLogger(l Logger) {
	if l == nil {
		l = noopLogger{}
	}
	r.logger = l
}

// Register finds or creates an entry for (uri, idHint), truncating an
// oversized uri defensively and logging the truncation.
func (r *HyperlinkRegistry) Register(uri, idHint string) HyperlinkID {
	if len(uri) > maxHyperlinkPayload {
		r.logger.Printf("%s: hyperlink URI truncated from %d to %d bytes", ErrResourceLimit, len(uri), maxHyperlinkPayload)
		uri = uri[:maxHyperlinkPayload]
	}
	key := idHint + "\x00" + uri
	if id, ok := r.byURI[key]; ok {
		return id
	}
	id := HyperlinkID(len(r.entries))
	r.entries = append(r.entries, Hyperlink{URI: uri, IDHint: idHint})
	r.byURI[key] = id
	return id
}

// Lookup returns the hyperlink for id, or (Hyperlink{}, false) for id 0 or
// an id a copy-on-write swap has since invalidated.
func (r *HyperlinkRegistry) Lookup(id HyperlinkID) (Hyperlink, bool) {
	if id == 0 || int(id) >= len(r.entries) {
		return Hyperlink{}, false
	}
	return r.entries[id], true
}

// SetHover updates the hover state of every entry sharing idHint (OSC 8
// links with the same id= are highlighted together). A copy-on-write clone
// of the entries slice is made so concurrent snapshot readers holding the
// previous slice are unaffected.
func (r *HyperlinkRegistry) SetHover(idHint string, hovering bool) {
	if idHint == "" {
		return
	}
	cloned := append([]Hyperlink(nil), r.entries...)
	state := HyperlinkInactive
	if hovering {
		state = HyperlinkHover
	}
	changed := false
	for i := range cloned {
		if cloned[i].IDHint == idHint {
			cloned[i].State = state
			changed = true
		}
	}
	if changed {
		r.entries = cloned
	}
}

// Len returns the number of registered hyperlinks (excluding the reserved
// index 0).
func (r *HyperlinkRegistry) Len() int { return len(r.entries) - 1 }
