package termcore

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// HintAction names what happens to a hint's matched text once its label is
// fully typed: open it (URLs, file paths), copy it to the clipboard, or
// insert it back into the running program as if typed.
type HintAction int

const (
	HintActionOpen HintAction = iota
	HintActionCopy
	HintActionInsert
)

// HintPattern is one regex hint mode scans the visible screen for, with an
// optional validator for matches that need confirming beyond the regex
// (e.g. a file path that must actually exist).
type HintPattern struct {
	Name      string
	Regex     *regexp.Regexp
	Validator func(string) bool
}

// HintMatch is one located, labeled occurrence of a HintPattern. Start/End
// are both inclusive column positions, End.Col naming the last column of
// the match rather than one past it.
type HintMatch struct {
	Label       string
	MatchedText string
	Start       Position
	End         Position
}

// HintModeHandler scans the visible screen for patterns (URLs, paths,
// hashes, addresses), assigns each match a short letter label, and lets
// the label be typed to disambiguate and select one.
type HintModeHandler struct {
	term *Terminal

	active   bool
	patterns []HintPattern
	action   HintAction
	filter   string

	allMatches      []HintMatch
	filteredMatches []HintMatch

	onSelected func(matchedText string, action HintAction)
}

// NewHintModeHandler creates a handler bound to t, initially inactive.
func NewHintModeHandler(t *Terminal) *HintModeHandler {
	return &HintModeHandler{term: t}
}

// OnHintSelected registers the callback invoked once a hint's label has
// been fully typed and disambiguated.
func (h *HintModeHandler) OnHintSelected(fn func(matchedText string, action HintAction)) {
	h.onSelected = fn
}

// Active reports whether hint mode is currently scanning/filtering.
func (h *HintModeHandler) Active() bool { return h.active }

// Matches returns the matches surviving the current filter, in the order
// they were assigned labels (top-to-bottom, left-to-right).
func (h *HintModeHandler) Matches() []HintMatch { return h.filteredMatches }

// Filter returns the label prefix typed so far.
func (h *HintModeHandler) Filter() string { return h.filter }

// Activate scans the visible screen for patterns, assigns labels, and
// enters hint mode.
func (h *HintModeHandler) Activate(patterns []HintPattern, action HintAction) {
	h.action = action
	h.patterns = patterns
	h.rescan()
	h.active = true
}

// Refresh re-scans the visible screen (e.g. after a resize or new output)
// without resetting which action hint mode is performing.
func (h *HintModeHandler) Refresh() {
	if !h.active {
		return
	}
	h.rescan()
}

// Deactivate exits hint mode and clears all matches and filter state.
func (h *HintModeHandler) Deactivate() {
	if !h.active {
		return
	}
	h.active = false
	h.filter = ""
	h.allMatches = nil
	h.filteredMatches = nil
}

// ProcessInput feeds one typed rune to the active hint filter. Escape
// cancels; Backspace/Delete removes the last filter character; only
// letters extend the filter (case-folded to lowercase, matching the
// labels assignLabels hands out); anything else is swallowed while hint
// mode is active. Returns false only when hint mode isn't active, so the
// caller can fall through to normal input handling.
func (h *HintModeHandler) ProcessInput(ch rune) bool {
	if !h.active {
		return false
	}

	if ch == 0x1b { // Escape
		h.Deactivate()
		return true
	}
	if ch == 0x08 || ch == 0x7f { // Backspace / Delete
		if len(h.filter) > 0 {
			h.filter = h.filter[:len(h.filter)-1]
			h.updateFilteredMatches()
		}
		return true
	}

	if ch >= 'A' && ch <= 'Z' {
		ch = ch - 'A' + 'a'
	}
	if ch < 'a' || ch > 'z' {
		return true
	}

	h.filter += string(ch)
	h.updateFilteredMatches()

	if len(h.filteredMatches) == 1 && h.filteredMatches[0].Label == h.filter {
		m := h.filteredMatches[0]
		action := h.action
		h.Deactivate()
		if h.onSelected != nil {
			h.onSelected(m.MatchedText, action)
		}
		return true
	}
	if len(h.filteredMatches) == 0 {
		h.Deactivate()
		return true
	}
	return true
}

func (h *HintModeHandler) updateFilteredMatches() {
	filtered := h.filteredMatches[:0]
	for _, m := range h.allMatches {
		if strings.HasPrefix(m.Label, h.filter) {
			filtered = append(filtered, m)
		}
	}
	h.filteredMatches = filtered
}

// rescan scans the terminal's visible rows against every active pattern,
// sorts and deduplicates the results, resolves overlaps in favor of the
// longer/earlier match, and assigns fresh labels.
func (h *HintModeHandler) rescan() {
	h.filter = ""
	h.allMatches = nil
	h.filteredMatches = nil

	for row, text := range h.visibleLines() {
		for _, pattern := range h.patterns {
			for _, loc := range pattern.Regex.FindAllStringIndex(text, -1) {
				matchStr := text[loc[0]:loc[1]]
				if matchStr == "" {
					continue
				}
				if pattern.Validator != nil && !pattern.Validator(matchStr) {
					continue
				}
				startCol := utf8.RuneCountInString(text[:loc[0]])
				endCol := utf8.RuneCountInString(text[:loc[1]]) - 1
				h.allMatches = append(h.allMatches, HintMatch{
					MatchedText: matchStr,
					Start:       Position{Row: row, Col: startCol},
					End:         Position{Row: row, Col: endCol},
				})
			}
		}
	}

	sort.SliceStable(h.allMatches, func(i, j int) bool {
		a, b := h.allMatches[i], h.allMatches[j]
		if a.Start.Row != b.Start.Row {
			return a.Start.Row < b.Start.Row
		}
		if a.Start.Col != b.Start.Col {
			return a.Start.Col < b.Start.Col
		}
		return a.End.Col > b.End.Col // longer match first at the same start
	})

	h.allMatches = dedupeHintMatches(h.allMatches)
	h.allMatches = removeOverlappingHintMatches(h.allMatches)
	assignHintLabels(h.allMatches)
	h.filteredMatches = append([]HintMatch(nil), h.allMatches...)
}

// visibleLines returns the trimmed text of every row on the active
// screen, in the same column numbering as the grid itself.
func (h *HintModeHandler) visibleLines() []string {
	t := h.term
	t.mu.RLock()
	defer t.mu.RUnlock()

	lines := make([]string, t.rows)
	for row := 0; row < t.rows; row++ {
		if line := t.active.Grid.Line(row); line != nil {
			lines[row] = trimmedLineString(line)
		}
	}
	return lines
}

// dedupeHintMatches removes consecutive matches with identical
// start/end, which can happen when two patterns match the same span.
func dedupeHintMatches(matches []HintMatch) []HintMatch {
	out := matches[:0]
	for i, m := range matches {
		if i > 0 && m.Start == matches[i-1].Start && m.End == matches[i-1].End {
			continue
		}
		out = append(out, m)
	}
	return out
}

// removeOverlappingHintMatches keeps the first (longer, since sort put
// longer matches first at equal starts) match at each position, dropping
// any later match whose start falls inside the kept one's span.
func removeOverlappingHintMatches(matches []HintMatch) []HintMatch {
	kept := make([]HintMatch, 0, len(matches))
	for _, m := range matches {
		if len(kept) > 0 {
			last := kept[len(kept)-1]
			if last.Start.Row == m.Start.Row && m.Start.Col <= last.End.Col {
				continue
			}
		}
		kept = append(kept, m)
	}
	return kept
}

// assignHintLabels hands out single-letter labels a, b, c, ... z, and
// switches to two-letter labels aa, ab, ... once there are more than 26
// matches.
func assignHintLabels(matches []HintMatch) {
	n := len(matches)
	if n == 0 {
		return
	}
	useTwoChar := n > 26
	for i := range matches {
		if useTwoChar {
			first := byte('a' + (i/26)%26)
			second := byte('a' + i%26)
			matches[i].Label = string([]byte{first, second})
		} else {
			matches[i].Label = string([]byte{byte('a' + i)})
		}
	}
}

// builtinHintPatterns is the stock pattern set, compiled once at package
// initialization.
var builtinHintPatterns = []HintPattern{
	{Name: "url", Regex: regexp.MustCompile(`https?://[^\s<>"'\])}]+`)},
	{Name: "filepath", Regex: regexp.MustCompile(`(?:~?/[\w./-]+|\.{1,2}/[\w./-]+|[\w][\w.-]*/[\w./-]+)`)},
	{Name: "githash", Regex: regexp.MustCompile(`\b[0-9a-f]{7,40}\b`)},
	{Name: "ipv4", Regex: regexp.MustCompile(`\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}(?::\d+)?\b`)},
	// The original's ipv6 pattern has a trailing "double-colon-open" branch
	// gated by a negative lookahead; RE2 (this package's regexp engine) has
	// no lookahead support, so that branch is dropped here. The three
	// remaining branches (full 8-group, embedded ::, and leading ::) still
	// cover the overwhelming majority of addresses seen in terminal output.
	{Name: "ipv6", Regex: regexp.MustCompile(
		`\b[0-9a-fA-F]{1,4}(?::[0-9a-fA-F]{1,4}){7}\b` +
			`|\b(?:[0-9a-fA-F]{1,4}:)*[0-9a-fA-F]{1,4}::(?:[0-9a-fA-F]{1,4}:)*[0-9a-fA-F]{1,4}\b` +
			`|::(?:[0-9a-fA-F]{1,4}:)*[0-9a-fA-F]{1,4}\b`)},
}

// BuiltinHintPatterns returns the stock URL/filepath/githash/ipv4/ipv6
// pattern set.
func BuiltinHintPatterns() []HintPattern {
	return append([]HintPattern(nil), builtinHintPatterns...)
}

// ExtractPathFromFileURL strips a "file://" URL down to its filesystem
// path, handling both the three-slash ("file:///path") and host-qualified
// ("file://host/path") forms. Non-file URLs pass through unchanged.
func ExtractPathFromFileURL(url string) string {
	const prefix = "file://"
	if !strings.HasPrefix(url, prefix) {
		return url
	}
	remainder := url[len(prefix):]
	if remainder != "" && remainder[0] != '/' {
		if idx := strings.IndexByte(remainder, '/'); idx >= 0 {
			return remainder[idx:]
		}
		return ""
	}
	return remainder
}
