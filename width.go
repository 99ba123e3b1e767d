package termcore

import (
	"unicode"

	"github.com/unilibs/uniwidth"
)

// Variation selectors that can force a cell-width change (spec §4.3).
const (
	vs15TextStyle     rune = 0xFE0E // force narrow
	vs16EmojiStyle    rune = 0xFE0F // force wide
)

// WidthPolicy is the setting for whether variation selectors may change a
// cell's display width. Print calls adjustedWidth with no following rune, so
// with either setting a VS15/VS16 that arrives after a character leaves that
// character's width as first computed. Spec §9 says the default must be
// conservative.
type WidthPolicy struct {
	AllowVariationSelectorWidthChange bool
}

// DefaultWidthPolicy is the conservative default: width never changes due to
// a following variation selector.
var DefaultWidthPolicy = WidthPolicy{AllowVariationSelectorWidthChange: false}

// runeWidth returns the display width: 2 for wide characters (CJK, emoji), 1 for normal, 0 for zero-width (combining marks, control chars).
func runeWidth(r rune) int {
	return uniwidth.RuneWidth(r)
}

// isWideRune returns true if the rune occupies 2 columns (CJK ideographs, fullwidth forms, emoji).
func isWideRune(r rune) bool {
	return uniwidth.RuneWidth(r) == 2
}

// StringWidth returns the total display width of a string (sum of rune widths).
func StringWidth(s string) int {
	return uniwidth.StringWidth(s)
}

// isCombiningMark reports whether r merges into the previous cell instead of
// occupying one of its own (Unicode category Mn/Mc/Me, plus the variation
// selectors which are handled separately by adjustedWidth).
func isCombiningMark(r rune) bool {
	return unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) || unicode.Is(unicode.Me, r)
}

// isVariationSelector reports whether r is VS15 or VS16.
func isVariationSelector(r rune) bool {
	return r == vs15TextStyle || r == vs16EmojiStyle
}

// adjustedWidth computes the effective width of base when followed by a
// variation selector, honoring policy. Returns (width, consumed) where
// consumed is true if next was folded into base's width decision.
func adjustedWidth(base rune, next rune, policy WidthPolicy) (width int, consumed bool) {
	w := runeWidth(base)
	if !isVariationSelector(next) {
		return w, false
	}
	if !policy.AllowVariationSelectorWidthChange {
		// Variation selector is still consumed into the grapheme cluster,
		// it just can't change the column width.
		return w, true
	}
	if next == vs16EmojiStyle {
		return 2, true
	}
	return 1, true
}
