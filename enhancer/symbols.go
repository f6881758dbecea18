package enhancer

import "strings"

// symbolRanges are the pictographic and decorative Unicode ranges removed
// from replies. The generating model is told not to emit them, but it is
// not trusted to comply, so stripping runs on every reply that leaves the
// pipeline.
var symbolRanges = [][2]rune{
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F300, 0x1F5FF}, // symbols & pictographs
	{0x1F680, 0x1F6FF}, // transport & map symbols
	{0x1F1E0, 0x1F1FF}, // regional indicators (flags)
	{0x2700, 0x27BF},   // dingbats
	{0x1F900, 0x1F9FF}, // supplemental symbols
	{0x2600, 0x26FF},   // miscellaneous symbols
	{0x2B00, 0x2BFF},   // arrows and misc symbols
}

// StripSymbols removes decorative/pictographic characters from text. It is
// a fixed point: stripping an already-stripped string is a no-op.
func StripSymbols(text string) string {
	if text == "" {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isDecorative(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isDecorative(r rune) bool {
	for _, rng := range symbolRanges {
		if r >= rng[0] && r <= rng[1] {
			return true
		}
	}
	return false
}
