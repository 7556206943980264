package layout

import "unicode"

// WrapMode selects where a line may be broken when it exceeds the
// bounds width. Explicit newlines always break regardless of mode.
type WrapMode uint8

const (
	// NoWrap keeps every paragraph on a single line.
	NoWrap WrapMode = iota

	// WordWrap breaks after spaces and hyphens and around CJK ideographs.
	// A word longer than the line is broken between characters.
	WordWrap

	// CharWrap breaks between any two characters except inside
	// bracket pairs.
	CharWrap
)

// String returns the string representation of the wrap mode.
func (m WrapMode) String() string {
	switch m {
	case NoWrap:
		return "None"
	case WordWrap:
		return "Word"
	case CharWrap:
		return "Char"
	default:
		return "Unknown"
	}
}

// ParseWrapMode converts a name produced by String back into a WrapMode.
func ParseWrapMode(s string) (WrapMode, bool) {
	switch s {
	case "None", "none", "":
		return NoWrap, true
	case "Word", "word":
		return WordWrap, true
	case "Char", "char":
		return CharWrap, true
	default:
		return NoWrap, false
	}
}

// breakClass is a simplified UAX #14 line breaking class.
type breakClass uint8

const (
	breakOther breakClass = iota
	breakSpace
	breakZero
	breakOpen
	breakClose
	breakHyphen
	breakIdeographic
)

// classifyRune returns the break class of r.
func classifyRune(r rune) breakClass {
	switch r {
	case ' ', '\t':
		return breakSpace
	case '\u200B': // zero-width space
		return breakZero
	case '(', '[', '{', '\u201C', '\u2018':
		return breakOpen
	case ')', ']', '}', '\u201D', '\u2019':
		return breakClose
	case '-', '\u2010', '\u2011', '\u2013', '\u2014':
		return breakHyphen
	}
	if isCJKRune(r) {
		return breakIdeographic
	}
	return breakOther
}

// isCJKRune reports whether r is a CJK character that allows breaking.
func isCJKRune(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) || // CJK Unified Ideographs
		(r >= 0x3400 && r <= 0x4DBF) || // CJK Extension A
		(r >= 0x20000 && r <= 0x2A6DF) || // CJK Extension B
		(r >= 0x3040 && r <= 0x309F) || // Hiragana
		(r >= 0x30A0 && r <= 0x30FF) || // Katakana
		(r >= 0xAC00 && r <= 0xD7AF) || // Hangul Syllables
		(r >= 0xFF00 && r <= 0xFFEF) // Fullwidth forms
}

// canBreakBefore reports whether mode allows a line break between prev
// and curr.
func canBreakBefore(prev, curr rune, mode WrapMode) bool {
	if mode == NoWrap {
		return false
	}
	prevClass, currClass := classifyRune(prev), classifyRune(curr)

	if currClass == breakClose || prevClass == breakOpen {
		return false
	}
	if prevClass == breakZero {
		return true
	}
	if mode == CharWrap {
		return true
	}
	return canBreakWord(prev, curr, prevClass, currClass)
}

// canBreakWord applies the word boundary rules.
func canBreakWord(prev, curr rune, prevClass, currClass breakClass) bool {
	if prevClass == breakSpace {
		return true
	}
	if prevClass == breakHyphen && currClass != breakHyphen {
		return true
	}
	if currClass == breakIdeographic {
		return true
	}
	if prevClass == breakIdeographic {
		return true
	}

	// Break after punctuation before letters, except apostrophes.
	return unicode.IsPunct(prev) && prev != '\'' && unicode.IsLetter(curr)
}
