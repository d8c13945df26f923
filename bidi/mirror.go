package bidi

// MirroredBracket returns the mirrored counterpart of an ASCII bracket,
// used when drawing brackets inside right-to-left runs. Characters without
// a mirror pair are returned unchanged.
func MirroredBracket(r rune) rune {
	switch r {
	case '(':
		return ')'
	case ')':
		return '('
	case '[':
		return ']'
	case ']':
		return '['
	case '{':
		return '}'
	case '}':
		return '{'
	case '<':
		return '>'
	case '>':
		return '<'
	}
	return r
}
