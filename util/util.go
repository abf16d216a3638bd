package util

// Byte classification helpers shared by the tokenizer. Source text is treated as ASCII;
// any other byte is neither a letter, a digit nor a space.

func IsNumber(b byte) bool {
	return b >= '0' && b <= '9'
}

func IsUnderScore(b byte) bool {
	return b == '_'
}

func IsLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func IsLetterOrUnderscore(b byte) bool {
	return IsLetter(b) || IsUnderScore(b)
}

func IsLetterOrUnderscoreOrNumber(b byte) bool {
	return IsLetter(b) || IsUnderScore(b) || IsNumber(b)
}

// IsSpace reports whether b is a blank the tokenizer skips. '\n' is included,
// callers that count lines must check for it first.
func IsSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '\v' || b == '\f'
}

func IsNewLine(b byte) bool {
	return b == '\n'
}
