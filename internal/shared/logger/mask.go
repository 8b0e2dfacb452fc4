package logger

// MaskName keeps the first character of a personal name.
// Example: 山田太郎 -> 山***
func MaskName(name string) string {
	runes := []rune(name)
	if len(runes) == 0 {
		return ""
	}
	return string(runes[:1]) + "***"
}

// MaskLoginID keeps at most the first two characters.
// Example: sales01 -> sa***
func MaskLoginID(loginID string) string {
	runes := []rune(loginID)
	switch {
	case len(runes) == 0:
		return ""
	case len(runes) <= 2:
		return string(runes[:1]) + "***"
	default:
		return string(runes[:2]) + "***"
	}
}
