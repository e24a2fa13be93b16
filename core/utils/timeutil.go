package utils

import "time"

// ParseSourceTime parses a source-system timestamp. The systems usually emit
// RFC 3339; older records carry a zone offset without the colon.
func ParseSourceTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05-0700", s)
}

// FormatUTC renders an instant as UTC ISO-8601 with the literal Z and
// millisecond precision the destination platform requires.
func FormatUTC(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05") + ".000Z"
}
