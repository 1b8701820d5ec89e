package expand

import (
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
)

// dateSpecifiers lists the strftime conversions a \d format may use.
const dateSpecifiers = "aAbBcCdDeFgGHIjkmMnprRStTuUVwWxXyYzZ%"

// ValidDateFormat reports whether format contains only supported
// strftime conversions.
func ValidDateFormat(format string) bool {
	if format == "" {
		return false
	}
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		i++
		if i >= len(format) || !strings.ContainsRune(dateSpecifiers, rune(format[i])) {
			return false
		}
	}
	return true
}

// FormatDate formats t with a strftime pattern, falling back to fallback
// when format is not valid. It reports whether the fallback was used.
func FormatDate(format, fallback string, t time.Time) (string, bool) {
	if !ValidDateFormat(format) {
		return strftime.Format(fallback, t), true
	}
	return strftime.Format(format, t), false
}

// parseDateArg reads the optional :"format" argument that follows \d.
// It returns the format and the number of bytes consumed. A missing or
// unterminated argument consumes nothing.
func parseDateArg(rest string) (format string, n int, ok bool) {
	if !strings.HasPrefix(rest, `:"`) {
		return "", 0, false
	}
	end := strings.IndexByte(rest[2:], '"')
	if end < 0 {
		return "", 0, false
	}
	return rest[2 : 2+end], 2 + end + 1, true
}
