package printer

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

const hex = "0123456789abcdef"

// quote returns s as a double quoted string literal
func quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); {
		r, n := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && n == 1:
			sb.WriteString(`\ufffd`)
		case r == '"':
			sb.WriteString(`\"`)
		case r == '\\':
			sb.WriteString(`\\`)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r == '\t':
			sb.WriteString(`\t`)
		case r == '\b':
			sb.WriteString(`\b`)
		case r == '\f':
			sb.WriteString(`\f`)
		case r == '\v':
			sb.WriteString(`\v`)
		case r == 0:
			if i+1 < len(s) && '0' <= s[i+1] && s[i+1] <= '9' {
				sb.WriteString(`\x00`) // \0 followed by a digit is an octal escape
			} else {
				sb.WriteString(`\0`)
			}
		case r == '\u2028' || r == '\u2029':
			sb.WriteString(`\u`)
			sb.WriteString(strconv.FormatInt(int64(r), 16))
		case r < 0x20 || r == 0x7f:
			sb.WriteString(`\x`)
			sb.WriteByte(hex[r>>4])
			sb.WriteByte(hex[r&0xf])
		default:
			sb.WriteString(s[i : i+n])
		}
		i += n
	}
	sb.WriteByte('"')
	return sb.String()
}

// formatNumber returns a non-negative number as Number.prototype.toString does
func formatNumber(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	} else if math.IsInf(f, 0) {
		return "Infinity"
	} else if f == 0 {
		return "0"
	} else if 1e-6 <= f && f < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	// Go writes at least two exponent digits
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mant + "e" + sign + digits
}
