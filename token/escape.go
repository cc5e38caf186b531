package token

import "fmt"

func hexDigit(v byte) byte {
	if v < 10 {
		return '0' + v
	}
	return 'A' + v - 10
}

func octDigit(v byte) byte {
	return '0' + v
}

func isPrintable(c byte) bool {
	return c >= 32 && c <= 126
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f')
}

func isOctDigit(c byte) bool {
	return c >= '0' && c <= '7'
}

// escapeByte writes the escaped form of c into r and returns its length.
// next is the byte following c in the unescaped input, or 0 at end of
// input. The choice between short octal, full octal, and hex escapes
// depends on next: a short escape followed by an octal or hex digit would
// re-parse as a longer sequence, so those cases are widened. Unescape
// relies on exactly this rule set.
func escapeByte(c, next byte, r *[4]byte) int {
	switch {
	case c == '"':
		r[0], r[1] = '\\', '"'
		return 2
	case c == '\\':
		r[0], r[1] = '\\', '\\'
		return 2
	case isPrintable(c):
		r[0] = c
		return 1
	case c == '\r':
		r[0], r[1] = '\\', 'r'
		return 2
	case c == '\n':
		r[0], r[1] = '\\', 'n'
		return 2
	case c == '\t':
		r[0], r[1] = '\\', 't'
		return 2
	case c < 8 && !isOctDigit(next):
		r[0], r[1] = '\\', octDigit(c)
		return 2
	case !isHexDigit(next):
		r[0], r[1] = '\\', 'x'
		r[2] = hexDigit(c >> 4)
		r[3] = hexDigit(c & 0x0F)
		return 4
	default:
		r[0], r[1] = '\\', octDigit(c>>6)
		r[2] = octDigit((c >> 3) & 7)
		r[3] = octDigit(c & 7)
		return 4
	}
}

// AppendEscaped appends the text-mode escaped form of s to dst.
func AppendEscaped(dst, s []byte) []byte {
	var r [4]byte
	for i := 0; i < len(s); i++ {
		var next byte
		if i+1 < len(s) {
			next = s[i+1]
		}
		n := escapeByte(s[i], next, &r)
		dst = append(dst, r[:n]...)
	}
	return dst
}

// Unescape decodes the text-mode escaped form back to raw bytes. It is
// the exact dual of AppendEscaped: hex escapes consume at most two
// digits, octal escapes at most three.
func Unescape(d []byte) ([]byte, error) {
	out := make([]byte, 0, len(d))
	i := 0
	for i < len(d) {
		c := d[i]
		if c != '\\' {
			out = append(out, c)
			i++
			continue
		}
		i++
		if i >= len(d) {
			return nil, ErrBadEscape
		}
		e := d[i]
		i++
		switch e {
		case '"':
			out = append(out, '"')
		case '\\':
			out = append(out, '\\')
		case 'r':
			out = append(out, '\r')
		case 'n':
			out = append(out, '\n')
		case 't':
			out = append(out, '\t')
		case 'x':
			v, n := 0, 0
			for n < 2 && i < len(d) && isHexDigit(d[i]) {
				v = v<<4 | hexVal(d[i])
				i++
				n++
			}
			if n == 0 {
				return nil, fmt.Errorf("%w: \\x with no hex digits", ErrBadEscape)
			}
			out = append(out, byte(v))
		default:
			if !isOctDigit(e) {
				return nil, fmt.Errorf("%w: \\%c", ErrBadEscape, e)
			}
			v, n := int(e-'0'), 1
			for n < 3 && i < len(d) && isOctDigit(d[i]) {
				v = v<<3 | int(d[i]-'0')
				i++
				n++
			}
			if v > 0xFF {
				return nil, fmt.Errorf("%w: octal escape out of range", ErrBadEscape)
			}
			out = append(out, byte(v))
		}
	}
	return out, nil
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}
