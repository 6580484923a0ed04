package indicator

import "fmt"

// IsBlank reports whether line is lrcd's "nothing to display" sentinel:
// empty, or starting with a character below the space character.
//
// Comparing the first byte is equivalent to comparing the first code point,
// since no UTF-8 lead byte of a multi-byte sequence is below 0x20.
func IsBlank(line string) bool {
	return line == "" || line[0] < ' '
}

// DecodeLine extracts the lyric line from the first positional field of p.
func DecodeLine(p Payload) (string, error) {
	if len(p) == 0 {
		return "", fmt.Errorf("empty payload")
	}
	line, ok := p[0].(string)
	if !ok {
		return "", fmt.Errorf("expected string in first field, got %T", p[0])
	}
	return line, nil
}
