package config

import (
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Char is a single character. In configuration files, environment variables and flags it is written as a
// one-character string, e.g. "1", rather than as its code point.
type Char rune

func (c Char) String() string {
	return string(rune(c))
}

func (c Char) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Char) UnmarshalText(text []byte) error {
	parsed, err := ParseChar(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseChar parses a string holding exactly one character.
func ParseChar(s string) (Char, error) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || r == utf8.RuneError {
		return 0, errors.Errorf("%q is not a single character", s)
	}
	return Char(r), nil
}
