package hasher

import (
	"unicode/utf16"
	"unicode/utf8"
)

// OneAtATime is Bob Jenkins' one-at-a-time hash computed over the UTF-16 code units of s in signed 32-bit
// arithmetic. Additions and left shifts wrap around and right shifts are arithmetic, so the result agrees bit for bit
// with other signed 32-bit implementations, including on inputs whose intermediate values overflow.
func OneAtATime(s string) int32 {
	var h int32
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= utf8.RuneSelf {
			return oneAtATimeUTF16(h, s[i:])
		}
		h = mix(h, int32(c))
	}
	return finalize(h)
}

// oneAtATimeUTF16 continues a hash over the non-ASCII remainder of a string.
func oneAtATimeUTF16(h int32, rest string) int32 {
	for _, unit := range utf16.Encode([]rune(rest)) {
		h = mix(h, int32(unit))
	}
	return finalize(h)
}

func mix(h, c int32) int32 {
	h += c
	h += h << 10
	h ^= h >> 6
	return h
}

func finalize(h int32) int32 {
	h += h << 3
	h ^= h >> 11
	h += h << 15
	return h
}
