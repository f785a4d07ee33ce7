package swiftcodec

import "unicode/utf8"

// UTF-8 validation and scanning. Go's unicode/utf8 package already
// rejects overlong encodings, 5/6-byte sequences, code points above
// U+10FFFF, and unpaired surrogates (utf8.DecodeRune returns RuneError
// with size 1 for all of these, the same invalid-byte signature used by
// go-json-experiment's jsonwire.AppendQuote) — see DESIGN.md for why
// this module does not hand-roll a second validator.

// validateUTF8 scans b and reports the byte offset of the first invalid
// sequence, or -1 if b is entirely valid UTF-8 with no surrogate code
// points. A BOM is treated as ordinary data, never stripped or treated
// as leading whitespace.
func validateUTF8(b []byte) (pos int, ok bool) {
	i := 0
	for i < len(b) {
		if b[i] < utf8.RuneSelf {
			i++
			continue
		}
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i, false
		}
		i += size
	}
	return -1, true
}

// decodeRuneAt decodes the scalar value starting at b[i], returning the
// scalar and the index immediately following it. The caller must only
// call this on input already validated by validateUTF8.
func decodeRuneAt(b []byte, i int) (rune, int) {
	r, size := utf8.DecodeRune(b[i:])
	return r, i + size
}
