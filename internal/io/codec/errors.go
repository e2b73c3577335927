package codec

import (
	"errors"
	"fmt"
)

// ErrOddLength is returned by HexDecoder.Finish when a hex digit is left without its pair.
var ErrOddLength = errors.New("odd length")

// MalformedInputError reports a character that is neither a hex digit nor an ignorable separator.
type MalformedInputError struct {
	Char byte
	// Offset counts the characters the decoder consumed before Char, across all sources of the session.
	Offset int64
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("not ascii hexdigit: %q at offset %d", rune(e.Char), e.Offset)
}
