package codec

import (
	"encoding/hex"
	"github.com/samber/mo"
	stdio "io"
)

// HexEncoder turns every byte written to it into two lowercase hex digits.
// Its column counter lives as long as the encoder, so one encoder fed with several sources
// wraps exactly like it would when fed with their concatenation.
type HexEncoder struct {
	*converterWriter
	opts   Options
	column int
	buf    []byte
}

func NewHexEncoder(dst stdio.Writer, opts Options) *HexEncoder {
	e := &HexEncoder{opts: opts}
	e.converterWriter = &converterWriter{Writer: dst, Name: "hex encoder", Converter: e.encode}
	return e
}

func (e *HexEncoder) encode(p []byte) ([]byte, error) {
	buf := e.buf[:0]
	for i := range p {
		buf = append(buf, e.opts.Prefix...)
		buf = hex.AppendEncode(buf, p[i:i+1])

		// wrap counts bytes, not characters
		e.column++
		if e.opts.Wrap > 0 && e.column == e.opts.Wrap {
			buf = append(buf, '\n')
			e.column = 0
		}
	}
	e.buf = buf
	return buf, nil
}

// ----------------------------------------------------------------------------------------------------------------

// HexDecoder turns pairs of hex digits written to it into bytes.
// Call Finish once the last source of the session has been written.
type HexDecoder struct {
	*converterWriter
	opts    Options
	pending mo.Option[byte]
	offset  int64
	buf     []byte
}

func NewHexDecoder(dst stdio.Writer, opts Options) *HexDecoder {
	d := &HexDecoder{opts: opts, pending: mo.None[byte]()}
	d.converterWriter = &converterWriter{Writer: dst, Name: "hex decoder", Converter: d.decode}
	return d
}

func (d *HexDecoder) decode(p []byte) ([]byte, error) {
	buf := d.buf[:0]
	defer func() { d.buf = buf }()

	for _, ch := range p {
		offset := d.offset
		d.offset++

		if ch == '\n' || (d.opts.IgnoreWhitespace && isASCIISpace(ch)) {
			continue
		}
		v, ok := fromHexDigit(ch)
		if !ok {
			return buf, &MalformedInputError{Char: ch, Offset: offset}
		}

		if hi, ok := d.pending.Get(); ok {
			buf = append(buf, hi<<4|v)
			d.pending = mo.None[byte]()
		} else {
			d.pending = mo.Some(v)
		}
	}
	return buf, nil
}

// Finish reports ErrOddLength if a digit is still waiting for its pair.
func (d *HexDecoder) Finish() error {
	if d.pending.IsPresent() {
		return ErrOddLength
	}
	return nil
}

func fromHexDigit(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// isASCIISpace matches space, tab, line-feed, form-feed and carriage-return, vertical tab is not whitespace here.
func isASCIISpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}
