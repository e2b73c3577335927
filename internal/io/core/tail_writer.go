package core

import (
	"github.com/samber/mo"
	"io"
)

// TailWriter remembers the last byte it passed on, however much of the output has been flushed since.
type TailWriter struct {
	io.Writer
	last mo.Option[byte]
}

func NewTailWriter(w io.Writer) *TailWriter {
	return &TailWriter{Writer: w, last: mo.None[byte]()}
}

func (tw *TailWriter) Write(p []byte) (int, error) {
	n, err := tw.Writer.Write(p)
	if n > 0 {
		tw.last = mo.Some(p[n-1])
	}
	return n, err
}

// Last returns the last byte written, or None if nothing has been written yet.
func (tw *TailWriter) Last() mo.Option[byte] {
	return tw.last
}
