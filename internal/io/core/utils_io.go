package core

import (
	"errors"
	"io"
	"syscall"
)

func NopRCloser(r io.Reader) io.ReadCloser {
	return WithRCloser(r, func() error { return nil })
}

func WithRCloser(r io.Reader, f func() error) io.ReadCloser {
	return &withRCloser{r, f}
}

type withRCloser struct {
	io.Reader
	f func() error
}

func (c *withRCloser) Close() error {
	return c.f()
}

// ------------------------------------------------------------------------

// IsBrokenPipe reports whether err means the reading end of our output went away.
func IsBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE)
}
