package codec

import (
	"github.com/nimatrueway/hexpipe/internal/io/core"
	"github.com/sirupsen/logrus"
	stdio "io"
)

// Options configures both directions of the hex codec. It is passed by value and never mutated.
type Options struct {
	// IgnoreWhitespace skips every ascii whitespace character while decoding, line-feeds are skipped regardless.
	IgnoreWhitespace bool
	// Wrap inserts a line-feed after every Wrap encoded bytes, 0 disables wrapping.
	Wrap int
	// Prefix is written before every encoded byte.
	Prefix string
}

// ----------------------------------------------------------------------------------------------------------------

// converterWriter feeds everything written to it through Converter and forwards the result to Writer.
// Converter may return converted data together with an error, the data is forwarded before the error is reported.
type converterWriter struct {
	stdio.Writer
	Converter func([]byte) ([]byte, error)
	Name      string
}

func (w *converterWriter) Write(p []byte) (int, error) {
	trace := logrus.IsLevelEnabled(logrus.TraceLevel)
	if trace {
		logrus.Tracef("request write to \"%s\" in %s (raw): %#v", core.DetermineWriterName(w.Writer), w.Name, string(p))
	}
	converted, convErr := w.Converter(p)
	if len(converted) > 0 {
		if _, err := w.Writer.Write(converted); err != nil {
			return 0, err
		}
		if trace {
			logrus.Tracef("wrote to \"%s\" in %s: %#v", core.DetermineWriterName(w.Writer), w.Name, string(converted))
		}
	}
	if convErr != nil {
		return 0, convErr
	}

	return len(p), nil
}
