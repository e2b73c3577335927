package stream

import (
	"bufio"
	"context"
	"fmt"
	"github.com/nimatrueway/hexpipe/internal/config"
	"github.com/nimatrueway/hexpipe/internal/io/codec"
	"github.com/nimatrueway/hexpipe/internal/io/core"
	"github.com/sirupsen/logrus"
	"github.com/ztrue/tracerr"
	"io"
)

// Session owns the codec state of one invocation. Every source of the session goes through the same
// encoder or decoder, so wrapping and digit pairing carry on across source boundaries.
type Session struct {
	mode    config.Mode
	out     *bufio.Writer
	sink    *core.TailWriter
	encoder *codec.HexEncoder
	decoder *codec.HexDecoder
	buffer  []byte
}

const defaultBufferSize = 64 * 1024

func NewSession(mode config.Mode, opts codec.Options, stdout io.Writer, bufferSize int) *Session {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}

	// fully log output if trace-level logging is enabled
	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		stdout = core.NewWriterLogInterceptor(stdout)
	}

	out := bufio.NewWriterSize(stdout, bufferSize)
	sink := core.NewTailWriter(out)
	s := &Session{
		mode:   mode,
		out:    out,
		sink:   sink,
		buffer: make([]byte, bufferSize),
	}
	if mode == config.Decode {
		s.decoder = codec.NewHexDecoder(sink, opts)
	} else {
		s.encoder = codec.NewHexEncoder(sink, opts)
	}
	return s
}

// Run processes sources in order and flushes the output. The output being closed by its reader
// ends the session successfully.
func (s *Session) Run(ctx context.Context, sources []Source) error {
	err := s.run(ctx, sources)
	if flushErr := s.out.Flush(); err == nil {
		err = flushErr
	}

	if core.IsBrokenPipe(err) {
		logrus.Debugf("output closed by its reader: %s", err.Error())
		return nil
	}
	if err != nil {
		return tracerr.Wrap(err)
	}
	return nil
}

func (s *Session) run(ctx context.Context, sources []Source) error {
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.process(src); err != nil {
			return err
		}
	}

	if s.mode == config.Decode {
		return s.decoder.Finish()
	}

	// end the encoded output with a line-feed
	if last, ok := s.sink.Last().Get(); ok && last != '\n' {
		_, err := s.sink.Write([]byte{'\n'})
		return err
	}
	return nil
}

func (s *Session) process(src Source) error {
	r, err := src.Open()
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	var reader io.Reader = r
	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		reader = core.NewReaderLogInterceptor(reader)
	}

	log := fmt.Sprintf("%s \"%s\"", s.mode, src.Name)
	logrus.Debug(log)
	n, err := io.CopyBuffer(s.transformer(), reader, s.buffer)
	if err != nil {
		logrus.Debugf("finished %s after %d bytes with error: %s", log, n, err.Error())
		return err
	}
	logrus.Debugf("finished %s, %d bytes", log, n)
	return nil
}

func (s *Session) transformer() io.Writer {
	if s.decoder != nil {
		return s.decoder
	}
	return s.encoder
}
