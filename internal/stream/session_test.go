package stream

import (
	"bytes"
	"context"
	"github.com/nimatrueway/hexpipe/internal/config"
	"github.com/nimatrueway/hexpipe/internal/io/codec"
	"github.com/nimatrueway/hexpipe/internal/io/core"
	"github.com/stretchr/testify/require"
	"github.com/ztrue/tracerr"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
)

func TestEncodeAppendsLineFeed(t *testing.T) {
	out, err := run(config.Encode, codec.Options{Wrap: 2}, rawSource([]byte{0, 1, 2}))
	require.NoError(t, err)
	require.Equal(t, "0001\n02\n", out)

	// already ends with a line-feed
	out, err = run(config.Encode, codec.Options{Wrap: 2}, rawSource([]byte{0, 1}))
	require.NoError(t, err)
	require.Equal(t, "0001\n", out)

	out, err = run(config.Encode, codec.Options{Prefix: "0x"}, rawSource([]byte{0xab}))
	require.NoError(t, err)
	require.Equal(t, "0xab\n", out)
}

func TestEncodeEmptyInput(t *testing.T) {
	out, err := run(config.Encode, codec.Options{}, Inline(""))
	require.NoError(t, err)
	require.Equal(t, "", out)
}

func TestEncodeSourcesAreContinuous(t *testing.T) {
	opts := codec.Options{Wrap: 2}
	split, err := run(config.Encode, opts, rawSource([]byte{0, 1}), rawSource([]byte{2}))
	require.NoError(t, err)
	whole, err := run(config.Encode, opts, rawSource([]byte{0, 1, 2}))
	require.NoError(t, err)
	require.Equal(t, whole, split)

	split, err = run(config.Encode, codec.Options{Wrap: 3}, rawSource([]byte{0}), rawSource([]byte{1, 2, 3}), rawSource([]byte{4}))
	require.NoError(t, err)
	require.Equal(t, "000102\n0304\n", split)
}

func TestEncodeLargeInputThroughSmallBuffer(t *testing.T) {
	payload := bytes.Repeat([]byte{0xde, 0xad, 0xbe, 0xef}, 1000)
	out := bytes.NewBuffer(nil)
	session := NewSession(config.Encode, codec.Options{Wrap: 16}, out, 7)
	require.NoError(t, session.Run(context.Background(), []Source{rawSource(payload)}))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 250)
	require.Equal(t, strings.Repeat("deadbeef", 4), lines[0])
}

func TestDecode(t *testing.T) {
	out, err := run(config.Decode, codec.Options{}, Inline("48656c6c6f\n"))
	require.NoError(t, err)
	require.Equal(t, "Hello", out)

	out, err = run(config.Decode, codec.Options{IgnoreWhitespace: true}, Inline("48 65 6C 6c\t6F\r\n"))
	require.NoError(t, err)
	require.Equal(t, "Hello", out)
}

func TestDecodeSourcesAreContinuous(t *testing.T) {
	out, err := run(config.Decode, codec.Options{}, Inline("4"), Inline("86"), Inline("5\n"))
	require.NoError(t, err)
	require.Equal(t, "He", out)
}

func TestDecodeOddLengthIsCheckedOnceAtTheEnd(t *testing.T) {
	_, err := run(config.Decode, codec.Options{}, Inline("a"), Inline("bc"))
	require.ErrorIs(t, tracerr.Unwrap(err), codec.ErrOddLength)
}

func TestDecodeMalformedFlushesEarlierBytes(t *testing.T) {
	out, err := run(config.Decode, codec.Options{}, Inline("4865"), Inline("6c 6c"))

	var malformed *codec.MalformedInputError
	require.ErrorAs(t, tracerr.Unwrap(err), &malformed)
	require.Equal(t, byte(' '), malformed.Char)
	require.Equal(t, int64(6), malformed.Offset)
	require.Equal(t, "Hel", out)
}

func TestDecodeStopsAtMalformedSource(t *testing.T) {
	opened := false
	never := Source{Name: "never", Open: func() (io.ReadCloser, error) {
		opened = true
		return core.NopRCloser(strings.NewReader("00")), nil
	}}

	_, err := run(config.Decode, codec.Options{}, Inline("zz"), never)
	require.Error(t, err)
	require.False(t, opened)
}

func TestBrokenPipeIsSuccess(t *testing.T) {
	payload := bytes.Repeat([]byte{1}, 100)
	for _, mode := range []config.Mode{config.Encode, config.Decode} {
		input := payload
		if mode == config.Decode {
			input = bytes.Repeat([]byte("01"), 100)
		}
		session := NewSession(mode, codec.Options{}, closedPipe{}, 8)
		require.NoError(t, session.Run(context.Background(), []Source{rawSource(input)}))
	}
}

func TestOtherWriteFailuresSurface(t *testing.T) {
	session := NewSession(config.Encode, codec.Options{}, failingWriter{syscall.ENOSPC}, 8)
	err := session.Run(context.Background(), []Source{rawSource(bytes.Repeat([]byte{1}, 100))})
	require.ErrorIs(t, tracerr.Unwrap(err), syscall.ENOSPC)
}

func TestOpenFailureSurfaces(t *testing.T) {
	_, err := run(config.Encode, codec.Options{}, File(filepath.Join(t.TempDir(), "missing")))
	require.ErrorIs(t, tracerr.Unwrap(err), os.ErrNotExist)
}

func TestMissingFileNamedBrokenPipeSurfaces(t *testing.T) {
	_, err := run(config.Encode, codec.Options{}, File(filepath.Join(t.TempDir(), "broken pipe")))
	require.Error(t, err)
	require.ErrorIs(t, tracerr.Unwrap(err), os.ErrNotExist)
}

func TestCanceledContextStopsBeforeNextSource(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := bytes.NewBuffer(nil)
	session := NewSession(config.Encode, codec.Options{}, out, 0)
	err := session.Run(ctx, []Source{Inline("a")})
	require.ErrorIs(t, tracerr.Unwrap(err), context.Canceled)
	require.Equal(t, "", out.String())
}

// ----------------------------------------------------------------------------------------------------------------

func run(mode config.Mode, opts codec.Options, sources ...Source) (string, error) {
	out := bytes.NewBuffer(nil)
	session := NewSession(mode, opts, out, 0)
	err := session.Run(context.Background(), sources)
	return out.String(), err
}

func rawSource(p []byte) Source {
	return Source{Name: "raw", Open: func() (io.ReadCloser, error) {
		reader := core.NewChannelReader()
		reader.WriteInRandomChunks(p)
		reader.Fail(io.EOF)
		return core.NopRCloser(reader), nil
	}}
}

type closedPipe struct{}

func (closedPipe) Write([]byte) (int, error) {
	return 0, &os.PathError{Op: "write", Path: "/dev/stdout", Err: syscall.EPIPE}
}

type failingWriter struct {
	err error
}

func (w failingWriter) Write([]byte) (int, error) {
	return 0, w.err
}
