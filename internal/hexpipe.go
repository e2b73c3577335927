package internal

import (
	"context"
	"github.com/nimatrueway/hexpipe/internal/config"
	"github.com/nimatrueway/hexpipe/internal/io/term"
	"github.com/nimatrueway/hexpipe/internal/stream"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
	"io"
)

// Run encodes or decodes the given inputs to stdout as one session, following config.Config.
func Run(ctx context.Context, stdin io.Reader, stdout io.Writer, files []string, inline mo.Option[string]) error {
	sources := stream.Sources(files, inline, stdin)
	if term.IsInteractive(stdin) && lo.ContainsBy(sources, func(s stream.Source) bool { return s.Name == "stdin" }) {
		logrus.Info("reading from the terminal, end the input with Ctrl-D")
	}

	session := stream.NewSession(
		config.Config.Codec.Mode,
		config.Config.CodecOptions(),
		stdout,
		int(config.Config.Stream.Buffer),
	)
	return session.Run(ctx, sources)
}
