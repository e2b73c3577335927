package stream

import (
	"fmt"
	"github.com/nimatrueway/hexpipe/internal/io/core"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"io"
	"os"
	"strings"
)

// StdinName selects standard input when given as a file name.
const StdinName = "-"

// Source is one input of a session, opened only when the session reaches it.
type Source struct {
	Name string
	Open func() (io.ReadCloser, error)
}

func Stdin(r io.Reader) Source {
	return Source{
		Name: "stdin",
		Open: func() (io.ReadCloser, error) {
			return core.NopRCloser(r), nil
		},
	}
}

func File(path string) Source {
	return Source{
		Name: fmt.Sprintf("file://%s", path),
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}

func Inline(str string) Source {
	return Source{
		Name: "string",
		Open: func() (io.ReadCloser, error) {
			return core.NopRCloser(strings.NewReader(str)), nil
		},
	}
}

// Sources lists the session inputs in order: the inline string, then files ("-" being stdin).
// Stdin is used alone when neither is given.
func Sources(files []string, inline mo.Option[string], stdin io.Reader) []Source {
	var sources []Source
	if str, ok := inline.Get(); ok {
		sources = append(sources, Inline(str))
	}
	sources = append(sources, lo.Map(files, func(file string, _ int) Source {
		if file == StdinName {
			return Stdin(stdin)
		}
		return File(file)
	})...)

	if len(sources) == 0 {
		sources = append(sources, Stdin(stdin))
	}
	return sources
}
