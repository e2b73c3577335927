package main

import (
	"fmt"
	"github.com/nimatrueway/hexpipe/internal"
	"github.com/nimatrueway/hexpipe/internal/config"
	"github.com/nimatrueway/hexpipe/internal/view"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/ztrue/tracerr"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
)

type rootFlags struct {
	Config           string
	LogLevel         string
	Files            []string
	Decode           bool
	IgnoreWhitespace bool
	Wrap             uint
	Prefix           string
	Inline           string
	PrintConfig      bool
}

func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "hexpipe [flags] [FILE...]",
		Short: "Encode data to hex or decode hex back to data",
		Long: `hexpipe streams its input (files, stdin or an inline string) to stdout as lowercase hex, or decodes hex back
into raw bytes with --decode. Several inputs are processed as one continuous stream.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, args)
		},
	}

	bindFlags(cmd.Flags(), flags)
	cmd.Version = version()

	return cmd
}

func bindFlags(fs *pflag.FlagSet, flags *rootFlags) {
	fs.StringArrayVarP(&flags.Files, "file", "f", nil, "encode/decode data from a file, \"-\" reads stdin (repeatable)")
	fs.BoolVarP(&flags.Decode, "decode", "d", false, "decode data")
	fs.BoolVarP(&flags.IgnoreWhitespace, "ignore-whitespaces", "i", false, "ignore whitespaces while decoding, by default only newlines ('\\n') are ignored")
	fs.UintVarP(&flags.Wrap, "wrap", "w", 0, "wrap encoded lines after number of bytes (2 characters), 0 disables wrapping")
	fs.StringVarP(&flags.Prefix, "prefix", "p", "", "prefix written before every encoded byte, e.g. \"0x\"")
	fs.StringVarP(&flags.Inline, "string", "s", "", "encode/decode the given string")
	fs.StringVarP(&flags.Config, "config", "c", "", "toml config file, flags override its values")
	fs.StringVar(&flags.LogLevel, "log-level", "", "log level (panic, fatal, error, warn, info, debug, trace)")
	fs.BoolVar(&flags.PrintConfig, "print-config", false, "print the effective toml config (file and flags merged) and exit")
}

// version prefers the value injected with -ldflags "-X .../internal/config.Version=...",
// then the module version recorded by the go tool.
func version() string {
	if config.Version != "" {
		return config.Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func run(cmd *cobra.Command, flags *rootFlags, args []string) error {
	if err := configure(cmd, flags); err != nil {
		return err
	}
	if flags.PrintConfig {
		_, err := io.WriteString(cmd.OutOrStdout(), config.Config.SaveData())
		return err
	}

	inline := mo.None[string]()
	if cmd.Flags().Changed("string") {
		inline = mo.Some(flags.Inline)
	}
	files := append(append([]string{}, flags.Files...), args...)

	return internal.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), files, inline)
}

func configure(cmd *cobra.Command, flags *rootFlags) error {
	config.Reset()
	if flags.Config != "" {
		if err := config.Config.Load(flags.Config); err != nil {
			return tracerr.Wrap(err)
		}
	}

	fs := cmd.Flags()
	if fs.Changed("decode") {
		config.Config.Codec.Mode = lo.Ternary(flags.Decode, config.Decode, config.Encode)
	}
	if fs.Changed("ignore-whitespaces") {
		config.Config.Codec.IgnoreWhitespace = flags.IgnoreWhitespace
	}
	if fs.Changed("wrap") {
		config.Config.Codec.Wrap = int(flags.Wrap)
	}
	if fs.Changed("prefix") {
		config.Config.Codec.Prefix = flags.Prefix
	}
	if flags.LogLevel != "" {
		level, err := logrus.ParseLevel(flags.LogLevel)
		if err != nil {
			return tracerr.Wrap(err)
		}
		config.Config.Log.Level = level
	}
	if err := config.Config.Validate(); err != nil {
		return tracerr.Wrap(err)
	}

	return view.Init()
}

func printError(w io.Writer, err error) {
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		_, _ = fmt.Fprint(w, tracerr.SprintSourceColor(err))
	} else {
		_, _ = fmt.Fprintf(w, "hexpipe: %s\n", err.Error())
	}
}

func main() {
	// a closed stdout must surface as EPIPE instead of killing the process,
	// SIGINT and SIGTERM keep their default behaviour and end it right away
	signal.Ignore(syscall.SIGPIPE)

	if err := NewRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}
