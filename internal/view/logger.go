package view

import (
	"fmt"
	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/nimatrueway/hexpipe/internal/config"
	"github.com/sirupsen/logrus"
	"io"
	"os"
	"path"
	"runtime"
)

// LogFile is stderr unless a log file is configured, stdout is reserved for the codec output.
var LogFile io.Writer = os.Stderr

func Init() error {
	closeLogFile()
	LogFile = os.Stderr
	if config.Config.Log.File != "" {
		file := config.ProcessString(config.Config.Log.File)
		logFile, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return fmt.Errorf("failed to open log file %s: %w", file, err)
		}
		LogFile = logFile
	}

	logrus.SetOutput(LogFile)
	logrus.SetLevel(config.Config.Log.Level)
	return nil
}

func closeLogFile() {
	if file, ok := LogFile.(*os.File); ok && file != os.Stderr && file != os.Stdout {
		_ = file.Close()
	}
}

func init() {
	logrus.SetOutput(LogFile)
	logrus.SetReportCaller(true)
	logrus.SetFormatter(&nested.Formatter{
		NoColors:        true,
		TimestampFormat: "2006-01-02 15:04:05.000 ",
		CallerFirst:     true,
		CustomCallerFormatter: func(f *runtime.Frame) string {
			return fmt.Sprintf("%s:%d", path.Base(f.File), f.Line)
		},
	})
}
