package core

import (
	"bufio"
	"fmt"
	"github.com/sirupsen/logrus"
	"io"
	"os"
	"strings"
)

type WriterLogInterceptor struct {
	io.Writer
	LogLevel logrus.Level
	Prefix   string
}

func NewWriterLogInterceptor(w io.Writer) *WriterLogInterceptor {
	return &WriterLogInterceptor{Writer: w, LogLevel: logrus.TraceLevel}
}

func (wi *WriterLogInterceptor) Write(p []byte) (n int, err error) {
	write, err := wi.Writer.Write(p)

	writerName := DetermineWriterName(wi.Writer)
	if write > 0 {
		logrus.StandardLogger().Logf(wi.LogLevel, "%swrote %d bytes to \"%s\": %#v", wi.Prefix, write, writerName, string(p[:write]))
	}
	if err != nil {
		logrus.StandardLogger().Logf(wi.LogLevel, "%swrite error to \"%s\": %s", wi.Prefix, writerName, err.Error())
	}

	return write, err
}

// --------------------------------------------------------------------------------------------------------------------

type ReaderLogInterceptor struct {
	io.Reader
	LogLevel logrus.Level
	Prefix   string
}

func NewReaderLogInterceptor(r io.Reader) *ReaderLogInterceptor {
	return &ReaderLogInterceptor{Reader: r, LogLevel: logrus.TraceLevel}
}

func (ri *ReaderLogInterceptor) Read(p []byte) (n int, err error) {
	read, err := ri.Reader.Read(p)

	readerName := DetermineReaderName(ri.Reader)
	if read > 0 {
		logrus.StandardLogger().Logf(ri.LogLevel, "%sread %d bytes from \"%s\": %#v", ri.Prefix, read, readerName, string(p[:read]))
	}
	if err != nil && err != io.EOF {
		logrus.StandardLogger().Logf(ri.LogLevel, "%sread error from \"%s\": %s", ri.Prefix, readerName, err.Error())
	}

	return read, err
}

func DetermineWriterName(writer io.Writer) string {
	if logInterceptor, ok := writer.(*WriterLogInterceptor); ok {
		return DetermineWriterName(logInterceptor.Writer)
	} else if w, ok := writer.(*TailWriter); ok {
		return DetermineWriterName(w.Writer)
	} else if _, ok := writer.(*bufio.Writer); ok {
		return "buffered output"
	} else if writer == os.Stdout {
		return "stdout"
	} else if file, ok := writer.(*os.File); ok {
		return fmt.Sprintf("file://%s", file.Name())
	} else {
		return fmt.Sprintf("%T", writer)
	}
}

func DetermineReaderName(reader io.Reader) string {
	if r, ok := reader.(*ReaderLogInterceptor); ok {
		return DetermineReaderName(r.Reader)
	} else if r, ok := reader.(*withRCloser); ok {
		return DetermineReaderName(r.Reader)
	} else if _, ok := reader.(*strings.Reader); ok {
		return "string"
	} else if reader == os.Stdin {
		return "stdin"
	} else if file, ok := reader.(*os.File); ok {
		return fmt.Sprintf("file://%s", file.Name())
	} else {
		return fmt.Sprintf("%T", reader)
	}
}
