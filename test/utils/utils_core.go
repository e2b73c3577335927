package utils

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// AssertionTimeout is the maximum time to wait for an assertion to complete
const AssertionTimeout = 10 * time.Second

var RootDirCache = ""

// Binary is the path of the hexpipe executable built by BuildBinary
var Binary = ""

// BuildBinary compiles ./cmd into dir
func BuildBinary(dir string) error {
	Binary = filepath.Join(dir, "hexpipe")
	cmd := exec.Command("go", "build", "-o", Binary, "./cmd")
	cmd.Dir = RootDir()
	cmd.Env = lo.Filter(os.Environ(), func(item string, index int) bool {
		return !strings.HasPrefix(item, "CGO")
	})
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("building hexpipe failed: %w\n%s", err, output)
	}
	return nil
}

func RootDir() string {
	if RootDirCache != "" {
		return RootDirCache
	}

	dir, _ := filepath.Abs("")

	// Look for enclosing go.mod.
	for {
		if fi, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil && !fi.IsDir() {
			RootDirCache = dir
			return dir
		}
		d := filepath.Dir(dir)
		if d == dir {
			break
		}
		dir = d
	}

	return ""
}

func TemporaryFile(t *testing.T, name string, content []byte) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

type Result struct {
	Stdout   []byte
	Stderr   string
	ExitCode int
}

// RunHexpipe runs the built binary to completion and logs its stderr
func RunHexpipe(t *testing.T, stdin io.Reader, args ...string) Result {
	cmd := exec.Command(Binary, args...)
	cmd.Stdin = stdin
	stdout := bytes.NewBuffer(nil)
	stderr := bytes.NewBuffer(nil)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		require.NoError(t, err)
	}
	logLines(t, "err", stderr.String())

	return Result{Stdout: stdout.Bytes(), Stderr: stderr.String(), ExitCode: cmd.ProcessState.ExitCode()}
}

func logLines(t *testing.T, stream string, output string) {
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		t.Log(fmt.Sprintf("[process: %s] %s", stream, strings.TrimSpace(scanner.Text())))
	}
}
