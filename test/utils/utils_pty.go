package utils

import (
	"github.com/Netflix/go-expect"
	"github.com/creack/pty"
	"github.com/stretchr/testify/require"
	"os/exec"
	"testing"
	"time"
)

type Console struct {
	*expect.Console
	cmd        *exec.Cmd
	t          *testing.T
	onExitCode chan int
}

// LaunchInTerminal starts hexpipe with its stdin, stdout and stderr attached to the slave end of a
// fresh pseudo terminal, the console drives the master end.
func LaunchInTerminal(t *testing.T, args ...string) *Console {
	console, err := expect.NewTestConsole(t, expect.WithDefaultTimeout(AssertionTimeout))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = console.Close()
	})
	require.NoError(t, pty.Setsize(console.Tty(), &pty.Winsize{Rows: 24, Cols: 80}))

	cmd := exec.Command(Binary, args...)
	cmd.Stdin = console.Tty()
	cmd.Stdout = console.Tty()
	cmd.Stderr = console.Tty()
	cmd.Dir = RootDir()

	err = cmd.Start()
	require.NoError(t, err)

	result := &Console{Console: console, cmd: cmd, t: t, onExitCode: make(chan int, 1)}

	go func() {
		_ = cmd.Wait()
		result.onExitCode <- cmd.ProcessState.ExitCode()
	}()

	return result
}

func (c *Console) MustExpect(s string) string {
	output, err := c.ExpectString(s)
	require.NoError(c.t, err)
	return output
}

func (c *Console) MustSend(s string) {
	_, err := c.Send(s)
	require.NoError(c.t, err)
}

func (c *Console) MustExit(code int) {
	select {
	case exitCode := <-c.onExitCode:
		require.Equal(c.t, code, exitCode)
	case <-time.After(AssertionTimeout):
		_ = c.cmd.Process.Kill()
		c.t.Fatalf("timed out waiting for process to exit")
	}
}
