package vtgrid

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"

	"github.com/creack/pty"
)

// PTY is the master side of a pseudo terminal.
type PTY interface {
	io.ReadWriteCloser
	// Resize changes the window size the child sees.
	Resize(cols, rows int) error
}

// Command is a child process running on a pty.
type Command struct {
	file *os.File
	cmd  *exec.Cmd

	stop     func() bool
	waitOnce sync.Once
	waitErr  error
}

// StartCommand starts cmd with its stdio attached to a new pty of the given
// size. The child is killed when ctx is done.
func StartCommand(ctx context.Context, cmd *exec.Cmd, rows, cols int) (*Command, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, cols, rows)
	}
	f, err := pty.StartWithSize(cmd, winsize(cols, rows))
	if err != nil {
		return nil, fmt.Errorf("%w: start %s: %w", ErrPTY, cmd.Path, err)
	}
	c := &Command{file: f, cmd: cmd}
	c.stop = context.AfterFunc(ctx, func() {
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
	})
	return c, nil
}

func winsize(cols, rows int) *pty.Winsize {
	return &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)}
}

func (c *Command) Read(p []byte) (int, error) {
	n, err := c.file.Read(p)
	// Linux reports EIO on the master once the child side is gone.
	if errors.Is(err, syscall.EIO) {
		err = io.EOF
	}
	return n, err
}

func (c *Command) Write(p []byte) (int, error) { return c.file.Write(p) }

func (c *Command) Resize(cols, rows int) error {
	return pty.Setsize(c.file, winsize(cols, rows))
}

// Close closes the pty. The child gets SIGHUP from the kernel.
func (c *Command) Close() error {
	return c.file.Close()
}

// Wait waits for the child to exit. It may be called more than once.
func (c *Command) Wait() error {
	c.waitOnce.Do(func() {
		c.waitErr = c.cmd.Wait()
		c.stop()
	})
	return c.waitErr
}

// ExitCode is the child's exit status, -1 while it runs.
func (c *Command) ExitCode() int {
	if c.cmd.ProcessState == nil {
		return -1
	}
	return c.cmd.ProcessState.ExitCode()
}

func (c *Command) Pid() int {
	if c.cmd.Process == nil {
		return -1
	}
	return c.cmd.Process.Pid
}
