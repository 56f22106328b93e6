// Package pty runs a process on a pseudo-terminal for the shell panel.
package pty

import (
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/creack/pty"
)

// Size is a terminal size in cells.
type Size struct {
	Rows uint16
	Cols uint16
}

// Terminal is a running process's pseudo-terminal.
type Terminal interface {
	io.ReadWriteCloser
	Resize(Size) error
}

// Starter starts processes on a terminal. Tests swap in pipes.
type Starter interface {
	Start(cmd *exec.Cmd, size Size) (Terminal, error)
}

// Creack starts processes with github.com/creack/pty.
type Creack struct{}

var _ Starter = Creack{}

// Start implements Starter.
func (Creack) Start(cmd *exec.Cmd, size Size) (Terminal, error) {
	f, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: size.Rows, Cols: size.Cols})
	if err != nil {
		return nil, err
	}
	return &fileTerminal{File: f, cmd: cmd}, nil
}

type fileTerminal struct {
	*os.File
	cmd  *exec.Cmd
	once sync.Once
}

func (t *fileTerminal) Resize(size Size) error {
	return pty.Setsize(t.File, &pty.Winsize{Rows: size.Rows, Cols: size.Cols})
}

// Close closes the terminal and stops the process.
func (t *fileTerminal) Close() error {
	var err error
	t.once.Do(func() {
		err = t.File.Close()
		if t.cmd.Process != nil {
			_ = t.cmd.Process.Kill()
			_ = t.cmd.Wait()
		}
	})
	return err
}

// DefaultShell returns $SHELL, or bash or sh from PATH.
func DefaultShell() string {
	if s := os.Getenv("SHELL"); s != "" {
		return s
	}
	if p, err := exec.LookPath("bash"); err == nil {
		return p
	}
	return "sh"
}
