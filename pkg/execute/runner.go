// Package execute runs external programs to completion and classifies
// their outcomes. The Runner interface is the seam tests use to fake
// package managers; Executor layers failure recording and unattended
// auto-confirmation on top.
package execute

import (
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/waynelloyd/system-updater/pkg/logging"
)

// Status classifies how an external command finished.
type Status int

const (
	// StatusSucceeded means the process exited with status zero.
	StatusSucceeded Status = iota
	// StatusFailed means the process ran and exited non-zero.
	StatusFailed
	// StatusNotFound means the executable was not present on the system.
	StatusNotFound
)

// Result is the classified outcome of one command.
type Result struct {
	Status   Status
	ExitCode int
}

// Command describes one external program invocation.
type Command struct {
	Program     string
	Args        []string
	Description string
	// Dir, when set, is the working directory for the child process.
	Dir string
}

// String returns the full command text as the operator would type it.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Program
	}
	return c.Program + " " + strings.Join(c.Args, " ")
}

// Runner runs external commands. There are no retries and no
// timeouts; every call blocks until the child process exits.
type Runner interface {
	// Run executes the command streaming its output to the terminal.
	Run(cmd Command) Result

	// Capture executes the command and returns its combined standard
	// output and standard error.
	Capture(cmd Command) (string, Result)

	// Probe checks tool availability by running its version/help
	// command with all output discarded. A false result means the
	// task should be silently skipped, never failed.
	Probe(program string, args ...string) bool
}

type osRunner struct {
	log zerolog.Logger
}

// NewRunner returns the Runner backed by os/exec.
func NewRunner() Runner {
	return &osRunner{log: logging.GetLogger("execute")}
}

func (r *osRunner) Run(cmd Command) Result {
	logging.LogCommand(cmd.Program, cmd.Args)

	c := exec.Command(cmd.Program, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr

	return classify(c.Run())
}

func (r *osRunner) Capture(cmd Command) (string, Result) {
	logging.LogCommand(cmd.Program, cmd.Args)

	c := exec.Command(cmd.Program, cmd.Args...)
	c.Dir = cmd.Dir

	out, err := c.CombinedOutput()
	return string(out), classify(err)
}

func (r *osRunner) Probe(program string, args ...string) bool {
	c := exec.Command(program, args...)
	err := c.Run()
	if err != nil {
		r.log.Debug().Str("program", program).Err(err).Msg("Tool probe failed")
	}
	return err == nil
}

func classify(err error) Result {
	if err == nil {
		return Result{Status: StatusSucceeded}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Result{Status: StatusFailed, ExitCode: exitErr.ExitCode()}
	}

	if errors.Is(err, exec.ErrNotFound) {
		return Result{Status: StatusNotFound, ExitCode: -1}
	}

	return Result{Status: StatusFailed, ExitCode: -1}
}
