package execute

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/waynelloyd/system-updater/pkg/errors"
	"github.com/waynelloyd/system-updater/pkg/logging"
	"github.com/waynelloyd/system-updater/pkg/outcome"
	"github.com/waynelloyd/system-updater/pkg/ui"
)

// Err converts a failed result into a coded error; a succeeded result
// yields nil.
func (r Result) Err(cmd Command) error {
	switch r.Status {
	case StatusSucceeded:
		return nil
	case StatusNotFound:
		return errors.Newf(errors.ErrCommandNotFound, "command not found: %s", cmd.Program)
	default:
		return errors.Newf(errors.ErrCommandFailed, "%s exited with code %d", cmd.String(), r.ExitCode)
	}
}

// autoConfirmable lists package managers that accept -y to answer
// prompts; in unattended mode the flag is appended automatically so
// the call does not block waiting for input.
var autoConfirmable = map[string]bool{
	"apt": true,
	"dnf": true,
	"yum": true,
}

// Executor wraps a Runner with outcome recording: failed commands are
// appended to the run's Tracker and never raised further.
type Executor struct {
	runner  Runner
	tracker *outcome.Tracker
	autoYes bool
	log     zerolog.Logger
}

// New creates an Executor recording into the given tracker. autoYes
// enables unattended auto-confirmation.
func New(runner Runner, tracker *outcome.Tracker, autoYes bool) *Executor {
	return &Executor{
		runner:  runner,
		tracker: tracker,
		autoYes: autoYes,
		log:     logging.GetLogger("execute"),
	}
}

// AutoYes reports whether the run is in unattended auto-confirm mode.
func (e *Executor) AutoYes() bool { return e.autoYes }

// Tracker returns the outcome tracker failures are recorded into.
func (e *Executor) Tracker() *outcome.Tracker { return e.tracker }

// Run executes a command with output streamed to the terminal and
// records a Failure on non-zero exit or missing executable. It
// returns true iff the command succeeded.
func (e *Executor) Run(cmd Command) bool {
	cmd = e.withAutoYes(cmd)
	ui.Banner(cmd.Description, cmd.String())

	result := e.runner.Run(cmd)
	return e.record(cmd, result)
}

// Capture executes a command capturing combined stdout and stderr,
// recording a Failure the same way Run does.
func (e *Executor) Capture(cmd Command) (string, bool) {
	cmd = e.withAutoYes(cmd)
	ui.Banner(cmd.Description, cmd.String())

	out, result := e.runner.Capture(cmd)
	return out, e.record(cmd, result)
}

// CaptureRaw executes a command capturing its combined output without
// recording anything. Callers use this for checks whose non-zero exit
// codes carry meaning (npm outdated, fwupdmgr get-updates, dnf
// needs-restarting).
func (e *Executor) CaptureRaw(cmd Command) (string, Result) {
	return e.runner.Capture(cmd)
}

// Probe checks tool availability silently. A failed probe is not a
// Failure; the caller skips its task.
func (e *Executor) Probe(program string, args ...string) bool {
	return e.runner.Probe(program, args...)
}

func (e *Executor) record(cmd Command, result Result) bool {
	switch result.Status {
	case StatusSucceeded:
		ui.Successf("%s completed successfully", cmd.Description)
		return true
	case StatusNotFound:
		msg := fmt.Sprintf("Command not found: %s", cmd.Program)
		ui.Failf("%s", msg)
		e.log.Debug().Err(result.Err(cmd)).Msg("Recorded failure")
		e.tracker.AddFailure(msg, cmd.String(), outcome.ExitCodeNotFound)
		return false
	default:
		msg := fmt.Sprintf("%s failed with exit code %d", cmd.Description, result.ExitCode)
		ui.Failf("%s", msg)
		e.log.Debug().Err(result.Err(cmd)).Msg("Recorded failure")
		e.tracker.AddFailure(msg, cmd.String(), strconv.Itoa(result.ExitCode))
		return false
	}
}

// withAutoYes appends -y for package managers that support it when
// running unattended. The whole command line is scanned because the
// manager is usually invoked through sudo.
func (e *Executor) withAutoYes(cmd Command) Command {
	if !e.autoYes {
		return cmd
	}

	confirmable := autoConfirmable[cmd.Program]
	for _, arg := range cmd.Args {
		if arg == "-y" {
			return cmd
		}
		if autoConfirmable[arg] {
			confirmable = true
		}
	}
	if !confirmable {
		return cmd
	}

	out := cmd
	out.Args = append(append([]string{}, cmd.Args...), "-y")
	return out
}
