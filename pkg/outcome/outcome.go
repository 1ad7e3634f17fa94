// Package outcome holds the per-run ledger of task results: failures
// that need attention, pending actions the operator must perform
// manually, and the success/total counters that drive the process exit
// code. A Tracker is constructed at run start and passed explicitly to
// every task; it is never package-level state.
package outcome

import (
	"github.com/rs/zerolog"

	"github.com/waynelloyd/system-updater/pkg/logging"
)

// ExitCodeNotFound is the exit-code column value recorded when the
// executable itself was missing rather than returning a status.
const ExitCodeNotFound = "not found"

// Failure describes one failed external command. Failures are
// append-only for the duration of a run and never retried.
type Failure struct {
	Description string
	Command     string
	ExitCode    string
}

// Tracker accumulates failures, pending actions and task counters for
// a single run.
type Tracker struct {
	failures  []Failure
	pending   []string
	succeeded int
	total     int
	log       zerolog.Logger
}

// NewTracker returns an empty Tracker for a new run.
func NewTracker() *Tracker {
	return &Tracker{log: logging.GetLogger("outcome")}
}

// AddFailure records a failed command. exitCode is the textual exit
// status, or ExitCodeNotFound when the executable was missing.
func (t *Tracker) AddFailure(description, command, exitCode string) {
	t.failures = append(t.failures, Failure{
		Description: description,
		Command:     command,
		ExitCode:    exitCode,
	})
	t.log.Warn().
		Str("description", description).
		Str("command", command).
		Str("exitCode", exitCode).
		Msg("Failure recorded")
}

// AddPending records a note describing follow-up the user must perform
// manually. Pending actions are informational and never affect the
// exit code.
func (t *Tracker) AddPending(note string) {
	t.pending = append(t.pending, note)
	t.log.Info().Str("note", note).Msg("Pending action recorded")
}

// TaskStarted increments the total task counter.
func (t *Tracker) TaskStarted() {
	t.total++
}

// TaskSucceeded increments the success counter.
func (t *Tracker) TaskSucceeded() {
	t.succeeded++
}

// Succeeded returns the number of tasks that completed successfully.
func (t *Tracker) Succeeded() int { return t.succeeded }

// Total returns the number of tasks that were executed.
func (t *Tracker) Total() int { return t.total }

// Failures returns a copy of the recorded failures.
func (t *Tracker) Failures() []Failure {
	out := make([]Failure, len(t.failures))
	copy(out, t.failures)
	return out
}

// Pending returns a copy of the recorded pending actions.
func (t *Tracker) Pending() []string {
	out := make([]string, len(t.pending))
	copy(out, t.pending)
	return out
}

// ExitCode computes the process exit status: 0 if every executed task
// succeeded and no failures were recorded, 1 otherwise. A run with
// zero applicable tasks and no failures is fully successful.
func (t *Tracker) ExitCode() int {
	if t.succeeded == t.total && len(t.failures) == 0 {
		return 0
	}
	return 1
}
