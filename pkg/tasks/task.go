// Package tasks composes and executes the ordered, platform-specific
// list of maintenance tasks. Each task is gated by an applicability
// predicate over the resolved configuration and tool probes; failures
// are isolated so one broken step never stops the rest of the run.
package tasks

import (
	"github.com/rs/zerolog"

	"github.com/waynelloyd/system-updater/pkg/config"
	"github.com/waynelloyd/system-updater/pkg/confirm"
	"github.com/waynelloyd/system-updater/pkg/execute"
	"github.com/waynelloyd/system-updater/pkg/fleet"
	"github.com/waynelloyd/system-updater/pkg/logging"
	"github.com/waynelloyd/system-updater/pkg/outcome"
	"github.com/waynelloyd/system-updater/pkg/platform"
)

// Status is the outcome of one task. Skipped is distinct from Failed:
// it never counts against the success ratio and never produces a
// Failure record.
type Status int

const (
	StatusSkipped Status = iota
	StatusSucceeded
	StatusFailed
)

// Task is a named unit of maintenance work. Tasks are constructed once
// per run, in a fixed platform-specific order, and have no persisted
// identity.
type Task struct {
	Name string
	// ShouldRun is the applicability predicate; a nil predicate means
	// the task always runs.
	ShouldRun func() bool
	Run       func() Status
}

// Env bundles the collaborators every task needs. It is assembled once
// per run.
type Env struct {
	Platform platform.Family
	Settings *config.Settings
	Exec     *execute.Executor
	Tracker  *outcome.Tracker
	Confirm  confirm.Confirmer
	Fleet    *fleet.Manager
	Home     string
}

// Runner executes a task list in order, tallying outcomes into the
// tracker. It never aborts the remaining tasks because of one
// failure.
type Runner struct {
	tracker *outcome.Tracker
	log     zerolog.Logger
}

// NewRunner returns a Runner tallying into the given tracker.
func NewRunner(tracker *outcome.Tracker) *Runner {
	return &Runner{
		tracker: tracker,
		log:     logging.GetLogger("tasks"),
	}
}

// RunAll executes every applicable task. Skipped tasks increment
// neither counter; every other task increments the total, and a
// succeeded one increments the success count.
func (r *Runner) RunAll(tasks []Task) {
	for _, task := range tasks {
		if task.ShouldRun != nil && !task.ShouldRun() {
			r.log.Debug().Str("task", task.Name).Msg("Task skipped")
			continue
		}

		status := task.Run()
		if status == StatusSkipped {
			r.log.Debug().Str("task", task.Name).Msg("Task skipped at run time")
			continue
		}

		r.tracker.TaskStarted()
		if status == StatusSucceeded {
			r.tracker.TaskSucceeded()
		}
		r.log.Debug().Str("task", task.Name).Int("status", int(status)).Msg("Task finished")
	}
}

// Build composes the task list for the detected platform. Docker
// maintenance is cross-platform and appended last when the docker CLI
// is present; an unsupported platform gets only that tail, so the run
// still exits by the success ratio rather than failing outright.
func Build(env *Env) []Task {
	var tasks []Task

	switch {
	case env.Platform == platform.MacOS:
		tasks = macOSTasks(env)
	case env.Platform.Linux():
		tasks = linuxTasks(env)
	}

	return append(tasks, dockerTasks(env)...)
}

// boolStatus maps a command success flag onto a task status.
func boolStatus(ok bool) Status {
	if ok {
		return StatusSucceeded
	}
	return StatusFailed
}
