// Test Type: Unit Test
// Description: Tests for the outcome package - failure/pending ledger and exit code

package outcome_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/waynelloyd/system-updater/pkg/outcome"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name      string
		succeeded int
		total     int
		failures  int
		want      int
	}{
		{"all_succeeded_no_failures", 3, 3, 0, 0},
		{"zero_tasks_no_failures", 0, 0, 0, 0},
		{"one_task_failed", 2, 3, 1, 1},
		{"counters_match_but_failure_recorded", 3, 3, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := outcome.NewTracker()
			for i := 0; i < tt.total; i++ {
				tr.TaskStarted()
			}
			for i := 0; i < tt.succeeded; i++ {
				tr.TaskSucceeded()
			}
			for i := 0; i < tt.failures; i++ {
				tr.AddFailure("something broke", "some-command", "1")
			}
			assert.Equal(t, tt.want, tr.ExitCode())
		})
	}
}

func TestSkippedTasksDoNotCount(t *testing.T) {
	tr := outcome.NewTracker()

	// One skipped task increments neither counter; the rest succeed.
	tr.TaskStarted()
	tr.TaskSucceeded()
	tr.TaskStarted()
	tr.TaskSucceeded()

	assert.Equal(t, 2, tr.Total())
	assert.Equal(t, 2, tr.Succeeded())
	assert.Equal(t, 0, tr.ExitCode())
}

func TestAddFailureRecordsCommandText(t *testing.T) {
	tr := outcome.NewTracker()
	tr.AddFailure("Upgrading packages failed", "sudo apt upgrade -y", "3")

	failures := tr.Failures()
	assert.Len(t, failures, 1)
	assert.Equal(t, "Upgrading packages failed", failures[0].Description)
	assert.Equal(t, "sudo apt upgrade -y", failures[0].Command)
	assert.Equal(t, "3", failures[0].ExitCode)
}

func TestPendingDoesNotAffectExitCode(t *testing.T) {
	tr := outcome.NewTracker()
	tr.TaskStarted()
	tr.TaskSucceeded()
	tr.AddPending("Firmware updates are available but were not applied automatically.")

	assert.Equal(t, 0, tr.ExitCode())
	assert.Equal(t, []string{"Firmware updates are available but were not applied automatically."}, tr.Pending())
}

func TestAccessorsReturnCopies(t *testing.T) {
	tr := outcome.NewTracker()
	tr.AddFailure("a", "b", "1")

	failures := tr.Failures()
	failures[0].Description = "mutated"
	assert.Equal(t, "a", tr.Failures()[0].Description)

	tr.AddPending("note")
	pending := tr.Pending()
	pending[0] = "mutated"
	assert.Equal(t, "note", tr.Pending()[0])
}
