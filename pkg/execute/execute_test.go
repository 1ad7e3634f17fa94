// Test Type: Unit Test
// Description: Tests for the execute package - outcome classification, failure recording, auto-confirm

package execute_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waynelloyd/system-updater/pkg/errors"
	"github.com/waynelloyd/system-updater/pkg/execute"
	"github.com/waynelloyd/system-updater/pkg/outcome"
)

// fakeRunner returns canned results and records the commands it saw.
type fakeRunner struct {
	result   execute.Result
	output   string
	probeOK  bool
	commands []execute.Command
}

func (f *fakeRunner) Run(cmd execute.Command) execute.Result {
	f.commands = append(f.commands, cmd)
	return f.result
}

func (f *fakeRunner) Capture(cmd execute.Command) (string, execute.Result) {
	f.commands = append(f.commands, cmd)
	return f.output, f.result
}

func (f *fakeRunner) Probe(program string, args ...string) bool {
	return f.probeOK
}

func TestCommandString(t *testing.T) {
	cmd := execute.Command{Program: "sudo", Args: []string{"apt", "upgrade"}}
	assert.Equal(t, "sudo apt upgrade", cmd.String())

	assert.Equal(t, "docker-compose", execute.Command{Program: "docker-compose"}.String())
}

func TestRunSuccessRecordsNothing(t *testing.T) {
	tracker := outcome.NewTracker()
	runner := &fakeRunner{result: execute.Result{Status: execute.StatusSucceeded}}
	ex := execute.New(runner, tracker, false)

	ok := ex.Run(execute.Command{Program: "snap", Args: []string{"refresh"}, Description: "Refreshing snap packages"})

	assert.True(t, ok)
	assert.Empty(t, tracker.Failures())
}

func TestRunFailureRecordsExitCodeAndCommandText(t *testing.T) {
	tracker := outcome.NewTracker()
	runner := &fakeRunner{result: execute.Result{Status: execute.StatusFailed, ExitCode: 3}}
	ex := execute.New(runner, tracker, false)

	ok := ex.Run(execute.Command{
		Program:     "sudo",
		Args:        []string{"dnf", "upgrade"},
		Description: "Updating Fedora packages",
	})

	require.False(t, ok)
	failures := tracker.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, "Updating Fedora packages failed with exit code 3", failures[0].Description)
	assert.Equal(t, "3", failures[0].ExitCode)
	// Auto-yes was off, so the literal command text is preserved.
	assert.Equal(t, "sudo dnf upgrade", failures[0].Command)
}

func TestRunNotFoundRecordsDistinctFailure(t *testing.T) {
	tracker := outcome.NewTracker()
	runner := &fakeRunner{result: execute.Result{Status: execute.StatusNotFound, ExitCode: -1}}
	ex := execute.New(runner, tracker, false)

	ok := ex.Run(execute.Command{Program: "docker-compose", Args: []string{"pull"}, Description: "Pulling images"})

	require.False(t, ok)
	failures := tracker.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, "Command not found: docker-compose", failures[0].Description)
	assert.Equal(t, outcome.ExitCodeNotFound, failures[0].ExitCode)
}

func TestAutoYesAppendedForPackageManagers(t *testing.T) {
	tests := []struct {
		name     string
		autoYes  bool
		cmd      execute.Command
		wantArgs []string
	}{
		{
			name:     "sudo_apt_gets_dash_y",
			autoYes:  true,
			cmd:      execute.Command{Program: "sudo", Args: []string{"apt", "upgrade"}},
			wantArgs: []string{"apt", "upgrade", "-y"},
		},
		{
			name:     "direct_dnf_gets_dash_y",
			autoYes:  true,
			cmd:      execute.Command{Program: "dnf", Args: []string{"upgrade"}},
			wantArgs: []string{"upgrade", "-y"},
		},
		{
			name:     "existing_dash_y_not_duplicated",
			autoYes:  true,
			cmd:      execute.Command{Program: "sudo", Args: []string{"yum", "update", "-y"}},
			wantArgs: []string{"yum", "update", "-y"},
		},
		{
			name:     "non_package_manager_untouched",
			autoYes:  true,
			cmd:      execute.Command{Program: "brew", Args: []string{"upgrade"}},
			wantArgs: []string{"upgrade"},
		},
		{
			name:     "interactive_mode_untouched",
			autoYes:  false,
			cmd:      execute.Command{Program: "sudo", Args: []string{"apt", "upgrade"}},
			wantArgs: []string{"apt", "upgrade"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{result: execute.Result{Status: execute.StatusSucceeded}}
			ex := execute.New(runner, outcome.NewTracker(), tt.autoYes)

			ex.Run(tt.cmd)

			require.Len(t, runner.commands, 1)
			assert.Equal(t, tt.wantArgs, runner.commands[0].Args)
		})
	}
}

func TestCaptureRawRecordsNothing(t *testing.T) {
	tracker := outcome.NewTracker()
	runner := &fakeRunner{
		output: "package.json outdated list",
		result: execute.Result{Status: execute.StatusFailed, ExitCode: 1},
	}
	ex := execute.New(runner, tracker, true)

	out, result := ex.CaptureRaw(execute.Command{Program: "npm", Args: []string{"outdated", "-g"}})

	assert.Equal(t, "package.json outdated list", out)
	assert.Equal(t, execute.StatusFailed, result.Status)
	assert.Equal(t, 1, result.ExitCode)
	assert.Empty(t, tracker.Failures())
}

func TestOSRunnerClassification(t *testing.T) {
	runner := execute.NewRunner()

	t.Run("exit_zero", func(t *testing.T) {
		_, result := runner.Capture(execute.Command{Program: "sh", Args: []string{"-c", "exit 0"}})
		assert.Equal(t, execute.StatusSucceeded, result.Status)
	})

	t.Run("non_zero_exit_code_preserved", func(t *testing.T) {
		_, result := runner.Capture(execute.Command{Program: "sh", Args: []string{"-c", "exit 3"}})
		assert.Equal(t, execute.StatusFailed, result.Status)
		assert.Equal(t, 3, result.ExitCode)
	})

	t.Run("missing_binary", func(t *testing.T) {
		_, result := runner.Capture(execute.Command{Program: "definitely-not-a-real-binary-2f8a"})
		assert.Equal(t, execute.StatusNotFound, result.Status)
	})

	t.Run("combined_output", func(t *testing.T) {
		out, result := runner.Capture(execute.Command{Program: "sh", Args: []string{"-c", "echo out; echo err 1>&2"}})
		assert.Equal(t, execute.StatusSucceeded, result.Status)
		assert.Contains(t, out, "out")
		assert.Contains(t, out, "err")
	})

	t.Run("probe", func(t *testing.T) {
		assert.True(t, runner.Probe("sh", "-c", "exit 0"))
		assert.False(t, runner.Probe("definitely-not-a-real-binary-2f8a"))
	})
}

func TestResultErrCarriesErrorCode(t *testing.T) {
	cmd := execute.Command{Program: "sudo", Args: []string{"apt", "upgrade"}}

	ok := execute.Result{Status: execute.StatusSucceeded}
	assert.NoError(t, ok.Err(cmd))

	failed := execute.Result{Status: execute.StatusFailed, ExitCode: 100}
	err := failed.Err(cmd)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))
	assert.Contains(t, err.Error(), "sudo apt upgrade")

	missing := execute.Result{Status: execute.StatusNotFound}
	err = missing.Err(cmd)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandNotFound))
}
