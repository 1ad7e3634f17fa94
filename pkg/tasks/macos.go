package tasks

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/waynelloyd/system-updater/pkg/execute"
	"github.com/waynelloyd/system-updater/pkg/outcome"
	"github.com/waynelloyd/system-updater/pkg/ui"
)

const macUpdaterClient = "/Applications/MacUpdater.app/Contents/Resources/macupdater_client"

// macOSTasks is the ordered task list for macOS.
func macOSTasks(env *Env) []Task {
	return []Task{
		softwareUpdateTask(env),
		homebrewTask(env),
		masTask(env),
		gemsTask(env),
		npmTask(env),
		vimTask(env),
		ohMyZshTask(env),
		tmuxTask(env),
		macUpdaterTask(env),
	}
}

func softwareUpdateTask(env *Env) Task {
	return Task{
		Name:      "macos-software-update",
		ShouldRun: func() bool { return !env.Settings.SkipOSUpdates },
		Run:       func() Status { return runSoftwareUpdate(env) },
	}
}

// runSoftwareUpdate installs pending macOS updates. softwareupdate
// reports "No new software available" on stderr and sometimes exits
// non-zero while doing so, so both streams are inspected before
// deciding the outcome.
func runSoftwareUpdate(env *Env) Status {
	cmd := execute.Command{
		Program:     "softwareupdate",
		Args:        []string{"-ia"},
		Description: "Installing macOS software updates",
	}
	ui.Banner(cmd.Description, cmd.String())
	out, res := env.Exec.CaptureRaw(cmd)

	lower := strings.ToLower(out)
	none := strings.Contains(lower, "no new software available")

	if res.Status == execute.StatusNotFound {
		ui.Failf("Command not found: %s", cmd.String())
		env.Tracker.AddFailure(cmd.Description+" failed", cmd.String(), outcome.ExitCodeNotFound)
		return StatusFailed
	}
	if res.Status != execute.StatusSucceeded && !none {
		ui.Failf("%s failed with exit code %d", cmd.Description, res.ExitCode)
		env.Tracker.AddFailure(cmd.Description+" failed", cmd.String(), strconv.Itoa(res.ExitCode))
		return StatusFailed
	}

	if none {
		ui.Successf("No new macOS software available")
		return StatusSucceeded
	}
	if strings.Contains(lower, "restart") || strings.Contains(lower, "reboot") {
		env.Tracker.AddPending("A restart is required to complete the installation of some macOS updates.")
	}
	ui.Successf("macOS software updates installed")
	return StatusSucceeded
}

func homebrewTask(env *Env) Task {
	steps := []execute.Command{
		{Program: "brew", Args: []string{"update"}, Description: "Updating Homebrew"},
		{Program: "brew", Args: []string{"upgrade"}, Description: "Upgrading Homebrew formulae"},
		{Program: "brew", Args: []string{"upgrade", "--cask"}, Description: "Upgrading Homebrew casks"},
		{Program: "brew", Args: []string{"autoremove"}, Description: "Removing unused Homebrew dependencies"},
		{Program: "brew", Args: []string{"cleanup"}, Description: "Cleaning up Homebrew caches"},
	}
	return Task{
		Name: "homebrew",
		ShouldRun: func() bool {
			return !env.Settings.SkipHomebrew && env.Exec.Probe("brew", "--version")
		},
		Run: func() Status {
			success := true
			for _, step := range steps {
				if !env.Exec.Run(step) {
					success = false
				}
			}
			return boolStatus(success)
		},
	}
}

func masTask(env *Env) Task {
	return Task{
		Name: "mas",
		ShouldRun: func() bool {
			return !env.Settings.SkipMas && env.Exec.Probe("mas", "version")
		},
		Run: func() Status {
			out, res := env.Exec.CaptureRaw(execute.Command{
				Program:     "mas",
				Args:        []string{"outdated"},
				Description: "Checking for App Store updates",
			})
			if res.Status != execute.StatusSucceeded {
				ui.Warnf("Could not check for App Store updates")
				return StatusSkipped
			}
			if strings.TrimSpace(out) == "" {
				ui.Successf("No App Store updates available")
				return StatusSucceeded
			}
			return boolStatus(env.Exec.Run(execute.Command{
				Program:     "mas",
				Args:        []string{"upgrade"},
				Description: "Upgrading App Store applications",
			}))
		},
	}
}

func gemsTask(env *Env) Task {
	return Task{
		Name: "ruby-gems",
		// skip-pip gates all the language package managers, not just
		// python's.
		ShouldRun: func() bool {
			return !env.Settings.SkipPip && env.Exec.Probe("gem", "--version")
		},
		Run: func() Status {
			out, res := env.Exec.CaptureRaw(execute.Command{
				Program: "gem",
				Args:    []string{"list", "--user-install"},
			})
			if res.Status != execute.StatusSucceeded || strings.TrimSpace(out) == "" ||
				strings.Contains(strings.ToLower(out), "no gems") {
				return StatusSkipped
			}

			out, res = env.Exec.CaptureRaw(execute.Command{
				Program:     "gem",
				Args:        []string{"outdated", "--user-install"},
				Description: "Checking for outdated gems",
			})
			if res.Status != execute.StatusSucceeded {
				return StatusSkipped
			}
			if strings.TrimSpace(out) == "" {
				ui.Successf("No outdated gems found")
				return StatusSucceeded
			}
			return boolStatus(env.Exec.Run(execute.Command{
				Program:     "gem",
				Args:        []string{"update", "--user-install"},
				Description: "Updating Ruby gems",
			}))
		},
	}
}

func npmTask(env *Env) Task {
	return Task{
		Name: "npm",
		ShouldRun: func() bool {
			return !env.Settings.SkipPip && env.Exec.Probe("npm", "--version")
		},
		Run: func() Status {
			ok := updateNpmScope(env, true)
			if _, err := os.Stat("package.json"); err == nil {
				if !updateNpmScope(env, false) {
					ok = false
				}
			}
			return boolStatus(ok)
		},
	}
}

// updateNpmScope checks one npm scope for outdated packages and
// updates it. npm outdated exits 1 when anything is outdated, so a
// non-zero exit with output means work to do, not an error.
func updateNpmScope(env *Env, global bool) bool {
	outdatedArgs := []string{"outdated"}
	updateArgs := []string{"update"}
	description := "local npm packages"
	if global {
		outdatedArgs = append(outdatedArgs, "-g")
		updateArgs = append(updateArgs, "-g")
		description = "global npm packages"
	}

	out, res := env.Exec.CaptureRaw(execute.Command{
		Program:     "npm",
		Args:        outdatedArgs,
		Description: "Checking for outdated " + description,
	})
	outdated, checkable := npmHasOutdated(out, res)
	if !checkable {
		ui.Warnf("Could not check for outdated %s", description)
		return false
	}
	if !outdated {
		ui.Successf("No outdated %s found", description)
		return true
	}
	return env.Exec.Run(execute.Command{
		Program:     "npm",
		Args:        updateArgs,
		Description: "Updating " + description,
	})
}

// npmHasOutdated interprets an `npm outdated` result. Exit 0 with
// empty output and exit 1 without output both mean nothing is
// outdated; any output means there is. Other failures are
// uncheckable.
func npmHasOutdated(out string, res execute.Result) (outdated, checkable bool) {
	hasOutput := strings.TrimSpace(out) != ""
	switch {
	case res.Status == execute.StatusSucceeded:
		return hasOutput, true
	case res.Status == execute.StatusFailed && res.ExitCode == 1:
		return hasOutput, true
	default:
		return false, false
	}
}

func macUpdaterTask(env *Env) Task {
	return Task{
		Name: "macupdater",
		ShouldRun: func() bool {
			if !env.Settings.MacUpdater {
				return false
			}
			_, err := os.Stat(macUpdaterClient)
			return err == nil
		},
		Run: func() Status {
			scanOK := env.Exec.Run(execute.Command{
				Program:     macUpdaterClient,
				Args:        []string{"--scan"},
				Description: "Scanning for application updates with MacUpdater",
			})
			updateOK := env.Exec.Run(execute.Command{
				Program:     macUpdaterClient,
				Args:        []string{"--update-all"},
				Description: "Updating applications with MacUpdater",
			})
			return boolStatus(scanOK && updateOK)
		},
	}
}

// vundleDir is where Vundle-managed vim plugins live.
func vundleDir(home string) string {
	return filepath.Join(home, ".vim", "bundle", "Vundle.vim")
}
