package tasks

import (
	"strconv"
	"strings"

	"github.com/waynelloyd/system-updater/pkg/execute"
	"github.com/waynelloyd/system-updater/pkg/platform"
	"github.com/waynelloyd/system-updater/pkg/ui"
)

// linuxTasks is the ordered task list shared by the supported Linux
// families. The OS package step differs per distribution; the tail is
// common.
func linuxTasks(env *Env) []Task {
	tasks := []Task{osPackagesTask(env)}

	tasks = append(tasks,
		snapTask(env),
		flatpakTask(env),
		pipTask(env),
		tmuxTask(env),
		vimTask(env),
		ohMyZshTask(env),
		firmwareTask(env),
	)
	return tasks
}

func osPackagesTask(env *Env) Task {
	return Task{
		Name:      "os-packages",
		ShouldRun: func() bool { return !env.Settings.SkipOSUpdates },
		Run: func() Status {
			switch env.Platform {
			case platform.Ubuntu:
				// The refresh and the upgrade are one logical step;
				// the upgrade decides the outcome.
				env.Exec.Run(execute.Command{
					Program:     "sudo",
					Args:        []string{"apt", "update"},
					Description: "Refreshing APT package lists",
				})
				return boolStatus(env.Exec.Run(execute.Command{
					Program:     "sudo",
					Args:        []string{"apt", "upgrade"},
					Description: "Upgrading APT packages",
				}))
			case platform.Fedora, platform.RHEL:
				return boolStatus(env.Exec.Run(execute.Command{
					Program:     "sudo",
					Args:        []string{"dnf", "upgrade"},
					Description: "Upgrading DNF packages",
				}))
			}
			return StatusSkipped
		},
	}
}

func snapTask(env *Env) Task {
	return Task{
		Name: "snap",
		ShouldRun: func() bool {
			return !env.Settings.SkipSnap && env.Exec.Probe("snap", "--version")
		},
		Run: func() Status {
			return boolStatus(env.Exec.Run(execute.Command{
				Program:     "sudo",
				Args:        []string{"snap", "refresh"},
				Description: "Refreshing snap packages",
			}))
		},
	}
}

func flatpakTask(env *Env) Task {
	return Task{
		Name: "flatpak",
		ShouldRun: func() bool {
			return !env.Settings.SkipFlatpak && env.Exec.Probe("flatpak", "--version")
		},
		Run: func() Status {
			metaOK := env.Exec.Run(execute.Command{
				Program:     "flatpak",
				Args:        []string{"update", "--appstream"},
				Description: "Refreshing flatpak metadata",
			})
			pkgOK := env.Exec.Run(execute.Command{
				Program:     "flatpak",
				Args:        []string{"update", "-y"},
				Description: "Updating flatpak packages",
			})
			return boolStatus(metaOK && pkgOK)
		},
	}
}

func pipTask(env *Env) Task {
	return Task{
		Name: "pip",
		ShouldRun: func() bool {
			return !env.Settings.SkipPip && env.Exec.Probe("pip3", "--version")
		},
		Run: func() Status {
			ok := updatePipScope(env, nil, "Updating outdated python packages")
			updatePipScope(env, []string{"--user"}, "Updating outdated python user packages")
			return boolStatus(ok)
		},
	}
}

// updatePipScope checks one pip scope (system or --user) for outdated
// packages and upgrades each one. System-scope install failures are
// recorded; user-scope ones only warn.
func updatePipScope(env *Env, scope []string, description string) bool {
	listArgs := append(append([]string{"list"}, scope...), "--outdated", "--format=columns")
	out, res := env.Exec.CaptureRaw(execute.Command{
		Program:     "pip3",
		Args:        listArgs,
		Description: description,
	})
	if res.Status != execute.StatusSucceeded {
		ui.Warnf("Could not check for outdated pip packages")
		return false
	}

	packages := parsePipOutdated(out)
	if len(packages) == 0 {
		ui.Successf("No outdated pip packages found")
		return true
	}

	success := true
	for _, pkg := range packages {
		installArgs := append(append([]string{"install"}, scope...), "-U", pkg)
		if len(scope) == 0 {
			if !env.Exec.Run(execute.Command{
				Program:     "pip3",
				Args:        installArgs,
				Description: "Upgrading " + pkg,
			}) {
				success = false
			}
			continue
		}
		if _, res := env.Exec.CaptureRaw(execute.Command{
			Program:     "pip3",
			Args:        installArgs,
			Description: "Upgrading " + pkg,
		}); res.Status != execute.StatusSucceeded {
			ui.Warnf("Could not upgrade user package %s", pkg)
		}
	}
	return success
}

// parsePipOutdated extracts package names from the columns-format
// outdated listing, dropping the two header lines.
func parsePipOutdated(output string) []string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) <= 2 {
		return nil
	}

	var packages []string
	for _, line := range lines[2:] {
		fields := strings.Fields(line)
		if len(fields) > 0 {
			packages = append(packages, fields[0])
		}
	}
	return packages
}

func firmwareTask(env *Env) Task {
	return Task{
		Name: "firmware",
		ShouldRun: func() bool {
			return !env.Settings.SkipFirmware && env.Exec.Probe("fwupdmgr", "--version")
		},
		Run: func() Status { return runFirmware(env) },
	}
}

// runFirmware refreshes firmware metadata, checks for updates, and
// applies them only when explicitly allowed: via the apply-firmware
// setting or an interactive confirmation. Unattended runs record a
// pending action instead of flashing firmware.
func runFirmware(env *Env) Status {
	refreshCmd := execute.Command{
		Program:     "sudo",
		Args:        []string{"fwupdmgr", "refresh"},
		Description: "Refreshing firmware metadata",
	}
	if _, res := env.Exec.CaptureRaw(refreshCmd); res.Status != execute.StatusSucceeded {
		// Exit code 2 means the metadata is already current.
		if res.ExitCode == 2 {
			ui.Infof("Firmware metadata is already up to date")
		} else {
			ui.Warnf("Firmware metadata refresh failed (exit code %d)", res.ExitCode)
		}
	}

	checkCmd := execute.Command{
		Program:     "sudo",
		Args:        []string{"fwupdmgr", "get-updates"},
		Description: "Checking for firmware updates",
	}
	out, res := env.Exec.CaptureRaw(checkCmd)
	if res.Status != execute.StatusSucceeded {
		if res.ExitCode == 2 {
			ui.Successf("No firmware updates available")
			return StatusSucceeded
		}
		ui.Failf("Could not check for firmware updates (exit code %d)", res.ExitCode)
		env.Tracker.AddFailure("Checking for firmware updates failed", checkCmd.String(), strconv.Itoa(res.ExitCode))
		return StatusFailed
	}

	if strings.TrimSpace(out) == "" || strings.Contains(out, "No updates available") {
		ui.Successf("No firmware updates available")
		return StatusSucceeded
	}

	ui.Plain(out)
	apply := env.Settings.ApplyFirmware
	if !apply {
		apply = env.Confirm.Confirm("Apply these firmware updates now?", false)
	}
	if !apply {
		ui.Infof("Firmware updates were not applied")
		env.Tracker.AddPending("Firmware updates are available but were not applied. Run with --apply-firmware to install them.")
		return StatusSucceeded
	}

	// fwupdmgr insists on fresh metadata right before flashing.
	env.Exec.CaptureRaw(execute.Command{
		Program: "sudo",
		Args:    []string{"fwupdmgr", "refresh", "--force"},
	})

	updateArgs := []string{"fwupdmgr", "update"}
	if env.Exec.AutoYes() {
		updateArgs = append(updateArgs, "--assume-yes")
	}
	if !env.Exec.Run(execute.Command{
		Program:     "sudo",
		Args:        updateArgs,
		Description: "Applying firmware updates",
	}) {
		return StatusFailed
	}
	env.Tracker.AddPending("A reboot may be required for firmware updates to take effect.")
	return StatusSucceeded
}
