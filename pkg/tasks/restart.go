package tasks

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/waynelloyd/system-updater/pkg/execute"
	"github.com/waynelloyd/system-updater/pkg/platform"
	"github.com/waynelloyd/system-updater/pkg/ui"
)

const rebootCountdown = 10 * time.Second

// PostRunChecks inspects the system after all tasks have finished and
// surfaces restart obligations. It never contributes to the task
// counters; its findings land in the pending-actions list.
func PostRunChecks(env *Env) {
	if env.Platform != platform.Fedora && env.Platform != platform.RHEL {
		return
	}
	if !env.Exec.Probe("dnf", "--version") {
		return
	}
	checkServiceRestarts(env)
	checkRebootRequired(env)
}

// checkServiceRestarts restarts services running outdated binaries.
// `dnf needs-restarting -s` exits 1 when restarts are due and lists
// the unit names on stdout.
func checkServiceRestarts(env *Env) {
	cmd := execute.Command{
		Program:     "sudo",
		Args:        []string{"dnf", "needs-restarting", "-s"},
		Description: "Checking for services that need restarting",
	}
	ui.Banner(cmd.Description, cmd.String())
	out, res := env.Exec.CaptureRaw(cmd)

	switch {
	case res.Status == execute.StatusSucceeded:
		ui.Successf("No services need restarting")
		return
	case res.Status == execute.StatusFailed && res.ExitCode == 1:
		// Restarts are due; fall through.
	default:
		ui.Warnf("Could not check which services need restarting")
		return
	}

	services := parseServices(out)
	if len(services) == 0 {
		ui.Successf("No services need restarting")
		return
	}

	ui.Infof("Services that need restarting:")
	ui.Plain(out)

	restart := env.Settings.ServiceRestart
	if !restart {
		restart = env.Confirm.Confirm("Restart these services now?", false)
	}
	if !restart {
		ui.Infof("Services were not restarted")
		env.Tracker.AddPending("Some services are running outdated binaries and were not restarted. Run with --service-restart or restart them manually.")
		return
	}

	for _, service := range services {
		env.Exec.Run(execute.Command{
			Program:     "sudo",
			Args:        []string{"systemctl", "restart", service},
			Description: "Restarting " + service,
		})
	}
}

// checkRebootRequired asks dnf whether a reboot is due (`-r` exits 1
// when it is). Reboots are never initiated unattended; an interactive
// decline just leaves the pending action standing.
func checkRebootRequired(env *Env) {
	cmd := execute.Command{
		Program:     "sudo",
		Args:        []string{"dnf", "needs-restarting", "-r"},
		Description: "Checking whether a reboot is required",
	}
	ui.Banner(cmd.Description, cmd.String())
	_, res := env.Exec.CaptureRaw(cmd)

	switch {
	case res.Status == execute.StatusSucceeded:
		ui.Successf("No reboot required")
		return
	case res.Status == execute.StatusFailed && res.ExitCode == 1:
		// Reboot required; fall through.
	default:
		ui.Warnf("Could not check whether a reboot is required")
		return
	}

	ui.Warnf("A system reboot is required for some updates to take effect")
	env.Tracker.AddPending("A system reboot is required for some updates to take effect.")

	if env.Settings.Unattended() {
		ui.Infof("Reboot requires manual confirmation; skipping in unattended mode")
		return
	}
	if !env.Confirm.Confirm("Reboot the system now?", false) {
		ui.Infof("Reboot postponed")
		return
	}
	rebootWithCountdown(env)
}

func rebootWithCountdown(env *Env) {
	ui.Warnf("Rebooting in %d seconds. Press Ctrl+C to cancel", int(rebootCountdown.Seconds()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	select {
	case <-time.After(rebootCountdown):
		env.Exec.Run(execute.Command{
			Program:     "sudo",
			Args:        []string{"reboot"},
			Description: "Rebooting the system",
		})
	case <-ctx.Done():
		ui.Infof("Reboot cancelled")
	}
}

func parseServices(output string) []string {
	var services []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			services = append(services, line)
		}
	}
	return services
}
