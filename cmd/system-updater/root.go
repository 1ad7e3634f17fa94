package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/waynelloyd/system-updater/internal/version"
	"github.com/waynelloyd/system-updater/pkg/config"
	"github.com/waynelloyd/system-updater/pkg/confirm"
	"github.com/waynelloyd/system-updater/pkg/execute"
	"github.com/waynelloyd/system-updater/pkg/fleet"
	"github.com/waynelloyd/system-updater/pkg/logging"
	"github.com/waynelloyd/system-updater/pkg/outcome"
	"github.com/waynelloyd/system-updater/pkg/platform"
	"github.com/waynelloyd/system-updater/pkg/tasks"
	"github.com/waynelloyd/system-updater/pkg/ui"
)

var (
	verbosity   int
	printConfig bool

	// exitCode is what main exits with after a completed run: 0 iff
	// every counted task succeeded and nothing was recorded as failed.
	exitCode int

	rootCmd = &cobra.Command{
		Use:   "system-updater",
		Short: "Keep a macOS or Linux machine up to date in one run",
		Long: `system-updater runs the full maintenance routine for the current
machine in one pass: OS packages, package managers, editor and shell
plugins, firmware, and the docker-compose fleet. Individual steps can
be skipped via flags or the persisted configuration; a failed step
never stops the rest of the run.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE:          runUpdate,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	// Every boolean setting is also a flag under its canonical
	// hyphenated name; an explicitly set flag overrides the persisted
	// configuration for this run only.
	flags := rootCmd.Flags()
	flags.BoolP(config.KeyInteractive, "i", false, "Prompt before consequential steps instead of running unattended")
	flags.Bool(config.KeySkipOSUpdates, false, "Skip operating system package updates")
	flags.Bool(config.KeySkipVim, false, "Skip vim plugin updates")
	flags.Bool(config.KeySkipTmux, false, "Skip tmux plugin updates")
	flags.Bool(config.KeySkipOMZ, false, "Skip oh-my-zsh updates")
	flags.Bool(config.KeySkipPip, false, "Skip python package updates")
	flags.Bool(config.KeySkipDockerPull, false, "Skip docker-compose image refresh")
	flags.Bool(config.KeySkipDockerPrune, false, "Skip docker system prune")
	flags.Bool(config.KeySkipSnap, false, "Skip snap package refresh")
	flags.Bool(config.KeySkipFlatpak, false, "Skip flatpak updates")
	flags.Bool(config.KeySkipFirmware, false, "Skip firmware update checks")
	flags.Bool(config.KeyApplyFirmware, false, "Apply available firmware updates without prompting")
	flags.Bool(config.KeyServiceRestart, false, "Restart services running outdated binaries without prompting")
	flags.Bool(config.KeySkipHomebrew, false, "Skip Homebrew updates")
	flags.Bool(config.KeySkipMas, false, "Skip App Store updates")
	flags.Bool(config.KeyMacUpdater, false, "Update applications with MacUpdater when installed")

	flags.BoolVar(&printConfig, "print-config", false, "Print the effective configuration as JSON and exit")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configureCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	store, err := config.NewStore()
	if err != nil {
		return fmt.Errorf("locating config: %w", err)
	}
	settings := config.Resolve(store.Load(), cmd.Flags())

	if printConfig {
		out, err := json.MarshalIndent(settings.Map(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	family := platform.Detect()
	if !family.Supported() {
		// Platform-specific tasks are unavailable, but the
		// cross-platform docker maintenance still applies and the run
		// still exits by the success ratio.
		ui.Warnf("Unsupported platform: %s; running cross-platform maintenance only", family)
	}
	log.Info().Str("platform", string(family)).Bool("interactive", settings.Interactive).Msg("Starting maintenance run")
	defer logging.LogDuration(time.Now(), "maintenance run")

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolving home directory: %w", err)
	}

	tracker := outcome.NewTracker()
	exec := execute.New(execute.NewRunner(), tracker, settings.Unattended())
	confirmer := confirm.ForMode(settings.Interactive)

	env := &tasks.Env{
		Platform: family,
		Settings: settings,
		Exec:     exec,
		Tracker:  tracker,
		Confirm:  confirmer,
		Fleet:    fleet.NewManager(store, exec, confirm.ForSetup(), home),
		Home:     home,
	}

	tasks.NewRunner(tracker).RunAll(tasks.Build(env))
	tasks.PostRunChecks(env)

	ui.RenderSummary(tracker)
	exitCode = tracker.ExitCode()
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("system-updater version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	},
}
