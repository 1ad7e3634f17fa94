package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/waynelloyd/system-updater/pkg/config"
	"github.com/waynelloyd/system-updater/pkg/confirm"
	"github.com/waynelloyd/system-updater/pkg/platform"
	"github.com/waynelloyd/system-updater/pkg/ui"
)

// commonConfigureKeys apply to every supported platform; the
// per-family lists below are appended to them.
var commonConfigureKeys = []string{
	config.KeyInteractive,
	config.KeySkipOSUpdates,
	config.KeySkipVim,
	config.KeySkipTmux,
	config.KeySkipOMZ,
	config.KeySkipDockerPull,
	config.KeySkipDockerPrune,
}

var linuxConfigureKeys = []string{
	config.KeySkipPip,
	config.KeySkipSnap,
	config.KeySkipFlatpak,
	config.KeySkipFirmware,
	config.KeyApplyFirmware,
	config.KeyServiceRestart,
}

var macConfigureKeys = []string{
	config.KeySkipHomebrew,
	config.KeySkipMas,
	config.KeyMacUpdater,
}

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Interactively edit the persisted configuration",
	Long: `Walks through every setting relevant to this platform and writes the
answers to the configuration file. Settings persist across runs;
command-line flags still override them per run.`,
	RunE: runConfigure,
}

func runConfigure(cmd *cobra.Command, args []string) error {
	store, err := config.NewStore()
	if err != nil {
		return fmt.Errorf("locating config: %w", err)
	}
	doc := store.Load()

	keys := append([]string{}, commonConfigureKeys...)
	family := platform.Detect()
	switch {
	case family == platform.MacOS:
		keys = append(keys, macConfigureKeys...)
	case family.Linux():
		keys = append(keys, linuxConfigureKeys...)
	}

	prompter := confirm.Interactive{}
	ui.Infof("Configuring system-updater (%s)", store.Path())
	for _, key := range keys {
		current := config.DocBool(doc, key, false)
		doc[key] = prompter.Confirm("Enable "+key+"?", current)
		if alias := config.Alias(key); alias != key {
			delete(doc, alias)
		}
	}

	if config.DocBool(doc, config.KeyComposeSetupDone, false) {
		if prompter.Confirm("Re-run docker-compose location discovery on the next run?", false) {
			delete(doc, config.KeyComposeSetupDone)
			delete(doc, config.KeyComposeEnabled)
			delete(doc, config.KeyComposePaths)
		}
	}

	if err := store.Save(doc); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	ui.Successf("Configuration saved to %s", store.Path())
	return nil
}
