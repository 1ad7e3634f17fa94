// Test Type: Unit Test
// Description: Tests for the root command - flag registration and effective-config printing

package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waynelloyd/system-updater/pkg/config"
)

func TestSettingFlagsRegistered(t *testing.T) {
	keys := []string{
		config.KeyInteractive,
		config.KeySkipOSUpdates,
		config.KeySkipVim,
		config.KeySkipTmux,
		config.KeySkipOMZ,
		config.KeySkipPip,
		config.KeySkipDockerPull,
		config.KeySkipDockerPrune,
		config.KeySkipSnap,
		config.KeySkipFlatpak,
		config.KeySkipFirmware,
		config.KeyApplyFirmware,
		config.KeyServiceRestart,
		config.KeySkipHomebrew,
		config.KeySkipMas,
		config.KeyMacUpdater,
	}

	for _, key := range keys {
		assert.NotNil(t, rootCmd.Flags().Lookup(key), "flag %s should be registered", key)
	}
	assert.NotNil(t, rootCmd.Flags().ShorthandLookup("i"))
}

func TestPrintConfigShowsEffectiveSettings(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"--print-config", "--skip-pip"})
	require.NoError(t, rootCmd.Execute())

	var got map[string]bool
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.True(t, got["skip_pip"], "explicit flag should show in the effective config")
	assert.False(t, got["skip_os_updates"])
	assert.False(t, got["interactive"])
}
