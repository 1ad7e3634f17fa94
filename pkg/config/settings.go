// Package config owns the persisted settings store and the layered
// configuration resolver. Every recognized setting has two accepted
// spellings (the canonical hyphenated key and a registered
// persisted-document alias); resolution merges built-in defaults, the
// persisted store, and explicitly set command-line flags in increasing
// precedence and produces a read-only Settings value for the rest of
// the run.
package config

import (
	"strings"
)

// Canonical setting keys, always hyphenated. Each setting also has a
// persisted-document alias listed in the registry below.
const (
	KeyInteractive     = "interactive"
	KeySkipOSUpdates   = "skip-os-updates"
	KeySkipVim         = "skip-vim"
	KeySkipTmux        = "skip-tmux"
	KeySkipOMZ         = "skip-omz"
	KeySkipPip         = "skip-pip"
	KeySkipDockerPull  = "skip-docker-pull"
	KeySkipDockerPrune = "skip-docker-prune"
	KeySkipSnap        = "skip-snap"
	KeySkipFlatpak     = "skip-flatpak"
	KeySkipFirmware    = "skip-firmware"
	KeyApplyFirmware   = "apply-firmware"
	KeyServiceRestart  = "service-restart"
	KeySkipHomebrew    = "skip-homebrew"
	KeySkipMas         = "skip-mas"
	KeyMacUpdater      = "macupdater"
)

// Fleet selection keys. These are persisted with the underscored
// spelling for compatibility with existing config.json files.
const (
	KeyComposeSetupDone = "docker_compose_setup_done"
	KeyComposeEnabled   = "docker_compose_enabled"
	KeyComposePaths     = "docker_compose_paths"
)

// settingDef is one entry of the setting registry: the canonical
// hyphenated key and the alias accepted in persisted documents. Most
// aliases are the mechanical underscored form, but existing config
// files also carry a few irregular ones (interactive_mode,
// mac_updater) which the registry preserves.
type settingDef struct {
	key   string
	alias string
}

// settingDefs registers every boolean setting the resolver knows
// about. All defaults are false: by default nothing is skipped, mode
// is unattended, and destructive gates stay closed.
var settingDefs = []settingDef{
	{KeyInteractive, "interactive_mode"},
	{KeySkipOSUpdates, "skip_os_updates"},
	{KeySkipVim, "skip_vim"},
	{KeySkipTmux, "skip_tmux"},
	{KeySkipOMZ, "skip_omz"},
	{KeySkipPip, "skip_pip"},
	{KeySkipDockerPull, "skip_docker_pull"},
	{KeySkipDockerPrune, "skip_docker_prune"},
	{KeySkipSnap, "skip_snap"},
	{KeySkipFlatpak, "skip_flatpak"},
	{KeySkipFirmware, "skip_firmware"},
	{KeyApplyFirmware, "apply_firmware"},
	{KeyServiceRestart, "service_restart"},
	{KeySkipHomebrew, "skip_homebrew"},
	{KeySkipMas, "skip_mas"},
	{KeyMacUpdater, "mac_updater"},
}

var (
	settingKeys      []string
	aliasToCanonical map[string]string
)

func init() {
	settingKeys = make([]string, len(settingDefs))
	aliasToCanonical = make(map[string]string, len(settingDefs))
	for i, def := range settingDefs {
		settingKeys[i] = def.key
		aliasToCanonical[def.alias] = def.key
	}
}

// Settings is the effective configuration for one run. It is built
// once by Resolve and read-only thereafter.
type Settings struct {
	Interactive     bool
	SkipOSUpdates   bool
	SkipVim         bool
	SkipTmux        bool
	SkipOMZ         bool
	SkipPip         bool
	SkipDockerPull  bool
	SkipDockerPrune bool
	SkipSnap        bool
	SkipFlatpak     bool
	SkipFirmware    bool
	ApplyFirmware   bool
	ServiceRestart  bool
	SkipHomebrew    bool
	SkipMas         bool
	MacUpdater      bool
}

// Unattended reports whether the run avoids blocking on operator
// input. It is the inverse of interactive mode.
func (s *Settings) Unattended() bool {
	return !s.Interactive
}

// Map returns the effective settings keyed by the underscored
// spelling, the shape emitted by --print-config.
func (s *Settings) Map() map[string]bool {
	return map[string]bool{
		"interactive":       s.Interactive,
		"skip_os_updates":   s.SkipOSUpdates,
		"skip_vim":          s.SkipVim,
		"skip_tmux":         s.SkipTmux,
		"skip_omz":          s.SkipOMZ,
		"skip_pip":          s.SkipPip,
		"skip_docker_pull":  s.SkipDockerPull,
		"skip_docker_prune": s.SkipDockerPrune,
		"skip_snap":         s.SkipSnap,
		"skip_flatpak":      s.SkipFlatpak,
		"skip_firmware":     s.SkipFirmware,
		"apply_firmware":    s.ApplyFirmware,
		"service_restart":   s.ServiceRestart,
		"skip_homebrew":     s.SkipHomebrew,
		"skip_mas":          s.SkipMas,
		"macupdater":        s.MacUpdater,
	}
}

// Canonical maps either accepted spelling of a setting to its
// canonical hyphenated key. Keys outside the registry canonicalize
// mechanically.
func Canonical(key string) string {
	if canonical, ok := aliasToCanonical[key]; ok {
		return canonical
	}
	return strings.ReplaceAll(key, "_", "-")
}

// Alias returns the persisted-document alias of a canonical key. Keys
// outside the registry alias mechanically.
func Alias(key string) string {
	for _, def := range settingDefs {
		if def.key == key {
			return def.alias
		}
	}
	return strings.ReplaceAll(key, "-", "_")
}

// CoerceBool converts a stored value to its effective boolean. Actual
// booleans pass through; strings are true iff, trimmed and lowercased,
// they equal one of "1", "true", "yes", "y"; other types fall back to
// generic truthiness.
func CoerceBool(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "1", "true", "yes", "y":
			return true
		default:
			return false
		}
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	case []interface{}:
		return len(val) > 0
	case map[string]interface{}:
		return len(val) > 0
	default:
		return true
	}
}
