package config

import (
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/waynelloyd/system-updater/pkg/errors"
	"github.com/waynelloyd/system-updater/pkg/logging"
)

// Resolve merges built-in defaults, the persisted document, and
// explicitly set command-line flags into the effective configuration.
// Precedence: a flag the user explicitly set always wins; otherwise
// the persisted value wins; otherwise the built-in default. Both key
// spellings are honored in the persisted layer. Resolve is pure over
// its inputs apart from conflict warnings written to the log.
//
// flags may be nil when no command-line layer applies (tests, wizard).
func Resolve(persisted Document, flags *pflag.FlagSet) *Settings {
	log := logging.GetLogger("config.resolver")

	defaults := make(map[string]interface{}, len(settingKeys))
	for _, key := range settingKeys {
		defaults[key] = false
	}

	k := koanf.New(".")
	// Load() with confmap cannot fail; errors are ignored the same way
	// the koanf docs do for in-memory providers.
	_ = k.Load(confmap.Provider(defaults, "."), nil)
	_ = k.Load(confmap.Provider(normalize(persisted, log), "."), nil)

	if flags != nil {
		// posflag only overrides keys the user explicitly set; flags
		// left at their default defer to whatever k already holds.
		_ = k.Load(posflag.Provider(flags, ".", k), nil)
	}

	return &Settings{
		Interactive:     CoerceBool(k.Get(KeyInteractive)),
		SkipOSUpdates:   CoerceBool(k.Get(KeySkipOSUpdates)),
		SkipVim:         CoerceBool(k.Get(KeySkipVim)),
		SkipTmux:        CoerceBool(k.Get(KeySkipTmux)),
		SkipOMZ:         CoerceBool(k.Get(KeySkipOMZ)),
		SkipPip:         CoerceBool(k.Get(KeySkipPip)),
		SkipDockerPull:  CoerceBool(k.Get(KeySkipDockerPull)),
		SkipDockerPrune: CoerceBool(k.Get(KeySkipDockerPrune)),
		SkipSnap:        CoerceBool(k.Get(KeySkipSnap)),
		SkipFlatpak:     CoerceBool(k.Get(KeySkipFlatpak)),
		SkipFirmware:    CoerceBool(k.Get(KeySkipFirmware)),
		ApplyFirmware:   CoerceBool(k.Get(KeyApplyFirmware)),
		ServiceRestart:  CoerceBool(k.Get(KeyServiceRestart)),
		SkipHomebrew:    CoerceBool(k.Get(KeySkipHomebrew)),
		SkipMas:         CoerceBool(k.Get(KeySkipMas)),
		MacUpdater:      CoerceBool(k.Get(KeyMacUpdater)),
	}
}

// normalize canonicalizes the persisted document's keys to the
// hyphenated spelling. When both spellings of one logical setting are
// present with different effective values, the canonical hyphenated
// key wins deterministically and a warning names the conflict.
func normalize(doc Document, log zerolog.Logger) map[string]interface{} {
	out := make(map[string]interface{}, len(doc))

	// Aliases first so canonical spellings overwrite them.
	for key, value := range doc {
		if Canonical(key) != key {
			out[Canonical(key)] = value
		}
	}
	for key, value := range doc {
		if Canonical(key) != key {
			continue
		}
		if prev, ok := out[key]; ok && CoerceBool(prev) != CoerceBool(value) {
			conflict := errors.Newf(errors.ErrConfigConflict,
				"both %q and %q are set with different values", key, Alias(key))
			log.Warn().
				Err(conflict).
				Str("key", key).
				Str("alias", Alias(key)).
				Msg("Both spellings of a setting are present with different values; the hyphenated spelling wins")
		}
		out[key] = value
	}

	return out
}
