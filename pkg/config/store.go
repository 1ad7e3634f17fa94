package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"

	"github.com/waynelloyd/system-updater/pkg/errors"
	"github.com/waynelloyd/system-updater/pkg/logging"
)

// Document is the persisted key/value settings object. It is read and
// rewritten as a whole; there are no partial updates and no locking
// (single-writer assumption).
type Document map[string]interface{}

// Store persists the settings document to the per-user configuration
// location. The file is created lazily on first save.
type Store struct {
	path string
	log  zerolog.Logger
}

// NewStore returns a Store rooted at the XDG config location
// (~/.config/system-updater/config.json by default).
func NewStore() (*Store, error) {
	path, err := xdg.ConfigFile(filepath.Join("system-updater", "config.json"))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "could not resolve config file location")
	}
	return NewStoreAt(path), nil
}

// NewStoreAt returns a Store using an explicit file path. Used by
// tests and by anything that wants a non-default location.
func NewStoreAt(path string) *Store {
	return &Store{
		path: path,
		log:  logging.GetLogger("config.store"),
	}
}

// Path returns the location of the persisted document.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted document. A missing or unreadable file
// yields an empty document, not an error; the store is created lazily
// on first save.
func (s *Store) Load() Document {
	if _, err := os.Stat(s.path); err != nil {
		return Document{}
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(s.path), kjson.Parser()); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("Could not parse config file, using empty config")
		return Document{}
	}

	return Document(k.Raw())
}

// Save writes the whole document back to disk, creating parent
// directories as needed.
func (s *Store) Save(doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigSave, "could not encode config")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrConfigSave, "could not create config directory for %s", s.path)
	}

	if err := os.WriteFile(s.path, append(data, '\n'), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigSave, "could not save config to %s", s.path)
	}

	s.log.Debug().Str("path", s.path).Msg("Config saved")
	return nil
}

// DocBool reads a boolean from a document, consulting the canonical
// hyphenated spelling and the registered alias and coercing the stored
// value. The canonical spelling wins when both are present.
func DocBool(doc Document, key string, def bool) bool {
	if v, ok := doc[Canonical(key)]; ok {
		return CoerceBool(v)
	}
	if v, ok := doc[Alias(key)]; ok {
		return CoerceBool(v)
	}
	return def
}

// DocStringSlice reads a list of strings from a document under either
// spelling of the key. Non-string entries are dropped.
func DocStringSlice(doc Document, key string) []string {
	v, ok := doc[Canonical(key)]
	if !ok {
		if v, ok = doc[Alias(key)]; !ok {
			return nil
		}
	}

	switch vals := v.(type) {
	case []string:
		out := make([]string, len(vals))
		copy(out, vals)
		return out
	case []interface{}:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
