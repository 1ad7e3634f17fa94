// Package fleet maintains the set of docker-compose directories the
// updater refreshes: first-run discovery and curation, per-run
// validation of the persisted selection, and the pull-with-change-
// detection plus conditional-restart loop. Targets are processed
// strictly one at a time.
package fleet

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/waynelloyd/system-updater/pkg/config"
	"github.com/waynelloyd/system-updater/pkg/confirm"
	"github.com/waynelloyd/system-updater/pkg/execute"
	"github.com/waynelloyd/system-updater/pkg/logging"
	"github.com/waynelloyd/system-updater/pkg/ui"
)

// Manager owns the fleet-target selection and its refresh cycle.
type Manager struct {
	store   *config.Store
	exec    *execute.Executor
	confirm confirm.Confirmer
	home    string
	log     zerolog.Logger
}

// NewManager creates a fleet manager. home roots discovery; the
// executor performs the pull/restart commands and records failures.
// confirmer answers the one-time curation; it may be nil when no
// prompt channel exists, in which case Setup defers the decision.
func NewManager(store *config.Store, exec *execute.Executor, confirmer confirm.Confirmer, home string) *Manager {
	return &Manager{
		store:   store,
		exec:    exec,
		confirm: confirmer,
		home:    home,
		log:     logging.GetLogger("fleet"),
	}
}

// Setup runs first-run discovery and curation when no selection has
// been persisted yet, and returns the enabled target list. Once the
// setup marker is present the persisted selection is returned as-is,
// so discovery is never repeated. When candidates exist but no
// confirmer is available the decision stays unpersisted and setup is
// retried on the next run.
func (m *Manager) Setup() []string {
	doc := m.store.Load()
	if config.DocBool(doc, config.KeyComposeSetupDone, false) {
		return config.DocStringSlice(doc, config.KeyComposePaths)
	}

	sp := ui.Spinner("Searching for docker-compose files in your home directory...")
	candidates := m.Discover()
	ui.StopSpinner(sp)

	if len(candidates) == 0 {
		ui.Infof("No docker-compose files found in common locations")
		enabled := false
		if m.confirm != nil {
			enabled = m.confirm.Confirm("Would you like to enable Docker operations anyway?", false)
		}
		m.persistSelection(doc, enabled, nil)
		return nil
	}

	ui.Infof("Found docker-compose files in %d location(s):", len(candidates))
	for _, dir := range candidates {
		name, _ := composeFileIn(dir)
		ui.Plain("  " + dir + " (" + name + ")")
	}

	// The curation choice belongs to the operator. Without a prompt
	// channel the decision is deferred to a later run; nothing is
	// persisted, so discovery happens again next time.
	if m.confirm == nil {
		ui.Infof("Run system-updater from a terminal to choose which locations to enable")
		return nil
	}

	selected := m.confirm.SelectTargets(candidates)
	m.persistSelection(doc, len(selected) > 0, selected)

	if len(selected) > 0 {
		ui.Successf("Docker-compose operations enabled for %d location(s)", len(selected))
	} else {
		ui.Infof("Docker-compose operations disabled")
	}
	return selected
}

// Enabled reports whether compose operations were enabled during
// setup.
func (m *Manager) Enabled() bool {
	return config.DocBool(m.store.Load(), config.KeyComposeEnabled, false)
}

// persistSelection writes the setup marker, enabled flag and chosen
// directory list back to the store. The decision is always persisted,
// even when empty, so discovery is not repeated on subsequent runs.
func (m *Manager) persistSelection(doc config.Document, enabled bool, paths []string) {
	if paths == nil {
		paths = []string{}
	}
	doc[config.KeyComposeSetupDone] = true
	doc[config.KeyComposeEnabled] = enabled
	doc[config.KeyComposePaths] = paths
	if err := m.store.Save(doc); err != nil {
		m.log.Warn().Err(err).Msg("Could not persist compose selection")
	}
}

// Refresh validates the persisted targets and performs pull plus
// conditional restart on each, strictly sequentially. It returns true
// iff no target produced a pull or restart failure; per-target failure
// never stops processing of the remaining targets.
func (m *Manager) Refresh() bool {
	doc := m.store.Load()
	paths := config.DocStringSlice(doc, config.KeyComposePaths)
	if len(paths) == 0 {
		ui.Infof("No docker-compose directories configured, skipping")
		return true
	}

	// Re-filter through the exclusion rules; the reduced list is
	// re-persisted immediately so the selection self-heals when the
	// rules change.
	valid := paths[:0:0]
	for _, p := range paths {
		if Excluded(p) {
			continue
		}
		valid = append(valid, p)
	}
	if len(valid) != len(paths) {
		doc[config.KeyComposePaths] = valid
		if err := m.store.Save(doc); err != nil {
			m.log.Warn().Err(err).Msg("Could not persist cleaned compose paths")
		}
		ui.Infof("Cleaned up %d invalid docker-compose path(s)", len(paths)-len(valid))
	}

	if len(valid) == 0 {
		ui.Infof("No valid docker-compose directories configured, skipping")
		return true
	}

	ok := true
	for _, dir := range valid {
		if !m.refreshTarget(dir) {
			ok = false
		}
	}
	return ok
}

// refreshTarget pulls one target and restarts it only when the pull
// output shows an image was fetched. Targets that are invalid this run
// (missing directory or compose file, unparseable compose file) are
// skipped silently and retained for future runs.
func (m *Manager) refreshTarget(dir string) bool {
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		ui.Warnf("Directory %s no longer exists, skipping", dir)
		return true
	}

	name, found := composeFileIn(dir)
	if !found {
		ui.Warnf("No compose file found in %s, skipping", dir)
		return true
	}

	if err := validateComposeFile(filepath.Join(dir, name)); err != nil {
		ui.Warnf("Compose file in %s is not valid YAML, skipping: %v", dir, err)
		m.log.Warn().Err(err).Str("dir", dir).Msg("Compose file failed sanity parse")
		return true
	}

	restore, err := pushd(dir)
	if err != nil {
		m.exec.Tracker().AddFailure("Could not enter "+dir, "cd "+dir, "1")
		return false
	}
	defer restore()

	out, ok := m.exec.Capture(execute.Command{
		Program:     "docker-compose",
		Args:        []string{"pull"},
		Description: "Pulling docker-compose images in " + dir,
	})
	if !ok {
		ui.Plain(out)
		return false
	}

	ui.Plain(out)

	if !UpdatesDetected(out) {
		ui.Infof("No updates found, containers not restarted")
		return true
	}

	ui.Infof("Updates detected, restarting containers...")
	restarted := m.exec.Run(execute.Command{
		Program:     "docker-compose",
		Args:        []string{"up", "-d"},
		Description: "Restarting containers in " + dir,
	})
	if restarted {
		ui.Successf("Containers restarted successfully")
	}
	// A restart failure was recorded by the executor; the pull itself
	// remains succeeded.
	return restarted
}

// validateComposeFile checks that the stack definition parses as a
// YAML mapping before any command runs against it.
func validateComposeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var doc map[string]interface{}
	return yaml.Unmarshal(data, &doc)
}
