// Package confirm abstracts operator yes/no decisions so task logic is
// testable without a terminal. Interactive runs prompt through pterm;
// unattended runs answer with a fixed policy.
package confirm

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// Confirmer answers the operator decisions the run needs: yes/no
// gates, and the fleet-target curation choice.
type Confirmer interface {
	// Confirm asks a yes/no question with the given default answer.
	Confirm(prompt string, def bool) bool

	// SelectTargets presents discovered fleet candidates and returns
	// the subset the operator enabled.
	SelectTargets(candidates []string) []string
}

// AlwaysNo declines every gate and enables nothing. It is the
// conservative default for unattended runs.
type AlwaysNo struct{}

func (AlwaysNo) Confirm(string, bool) bool       { return false }
func (AlwaysNo) SelectTargets([]string) []string { return nil }

// AlwaysYes accepts every gate and enables every candidate.
type AlwaysYes struct{}

func (AlwaysYes) Confirm(string, bool) bool { return true }

func (AlwaysYes) SelectTargets(candidates []string) []string {
	out := make([]string, len(candidates))
	copy(out, candidates)
	return out
}

// Interactive prompts the operator on the terminal.
type Interactive struct{}

func (Interactive) Confirm(prompt string, def bool) bool {
	result, err := pterm.DefaultInteractiveConfirm.
		WithDefaultValue(def).
		Show(prompt)
	if err != nil {
		return def
	}
	return result
}

const (
	choiceEnableAll  = "Enable all locations"
	choiceSelectSome = "Select specific locations"
	choiceDisable    = "Disable docker-compose operations"
)

func (Interactive) SelectTargets(candidates []string) []string {
	choice, err := pterm.DefaultInteractiveSelect.
		WithOptions([]string{choiceEnableAll, choiceSelectSome, choiceDisable}).
		Show("Enable docker-compose operations for the discovered locations?")
	if err != nil {
		return nil
	}

	switch choice {
	case choiceEnableAll:
		out := make([]string, len(candidates))
		copy(out, candidates)
		return out
	case choiceSelectSome:
		selected, err := pterm.DefaultInteractiveMultiselect.
			WithOptions(candidates).
			Show("Select the locations to enable")
		if err != nil {
			return nil
		}
		return selected
	default:
		return nil
	}
}

// ForMode returns the Confirmer for the run: Interactive when the
// operator asked for interactive mode and stdin is a terminal,
// AlwaysNo otherwise. The conservative unattended default means
// destructive gates stay closed without an explicit override.
func ForMode(interactive bool) Confirmer {
	if interactive && isatty.IsTerminal(os.Stdin.Fd()) {
		return Interactive{}
	}
	return AlwaysNo{}
}

// ForSetup returns the prompter for one-time setup decisions, which
// are asked whenever a terminal is available regardless of the run's
// interactive mode. Without a terminal it returns nil; callers defer
// the decision to a later run instead of answering it silently.
func ForSetup() Confirmer {
	if isatty.IsTerminal(os.Stdin.Fd()) {
		return Interactive{}
	}
	return nil
}
