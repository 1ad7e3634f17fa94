// Package ui is the console rendering layer. All operator-facing
// output funnels through here so the tasks themselves stay free of
// formatting concerns.
package ui

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/waynelloyd/system-updater/pkg/outcome"
)

// Banner prints the header shown before each external command runs.
func Banner(description, command string) {
	pterm.Println()
	pterm.DefaultSection.WithLevel(2).Printfln("Running: %s", description)
	pterm.FgGray.Printfln("Command: %s", command)
}

// Successf prints a success line.
func Successf(format string, args ...interface{}) {
	pterm.Success.Printfln(format, args...)
}

// Warnf prints a warning line.
func Warnf(format string, args ...interface{}) {
	pterm.Warning.Printfln(format, args...)
}

// Failf prints a failure line.
func Failf(format string, args ...interface{}) {
	pterm.Error.Printfln(format, args...)
}

// Infof prints an informational line.
func Infof(format string, args ...interface{}) {
	pterm.Info.Printfln(format, args...)
}

// Plain prints raw command output without any prefix.
func Plain(s string) {
	if strings.TrimSpace(s) == "" {
		return
	}
	pterm.Println(s)
}

// Spinner starts a spinner with the given text and returns it. Callers
// stop it via the returned handle once the long-running call finishes.
func Spinner(text string) *pterm.SpinnerPrinter {
	sp, err := pterm.DefaultSpinner.Start(text)
	if err != nil {
		// Spinner failures are cosmetic; fall back to a plain line.
		pterm.Info.Printfln("%s", text)
		return nil
	}
	return sp
}

// StopSpinner stops a spinner started by Spinner, tolerating nil.
func StopSpinner(sp *pterm.SpinnerPrinter) {
	if sp != nil {
		_ = sp.Stop()
	}
}

// RenderSummary prints the end-of-run report: pending actions,
// failures, and the success ratio.
func RenderSummary(t *outcome.Tracker) {
	if pending := t.Pending(); len(pending) > 0 {
		pterm.DefaultSection.Println("PENDING ACTIONS")
		items := make([]pterm.BulletListItem, 0, len(pending))
		for _, action := range pending {
			items = append(items, pterm.BulletListItem{Level: 0, Text: action})
		}
		_ = pterm.DefaultBulletList.WithItems(items).Render()
	}

	if failures := t.Failures(); len(failures) > 0 {
		pterm.DefaultSection.Println("ISSUES / FAILURES")
		items := make([]pterm.BulletListItem, 0, len(failures))
		for _, f := range failures {
			items = append(items, pterm.BulletListItem{
				Level: 0,
				Text:  fmt.Sprintf("%s (command: %s, exit code: %s)", f.Description, f.Command, f.ExitCode),
			})
		}
		_ = pterm.DefaultBulletList.WithItems(items).Render()
	}

	pterm.DefaultSection.Println("SUMMARY")
	pterm.Printfln("Tasks completed successfully: %d/%d", t.Succeeded(), t.Total())

	if t.ExitCode() == 0 {
		pterm.Success.Println("All tasks completed successfully!")
	} else {
		pterm.Warning.Println("Some tasks failed or need attention. Check the issues above for details.")
	}
}
