package tasks

import (
	"os"
	"path/filepath"

	"github.com/waynelloyd/system-updater/pkg/execute"
	"github.com/waynelloyd/system-updater/pkg/outcome"
	"github.com/waynelloyd/system-updater/pkg/ui"
)

func vimTask(env *Env) Task {
	return Task{
		Name: "vim-plugins",
		ShouldRun: func() bool {
			if env.Settings.SkipVim {
				return false
			}
			_, err := os.Stat(vundleDir(env.Home))
			return err == nil
		},
		Run: func() Status {
			return boolStatus(env.Exec.Run(execute.Command{
				Program:     "vim",
				Args:        []string{"+PluginUpdate", "+qall"},
				Description: "Updating vim plugins",
			}))
		},
	}
}

// tpmUpdateScript finds the TPM update helper. Its location has moved
// between TPM releases, so a few known spots are checked.
func tpmUpdateScript(home string) string {
	base := filepath.Join(home, ".tmux", "plugins", "tpm")
	candidates := []string{
		filepath.Join(base, "bin", "update_plugins"),
		filepath.Join(base, "update_plugins"),
		filepath.Join(base, "scripts", "update_plugin.sh"),
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

func tmuxTask(env *Env) Task {
	return Task{
		Name: "tmux-plugins",
		ShouldRun: func() bool {
			if env.Settings.SkipTmux {
				return false
			}
			_, err := os.Stat(filepath.Join(env.Home, ".tmux", "plugins", "tpm"))
			return err == nil
		},
		Run: func() Status {
			script := tpmUpdateScript(env.Home)
			if script == "" {
				ui.Failf("TPM update script not found")
				env.Tracker.AddFailure("TPM update script not found", "tmux plugin update", outcome.ExitCodeNotFound)
				return StatusFailed
			}

			// TPM needs a running server to talk to.
			if _, res := env.Exec.CaptureRaw(execute.Command{
				Program: "tmux",
				Args:    []string{"start-server"},
			}); res.Status == execute.StatusNotFound {
				ui.Failf("Command not found: tmux")
				env.Tracker.AddFailure("tmux is not installed", "tmux start-server", outcome.ExitCodeNotFound)
				return StatusFailed
			}

			return boolStatus(env.Exec.Run(execute.Command{
				Program:     "bash",
				Args:        []string{script, "all"},
				Description: "Updating tmux plugins",
			}))
		},
	}
}

func ohMyZshTask(env *Env) Task {
	upgradeScript := filepath.Join(env.Home, ".oh-my-zsh", "tools", "upgrade.sh")
	return Task{
		Name: "oh-my-zsh",
		ShouldRun: func() bool {
			if env.Settings.SkipOMZ {
				return false
			}
			_, err := os.Stat(upgradeScript)
			return err == nil
		},
		Run: func() Status {
			cmd := execute.Command{
				Program:     "zsh",
				Args:        []string{upgradeScript},
				Description: "Updating oh-my-zsh",
			}
			ui.Banner(cmd.Description, cmd.String())
			out, res := env.Exec.CaptureRaw(cmd)
			if out != "" {
				ui.Plain(out)
			}
			// The upgrade script exits non-zero in ordinary situations
			// (already up to date, restart requested), so its exit code
			// never fails the run.
			if res.Status == execute.StatusSucceeded {
				ui.Successf("oh-my-zsh updated")
			} else {
				ui.Infof("oh-my-zsh upgrade script exited with code %d", res.ExitCode)
			}
			return StatusSucceeded
		},
	}
}
