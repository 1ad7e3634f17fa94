package tasks

import (
	"github.com/waynelloyd/system-updater/pkg/execute"
)

// dockerTasks is the cross-platform tail of every run: refreshing the
// docker-compose fleet and pruning unused docker data. Both require
// the docker CLI.
func dockerTasks(env *Env) []Task {
	return []Task{
		composeFleetTask(env),
		dockerPruneTask(env),
	}
}

func composeFleetTask(env *Env) Task {
	return Task{
		Name: "docker-compose-fleet",
		ShouldRun: func() bool {
			return !env.Settings.SkipDockerPull &&
				env.Fleet != nil &&
				env.Exec.Probe("docker", "--version")
		},
		Run: func() Status {
			selected := env.Fleet.Setup()
			if len(selected) == 0 && !env.Fleet.Enabled() {
				return StatusSkipped
			}
			return boolStatus(env.Fleet.Refresh())
		},
	}
}

func dockerPruneTask(env *Env) Task {
	return Task{
		Name: "docker-prune",
		ShouldRun: func() bool {
			return !env.Settings.SkipDockerPrune && env.Exec.Probe("docker", "--version")
		},
		Run: func() Status {
			args := []string{"system", "prune", "-a"}
			if env.Exec.AutoYes() {
				args = append(args, "-f")
			}
			return boolStatus(env.Exec.Run(execute.Command{
				Program:     "docker",
				Args:        args,
				Description: "Pruning unused docker data",
			}))
		},
	}
}
