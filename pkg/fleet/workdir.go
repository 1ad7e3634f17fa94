package fleet

import (
	"os"

	"github.com/waynelloyd/system-updater/pkg/errors"
)

// pushd changes the process working directory to dir and returns a
// restore function. The caller must defer the restore so the prior
// directory comes back on every exit path; leaking a changed working
// directory into a subsequent task is a correctness bug.
func pushd(dir string) (func(), error) {
	prev, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "could not read working directory")
	}

	if err := os.Chdir(dir); err != nil {
		return nil, errors.Wrapf(err, errors.ErrTargetInvalid, "could not change into %s", dir)
	}

	return func() {
		_ = os.Chdir(prev)
	}, nil
}
