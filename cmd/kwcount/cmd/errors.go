package cmd

import (
	"errors"
	"fmt"

	"github.com/corey/kwcount/internal/adapters/bbolt"
	"github.com/corey/kwcount/internal/app"
	berrors "go.etcd.io/bbolt/errors"
)

// Explain adds actionable guidance to errors users commonly hit.
func Explain(err error) error {
	switch {
	case isDBLockError(err):
		return fmt.Errorf("%w\n"+
			"  → the run history is locked by another kwcount process (bench or history)\n"+
			"  → wait for it to finish, or pass --no-save to bench", err)
	case errors.Is(err, bbolt.ErrRunNotFound):
		return fmt.Errorf("%w\n  → list saved run IDs with: kwcount history -n 0", err)
	case errors.Is(err, app.ErrUnknownStrategy):
		return fmt.Errorf("%w\n  → see: kwcount bench --help", err)
	}
	return err
}

// isDBLockError returns true if the error chain contains a bbolt lock timeout.
// bbolt returns ErrTimeout when it cannot acquire the file lock within the
// configured deadline.
func isDBLockError(err error) bool {
	return errors.Is(err, berrors.ErrTimeout)
}
