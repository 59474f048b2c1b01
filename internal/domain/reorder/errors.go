package reorder

import "errors"

var (
	// ErrBackupFailed indicates the snapshot could not be written or read.
	ErrBackupFailed = errors.New("deck backup failed")
	// ErrRebuildFailed indicates a slide could not be copied from the snapshot.
	ErrRebuildFailed = errors.New("deck rebuild failed")
	// ErrSaveFailed indicates the rebuilt deck could not be saved; the live
	// file was restored from the backup.
	ErrSaveFailed = errors.New("reordered deck save failed")
	// ErrRestoreFailed indicates both the save and the restore from backup failed.
	ErrRestoreFailed = errors.New("restore from backup failed")
)
