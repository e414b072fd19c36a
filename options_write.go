package dancefile

// SaveOption configures behavior when saving dance files.
//
// Example:
//
//	err := f.Save("dance.mp3",
//	    dancefile.WithBackup(".bak"),
//	    dancefile.WithValidation(),
//	)
type SaveOption func(*saveOptions)

// saveOptions holds configuration for saving files.
type saveOptions struct {
	backupSuffix    string // Suffix for backup file (e.g., ".bak")
	validate        bool   // Re-load after write to verify
	preserveModTime bool   // Keep original modification time
}

// defaultSaveOptions returns the default configuration for saving.
func defaultSaveOptions() *saveOptions {
	return &saveOptions{}
}

// WithBackup keeps the file being replaced under path+suffix.
//
// For example, WithBackup(".bak") renames an existing "dance.mp3" to
// "dance.mp3.bak" just before the new file takes its place. An existing
// backup is overwritten. Nothing is backed up when the target does not exist.
func WithBackup(suffix string) SaveOption {
	return func(o *saveOptions) {
		o.backupSuffix = suffix
	}
}

// WithValidation re-loads the written file and checks that the payload and
// tags survived.
func WithValidation() SaveOption {
	return func(o *saveOptions) {
		o.validate = true
	}
}

// WithPreserveModTime keeps the modification time of the file being
// replaced.
func WithPreserveModTime() SaveOption {
	return func(o *saveOptions) {
		o.preserveModTime = true
	}
}
