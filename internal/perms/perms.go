// Package perms provides centralized file and directory permission constants
// for consistent security practices across the tripd codebase.
package perms

import "os"

// File permission constants.
const (
	// RegularFile permissions for standard files (configuration, logs, transcripts).
	// Mode 0644: owner read/write, group read, others read.
	RegularFile os.FileMode = 0o644
)

// Directory permission constants.
const (
	// RegularDir permissions for standard directories (data, documentation).
	// Mode 0755: owner read/write/execute, group read/execute, others read/execute.
	RegularDir os.FileMode = 0o755
)
