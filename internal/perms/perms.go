// Package perms provides the file and directory permission modes used when
// mcp-installer writes client configs, settings and server directories.
package perms

import "os"

// File permission constants.
const (
	// RegularFile is used for client config files and the settings file.
	// Mode 0644: owner read/write, group read, others read.
	RegularFile os.FileMode = 0o644

	// SecureFile is applied to files inside a server directory that refuse deletion.
	// Mode 0600: owner read/write only.
	SecureFile os.FileMode = 0o600
)

// Directory permission constants.
const (
	// RegularDir is used for the base directory, settings directory and client config directories.
	// Mode 0755: owner read/write/execute, group read/execute, others read/execute.
	RegularDir os.FileMode = 0o755

	// SecureDir is applied to directories inside a server directory that refuse deletion.
	// Mode 0700: owner read/write/execute only.
	SecureDir os.FileMode = 0o700
)
