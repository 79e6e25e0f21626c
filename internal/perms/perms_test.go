package perms

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPermissionConstants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		perm     os.FileMode
		expected os.FileMode
	}{
		{name: "RegularFile", perm: RegularFile, expected: 0o644},
		{name: "SecureFile", perm: SecureFile, expected: 0o600},
		{name: "RegularDir", perm: RegularDir, expected: 0o755},
		{name: "SecureDir", perm: SecureDir, expected: 0o700},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.expected, tc.perm)
		})
	}
}

func TestSecureModesAreOwnerWritable(t *testing.T) {
	t.Parallel()

	require.NotZero(t, SecureFile&0o200)
	require.NotZero(t, SecureDir&0o200)
	require.NotZero(t, SecureDir&0o100)
}

func TestFileCreationPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on Windows")
	}

	tests := []struct {
		name string
		perm os.FileMode
	}{
		{name: "regular file", perm: RegularFile},
		{name: "secure file", perm: SecureFile},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "file")
			require.NoError(t, os.WriteFile(path, []byte("{}"), tc.perm))
			require.NoError(t, os.Chmod(path, tc.perm)) // Undo umask.

			info, err := os.Stat(path)
			require.NoError(t, err)
			require.Equal(t, tc.perm, info.Mode().Perm())
		})
	}
}
