package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	cmdopts "github.com/flowvibe/mcp-installer/internal/cmd/options"
	"github.com/flowvibe/mcp-installer/internal/token"
)

func TestTokenCmd_Set(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		args  []string
		stdin string
	}{
		{
			name: "from argument",
			args: []string{"set", "ghp_secret"},
		},
		{
			name:  "from stdin",
			args:  []string{"set"},
			stdin: "  ghp_secret\n",
		},
		{
			name:  "from stdin without newline",
			args:  []string{"set"},
			stdin: "ghp_secret",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			store := &fakeStore{}
			c, err := NewTokenCmd(testBaseCmd(), cmdopts.WithTokenStore(store))
			require.NoError(t, err)

			out := &bytes.Buffer{}
			c.SetOut(out)
			c.SetIn(strings.NewReader(tc.stdin))
			c.SetArgs(tc.args)

			require.NoError(t, c.Execute())
			require.Equal(t, "ghp_secret", store.value)
			require.Equal(t, "✓ GitHub token stored in the OS keychain\n", out.String())
		})
	}
}

func TestTokenCmd_SetError(t *testing.T) {
	t.Parallel()

	store := &fakeStore{setErr: errors.New("keychain error: locked")}
	_, err := execute(t, NewTokenCmd, []string{"set", "ghp_secret"}, cmdopts.WithTokenStore(store))
	require.EqualError(t, err, "keychain error: locked")
}

func TestTokenCmd_Clear(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		store    *fakeStore
		expected string
		errMsg   string
	}{
		{
			name:     "stored",
			store:    &fakeStore{value: "ghp_secret"},
			expected: "✓ GitHub token removed from the OS keychain\n",
		},
		{
			name:     "missing",
			store:    &fakeStore{deleteErr: token.ErrNotFound},
			expected: "No GitHub token is stored\n",
		},
		{
			name:   "keychain failure",
			store:  &fakeStore{deleteErr: errors.New("keychain error: locked")},
			errMsg: "keychain error: locked",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out, err := execute(t, NewTokenCmd, []string{"clear"}, cmdopts.WithTokenStore(tc.store))
			if tc.errMsg != "" {
				require.EqualError(t, err, tc.errMsg)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, out)
		})
	}
}
