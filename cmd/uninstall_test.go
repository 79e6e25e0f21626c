package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	cmdopts "github.com/flowvibe/mcp-installer/internal/cmd/options"
	"github.com/flowvibe/mcp-installer/internal/installer"
)

func TestUninstallCmd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		result    installer.UninstallResult
		expected  string
		reported  bool
		errSubstr string
	}{
		{
			name: "uninstalled",
			result: installer.UninstallResult{
				Status: installer.UninstallStatusUninstalled,
				Name:   "weather",
				Dir:    "/srv/mcp/weather-mcp",
			},
			expected: "Server 'weather' has been completely uninstalled:\n" +
				"✓ Removed from configuration file\n" +
				"✓ Removed directory: /srv/mcp/weather-mcp\n",
		},
		{
			name: "partial",
			result: installer.UninstallResult{
				Status:      installer.UninstallStatusPartial,
				Name:        "weather",
				Dir:         "/srv/mcp/weather-mcp",
				RemoveError: "permission denied",
			},
			expected: "Partial uninstall of server 'weather':\n" +
				"✓ Removed from configuration file\n" +
				"✗ Could not remove directory: permission denied\n" +
				"\n" +
				"Please try manually deleting the directory: /srv/mcp/weather-mcp\n",
			reported:  true,
			errSubstr: "directory /srv/mcp/weather-mcp could not be removed",
		},
		{
			name: "not found",
			result: installer.UninstallResult{
				Status:  installer.UninstallStatusNotFound,
				Name:    "weather",
				BaseDir: "/srv/mcp",
			},
			expected:  "No server matching 'weather' was found in /srv/mcp\n",
			reported:  true,
			errSubstr: "nothing was uninstalled",
		},
		{
			name: "ambiguous",
			result: installer.UninstallResult{
				Status:     installer.UninstallStatusAmbiguous,
				Name:       "weather",
				Candidates: []string{"weather-mcp", "weather-server"},
			},
			expected: "Multiple matching servers found. Please specify which one to uninstall:\n" +
				"- weather-mcp\n" +
				"- weather-server\n",
			reported:  true,
			errSubstr: "nothing was uninstalled",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ops := &fakeOperations{uninstallResult: tc.result}
			out, err := execute(t, NewUninstallCmd, []string{"weather"},
				cmdopts.WithConfigLoader(&fakeLoader{settings: testSettings(t)}),
				cmdopts.WithOperationsBuilder(&fakeOpsBuilder{ops: ops}),
			)

			require.Equal(t, tc.expected, out)
			require.Equal(t, []string{"weather"}, ops.uninstalled)
			if !tc.reported {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrReported)
			require.ErrorContains(t, err, tc.errSubstr)
		})
	}
}

func TestUninstallCmd_JSON(t *testing.T) {
	t.Parallel()

	ops := &fakeOperations{uninstallResult: installer.UninstallResult{
		Status:     installer.UninstallStatusAmbiguous,
		Name:       "weather",
		BaseDir:    "/srv/mcp",
		Candidates: []string{"weather-mcp", "weather-server"},
	}}

	out, err := execute(t, NewUninstallCmd, []string{"weather", "--format", "json"},
		cmdopts.WithConfigLoader(&fakeLoader{settings: testSettings(t)}),
		cmdopts.WithOperationsBuilder(&fakeOpsBuilder{ops: ops}),
	)
	require.ErrorIs(t, err, ErrReported)

	var payload struct {
		Result installer.UninstallResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.Equal(t, ops.uninstallResult, payload.Result)
}
