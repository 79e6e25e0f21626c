package cmd

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	cmdopts "github.com/flowvibe/mcp-installer/internal/cmd/options"
	errs "github.com/flowvibe/mcp-installer/internal/errors"
	"github.com/flowvibe/mcp-installer/internal/search"
)

func testRepos() []search.Repository {
	return []search.Repository{
		{
			Name:     "weather-mcp",
			FullName: "overstarry/weather-mcp",
			Language: "TypeScript",
			Stars:    120,
			Forks:    9,
			URL:      "https://github.com/overstarry/weather-mcp",
		},
		{
			Name:     "mcp-weather",
			FullName: "someone/mcp-weather",
			Language: "Python",
			Stars:    40,
			Forks:    3,
			URL:      "https://github.com/someone/mcp-weather",
		},
	}
}

func TestSearchCmd_Text(t *testing.T) {
	t.Parallel()

	searcher := &fakeSearcher{repos: testRepos()}
	out, err := execute(t, NewSearchCmd, []string{"weather", "--langcode", "ts,py"},
		cmdopts.WithConfigLoader(&fakeLoader{settings: testSettings(t)}),
		cmdopts.WithSearcherBuilder(&fakeSearcherBuilder{searcher: searcher}),
		cmdopts.WithTokenStore(&fakeStore{}),
	)
	require.NoError(t, err)
	require.Equal(t, "weather", searcher.query)
	require.Equal(t, []string{"ts", "py"}, searcher.languages)
	require.Contains(t, out, "Found 2 repositories:\n")
	require.Contains(t, out, "overstarry/weather-mcp")
	require.Contains(t, out, "https://github.com/someone/mcp-weather")
}

func TestSearchCmd_NoResults(t *testing.T) {
	t.Parallel()

	out, err := execute(t, NewSearchCmd, []string{"nothing-matches"},
		cmdopts.WithConfigLoader(&fakeLoader{settings: testSettings(t)}),
		cmdopts.WithSearcherBuilder(&fakeSearcherBuilder{searcher: &fakeSearcher{}}),
		cmdopts.WithTokenStore(&fakeStore{}),
	)
	require.NoError(t, err)
	require.Equal(t, "No items found\n", out)
}

func TestSearchCmd_JSON(t *testing.T) {
	t.Parallel()

	out, err := execute(t, NewSearchCmd, []string{"weather", "--format", "json"},
		cmdopts.WithConfigLoader(&fakeLoader{settings: testSettings(t)}),
		cmdopts.WithSearcherBuilder(&fakeSearcherBuilder{searcher: &fakeSearcher{repos: testRepos()}}),
		cmdopts.WithTokenStore(&fakeStore{}),
	)
	require.NoError(t, err)

	var payload struct {
		Results []search.Repository `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.Equal(t, testRepos(), payload.Results)
}

func TestSearchCmd_TokenRequired(t *testing.T) {
	t.Parallel()

	builderErr := fmt.Errorf("%w: set GITHUB_TOKEN", errs.ErrTokenRequired)
	_, err := execute(t, NewSearchCmd, []string{"weather"},
		cmdopts.WithConfigLoader(&fakeLoader{settings: testSettings(t)}),
		cmdopts.WithSearcherBuilder(&fakeSearcherBuilder{err: builderErr}),
		cmdopts.WithTokenStore(&fakeStore{}),
	)
	require.ErrorIs(t, err, errs.ErrTokenRequired)
}

func TestSearchCmd_SearchFailed(t *testing.T) {
	t.Parallel()

	searcher := &fakeSearcher{err: fmt.Errorf("%w: rate limited", errs.ErrSearchFailed)}
	out, err := execute(t, NewSearchCmd, []string{"weather", "--format", "yaml"},
		cmdopts.WithConfigLoader(&fakeLoader{settings: testSettings(t)}),
		cmdopts.WithSearcherBuilder(&fakeSearcherBuilder{searcher: searcher}),
		cmdopts.WithTokenStore(&fakeStore{}),
	)
	require.ErrorIs(t, err, ErrReported)
	require.ErrorIs(t, err, errs.ErrSearchFailed)
	require.Contains(t, out, "error:")
	require.Contains(t, out, "rate limited")
}
