// Package search finds MCP server repositories on GitHub.
package search

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/google/go-github/v74/github"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/oauth2"

	"github.com/flowvibe/mcp-installer/internal/config"
	errs "github.com/flowvibe/mcp-installer/internal/errors"
)

// DefaultLimit is the number of repositories returned per search.
const DefaultLimit = 10

var _ Searcher = (*GitHubSearcher)(nil)

// Repository is a single search hit.
type Repository struct {
	Name        string `json:"name"        yaml:"name"`
	FullName    string `json:"full_name"   yaml:"full_name"`
	Description string `json:"description" yaml:"description"`
	Language    string `json:"language"    yaml:"language"`
	Stars       int    `json:"stars"       yaml:"stars"`
	Forks       int    `json:"forks"       yaml:"forks"`
	URL         string `json:"url"         yaml:"url"`
}

// Searcher searches for repositories.
type Searcher interface {
	// Search returns the most starred repositories matching query, restricted to languages.
	// Empty languages selects the searcher's defaults.
	Search(ctx context.Context, query string, languages []string) ([]Repository, error)
}

// GitHubSearcher searches the GitHub repository search API.
type GitHubSearcher struct {
	logger    hclog.Logger
	client    *github.Client
	languages []string
	limit     int
}

// Option configures a GitHubSearcher.
type Option func(*GitHubSearcher) error

// WithBaseURL points the searcher at a different API endpoint, e.g. GitHub Enterprise.
func WithBaseURL(baseURL string) Option {
	return func(s *GitHubSearcher) error {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return fmt.Errorf("invalid base URL '%s': %w", baseURL, err)
		}
		s.client.BaseURL = u
		return nil
	}
}

// WithDefaultLanguages sets the languages used when a search names none.
func WithDefaultLanguages(codes []string) Option {
	return func(s *GitHubSearcher) error {
		valid, _ := NormalizeLanguages(codes)
		if len(valid) > 0 {
			s.languages = valid
		}
		return nil
	}
}

// WithLimit sets the number of repositories returned.
func WithLimit(n int) Option {
	return func(s *GitHubSearcher) error {
		if n <= 0 || n > 100 {
			return fmt.Errorf("limit must be between 1 and 100, got %d", n)
		}
		s.limit = n
		return nil
	}
}

// NewGitHubSearcher returns a searcher authenticated with token.
func NewGitHubSearcher(logger hclog.Logger, token string, opts ...Option) (*GitHubSearcher, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errs.ErrTokenRequired
	}

	httpClient := oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))

	s := &GitHubSearcher{
		logger:    logger.Named("search"),
		client:    github.NewClient(httpClient),
		languages: slices.Clone(config.DefaultSearchLanguages),
		limit:     DefaultLimit,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search implements Searcher. Results are sorted by stars, descending.
func (s *GitHubSearcher) Search(ctx context.Context, query string, languages []string) ([]Repository, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", errs.ErrBadRequest)
	}

	langs, unsupported := NormalizeLanguages(languages)
	if len(unsupported) > 0 {
		s.logger.Warn("Unsupported languages ignored", "languages", unsupported)
	}
	if len(langs) == 0 {
		langs = slices.Clone(s.languages)
	}

	q := BuildQuery(query, langs)
	s.logger.Debug("Searching repositories", "query", q)

	res, _, err := s.client.Search.Repositories(ctx, q, &github.SearchOptions{
		Sort:  "stars",
		Order: "desc",
		ListOptions: github.ListOptions{
			PerPage: s.limit,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrSearchFailed, err)
	}

	repos := make([]Repository, 0, len(res.Repositories))
	for _, r := range res.Repositories {
		repos = append(repos, Repository{
			Name:        r.GetName(),
			FullName:    r.GetFullName(),
			Description: r.GetDescription(),
			Language:    r.GetLanguage(),
			Stars:       r.GetStargazersCount(),
			Forks:       r.GetForksCount(),
			URL:         r.GetHTMLURL(),
		})
		if len(repos) == s.limit {
			break
		}
	}

	return repos, nil
}
