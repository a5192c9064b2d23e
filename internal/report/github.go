package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v57/github"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"
	"golang.org/x/oauth2"

	"github.com/lgxbslgx/skara/internal/jcheck"
	"github.com/lgxbslgx/skara/internal/vcs"
)

var _ Reporter = (*GitHubReporter)(nil)

const (
	defaultGitHubBaseURL = "https://github.com"
	defaultStatusContext = "policy"

	// GitHub truncates status descriptions around this length.
	maxStatusDescription = 140

	stateSuccess = "success"
	stateFailure = "failure"
)

// GitHubReporter publishes a commit status for every checked commit.
type GitHubReporter struct {
	client *github.Client
	config Config
	logger logze.Logger
}

// NewGitHubReporter creates a reporter that sets GitHub commit statuses.
func NewGitHubReporter(config Config) (*GitHubReporter, error) {
	if config.Token == "" {
		return nil, errm.New("GitHub token is required")
	}
	log := logze.With("reporter", "github")

	// Create OAuth2 token source
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: config.Token},
	)
	tc := oauth2.NewClient(context.Background(), ts)

	client := github.NewClient(tc)

	// Set base URL if provided (for GitHub Enterprise)
	if config.BaseURL != "" && config.BaseURL != defaultGitHubBaseURL {
		var err error
		client, err = github.NewClient(tc).WithEnterpriseURLs(config.BaseURL, config.BaseURL)
		if err != nil {
			return nil, errm.Wrap(err, "failed to create GitHub Enterprise client")
		}
	}

	return &GitHubReporter{
		client: client,
		config: config,
		logger: log,
	}, nil
}

func (r *GitHubReporter) Report(ctx context.Context, commit vcs.Commit, issues []jcheck.Issue) error {
	parts := strings.Split(r.config.Project, "/")
	if len(parts) != 2 {
		return errm.New("invalid GitHub project format, expected 'owner/repo': %s", r.config.Project)
	}
	owner, repo := parts[0], parts[1]

	state := stateSuccess
	if jcheck.CountBySeverity(issues)[jcheck.SeverityError] > 0 {
		state = stateFailure
	}
	statusContext := lang.Check(r.config.Context, defaultStatusContext)
	description := statusDescription(issues)

	status := &github.RepoStatus{
		State:       &state,
		Context:     &statusContext,
		Description: &description,
	}
	if r.config.TargetURL != "" {
		status.TargetURL = &r.config.TargetURL
	}

	_, _, err := r.client.Repositories.CreateStatus(ctx, owner, repo, commit.Hash.String(), status)
	if err != nil {
		return errm.Wrap(err, "failed to create commit status", "commit", commit.Hash.Short())
	}

	r.logger.Debug("published commit status", "commit", commit.Hash.Short(), "state", state)

	return nil
}

// statusDescription compresses the outcome into one status line.
func statusDescription(issues []jcheck.Issue) string {
	if len(issues) == 0 {
		return "all checks passed"
	}

	counts := jcheck.CountBySeverity(issues)
	summary := fmt.Sprintf("%d error(s), %d warning(s): %s",
		counts[jcheck.SeverityError], counts[jcheck.SeverityWarning], Describe(issues[0]))

	return lang.TruncateString(summary, maxStatusDescription)
}
