package report

import (
	"context"

	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"
	gitlab "gitlab.com/gitlab-org/api/client-go"

	"github.com/lgxbslgx/skara/internal/jcheck"
	"github.com/lgxbslgx/skara/internal/vcs"
)

var _ Reporter = (*GitLabReporter)(nil)

const defaultGitLabBaseURL = "https://gitlab.com"

// GitLabReporter publishes a commit status for every checked commit.
type GitLabReporter struct {
	client *gitlab.Client
	config Config
	logger logze.Logger
}

// NewGitLabReporter creates a reporter that sets GitLab commit statuses.
func NewGitLabReporter(config Config) (*GitLabReporter, error) {
	if config.Token == "" {
		return nil, errm.New("GitLab token is required")
	}

	baseURL := lang.Check(config.BaseURL, defaultGitLabBaseURL)

	client, err := gitlab.NewClient(config.Token, gitlab.WithBaseURL(baseURL))
	if err != nil {
		return nil, errm.Wrap(err, "failed to create GitLab client")
	}

	return &GitLabReporter{
		client: client,
		config: config,
		logger: logze.With("reporter", "gitlab"),
	}, nil
}

func (r *GitLabReporter) Report(ctx context.Context, commit vcs.Commit, issues []jcheck.Issue) error {
	state := gitlab.Success
	if jcheck.CountBySeverity(issues)[jcheck.SeverityError] > 0 {
		state = gitlab.Failed
	}
	statusContext := lang.Check(r.config.Context, defaultStatusContext)
	description := statusDescription(issues)

	opts := &gitlab.SetCommitStatusOptions{
		State:       state,
		Context:     &statusContext,
		Description: &description,
	}
	if r.config.TargetURL != "" {
		opts.TargetURL = &r.config.TargetURL
	}

	_, _, err := r.client.Commits.SetCommitStatus(r.config.Project, commit.Hash.String(), opts, gitlab.WithContext(ctx))
	if err != nil {
		return errm.Wrap(err, "failed to set commit status", "commit", commit.Hash.Short())
	}

	r.logger.Debug("published commit status", "commit", commit.Hash.Short(), "state", string(state))

	return nil
}
