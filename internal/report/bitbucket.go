package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/maxbolgarin/cliex"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"

	"github.com/lgxbslgx/skara/internal/jcheck"
	"github.com/lgxbslgx/skara/internal/vcs"
)

var _ Reporter = (*BitbucketReporter)(nil)

const (
	defaultBitbucketBaseURL = "https://api.bitbucket.org/2.0"

	stateSuccessful = "SUCCESSFUL"
	stateFailed     = "FAILED"
)

// BitbucketReporter publishes a build status for every checked commit.
type BitbucketReporter struct {
	client *cliex.HTTP
	config Config
	logger logze.Logger
}

// NewBitbucketReporter creates a reporter that sets Bitbucket build statuses.
func NewBitbucketReporter(config Config) (*BitbucketReporter, error) {
	if config.Token == "" {
		return nil, errm.New("Bitbucket token is required")
	}
	log := logze.With("reporter", "bitbucket")

	// Set base URL
	baseURL := defaultBitbucketBaseURL
	if config.BaseURL != "" {
		baseURL = strings.TrimSuffix(config.BaseURL, "/")
	}

	cli, err := cliex.New(cliex.WithBaseURL(baseURL), cliex.WithLogger(log))
	if err != nil {
		return nil, errm.Wrap(err, "failed to create Bitbucket client")
	}
	cli.C().SetBasicAuth("x-auth-token", config.Token)

	return &BitbucketReporter{
		client: cli,
		config: config,
		logger: log,
	}, nil
}

func (r *BitbucketReporter) Report(ctx context.Context, commit vcs.Commit, issues []jcheck.Issue) error {
	parts := strings.Split(r.config.Project, "/")
	if len(parts) != 2 {
		return errm.New("invalid Bitbucket project format, expected 'workspace/repo_slug': %s", r.config.Project)
	}
	workspace, repoSlug := parts[0], parts[1]

	state := stateSuccessful
	if jcheck.CountBySeverity(issues)[jcheck.SeverityError] > 0 {
		state = stateFailed
	}

	apiURL := fmt.Sprintf("repositories/%s/%s/commit/%s/statuses/build", workspace, repoSlug, commit.Hash)

	statusData := map[string]any{
		"state":       state,
		"key":         lang.Check(r.config.Context, defaultStatusContext),
		"description": statusDescription(issues),
	}
	if r.config.TargetURL != "" {
		statusData["url"] = r.config.TargetURL
	}

	_, err := r.client.Post(ctx, apiURL, statusData)
	if err != nil {
		return errm.Wrap(err, "failed to create build status", "commit", commit.Hash.Short())
	}

	r.logger.Debug("published build status", "commit", commit.Hash.Short(), "state", state)

	return nil
}
