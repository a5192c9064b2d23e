// Package report publishes check results, either as human-readable text
// or as commit statuses on a code hosting provider.
package report

import (
	"context"
	"os"
	"slices"

	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"

	"github.com/lgxbslgx/skara/internal/jcheck"
	"github.com/lgxbslgx/skara/internal/vcs"
)

type ReporterType string

// Supported reporter types
const (
	Text      ReporterType = "text"
	GitHub    ReporterType = "github"
	GitLab    ReporterType = "gitlab"
	Bitbucket ReporterType = "bitbucket"
)

var supportedReporterTypes = []ReporterType{Text, GitHub, GitLab, Bitbucket}

// Reporter publishes the issues found in a single commit.
type Reporter interface {
	Report(ctx context.Context, commit vcs.Commit, issues []jcheck.Issue) error
}

// Config represents reporter configuration
type Config struct {
	Type      ReporterType `yaml:"type" env:"REPORTER_TYPE" env-default:"text"`
	BaseURL   string       `yaml:"base_url" env:"REPORTER_BASE_URL"`
	Token     string       `yaml:"token" env:"REPORTER_TOKEN"`
	Project   string       `yaml:"project" env:"REPORTER_PROJECT"`
	TargetURL string       `yaml:"target_url" env:"REPORTER_TARGET_URL"`

	// Context names the status line on the hosting provider,
	// e.g. "policy/jdk". The text reporter ignores it.
	Context string `yaml:"context" env:"REPORTER_CONTEXT"`
}

func (c *Config) PrepareAndValidate() error {
	c.Type = ReporterType(lang.Check(string(c.Type), string(Text)))

	if !slices.Contains(supportedReporterTypes, c.Type) {
		return errm.New("invalid reporter type: %s", c.Type)
	}
	if c.Type != Text && c.Token == "" {
		return errm.New("token is required for %s reporter", c.Type)
	}
	if c.Type != Text && c.Project == "" {
		return errm.New("project is required for %s reporter", c.Type)
	}

	return nil
}

// New creates a reporter based on the configuration.
func New(cfg Config) (Reporter, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, errm.Wrap(err, "validate config")
	}

	switch cfg.Type {
	case Text:
		return NewWriter(os.Stdout), nil
	case GitHub:
		return NewGitHubReporter(cfg)
	case GitLab:
		return NewGitLabReporter(cfg)
	case Bitbucket:
		return NewBitbucketReporter(cfg)
	default:
		return nil, errm.New("unsupported reporter type: %s", cfg.Type)
	}
}
