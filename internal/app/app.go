// Package app wires the repository reader, the check engine and the
// reporting backends into one service.
package app

import (
	"context"
	"strings"

	"github.com/maxbolgarin/cliex"
	"github.com/maxbolgarin/contem"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"

	"github.com/lgxbslgx/skara/internal/config"
	"github.com/lgxbslgx/skara/internal/jcheck"
	"github.com/lgxbslgx/skara/internal/report"
	"github.com/lgxbslgx/skara/internal/server"
	"github.com/lgxbslgx/skara/internal/vcs"
	"github.com/lgxbslgx/skara/internal/vcs/git"
)

// Skara is the main service that orchestrates all components
type Skara struct {
	reader   *git.Reader
	runner   *jcheck.Runner
	reporter report.Reporter
	server   *server.Server
	conf     *jcheck.Configuration

	cfg config.Config
	log logze.Logger
}

// LoadConfig reads the tool configuration from an optional yaml file
// and environment variables.
func LoadConfig(path string) (config.Config, error) {
	return config.Load(path)
}

// New creates a new commit checking service
func New(ctx contem.Context, cfg config.Config) (*Skara, error) {
	service := &Skara{
		cfg: cfg,
		log: logze.With("component", "app"),
	}

	if err := service.init(ctx, cfg); err != nil {
		return nil, errm.Wrap(err, "failed to initialize service")
	}

	return service, nil
}

// RunCheck checks every commit in the range and reports the results.
// It returns an error when any commit has an error severity issue, so
// callers can gate on the exit code.
func (s *Skara) RunCheck(ctx context.Context, revRange string) error {
	if err := s.reader.Verify(ctx); err != nil {
		return errm.Wrap(err, "failed to verify repository")
	}

	commits, err := s.reader.Commits(ctx, revRange)
	if err != nil {
		return errm.Wrap(err, "failed to read commits", "range", revRange)
	}
	if len(commits) == 0 {
		s.log.Info("no commits to check", "range", revRange)
		return nil
	}

	issues, err := s.runner.CheckAll(ctx, commits)
	if err != nil {
		return errm.Wrap(err, "failed to check commits")
	}

	byCommit := make(map[vcs.Hash][]jcheck.Issue, len(commits))
	for _, issue := range issues {
		hash := issue.Commit().Hash
		byCommit[hash] = append(byCommit[hash], issue)
	}

	var failed int
	for _, commit := range commits {
		commitIssues := byCommit[commit.Hash]
		if err := s.reporter.Report(ctx, commit, commitIssues); err != nil {
			return errm.Wrap(err, "failed to report", "commit", commit.Hash.Short())
		}
		if jcheck.CountBySeverity(commitIssues)[jcheck.SeverityError] > 0 {
			failed++
		}
	}

	s.log.Info("checked commits", "commits", len(commits), "issues", len(issues), "failed", failed)

	if failed > 0 {
		return errm.New("%d of %d commits failed policy checks", failed, len(commits))
	}
	return nil
}

// StartServer starts the gate service.
func (s *Skara) StartServer(ctx context.Context) error {
	if err := s.server.Start(ctx); err != nil {
		return errm.Wrap(err, "failed to start gate server")
	}
	return nil
}

func (s *Skara) init(ctx contem.Context, cfg config.Config) (err error) {

	// Parse the policy before touching the repository, a broken policy
	// should fail fast
	s.conf, err = s.loadPolicy(ctx)
	if err != nil {
		return errm.Wrap(err, "failed to load policy")
	}

	s.reader = git.NewReader(cfg.Git.Dir, cfg.Git.Path)

	s.runner, err = jcheck.NewRunner(s.conf, cfg.Runner.Workers)
	if err != nil {
		return errm.Wrap(err, "failed to create runner")
	}
	ctx.Add(func(context.Context) error {
		s.runner.Close()
		return nil
	})

	reporterCfg := cfg.Reporter
	reporterCfg.Context = lang.Check(reporterCfg.Context, "policy/"+s.conf.General().Project)
	s.reporter, err = report.New(reporterCfg)
	if err != nil {
		return errm.Wrap(err, "failed to create reporter")
	}

	s.server, err = server.New(cfg.Server, s.conf)
	if err != nil {
		return errm.Wrap(err, "failed to create gate server")
	}
	ctx.Add(s.server.Stop)

	return nil
}

// loadPolicy reads the policy from the configured URL or local path.
func (s *Skara) loadPolicy(ctx context.Context) (*jcheck.Configuration, error) {
	if s.cfg.Policy.URL == "" {
		return jcheck.ParseFile(s.cfg.Policy.Path)
	}

	cli, err := cliex.New(cliex.WithLogger(s.log))
	if err != nil {
		return nil, errm.Wrap(err, "failed to create HTTP client")
	}

	resp, err := cli.Get(ctx, s.cfg.Policy.URL)
	if err != nil {
		return nil, errm.Wrap(err, "failed to fetch policy", "url", s.cfg.Policy.URL)
	}

	return jcheck.Parse(strings.Split(string(resp.Body()), "\n"))
}
