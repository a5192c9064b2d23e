package jcheck

import (
	"context"
	"sync"

	"github.com/maxbolgarin/abstract"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"
	"github.com/panjf2000/ants/v2"

	"github.com/lgxbslgx/skara/internal/vcs"
)

const defaultWorkers = 4

// Runner checks many commits concurrently against one shared
// configuration. The input commit order is preserved in the flattened
// result; scheduling order across commits is unspecified.
type Runner struct {
	conf *Configuration
	pool *ants.Pool
	log  logze.Logger
}

// NewRunner creates a runner with the given worker count, 0 meaning
// the default.
func NewRunner(conf *Configuration, workers int) (*Runner, error) {
	pool, err := ants.NewPool(lang.Check(workers, defaultWorkers))
	if err != nil {
		return nil, errm.Wrap(err, "failed to create ants pool")
	}
	return &Runner{
		conf: conf,
		pool: pool,
		log:  logze.With("component", "runner"),
	}, nil
}

// CheckAll runs the engine over every commit and returns the issues
// grouped by commit in input order. A canceled context fails the
// commits that have not started yet.
func (r *Runner) CheckAll(ctx context.Context, commits []vcs.Commit) ([]Issue, error) {
	timer := abstract.StartTimer()

	results := abstract.NewSafeMap[vcs.Hash, []Issue]()
	failures := abstract.NewSafeMap[vcs.Hash, error]()

	var wg sync.WaitGroup
	for _, commit := range commits {
		commit := commit
		wg.Add(1)
		err := r.pool.Submit(func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				failures.Set(commit.Hash, err)
				return
			}
			issues, err := CheckCommit(commit, r.conf, nil)
			if err != nil {
				failures.Set(commit.Hash, err)
				return
			}
			results.Set(commit.Hash, issues)
		})
		if err != nil {
			wg.Done()
			failures.Set(commit.Hash, errm.Wrap(err, "failed to submit task"))
		}
	}
	wg.Wait()

	var issues []Issue
	errs := errm.NewList()
	for _, commit := range commits {
		if err := failures.Get(commit.Hash); err != nil {
			errs.Wrap(err, "check commit", "hash", commit.Hash.Short())
			continue
		}
		issues = append(issues, results.Get(commit.Hash)...)
	}

	r.log.Debug("checked commits",
		"commits", len(commits),
		"issues", len(issues),
		"elapsed_time", timer.ElapsedTime().String(),
	)
	return issues, errs.Err()
}

// Close releases the worker pool.
func (r *Runner) Close() {
	r.pool.Release()
}
