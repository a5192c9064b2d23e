// Package git materializes commits from a local repository by running
// the git executable and parsing its raw and patch output. It only
// ever reads; nothing here mutates a repository.
package git

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/maxbolgarin/abstract"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"

	"github.com/lgxbslgx/skara/internal/vcs"
)

// logFormat keeps metadata fields apart with unit separators and
// records apart with a record separator, so message bodies cannot
// collide with the framing.
const logFormat = "%H%x1f%P%x1f%an%x1f%ae%x1f%aI%x1f%cn%x1f%ce%x1f%cI%x1f%B%x1e"

var diffArgs = []string{
	"diff-tree", "-r",
	"--raw", "--patch", "--binary",
	"--find-renames", "--find-copies",
	"--no-abbrev", "--unified=0", "--no-color",
}

// Reader reads commits from one repository directory.
type Reader struct {
	dir string
	git string
	log logze.Logger
}

// NewReader creates a reader for the repository at dir. An empty
// gitPath means the git binary on PATH.
func NewReader(dir, gitPath string) *Reader {
	return &Reader{
		dir: lang.Check(dir, "."),
		git: lang.Check(gitPath, "git"),
		log: logze.With("component", "git"),
	}
}

// Verify checks that the directory is a usable repository.
func (r *Reader) Verify(ctx context.Context) error {
	if _, err := r.runGit(ctx, "rev-parse", "--git-dir"); err != nil {
		return errm.Wrap(err, "not a git repository", "dir", r.dir)
	}
	return nil
}

// Commits materializes every commit of a revision range, newest first,
// each with one diff per parent. Root commits get no diffs.
func (r *Reader) Commits(ctx context.Context, revRange string) ([]vcs.Commit, error) {
	return r.read(ctx, "log", "--format="+logFormat, revRange, "--")
}

// Commit materializes a single revision.
func (r *Reader) Commit(ctx context.Context, rev string) (vcs.Commit, error) {
	commits, err := r.read(ctx, "log", "-1", "--format="+logFormat, rev, "--")
	if err != nil {
		return vcs.Commit{}, err
	}
	if len(commits) != 1 {
		return vcs.Commit{}, errm.New("revision %q not found", rev)
	}
	return commits[0], nil
}

func (r *Reader) read(ctx context.Context, args ...string) ([]vcs.Commit, error) {
	timer := abstract.StartTimer()

	out, err := r.runGit(ctx, args...)
	if err != nil {
		return nil, err
	}
	metadata, err := parseLogRecords(out)
	if err != nil {
		return nil, err
	}

	commits := make([]vcs.Commit, 0, len(metadata))
	for _, meta := range metadata {
		commit := vcs.Commit{CommitMetadata: meta}
		for _, parent := range meta.Parents {
			diffOut, err := r.runGit(ctx, append(diffArgs, parent.String(), meta.Hash.String())...)
			if err != nil {
				return nil, err
			}
			diff, err := parseDiff(parent, meta.Hash, diffOut)
			if err != nil {
				return nil, errm.Wrap(err, "parse diff", "hash", meta.Hash.Short(), "parent", parent.Short())
			}
			commit.ParentDiffs = append(commit.ParentDiffs, diff)
		}
		commits = append(commits, commit)
	}

	r.log.Debug("read commits",
		"commits", len(commits),
		"elapsed_time", timer.ElapsedTime().String(),
	)
	return commits, nil
}

func (r *Reader) runGit(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, r.git, args...)
	cmd.Dir = r.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, errm.Wrap(err, "git "+strings.Join(args, " "),
			"stderr", strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
