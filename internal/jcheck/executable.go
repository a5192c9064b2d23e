package jcheck

import (
	"github.com/lgxbslgx/skara/internal/message"
	"github.com/lgxbslgx/skara/internal/vcs"
)

// ExecutableFileIssue reports a file entering the repository with the
// executable bit set.
type ExecutableFileIssue struct {
	baseIssue

	Path string
}

// SymlinkIssue reports a symbolic link entering the repository.
type SymlinkIssue struct {
	baseIssue

	Path string
}

// ExecutableCheck rejects executable files outside the allowed
// pattern of its section. Without an allowed key every executable
// file is a violation.
type ExecutableCheck struct{}

func NewExecutableCheck() *ExecutableCheck {
	return &ExecutableCheck{}
}

func (*ExecutableCheck) Name() string {
	return "executable"
}

func (*ExecutableCheck) Description() string {
	return "Files must not have the executable bit set"
}

func (c *ExecutableCheck) Check(commit vcs.Commit, msg message.CommitMessage, conf *Configuration, ctx *Context) []Issue {
	allowed := conf.Executable().Allowed
	var issues []Issue
	for _, diff := range commit.ParentDiffs {
		for _, patch := range diff.Patches {
			if patch.Status.IsDeleted() || !patch.Target.IsPresent() {
				continue
			}
			if !patch.Target.Type.IsExecutable() {
				continue
			}
			if allowed != nil && allowed.MatchString(patch.Target.Path) {
				continue
			}
			issues = append(issues, &ExecutableFileIssue{
				baseIssue: newBaseIssue(commit, msg, c),
				Path:      patch.Target.Path,
			})
		}
	}
	return issues
}

// SymlinkCheck rejects symbolic links.
type SymlinkCheck struct{}

func NewSymlinkCheck() *SymlinkCheck {
	return &SymlinkCheck{}
}

func (*SymlinkCheck) Name() string {
	return "symlink"
}

func (*SymlinkCheck) Description() string {
	return "Symbolic links must not enter the repository"
}

func (c *SymlinkCheck) Check(commit vcs.Commit, msg message.CommitMessage, conf *Configuration, ctx *Context) []Issue {
	var issues []Issue
	for _, diff := range commit.ParentDiffs {
		for _, patch := range diff.Patches {
			if patch.Status.IsDeleted() || !patch.Target.IsPresent() {
				continue
			}
			if !patch.Target.Type.IsSymlink() {
				continue
			}
			issues = append(issues, &SymlinkIssue{
				baseIssue: newBaseIssue(commit, msg, c),
				Path:      patch.Target.Path,
			})
		}
	}
	return issues
}
