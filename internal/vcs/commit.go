package vcs

import (
	"time"
)

// Diff is the change set between two trees as an ordered list of
// single-file patches. Either hash may be ZeroHash when one side is the
// empty tree. Patch order is production order; nothing may assume it is
// sorted.
type Diff struct {
	From    Hash
	To      Hash
	Patches []Patch
}

// CommitMetadata is everything a commit says about itself apart from
// its diffs.
type CommitMetadata struct {
	Hash      Hash
	Parents   []Hash
	Author    Author
	Authored  time.Time
	Committer Author
	Committed time.Time
	Message   []string
}

// Commit is one commit together with one diff per parent. ParentDiffs
// is positionally aligned with Parents; a root commit has no parents
// and therefore no diffs.
type Commit struct {
	CommitMetadata

	ParentDiffs []Diff
}

// IsMerge reports whether the commit has more than one parent.
func (c Commit) IsMerge() bool {
	return len(c.Parents) > 1
}
