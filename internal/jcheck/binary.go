package jcheck

import (
	"github.com/lgxbslgx/skara/internal/message"
	"github.com/lgxbslgx/skara/internal/vcs"
)

// BinaryFileTooLargeIssue reports a binary file whose introduced
// content exceeds its configured size limit.
type BinaryFileTooLargeIssue struct {
	baseIssue

	Path     string
	FileSize int64
	Limit    int64
}

func newBinaryFileTooLargeIssue(commit vcs.Commit, msg message.CommitMessage, check Check, path string, fileSize, limit int64) *BinaryFileTooLargeIssue {
	return &BinaryFileTooLargeIssue{
		baseIssue: newBaseIssue(commit, msg, check),
		Path:      path,
		FileSize:  fileSize,
		Limit:     limit,
	}
}

// BinaryCheck limits the size of binary files entering the repository.
// Its section maps path patterns to size limits, first match wins:
//
//	[checks "binary"]
//	.*\.bin = 1b
//	.*\.o = 1k
//
// The measured size of a binary patch is the sum of the inflated sizes
// of its hunks. Textual patches and deletions are never size checked,
// and a path matching no pattern is unconstrained.
type BinaryCheck struct{}

func NewBinaryCheck() *BinaryCheck {
	return &BinaryCheck{}
}

func (*BinaryCheck) Name() string {
	return "binary"
}

func (*BinaryCheck) Description() string {
	return "Binary files must stay within the configured size limits"
}

func (c *BinaryCheck) Check(commit vcs.Commit, msg message.CommitMessage, conf *Configuration, ctx *Context) []Issue {
	var issues []Issue
	for _, diff := range commit.ParentDiffs {
		for _, patch := range diff.Patches {
			if !patch.IsBinary() || patch.Status.IsDeleted() || !patch.Target.IsPresent() {
				continue
			}
			limit, ok := conf.Binary().LimitFor(patch.Target.Path)
			if !ok {
				continue
			}
			var size int64
			for _, hunk := range patch.Binary.Hunks {
				size += hunk.InflatedSize
			}
			if size > limit {
				issues = append(issues, newBinaryFileTooLargeIssue(commit, msg, c, patch.Target.Path, size, limit))
			}
		}
	}
	return issues
}
