package jcheck

import (
	"github.com/lgxbslgx/skara/internal/message"
	"github.com/lgxbslgx/skara/internal/vcs"
)

// MergeMessageIssue reports a merge commit whose title does not match
// the configured pattern.
type MergeMessageIssue struct {
	baseIssue

	Pattern string
}

// MergeMessageCheck constrains the titles of merge commits. The
// pattern comes from the message key of its section and defaults to
// "Merge .+". Non merge commits always pass.
type MergeMessageCheck struct{}

func NewMergeMessageCheck() *MergeMessageCheck {
	return &MergeMessageCheck{}
}

func (*MergeMessageCheck) Name() string {
	return "merge"
}

func (*MergeMessageCheck) Description() string {
	return "Merge commit titles must match the configured pattern"
}

func (c *MergeMessageCheck) Check(commit vcs.Commit, msg message.CommitMessage, conf *Configuration, ctx *Context) []Issue {
	if !commit.IsMerge() {
		return nil
	}
	merge := conf.Merge()
	if merge.Message.MatchString(msg.Title) {
		return nil
	}
	return []Issue{&MergeMessageIssue{
		baseIssue: newBaseIssue(commit, msg, c),
		Pattern:   merge.MessagePattern,
	}}
}
