package jcheck

import (
	"github.com/lgxbslgx/skara/internal/message"
	"github.com/lgxbslgx/skara/internal/vcs"
)

// MissingIssueReferenceIssue reports a commit whose message references
// no tracked issue.
type MissingIssueReferenceIssue struct {
	baseIssue
}

// IssuesCheck requires every commit message to reference at least one
// tracked issue in its title lines.
type IssuesCheck struct{}

func NewIssuesCheck() *IssuesCheck {
	return &IssuesCheck{}
}

func (*IssuesCheck) Name() string {
	return "issues"
}

func (*IssuesCheck) Description() string {
	return "Commit messages must reference at least one issue"
}

func (c *IssuesCheck) Check(commit vcs.Commit, msg message.CommitMessage, conf *Configuration, ctx *Context) []Issue {
	if len(msg.Issues) > 0 {
		return nil
	}
	return []Issue{&MissingIssueReferenceIssue{baseIssue: newBaseIssue(commit, msg, c)}}
}
