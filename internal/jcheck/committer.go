package jcheck

import (
	"strings"

	"github.com/lgxbslgx/skara/internal/message"
	"github.com/lgxbslgx/skara/internal/vcs"
)

// CommitterNameIssue reports a commit without a committer name.
type CommitterNameIssue struct {
	baseIssue
}

// CommitterEmailIssue reports a missing, malformed or out of policy
// committer email.
type CommitterEmailIssue struct {
	baseIssue

	Reason string
}

// CommitterCheck requires a usable committer identity. An optional
// domain key pins the committer email to one domain:
//
//	[checks "committer"]
//	domain = openjdk.org
type CommitterCheck struct{}

func NewCommitterCheck() *CommitterCheck {
	return &CommitterCheck{}
}

func (*CommitterCheck) Name() string {
	return "committer"
}

func (*CommitterCheck) Description() string {
	return "Commits must have a valid committer name and email"
}

func (c *CommitterCheck) Check(commit vcs.Commit, msg message.CommitMessage, conf *Configuration, ctx *Context) []Issue {
	var issues []Issue
	if strings.TrimSpace(commit.Committer.Name) == "" {
		issues = append(issues, &CommitterNameIssue{baseIssue: newBaseIssue(commit, msg, c)})
	}

	email := commit.Committer.Email
	if reason, ok := invalidEmail(email); ok {
		return append(issues, &CommitterEmailIssue{baseIssue: newBaseIssue(commit, msg, c), Reason: reason})
	}
	if domain, ok := conf.Check(c.Name()).Get("domain"); ok {
		if got := email[strings.LastIndex(email, "@")+1:]; got != domain {
			issues = append(issues, &CommitterEmailIssue{
				baseIssue: newBaseIssue(commit, msg, c),
				Reason:    "email domain must be " + domain,
			})
		}
	}
	return issues
}
