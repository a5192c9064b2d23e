package jcheck

import (
	"strings"

	"github.com/lgxbslgx/skara/internal/message"
	"github.com/lgxbslgx/skara/internal/vcs"
)

// AuthorNameIssue reports a commit without an author name.
type AuthorNameIssue struct {
	baseIssue
}

// AuthorEmailIssue reports a missing or malformed author email.
type AuthorEmailIssue struct {
	baseIssue

	Reason string
}

// AuthorCheck requires every commit to carry a usable author identity.
type AuthorCheck struct{}

func NewAuthorCheck() *AuthorCheck {
	return &AuthorCheck{}
}

func (*AuthorCheck) Name() string {
	return "author"
}

func (*AuthorCheck) Description() string {
	return "Commits must have a valid author name and email"
}

func (c *AuthorCheck) Check(commit vcs.Commit, msg message.CommitMessage, conf *Configuration, ctx *Context) []Issue {
	var issues []Issue
	if strings.TrimSpace(commit.Author.Name) == "" {
		issues = append(issues, &AuthorNameIssue{baseIssue: newBaseIssue(commit, msg, c)})
	}
	if reason, ok := invalidEmail(commit.Author.Email); ok {
		issues = append(issues, &AuthorEmailIssue{baseIssue: newBaseIssue(commit, msg, c), Reason: reason})
	}
	return issues
}

func invalidEmail(email string) (string, bool) {
	switch {
	case strings.TrimSpace(email) == "":
		return "email is missing", true
	case !strings.Contains(email, "@"):
		return "email has no domain", true
	}
	return "", false
}
