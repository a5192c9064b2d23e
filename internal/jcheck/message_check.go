package jcheck

import (
	"strings"
	"unicode/utf8"

	"github.com/lgxbslgx/skara/internal/message"
	"github.com/lgxbslgx/skara/internal/vcs"
)

// EmptyMessageIssue reports a commit whose message has no content.
type EmptyMessageIssue struct {
	baseIssue
}

// MessageLineLengthIssue reports an overlong message line. Row is
// 1-based.
type MessageLineLengthIssue struct {
	baseIssue

	Row    int
	Length int
	Limit  int
}

// MessageCheck keeps commit messages usable: they must say something,
// and their lines must fit the configured width (default 72, width = 0
// turns the rule off).
type MessageCheck struct{}

func NewMessageCheck() *MessageCheck {
	return &MessageCheck{}
}

func (*MessageCheck) Name() string {
	return "message"
}

func (*MessageCheck) Description() string {
	return "Commit messages must be nonempty with lines within the configured width"
}

func (c *MessageCheck) Check(commit vcs.Commit, msg message.CommitMessage, conf *Configuration, ctx *Context) []Issue {
	empty := true
	for _, line := range commit.Message {
		if strings.TrimSpace(line) != "" {
			empty = false
			break
		}
	}
	if empty {
		return []Issue{&EmptyMessageIssue{baseIssue: newBaseIssue(commit, msg, c)}}
	}

	width := conf.Message().Width
	if width == 0 {
		return nil
	}
	var issues []Issue
	for i, line := range commit.Message {
		if length := utf8.RuneCountInString(line); length > width {
			issues = append(issues, &MessageLineLengthIssue{
				baseIssue: newBaseIssue(commit, msg, c),
				Row:       i + 1,
				Length:    length,
				Limit:     width,
			})
		}
	}
	return issues
}
