package message

import (
	"regexp"
	"strings"

	"github.com/lgxbslgx/skara/internal/vcs"
)

var (
	issueLine     = regexp.MustCompile(`^(\d+): (.+)$`)
	coAuthorLine  = regexp.MustCompile(`^Co-authored-by: (.+)$`)
	reviewedLine  = regexp.MustCompile(`^Reviewed-by: (.+)$`)
	carriageChars = "\r"
)

type v1Parser struct{}

func (v1Parser) Version() string {
	return "v1"
}

// Parse reads the current message format:
//
//	<id>: <description>        one or more issue lines
//	<blank>
//	Free form summary text.
//	<blank>
//	Co-authored-by: Name <email>
//	Reviewed-by: user1, user2
//
// The title is the first line verbatim. Trailer-shaped lines appearing
// after the first trailer that match no known tag are collected as
// Additional.
func (v1Parser) Parse(lines []string) CommitMessage {
	var msg CommitMessage
	if len(lines) == 0 {
		return msg
	}
	msg.Title = strings.TrimRight(lines[0], carriageChars)

	i := 0
	for i < len(lines) {
		m := issueLine.FindStringSubmatch(strings.TrimRight(lines[i], carriageChars))
		if m == nil {
			break
		}
		msg.Issues = append(msg.Issues, IssueRef{ID: m[1], Description: m[2]})
		i++
	}
	if i == 0 {
		// No issue lines: the first line is a plain title.
		i = 1
	}

	inTrailers := false
	for ; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], carriageChars)
		switch {
		case line == "":
			continue
		case coAuthorLine.MatchString(line):
			msg.Contributors = append(msg.Contributors, vcs.ParseAuthor(coAuthorLine.FindStringSubmatch(line)[1]))
			inTrailers = true
		case reviewedLine.MatchString(line):
			msg.Reviewers = append(msg.Reviewers, splitList(reviewedLine.FindStringSubmatch(line)[1])...)
			inTrailers = true
		case inTrailers:
			msg.Additional = append(msg.Additional, line)
		default:
			msg.Summaries = append(msg.Summaries, line)
		}
	}
	return msg
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
