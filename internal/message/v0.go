package message

import (
	"strings"

	"github.com/lgxbslgx/skara/internal/vcs"
)

type v0Parser struct{}

func (v0Parser) Version() string {
	return "v0"
}

// Parse reads the legacy tagged format: a free form title line followed
// by "Summary:", "Reviewed-by:" and "Contributed-by:" lines in any
// order. Untagged nonblank lines are collected as Additional.
func (v0Parser) Parse(lines []string) CommitMessage {
	var msg CommitMessage
	if len(lines) == 0 {
		return msg
	}
	msg.Title = strings.TrimRight(lines[0], carriageChars)

	for _, raw := range lines[1:] {
		line := strings.TrimRight(raw, carriageChars)
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "Summary: "):
			msg.Summaries = append(msg.Summaries, strings.TrimPrefix(line, "Summary: "))
		case strings.HasPrefix(line, "Reviewed-by: "):
			msg.Reviewers = append(msg.Reviewers, splitList(strings.TrimPrefix(line, "Reviewed-by: "))...)
		case strings.HasPrefix(line, "Contributed-by: "):
			msg.Contributors = append(msg.Contributors, vcs.ParseAuthor(strings.TrimPrefix(line, "Contributed-by: ")))
		default:
			msg.Additional = append(msg.Additional, line)
		}
	}
	return msg
}
