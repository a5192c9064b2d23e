// Package message parses raw commit message lines into a structured
// CommitMessage. Parsers are total: any input yields a message, and
// hygiene problems are left for the checks to flag.
package message

import (
	"github.com/maxbolgarin/errm"

	"github.com/lgxbslgx/skara/internal/vcs"
)

// IssueRef is a reference to a tracked issue in a commit title, such as
// "8181085: Remove debug output".
type IssueRef struct {
	ID          string
	Description string
}

func (r IssueRef) String() string {
	return r.ID + ": " + r.Description
}

// CommitMessage is the structured form of a commit message.
type CommitMessage struct {
	Title        string
	Issues       []IssueRef
	Summaries    []string
	Contributors []vcs.Author
	Reviewers    []string
	Additional   []string
}

// Parser turns raw message lines into a CommitMessage.
type Parser interface {
	Version() string
	Parse(lines []string) CommitMessage
}

var (
	// V0 parses the legacy tagged format (Summary:, Reviewed-by:,
	// Contributed-by: lines after the title).
	V0 Parser = v0Parser{}
	// V1 parses the current format: leading issue lines, summary
	// paragraphs, Co-authored-by and Reviewed-by trailers.
	V1 Parser = v1Parser{}
)

// ForVersion selects a parser by its version tag.
func ForVersion(version string) (Parser, error) {
	switch version {
	case "v0":
		return V0, nil
	case "v1":
		return V1, nil
	default:
		return nil, errm.New("unknown message version %q", version)
	}
}
