package jcheck

import (
	"strings"

	"github.com/lgxbslgx/skara/internal/message"
	"github.com/lgxbslgx/skara/internal/vcs"
)

// WhitespaceErrorKind classifies one bad character sequence.
type WhitespaceErrorKind string

const (
	WhitespaceTab      WhitespaceErrorKind = "tab"
	WhitespaceCR       WhitespaceErrorKind = "cr"
	WhitespaceTrailing WhitespaceErrorKind = "trailing"
)

// WhitespaceError is one offending added line. Row is the 1-based line
// number in the target file.
type WhitespaceError struct {
	Row  int
	Kind WhitespaceErrorKind
}

// WhitespaceIssue reports every whitespace problem a patch adds to one
// file.
type WhitespaceIssue struct {
	baseIssue

	Path   string
	Errors []WhitespaceError
}

// WhitespaceCheck flags tabs, carriage returns and trailing whitespace
// on added lines of files matching the files pattern of its section.
// Without a files key nothing is checked.
type WhitespaceCheck struct{}

func NewWhitespaceCheck() *WhitespaceCheck {
	return &WhitespaceCheck{}
}

func (*WhitespaceCheck) Name() string {
	return "whitespace"
}

func (*WhitespaceCheck) Description() string {
	return "Added lines must be free of tabs, carriage returns and trailing whitespace"
}

func (c *WhitespaceCheck) Check(commit vcs.Commit, msg message.CommitMessage, conf *Configuration, ctx *Context) []Issue {
	files := conf.Whitespace().Files
	if files == nil {
		return nil
	}
	var issues []Issue
	for _, diff := range commit.ParentDiffs {
		for _, patch := range diff.Patches {
			if !patch.IsTextual() || patch.Status.IsDeleted() || !patch.Target.IsPresent() {
				continue
			}
			if !files.MatchString(patch.Target.Path) {
				continue
			}
			var errors []WhitespaceError
			for _, hunk := range patch.Textual.Hunks {
				for i, line := range hunk.Added {
					row := hunk.Target.Start + i
					if strings.Contains(line, "\t") {
						errors = append(errors, WhitespaceError{Row: row, Kind: WhitespaceTab})
					}
					switch {
					case strings.HasSuffix(line, "\r"):
						errors = append(errors, WhitespaceError{Row: row, Kind: WhitespaceCR})
					case strings.TrimRight(line, " \t") != line:
						errors = append(errors, WhitespaceError{Row: row, Kind: WhitespaceTrailing})
					}
				}
			}
			if len(errors) > 0 {
				issues = append(issues, &WhitespaceIssue{
					baseIssue: newBaseIssue(commit, msg, c),
					Path:      patch.Target.Path,
					Errors:    errors,
				})
			}
		}
	}
	return issues
}
