package jcheck

import (
	"sort"
	"strings"

	"github.com/lgxbslgx/skara/internal/message"
	"github.com/lgxbslgx/skara/internal/vcs"
)

// Severity grades an issue. Checks construct issues as errors; the
// engine downgrades the issues of checks configured under warning.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one policy violation found by a check. Issues are plain
// values carried to reporters; finding one is a result, never a Go
// error. Every issue knows the commit it was found in, the parsed
// message of that commit and the check that raised it.
type Issue interface {
	Commit() vcs.Commit
	Message() message.CommitMessage
	Check() Check
	Severity() Severity
}

type baseIssue struct {
	commit   vcs.Commit
	message  message.CommitMessage
	check    Check
	severity Severity
}

func newBaseIssue(commit vcs.Commit, msg message.CommitMessage, check Check) baseIssue {
	return baseIssue{commit: commit, message: msg, check: check, severity: SeverityError}
}

func (i *baseIssue) Commit() vcs.Commit             { return i.commit }
func (i *baseIssue) Message() message.CommitMessage { return i.message }
func (i *baseIssue) Check() Check                   { return i.check }
func (i *baseIssue) Severity() Severity             { return i.severity }

func (i *baseIssue) setSeverity(s Severity) { i.severity = s }

// severityOverride is what the engine uses to apply the configured
// warning downgrade to a freshly produced issue.
type severityOverride interface {
	setSeverity(Severity)
}

// IssuePath returns the file path an issue is about, or "" for issues
// that concern the commit as a whole.
func IssuePath(issue Issue) string {
	switch i := issue.(type) {
	case *BinaryFileTooLargeIssue:
		return i.Path
	case *WhitespaceIssue:
		return i.Path
	case *ExecutableFileIssue:
		return i.Path
	case *SymlinkIssue:
		return i.Path
	default:
		return ""
	}
}

// IssueKey is the identity of an issue: commit hash, check name and
// path. Two issues with equal keys describe the same violation.
func IssueKey(issue Issue) string {
	return strings.Join([]string{
		issue.Commit().Hash.String(),
		issue.Check().Name(),
		IssuePath(issue),
	}, "\x00")
}

// SortIssues orders issues by commit hash, check name and path,
// keeping emission order between equal keys.
func SortIssues(issues []Issue) {
	sort.SliceStable(issues, func(a, b int) bool {
		return IssueKey(issues[a]) < IssueKey(issues[b])
	})
}
