package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/maxbolgarin/errm"

	"github.com/lgxbslgx/skara/internal/jcheck"
	"github.com/lgxbslgx/skara/internal/vcs"
)

var _ Reporter = (*Writer)(nil)

// Describe renders a single issue as one human-readable sentence.
func Describe(issue jcheck.Issue) string {
	switch i := issue.(type) {
	case *jcheck.BinaryFileTooLargeIssue:
		return fmt.Sprintf("binary file %s is too large (%d bytes, limit %d)", i.Path, i.FileSize, i.Limit)
	case *jcheck.WhitespaceIssue:
		parts := make([]string, 0, len(i.Errors))
		for _, e := range i.Errors {
			parts = append(parts, fmt.Sprintf("row %d (%s)", e.Row, whitespaceLabel(e.Kind)))
		}
		return fmt.Sprintf("whitespace errors in %s: %s", i.Path, strings.Join(parts, ", "))
	case *jcheck.AuthorNameIssue:
		return "author name is missing"
	case *jcheck.AuthorEmailIssue:
		return "author " + i.Reason
	case *jcheck.CommitterNameIssue:
		return "committer name is missing"
	case *jcheck.CommitterEmailIssue:
		return "committer " + i.Reason
	case *jcheck.MergeMessageIssue:
		return fmt.Sprintf("merge commit message must match %q", i.Pattern)
	case *jcheck.EmptyMessageIssue:
		return "commit message is empty"
	case *jcheck.MessageLineLengthIssue:
		return fmt.Sprintf("commit message line %d is %d characters long (limit %d)", i.Row, i.Length, i.Limit)
	case *jcheck.MissingIssueReferenceIssue:
		return "commit message does not reference any issue"
	case *jcheck.ExecutableFileIssue:
		return fmt.Sprintf("executable file %s is not allowed", i.Path)
	case *jcheck.SymlinkIssue:
		return fmt.Sprintf("symbolic link %s is not allowed", i.Path)
	default:
		return fmt.Sprintf("%s check failed", issue.Check().Name())
	}
}

func whitespaceLabel(kind jcheck.WhitespaceErrorKind) string {
	switch kind {
	case jcheck.WhitespaceTab:
		return "tab"
	case jcheck.WhitespaceCR:
		return "carriage return"
	case jcheck.WhitespaceTrailing:
		return "trailing whitespace"
	default:
		return string(kind)
	}
}

// Writer prints one line per issue followed by a per-commit summary.
type Writer struct {
	out io.Writer
}

// NewWriter creates a reporter that writes plain text to out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

func (w *Writer) Report(_ context.Context, commit vcs.Commit, issues []jcheck.Issue) error {
	for _, issue := range issues {
		_, err := fmt.Fprintf(w.out, "%s %s [%s] %s\n",
			commit.Hash.Short(), issue.Severity(), issue.Check().Name(), Describe(issue))
		if err != nil {
			return errm.Wrap(err, "write issue line")
		}
	}

	if len(issues) > 0 {
		counts := jcheck.CountBySeverity(issues)
		_, err := fmt.Fprintf(w.out, "%s: %d error(s), %d warning(s)\n",
			commit.Hash.Short(), counts[jcheck.SeverityError], counts[jcheck.SeverityWarning])
		if err != nil {
			return errm.Wrap(err, "write summary line")
		}
	}

	return nil
}
