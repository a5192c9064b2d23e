package report

import (
	"bytes"
	"context"
	stdjson "encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lgxbslgx/skara/internal/jcheck"
	"github.com/lgxbslgx/skara/internal/vcs"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name  string
		issue jcheck.Issue
		want  string
	}{
		{
			name:  "binary",
			issue: &jcheck.BinaryFileTooLargeIssue{Path: "logo.bin", FileSize: 2048, Limit: 1024},
			want:  "binary file logo.bin is too large (2048 bytes, limit 1024)",
		},
		{
			name: "whitespace",
			issue: &jcheck.WhitespaceIssue{Path: "main.go", Errors: []jcheck.WhitespaceError{
				{Row: 10, Kind: jcheck.WhitespaceTab},
				{Row: 11, Kind: jcheck.WhitespaceTrailing},
				{Row: 12, Kind: jcheck.WhitespaceCR},
			}},
			want: "whitespace errors in main.go: row 10 (tab), row 11 (trailing whitespace), row 12 (carriage return)",
		},
		{
			name:  "author name",
			issue: &jcheck.AuthorNameIssue{},
			want:  "author name is missing",
		},
		{
			name:  "author email",
			issue: &jcheck.AuthorEmailIssue{Reason: "email has no domain"},
			want:  "author email has no domain",
		},
		{
			name:  "committer name",
			issue: &jcheck.CommitterNameIssue{},
			want:  "committer name is missing",
		},
		{
			name:  "committer email",
			issue: &jcheck.CommitterEmailIssue{Reason: "email domain must be openjdk.org"},
			want:  "committer email domain must be openjdk.org",
		},
		{
			name:  "merge",
			issue: &jcheck.MergeMessageIssue{Pattern: "Merge .+"},
			want:  `merge commit message must match "Merge .+"`,
		},
		{
			name:  "empty message",
			issue: &jcheck.EmptyMessageIssue{},
			want:  "commit message is empty",
		},
		{
			name:  "line length",
			issue: &jcheck.MessageLineLengthIssue{Row: 2, Length: 80, Limit: 72},
			want:  "commit message line 2 is 80 characters long (limit 72)",
		},
		{
			name:  "missing issue",
			issue: &jcheck.MissingIssueReferenceIssue{},
			want:  "commit message does not reference any issue",
		},
		{
			name:  "executable",
			issue: &jcheck.ExecutableFileIssue{Path: "run.sh"},
			want:  "executable file run.sh is not allowed",
		},
		{
			name:  "symlink",
			issue: &jcheck.SymlinkIssue{Path: "link"},
			want:  "symbolic link link is not allowed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Describe(tt.issue))
		})
	}
}

// checkedCommit runs a real configuration over a commit with one
// oversized binary file and a message without an issue reference.
func checkedCommit(t *testing.T) (vcs.Commit, []jcheck.Issue) {
	t.Helper()

	conf, err := jcheck.Parse([]string{
		"[general]",
		"project = test",
		"[checks]",
		"error = binary",
		"warning = issues",
		`[checks "binary"]`,
		`.*\.bin = 1b`,
	})
	require.NoError(t, err)

	hash, err := vcs.ParseHash(strings.Repeat("a", vcs.HashLength))
	require.NoError(t, err)
	parent, err := vcs.ParseHash(strings.Repeat("b", vcs.HashLength))
	require.NoError(t, err)

	status, err := vcs.ParseStatus("A")
	require.NoError(t, err)
	fileType, err := vcs.FileTypeFromOctal("100644")
	require.NoError(t, err)
	patch := vcs.NewBinaryPatch(
		vcs.FileInfo{},
		vcs.FileInfo{Path: "big.bin", Type: fileType, Hash: parent},
		status,
		[]vcs.BinaryHunk{vcs.LiteralBinaryHunk(9, nil)},
	)

	when := time.Date(2024, 5, 14, 12, 0, 0, 0, time.UTC)
	commit := vcs.Commit{
		CommitMetadata: vcs.CommitMetadata{
			Hash:      hash,
			Parents:   []vcs.Hash{parent},
			Author:    vcs.Author{Name: "Jane Doe", Email: "jane@host.org"},
			Authored:  when,
			Committer: vcs.Author{Name: "Jane Doe", Email: "jane@host.org"},
			Committed: when,
			Message:   []string{"Fix the flux capacitor"},
		},
		ParentDiffs: []vcs.Diff{{From: parent, To: hash, Patches: []vcs.Patch{patch}}},
	}

	issues, err := jcheck.CheckCommit(commit, conf, nil)
	require.NoError(t, err)
	require.Len(t, issues, 2)

	return commit, issues
}

func TestWriter_Report(t *testing.T) {
	commit, issues := checkedCommit(t)

	var buf bytes.Buffer
	err := NewWriter(&buf).Report(context.Background(), commit, issues)
	require.NoError(t, err)

	want := strings.Join([]string{
		"aaaaaaaa warning [issues] commit message does not reference any issue",
		"aaaaaaaa error [binary] binary file big.bin is too large (9 bytes, limit 1)",
		"aaaaaaaa: 1 error(s), 1 warning(s)",
		"",
	}, "\n")
	require.Equal(t, want, buf.String())
}

func TestWriter_Report_NoIssues(t *testing.T) {
	commit, _ := checkedCommit(t)

	var buf bytes.Buffer
	err := NewWriter(&buf).Report(context.Background(), commit, nil)
	require.NoError(t, err)
	require.Empty(t, buf.String())
}

func TestStatusDescription(t *testing.T) {
	_, issues := checkedCommit(t)

	require.Equal(t, "all checks passed", statusDescription(nil))

	desc := statusDescription(issues)
	require.True(t, strings.HasPrefix(desc, "1 error(s), 1 warning(s): "), desc)
}

func TestBitbucketReporter_Report(t *testing.T) {
	commit, issues := checkedCommit(t)

	var (
		gotPath string
		gotBody map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, stdjson.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	reporter, err := NewBitbucketReporter(Config{
		Type:    Bitbucket,
		BaseURL: srv.URL,
		Token:   "t",
		Project: "openjdk/jdk",
		Context: "policy/test",
	})
	require.NoError(t, err)

	require.NoError(t, reporter.Report(context.Background(), commit, issues))
	require.Equal(t, "/repositories/openjdk/jdk/commit/"+commit.Hash.String()+"/statuses/build", gotPath)
	require.Equal(t, "FAILED", gotBody["state"])
	require.Equal(t, "policy/test", gotBody["key"])
	require.Contains(t, gotBody["description"], "1 error(s)")

	require.NoError(t, reporter.Report(context.Background(), commit, nil))
	require.Equal(t, "SUCCESSFUL", gotBody["state"])
}

func TestConfig_PrepareAndValidate(t *testing.T) {
	cfg := Config{}
	require.NoError(t, cfg.PrepareAndValidate())
	require.Equal(t, Text, cfg.Type)

	cfg = Config{Type: "carrier-pigeon"}
	require.Error(t, cfg.PrepareAndValidate())

	cfg = Config{Type: GitHub}
	require.Error(t, cfg.PrepareAndValidate())

	cfg = Config{Type: GitHub, Token: "t"}
	require.Error(t, cfg.PrepareAndValidate())

	cfg = Config{Type: GitHub, Token: "t", Project: "openjdk/jdk"}
	require.NoError(t, cfg.PrepareAndValidate())

	cfg = Config{Type: GitLab, Token: "t", Project: "group/repo"}
	require.NoError(t, cfg.PrepareAndValidate())
}

func TestNew(t *testing.T) {
	reporter, err := New(Config{Type: Text})
	require.NoError(t, err)
	require.IsType(t, &Writer{}, reporter)

	_, err = New(Config{Type: GitHub})
	require.Error(t, err)

	_, err = New(Config{Type: "smoke-signal"})
	require.Error(t, err)
}
