package jcheck

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lgxbslgx/skara/internal/vcs"
)

func testConf(t *testing.T, lines ...string) *Configuration {
	t.Helper()
	conf, err := Parse(lines)
	require.NoError(t, err)
	return conf
}

func binaryTestConf(t *testing.T) *Configuration {
	t.Helper()
	return testConf(t,
		"[general]",
		"project = test",
		"[checks]",
		"error = binary",
		`[checks "binary"]`,
		`.*\.bin = 1b`,
		`.*\.o = 1k`,
	)
}

func mustStatus(t *testing.T, s string) vcs.Status {
	t.Helper()
	status, err := vcs.ParseStatus(s)
	require.NoError(t, err)
	return status
}

func mustFileInfo(t *testing.T, path, octal string) vcs.FileInfo {
	t.Helper()
	ft, err := vcs.FileTypeFromOctal(octal)
	require.NoError(t, err)
	return vcs.FileInfo{Path: path, Type: ft, Hash: vcs.ZeroHash}
}

func newTestCommit(t *testing.T, diffs ...vcs.Diff) vcs.Commit {
	t.Helper()
	hash, err := vcs.ParseHash("0123456789012345678901234567890123456789")
	require.NoError(t, err)
	author := vcs.Author{Name: "Jane Doe", Email: "jane@host.org"}
	when := time.Date(2024, 5, 14, 12, 0, 0, 0, time.UTC)
	return vcs.Commit{
		CommitMetadata: vcs.CommitMetadata{
			Hash:      hash,
			Parents:   []vcs.Hash{vcs.ZeroHash},
			Author:    author,
			Authored:  when,
			Committer: author,
			Committed: when,
			Message:   []string{"1234567: A change"},
		},
		ParentDiffs: diffs,
	}
}

func newDiff(patches ...vcs.Patch) vcs.Diff {
	return vcs.Diff{From: vcs.ZeroHash, To: vcs.ZeroHash, Patches: patches}
}

func textualPatch(t *testing.T, path string) vcs.Patch {
	t.Helper()
	info := mustFileInfo(t, path, "100644")
	hunks := []vcs.Hunk{{
		Source: vcs.Range{Start: 1, Count: 0},
		Target: vcs.Range{Start: 1, Count: 1},
		Added:  []string{"some line"},
	}}
	return vcs.NewTextualPatch(info, info, mustStatus(t, "M"), hunks)
}

func binaryPatch(t *testing.T, path, status string, sizes ...int64) vcs.Patch {
	t.Helper()
	st := mustStatus(t, status)
	hunks := make([]vcs.BinaryHunk, 0, len(sizes))
	for _, size := range sizes {
		hunks = append(hunks, vcs.LiteralBinaryHunk(size, []string{"testtest"}))
	}
	source := vcs.FileInfo{}
	if !st.IsAdded() {
		source = mustFileInfo(t, path, "100644")
	}
	target := vcs.FileInfo{}
	if !st.IsDeleted() {
		target = mustFileInfo(t, path, "100644")
	}
	return vcs.NewBinaryPatch(source, target, st, hunks)
}
