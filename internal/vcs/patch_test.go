package vcs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func fileInfo(t *testing.T, path, octal string) FileInfo {
	t.Helper()
	ft, err := FileTypeFromOctal(octal)
	require.NoError(t, err)
	return FileInfo{Path: path, Type: ft, Hash: ZeroHash}
}

func TestNewTextualPatch(t *testing.T) {
	status, err := ParseStatus("M")
	require.NoError(t, err)

	hunks := []Hunk{{
		Source:  Range{Start: 1, Count: 0},
		Target:  Range{Start: 1, Count: 1},
		Added:   []string{"package main"},
		Removed: nil,
	}}
	p := NewTextualPatch(fileInfo(t, "main.go", "100644"), fileInfo(t, "main.go", "100644"), status, hunks)

	require.True(t, p.IsTextual())
	require.False(t, p.IsBinary())
	require.Nil(t, p.Binary)
	require.Len(t, p.Textual.Hunks, 1)
	require.Equal(t, "main.go", p.Path())
}

func TestNewBinaryPatch(t *testing.T) {
	status, err := ParseStatus("A")
	require.NoError(t, err)

	hunks := []BinaryHunk{LiteralBinaryHunk(9, []string{"Rcmf#xxx"})}
	p := NewBinaryPatch(FileInfo{}, fileInfo(t, "logo.bin", "100644"), status, hunks)

	require.True(t, p.IsBinary())
	require.False(t, p.IsTextual())
	require.Nil(t, p.Textual)
	require.Equal(t, BinaryLiteral, p.Binary.Hunks[0].Kind)
	require.Equal(t, int64(9), p.Binary.Hunks[0].InflatedSize)
	require.False(t, p.Source.IsPresent())
}

func TestPatch_Path_DeletedFallsBackToSource(t *testing.T) {
	status, err := ParseStatus("D")
	require.NoError(t, err)

	p := NewTextualPatch(fileInfo(t, "gone.txt", "100644"), FileInfo{}, status, nil)
	require.Equal(t, "gone.txt", p.Path())
}

func TestCommit_IsMerge(t *testing.T) {
	var c Commit
	require.False(t, c.IsMerge())

	c.Parents = []Hash{ZeroHash}
	require.False(t, c.IsMerge())

	c.Parents = []Hash{ZeroHash, ZeroHash}
	require.True(t, c.IsMerge())
}

func TestParseAuthor(t *testing.T) {
	tests := []struct {
		input string
		want  Author
	}{
		{"Jane Doe <jane@host.org>", Author{Name: "Jane Doe", Email: "jane@host.org"}},
		{"jane@host.org", Author{Name: "jane@host.org"}},
		{"<jane@host.org>", Author{Email: "jane@host.org"}},
		{"", Author{}},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ParseAuthor(tt.input), "input %q", tt.input)
	}
	require.Equal(t, "Jane Doe <jane@host.org>", Author{Name: "Jane Doe", Email: "jane@host.org"}.String())
}
