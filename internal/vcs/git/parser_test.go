package git

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lgxbslgx/skara/internal/vcs"
)

const (
	hashA = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	hashB = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	zeros = "0000000000000000000000000000000000000000"
)

func TestParseLogRecords(t *testing.T) {
	record := strings.Join([]string{
		hashA,
		hashB,
		"Jane Doe",
		"jane@host.org",
		"2024-05-14T12:00:00+02:00",
		"Rob Roe",
		"rob@host.org",
		"2024-05-14T12:05:00+02:00",
		"1234567: A change\n\nSome body text\n",
	}, "\x1f") + "\x1e\n"

	metadata, err := parseLogRecords([]byte(record))
	require.NoError(t, err)
	require.Len(t, metadata, 1)

	meta := metadata[0]
	require.Equal(t, vcs.Hash(hashA), meta.Hash)
	require.Equal(t, []vcs.Hash{vcs.Hash(hashB)}, meta.Parents)
	require.Equal(t, vcs.Author{Name: "Jane Doe", Email: "jane@host.org"}, meta.Author)
	require.Equal(t, vcs.Author{Name: "Rob Roe", Email: "rob@host.org"}, meta.Committer)
	require.Equal(t, "2024-05-14T12:00:00+02:00", meta.Authored.Format("2006-01-02T15:04:05-07:00"))
	require.Equal(t, []string{"1234567: A change", "", "Some body text"}, meta.Message)
}

func TestParseLogRecords_RootAndMerge(t *testing.T) {
	root := strings.Join([]string{
		hashA, "", "Jane", "j@h.org",
		"2024-05-14T12:00:00Z", "Jane", "j@h.org", "2024-05-14T12:00:00Z",
		"initial",
	}, "\x1f") + "\x1e\n"
	merge := strings.Join([]string{
		hashB, hashA + " " + zeros, "Jane", "j@h.org",
		"2024-05-14T12:00:00Z", "Jane", "j@h.org", "2024-05-14T12:00:00Z",
		"Merge something",
	}, "\x1f") + "\x1e\n"

	metadata, err := parseLogRecords([]byte(root + merge))
	require.NoError(t, err)
	require.Len(t, metadata, 2)
	require.Empty(t, metadata[0].Parents)
	require.Len(t, metadata[1].Parents, 2)
}

func TestParseLogRecords_Malformed(t *testing.T) {
	_, err := parseLogRecords([]byte("only\x1ftwo fields\x1e"))
	require.Error(t, err)

	_, err = parseLogRecords([]byte(strings.Join([]string{
		"nothex", hashB, "Jane", "j@h.org",
		"2024-05-14T12:00:00Z", "Jane", "j@h.org", "2024-05-14T12:00:00Z", "m",
	}, "\x1f") + "\x1e"))
	require.Error(t, err)
}

func TestParseDiff_Textual(t *testing.T) {
	out := strings.Join([]string{
		":100644 100644 " + hashA + " " + hashB + " M\tmain.go",
		"",
		"diff --git a/main.go b/main.go",
		"index " + hashA + ".." + hashB + " 100644",
		"--- a/main.go",
		"+++ b/main.go",
		"@@ -1,0 +2 @@",
		"+added line",
		"@@ -10,2 +11,0 @@",
		"-first gone",
		"-second gone",
		"",
	}, "\n")

	diff, err := parseDiff(vcs.Hash(hashA), vcs.Hash(hashB), []byte(out))
	require.NoError(t, err)
	require.Equal(t, vcs.Hash(hashA), diff.From)
	require.Len(t, diff.Patches, 1)

	patch := diff.Patches[0]
	require.True(t, patch.IsTextual())
	require.True(t, patch.Status.IsModified())
	require.Equal(t, "main.go", patch.Source.Path)
	require.Equal(t, "main.go", patch.Target.Path)
	require.Equal(t, vcs.Hash(hashB), patch.Target.Hash)

	require.Len(t, patch.Textual.Hunks, 2)
	first := patch.Textual.Hunks[0]
	require.Equal(t, vcs.Range{Start: 1, Count: 0}, first.Source)
	require.Equal(t, vcs.Range{Start: 2, Count: 1}, first.Target)
	require.Equal(t, []string{"added line"}, first.Added)
	require.Empty(t, first.Removed)

	second := patch.Textual.Hunks[1]
	require.Equal(t, vcs.Range{Start: 10, Count: 2}, second.Source)
	require.Equal(t, vcs.Range{Start: 11, Count: 0}, second.Target)
	require.Equal(t, []string{"first gone", "second gone"}, second.Removed)
}

func TestParseDiff_BinaryLiteral(t *testing.T) {
	out := strings.Join([]string{
		":000000 100644 " + zeros + " " + hashB + " A\tlogo.bin",
		"",
		"diff --git a/logo.bin b/logo.bin",
		"new file mode 100644",
		"index " + zeros + ".." + hashB,
		"GIT binary patch",
		"literal 9",
		"Qcmd;KfB*mh2m%5B02F",
		"",
		"literal 0",
		"HcmV?d00001",
		"",
	}, "\n")

	diff, err := parseDiff(vcs.Hash(zeros), vcs.Hash(hashB), []byte(out))
	require.NoError(t, err)
	require.Len(t, diff.Patches, 1)

	patch := diff.Patches[0]
	require.True(t, patch.IsBinary())
	require.True(t, patch.Status.IsAdded())
	require.False(t, patch.Source.IsPresent())
	require.Equal(t, "logo.bin", patch.Target.Path)

	// Only the forward hunk counts; the reverse literal 0 is framing.
	require.Len(t, patch.Binary.Hunks, 1)
	hunk := patch.Binary.Hunks[0]
	require.Equal(t, vcs.BinaryLiteral, hunk.Kind)
	require.Equal(t, int64(9), hunk.InflatedSize)
	require.NotEmpty(t, hunk.Data)
}

func TestParseDiff_BinaryDelta(t *testing.T) {
	out := strings.Join([]string{
		":100644 100644 " + hashA + " " + hashB + " M\tlogo.bin",
		"",
		"diff --git a/logo.bin b/logo.bin",
		"index " + hashA + ".." + hashB + " 100644",
		"GIT binary patch",
		"delta 12",
		"Sc$`yg0000}D",
		"",
		"delta 7",
		"OcmZ>d0000!9{>OV",
		"",
	}, "\n")

	diff, err := parseDiff(vcs.Hash(hashA), vcs.Hash(hashB), []byte(out))
	require.NoError(t, err)
	require.Len(t, diff.Patches, 1)
	require.Len(t, diff.Patches[0].Binary.Hunks, 1)
	require.Equal(t, vcs.BinaryDelta, diff.Patches[0].Binary.Hunks[0].Kind)
	require.Equal(t, int64(12), diff.Patches[0].Binary.Hunks[0].InflatedSize)
}

func TestParseDiff_BinaryFilesDiffer(t *testing.T) {
	out := strings.Join([]string{
		":100644 100644 " + hashA + " " + hashB + " M\tx.bin",
		"",
		"diff --git a/x.bin b/x.bin",
		"index " + hashA + ".." + hashB + " 100644",
		"Binary files a/x.bin and b/x.bin differ",
		"",
	}, "\n")

	diff, err := parseDiff(vcs.Hash(hashA), vcs.Hash(hashB), []byte(out))
	require.NoError(t, err)
	require.Len(t, diff.Patches, 1)
	require.True(t, diff.Patches[0].IsBinary())
	require.Empty(t, diff.Patches[0].Binary.Hunks)
}

func TestParseDiff_Rename(t *testing.T) {
	out := strings.Join([]string{
		":100644 100644 " + hashA + " " + hashA + " R100\told.txt\tnew.txt",
		"",
		"diff --git a/old.txt b/new.txt",
		"similarity index 100%",
		"rename from old.txt",
		"rename to new.txt",
		"",
	}, "\n")

	diff, err := parseDiff(vcs.Hash(hashA), vcs.Hash(hashB), []byte(out))
	require.NoError(t, err)
	require.Len(t, diff.Patches, 1)

	patch := diff.Patches[0]
	require.True(t, patch.IsTextual())
	require.Empty(t, patch.Textual.Hunks)
	require.True(t, patch.Status.IsRenamed())
	require.Equal(t, 100, patch.Status.Score())
	require.Equal(t, "old.txt", patch.Source.Path)
	require.Equal(t, "new.txt", patch.Target.Path)
}

func TestParseDiff_Deleted(t *testing.T) {
	out := strings.Join([]string{
		":100644 000000 " + hashA + " " + zeros + " D\tgone.txt",
		"",
		"diff --git a/gone.txt b/gone.txt",
		"deleted file mode 100644",
		"index " + hashA + ".." + zeros,
		"--- a/gone.txt",
		"+++ /dev/null",
		"@@ -1 +0,0 @@",
		"-the only line",
		"",
	}, "\n")

	diff, err := parseDiff(vcs.Hash(hashA), vcs.Hash(hashB), []byte(out))
	require.NoError(t, err)
	require.Len(t, diff.Patches, 1)

	patch := diff.Patches[0]
	require.True(t, patch.Status.IsDeleted())
	require.False(t, patch.Target.IsPresent())
	require.Equal(t, "gone.txt", patch.Source.Path)
	require.Equal(t, "gone.txt", patch.Path())
	require.Equal(t, []string{"the only line"}, patch.Textual.Hunks[0].Removed)
}

func TestParseDiff_QuotedPath(t *testing.T) {
	out := strings.Join([]string{
		":100644 100644 " + hashA + " " + hashB + " M\t\"a\\tb.txt\"",
		"",
		"diff --git \"a/a\\tb.txt\" \"b/a\\tb.txt\"",
		"index " + hashA + ".." + hashB + " 100644",
		"--- \"a/a\\tb.txt\"",
		"+++ \"b/a\\tb.txt\"",
		"@@ -1 +1 @@",
		"-x",
		"+y",
		"",
	}, "\n")

	diff, err := parseDiff(vcs.Hash(hashA), vcs.Hash(hashB), []byte(out))
	require.NoError(t, err)
	require.Equal(t, "a\tb.txt", diff.Patches[0].Target.Path)
}

func TestParseDiff_Empty(t *testing.T) {
	diff, err := parseDiff(vcs.Hash(hashA), vcs.Hash(hashB), nil)
	require.NoError(t, err)
	require.Empty(t, diff.Patches)
}

func TestParseDiff_Malformed(t *testing.T) {
	_, err := parseDiff(vcs.Hash(hashA), vcs.Hash(hashB), []byte("garbage\n"))
	require.Error(t, err)

	// A raw record without its patch section.
	_, err = parseDiff(vcs.Hash(hashA), vcs.Hash(hashB),
		[]byte(":100644 100644 "+hashA+" "+hashB+" M\tmain.go\n"))
	require.Error(t, err)

	// Unknown status letter.
	_, err = parseDiff(vcs.Hash(hashA), vcs.Hash(hashB),
		[]byte(":100644 100644 "+hashA+" "+hashB+" X\tmain.go\n"))
	require.Error(t, err)
}
