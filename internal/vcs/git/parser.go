package git

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"

	"github.com/lgxbslgx/skara/internal/vcs"
)

var hunkHeader = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// parseLogRecords parses the output of git log in logFormat.
func parseLogRecords(out []byte) ([]vcs.CommitMetadata, error) {
	var metadata []vcs.CommitMetadata
	for _, record := range strings.Split(string(out), "\x1e") {
		record = strings.TrimLeft(record, "\n")
		if strings.TrimSpace(record) == "" {
			continue
		}
		fields := strings.Split(record, "\x1f")
		if len(fields) != 9 {
			return nil, errm.New("log record has %d fields, expected 9", len(fields))
		}

		hash, err := vcs.ParseHash(fields[0])
		if err != nil {
			return nil, errm.Wrap(err, "commit hash")
		}
		var parents []vcs.Hash
		for _, p := range strings.Fields(fields[1]) {
			parent, err := vcs.ParseHash(p)
			if err != nil {
				return nil, errm.Wrap(err, "parent hash", "hash", hash.Short())
			}
			parents = append(parents, parent)
		}
		authored, err := time.Parse(time.RFC3339, fields[4])
		if err != nil {
			return nil, errm.Wrap(err, "authored time", "hash", hash.Short())
		}
		committed, err := time.Parse(time.RFC3339, fields[7])
		if err != nil {
			return nil, errm.Wrap(err, "committed time", "hash", hash.Short())
		}

		var message []string
		if body := strings.TrimRight(fields[8], "\n"); body != "" {
			message = strings.Split(body, "\n")
		}

		metadata = append(metadata, vcs.CommitMetadata{
			Hash:      hash,
			Parents:   parents,
			Author:    vcs.Author{Name: fields[2], Email: fields[3]},
			Authored:  authored,
			Committer: vcs.Author{Name: fields[5], Email: fields[6]},
			Committed: committed,
			Message:   message,
		})
	}
	return metadata, nil
}

type rawRecord struct {
	source vcs.FileInfo
	target vcs.FileInfo
	status vcs.Status
}

// parseDiff parses combined --raw --patch output: raw records first,
// then one patch section per record in the same order.
func parseDiff(from, to vcs.Hash, out []byte) (vcs.Diff, error) {
	diff := vcs.Diff{From: from, To: to}
	lines := strings.Split(string(out), "\n")

	var records []rawRecord
	i := 0
	for ; i < len(lines); i++ {
		line := lines[i]
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "diff --git ") {
			break
		}
		if !strings.HasPrefix(line, ":") {
			return vcs.Diff{}, errm.New("unexpected line before patches: %q", line)
		}
		record, err := parseRawRecord(line)
		if err != nil {
			return vcs.Diff{}, err
		}
		records = append(records, record)
	}

	var sections [][]string
	for ; i < len(lines); i++ {
		line := lines[i]
		if strings.HasPrefix(line, "diff --git ") {
			sections = append(sections, []string{line})
			continue
		}
		if len(sections) == 0 {
			if strings.TrimSpace(line) == "" {
				continue
			}
			return vcs.Diff{}, errm.New("patch content before any diff header: %q", line)
		}
		sections[len(sections)-1] = append(sections[len(sections)-1], line)
	}
	if len(sections) != len(records) {
		return vcs.Diff{}, errm.New("%d raw records but %d patch sections", len(records), len(sections))
	}

	for n, record := range records {
		patch, err := buildPatch(record, sections[n])
		if err != nil {
			return vcs.Diff{}, errm.Wrap(err, "patch", "path", lang.Check(record.target.Path, record.source.Path))
		}
		diff.Patches = append(diff.Patches, patch)
	}
	return diff, nil
}

// parseRawRecord parses one raw line such as
//
//	:100644 100755 <hash> <hash> M\tpath
//	:100644 100644 <hash> <hash> R100\told\tnew
func parseRawRecord(line string) (rawRecord, error) {
	parts := strings.Split(line, "\t")
	head := strings.Fields(strings.TrimPrefix(parts[0], ":"))
	if len(head) != 5 {
		return rawRecord{}, errm.New("malformed raw record %q", line)
	}

	sourceType, err := vcs.FileTypeFromOctal(head[0])
	if err != nil {
		return rawRecord{}, errm.Wrap(err, "raw record %q", line)
	}
	targetType, err := vcs.FileTypeFromOctal(head[1])
	if err != nil {
		return rawRecord{}, errm.Wrap(err, "raw record %q", line)
	}
	sourceHash, err := vcs.ParseHash(head[2])
	if err != nil {
		return rawRecord{}, errm.Wrap(err, "raw record %q", line)
	}
	targetHash, err := vcs.ParseHash(head[3])
	if err != nil {
		return rawRecord{}, errm.Wrap(err, "raw record %q", line)
	}
	status, err := vcs.ParseStatus(head[4])
	if err != nil {
		return rawRecord{}, errm.Wrap(err, "raw record %q", line)
	}

	paths := parts[1:]
	want := 1
	if status.IsRenamed() || status.IsCopied() {
		want = 2
	}
	if len(paths) != want {
		return rawRecord{}, errm.New("raw record %q has %d paths, expected %d", line, len(paths), want)
	}
	sourcePath, err := unquotePath(paths[0])
	if err != nil {
		return rawRecord{}, err
	}
	targetPath := sourcePath
	if want == 2 {
		if targetPath, err = unquotePath(paths[1]); err != nil {
			return rawRecord{}, err
		}
	}

	record := rawRecord{status: status}
	if !status.IsAdded() {
		record.source = vcs.FileInfo{Path: sourcePath, Type: sourceType, Hash: sourceHash}
	}
	if !status.IsDeleted() {
		record.target = vcs.FileInfo{Path: targetPath, Type: targetType, Hash: targetHash}
	}
	return record, nil
}

// buildPatch combines a raw record with its patch section. A section
// containing a GIT binary patch or a binary files notice makes the
// patch binary; anything else, including header-only sections for mode
// flips and pure renames, is textual.
func buildPatch(record rawRecord, section []string) (vcs.Patch, error) {
	for n, line := range section {
		if strings.HasPrefix(line, "GIT binary patch") {
			hunks, err := parseBinaryHunks(section[n+1:])
			if err != nil {
				return vcs.Patch{}, err
			}
			return vcs.NewBinaryPatch(record.source, record.target, record.status, hunks), nil
		}
		if strings.HasPrefix(line, "Binary files ") && strings.HasSuffix(line, " differ") {
			return vcs.NewBinaryPatch(record.source, record.target, record.status, nil), nil
		}
	}
	hunks, err := parseTextualHunks(section)
	if err != nil {
		return vcs.Patch{}, err
	}
	return vcs.NewTextualPatch(record.source, record.target, record.status, hunks), nil
}

func parseTextualHunks(section []string) ([]vcs.Hunk, error) {
	var hunks []vcs.Hunk
	for _, line := range section {
		if m := hunkHeader.FindStringSubmatch(line); m != nil {
			hunks = append(hunks, vcs.Hunk{
				Source: vcs.Range{Start: atoiDefault(m[1]), Count: atoiDefault1(m[2])},
				Target: vcs.Range{Start: atoiDefault(m[3]), Count: atoiDefault1(m[4])},
			})
			continue
		}
		if len(hunks) == 0 {
			continue
		}
		last := &hunks[len(hunks)-1]
		switch {
		case strings.HasPrefix(line, "+"):
			last.Added = append(last.Added, line[1:])
		case strings.HasPrefix(line, "-"):
			last.Removed = append(last.Removed, line[1:])
		}
	}
	return hunks, nil
}

// parseBinaryHunks reads the forward hunk of a GIT binary patch. The
// reverse hunk git appends for unapplying is not part of the commit's
// content and is dropped.
func parseBinaryHunks(rest []string) ([]vcs.BinaryHunk, error) {
	if len(rest) == 0 {
		return nil, errm.New("empty binary patch")
	}
	fields := strings.Fields(rest[0])
	if len(fields) != 2 {
		return nil, errm.New("malformed binary hunk header %q", rest[0])
	}
	size, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil || size < 0 {
		return nil, errm.New("malformed binary hunk size %q", rest[0])
	}

	var data []string
	for _, line := range rest[1:] {
		if line == "" {
			break
		}
		data = append(data, line)
	}

	switch fields[0] {
	case "literal":
		return []vcs.BinaryHunk{vcs.LiteralBinaryHunk(size, data)}, nil
	case "delta":
		return []vcs.BinaryHunk{vcs.DeltaBinaryHunk(size, data)}, nil
	default:
		return nil, errm.New("unknown binary hunk kind %q", fields[0])
	}
}

func unquotePath(path string) (string, error) {
	if !strings.HasPrefix(path, `"`) {
		return path, nil
	}
	unquoted, err := strconv.Unquote(path)
	if err != nil {
		return "", errm.Wrap(err, "unquote path", "path", path)
	}
	return unquoted, nil
}

func atoiDefault(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// atoiDefault1 parses a hunk count, which git omits when it is 1.
func atoiDefault1(s string) int {
	if s == "" {
		return 1
	}
	return atoiDefault(s)
}
