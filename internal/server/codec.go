package server

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"

	"github.com/lgxbslgx/skara/internal/jcheck"
	"github.com/lgxbslgx/skara/internal/report"
	"github.com/lgxbslgx/skara/internal/vcs"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CommitPayload is the wire form of one commit together with one diff
// per parent.
type CommitPayload struct {
	Hash      string        `json:"hash"`
	Parents   []string      `json:"parents"`
	Author    AuthorPayload `json:"author"`
	Authored  time.Time     `json:"authored"`
	Committer AuthorPayload `json:"committer"`
	Committed time.Time     `json:"committed"`
	Message   []string      `json:"message"`
	Diffs     []DiffPayload `json:"diffs"`
}

type AuthorPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type DiffPayload struct {
	From    string         `json:"from"`
	To      string         `json:"to"`
	Patches []PatchPayload `json:"patches"`
}

// PatchPayload carries either textual hunks or binary hunks. The Binary
// flag disambiguates patches without hunks, such as renames.
type PatchPayload struct {
	SourcePath string `json:"source_path,omitempty"`
	SourceType string `json:"source_type,omitempty"`
	SourceHash string `json:"source_hash,omitempty"`
	TargetPath string `json:"target_path,omitempty"`
	TargetType string `json:"target_type,omitempty"`
	TargetHash string `json:"target_hash,omitempty"`
	Status     string `json:"status"`

	Binary      bool                `json:"binary,omitempty"`
	Hunks       []HunkPayload       `json:"hunks,omitempty"`
	BinaryHunks []BinaryHunkPayload `json:"binary_hunks,omitempty"`
}

type HunkPayload struct {
	SourceStart int      `json:"source_start"`
	SourceCount int      `json:"source_count"`
	TargetStart int      `json:"target_start"`
	TargetCount int      `json:"target_count"`
	Added       []string `json:"added,omitempty"`
	Removed     []string `json:"removed,omitempty"`
}

type BinaryHunkPayload struct {
	Kind         string `json:"kind"`
	InflatedSize int64  `json:"inflated_size"`
}

// CheckResponse reports the issues found in one commit. Violations are
// data, not transport errors, so they ride in a 200 response.
type CheckResponse struct {
	Commit string         `json:"commit"`
	Issues []IssuePayload `json:"issues"`
}

type IssuePayload struct {
	Check    string `json:"check"`
	Severity string `json:"severity"`
	Path     string `json:"path,omitempty"`
	Details  string `json:"details"`
}

// toCommit validates the payload and converts it to the domain model.
func toCommit(payload CommitPayload) (vcs.Commit, error) {
	hash, err := vcs.ParseHash(payload.Hash)
	if err != nil {
		return vcs.Commit{}, errm.Wrap(err, "parse commit hash")
	}

	parents := make([]vcs.Hash, 0, len(payload.Parents))
	for _, raw := range payload.Parents {
		parent, err := vcs.ParseHash(raw)
		if err != nil {
			return vcs.Commit{}, errm.Wrap(err, "parse parent hash")
		}
		parents = append(parents, parent)
	}

	if len(payload.Diffs) != len(payload.Parents) {
		return vcs.Commit{}, errm.New("commit has %d parents but %d diffs", len(payload.Parents), len(payload.Diffs))
	}

	diffs := make([]vcs.Diff, 0, len(payload.Diffs))
	for _, rawDiff := range payload.Diffs {
		diff, err := toDiff(rawDiff)
		if err != nil {
			return vcs.Commit{}, err
		}
		diffs = append(diffs, diff)
	}

	return vcs.Commit{
		CommitMetadata: vcs.CommitMetadata{
			Hash:      hash,
			Parents:   parents,
			Author:    vcs.Author{Name: payload.Author.Name, Email: payload.Author.Email},
			Authored:  payload.Authored,
			Committer: vcs.Author{Name: payload.Committer.Name, Email: payload.Committer.Email},
			Committed: payload.Committed,
			Message:   payload.Message,
		},
		ParentDiffs: diffs,
	}, nil
}

func toDiff(payload DiffPayload) (vcs.Diff, error) {
	from, err := vcs.ParseHash(payload.From)
	if err != nil {
		return vcs.Diff{}, errm.Wrap(err, "parse diff base hash")
	}
	to, err := vcs.ParseHash(payload.To)
	if err != nil {
		return vcs.Diff{}, errm.Wrap(err, "parse diff target hash")
	}

	patches := make([]vcs.Patch, 0, len(payload.Patches))
	for _, rawPatch := range payload.Patches {
		patch, err := toPatch(rawPatch)
		if err != nil {
			return vcs.Diff{}, errm.Wrap(err, "parse patch", "path", lang.Check(rawPatch.TargetPath, rawPatch.SourcePath))
		}
		patches = append(patches, patch)
	}

	return vcs.Diff{From: from, To: to, Patches: patches}, nil
}

func toPatch(payload PatchPayload) (vcs.Patch, error) {
	status, err := vcs.ParseStatus(payload.Status)
	if err != nil {
		return vcs.Patch{}, err
	}

	source, err := toFileInfo(payload.SourcePath, payload.SourceType, payload.SourceHash)
	if err != nil {
		return vcs.Patch{}, errm.Wrap(err, "parse patch source")
	}
	target, err := toFileInfo(payload.TargetPath, payload.TargetType, payload.TargetHash)
	if err != nil {
		return vcs.Patch{}, errm.Wrap(err, "parse patch target")
	}

	if payload.Binary {
		if len(payload.Hunks) > 0 {
			return vcs.Patch{}, errm.New("binary patch with textual hunks")
		}
		hunks := make([]vcs.BinaryHunk, 0, len(payload.BinaryHunks))
		for _, rawHunk := range payload.BinaryHunks {
			if rawHunk.InflatedSize < 0 {
				return vcs.Patch{}, errm.New("negative inflated size %d", rawHunk.InflatedSize)
			}
			switch vcs.BinaryHunkKind(rawHunk.Kind) {
			case vcs.BinaryLiteral:
				hunks = append(hunks, vcs.LiteralBinaryHunk(rawHunk.InflatedSize, nil))
			case vcs.BinaryDelta:
				hunks = append(hunks, vcs.DeltaBinaryHunk(rawHunk.InflatedSize, nil))
			default:
				return vcs.Patch{}, errm.New("unknown binary hunk kind %q", rawHunk.Kind)
			}
		}
		return vcs.NewBinaryPatch(source, target, status, hunks), nil
	}

	if len(payload.BinaryHunks) > 0 {
		return vcs.Patch{}, errm.New("textual patch with binary hunks")
	}
	hunks := make([]vcs.Hunk, 0, len(payload.Hunks))
	for _, rawHunk := range payload.Hunks {
		hunks = append(hunks, vcs.Hunk{
			Source:  vcs.Range{Start: rawHunk.SourceStart, Count: rawHunk.SourceCount},
			Target:  vcs.Range{Start: rawHunk.TargetStart, Count: rawHunk.TargetCount},
			Added:   rawHunk.Added,
			Removed: rawHunk.Removed,
		})
	}
	return vcs.NewTextualPatch(source, target, status, hunks), nil
}

func toFileInfo(path, octal, rawHash string) (vcs.FileInfo, error) {
	if path == "" && octal == "" && rawHash == "" {
		return vcs.FileInfo{}, nil
	}

	fileType, err := vcs.FileTypeFromOctal(octal)
	if err != nil {
		return vcs.FileInfo{}, err
	}
	hash, err := vcs.ParseHash(rawHash)
	if err != nil {
		return vcs.FileInfo{}, err
	}

	return vcs.FileInfo{Path: path, Type: fileType, Hash: hash}, nil
}

func toResponse(commit vcs.Commit, issues []jcheck.Issue) CheckResponse {
	payload := make([]IssuePayload, 0, len(issues))
	for _, issue := range issues {
		payload = append(payload, IssuePayload{
			Check:    issue.Check().Name(),
			Severity: string(issue.Severity()),
			Path:     jcheck.IssuePath(issue),
			Details:  report.Describe(issue),
		})
	}

	return CheckResponse{
		Commit: commit.Hash.String(),
		Issues: payload,
	}
}
