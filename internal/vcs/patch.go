package vcs

// Range is a line range inside one side of a file: a 1-based start line
// and a line count. A count of 0 marks a pure insertion or deletion
// point.
type Range struct {
	Start int
	Count int
}

// Hunk is one contiguous change of a textual patch.
type Hunk struct {
	Source  Range
	Removed []string
	Target  Range
	Added   []string
}

// BinaryHunkKind tells how the payload of a binary hunk encodes the
// target blob.
type BinaryHunkKind string

const (
	// BinaryLiteral payloads decode to the whole target blob.
	BinaryLiteral BinaryHunkKind = "literal"
	// BinaryDelta payloads decode to a delta against the source blob.
	BinaryDelta BinaryHunkKind = "delta"
)

// BinaryHunk is one section of a binary patch. InflatedSize is the
// authoritative uncompressed byte length of the result and is never
// recomputed from the payload: for deltas the payload alone does not
// determine it. Data is kept opaque.
type BinaryHunk struct {
	Kind         BinaryHunkKind
	InflatedSize int64
	Data         []string
}

// LiteralBinaryHunk builds a literal hunk with the given inflated size.
func LiteralBinaryHunk(inflatedSize int64, data []string) BinaryHunk {
	return BinaryHunk{Kind: BinaryLiteral, InflatedSize: inflatedSize, Data: data}
}

// DeltaBinaryHunk builds a delta hunk with the given inflated size.
func DeltaBinaryHunk(inflatedSize int64, data []string) BinaryHunk {
	return BinaryHunk{Kind: BinaryDelta, InflatedSize: inflatedSize, Data: data}
}

// FileInfo describes one side of a patch. The zero value means the side
// is absent: an added file has no source, a deleted file has no target.
type FileInfo struct {
	Path string
	Type FileType
	Hash Hash
}

// IsPresent reports whether this side of the patch exists.
func (f FileInfo) IsPresent() bool {
	return f.Path != ""
}

// TextualPatch is the content of a patch whose diff is line based.
type TextualPatch struct {
	Hunks []Hunk
}

// BinaryPatch is the content of a patch whose diff is binary.
type BinaryPatch struct {
	Hunks []BinaryHunk
}

// Patch is a single-file change inside a Diff. Exactly one of Textual
// and Binary is set; the two constructors below are the only way the
// rest of the codebase builds patches. Whether a patch is binary
// follows from the diff content, never from the file name.
type Patch struct {
	Source FileInfo
	Target FileInfo
	Status Status

	Textual *TextualPatch
	Binary  *BinaryPatch
}

// NewTextualPatch builds a textual patch. A patch with zero hunks is
// valid and describes a metadata-only change such as a mode flip or a
// plain rename.
func NewTextualPatch(source, target FileInfo, status Status, hunks []Hunk) Patch {
	return Patch{
		Source:  source,
		Target:  target,
		Status:  status,
		Textual: &TextualPatch{Hunks: hunks},
	}
}

// NewBinaryPatch builds a binary patch.
func NewBinaryPatch(source, target FileInfo, status Status, hunks []BinaryHunk) Patch {
	return Patch{
		Source: source,
		Target: target,
		Status: status,
		Binary: &BinaryPatch{Hunks: hunks},
	}
}

// IsTextual reports whether the patch carries line hunks.
func (p Patch) IsTextual() bool {
	return p.Textual != nil
}

// IsBinary reports whether the patch carries binary hunks.
func (p Patch) IsBinary() bool {
	return p.Binary != nil
}

// Path returns the path the patch is best known by: the target side
// when present, the source side for deletions.
func (p Patch) Path() string {
	if p.Target.IsPresent() {
		return p.Target.Path
	}
	return p.Source.Path
}
