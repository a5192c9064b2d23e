package vcs

import (
	"github.com/maxbolgarin/errm"
)

// FileKind is the effective kind of a tree entry. Two FileTypes are the
// same when their kinds are the same, whatever the raw octal said.
type FileKind string

const (
	FileKindMissing    FileKind = "missing"
	FileKindRegular    FileKind = "regular"
	FileKindExecutable FileKind = "executable"
	FileKindSymlink    FileKind = "symlink"
	FileKindSubmodule  FileKind = "submodule"
	FileKindDirectory  FileKind = "directory"
)

// FileType is a tree entry mode normalized from its raw octal form.
type FileType struct {
	kind  FileKind
	octal string
}

// FileTypeFromOctal maps a raw mode string such as "100644" or "120000"
// to a FileType. The zero mode "000000" means the entry is absent on
// that side of the patch.
func FileTypeFromOctal(octal string) (FileType, error) {
	kind, ok := fileKindByOctal[octal]
	if !ok {
		return FileType{}, errm.New("unknown file mode %q", octal)
	}
	return FileType{kind: kind, octal: octal}, nil
}

var fileKindByOctal = map[string]FileKind{
	"000000": FileKindMissing,
	"100644": FileKindRegular,
	"100664": FileKindRegular,
	"100755": FileKindExecutable,
	"120000": FileKindSymlink,
	"160000": FileKindSubmodule,
	"040000": FileKindDirectory,
	"40000":  FileKindDirectory,
}

// Kind returns the effective kind. The zero FileType is FileKindMissing.
func (t FileType) Kind() FileKind {
	if t.kind == "" {
		return FileKindMissing
	}
	return t.kind
}

// Octal returns the raw mode string the type was built from.
func (t FileType) Octal() string {
	if t.octal == "" {
		return "000000"
	}
	return t.octal
}

func (t FileType) String() string {
	return string(t.Kind())
}

// Is reports kind equality, ignoring the raw octal spelling.
func (t FileType) Is(kind FileKind) bool {
	return t.Kind() == kind
}

func (t FileType) IsRegular() bool    { return t.Is(FileKindRegular) }
func (t FileType) IsExecutable() bool { return t.Is(FileKindExecutable) }
func (t FileType) IsSymlink() bool    { return t.Is(FileKindSymlink) }
func (t FileType) IsSubmodule() bool  { return t.Is(FileKindSubmodule) }
func (t FileType) IsMissing() bool    { return t.Is(FileKindMissing) }
