package vcs

import (
	"strconv"

	"github.com/maxbolgarin/errm"
)

// StatusKind is the change class of a patch.
type StatusKind string

const (
	StatusAdded    StatusKind = "A"
	StatusModified StatusKind = "M"
	StatusDeleted  StatusKind = "D"
	StatusRenamed  StatusKind = "R"
	StatusCopied   StatusKind = "C"
	StatusUnmerged StatusKind = "U"
)

// Status is the change class of a patch, with a similarity score for
// renames and copies.
type Status struct {
	kind  StatusKind
	score int
}

// ParseStatus parses the letter forms produced by raw diffs: "A", "M",
// "D", "U", and "R"/"C" with an optional similarity score such as
// "R100" or "C75". A missing score means 100, a score outside (0,100]
// is an error.
func ParseStatus(s string) (Status, error) {
	if s == "" {
		return Status{}, errm.New("empty status")
	}
	kind := StatusKind(s[:1])
	rest := s[1:]

	switch kind {
	case StatusAdded, StatusModified, StatusDeleted, StatusUnmerged:
		if rest != "" {
			return Status{}, errm.New("status %q does not take a score", s)
		}
		return Status{kind: kind}, nil
	case StatusRenamed, StatusCopied:
		score := 100
		if rest != "" {
			n, err := strconv.Atoi(rest)
			if err != nil {
				return Status{}, errm.New("invalid similarity score in status %q", s)
			}
			score = n
		}
		if score <= 0 || score > 100 {
			return Status{}, errm.New("similarity score %d out of range in status %q", score, s)
		}
		return Status{kind: kind, score: score}, nil
	default:
		return Status{}, errm.New("unknown status %q", s)
	}
}

// Kind returns the change class.
func (s Status) Kind() StatusKind {
	return s.kind
}

// Score returns the similarity score of a rename or copy, 0 otherwise.
func (s Status) Score() int {
	return s.score
}

func (s Status) String() string {
	if s.kind == StatusRenamed || s.kind == StatusCopied {
		return string(s.kind) + strconv.Itoa(s.score)
	}
	return string(s.kind)
}

func (s Status) IsAdded() bool    { return s.kind == StatusAdded }
func (s Status) IsModified() bool { return s.kind == StatusModified }
func (s Status) IsDeleted() bool  { return s.kind == StatusDeleted }
func (s Status) IsRenamed() bool  { return s.kind == StatusRenamed }
func (s Status) IsCopied() bool   { return s.kind == StatusCopied }
func (s Status) IsUnmerged() bool { return s.kind == StatusUnmerged }
