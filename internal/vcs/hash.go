// Package vcs holds the commit and diff model shared by every check:
// hashes, authors, file metadata, patches and hunks. Values are built
// once by a reader or a codec and treated as read-only afterwards.
package vcs

import (
	"strings"

	"github.com/maxbolgarin/errm"
)

// HashLength is the length of a full hex object hash.
const HashLength = 40

// Hash is a full 40-character lowercase hex object id.
type Hash string

// ZeroHash marks an absent object: the empty tree on a diff side or the
// blob of a file that does not exist on one side of a patch.
const ZeroHash = Hash("0000000000000000000000000000000000000000")

// ParseHash validates s as a full hex hash and returns it in lowercase.
func ParseHash(s string) (Hash, error) {
	if len(s) != HashLength {
		return "", errm.New("hash %q has length %d, expected %d", s, len(s), HashLength)
	}
	s = strings.ToLower(s)
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return "", errm.New("hash %q contains non-hex character %q", s, r)
		}
	}
	return Hash(s), nil
}

func (h Hash) String() string {
	return string(h)
}

// Short returns the 8-character abbreviation used in log lines and reports.
func (h Hash) Short() string {
	if len(h) < 8 {
		return string(h)
	}
	return string(h[:8])
}

// IsZero reports whether the hash marks an absent object.
func (h Hash) IsZero() bool {
	return h == ZeroHash || h == ""
}
