package jcheck

import (
	"fmt"

	"github.com/maxbolgarin/errm"
)

var (
	ErrMissingProject      = errm.New("project must be set in [general]")
	ErrConflictingSeverity = errm.New("check is listed under both error and warning")
	ErrUnknownSubsection   = errm.New("only [checks] supports subsections")
)

// ParseError reports a configuration line that cannot be used. Line is
// 1-based; 0 means the problem concerns the document as a whole.
type ParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return "configuration: " + e.Reason
	}
	return fmt.Sprintf("configuration line %d: %s (%q)", e.Line, e.Reason, e.Text)
}
