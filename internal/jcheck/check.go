package jcheck

import (
	"github.com/lgxbslgx/skara/internal/message"
	"github.com/lgxbslgx/skara/internal/vcs"
)

// Context is the execution context handed to every check. It is the
// extension point for collaborators a check may need beyond the commit
// itself, such as repository lookups or contributor rosters. None of
// the built in checks consult it and a nil Context is always valid.
type Context struct{}

// Check is one commit policy. Implementations are stateless: a single
// instance may serve many commits concurrently, and for the same
// commit and configuration it always returns the same issues. A check
// reports violations by returning issues; an empty result means the
// commit passes. Checks never return Go errors, never panic on
// violations and never mutate their inputs.
type Check interface {
	// Name is the stable identifier of the check. It is the key of
	// the check's configuration section and of the [checks] error
	// and warning lists.
	Name() string
	// Description is a one line summary of the policy.
	Description() string
	// Check inspects one commit and returns the violations found.
	Check(commit vcs.Commit, msg message.CommitMessage, conf *Configuration, ctx *Context) []Issue
}

// AllChecks returns fresh instances of every known check in the order
// the engine runs them. The table is the single registration point:
// a check that is not listed here does not exist.
func AllChecks() []Check {
	return []Check{
		NewAuthorCheck(),
		NewCommitterCheck(),
		NewMergeMessageCheck(),
		NewMessageCheck(),
		NewIssuesCheck(),
		NewWhitespaceCheck(),
		NewExecutableCheck(),
		NewSymlinkCheck(),
		NewBinaryCheck(),
	}
}
