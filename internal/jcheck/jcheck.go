// Package jcheck is the commit policy engine: an INI-like policy
// configuration, a registry of stateless checks and the issues they
// raise. CheckCommit runs the enabled checks against one commit; the
// Runner fans the engine out over many commits.
package jcheck

import (
	"github.com/maxbolgarin/errm"

	"github.com/lgxbslgx/skara/internal/message"
	"github.com/lgxbslgx/skara/internal/vcs"
)

// CheckCommit runs every enabled check against one commit and returns
// the issues found. Checks run in AllChecks order and each check's
// issues keep the order it produced them. The message parser is picked
// from the configuration, issues of warning listed checks are
// downgraded, and a commit without diffs can only fail metadata and
// message checks.
func CheckCommit(commit vcs.Commit, conf *Configuration, ctx *Context) ([]Issue, error) {
	parser, err := message.ForVersion(conf.General().MessageVersion)
	if err != nil {
		return nil, errm.Wrap(err, "select message parser")
	}
	msg := parser.Parse(commit.Message)

	var issues []Issue
	for _, check := range AllChecks() {
		severity, enabled := conf.Checks().SeverityFor(check.Name())
		if !enabled {
			continue
		}
		for _, issue := range check.Check(commit, msg, conf, ctx) {
			if severity == SeverityWarning {
				if o, ok := issue.(severityOverride); ok {
					o.setSeverity(SeverityWarning)
				}
			}
			issues = append(issues, issue)
		}
	}
	return issues, nil
}

// CountBySeverity tallies issues per severity.
func CountBySeverity(issues []Issue) map[Severity]int {
	counts := make(map[Severity]int, 2)
	for _, issue := range issues {
		counts[issue.Severity()]++
	}
	return counts
}
