package vcs

import (
	"fmt"
	"strings"
)

// Author identifies the author or committer of a commit.
type Author struct {
	Name  string
	Email string
}

func (a Author) String() string {
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

// ParseAuthor parses the "Name <email>" form produced by git logs.
// Both parts may be empty; checks decide whether that is a problem.
func ParseAuthor(s string) Author {
	open := strings.LastIndex(s, "<")
	close := strings.LastIndex(s, ">")
	if open < 0 || close < open {
		return Author{Name: strings.TrimSpace(s)}
	}
	return Author{
		Name:  strings.TrimSpace(s[:open]),
		Email: strings.TrimSpace(s[open+1 : close]),
	}
}
