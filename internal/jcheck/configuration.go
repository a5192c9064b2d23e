package jcheck

import (
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"

	"github.com/lgxbslgx/skara/internal/message"
)

const (
	sectionGeneral = "general"
	sectionChecks  = "checks"

	defaultMessageVersion = "v1"
	defaultMergePattern   = "Merge .+"
	defaultMessageWidth   = 72
)

// Field is one key=value entry of a configuration section.
type Field struct {
	Key   string
	Value string
	Line  int
}

// CheckConfiguration is the raw ordered view of one [checks "NAME"]
// section. The zero value is the empty configuration of a check that
// has no section.
type CheckConfiguration struct {
	name   string
	fields []Field
	index  map[string]string
}

// Name returns the check the section belongs to.
func (c CheckConfiguration) Name() string {
	return c.name
}

// Get looks up a key.
func (c CheckConfiguration) Get(key string) (string, bool) {
	v, ok := c.index[key]
	return v, ok
}

// GetDefault looks up a key, falling back to def when it is absent.
func (c CheckConfiguration) GetDefault(key, def string) string {
	return lang.Check(c.index[key], def)
}

// Fields returns the entries in declaration order.
func (c CheckConfiguration) Fields() []Field {
	return c.fields
}

// IsEmpty reports whether the section has no entries.
func (c CheckConfiguration) IsEmpty() bool {
	return len(c.fields) == 0
}

func (c CheckConfiguration) fieldLine(key string) int {
	for _, f := range c.fields {
		if f.Key == key {
			return f.Line
		}
	}
	return 0
}

// GeneralConfiguration is the [general] section.
type GeneralConfiguration struct {
	Project        string
	Repository     string
	MessageVersion string
}

// ChecksConfiguration is the [checks] section: which checks run and
// with which severity. A check is enabled when it is named in either
// list.
type ChecksConfiguration struct {
	errorChecks   []string
	warningChecks []string
}

// Enabled returns the enabled check names, error checks first.
func (c ChecksConfiguration) Enabled() []string {
	out := make([]string, 0, len(c.errorChecks)+len(c.warningChecks))
	out = append(out, c.errorChecks...)
	out = append(out, c.warningChecks...)
	return out
}

// SeverityFor returns the configured severity of a check and whether
// the check is enabled at all.
func (c ChecksConfiguration) SeverityFor(name string) (Severity, bool) {
	for _, n := range c.errorChecks {
		if n == name {
			return SeverityError, true
		}
	}
	for _, n := range c.warningChecks {
		if n == name {
			return SeverityWarning, true
		}
	}
	return "", false
}

// SizeLimit is one pattern=limit entry of the binary section.
type SizeLimit struct {
	Pattern     *regexp.Regexp
	PatternText string
	Limit       int64
}

// BinaryConfiguration is the parsed [checks "binary"] section: an
// ordered table of (pattern, byte limit) pairs.
type BinaryConfiguration struct {
	Limits []SizeLimit
}

// LimitFor walks the table in declaration order and returns the limit
// of the first pattern that matches the whole path. A path that
// matches nothing is unconstrained.
func (c BinaryConfiguration) LimitFor(path string) (int64, bool) {
	for _, limit := range c.Limits {
		if limit.Pattern.MatchString(path) {
			return limit.Limit, true
		}
	}
	return 0, false
}

// WhitespaceConfiguration is the parsed [checks "whitespace"] section.
// Files is nil when no files key is set, meaning nothing is checked.
type WhitespaceConfiguration struct {
	Files *regexp.Regexp
}

// MergeConfiguration is the parsed [checks "merge"] section.
type MergeConfiguration struct {
	Message        *regexp.Regexp
	MessagePattern string
}

// MessageConfiguration is the parsed [checks "message"] section. A
// Width of 0 disables the line length rule.
type MessageConfiguration struct {
	Width int
}

// ExecutableConfiguration is the parsed [checks "executable"] section.
// Allowed is nil when every executable file is a violation.
type ExecutableConfiguration struct {
	Allowed *regexp.Regexp
}

// Configuration is a parsed policy file. It is immutable after Parse
// and safe to share between goroutines.
type Configuration struct {
	general    GeneralConfiguration
	checks     ChecksConfiguration
	sections   map[string]CheckConfiguration
	binary     BinaryConfiguration
	whitespace WhitespaceConfiguration
	merge      MergeConfiguration
	message    MessageConfiguration
	executable ExecutableConfiguration
}

// General returns the [general] section.
func (c *Configuration) General() GeneralConfiguration {
	return c.general
}

// Checks returns the [checks] section.
func (c *Configuration) Checks() ChecksConfiguration {
	return c.checks
}

// Check returns the raw section of the named check. A check without a
// section gets an empty configuration, never an error.
func (c *Configuration) Check(name string) CheckConfiguration {
	if s, ok := c.sections[name]; ok {
		return s
	}
	return CheckConfiguration{name: name}
}

func (c *Configuration) Binary() BinaryConfiguration         { return c.binary }
func (c *Configuration) Whitespace() WhitespaceConfiguration { return c.whitespace }
func (c *Configuration) Merge() MergeConfiguration           { return c.merge }
func (c *Configuration) Message() MessageConfiguration       { return c.message }
func (c *Configuration) Executable() ExecutableConfiguration { return c.executable }

// ParseFile reads and parses a policy file from disk.
func ParseFile(path string) (*Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errm.Wrap(err, "read configuration")
	}
	return Parse(strings.Split(string(data), "\n"))
}

var sectionLine = regexp.MustCompile(`^\[([A-Za-z0-9_-]+)(?:[ \t]+"([^"]*)")?\]$`)

// Parse parses policy text of the form
//
//	[general]
//	project = loom
//
//	[checks]
//	error = author, binary
//	warning = whitespace
//
//	[checks "binary"]
//	.*\.bin = 4k
//
// Unusable lines, duplicate keys and invalid per-check values fail
// fast with a *ParseError; nothing of a partially broken file is kept.
func Parse(lines []string) (*Configuration, error) {
	conf := &Configuration{sections: make(map[string]CheckConfiguration)}

	var (
		plain   = make(map[string]*CheckConfiguration)
		subs    = make(map[string]*CheckConfiguration)
		current *CheckConfiguration
	)
	for idx, raw := range lines {
		n := idx + 1
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			m := sectionLine.FindStringSubmatch(line)
			if m == nil {
				return nil, &ParseError{Line: n, Text: line, Reason: "malformed section header"}
			}
			name, sub := m[1], m[2]
			if sub != "" && name != sectionChecks {
				return nil, &ParseError{Line: n, Text: line, Reason: ErrUnknownSubsection.Error()}
			}
			target := plain
			key := name
			if sub != "" {
				target = subs
				key = sub
			}
			if _, ok := target[key]; ok {
				return nil, &ParseError{Line: n, Text: line, Reason: "duplicate section"}
			}
			current = &CheckConfiguration{name: lang.Check(sub, name), index: make(map[string]string)}
			target[key] = current
			continue
		}

		eq := strings.Index(line, "=")
		if eq < 0 {
			return nil, &ParseError{Line: n, Text: line, Reason: "expected key = value"}
		}
		key := strings.TrimSpace(line[:eq])
		value := strings.TrimSpace(line[eq+1:])
		if key == "" {
			return nil, &ParseError{Line: n, Text: line, Reason: "empty key"}
		}
		if current == nil {
			return nil, &ParseError{Line: n, Text: line, Reason: "entry outside of any section"}
		}
		if _, dup := current.index[key]; dup {
			return nil, &ParseError{Line: n, Text: line, Reason: "duplicate key " + strconv.Quote(key)}
		}
		current.index[key] = value
		current.fields = append(current.fields, Field{Key: key, Value: value, Line: n})
	}

	for name, section := range subs {
		conf.sections[name] = *section
	}
	if err := conf.buildGeneral(plain[sectionGeneral]); err != nil {
		return nil, err
	}
	if err := conf.buildChecks(plain[sectionChecks]); err != nil {
		return nil, err
	}
	if err := conf.buildBinary(); err != nil {
		return nil, err
	}
	if err := conf.buildWhitespace(); err != nil {
		return nil, err
	}
	if err := conf.buildMerge(); err != nil {
		return nil, err
	}
	if err := conf.buildMessage(); err != nil {
		return nil, err
	}
	if err := conf.buildExecutable(); err != nil {
		return nil, err
	}
	return conf, nil
}

func (c *Configuration) buildGeneral(section *CheckConfiguration) error {
	if section == nil || section.index["project"] == "" {
		return ErrMissingProject
	}
	c.general = GeneralConfiguration{
		Project:        section.index["project"],
		Repository:     section.index["repository"],
		MessageVersion: lang.Check(section.index["message-version"], defaultMessageVersion),
	}
	if _, err := message.ForVersion(c.general.MessageVersion); err != nil {
		return errm.Wrap(err, "[general] message-version")
	}
	return nil
}

func (c *Configuration) buildChecks(section *CheckConfiguration) error {
	if section == nil {
		return nil
	}
	c.checks.errorChecks = splitNames(section.index["error"])
	c.checks.warningChecks = splitNames(section.index["warning"])
	for _, warn := range c.checks.warningChecks {
		for _, name := range c.checks.errorChecks {
			if warn == name {
				return errm.Wrap(ErrConflictingSeverity, name)
			}
		}
	}
	return nil
}

func (c *Configuration) buildBinary() error {
	section := c.Check("binary")
	for _, field := range section.fields {
		pattern, err := compileAnchored(field.Key)
		if err != nil {
			return &ParseError{Line: field.Line, Text: field.Key, Reason: "invalid pattern: " + err.Error()}
		}
		limit, err := ParseSize(field.Value)
		if err != nil {
			return &ParseError{Line: field.Line, Text: field.Value, Reason: err.Error()}
		}
		c.binary.Limits = append(c.binary.Limits, SizeLimit{
			Pattern:     pattern,
			PatternText: field.Key,
			Limit:       limit,
		})
	}
	return nil
}

func (c *Configuration) buildWhitespace() error {
	section := c.Check("whitespace")
	expr, ok := section.Get("files")
	if !ok {
		return nil
	}
	pattern, err := compileAnchored(expr)
	if err != nil {
		return &ParseError{Line: section.fieldLine("files"), Text: expr, Reason: "invalid whitespace files pattern: " + err.Error()}
	}
	c.whitespace.Files = pattern
	return nil
}

func (c *Configuration) buildMerge() error {
	section := c.Check("merge")
	expr := section.GetDefault("message", defaultMergePattern)
	pattern, err := compileAnchored(expr)
	if err != nil {
		return &ParseError{Line: section.fieldLine("message"), Text: expr, Reason: "invalid merge message pattern: " + err.Error()}
	}
	c.merge = MergeConfiguration{Message: pattern, MessagePattern: expr}
	return nil
}

func (c *Configuration) buildMessage() error {
	c.message.Width = defaultMessageWidth
	section := c.Check("message")
	raw, ok := section.Get("width")
	if !ok {
		return nil
	}
	width, err := strconv.Atoi(raw)
	if err != nil || width < 0 {
		return &ParseError{Line: section.fieldLine("width"), Text: raw, Reason: "invalid message width"}
	}
	c.message.Width = width
	return nil
}

func (c *Configuration) buildExecutable() error {
	section := c.Check("executable")
	expr, ok := section.Get("allowed")
	if !ok {
		return nil
	}
	pattern, err := compileAnchored(expr)
	if err != nil {
		return &ParseError{Line: section.fieldLine("allowed"), Text: expr, Reason: "invalid executable allowed pattern: " + err.Error()}
	}
	c.executable.Allowed = pattern
	return nil
}

// compileAnchored compiles expr so that it must match a whole string,
// the way patterns in policy files are meant to be read.
func compileAnchored(expr string) (*regexp.Regexp, error) {
	return regexp.Compile(`^(?:` + expr + `)$`)
}

func splitNames(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseSize parses a size value with an optional suffix: plain digits
// or "b" are bytes, "k" is KiB and "m" is MiB.
func ParseSize(s string) (int64, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	mult := int64(1)
	if len(t) > 0 {
		switch t[len(t)-1] {
		case 'b':
			t = t[:len(t)-1]
		case 'k':
			mult, t = 1024, t[:len(t)-1]
		case 'm':
			mult, t = 1024*1024, t[:len(t)-1]
		}
	}
	if t == "" {
		return 0, errm.New("size %q has no digits", s)
	}
	for _, r := range t {
		if r < '0' || r > '9' {
			return 0, errm.New("invalid size %q", s)
		}
	}
	n, err := strconv.ParseInt(t, 10, 64)
	if err != nil {
		return 0, errm.New("invalid size %q", s)
	}
	if n > math.MaxInt64/mult {
		return 0, errm.New("size %q is out of range", s)
	}
	return n * mult, nil
}
