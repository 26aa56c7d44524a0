package harness

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// Filter decides whether a registered test participates in a run. Include is
// called once per enabled test, single-threaded, before any worker starts.
type Filter interface {
	Include(details *TestDetails) bool
}

// WildcardFilter selects tests by name using space-separated wildcard words.
// Words before a lone "-" are include patterns, words after it are exclude
// patterns. An empty include list means "include everything". Patterns
// support "*" (any sequence) and "?" (any single character).
type WildcardFilter struct {
	include []*regexp.Regexp
	exclude []*regexp.Regexp
}

func NewWildcardFilter(spec string) *WildcardFilter {
	f := &WildcardFilter{}
	exclude := false
	for _, word := range strings.Fields(spec) {
		if word == "-" {
			exclude = true
			continue
		}
		p := compileWildcard(word)
		if exclude {
			f.exclude = append(f.exclude, p)
		} else {
			f.include = append(f.include, p)
		}
	}
	if len(f.include) == 0 {
		f.include = append(f.include, compileWildcard("*"))
	}
	return f
}

func (f *WildcardFilter) Include(details *TestDetails) bool {
	for _, p := range f.exclude {
		if p.MatchString(details.TestName) {
			return false
		}
	}
	for _, p := range f.include {
		if p.MatchString(details.TestName) {
			return true
		}
	}
	return false
}

func compileWildcard(pattern string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.MustCompile(b.String())
}

// RegexFilters selects tests by matching their full "suite.name" against
// regular expressions: a test is included if it matches at least one
// MustMatch pattern (or none are defined) and no MustNotMatch pattern.
type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

func (r RegexFilters) Include(details *TestDetails) bool {
	name := details.FullName()
	return (!r.MustMatch.IsDefined() || r.MustMatch.AnyMatch(name)) &&
		!r.MustNotMatch.AnyMatch(name)
}

type RegexList struct {
	patterns []*regexp.Regexp
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	rx, err := regexp.Compile(value)
	if err != nil {
		return errors.Wrap(err, "invalid regex")
	}
	r.patterns = append(r.patterns, rx)
	return nil
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

func (r RegexList) AnyMatch(s string) bool {
	for _, p := range r.patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}
