package harness

import (
	"regexp"
	"strings"
)

// Order is a strict weak ordering over test details, used by TestList.Sort
// to establish a deterministic sequence before an optional shuffle.
type Order interface {
	Less(a, b *TestDetails) bool
}

// PatternBasedFileOrder ranks tests by the first wildcard pattern their
// source file name matches; files matching no pattern sort after all
// matching ones. Ties are broken by file name, then by original test index,
// so two distinct tests never compare equal. Copies share the underlying
// pattern cache.
type PatternBasedFileOrder struct {
	state *patternOrderState
}

type patternOrderState struct {
	patterns []*regexp.Regexp
	majors   map[*TestDetails]int
}

func NewPatternBasedFileOrder(patterns ...string) PatternBasedFileOrder {
	state := &patternOrderState{majors: make(map[*TestDetails]int)}
	for _, p := range patterns {
		state.patterns = append(state.patterns, compileWildcard(p))
	}
	return PatternBasedFileOrder{state: state}
}

func (o PatternBasedFileOrder) Less(a, b *TestDetails) bool {
	majorA := o.state.major(a)
	majorB := o.state.major(b)
	if majorA != majorB {
		return majorA < majorB
	}
	if c := strings.Compare(a.FileName, b.FileName); c != 0 {
		return c < 0
	}
	return a.TestIndex < b.TestIndex
}

func (s *patternOrderState) major(details *TestDetails) int {
	if major, ok := s.majors[details]; ok {
		return major
	}
	major := len(s.patterns)
	for i, p := range s.patterns {
		if p.MatchString(details.FileName) {
			major = i
			break
		}
	}
	s.majors[details] = major
	return major
}
