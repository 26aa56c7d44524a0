package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternBasedFileOrderRanksByFirstMatchingPattern(t *testing.T) {
	order := NewPatternBasedFileOrder("*_core*", "*_util*")
	core := &TestDetails{FileName: "test_core_basic.go"}
	util := &TestDetails{FileName: "test_util_misc.go"}
	other := &TestDetails{FileName: "test_extra.go"}

	assert.True(t, order.Less(core, util))
	assert.True(t, order.Less(util, other))
	assert.True(t, order.Less(core, other))
	assert.False(t, order.Less(other, core))
}

func TestPatternBasedFileOrderTieBreaks(t *testing.T) {
	order := NewPatternBasedFileOrder()
	a1 := &TestDetails{FileName: "a.go", TestIndex: 1}
	a2 := &TestDetails{FileName: "a.go", TestIndex: 2}
	b := &TestDetails{FileName: "b.go", TestIndex: 0}

	// Same major everywhere: file name first, then original index.
	assert.True(t, order.Less(a1, b))
	assert.True(t, order.Less(a1, a2))
	assert.False(t, order.Less(a2, a1))
	assert.False(t, order.Less(a1, a1))
}

func TestPatternBasedFileOrderCachesMajors(t *testing.T) {
	order := NewPatternBasedFileOrder("*_core*")
	d := &TestDetails{FileName: "test_core.go"}
	assert.Equal(t, 0, order.state.major(d))
	d.FileName = "changed.go"
	// Cached by details identity, not recomputed.
	assert.Equal(t, 0, order.state.major(d))
}

func TestSortReordersListAndReassignsIndexes(t *testing.T) {
	list := NewTestList()
	list.Add(toggleTest{enabled: true}, "s", "third", "c_misc.go", 1)
	list.Add(toggleTest{enabled: true}, "s", "first", "a_core.go", 1)
	list.Add(toggleTest{enabled: true}, "s", "second", "b_util.go", 1)

	list.Sort(NewPatternBasedFileOrder("*_core*", "*_util*"))

	var names []string
	for i, rt := range list.tests {
		names = append(names, rt.details.TestName)
		assert.Equal(t, i, rt.details.TestIndex)
	}
	require.Equal(t, []string{"first", "second", "third"}, names)
}

func TestSortedListRunsInSortedOrder(t *testing.T) {
	list := NewTestList()
	list.AddFunc("s", "zeta", func(tr *TestResults) error { return nil })
	list.AddFunc("s", "alpha", func(tr *TestResults) error { return nil })
	list.Sort(byName{})

	reporter := &recordingReporter{}
	_, err := list.Run(reporter, nil, 1, false)
	require.NoError(t, err)

	begins := reporter.eventsOfKind("begin")
	require.Len(t, begins, 2)
	assert.Equal(t, "s.alpha", begins[0].name)
	assert.Equal(t, "s.zeta", begins[1].name)
}

type byName struct{}

func (byName) Less(a, b *TestDetails) bool { return a.TestName < b.TestName }
