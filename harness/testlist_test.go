package harness

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAssignsSequentialIndexes(t *testing.T) {
	list := NewTestList()
	list.Add(toggleTest{enabled: true}, "suite", "first", "a.go", 10)
	list.Add(toggleTest{enabled: true}, "suite", "second", "b.go", 20)
	list.Add(toggleTest{enabled: true}, "suite", "third", "c.go", 30)

	require.Equal(t, 3, list.Count())
	for i, rt := range list.tests {
		assert.Equal(t, i, rt.details.TestIndex)
	}
	assert.Equal(t, "suite", list.tests[0].details.SuiteName)
	assert.Equal(t, "second", list.tests[1].details.TestName)
	assert.Equal(t, "b.go", list.tests[1].details.FileName)
	assert.Equal(t, 20, list.tests[1].details.LineNumber)
}

func TestAddFuncCapturesCallerLocation(t *testing.T) {
	list := NewTestList()
	list.AddFunc("suite", "located", func(tr *TestResults) error { return nil })

	d := list.tests[0].details
	assert.True(t, strings.HasSuffix(d.FileName, "testlist_test.go"),
		"expected registration file, got %s", d.FileName)
	assert.Greater(t, d.LineNumber, 0)
}

func TestReassignIndexesMatchesStorageOrder(t *testing.T) {
	list := NewTestList()
	list.Add(toggleTest{enabled: true}, "suite", "first", "a.go", 1)
	list.Add(toggleTest{enabled: true}, "suite", "second", "b.go", 2)

	// Simulate an external reordering pass.
	list.tests[0], list.tests[1] = list.tests[1], list.tests[0]
	list.ReassignIndexes()

	assert.Equal(t, 0, list.tests[0].details.TestIndex)
	assert.Equal(t, "second", list.tests[0].details.TestName)
	assert.Equal(t, 1, list.tests[1].details.TestIndex)
	assert.Equal(t, "first", list.tests[1].details.TestName)
}

func TestDefaultListIsStable(t *testing.T) {
	assert.Same(t, DefaultList(), DefaultList())
}

func TestFullNameJoinsSuiteAndTest(t *testing.T) {
	d := TestDetails{SuiteName: "suite", TestName: "name"}
	assert.Equal(t, "suite.name", d.FullName())
}
