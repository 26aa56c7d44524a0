package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmoorman/unitrun/harness"
)

func TestParseDefaults(t *testing.T) {
	c, err := Parse(strings.NewReader("{}"))
	require.NoError(t, err)
	assert.Equal(t, 1, c.Threads)
	assert.False(t, c.Shuffle)
	assert.Empty(t, c.Run)

	filter, err := c.Filter()
	require.NoError(t, err)
	assert.Nil(t, filter)
}

func TestParseFullConfig(t *testing.T) {
	c, err := Parse(strings.NewReader(`
threads: 8
shuffle: true
run:
  - "^core"
skip:
  - "slow$"
order:
  - "*_core*"
progress: true
xmlReport: results.xml
jsonReport: results.jsonl
`))
	require.NoError(t, err)
	assert.Equal(t, 8, c.Threads)
	assert.True(t, c.Shuffle)
	assert.Equal(t, []string{"^core"}, c.Run)
	assert.Equal(t, []string{"slow$"}, c.Skip)
	assert.Equal(t, "results.xml", c.XMLReport)

	filter, err := c.Filter()
	require.NoError(t, err)
	require.NotNil(t, filter)
	assert.True(t, filter.Include(&harness.TestDetails{SuiteName: "core", TestName: "fast"}))
	assert.False(t, filter.Include(&harness.TestDetails{SuiteName: "core", TestName: "veryslow"}))
	assert.False(t, filter.Include(&harness.TestDetails{SuiteName: "other", TestName: "fast"}))
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse(strings.NewReader("workers: 4\n"))
	assert.Error(t, err)
}

func TestParseRejectsBadPattern(t *testing.T) {
	_, err := Parse(strings.NewReader("run: [\"(unclosed\"]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad run pattern")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot open configuration file")
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yml")
	require.NoError(t, os.WriteFile(path, []byte("threads: 3\n"), 0600))
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Threads)
}

func TestExecuteRunsListAndWritesReports(t *testing.T) {
	list := harness.NewTestList()
	list.AddFunc("core", "passing", func(tr *harness.TestResults) error {
		tr.Check(true)
		return nil
	})
	list.AddFunc("core", "failing", func(tr *harness.TestResults) error {
		tr.Check(false)
		return nil
	})

	dir := t.TempDir()
	c := &Config{
		Threads:    2,
		XMLReport:  filepath.Join(dir, "results.xml"),
		JSONReport: filepath.Join(dir, "results.jsonl"),
	}
	var console bytes.Buffer

	ok, err := c.Execute(list, &console)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Contains(t, console.String(), "FAILURE: 1 out of 2 tests failed")

	xmlData, err := os.ReadFile(c.XMLReport)
	require.NoError(t, err)
	assert.Contains(t, string(xmlData), "<unittest-results")

	jsonData, err := os.ReadFile(c.JSONReport)
	require.NoError(t, err)
	assert.Contains(t, string(jsonData), `"event":"summary"`)
}

func TestExecuteAppliesFilter(t *testing.T) {
	list := harness.NewTestList()
	list.AddFunc("core", "kept", func(tr *harness.TestResults) error { return nil })
	list.AddFunc("core", "skipped", func(tr *harness.TestResults) error {
		tr.Check(false)
		return nil
	})

	c := &Config{Threads: 1, Skip: []string{`\.skipped$`}}
	var console bytes.Buffer

	ok, err := c.Execute(list, &console)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, console.String(), "Note: One test was excluded!")
}
