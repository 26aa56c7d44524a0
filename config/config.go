// Package config loads a run configuration from a YAML file and turns it
// into the filter, order, and reporter setup for one test run.
package config

import (
	"io"
	"log"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/rmoorman/unitrun/harness"
	"github.com/rmoorman/unitrun/logging"
	"github.com/rmoorman/unitrun/reporters"
)

// Config describes one test run. Zero values mean: single worker, no
// shuffle, include everything, console summary only.
type Config struct {
	Threads       int      `yaml:"threads"`
	Shuffle       bool     `yaml:"shuffle"`
	Run           []string `yaml:"run"`
	Skip          []string `yaml:"skip"`
	OrderPatterns []string `yaml:"order"`
	Progress      bool     `yaml:"progress"`
	XMLReport     string   `yaml:"xmlReport"`
	JSONReport    string   `yaml:"jsonReport"`
	Debug         bool     `yaml:"debug"`
}

// Load reads and validates a run configuration file.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open configuration file %s", path)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a run configuration from a stream. Unknown fields are
// rejected.
func Parse(r io.Reader) (*Config, error) {
	c := &Config{Threads: 1}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	if _, err := c.Filter(); err != nil {
		return nil, err
	}
	return c, nil
}

// Filter builds the test filter described by the Run and Skip patterns, or
// nil when neither is set.
func (c *Config) Filter() (harness.Filter, error) {
	if len(c.Run) == 0 && len(c.Skip) == 0 {
		return nil, nil
	}
	var filters harness.RegexFilters
	for _, p := range c.Run {
		if err := filters.MustMatch.Set(p); err != nil {
			return nil, errors.Wrapf(err, "bad run pattern %q", p)
		}
	}
	for _, p := range c.Skip {
		if err := filters.MustNotMatch.Set(p); err != nil {
			return nil, errors.Wrapf(err, "bad skip pattern %q", p)
		}
	}
	return filters, nil
}

// Execute runs the given test list as the configuration describes and
// returns whether all tests passed.
func (c *Config) Execute(list *harness.TestList, consoleOut io.Writer) (bool, error) {
	filter, err := c.Filter()
	if err != nil {
		return false, err
	}

	if len(c.OrderPatterns) > 0 {
		list.Sort(harness.NewPatternBasedFileOrder(c.OrderPatterns...))
	}

	if c.Debug {
		list.SetDebugLogger(log.New(os.Stderr, "", log.LstdFlags))
	} else {
		list.SetDebugLogger(logging.NullLogger())
	}

	if consoleOut == nil {
		consoleOut = os.Stdout
	}
	all := []harness.Reporter{reporters.NewSimpleReporter(consoleOut, c.Progress)}
	var closers []io.Closer
	defer func() {
		for _, cl := range closers {
			cl.Close()
		}
	}()
	if c.XMLReport != "" {
		f, err := os.Create(c.XMLReport)
		if err != nil {
			return false, errors.Wrapf(err, "cannot create XML report %s", c.XMLReport)
		}
		closers = append(closers, f)
		all = append(all, reporters.NewXMLReporter(f))
	}
	if c.JSONReport != "" {
		f, err := os.Create(c.JSONReport)
		if err != nil {
			return false, errors.Wrapf(err, "cannot create JSON report %s", c.JSONReport)
		}
		closers = append(closers, f)
		all = append(all, reporters.NewJSONReporter(f))
	}

	return list.Run(reporters.NewMultiReporter(all...), filter, c.Threads, c.Shuffle)
}
