// Package config provides the ambient configuration layer for the
// loader's illustrative CLI driver, following the teacher's
// IndexerConfig shape (a flat, validated struct) generalized into the
// functional-options idiom used to build it.
package config

import "errors"

// Option applies a functional-option mutation to a LoaderConfig.
type Option func(*LoaderConfig)

// LoaderConfig mirrors internal/indexer.IndexerConfig's flat shape:
// everything cmd/gocsrbench needs to drive a single graph.Load call.
type LoaderConfig struct {
	InputPath  string
	Weighted   bool
	Checked    bool
	Partitions int
	MaxThreads int
	Separator  byte
}

// New builds a LoaderConfig by applying opts over the zero value.
func New(opts ...Option) LoaderConfig {
	var c LoaderConfig
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func WithInputPath(path string) Option {
	return func(c *LoaderConfig) { c.InputPath = path }
}

func WithWeighted(weighted bool) Option {
	return func(c *LoaderConfig) { c.Weighted = weighted }
}

func WithChecked(checked bool) Option {
	return func(c *LoaderConfig) { c.Checked = checked }
}

func WithPartitions(p int) Option {
	return func(c *LoaderConfig) { c.Partitions = p }
}

func WithMaxThreads(n int) Option {
	return func(c *LoaderConfig) { c.MaxThreads = n }
}

func WithSeparator(sep byte) Option {
	return func(c *LoaderConfig) { c.Separator = sep }
}

// Validate mirrors the inline sanity checks IndexerConfig.Run performs
// before touching the filesystem.
func (c LoaderConfig) Validate() error {
	if c.InputPath == "" {
		return errors.New("config: input path is required")
	}
	if c.Partitions < 0 {
		return errors.New("config: partitions must be >= 0")
	}
	if c.MaxThreads < 0 {
		return errors.New("config: max threads must be >= 0")
	}
	return nil
}
