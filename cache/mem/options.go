package mem

import (
	"time"

	"github.com/c2fo/docstore/options"
)

const (
	optionNameMaxEntries = "maxEntries"
	optionNameClock      = "clock"
)

// WithMaxEntries limits the number of entries. Zero, the default, means unlimited.
func WithMaxEntries(n int) options.NewClientOption[Cache] {
	return &maxEntriesOpt{n: n}
}

type maxEntriesOpt struct {
	n int
}

func (o *maxEntriesOpt) Apply(c *Cache) {
	c.maxEntries = o.n
}

func (o *maxEntriesOpt) NewClientOptionName() string {
	return optionNameMaxEntries
}

// WithClock replaces time.Now, which orders entries for eviction.
func WithClock(now func() time.Time) options.NewClientOption[Cache] {
	return &clockOpt{now: now}
}

type clockOpt struct {
	now func() time.Time
}

func (o *clockOpt) Apply(c *Cache) {
	if o.now != nil {
		c.now = o.now
	}
}

func (o *clockOpt) NewClientOptionName() string {
	return optionNameClock
}
