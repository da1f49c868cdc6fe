package dsl

import (
	"context"

	serde "github.com/opikgo/serde"
)

// collector accumulates child issues rebased under a path segment and decides
// when composite schemas should stop.
type collector struct {
	failFast bool
	iss      serde.Issues
}

func newCollector(ctx context.Context) *collector {
	return &collector{failFast: serde.IsFailFast(ctx)}
}

// add records err under seg and reports whether the caller should stop.
func (c *collector) add(err error, seg serde.Segment) bool {
	if err == nil {
		return false
	}
	c.iss = append(c.iss, serde.ToIssues(serde.PrependPath(err, seg))...)
	return c.failFast
}

// issue records a ready-made issue and reports whether the caller should stop.
func (c *collector) issue(it serde.Issue) bool {
	c.iss = append(c.iss, it)
	return c.failFast
}

func (c *collector) err() error {
	if len(c.iss) == 0 {
		return nil
	}
	return c.iss
}
