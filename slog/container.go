// Package slog provides logging decorators for docpix interfaces using the
// standard library's structured logger.
package slog

import (
	"log/slog"
	"time"

	"github.com/fkozlowski/docpix"
)

// Ensure Container implements docpix.Container.
var _ docpix.Container = (*Container)(nil)

// Container wraps a docpix.Container with debug logging of resource access.
type Container struct {
	next   docpix.Container
	logger *slog.Logger
}

// NewContainer creates a new logging Container.
func NewContainer(next docpix.Container, logger *slog.Logger) *Container {
	return &Container{next: next, logger: logger}
}

// Candidates logs the candidate count and delegates.
func (c *Container) Candidates() []docpix.Candidate {
	candidates := c.next.Candidates()
	c.logger.Debug("enumerated image candidates", "count", len(candidates))
	return candidates
}

// Read logs the resource id, byte count and duration, and delegates.
func (c *Container) Read(id string) ([]byte, error) {
	begin := time.Now()
	data, err := c.next.Read(id)
	if err != nil {
		c.logger.Debug("resource read failed",
			"id", id,
			"error", err,
			"duration", time.Since(begin),
		)
		return nil, err
	}
	c.logger.Debug("resource read",
		"id", id,
		"bytes", len(data),
		"duration", time.Since(begin),
	)
	return data, nil
}

// Close delegates to the wrapped container.
func (c *Container) Close() error {
	return c.next.Close()
}
