// Package mock provides function-field test doubles for docpix interfaces.
package mock

import "github.com/fkozlowski/docpix"

// Ensure Container implements docpix.Container.
var _ docpix.Container = (*Container)(nil)

// Container is a mock implementation of docpix.Container.
type Container struct {
	CandidatesFn func() []docpix.Candidate
	ReadFn       func(id string) ([]byte, error)
	CloseFn      func() error
}

// Candidates delegates to CandidatesFn.
func (c *Container) Candidates() []docpix.Candidate {
	return c.CandidatesFn()
}

// Read delegates to ReadFn.
func (c *Container) Read(id string) ([]byte, error) {
	return c.ReadFn(id)
}

// Close delegates to CloseFn, returning nil when unset.
func (c *Container) Close() error {
	if c.CloseFn == nil {
		return nil
	}
	return c.CloseFn()
}
