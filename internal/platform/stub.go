package platform

import "context"

// StubPlatform is a no-op Platform. It is used when vendor tools are
// skipped (--fast) and in tests.
type StubPlatform struct{}

// Name returns the platform identifier.
func (p *StubPlatform) Name() string { return "stub" }

// GPUDetails returns no details.
func (p *StubPlatform) GPUDetails(context.Context) ([]GPUDetail, error) {
	return nil, nil
}
