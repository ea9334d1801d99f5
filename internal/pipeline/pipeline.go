package pipeline

import (
	"context"

	"github.com/MrEthical07/goAuthClient/internal/request"
)

// Stage is one named transform over a request descriptor.
type Stage struct {
	Name  string
	Apply func(ctx context.Context, d *request.Descriptor) error
}

// Chain executes request stages in order.
type Chain struct {
	stages []Stage
}

// NewChain creates a Chain over the given stages.
func NewChain(stages ...Stage) *Chain {
	return &Chain{stages: stages}
}

// Append adds stages to the end of the chain.
func (c *Chain) Append(stages ...Stage) {
	c.stages = append(c.stages, stages...)
}

// Run applies every stage to d in order. The first failing stage
// short-circuits the remainder and its error is returned unchanged.
func (c *Chain) Run(ctx context.Context, d *request.Descriptor) error {
	if c == nil {
		return nil
	}
	for _, s := range c.stages {
		if err := s.Apply(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

// ResponseStage is one named transform over a successful response.
type ResponseStage struct {
	Name  string
	Apply func(ctx context.Context, d *request.Descriptor, resp *request.Response) error
}

// ResponseChain executes response stages in order.
type ResponseChain struct {
	stages []ResponseStage
}

// NewResponseChain creates a ResponseChain over the given stages.
func NewResponseChain(stages ...ResponseStage) *ResponseChain {
	return &ResponseChain{stages: stages}
}

// Append adds stages to the end of the chain.
func (c *ResponseChain) Append(stages ...ResponseStage) {
	c.stages = append(c.stages, stages...)
}

// Run applies every response stage in order, short-circuiting on failure.
func (c *ResponseChain) Run(ctx context.Context, d *request.Descriptor, resp *request.Response) error {
	if c == nil {
		return nil
	}
	for _, s := range c.stages {
		if err := s.Apply(ctx, d, resp); err != nil {
			return err
		}
	}
	return nil
}
