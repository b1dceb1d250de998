package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Step is one unit of work inside an operation's call plan.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// Plan is an operation's step graph as data: an ordered list of stages.
// Stages execute strictly in order; steps within a stage are independent of
// each other and run concurrently. The first failing step aborts all
// remaining stages, so a sequentially dependent call is only issued after
// every step of the previous stage resolved successfully.
type Plan [][]Step

// Execute runs the plan. Errors carry the failing step's name.
func (p Plan) Execute(ctx context.Context) error {
	for _, stage := range p {
		if len(stage) == 1 {
			step := stage[0]
			if err := step.Run(ctx); err != nil {
				return fmt.Errorf("%s: %w", step.Name, err)
			}
			continue
		}

		g, gctx := errgroup.WithContext(ctx)
		for _, step := range stage {
			g.Go(func() error {
				if err := step.Run(gctx); err != nil {
					return fmt.Errorf("%s: %w", step.Name, err)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}
	return nil
}
