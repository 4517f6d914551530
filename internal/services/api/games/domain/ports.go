package domain

import "context"

// ServicePort is the read contract of the games API
type ServicePort interface {
	List(ctx context.Context, in ListInput) ([]Game, int, error)
	Summary(ctx context.Context, in SummaryInput) (Summary, error)
	Runs(ctx context.Context, in RunsInput) ([]Run, error)
	Run(ctx context.Context, id string) (Run, error)
}
