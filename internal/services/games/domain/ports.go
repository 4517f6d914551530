package domain

import (
	"context"

	"pgnframe/internal/adapters/ingest/pgnfile"
	"pgnframe/internal/core/frame"
)

// IngestPort runs one ingest end to end
type IngestPort interface {
	Run(ctx context.Context, in Input) (Report, error)
}

// WriterPort persists the kept records of one run
type WriterPort interface {
	// Name is the sink name used in reports and logs
	Name() string
	// Write stores run and the rows of f, returning the rows written
	Write(ctx context.Context, run Run, f *frame.Frame) (int, error)
}

// Source loads the game blocks of one corpus
type Source interface {
	Blocks(ctx context.Context) ([]string, error)
	Stats() pgnfile.Stats
}

// SourceFactory opens a Source for an Input
type SourceFactory func(in Input) (Source, error)
