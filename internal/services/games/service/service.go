// Package service implements the games ingest pipeline
package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"pgnframe/internal/adapters/ingest/pgnfile"
	"pgnframe/internal/core/frame"
	"pgnframe/internal/core/pgn"
	"pgnframe/internal/platform/logger"
	"pgnframe/internal/services/games/domain"
)

// Config holds the tuning of the ingest service
type Config struct {
	Workers int  // parse goroutines; <=0 -> 1
	Show    int  // rows printed to Out after the frame is built; 0 = none
	DryRun  bool // skip every sink

	Encoding string // used when Input.Encoding is empty

	// Out receives the table, nil means nothing is printed
	Out io.Writer
}

// Service implements domain.IngestPort
type Service struct {
	Open  domain.SourceFactory
	Sinks []domain.WriterPort
	Cfg   Config

	now   func() time.Time
	newID func() string
}

// New constructs the ingest service
func New(open domain.SourceFactory, sinks []domain.WriterPort, cfg Config) *Service {
	if open == nil {
		open = FileSource
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Service{
		Open:  open,
		Sinks: sinks,
		Cfg:   cfg,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// FileSource opens a pgnfile reader for the input, picking the fetcher from the source
func FileSource(in domain.Input) (domain.Source, error) {
	rd, err := pgnfile.NewReader(in.Source, nil, pgnfile.Options{Encoding: in.Encoding})
	if err != nil {
		return nil, err
	}
	return rd, nil
}

// Run reads, parses, filters and stores one corpus
func (s *Service) Run(ctx context.Context, in domain.Input) (domain.Report, error) {
	start := s.now()
	id := s.newID()
	ctx = logger.WithRun(ctx, id)
	log := logger.C(ctx)
	if in.Encoding == "" {
		in.Encoding = s.Cfg.Encoding
	}

	src, err := s.Open(in)
	if err != nil {
		return domain.Report{}, err
	}
	blocks, err := src.Blocks(ctx)
	if err != nil {
		return domain.Report{}, err
	}

	records, err := parseAll(ctx, blocks, s.Cfg.Workers)
	if err != nil {
		return domain.Report{}, err
	}
	f, err := frame.New(frame.Games, pgn.Keep(records))
	if err != nil {
		return domain.Report{}, err
	}

	if s.Cfg.Show > 0 && s.Cfg.Out != nil {
		if err := f.Show(s.Cfg.Out, s.Cfg.Show); err != nil {
			log.Warn().Err(err).Msg("show failed")
		}
	}

	st := src.Stats()
	rep := domain.Report{
		Run: domain.Run{
			ID:          id,
			Source:      st.Source,
			Compression: string(st.Compression),
			Encoding:    st.Encoding,
			Bytes:       st.Bytes,
			Blocks:      len(blocks),
			Kept:        f.Len(),
			Dropped:     len(records) - f.Len(),
			StartedAt:   start.UTC(),
		},
		Records: len(records),
		Summary: f.Summary(),
		DryRun:  s.Cfg.DryRun || in.DryRun,
		Frame:   f,
	}
	log.Info().
		Str("file", st.Source).
		Int("blocks", len(blocks)).
		Int("records", f.Len()).
		Int("dropped", rep.Run.Dropped).
		Msg("games parsed")

	if rep.DryRun {
		log.Info().Msg("dry run, sinks skipped")
		rep.Run.FinishedAt = s.now().UTC()
		rep.Elapsed = s.now().Sub(start)
		return rep, nil
	}

	rep.Run.FinishedAt = s.now().UTC()
	for _, sink := range s.Sinks {
		t0 := s.now()
		n, err := sink.Write(ctx, rep.Run, f)
		if err != nil {
			return rep, fmt.Errorf("%s sink: %w", sink.Name(), err)
		}
		res := domain.SinkResult{Name: sink.Name(), Rows: n, Elapsed: s.now().Sub(t0)}
		rep.Sinks = append(rep.Sinks, res)
		log.Info().Str("sink", res.Name).Int("rows", n).Dur("elapsed", res.Elapsed).Msg("sink written")
	}

	rep.Elapsed = s.now().Sub(start)
	log.Info().Dur("elapsed", rep.Elapsed).Int("sinks", len(rep.Sinks)).Msg("ingest run complete")
	return rep, nil
}
