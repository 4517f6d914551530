package service

import (
	"context"

	"pgnframe/internal/adapters/export/columnar"
	"pgnframe/internal/core/frame"
	"pgnframe/internal/modkit/repokit"
	perr "pgnframe/internal/platform/errors"
	"pgnframe/internal/services/games/domain"
	"pgnframe/internal/services/games/repo"
)

// SQLSink writes a run and its records in one transaction
type SQLSink struct {
	name   string
	db     repokit.TxRunner
	binder repokit.Binder[repo.Storage]
	batch  int
	wrap   func(error, string) error
}

// NewPGSink writes to postgres
func NewPGSink(db repokit.TxRunner, batch int) *SQLSink {
	return newSQLSink(domain.SinkPG, db, repo.NewPG(), batch, perr.FromPostgres)
}

// NewSQLiteSink writes to the embedded sqlite file
func NewSQLiteSink(db repokit.TxRunner, batch int) *SQLSink {
	return newSQLSink(domain.SinkSQLite, db, repo.NewSQLite(), batch, perr.FromSQLite)
}

func newSQLSink(name string, db repokit.TxRunner, b repokit.Binder[repo.Storage], batch int, wrap func(error, string) error) *SQLSink {
	if db == nil {
		panic("games." + name + " sink requires a non nil TxRunner")
	}
	return &SQLSink{name: name, db: db, binder: b, batch: clampBatch(batch), wrap: wrap}
}

// Name implements domain.WriterPort
func (s *SQLSink) Name() string { return s.name }

// Write implements domain.WriterPort
func (s *SQLSink) Write(ctx context.Context, run domain.Run, f *frame.Frame) (int, error) {
	var n int
	err := repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		n = 0
		r := repokit.MustBind(s.binder, q)
		if err := r.EnsureSchema(ctx); err != nil {
			return err
		}
		if err := r.InsertRun(ctx, run); err != nil {
			return err
		}
		off := 0
		for _, b := range f.Batches(s.batch) {
			k, err := r.InsertRecords(ctx, run.ID, off, b)
			if err != nil {
				return err
			}
			n += k
			off += len(b)
		}
		return nil
	})
	if err != nil {
		return 0, s.wrap(err, s.name+" write")
	}
	return n, nil
}

// CHSink writes records to clickhouse, one native batch per chunk
type CHSink struct {
	w     *repo.CH
	batch int
}

// NewCHSink wraps a clickhouse writer
func NewCHSink(w *repo.CH, batch int) *CHSink {
	return &CHSink{w: w, batch: clampBatch(batch)}
}

// Name implements domain.WriterPort
func (s *CHSink) Name() string { return domain.SinkCH }

// Write implements domain.WriterPort
func (s *CHSink) Write(ctx context.Context, run domain.Run, f *frame.Frame) (int, error) {
	if err := s.w.EnsureSchema(ctx); err != nil {
		return 0, perr.Wrap(err, perr.ErrorCodeDB, "ch schema")
	}
	n, off := 0, 0
	for _, b := range f.Batches(s.batch) {
		k, err := s.w.InsertRecords(ctx, run, off, b)
		if err != nil {
			return n, perr.Wrap(err, perr.ErrorCodeDB, "ch insert")
		}
		n += k
		off += len(b)
	}
	return n, nil
}

// ParquetSink writes the frame to one parquet file
type ParquetSink struct {
	path string
}

// NewParquetSink writes to path
func NewParquetSink(path string) *ParquetSink {
	return &ParquetSink{path: path}
}

// Name implements domain.WriterPort
func (s *ParquetSink) Name() string { return domain.SinkParquet }

// Write implements domain.WriterPort
func (s *ParquetSink) Write(ctx context.Context, _ domain.Run, f *frame.Frame) (int, error) {
	if err := columnar.Write(ctx, s.path, f); err != nil {
		return 0, err
	}
	return f.Len(), nil
}

func clampBatch(n int) int {
	switch {
	case n <= 0:
		return 500
	case n > repo.MaxBatch:
		return repo.MaxBatch
	default:
		return n
	}
}
