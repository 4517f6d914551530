// Package columnar writes a game frame to a parquet file
package columnar

import (
	"context"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"pgnframe/internal/core/frame"
	"pgnframe/internal/core/pgn"
	perr "pgnframe/internal/platform/errors"
	"pgnframe/internal/platform/logger"
)

// Row is the on disk layout, one column per frame column in frame order
// ratings are optional to match the nullable schema, the -999 sentinel is kept as a value
type Row struct {
	BlackRating *int32 `parquet:"black_rating,optional"`
	WhiteRating *int32 `parquet:"white_rating,optional"`
	TimeControl string `parquet:"time_control"`
	Result      int32  `parquet:"result"`
}

// RowGroupSize is the number of rows flushed per row group
const RowGroupSize = 64 * 1024

func toRow(r pgn.Record) Row {
	b, w := int32(r.BlackRating), int32(r.WhiteRating)
	return Row{BlackRating: &b, WhiteRating: &w, TimeControl: r.TimeControl, Result: int32(r.Result)}
}

// Record converts a stored row back, a null rating reads as the sentinel
func (r Row) Record() pgn.Record {
	out := pgn.Record{
		BlackRating: pgn.NoValue,
		WhiteRating: pgn.NoValue,
		TimeControl: r.TimeControl,
		Result:      int(r.Result),
	}
	if r.BlackRating != nil {
		out.BlackRating = int(*r.BlackRating)
	}
	if r.WhiteRating != nil {
		out.WhiteRating = int(*r.WhiteRating)
	}
	return out
}

// Write stores f at path, the file appears only once it is complete
func Write(ctx context.Context, path string, f *frame.Frame) (err error) {
	if path == "" {
		return perr.WithField(perr.InvalidArgf("no parquet path configured"), "parquet_path")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeIO, "create %s", dir)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "create temp for %s", path)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	w := parquet.NewGenericWriter[Row](tmp, parquet.Compression(&parquet.Zstd))
	buf := make([]Row, 0, RowGroupSize)
	for _, batch := range f.Batches(RowGroupSize) {
		if err := ctx.Err(); err != nil {
			return err
		}
		buf = buf[:0]
		for _, r := range batch {
			buf = append(buf, toRow(r))
		}
		if _, err := w.Write(buf); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeIO, "write rows to %s", path)
		}
		if err := w.Flush(); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeIO, "flush row group to %s", path)
		}
	}
	if err := w.Close(); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "close parquet writer for %s", path)
	}
	if err := tmp.Close(); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "close %s", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "rename into %s", path)
	}

	logger.C(ctx).Info().Str("path", path).Int("rows", f.Len()).Msg("columnar: parquet written")
	return nil
}

// Read loads a file written by Write
func Read(path string) ([]pgn.Record, error) {
	rows, err := parquet.ReadFile[Row](path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeIO, "read %s", path)
	}
	out := make([]pgn.Record, len(rows))
	for i, r := range rows {
		out[i] = r.Record()
	}
	return out, nil
}
