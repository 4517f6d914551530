package frame

import (
	"fmt"
	"math"

	"pgnframe/internal/core/pgn"
)

// Frame is an immutable, ordered set of game records
type Frame struct {
	schema Schema
	rows   []pgn.Record
}

// New builds a frame from records in the given order
// The records are copied so later changes to the slice do not leak in
func New(schema Schema, records []pgn.Record) (*Frame, error) {
	if err := schema.check(); err != nil {
		return nil, err
	}
	rows := make([]pgn.Record, len(records))
	copy(rows, records)
	return &Frame{schema: schema, rows: rows}, nil
}

// MustNew is New that panics on a bad schema
func MustNew(schema Schema, records []pgn.Record) *Frame {
	f, err := New(schema, records)
	if err != nil {
		panic(err)
	}
	return f
}

// Schema returns the frame schema
func (f *Frame) Schema() Schema { return f.schema }

// Len returns the row count
func (f *Frame) Len() int { return len(f.rows) }

// Rows returns a copy of all rows
func (f *Frame) Rows() []pgn.Record {
	out := make([]pgn.Record, len(f.rows))
	copy(out, f.rows)
	return out
}

// Head returns up to n leading rows
func (f *Frame) Head(n int) []pgn.Record {
	if n < 0 {
		n = 0
	}
	if n > len(f.rows) {
		n = len(f.rows)
	}
	out := make([]pgn.Record, n)
	copy(out, f.rows[:n])
	return out
}

// Column returns the values of one column in row order
func (f *Frame) Column(name string) ([]any, error) {
	idx := f.schema.Index(name)
	if idx < 0 {
		return nil, fmt.Errorf("frame: no column %q", name)
	}
	out := make([]any, len(f.rows))
	for i, r := range f.rows {
		out[i] = r.Tuple()[idx]
	}
	return out, nil
}

// Batches splits the rows into consecutive chunks of at most size rows
func (f *Frame) Batches(size int) [][]pgn.Record {
	if size <= 0 {
		size = len(f.rows)
	}
	var out [][]pgn.Record
	for start := 0; start < len(f.rows); start += size {
		end := min(start+size, len(f.rows))
		out = append(out, f.rows[start:end:end])
	}
	return out
}

// RatingStats summarises one rating column, sentinel values are left out
type RatingStats struct {
	Count int     `json:"count"`
	Min   int     `json:"min"`
	Max   int     `json:"max"`
	Mean  float64 `json:"mean"`
}

// Summary is a small aggregate over a frame
type Summary struct {
	Rows     int            `json:"rows"`
	ByResult map[string]int `json:"by_result"`
	White    RatingStats    `json:"white"`
	Black    RatingStats    `json:"black"`
}

// Summary aggregates results and ratings
func (f *Frame) Summary() Summary {
	s := Summary{Rows: len(f.rows), ByResult: map[string]int{}}
	var wb, bb ratingAcc
	for _, r := range f.rows {
		s.ByResult[pgn.ResultLabel(r.Result)]++
		wb.add(r.WhiteRating)
		bb.add(r.BlackRating)
	}
	s.White = wb.stats()
	s.Black = bb.stats()
	return s
}

type ratingAcc struct {
	n        int
	min, max int
	sum      int64
}

func (a *ratingAcc) add(v int) {
	if v == pgn.NoValue {
		return
	}
	if a.n == 0 || v < a.min {
		a.min = v
	}
	if a.n == 0 || v > a.max {
		a.max = v
	}
	a.n++
	a.sum += int64(v)
}

func (a ratingAcc) stats() RatingStats {
	if a.n == 0 {
		return RatingStats{}
	}
	mean := float64(a.sum) / float64(a.n)
	return RatingStats{
		Count: a.n,
		Min:   a.min,
		Max:   a.max,
		Mean:  math.Round(mean*100) / 100,
	}
}
