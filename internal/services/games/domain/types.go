// Package domain defines the types and ports of the games ingest service
package domain

import (
	"time"

	"pgnframe/internal/core/frame"
)

// Sink names accepted in the sink list
const (
	SinkPG      = "pg"
	SinkCH      = "ch"
	SinkSQLite  = "sqlite"
	SinkParquet = "parquet"
)

// Sinks lists every known sink in write order
var Sinks = []string{SinkPG, SinkCH, SinkSQLite, SinkParquet}

// Input names one corpus to ingest
type Input struct {
	Source   string // path or http(s) url, .gz and .zst are decompressed
	Encoding string // utf-8 when empty
	DryRun   bool   // parse and show but write nothing
}

// Run is the stored description of one ingest
type Run struct {
	ID          string    `json:"id"`
	Source      string    `json:"source"`
	Compression string    `json:"compression"`
	Encoding    string    `json:"encoding"`
	Bytes       int64     `json:"bytes"`
	Blocks      int       `json:"blocks"`
	Kept        int       `json:"kept"`
	Dropped     int       `json:"dropped"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
}

// SinkResult reports what one sink wrote
type SinkResult struct {
	Name    string        `json:"name"`
	Rows    int           `json:"rows"`
	Elapsed time.Duration `json:"elapsed"`
}

// Report is the outcome of a run
type Report struct {
	Run     Run           `json:"run"`
	Records int           `json:"records"`
	Summary frame.Summary `json:"summary"`
	Sinks   []SinkResult  `json:"sinks,omitempty"`
	DryRun  bool          `json:"dry_run"`
	Elapsed time.Duration `json:"elapsed"`

	// Frame holds the kept records
	Frame *frame.Frame `json:"-"`
}
