package module

import (
	"io"
	"runtime"

	"pgnframe/internal/adapters/ingest/pgnfile"
	"pgnframe/internal/platform/config"
	"pgnframe/internal/services/games/domain"
)

// Options holds configuration settings for the games module
type Options struct {
	Workers     int
	BatchSize   int
	Show        int
	Sinks       []string
	ParquetPath string
	Encoding    string
	DryRun      bool

	// Out receives the preview table, not read from config
	Out io.Writer
}

// FromConfig extracts Options from CORE_GAMES_* keys
func FromConfig(cfg config.Conf) Options {
	gc := cfg.Prefix("CORE_GAMES_")
	return Options{
		Workers:     gc.MayInt("WORKERS", runtime.GOMAXPROCS(0)),
		BatchSize:   gc.MayInt("BATCH_SIZE", 500),
		Show:        gc.MayInt("SHOW", 5),
		Sinks:       gc.MayCSV("SINKS", nil),
		ParquetPath: gc.MayString("PARQUET_PATH", ""),
		Encoding:    gc.MayEnum("ENCODING", pgnfile.EncodingUTF8, pgnfile.Encodings...),
		DryRun:      gc.MayBool("DRY_RUN", false),
	}
}

// merge lays non zero overrides over o
func (o Options) merge(ov Options) Options {
	if ov.Workers != 0 {
		o.Workers = ov.Workers
	}
	if ov.BatchSize != 0 {
		o.BatchSize = ov.BatchSize
	}
	if ov.Show != 0 {
		o.Show = ov.Show
	}
	if len(ov.Sinks) > 0 {
		o.Sinks = ov.Sinks
	}
	if ov.ParquetPath != "" {
		o.ParquetPath = ov.ParquetPath
	}
	if ov.Encoding != "" {
		o.Encoding = ov.Encoding
	}
	if ov.Out != nil {
		o.Out = ov.Out
	}
	o.DryRun = o.DryRun || ov.DryRun
	return o
}

var knownSinks = func() map[string]bool {
	m := map[string]bool{}
	for _, s := range domain.Sinks {
		m[s] = true
	}
	return m
}()
