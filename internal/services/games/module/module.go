// Package module wires the games ingest service
package module

import (
	"fmt"

	"pgnframe/internal/modkit"
	"pgnframe/internal/modkit/httpkit"
	pstrings "pgnframe/internal/platform/strings"
	"pgnframe/internal/services/games/domain"
	"pgnframe/internal/services/games/repo"
	"pgnframe/internal/services/games/service"
)

// Ports exposed by the games module
type Ports struct {
	Ingest domain.IngestPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	opts  Options
	ports Ports
}

// New constructs the games module
// modkit.WithPorts(domain.SourceFactory) replaces the file reader
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("games"),
	}, opts...)...)

	cfg := FromConfig(deps.Cfg).merge(overrides)
	sinks, err := Sinks(deps, cfg)
	if err != nil {
		panic(err)
	}

	var open domain.SourceFactory
	if f, ok := b.Ports.(domain.SourceFactory); ok {
		open = f
	}

	svc := service.New(open, sinks, service.Config{
		Workers:  cfg.Workers,
		Show:     cfg.Show,
		DryRun:   cfg.DryRun,
		Encoding: cfg.Encoding,
		Out:      cfg.Out,
	})

	return &Module{deps: deps, opts: cfg, ports: Ports{Ingest: svc}}
}

// Sinks builds the writers named in opt.Sinks
// With no names every configured backend is used, parquet only when a path is set
// A dry run only checks the names and builds no writers
func Sinks(deps modkit.Deps, opt Options) ([]domain.WriterPort, error) {
	names := pstrings.Dedupe(opt.Sinks)
	if opt.DryRun {
		for _, name := range names {
			if !knownSinks[name] {
				return nil, fmt.Errorf("games module: unknown sink %q", name)
			}
		}
		return nil, nil
	}
	if len(names) == 0 {
		names = defaultSinks(deps, opt)
	}

	out := make([]domain.WriterPort, 0, len(names))
	for _, name := range names {
		if !knownSinks[name] {
			return nil, fmt.Errorf("games module: unknown sink %q", name)
		}
		switch name {
		case domain.SinkPG:
			if deps.PG == nil {
				return nil, fmt.Errorf("games module: sink pg requested but postgres is disabled")
			}
			out = append(out, service.NewPGSink(deps.PG, opt.BatchSize))
		case domain.SinkSQLite:
			if deps.Lite == nil {
				return nil, fmt.Errorf("games module: sink sqlite requested but sqlite is disabled")
			}
			out = append(out, service.NewSQLiteSink(deps.Lite, opt.BatchSize))
		case domain.SinkCH:
			if deps.CH == nil {
				return nil, fmt.Errorf("games module: sink ch requested but clickhouse is disabled")
			}
			out = append(out, service.NewCHSink(repo.NewCH(deps.CH), opt.BatchSize))
		case domain.SinkParquet:
			if opt.ParquetPath == "" {
				return nil, fmt.Errorf("games module: sink parquet requested without a parquet path")
			}
			out = append(out, service.NewParquetSink(opt.ParquetPath))
		}
	}
	return out, nil
}

func defaultSinks(deps modkit.Deps, opt Options) []string {
	var out []string
	if deps.PG != nil {
		out = append(out, domain.SinkPG)
	}
	if deps.CH != nil {
		out = append(out, domain.SinkCH)
	}
	if deps.Lite != nil {
		out = append(out, domain.SinkSQLite)
	}
	if opt.ParquetPath != "" {
		out = append(out, domain.SinkParquet)
	}
	return out
}

// Options returns the merged options the module runs with
func (m *Module) Options() Options { return m.opts }

// Name satisfies modkit.Module
func (m *Module) Name() string { return "games" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module, ingest has no routes
func (m *Module) MountRoutes(_ httpkit.Router) {}
