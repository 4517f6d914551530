// Command pgnframe-ingest parses a PGN export into a game frame and stores it
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"pgnframe/internal/adapters/ingest/pgnfile"
	"pgnframe/internal/modkit"
	"pgnframe/internal/modkit/module"
	"pgnframe/internal/platform/config"
	"pgnframe/internal/platform/logger"
	"pgnframe/internal/platform/store"
	pstrings "pgnframe/internal/platform/strings"

	gamesdom "pgnframe/internal/services/games/domain"
	gamesmod "pgnframe/internal/services/games/module"
)

func main() {
	var (
		in       = flag.String("in", "", "pgn file or http(s) url; .gz and .zst are decompressed")
		workers  = flag.Int("workers", 0, "parse goroutines (0 = CORE_GAMES_WORKERS or GOMAXPROCS)")
		show     = flag.Int("show", 0, "rows to print (0 = CORE_GAMES_SHOW)")
		sinks    = flag.String("sinks", "", "comma separated sinks: pg,ch,sqlite,parquet (empty = every configured backend)")
		parquet  = flag.String("parquet", "", "parquet output path")
		sqlite   = flag.String("sqlite", "", "sqlite database path, enables the sqlite backend")
		encoding = flag.String("encoding", "", "source encoding: "+strings.Join(pgnfile.Encodings, ", "))
		dryRun   = flag.Bool("dry-run", false, "parse and print but write nothing")
	)
	flag.Parse()

	if *in == "" {
		log.Fatal("-in is required")
	}
	if *encoding != "" && !slices.Contains(pgnfile.Encodings, strings.ToLower(*encoding)) {
		log.Fatalf("unsupported -encoding %q", *encoding)
	}

	// table goes to stdout, logs to stderr
	opt := logger.FromEnv()
	opt.Writer = os.Stderr
	opt.Component = "ingest"
	logger.Init(opt)
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := config.New()
	scfg := store.FromConfig(root)
	scfg.AppName = "pgnframe-ingest"
	if *sqlite != "" {
		scfg.Lite.Enabled, scfg.Lite.Path = true, *sqlite
	}
	// backends not named in -sinks stay closed, a dry run opens none
	names := pstrings.Dedupe(strings.Split(*sinks, ","))
	dry := *dryRun || gamesmod.FromConfig(root).DryRun
	switch {
	case dry:
		scfg.PG.Enabled, scfg.CH.Enabled, scfg.Lite.Enabled = false, false, false
	case len(names) > 0:
		scfg.PG.Enabled = scfg.PG.Enabled && slices.Contains(names, gamesdom.SinkPG)
		scfg.CH.Enabled = scfg.CH.Enabled && slices.Contains(names, gamesdom.SinkCH)
		scfg.Lite.Enabled = scfg.Lite.Enabled && slices.Contains(names, gamesdom.SinkSQLite)
	}

	st, err := store.Open(ctx, scfg, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	gm := gamesmod.New(modkit.FromStore(root, st), gamesmod.Options{
		Workers:     *workers,
		Show:        *show,
		Sinks:       names,
		ParquetPath: *parquet,
		Encoding:    strings.ToLower(*encoding),
		DryRun:      dry,
		Out:         os.Stdout,
	})
	module.Register(gm.Name(), gm.Ports())

	ingest := module.MustPortsOf[gamesdom.IngestPort](gm)
	rep, err := ingest.Run(ctx, gamesdom.Input{Source: *in})
	if err != nil {
		l.Fatal().Err(err).Str("file", *in).Msg("ingest failed")
	}

	ev := l.Info().
		Str("run_id", rep.Run.ID).
		Str("file", rep.Run.Source).
		Str("compression", rep.Run.Compression).
		Int("blocks", rep.Run.Blocks).
		Int("records", rep.Run.Kept).
		Int("dropped", rep.Run.Dropped).
		Bool("dry_run", rep.DryRun).
		Dur("elapsed", rep.Elapsed)
	for _, s := range rep.Sinks {
		ev = ev.Int("rows_"+s.Name, s.Rows)
	}
	ev.Msg("ingest report")
}
