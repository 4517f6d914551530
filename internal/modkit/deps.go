// Package modkit wires modules from shared deps and options
package modkit

import (
	"pgnframe/internal/modkit/repokit"
	"pgnframe/internal/platform/config"
	"pgnframe/internal/platform/logger"
	"pgnframe/internal/platform/store"
)

// Deps holds the dependencies handed to every module
// any store seam may be nil when its backend is disabled
type Deps struct {
	Log  logger.Logger
	Cfg  config.Conf
	PG   repokit.TxRunner
	Lite repokit.TxRunner
	CH   store.Clickhouse
}

// FromStore copies the store seams into a Deps
func FromStore(cfg config.Conf, st *store.Store) Deps {
	d := Deps{Cfg: cfg}
	if st != nil {
		d.Log, d.PG, d.Lite, d.CH = st.Log, st.PG, st.Lite, st.CH
	}
	return d
}

// SQL returns the relational seam reads should use, postgres first
func (d Deps) SQL() repokit.TxRunner {
	if d.PG != nil {
		return d.PG
	}
	return d.Lite
}
