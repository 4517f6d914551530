// Package domain holds DTOs for the games read API
package domain

import (
	"pgnframe/internal/core/frame"
	gamesdom "pgnframe/internal/services/games/domain"
)

// ListInput filters stored game records
type ListInput struct {
	RunID  string `query:"run_id" validate:"omitempty,uuid"`
	Result *int   `query:"result" validate:"omitempty,oneof=1 -1 0 -999"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=1000"`
	Offset int    `query:"offset" validate:"min=0"`
}

// SummaryInput scopes a summary to one run, all runs when empty
type SummaryInput struct {
	RunID string `query:"run_id" validate:"omitempty,uuid"`
}

// RunsInput pages the run list
type RunsInput struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=200"`
}

// Game is one stored record
type Game struct {
	RunID       string `json:"run_id"`
	Ord         int    `json:"ord"`
	BlackRating int    `json:"black_rating"`
	WhiteRating int    `json:"white_rating"`
	TimeControl string `json:"time_control"`
	Result      int    `json:"result"`
	ResultLabel string `json:"result_label"`
}

// Summary aggregates stored records the way frame.Summary does in memory
type Summary = frame.Summary

// Run is a stored ingest run
type Run = gamesdom.Run

// Default page sizes
const (
	DefaultLimit     = 100
	DefaultRunsLimit = 20
)
