package pgn

import "strconv"

// Sentinel values used when a header is missing or cannot be decoded
const (
	// Unknown is the time control and raw result of a game that does not state one
	Unknown = "unknown"
	// NoValue marks a rating that is not an integer or a result outside the known set
	NoValue = -999
)

// Encoded game results
const (
	WhiteWins = 1
	BlackWins = -1
	Draw      = 0
)

// Record is one parsed game, fields are in column order
type Record struct {
	BlackRating int    `json:"black_rating"`
	WhiteRating int    `json:"white_rating"`
	TimeControl string `json:"time_control"`
	Result      int    `json:"result"`
}

// Invalid is what a block without any recognised header parses to
// Its fields are the parser defaults, and a record equal to it is dropped
var Invalid = Record{
	BlackRating: 0,
	WhiteRating: 0,
	TimeControl: Unknown,
	Result:      NoValue,
}

// header defaults, derived from Invalid so the filter and the parser cannot drift apart
var (
	defaultRating      = strconv.Itoa(Invalid.BlackRating)
	defaultTimeControl = Invalid.TimeControl
	defaultResult      = Unknown
)

// Valid reports whether r carries at least one recognised header
// A rating of 0 and a missing rating look the same here
func (r Record) Valid() bool { return r != Invalid }

// Tuple returns the record as an ordered row
func (r Record) Tuple() []any {
	return []any{r.BlackRating, r.WhiteRating, r.TimeControl, r.Result}
}

// Keep returns the valid records of xs in their original order
func Keep(xs []Record) []Record {
	out := make([]Record, 0, len(xs))
	for _, r := range xs {
		if r.Valid() {
			out = append(out, r)
		}
	}
	return out
}

// EncodeResult maps a raw Result header to its integer code
func EncodeResult(raw string) int {
	switch raw {
	case "1-0":
		return WhiteWins
	case "0-1":
		return BlackWins
	case "1/2-1/2":
		return Draw
	default:
		return NoValue
	}
}

// ResultLabel is the inverse of EncodeResult for display, NoValue maps to Unknown
func ResultLabel(code int) string {
	switch code {
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	default:
		return Unknown
	}
}
