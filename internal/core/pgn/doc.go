// Package pgn reads bracketed PGN header lines and encodes them into fixed shape game records
//
// Only the header section is looked at, move text is ignored
// Parsing is total: any input string yields a Record, unknown or broken
// values fall back to the sentinels defined by Invalid
package pgn
