package errors

import (
	stderrs "errors"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// sqliteCode returns the primary and extended result codes of a sqlite error
func sqliteCode(err error) (primary, extended int, ok bool) {
	var se *sqlite.Error
	if !stderrs.As(err, &se) {
		return 0, 0, false
	}
	return se.Code() & 0xff, se.Code(), true
}

// FromSQLite wraps a sqlite error with its mapped code, nil stays nil
func FromSQLite(err error, msg string) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "no such table") {
		return Wrap(err, ErrorCodeNotFound, msg)
	}
	primary, extended, ok := sqliteCode(err)
	if !ok {
		return Wrap(err, ErrorCodeDB, msg)
	}
	switch primary {
	case sqlite3.SQLITE_CONSTRAINT:
		if extended == sqlite3.SQLITE_CONSTRAINT_UNIQUE || extended == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY ||
			strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return Wrap(err, ErrorCodeDuplicateKey, msg)
		}
		return Wrap(err, ErrorCodeValidation, msg)
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return Wrap(err, ErrorCodeUnavailable, msg)
	case sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_READONLY, sqlite3.SQLITE_FULL:
		return Wrap(err, ErrorCodeIO, msg)
	default:
		return Wrap(err, ErrorCodeDB, msg)
	}
}

func sqliteBusy(err error) bool {
	primary, _, ok := sqliteCode(err)
	return ok && (primary == sqlite3.SQLITE_BUSY || primary == sqlite3.SQLITE_LOCKED)
}

// FromDB maps a driver error from either backend, coded errors pass through
func FromDB(err error, msg string) error {
	if err == nil {
		return nil
	}
	if _, ok := As(err); ok {
		return err
	}
	if _, ok := ExtractPgError(err); ok {
		return FromPostgres(err, msg)
	}
	return FromSQLite(err, msg)
}
