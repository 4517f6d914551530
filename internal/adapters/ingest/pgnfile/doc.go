// Package pgnfile loads a PGN export and cuts it into game blocks
//
// The whole corpus is read into memory before splitting, the same text the
// parser sees is what a plain file read would give.
// - Sources are local paths or http(s) URLs, e.g. monthly lichess dumps.
// - gzip and zstd inputs are detected from their magic bytes.
// - Latin-1 and Windows-1252 exports are transcoded to UTF-8.
// - Line endings are normalised to \n before splitting on blank lines.
package pgnfile
