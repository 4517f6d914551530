package pgnfile

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	perr "pgnframe/internal/platform/errors"
)

// Encoding names accepted by Options
const (
	EncodingUTF8        = "utf-8"
	EncodingLatin1      = "latin-1"
	EncodingWindows1252 = "windows-1252"
)

// Encodings lists the accepted encoding names
var Encodings = []string{EncodingUTF8, EncodingLatin1, EncodingWindows1252}

// Compression of the source bytes
type Compression string

// Compression kinds
const (
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
)

// Options tunes a Reader
type Options struct {
	// Encoding of the source text, utf-8 when empty
	Encoding string
	// MaxBytes caps the decoded corpus size, 0 means no cap
	MaxBytes int64
}

// Stats describes one load
type Stats struct {
	Source      string      `json:"source"`
	Compression Compression `json:"compression"`
	Encoding    string      `json:"encoding"`
	Bytes       int64       `json:"bytes"`
	Blocks      int         `json:"blocks"`
}

// decoder returns the charmap for name, nil means the bytes are used as is
func decoder(name string) (*encoding.Decoder, error) {
	switch name {
	case "", EncodingUTF8:
		return nil, nil
	case EncodingLatin1:
		return charmap.ISO8859_1.NewDecoder(), nil
	case EncodingWindows1252:
		return charmap.Windows1252.NewDecoder(), nil
	default:
		return nil, perr.WithField(perr.InvalidArgf("unsupported encoding %q", name), "encoding")
	}
}
