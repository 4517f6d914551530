package pgnfile

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"unicode/utf8"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/text/transform"

	"pgnframe/internal/core/pgn"
	perr "pgnframe/internal/platform/errors"
	"pgnframe/internal/platform/logger"
)

const sampleMax = 1024 // bytes of the sample block written to the debug log

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Reader turns one source into game blocks
type Reader struct {
	src   string
	f     Fetcher
	opt   Options
	stats Stats
}

// NewReader returns a Reader for src, the fetcher is chosen from src when f is nil
func NewReader(src string, f Fetcher, opt Options) (*Reader, error) {
	if src == "" {
		return nil, perr.WithField(perr.InvalidArgf("no pgn source given"), "in")
	}
	if _, err := decoder(opt.Encoding); err != nil {
		return nil, err
	}
	if f == nil {
		f = FetcherFor(src, 0)
	}
	enc := opt.Encoding
	if enc == "" {
		enc = EncodingUTF8
	}
	return &Reader{src: src, f: f, opt: opt, stats: Stats{Source: src, Encoding: enc}}, nil
}

// Stats returns what the last Blocks call loaded
func (rd *Reader) Stats() Stats { return rd.stats }

// Blocks loads the corpus and splits it into game blocks
func (rd *Reader) Blocks(ctx context.Context) ([]string, error) {
	text, err := rd.Text(ctx)
	if err != nil {
		return nil, err
	}
	blocks := pgn.Split(text)
	rd.stats.Blocks = len(blocks)

	for _, b := range blocks {
		if b == "" {
			continue
		}
		l := logger.Named("pgnfile")
		l.Debug().
			Str("source", rd.src).
			Int("block_bytes", len(b)).
			Str("sample", truncateUTF8([]byte(b), sampleMax)).
			Msg("pgnfile: sample block")
		break
	}
	return blocks, nil
}

// Text loads and decodes the whole corpus
func (rd *Reader) Text(ctx context.Context) (string, error) {
	rc, err := rd.f.Fetch(ctx, rd.src)
	if err != nil {
		return "", err
	}
	defer func() { _ = rc.Close() }()

	r, kind, closeFn, err := decompress(bufio.NewReaderSize(rc, 256*1024))
	if err != nil {
		return "", err
	}
	defer closeFn()
	rd.stats.Compression = kind

	dec, _ := decoder(rd.opt.Encoding)
	if dec != nil {
		r = transform.NewReader(r, dec)
	}

	limited := r
	if rd.opt.MaxBytes > 0 {
		limited = io.LimitReader(r, rd.opt.MaxBytes+1)
	}
	data, err := io.ReadAll(limited)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", perr.Wrapf(err, perr.ErrorCodeDecode, "read %s", rd.src)
	}
	if rd.opt.MaxBytes > 0 && int64(len(data)) > rd.opt.MaxBytes {
		return "", perr.WithField(perr.InvalidArgf("%s exceeds %d bytes", rd.src, rd.opt.MaxBytes), "max_bytes")
	}
	if dec == nil && !utf8.Valid(data) {
		return "", perr.WithField(perr.InvalidArgf("%s is not valid utf-8 at byte %d, pick another encoding", rd.src, invalidAt(data)), "encoding")
	}

	data = normalizeNewlines(data)
	rd.stats.Bytes = int64(len(data))
	return string(data), nil
}

// decompress sniffs the stream and wraps it in the matching decoder
func decompress(br *bufio.Reader) (io.Reader, Compression, func(), error) {
	head, _ := br.Peek(len(zstdMagic))
	switch {
	case bytes.HasPrefix(head, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, "", nil, perr.Wrap(err, perr.ErrorCodeDecode, "zstd reader")
		}
		return zr, CompressionZstd, zr.Close, nil
	case bytes.HasPrefix(head, gzipMagic):
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, "", nil, perr.Wrap(err, perr.ErrorCodeDecode, "gzip reader")
		}
		return gz, CompressionGzip, func() { _ = gz.Close() }, nil
	default:
		return br, CompressionNone, func() {}, nil
	}
}

// invalidAt is the offset of the first byte that does not start a valid rune
func invalidAt(b []byte) int {
	for i := 0; i < len(b); {
		r, n := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && n == 1 {
			return i
		}
		i += n
	}
	return -1
}

// normalizeNewlines rewrites \r\n and lone \r as \n
func normalizeNewlines(b []byte) []byte {
	if bytes.IndexByte(b, '\r') < 0 {
		return b
	}
	b = bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(b, []byte("\r"), []byte("\n"))
}

// truncateUTF8 cuts b to at most max bytes on a rune boundary and marks the cut
func truncateUTF8(b []byte, max int) string {
	if max <= 0 || len(b) <= max {
		return string(b)
	}
	i := max
	for i > 0 && (b[i]&0xC0) == 0x80 {
		i--
	}
	if i <= 0 {
		i = max
	}
	return string(b[:i]) + "..."
}
