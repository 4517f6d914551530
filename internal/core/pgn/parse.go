package pgn

import (
	"regexp"
	"strconv"
	"strings"
)

// header line, value stops at the first `"]`
var headerRE = regexp.MustCompile(`\[(\w+) "(.*?)"\]`)

// Headers holds the tag pairs of one block
type Headers map[string]string

// ExtractHeaders collects every tag pair in text in order of appearance
// a key seen twice keeps its last value
func ExtractHeaders(text string) Headers {
	h := Headers{}
	for _, m := range headerRE.FindAllStringSubmatch(text, -1) {
		h[m[1]] = m[2]
	}
	return h
}

// Get returns the value for key or def when absent
func (h Headers) Get(key, def string) string {
	if v, ok := h[key]; ok {
		return v
	}
	return def
}

// Parse converts one game block into a Record
// It never fails, see Invalid for the fallbacks
func Parse(text string) Record {
	h := ExtractHeaders(text)
	return Record{
		BlackRating: rating(h.Get("BlackElo", defaultRating)),
		WhiteRating: rating(h.Get("WhiteElo", defaultRating)),
		TimeControl: h.Get("TimeControl", defaultTimeControl),
		Result:      EncodeResult(h.Get("Result", defaultResult)),
	}
}

// rating decodes a base 10 integer literal, surrounding spaces allowed
func rating(s string) int {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return NoValue
	}
	return int(n)
}

// Split cuts a corpus into game blocks on blank lines
// empty blocks are kept, they parse to Invalid
func Split(corpus string) []string {
	return strings.Split(corpus, "\n\n")
}
