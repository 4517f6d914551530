// Package frame holds parsed game records as an ordered, typed table
package frame

import (
	"errors"
	"fmt"
)

// Kind is the value type of a column
type Kind uint8

// Column kinds
const (
	Int Kind = iota
	String
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "integer"
	case String:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Field describes one column
type Field struct {
	Name     string
	Kind     Kind
	Nullable bool
}

// Schema is an ordered column list
type Schema []Field

// Column names
const (
	ColBlackRating = "black_rating"
	ColWhiteRating = "white_rating"
	ColTimeControl = "time_control"
	ColResult      = "result"
)

// Games is the fixed schema of a game frame, column order matters
var Games = Schema{
	{Name: ColBlackRating, Kind: Int, Nullable: true},
	{Name: ColWhiteRating, Kind: Int, Nullable: true},
	{Name: ColTimeControl, Kind: String, Nullable: true},
	{Name: ColResult, Kind: Int, Nullable: true},
}

// ErrSchema is returned when a schema cannot describe pgn records
var ErrSchema = errors.New("frame: schema does not match record shape")

// Names returns the column names in order
func (s Schema) Names() []string {
	out := make([]string, len(s))
	for i, f := range s {
		out[i] = f.Name
	}
	return out
}

// Index returns the position of the named column or -1
func (s Schema) Index(name string) int {
	for i, f := range s {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// check verifies s lines up with the record tuple
func (s Schema) check() error {
	if len(s) != len(Games) {
		return fmt.Errorf("%w: want %d columns, got %d", ErrSchema, len(Games), len(s))
	}
	for i, f := range s {
		want := Games[i]
		if f.Name != want.Name || f.Kind != want.Kind {
			return fmt.Errorf("%w: column %d is %s %s, want %s %s",
				ErrSchema, i, f.Name, f.Kind, want.Name, want.Kind)
		}
	}
	return nil
}

// String renders the schema like a tree, one column per line
func (s Schema) String() string {
	out := "root\n"
	for _, f := range s {
		out += fmt.Sprintf(" |-- %s: %s (nullable = %t)\n", f.Name, f.Kind, f.Nullable)
	}
	return out
}
