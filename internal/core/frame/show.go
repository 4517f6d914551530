package frame

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// Table renders up to n leading rows with the given style
// a footer is added when rows were left out
func (f *Frame) Table(n int, style table.Style) string {
	head := f.Head(n)

	tw := table.NewWriter()
	style.Format.Header = text.FormatDefault
	tw.SetStyle(style)

	hdr := make(table.Row, len(f.schema))
	configs := make([]table.ColumnConfig, len(f.schema))
	for i, c := range f.schema {
		hdr[i] = c.Name
		align := text.AlignRight
		if c.Kind == String {
			align = text.AlignLeft
		}
		configs[i] = table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignCenter}
	}
	tw.AppendHeader(hdr)
	tw.SetColumnConfigs(configs)

	for _, r := range head {
		tw.AppendRow(table.Row{r.BlackRating, r.WhiteRating, r.TimeControl, r.Result})
	}

	out := tw.Render()
	if len(head) < len(f.rows) {
		out += "\nonly showing top " + strconv.Itoa(len(head)) + " " + plural(len(head), "row")
	}
	return out
}

// Show writes the first n rows to w
// Terminals get rounded borders, anything else plain ascii
func (f *Frame) Show(w io.Writer, n int) error {
	style := table.StyleDefault
	if isTerminal(w) {
		style = table.StyleRounded
	}
	_, err := fmt.Fprintln(w, f.Table(n, style))
	return err
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
