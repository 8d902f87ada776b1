package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/nutriplate/xls2csv/internal/batch"
	"github.com/nutriplate/xls2csv/internal/types"

	"github.com/charmbracelet/lipgloss"
)

const ruleWidth = 60

// Title heads every run.
const Title = "Food nutrition XLS -> CSV conversion"

var _ batch.Reporter = (*Console)(nil)

// Console prints one line per conversion event. Colours are only emitted
// when w is a terminal.
type Console struct {
	w     io.Writer
	style styles
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w, style: newStyles(lipgloss.NewRenderer(w))}
}

func (c *Console) println(s string) { fmt.Fprintln(c.w, s) }

func (c *Console) rule() { c.println(c.style.Rule.Render(strings.Repeat("=", ruleWidth))) }

func (c *Console) Begin(total int) {
	c.rule()
	c.println(c.style.Title.Render(Title))
	c.println(c.style.Subtitle.Render(CountLine(total)))
	c.rule()
}

func (c *Console) Start(p types.Pair) {
	c.println(fmt.Sprintf("Converting: %s -> %s", p.Input, c.style.Path.Render(p.Output)))
}

func (c *Console) Done(res *types.ConversionResult) {
	c.println(c.style.Success.Render(DoneLine(res)))
}

func (c *Console) Missing(p types.Pair) {
	c.println(c.style.Error.Render(MissingLine(p)))
}

func (c *Console) Failed(p types.Pair, err error) {
	c.println(c.style.Error.Render(FailedLine(p, err)))
}

func (c *Console) Finish(s batch.Summary) {
	c.rule()
	c.println(SummaryLine(s))
	c.rule()
}

func CountLine(total int) string {
	if total == 1 {
		return "1 file to convert"
	}
	return fmt.Sprintf("%d files to convert", total)
}

func DoneLine(res *types.ConversionResult) string {
	return fmt.Sprintf("✓ Done: %s (%d rows, %d columns)", res.OutputFile, res.RowsProcessed, len(res.Columns))
}

func MissingLine(p types.Pair) string {
	return fmt.Sprintf("✗ File not found: %s", p.Input)
}

func FailedLine(p types.Pair, err error) string {
	return fmt.Sprintf("✗ Error: %s - %v", p.Input, err)
}

func SummaryLine(s batch.Summary) string {
	return fmt.Sprintf("Conversion complete: %d/%d files converted", s.Converted, s.Total)
}
