// Package report renders human-readable summaries of a preparation run.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"
)

// Printer writes formatted report blocks to an io.Writer.
type Printer struct {
	w      io.Writer
	styled bool
}

// NewPrinter returns a Printer writing to w. Styling adds terminal colors to
// headers and section titles and should be off for files and tests.
func NewPrinter(w io.Writer, styled bool) *Printer {
	return &Printer{w: w, styled: styled}
}

// Header prints a boxed title.
func (p *Printer) Header(format string, args ...interface{}) {
	title := fmt.Sprintf(format, args...)
	width := VisualWidth(title) + 4
	fmt.Fprintln(p.w, strings.Repeat("=", width))
	fmt.Fprintf(p.w, "  %s\n", p.style(title, color.FgCyan, color.OpBold))
	fmt.Fprintln(p.w, strings.Repeat("=", width))
}

// Section prints a section header.
func (p *Printer) Section(title string) {
	fmt.Fprintf(p.w, "[%s]\n", p.style(title, color.FgYellow))
	fmt.Fprintln(p.w, strings.Repeat("-", VisualWidth(title)+2))
}

// Line prints one formatted line.
func (p *Printer) Line(format string, args ...interface{}) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Blank prints an empty line.
func (p *Printer) Blank() {
	fmt.Fprintln(p.w)
}

// KeyValues prints aligned "key: value" pairs, indented by two spaces.
func (p *Printer) KeyValues(pairs [][2]string) {
	keyWidth := 0
	for _, kv := range pairs {
		if w := VisualWidth(kv[0]); w > keyWidth {
			keyWidth = w
		}
	}
	for _, kv := range pairs {
		fmt.Fprintf(p.w, "  %s:%s %s\n", kv[0], pad(keyWidth-VisualWidth(kv[0])), kv[1])
	}
}

// Table prints rows under headers with columns padded to their widest cell.
// Cells after the first are right-aligned.
func (p *Printer) Table(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for j, h := range headers {
		widths[j] = VisualWidth(h)
	}
	for _, row := range rows {
		for j, cell := range row {
			if j < len(widths) && VisualWidth(cell) > widths[j] {
				widths[j] = VisualWidth(cell)
			}
		}
	}

	writeRow := func(cells []string) {
		var sb strings.Builder
		sb.WriteString("  ")
		for j := range widths {
			cell := ""
			if j < len(cells) {
				cell = cells[j]
			}
			if j > 0 {
				sb.WriteString("  ")
				sb.WriteString(pad(widths[j] - VisualWidth(cell)))
				sb.WriteString(cell)
			} else {
				sb.WriteString(cell)
				sb.WriteString(pad(widths[j] - VisualWidth(cell)))
			}
		}
		fmt.Fprintln(p.w, strings.TrimRight(sb.String(), " "))
	}

	writeRow(headers)
	sep := make([]string, len(widths))
	for j, w := range widths {
		sep[j] = strings.Repeat("-", w)
	}
	writeRow(sep)
	for _, row := range rows {
		writeRow(row)
	}
}

// SideBySide prints two blocks of text side by side.
// padding is the minimum spaces between the two columns.
func (p *Printer) SideBySide(leftContent string, rightLines []string, padding int) {
	leftLines := strings.Split(strings.TrimRight(leftContent, "\n"), "\n")

	leftWidth := 0
	for _, line := range leftLines {
		if w := VisualWidth(line); w > leftWidth {
			leftWidth = w
		}
	}

	maxHeight := len(leftLines)
	if len(rightLines) > maxHeight {
		maxHeight = len(rightLines)
	}

	for i := 0; i < maxHeight; i++ {
		leftPart, rightPart := "", ""
		if i < len(leftLines) {
			leftPart = leftLines[i]
		}
		if i < len(rightLines) {
			rightPart = rightLines[i]
		}

		if rightPart == "" {
			fmt.Fprintln(p.w, leftPart)
			continue
		}
		fmt.Fprint(p.w, leftPart)
		fmt.Fprint(p.w, pad(leftWidth-VisualWidth(leftPart)+padding))
		fmt.Fprintln(p.w, rightPart)
	}
}

// VisualWidth returns the terminal cell width of s, counting wide runes twice.
func VisualWidth(s string) int {
	return runewidth.StringWidth(s)
}

func (p *Printer) style(s string, opts ...color.Color) string {
	if !p.styled {
		return s
	}
	return color.New(opts...).Sprint(s)
}

func pad(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
