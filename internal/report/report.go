// Package report renders API results as console text.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"apiexplorer/internal/store"
)

// Printer writes formatted reports to an output stream
type Printer struct {
	w     io.Writer
	num   *message.Printer
	title lipgloss.Style
}

// New creates a Printer writing to w
func New(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:     w,
		num:   message.NewPrinter(language.English),
		title: r.NewStyle().Bold(true),
	}
}

// Printf writes formatted text without a trailing newline
func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

// Linef writes formatted text followed by a newline
func (p *Printer) Linef(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Blank writes an empty line
func (p *Printer) Blank() {
	fmt.Fprintln(p.w)
}

// Rule writes a line of width repetitions of ch
func (p *Printer) Rule(ch string, width int) {
	fmt.Fprintln(p.w, strings.Repeat(ch, width))
}

// Heading writes "=== title ===" followed by a blank line
func (p *Printer) Heading(title string) {
	p.Linef("%s", p.title.Render("=== "+title+" ==="))
	p.Blank()
}

// Section writes "--- title ---"
func (p *Printer) Section(title string) {
	p.Linef("%s", p.title.Render("--- "+title+" ---"))
}

// Banner writes a title framed by "=" rules of the given width
func (p *Printer) Banner(title string, width int) {
	p.Rule("=", width)
	p.Linef("  %s", p.title.Render(title))
	p.Rule("=", width)
}

// JSON writes an indented JSON document; anything else is written verbatim
func (p *Printer) JSON(raw []byte) {
	if !json.Valid(raw) {
		p.Linef("%s", raw)
		return
	}
	p.Printf("%s", store.Indent(raw))
}

// Money formats v as US dollars with thousands separators and the given decimals
func (p *Printer) Money(v float64, decimals int) string {
	return "$" + p.Number(v, decimals)
}

// Number formats v with thousands separators and the given decimals
func (p *Printer) Number(v float64, decimals int) string {
	return p.num.Sprintf(fmt.Sprintf("%%.%df", decimals), v)
}

// Change formats a percentage with an explicit sign, e.g. "+2.34%"
func (p *Printer) Change(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

// Truncate shortens s to at most n runes
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Title capitalises each word of s ("new york" becomes "New York")
func Title(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
