// Package observability renders navigator views as plain-text boxes.
package observability

import (
	"fmt"
	"io"
	"strings"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 64
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// heatmapRows is how many top skills the demand heatmap shows.
	heatmapRows = 12
	// cardMatched and cardMissing cap the skill chips on a job card.
	cardMatched = 5
	cardMissing = 3
)

// Printer writes human-readable views to an output stream.
type Printer struct {
	out io.Writer
	// descriptionRunes caps the job description excerpt on cards; 0 hides it.
	descriptionRunes int
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// SetDescriptionLength shows up to n runes of each job description on job cards.
func (p *Printer) SetDescriptionLength(n int) {
	p.descriptionRunes = max(n, 0)
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// printf writes an unboxed line.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// truncate shortens s to at most width runes, marking the cut with "...".
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

// bar renders a proportional bar for a percentage in [0, 100].
func bar(share float64, width int) string {
	filled := int(share / 100 * float64(width))
	filled = max(0, min(width, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// joinLimited joins up to limit items and notes how many were left out.
func joinLimited(items []string, limit int) string {
	if len(items) <= limit {
		return strings.Join(items, ", ")
	}
	return fmt.Sprintf("%s (+%d more)", strings.Join(items[:limit], ", "), len(items)-limit)
}

// writeMore notes the items hidden from a capped list.
func writeMore(sb *strings.Builder, total, shown int) {
	if total > shown {
		fmt.Fprintf(sb, "  ... and %d more\n", total-shown)
	}
}

// wrap breaks text into lines of at most width runes at word boundaries.
func wrap(text string, width int) string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if len([]rune(line))+1+len([]rune(w)) > width {
				out = append(out, line)
				line = w
				continue
			}
			line += " " + w
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
