// Package shoppinglist aggregates cart ingredients into a plain-text
// shopping list.
package shoppinglist

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// Filename is the suggested download name for the rendered list.
	Filename = "shopping_list.txt"

	header = "Список покупок:"
)

// Line is one ingredient entry. Two lines with the same name and unit
// describe the same shopping item even when they came from different
// ingredient rows.
type Line struct {
	Name   string
	Unit   string
	Amount int
}

// Aggregate merges lines by (name, unit), summing amounts, and returns
// the result ordered by name ascending. The output is independent of
// input order.
func Aggregate(lines []Line) []Line {
	type key struct {
		name string
		unit string
	}

	totals := make(map[key]int, len(lines))
	for _, l := range lines {
		totals[key{l.Name, l.Unit}] += l.Amount
	}

	out := make([]Line, 0, len(totals))
	for k, amount := range totals {
		out = append(out, Line{Name: k.name, Unit: k.unit, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Unit < out[j].Unit
	})
	return out
}

// Render produces the downloadable document: a header line followed by
// one numbered entry per line. An empty list renders only the header.
func Render(lines []Line) []byte {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	for i, l := range lines {
		fmt.Fprintf(&b, "\n%d. %s - %d %s", i+1, l.Name, l.Amount, l.Unit)
	}
	return []byte(b.String())
}
