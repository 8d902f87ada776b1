package converter

import (
	"fmt"
	"strings"

	"github.com/nutriplate/xls2csv/internal/types"
)

// PlaceholderPrefix starts every synthetic name given to a column whose
// header cell was empty.
const PlaceholderPrefix = "Unnamed"

// IsPlaceholder reports whether a column name was synthesised for an empty
// header cell. Any header that starts with the prefix counts, including one
// typed literally into the sheet.
func IsPlaceholder(name string) bool {
	return strings.HasPrefix(name, PlaceholderPrefix)
}

// PlaceholderName is the name given to an empty header cell at column index i.
func PlaceholderName(i int) string {
	return fmt.Sprintf("%s: %d", PlaceholderPrefix, i)
}

// NameColumns fills empty header cells with placeholder names and makes
// repeated names unique by appending ".1", ".2", ...
func NameColumns(headers []string) []string {
	named := make([]string, len(headers))
	used := make(map[string]bool, len(headers))
	dups := make(map[string]int)
	for i, h := range headers {
		if h == "" {
			h = PlaceholderName(i)
		}
		name := h
		for used[name] {
			dups[h]++
			name = fmt.Sprintf("%s.%d", h, dups[h])
		}
		used[name] = true
		named[i] = name
	}
	return named
}

// DropPlaceholders removes placeholder columns from data in place and
// returns the names of the removed columns. Relative column order is kept.
func DropPlaceholders(data *types.FileData) []string {
	keep := make([]int, 0, len(data.Headers))
	var dropped []string
	for i, h := range data.Headers {
		if IsPlaceholder(h) {
			dropped = append(dropped, h)
			continue
		}
		keep = append(keep, i)
	}
	if len(dropped) == 0 {
		return nil
	}

	data.Headers = pick(data.Headers, keep)
	for j, row := range data.Rows {
		data.Rows[j] = pick(row, keep)
	}
	return dropped
}

func pick(row []string, idx []int) []string {
	out := make([]string, len(idx))
	for i, k := range idx {
		if k < len(row) {
			out[i] = row[k]
		}
	}
	return out
}
