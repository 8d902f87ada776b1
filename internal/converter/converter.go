package converter

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/nutriplate/xls2csv/internal/types"
)

const (
	RowDetectionLimit = 10

	// DefaultHeaderRow skips the title row that precedes the column names.
	DefaultHeaderRow = 1
	// AutoHeaderRow asks ReadFileData to guess the header row.
	AutoHeaderRow = -1
)

type Options struct {
	// Charset decodes legacy (pre-BIFF8) workbook strings and CSV input.
	Charset string
	// OutputCharset is the WHATWG label of the output encoding.
	OutputCharset string
	// HeaderRow is the 0-based physical row holding the column names.
	HeaderRow int
	// Sheet is the 0-based sheet index.
	Sheet int
}

func DefaultOptions() Options {
	return Options{
		Charset:       "utf-8",
		OutputCharset: "utf-8",
		HeaderRow:     DefaultHeaderRow,
	}
}

// Convert reads one sheet of inputFile, drops its placeholder columns and
// writes the rest to outputFile as BOM-prefixed CSV. outputFile is truncated
// before writing; on error its content is unspecified.
//
// Every error returned is a *ConversionError.
func Convert(inputFile, outputFile string, opts Options, progressChan chan<- float64) (result *types.ConversionResult, err error) {
	if _, err := os.Stat(inputFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ConversionError{Kind: KindMissingInput, Path: inputFile, Err: err}
		}
		return nil, parseErr(inputFile, err)
	}

	defer func() {
		if r := recover(); r != nil {
			result, err = nil, parseErr(inputFile, fmt.Errorf("%v", r))
		}
	}()

	data, err := ReadFileData(inputFile, opts)
	if err != nil {
		return nil, parseErr(inputFile, err)
	}

	dropped := DropPlaceholders(data)
	slog.Debug("columns", "file", inputFile, "headerRow", data.HeaderRow,
		"kept", len(data.Headers), "dropped", dropped)

	if err := writeFile(outputFile, opts.OutputCharset, data, progressChan); err != nil {
		return nil, writeErr(outputFile, err)
	}

	return &types.ConversionResult{
		InputFile:      inputFile,
		OutputFile:     outputFile,
		Columns:        data.Headers,
		DroppedColumns: dropped,
		RowsProcessed:  len(data.Rows),
	}, nil
}

// ReadFileData reads the selected sheet of filePath and locates its header.
// Column names are filled in but no column is dropped yet.
func ReadFileData(filePath string, opts Options) (*types.FileData, error) {
	rows, err := readRows(filePath, opts)
	if err != nil {
		return nil, err
	}
	return BuildFileData(rows, opts.HeaderRow)
}

func readRows(filePath string, opts Options) ([][]string, error) {
	ext := strings.ToLower(filepath.Ext(filePath))

	switch ext {
	case ".xls":
		return readXLSRows(filePath, opts.Charset, opts.Sheet)
	case ".xlsx":
		return readXLSXRows(filePath, opts.Sheet)
	case ".csv":
		return readCSVRows(filePath, opts.Charset)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}
}

// BuildFileData turns physical rows into a table whose header is rows[headerRow].
// Rows above the header are discarded, fully empty data rows are skipped and
// every row is padded to the table width.
func BuildFileData(rows [][]string, headerRow int) (*types.FileData, error) {
	if headerRow < AutoHeaderRow {
		return nil, fmt.Errorf("%w: invalid header row %d", ErrNoHeader, headerRow)
	}
	if headerRow == AutoHeaderRow {
		if headerRow = findHeaderRow(rows); headerRow == -1 {
			return nil, ErrNoHeader
		}
	}
	if headerRow >= len(rows) {
		return nil, fmt.Errorf("%w: row %d, sheet has %d rows", ErrNoHeader, headerRow, len(rows))
	}

	width := 0
	for _, row := range rows[headerRow:] {
		width = max(width, len(row))
	}

	data := &types.FileData{
		Headers:   NameColumns(pad(rows[headerRow], width)),
		HeaderRow: headerRow,
	}
	for _, row := range rows[headerRow+1:] {
		if isBlank(row) {
			continue
		}
		data.Rows = append(data.Rows, pad(row, width))
	}
	return data, nil
}

func pad(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

// findHeaderRow locates the first row that appears to be a header
// by finding the row with the most non-empty text cells
func findHeaderRow(rows [][]string) int {
	maxNonEmpty := 0
	headerIdx := -1

	// Look at first 20 rows max
	searchLimit := min(len(rows), RowDetectionLimit*2)

	for i := 0; i < searchLimit; i++ {
		nonEmptyCount := 0
		hasText := false

		for _, cell := range rows[i] {
			trimmed := strings.TrimSpace(cell)
			if trimmed != "" {
				nonEmptyCount++
				if containsLetters(trimmed) {
					hasText = true
				}
			}
		}

		// Header should have multiple columns AND contain text
		if nonEmptyCount >= 2 && hasText && nonEmptyCount > maxNonEmpty {
			maxNonEmpty = nonEmptyCount
			headerIdx = i
		}
	}

	return headerIdx
}

func containsLetters(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
