package types

// Pair is one input spreadsheet and the CSV file it is converted to.
type Pair struct {
	Input  string
	Output string
}

type ConversionResult struct {
	InputFile      string
	OutputFile     string
	Columns        []string
	DroppedColumns []string
	RowsProcessed  int
}

// FileData is a sheet after the header row has been located.
// Rows above HeaderRow are not kept.
type FileData struct {
	Headers   []string
	Rows      [][]string
	HeaderRow int
}
