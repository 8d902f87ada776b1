package converter

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/nutriplate/xls2csv/internal/types"

	"golang.org/x/text/encoding"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// UTF8BOM is written at the start of every UTF-8 output file.
var UTF8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes the header line and then every row of data to w, using
// standard quoting and "\n" line endings.
func WriteCSV(w io.Writer, data *types.FileData, progressChan chan<- float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(data.Headers); err != nil {
		return err
	}

	totalRows := len(data.Rows)
	for i, row := range data.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
		reportProgress(progressChan, i+1, totalRows)
	}

	cw.Flush()
	return cw.Error()
}

// encodedFile transcodes everything written to it before it reaches the file.
type encodedFile struct {
	*transform.Writer
	fh *os.File
}

func (f encodedFile) Close() error {
	err := f.Writer.Close()
	if closeErr := f.fh.Close(); err == nil {
		err = closeErr
	}
	return err
}

// createOutput truncates or creates path. UTF-8 output starts with a BOM;
// other charsets are transcoded without one, replacing runes they cannot
// represent.
func createOutput(path, charset string) (io.WriteCloser, error) {
	enc, err := GetEncoding(charset)
	if err != nil {
		return nil, err
	}
	var t transform.Transformer
	if enc == nil {
		t = xunicode.UTF8BOM.NewEncoder()
	} else {
		t = encoding.ReplaceUnsupported(enc.NewEncoder())
	}

	fh, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return encodedFile{Writer: transform.NewWriter(fh, t), fh: fh}, nil
}

func writeFile(path, charset string, data *types.FileData, progressChan chan<- float64) error {
	w, err := createOutput(path, charset)
	if err != nil {
		return err
	}
	if err := WriteCSV(w, data, progressChan); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func reportProgress(progressChan chan<- float64, current, total int) {
	if progressChan == nil || total == 0 {
		return
	}
	select {
	case progressChan <- float64(current) / float64(total):
	default:
	}
}
