package converter

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// GetEncoding returns the encoding for a WHATWG charset label.
// UTF-8 (and the empty label) gives nil, meaning no transcoding.
func GetEncoding(encName string) (encoding.Encoding, error) {
	encName = strings.ToLower(strings.TrimSpace(encName))
	if encName == "" || encName == "utf-8" || encName == "utf8" {
		return nil, nil
	}
	enc, err := htmlindex.Get(encName)
	if err != nil {
		err = fmt.Errorf("%q: %w", encName, err)
	}
	return enc, err
}

// readCSVRows reads a delimited text export in the given charset.
// A leading byte-order mark overrides the charset.
func readCSVRows(path, charset string) ([][]string, error) {
	enc, err := GetEncoding(charset)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		enc = xunicode.UTF8
	}

	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	r := transform.NewReader(fh, xunicode.BOMOverride(enc.NewDecoder()))
	br := bufio.NewReaderSize(r, 1<<20)
	b, err := br.Peek(1024)
	if err != nil && len(b) == 0 {
		return nil, fmt.Errorf("empty file: %w", err)
	}

	cr := csv.NewReader(br)
	cr.Comma = sniffDelimiter(b)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr.ReadAll()
}

// sniffDelimiter returns the first candidate separator found on the first
// line of the sample, defaulting to a comma.
func sniffDelimiter(sample []byte) rune {
	for _, r := range string(sample) {
		switch r {
		case ',', ';', '\t', '|':
			return r
		case '\n', '\r':
			return ','
		}
	}
	return ','
}
