package converter

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// readXLSRows returns every physical row of one sheet of a BIFF workbook.
// Missing rows come back as nil so that row indexes stay physical.
func readXLSRows(path, charset string, sheet int) (rows [][]string, err error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	// The BIFF reader panics on some truncated streams.
	defer func() {
		if r := recover(); r != nil {
			rows, err = nil, fmt.Errorf("corrupt workbook: %v", r)
		}
	}()

	wb, err := xls.OpenReader(fh, charset)
	if err != nil {
		return nil, err
	}
	if wb == nil {
		return nil, errors.New("no Workbook stream in compound file")
	}
	if sheet < 0 || sheet >= wb.NumSheets() {
		return nil, fmt.Errorf("%w: index %d, workbook has %d", ErrSheetNotFound, sheet, wb.NumSheets())
	}
	ws := wb.GetSheet(sheet)
	if ws == nil {
		return nil, fmt.Errorf("%w: index %d", ErrSheetNotFound, sheet)
	}
	slog.Debug("xls sheet", "file", path, "sheet", ws.Name, "maxRow", ws.MaxRow)

	rows = make([][]string, 0, int(ws.MaxRow)+1)
	for i := 0; i <= int(ws.MaxRow); i++ {
		rows = append(rows, rowCells(sheetRow(ws, i)))
	}
	return rows, nil
}

// sheetRow returns nil for a row the sheet has no record of.
// WorkSheet.Row dereferences the missing entry instead.
func sheetRow(ws *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return ws.Row(i)
}

// biffMaxCols is the column limit of a BIFF8 sheet.
const biffMaxCols = 256

func rowCells(row *xls.Row) []string {
	if row == nil {
		return nil
	}

	// Cells written without a ROW record leave the column span at zero,
	// so scan the whole sheet width and trim the tail.
	first, last := row.FirstCol(), row.LastCol()
	if last == 0 {
		first, last = 0, biffMaxCols
	}

	cells := make([]string, last)
	for j := first; j < last; j++ {
		cells[j] = row.Col(j)
	}
	for len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}

func readXLSXRows(path string, sheet int) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheetName := f.GetSheetName(sheet)
	if sheetName == "" {
		return nil, fmt.Errorf("%w: index %d, workbook has %d", ErrSheetNotFound, sheet, f.SheetCount)
	}
	slog.Debug("xlsx sheet", "file", path, "sheet", sheetName)

	return f.GetRows(sheetName)
}
