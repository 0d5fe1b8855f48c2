package gdp

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/sells-group/geoscope/internal/catalog"
)

// Load reads a wide GDP table from a .csv or .xlsx file.
func Load(path string) (*Index, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readXLSX(path)
	default:
		rows, err = readCSVFile(path)
	}
	if err != nil {
		return nil, err
	}

	idx := FromRows(rows)
	zap.L().Debug("gdp table loaded",
		zap.String("component", "gdp"),
		zap.String("path", path),
		zap.Int("countries", idx.Len()),
	)
	return idx, nil
}

func readCSVFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(catalog.NewDataError(catalog.KindNotFound, path, err), "gdp: open csv")
	}
	defer f.Close() //nolint:errcheck

	rows, err := ReadCSV(f)
	if err != nil {
		return nil, eris.Wrap(catalog.NewDataError(catalog.KindParse, path, err), "gdp: read csv")
	}
	return rows, nil
}

// ReadCSV reads every record of a comma separated table. Rows may have
// differing field counts and stray quotes are tolerated.
func ReadCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, eris.Wrap(err, "csv: read row")
		}
		rows = append(rows, record)
	}
}

// readXLSX returns the rows of the first sheet of a workbook.
func readXLSX(path string) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		kind := catalog.KindParse
		if _, statErr := os.Stat(path); statErr != nil {
			kind = catalog.KindNotFound
		}
		return nil, eris.Wrap(catalog.NewDataError(kind, path, err), "gdp: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Wrap(catalog.NewDataError(catalog.KindParse, path, eris.New("no sheets")), "gdp: read xlsx")
	}

	sheet := f.Sheets[0]
	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}
	return rows, nil
}
