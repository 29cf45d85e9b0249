package bulkimport

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Batch-fatal parse errors. No rows are processed when these occur.
var (
	ErrEmptyFile       = errors.New("empty file or missing header/data rows")
	ErrUnsupportedFile = errors.New("unsupported file type: only .csv and .xlsx are accepted")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseUpload parses an uploaded tabular file into a header row plus data
// rows, dispatching on the file extension.
func ParseUpload(filename string, data []byte) (headers []string, rows [][]string, err error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ParseCSV(data)
	case ".xlsx":
		return ParseXLSX(data)
	default:
		return nil, nil, ErrUnsupportedFile
	}
}

// ParseCSV reads CSV bytes. A UTF-8 BOM is stripped, fully blank rows are
// dropped, and ragged rows are tolerated (missing cells become empty
// strings downstream).
func ParseCSV(data []byte) ([]string, [][]string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // allow ragged rows
	reader.TrimLeadingSpace = true

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		if !blankRow(record) {
			records = append(records, record)
		}
	}

	if len(records) < 2 {
		return nil, nil, ErrEmptyFile
	}
	return records[0], records[1:], nil
}

// ParseXLSX reads the first sheet of an Excel workbook.
func ParseXLSX(data []byte) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, ErrEmptyFile
	}

	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, err
	}

	var records [][]string
	for _, row := range all {
		if !blankRow(row) {
			records = append(records, row)
		}
	}

	if len(records) < 2 {
		return nil, nil, ErrEmptyFile
	}
	return records[0], records[1:], nil
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
