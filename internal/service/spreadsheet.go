package service

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/opsdesk/agentdesk/internal/domain"
	"github.com/xuri/excelize/v2"
)

// allowedExtensions is the set of accepted upload file extensions.
var allowedExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".xls":  true,
}

// AllowedExtension reports whether the file name carries an accepted
// spreadsheet extension. Only the name suffix is checked, case-insensitively;
// content sniffing happens later, when the file is actually parsed.
func AllowedExtension(fileName string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(fileName))]
}

// ParseItems extracts contact items from an uploaded spreadsheet. CSV files go
// through encoding/csv, workbook files through excelize. The first row must be
// a header naming at least a first-name and a phone column; notes are optional.
func ParseItems(fileName string, data []byte) ([]domain.Item, error) {
	if !AllowedExtension(fileName) {
		return nil, domain.ErrUnsupportedExt
	}

	var rows [][]string
	var err error
	if strings.EqualFold(filepath.Ext(fileName), ".csv") {
		rows, err = readCSV(data)
	} else {
		rows, err = readWorkbook(data)
	}
	if err != nil {
		return nil, err
	}

	return itemsFromRows(rows)
}

func readCSV(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func readWorkbook(data []byte) ([][]string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.ErrEmptyFile
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read workbook rows: %w", err)
	}
	return rows, nil
}

// columnIndexes resolves the header row into column positions. Header names
// are matched case-insensitively with spaces, underscores, and hyphens
// stripped, so "First Name", "first_name", and "FirstName" all work.
func columnIndexes(header []string) (first, phone, notes int) {
	first, phone, notes = -1, -1, -1
	for i, cell := range header {
		name := strings.ToLower(cell)
		name = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(name)
		switch name {
		case "firstname", "name":
			if first == -1 {
				first = i
			}
		case "phone", "mobile", "phonenumber":
			if phone == -1 {
				phone = i
			}
		case "notes", "note":
			if notes == -1 {
				notes = i
			}
		}
	}
	return first, phone, notes
}

func itemsFromRows(rows [][]string) ([]domain.Item, error) {
	if len(rows) == 0 {
		return nil, domain.ErrEmptyFile
	}

	first, phone, notes := columnIndexes(rows[0])
	if first == -1 || phone == -1 {
		return nil, fmt.Errorf("%w: header must contain FirstName and Phone columns", domain.ErrEmptyFile)
	}

	cell := func(row []string, idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var items []domain.Item
	for _, row := range rows[1:] {
		item := domain.Item{
			FirstName: cell(row, first),
			Phone:     cell(row, phone),
			Notes:     cell(row, notes),
		}
		// Blank and partial rows are skipped rather than failing the upload.
		if item.FirstName == "" || item.Phone == "" {
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, domain.ErrEmptyFile
	}
	return items, nil
}
